package importer

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var currencyStripper = strings.NewReplacer("€", "", "$", "", "£", "", "EUR", "", "eur", "", "USD", "", " ", "", "\u00a0", "")

// ParsePrice reads a spreadsheet price cell. It accepts currency symbols and
// both "1.234,56" and "1,234.56" styles. An empty cell is zero.
func ParsePrice(raw string) (decimal.Decimal, error) {
	s := currencyStripper.Replace(strings.TrimSpace(raw))
	if s == "" {
		return decimal.Zero, nil
	}

	lastComma := strings.LastIndex(s, ",")
	lastDot := strings.LastIndex(s, ".")
	switch {
	case lastComma >= 0 && lastDot >= 0:
		if lastComma > lastDot {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastComma >= 0:
		if strings.Count(s, ",") > 1 {
			s = strings.ReplaceAll(s, ",", "")
		} else {
			s = strings.Replace(s, ",", ".", 1)
		}
	case strings.Count(s, ".") > 1:
		s = strings.ReplaceAll(s, ".", "")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid price %q", raw)
	}
	return d, nil
}
