package importer

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NormalizeHeader folds a column header into its matching form: accents
// removed, lower case, and runs of spaces, underscores, dots or dashes
// collapsed into one space.
func NormalizeHeader(h string) string {
	// Transformers keep state, so each call gets its own chain.
	folder := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	s, _, err := transform.String(folder, h)
	if err != nil {
		s = h
	}
	s = strings.ToLower(s)
	s = strings.Map(func(r rune) rune {
		switch r {
		case '_', '-', '.', '\ufeff':
			return ' '
		}
		return r
	}, s)
	return strings.Join(strings.Fields(s), " ")
}
