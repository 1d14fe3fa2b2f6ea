package repo

import (
	"strings"

	"github.com/rogerio-castellano/promo-quoter/internal/models"
	"github.com/shopspring/decimal"
)

// ProductFilter narrows a product listing. Category is an exact match ignoring
// case and surrounding spaces; Name is a case-insensitive substring.
type ProductFilter struct {
	Category string
	Name     string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
}

// NormalizeCategory is the comparison form of a category.
func NormalizeCategory(c string) string {
	return strings.ToLower(strings.TrimSpace(c))
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE pattern matching s literally as a substring.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

func matchesFilter(p models.Product, pf ProductFilter) bool {
	if pf.Category != "" && NormalizeCategory(p.Category) != NormalizeCategory(pf.Category) {
		return false
	}
	if pf.Name != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(pf.Name)) {
		return false
	}
	if pf.MinPrice != nil && p.BasePrice.LessThan(*pf.MinPrice) {
		return false
	}
	if pf.MaxPrice != nil && p.BasePrice.GreaterThan(*pf.MaxPrice) {
		return false
	}
	return true
}
