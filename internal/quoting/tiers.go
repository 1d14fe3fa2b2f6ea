package quoting

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/rogerio-castellano/promo-quoter/internal/models"
)

// Band ranks products by ascending base price and splits them into the three
// tiers. Band sizes never shrink from basic to premium, so with non-negative
// prices the tier sums are ordered basic <= medium <= premium.
//
// One product fills every tier. Two products give basic the cheaper one and
// both medium and premium the dearer one.
func Band(products []models.Product) models.TierProducts {
	ranked := make([]models.Product, len(products))
	copy(ranked, products)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].BasePrice.LessThan(ranked[j].BasePrice)
	})

	n := len(ranked)
	tiers := models.TierProducts{}
	switch {
	case n == 0:
		for _, t := range models.Tiers {
			tiers[t] = []models.Product{}
		}
	case n == 1:
		for _, t := range models.Tiers {
			tiers[t] = []models.Product{ranked[0].Clone()}
		}
	case n == 2:
		tiers[models.TierBasic] = []models.Product{ranked[0].Clone()}
		tiers[models.TierMedium] = []models.Product{ranked[1].Clone()}
		tiers[models.TierPremium] = []models.Product{ranked[1].Clone()}
	default:
		tiers[models.TierBasic] = cloneAll(ranked[:n/3])
		tiers[models.TierMedium] = cloneAll(ranked[n/3 : 2*n/3])
		tiers[models.TierPremium] = cloneAll(ranked[2*n/3:])
	}
	return tiers
}

func cloneAll(ps []models.Product) []models.Product {
	out := make([]models.Product, len(ps))
	for i, p := range ps {
		out[i] = p.Clone()
	}
	return out
}

// Sum adds the base prices of ps.
func Sum(ps []models.Product) decimal.Decimal {
	total := decimal.Zero
	for _, p := range ps {
		total = total.Add(p.BasePrice)
	}
	return total
}

// TechniqueCost is the flat amount added to every tier total.
func TechniqueCost(ts []models.MarkingTechnique) decimal.Decimal {
	total := decimal.Zero
	for _, t := range ts {
		total = total.Add(t.CostPerUnit)
	}
	return total
}
