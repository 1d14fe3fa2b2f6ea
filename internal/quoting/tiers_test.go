package quoting

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/rogerio-castellano/promo-quoter/internal/models"
)

func products(prices ...int64) []models.Product {
	out := make([]models.Product, len(prices))
	for i, p := range prices {
		out[i] = models.Product{Name: fmt.Sprintf("P%d", i), BasePrice: decimal.NewFromInt(p)}
	}
	return out
}

func names(ps []models.Product) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Name
	}
	return out
}

func TestBand(t *testing.T) {
	tests := []struct {
		name                   string
		prices                 []int64
		basic, medium, premium []string
	}{
		{"single", []int64{5}, []string{"P0"}, []string{"P0"}, []string{"P0"}},
		{"two", []int64{9, 3}, []string{"P1"}, []string{"P0"}, []string{"P0"}},
		{"three", []int64{30, 10, 20}, []string{"P1"}, []string{"P2"}, []string{"P0"}},
		{"four", []int64{4, 3, 2, 1}, []string{"P3"}, []string{"P2"}, []string{"P1", "P0"}},
		{"five", []int64{1, 2, 3, 4, 5}, []string{"P0"}, []string{"P1", "P2"}, []string{"P3", "P4"}},
		{"ties keep order", []int64{2, 1, 2, 1, 2, 1}, []string{"P1", "P3"}, []string{"P5", "P0"}, []string{"P2", "P4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tiers := Band(products(tt.prices...))
			assert.Equal(t, tt.basic, names(tiers[models.TierBasic]))
			assert.Equal(t, tt.medium, names(tiers[models.TierMedium]))
			assert.Equal(t, tt.premium, names(tiers[models.TierPremium]))
		})
	}
}

func TestBandTotalsAreOrdered(t *testing.T) {
	for n := 1; n <= 30; n++ {
		prices := make([]int64, n)
		for i := range prices {
			prices[i] = int64((i*37 + 11) % 23)
		}
		tiers := Band(products(prices...))
		b, m, p := Sum(tiers[models.TierBasic]), Sum(tiers[models.TierMedium]), Sum(tiers[models.TierPremium])
		assert.True(t, b.LessThanOrEqual(m), "n=%d basic %s > medium %s", n, b, m)
		assert.True(t, m.LessThanOrEqual(p), "n=%d medium %s > premium %s", n, m, p)
	}
}

func TestBandDoesNotAliasInput(t *testing.T) {
	in := products(1, 2, 3)
	in[0].Characteristics = models.Characteristics{"color": "rojo"}

	tiers := Band(in)
	tiers[models.TierBasic][0].Characteristics["color"] = "azul"

	assert.Equal(t, "rojo", in[0].Characteristics["color"])
	assert.Equal(t, "P0", in[0].Name)
}
