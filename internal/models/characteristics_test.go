package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCharacteristicsCloneIsDeep(t *testing.T) {
	orig := Characteristics{
		"color":     "rojo",
		KeyPrinting: map[string]any{KeyPrintingTechnique: "Serigrafía"},
		"tallas":    []any{"S", "M"},
	}

	cp := orig.Clone()
	cp[KeyPrinting].(map[string]any)[KeyPrintingTechnique] = "Bordado"
	cp["tallas"].([]any)[0] = "XL"

	assert.Equal(t, "Serigrafía", orig[KeyPrinting].(map[string]any)[KeyPrintingTechnique])
	assert.Equal(t, "S", orig["tallas"].([]any)[0])
}

func TestVolumePricesSurvivesJSONRoundTrip(t *testing.T) {
	c := Characteristics{
		KeyVolumePrices: []VolumePrice{
			{Quantity: 100, Price: decimal.RequireFromString("1.25")},
			{Quantity: 500, Price: decimal.RequireFromString("0.95")},
		},
	}

	raw, err := c.Value()
	require.NoError(t, err)

	var back Characteristics
	require.NoError(t, back.Scan(raw))

	vp, ok := back.VolumePrices()
	require.True(t, ok)
	require.Len(t, vp, 2)
	assert.Equal(t, 500, vp[1].Quantity)
	assert.True(t, vp[1].Price.Equal(decimal.RequireFromString("0.95")))
}

func TestVolumePricesRejectsForeignShapes(t *testing.T) {
	tests := []struct {
		name  string
		value any
	}{
		{"string", "consultar"},
		{"number", 12},
		{"list of strings", []any{"100 uds"}},
		{"bad price", []any{map[string]any{"desde": 100, "precio": "n/a"}}},
		{"bad quantity", []any{map[string]any{"desde": "mucho", "precio": "1.2"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := Characteristics{KeyVolumePrices: tt.value}.VolumePrices()
			assert.False(t, ok)
		})
	}

	_, ok := Characteristics{}.VolumePrices()
	assert.False(t, ok)
}

func TestScanRejectsUnknownType(t *testing.T) {
	var c Characteristics
	assert.Error(t, c.Scan(42))
	assert.NoError(t, c.Scan(nil))
	assert.NotNil(t, c)
}

func TestProductJSONKeepsSnapshotFields(t *testing.T) {
	p := Product{ID: "p1", Name: "Taza", BasePrice: decimal.RequireFromString("3.5"), Category: "Hogar"}

	raw, err := json.Marshal(p)
	require.NoError(t, err)

	var back Product
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.True(t, back.BasePrice.Equal(p.BasePrice))
	assert.Equal(t, "Hogar", back.Category)
}
