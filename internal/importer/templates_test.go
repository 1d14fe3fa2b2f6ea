package importer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/rogerio-castellano/promo-quoter/internal/apperr"
)

func TestTemplatesParseBack(t *testing.T) {
	tests := []struct {
		name   string
		scheme Scheme
		rows   int
	}{
		{TemplateVendor, SchemeVendor, 3},
		{TemplateSimple, SchemeGeneric, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := Template(tt.name)
			require.NoError(t, err)

			products, res, err := Parse(tt.name+".xlsx", bytes.NewReader(data))
			require.NoError(t, err)
			assert.Equal(t, tt.scheme, res.Scheme)
			assert.Empty(t, res.Errors)
			assert.Len(t, products, tt.rows)
			for _, p := range products {
				assert.True(t, p.BasePrice.IsPositive(), p.Name)
			}
		})
	}
}

func TestTemplateLayout(t *testing.T) {
	data, err := Template(TemplateVendor)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	sheet := f.GetSheetName(0)
	panes, err := f.GetPanes(sheet)
	require.NoError(t, err)
	assert.True(t, panes.Freeze)
	assert.Equal(t, 1, panes.YSplit)
	assert.Equal(t, "A2", panes.TopLeftCell)

	width, err := f.GetColWidth(sheet, "A")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, width, 15.0)
}

func TestEmptyTemplateHasOnlyHeader(t *testing.T) {
	data, err := Template(TemplateEmpty)
	require.NoError(t, err)

	_, _, err = Parse("vacia.xlsx", bytes.NewReader(data))
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestUnknownTemplate(t *testing.T) {
	_, err := Template("plantilla-nope")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.Len(t, TemplateNames(), 3)
}
