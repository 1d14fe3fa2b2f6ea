package importer

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/rogerio-castellano/promo-quoter/internal/apperr"
	"github.com/rogerio-castellano/promo-quoter/internal/models"
	"github.com/rogerio-castellano/promo-quoter/internal/repo"
)

func xlsx(t *testing.T, rows ...[]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestNormalizeHeader(t *testing.T) {
	tests := map[string]string{
		"  Categoría ":         "categoria",
		"DESCRIPCIÓN_CORTA":    "descripcion corta",
		"Precio_500  uds":      "precio 500 uds",
		"Técnica de grabación": "tecnica de grabacion",
		"Colores máx.":         "colores max",
		"\ufeffNombre":         "nombre",
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeHeader(in), in)
	}
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in   string
		want string
		err  bool
	}{
		{"12.50", "12.5", false},
		{"12,50 €", "12.5", false},
		{"$1,234.56", "1234.56", false},
		{"1.234,56", "1234.56", false},
		{"1.234.567", "1234567", false},
		{"", "0", false},
		{"-3", "-3", false},
		{"gratis", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePrice(tt.in)
			if tt.err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestParse_GenericScheme(t *testing.T) {
	buf := xlsx(t,
		[]any{"Producto", "Detalle", "PVP", "Familia", "Specs", "Color"},
		[]any{"Taza", "Taza blanca", "2,50 €", "Tazas", `{"capacidad": "350ml"}`, "Blanco"},
		[]any{"", "", "", "", "texto libre", ""},
		[]any{"Gorra", "", "-1", "Textil", "", ""},
		[]any{"Boli", "", "abc", "Escritura", "", ""},
	)

	products, res, err := Parse("catalogo.xlsx", buf)
	require.NoError(t, err)

	assert.Equal(t, SchemeGeneric, res.Scheme)
	assert.Equal(t, "Producto", res.ColumnsMapped[FieldName])
	assert.Equal(t, "PVP", res.ColumnsMapped[FieldPrice])
	assert.Equal(t, "Specs", res.ColumnsMapped[FieldCharacteristics])
	require.Len(t, res.Errors, 2)
	assert.True(t, strings.HasPrefix(res.Errors[0], "row 4:"), res.Errors[0])
	assert.True(t, strings.HasPrefix(res.Errors[1], "row 5:"), res.Errors[1])

	require.Len(t, products, 2)
	taza := products[0]
	assert.Equal(t, "Taza", taza.Name)
	assert.Equal(t, "Taza blanca", taza.Description)
	assert.Equal(t, "Tazas", taza.Category)
	assert.True(t, decimal.RequireFromString("2.5").Equal(taza.BasePrice))
	assert.Equal(t, "350ml", taza.Characteristics["capacidad"])
	assert.Equal(t, "Blanco", taza.Characteristics["color"])

	blank := products[1]
	assert.Equal(t, DefaultName, blank.Name)
	assert.Equal(t, DefaultCategory, blank.Category)
	assert.True(t, blank.BasePrice.IsZero())
	assert.Equal(t, "texto libre", blank.Characteristics[models.KeyFreeText])
}

func TestParse_VendorScheme(t *testing.T) {
	buf := xlsx(t,
		[]any{"Ref", "Nombre", "Categoría", "Precio 500 uds", "Precio_100", "Técnica grabación", "Área impresión", "Colores máx"},
		[]any{"BOL-1", "Bolígrafo", "Escritura", "0,80", "0,95", "Tampografía", "40x8 mm", "2"},
	)

	products, res, err := Parse("proveedor.xlsx", buf)
	require.NoError(t, err)
	assert.Equal(t, SchemeVendor, res.Scheme)
	assert.Equal(t, []string{"Precio_100", "Precio 500 uds"}, res.ColumnsMapped[models.KeyVolumePrices])
	require.Len(t, products, 1)

	p := products[0]
	assert.True(t, decimal.RequireFromString("0.95").Equal(p.BasePrice))
	breaks, ok := p.Characteristics.VolumePrices()
	require.True(t, ok)
	require.Len(t, breaks, 2)
	assert.Equal(t, 100, breaks[0].Quantity)
	assert.Equal(t, 500, breaks[1].Quantity)
	assert.True(t, decimal.RequireFromString("0.8").Equal(breaks[1].Price))
	printing := p.Characteristics[models.KeyPrinting].(map[string]any)
	assert.Equal(t, "Tampografía", printing[models.KeyPrintingTechnique])
	assert.Equal(t, 2, printing[models.KeyPrintingColors])
	assert.Equal(t, "BOL-1", p.Characteristics["ref"])
}

func TestParse_VendorColumnsOverrideCharacteristicsCell(t *testing.T) {
	buf := xlsx(t,
		[]any{"Nombre", "Precio 100", "Técnica grabación", "Características"},
		[]any{"Llavero", "0,50", "Láser", `{"precios_volumen": "consultar", "impresion": "no", "material": "metal"}`},
	)

	products, res, err := Parse("proveedor.xlsx", buf)
	require.NoError(t, err)
	assert.Equal(t, SchemeVendor, res.Scheme)
	require.Len(t, products, 1)

	c := products[0].Characteristics
	breaks, ok := c.VolumePrices()
	require.True(t, ok)
	require.Len(t, breaks, 1)
	assert.Equal(t, 100, breaks[0].Quantity)
	printing := c[models.KeyPrinting].(map[string]any)
	assert.Equal(t, "Láser", printing[models.KeyPrintingTechnique])
	assert.Equal(t, "metal", c["material"])
}

func TestParse_CSVWithSemicolons(t *testing.T) {
	data := "\xef\xbb\xbfnombre;precio;categoria\nTaza;2,5;Tazas\n;;\nVaso;1,25;Vasos\n"

	products, res, err := Parse("productos.csv", strings.NewReader(data))
	require.NoError(t, err)
	assert.Empty(t, res.Errors)
	require.Len(t, products, 2)
	assert.Equal(t, "Vaso", products[1].Name)
	assert.True(t, decimal.RequireFromString("1.25").Equal(products[1].BasePrice))
}

func TestParse_Failures(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		data     func(t *testing.T) *bytes.Buffer
	}{
		{"legacy xls", "viejo.xls", func(t *testing.T) *bytes.Buffer { return bytes.NewBufferString("x") }},
		{"header only", "vacio.xlsx", func(t *testing.T) *bytes.Buffer { return xlsx(t, []any{"Nombre", "Precio"}) }},
		{"no usable columns", "raro.xlsx", func(t *testing.T) *bytes.Buffer {
			return xlsx(t, []any{"foo", "bar"}, []any{"1", "2"})
		}},
		{"not a workbook", "roto.xlsx", func(t *testing.T) *bytes.Buffer { return bytes.NewBufferString("not a zip") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Parse(tt.filename, tt.data(t))
			require.Error(t, err)
			assert.ErrorIs(t, err, apperr.ErrUpstream)
		})
	}
}

func TestImport_StoresRowsForUser(t *testing.T) {
	products := repo.NewInMemoryProductRepository()
	im := New(products)

	buf := xlsx(t,
		[]any{"Nombre", "Precio", "Categoría"},
		[]any{"A", "10", "Tazas"},
		[]any{"B", "-2", "Tazas"},
		[]any{"C", "30", "Tazas"},
	)

	res, err := im.Import(context.Background(), "u1", "catalogo.xlsx", buf)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Count)
	assert.Equal(t, "Successfully uploaded 2 products. 1 errors occurred: row 3: negative price -2", res.Message)

	stored, err := products.GetAll(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, "u1", stored[0].UserID)
}

func TestSummaryTruncatesErrors(t *testing.T) {
	errs := []string{"row 2: a", "row 3: b", "row 4: c", "row 5: d", "row 6: e"}
	assert.Equal(t,
		"Successfully uploaded 1 products. 5 errors occurred: row 2: a; row 3: b; row 4: c and 2 more errors.",
		summary(1, errs))
}
