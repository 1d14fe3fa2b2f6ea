package importer

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/rogerio-castellano/promo-quoter/internal/apperr"
)

// Template names served under /api/download.
const (
	TemplateVendor = "plantilla-proveedor"
	TemplateEmpty  = "plantilla-vacia"
	TemplateSimple = "plantilla-simple"
)

type templateLayout struct {
	sheet   string
	headers []string
	rows    [][]any
}

var genericHeaders = []string{"Nombre", "Descripción", "Precio", "Categoría", "Características"}

var templates = map[string]templateLayout{
	TemplateVendor: {
		sheet: "Productos",
		headers: []string{
			"Referencia", "Nombre", "Descripción", "Categoría",
			"Precio 100", "Precio 500", "Precio 1000",
			"Técnica grabación", "Área impresión", "Colores máx", "Color",
		},
		rows: [][]any{
			{"BOL-001", "Bolígrafo metálico", "Bolígrafo de aluminio con clip", "Escritura", 0.95, 0.82, 0.74, "Grabado láser", "40x8 mm", 1, "Plata"},
			{"TAZ-010", "Taza cerámica 350ml", "Taza blanca apta para lavavajillas", "Tazas", 2.40, 2.10, 1.95, "Sublimación", "200x90 mm", 4, "Blanco"},
			{"CAM-200", "Camiseta algodón 180g", "Camiseta manga corta unisex", "Textil", 3.80, 3.35, 3.10, "Serigrafía", "300x400 mm", 6, "Negro"},
		},
	},
	TemplateEmpty: {
		sheet:   "Productos",
		headers: genericHeaders,
	},
	TemplateSimple: {
		sheet:   "Productos",
		headers: genericHeaders,
		rows: [][]any{
			{"Mochila urbana", "Mochila con compartimento para portátil", 18.50, "Bolsas", `{"material": "poliéster 600D", "capacidad": "20L"}`},
			{"Llavero antiestrés", "Llavero de espuma con forma de estrella", 0.65, "Llaveros", "Colores variados"},
			{"Power bank 5000mAh", "Batería externa con cable USB-C", 9.90, "Tecnología", `{"capacidad": "5000mAh"}`},
		},
	},
}

// TemplateNames lists the downloadable templates.
func TemplateNames() []string {
	return []string{TemplateVendor, TemplateEmpty, TemplateSimple}
}

// Template builds the named xlsx template.
func Template(name string) ([]byte, error) {
	tpl, ok := templates[name]
	if !ok {
		return nil, apperr.NotFound(fmt.Sprintf("template %q not found", name))
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), tpl.sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#1D4ED8"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}

	for i, h := range tpl.headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(tpl.sheet, cell, h); err != nil {
			return nil, fmt.Errorf("write header %q: %w", h, err)
		}

		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		width := float64(len(h)) * 1.3
		if width < 15 {
			width = 15
		}
		if err := f.SetColWidth(tpl.sheet, col, col, width); err != nil {
			return nil, fmt.Errorf("set width of column %s: %w", col, err)
		}
	}
	lastHeader, err := excelize.CoordinatesToCellName(len(tpl.headers), 1)
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(tpl.sheet, "A1", lastHeader, headerStyle); err != nil {
		return nil, fmt.Errorf("style header: %w", err)
	}

	for r, row := range tpl.rows {
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(tpl.sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write sample row: %w", err)
		}
	}

	if err := f.SetPanes(tpl.sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("freeze header row: %w", err)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel template: %w", err)
	}
	return buf.Bytes(), nil
}
