package importer

import (
	"regexp"
	"sort"
	"strconv"
)

type Scheme string

const (
	SchemeGeneric Scheme = "generic"
	SchemeVendor  Scheme = "vendor"
)

// Target fields a column can map to.
const (
	FieldName            = "name"
	FieldDescription     = "description"
	FieldPrice           = "price"
	FieldCategory        = "category"
	FieldCharacteristics = "characteristics"

	FieldPrintingTechnique = "printing_technique"
	FieldPrintingArea      = "printing_area"
	FieldPrintingColors    = "printing_colors"
)

// Aliases are tried in order; the first header present wins.
var genericAliases = map[string][]string{
	FieldName:            {"nombre", "name", "producto", "articulo", "item", "descripcion_corta", "title"},
	FieldDescription:     {"descripcion", "description", "desc", "detalle", "detalles"},
	FieldPrice:           {"precio", "price", "coste", "cost", "valor", "importe", "pvp", "tarifa"},
	FieldCategory:        {"categoria", "category", "tipo", "clase", "familia", "grupo"},
	FieldCharacteristics: {"caracteristicas", "specs", "specifications", "propiedades", "atributos"},
}

var printingAliases = map[string][]string{
	FieldPrintingTechnique: {"tecnica grabacion", "tecnica de grabacion", "tecnica marcaje", "tecnica de marcaje", "tecnica"},
	FieldPrintingArea:      {"area impresion", "area de impresion", "area marcaje", "area de marcaje"},
	FieldPrintingColors:    {"colores max", "colores maximos", "max colores", "num colores", "colores"},
}

var genericFields = []string{FieldName, FieldDescription, FieldPrice, FieldCategory, FieldCharacteristics}

var printingFields = []string{FieldPrintingTechnique, FieldPrintingArea, FieldPrintingColors}

// "precio 100", "precio_500 uds", "pvp 1000 unidades"
var volumeHeader = regexp.MustCompile(`^(?:precio|price|pvp|tarifa)\s*(\d+)(?:\s*(?:uds|ud|u|unidades|units|pcs))?$`)

type volumeColumn struct {
	index    int
	quantity int
}

// columnMap records which column index feeds which field.
type columnMap struct {
	scheme   Scheme
	fields   map[string]int
	volumes  []volumeColumn
	consumed map[int]bool
}

func (m columnMap) has(field string) bool {
	_, ok := m.fields[field]
	return ok
}

func detectColumns(normalized []string) columnMap {
	position := make(map[string]int, len(normalized))
	for i, h := range normalized {
		if _, dup := position[h]; !dup && h != "" {
			position[h] = i
		}
	}

	m := columnMap{scheme: SchemeGeneric, fields: map[string]int{}, consumed: map[int]bool{}}
	assign := func(aliases map[string][]string, fields []string) {
		for _, field := range fields {
			for _, alias := range aliases[field] {
				idx, ok := position[NormalizeHeader(alias)]
				if ok && !m.consumed[idx] {
					m.fields[field] = idx
					m.consumed[idx] = true
					break
				}
			}
		}
	}
	assign(genericAliases, genericFields)

	for i, h := range normalized {
		match := volumeHeader.FindStringSubmatch(h)
		if match == nil || m.consumed[i] {
			continue
		}
		qty, err := strconv.Atoi(match[1])
		if err != nil || qty <= 0 {
			continue
		}
		m.volumes = append(m.volumes, volumeColumn{index: i, quantity: qty})
	}
	sort.SliceStable(m.volumes, func(i, j int) bool { return m.volumes[i].quantity < m.volumes[j].quantity })

	_, hasTechnique := position["tecnica grabacion"]
	if len(m.volumes) >= 2 || hasTechnique {
		m.scheme = SchemeVendor
		for _, v := range m.volumes {
			m.consumed[v.index] = true
		}
		assign(printingAliases, printingFields)
	} else {
		m.volumes = nil
	}
	return m
}
