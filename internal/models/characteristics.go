package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

// Reserved characteristics keys written by the vendor import scheme. Any other
// key is an unrecognized spreadsheet column passed through as-is.
const (
	KeyVolumePrices      = "precios_volumen"
	KeyPrinting          = "impresion"
	KeyPrintingTechnique = "tecnica_grabacion"
	KeyPrintingArea      = "area_impresion"
	KeyPrintingColors    = "colores_max"
	KeyFreeText          = "descripcion"
)

// Characteristics holds free-form product attributes.
type Characteristics map[string]any

// VolumePrice is one price-by-volume break: Price applies from Quantity units.
type VolumePrice struct {
	Quantity int             `json:"desde"`
	Price    decimal.Decimal `json:"precio"`
}

// Clone deep-copies nested maps and slices.
func (c Characteristics) Clone() Characteristics {
	if c == nil {
		return nil
	}
	out := make(Characteristics, len(c))
	for k, v := range c {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, vv := range t {
			m[k] = cloneValue(vv)
		}
		return m
	case Characteristics:
		return t.Clone()
	case []any:
		s := make([]any, len(t))
		for i, vv := range t {
			s[i] = cloneValue(vv)
		}
		return s
	case []VolumePrice:
		return append([]VolumePrice(nil), t...)
	default:
		return v
	}
}

// VolumePrices decodes the precios_volumen entry, whatever representation it
// arrived in (typed slice after import, generic JSON after a database round trip).
// ok is false when the entry is absent or any element is not a {desde, precio} break.
func (c Characteristics) VolumePrices() (breaks []VolumePrice, ok bool) {
	raw, ok := c[KeyVolumePrices]
	if !ok {
		return nil, false
	}
	if vp, ok := raw.([]VolumePrice); ok {
		return vp, true
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, false
	}
	out := make([]VolumePrice, 0, len(items))
	for _, it := range items {
		m, err := cast.ToStringMapE(it)
		if err != nil {
			return nil, false
		}
		price, err := decimal.NewFromString(cast.ToString(m["precio"]))
		if err != nil {
			return nil, false
		}
		qty, err := cast.ToIntE(m["desde"])
		if err != nil {
			return nil, false
		}
		out = append(out, VolumePrice{Quantity: qty, Price: price})
	}
	return out, true
}

func (c Characteristics) Value() (driver.Value, error) {
	if c == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(c)
}

func (c *Characteristics) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*c = Characteristics{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("characteristics: unsupported scan type %T", src)
	}
	out := Characteristics{}
	if err := json.Unmarshal(data, &out); err != nil {
		return fmt.Errorf("characteristics: %w", err)
	}
	*c = out
	return nil
}
