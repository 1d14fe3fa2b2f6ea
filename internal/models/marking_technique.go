package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MarkingTechnique is a decoration method with a flat per-unit cost added to quotes.
type MarkingTechnique struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	Name        string          `json:"name"`
	CostPerUnit decimal.Decimal `json:"cost_per_unit"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
}

// PredefinedTechnique is an entry of the built-in technique catalog.
type PredefinedTechnique struct {
	Name        string
	CostPerUnit decimal.Decimal
	Description string
}

// PredefinedTechniques lists the techniques a user can seed with one call.
var PredefinedTechniques = []PredefinedTechnique{
	{Name: "Serigrafía", CostPerUnit: decimal.RequireFromString("1.80"), Description: "Impresión con pantalla, ideal para tiradas largas y colores planos"},
	{Name: "Bordado", CostPerUnit: decimal.RequireFromString("2.50"), Description: "Bordado con hilo sobre textil"},
	{Name: "Grabado láser", CostPerUnit: decimal.RequireFromString("3.00"), Description: "Grabado permanente sobre metal, madera o vidrio"},
	{Name: "Tampografía", CostPerUnit: decimal.RequireFromString("1.20"), Description: "Impresión con tampón para superficies curvas y pequeñas"},
	{Name: "Transfer digital", CostPerUnit: decimal.RequireFromString("2.00"), Description: "Transfer a todo color aplicado por calor"},
	{Name: "Sublimación", CostPerUnit: decimal.RequireFromString("1.50"), Description: "Tinta sublimada sobre poliéster o superficies tratadas"},
}
