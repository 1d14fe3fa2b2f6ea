package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a catalog item owned by a user.
type Product struct {
	ID              string          `json:"id"`
	UserID          string          `json:"user_id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	BasePrice       decimal.Decimal `json:"base_price"`
	Category        string          `json:"category"`
	Characteristics Characteristics `json:"characteristics"`
	ImageURL        string          `json:"image_url,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// Clone returns a copy that shares no mutable state with p.
func (p Product) Clone() Product {
	p.Characteristics = p.Characteristics.Clone()
	return p
}
