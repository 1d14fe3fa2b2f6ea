package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Tier string

const (
	TierBasic   Tier = "basic"
	TierMedium  Tier = "medium"
	TierPremium Tier = "premium"
)

// Tiers in ascending price/quality order.
var Tiers = []Tier{TierBasic, TierMedium, TierPremium}

// TierProducts maps each tier to the product snapshots selected for it.
type TierProducts map[Tier][]Product

// Quote is immutable once generated. Products holds a single TierProducts element.
type Quote struct {
	ID                string          `json:"id"`
	UserID            string          `json:"user_id"`
	ClientName        string          `json:"client_name"`
	Category          string          `json:"category"`
	Products          []TierProducts  `json:"products"`
	TotalBasic        decimal.Decimal `json:"total_basic"`
	TotalMedium       decimal.Decimal `json:"total_medium"`
	TotalPremium      decimal.Decimal `json:"total_premium"`
	MarkingTechniques []string        `json:"marking_techniques"`
	CreatedAt         time.Time       `json:"created_at"`
}

// Total returns the total for tier t.
func (q Quote) Total(t Tier) decimal.Decimal {
	switch t {
	case TierBasic:
		return q.TotalBasic
	case TierMedium:
		return q.TotalMedium
	default:
		return q.TotalPremium
	}
}

// ProductsFor returns the snapshots stored for tier t.
func (q Quote) ProductsFor(t Tier) []Product {
	if len(q.Products) == 0 {
		return nil
	}
	return q.Products[0][t]
}
