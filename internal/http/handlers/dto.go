package handlers

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rogerio-castellano/promo-quoter/internal/apperr"
	"github.com/rogerio-castellano/promo-quoter/internal/auth"
	"github.com/rogerio-castellano/promo-quoter/internal/models"
)

type ErrorResponse struct {
	Detail string              `json:"detail"`
	Errors []apperr.FieldError `json:"errors,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ProductRequest struct {
	Name            string         `json:"name" validate:"notblank"`
	Description     string         `json:"description"`
	BasePrice       *float64       `json:"base_price" validate:"required,gte=0"`
	Category        string         `json:"category"`
	Characteristics map[string]any `json:"characteristics"`
	ImageURL        string         `json:"image_url" validate:"omitempty,url"`
}

type ProductResponse struct {
	ID              string         `json:"id"`
	Name            string         `json:"name"`
	Description     string         `json:"description"`
	BasePrice       float64        `json:"base_price"`
	Category        string         `json:"category"`
	Characteristics map[string]any `json:"characteristics"`
	ImageURL        *string        `json:"image_url"`
	CreatedAt       time.Time      `json:"created_at"`
	UserID          string         `json:"user_id"`
}

type DeleteAllResult struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

type TechniqueRequest struct {
	Name        string   `json:"name" validate:"notblank"`
	CostPerUnit *float64 `json:"cost_per_unit" validate:"required,gte=0"`
	Description string   `json:"description"`
}

type TechniqueResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	CostPerUnit float64   `json:"cost_per_unit"`
	Description string    `json:"description"`
	UserID      string    `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
}

type SeedTechniquesResult struct {
	Message string              `json:"message"`
	Created []TechniqueResponse `json:"created"`
}

type SearchCriteria struct {
	Category string `json:"category"`
}

type QuoteRequest struct {
	ClientName        string         `json:"client_name"`
	SearchCriteria    SearchCriteria `json:"search_criteria"`
	MarkingTechniques []string       `json:"marking_techniques"`
}

type QuoteResponse struct {
	ID                string                         `json:"id"`
	ClientName        string                         `json:"client_name"`
	Category          string                         `json:"category"`
	Products          []map[string][]ProductResponse `json:"products"`
	TotalBasic        float64                        `json:"total_basic"`
	TotalMedium       float64                        `json:"total_medium"`
	TotalPremium      float64                        `json:"total_premium"`
	MarkingTechniques []string                       `json:"marking_techniques"`
	CreatedAt         time.Time                      `json:"created_at"`
	UserID            string                         `json:"user_id"`
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"notblank,min=3"`
	Password string `json:"password" validate:"required,min=6"`
}

type UserLogin struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type UserResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	IsActive bool   `json:"is_active"`
}

type TokenResponse struct {
	AccessToken  string       `json:"access_token"`
	TokenType    string       `json:"token_type"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int          `json:"expires_in"`
	User         UserResponse `json:"user"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

func toUserResponse(u models.User) UserResponse {
	return UserResponse{ID: u.ID, Email: u.Email, Username: u.Username, IsActive: u.IsActive}
}

func toTokenResponse(s auth.Session, ttl time.Duration) TokenResponse {
	return TokenResponse{
		AccessToken:  s.AccessToken,
		TokenType:    auth.TokenType,
		RefreshToken: s.RefreshToken,
		ExpiresIn:    int(ttl.Seconds()),
		User:         toUserResponse(s.User),
	}
}

func toProductResponse(p models.Product) ProductResponse {
	resp := ProductResponse{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		BasePrice:       p.BasePrice.InexactFloat64(),
		Category:        p.Category,
		Characteristics: characteristicsResponse(p.Characteristics),
		CreatedAt:       p.CreatedAt,
		UserID:          p.UserID,
	}
	if p.ImageURL != "" {
		url := p.ImageURL
		resp.ImageURL = &url
	}
	return resp
}

func toProductResponses(ps []models.Product) []ProductResponse {
	out := make([]ProductResponse, len(ps))
	for i, p := range ps {
		out[i] = toProductResponse(p)
	}
	return out
}

// characteristicsResponse renders volume price breaks with numeric prices.
func characteristicsResponse(c models.Characteristics) map[string]any {
	out := make(map[string]any, len(c))
	for k, v := range c.Clone() {
		out[k] = v
	}
	if breaks, ok := c.VolumePrices(); ok {
		rendered := make([]map[string]any, len(breaks))
		for i, b := range breaks {
			rendered[i] = map[string]any{"desde": b.Quantity, "precio": b.Price.InexactFloat64()}
		}
		out[models.KeyVolumePrices] = rendered
	}
	return out
}

func toTechniqueResponse(t models.MarkingTechnique) TechniqueResponse {
	return TechniqueResponse{
		ID:          t.ID,
		Name:        t.Name,
		CostPerUnit: t.CostPerUnit.InexactFloat64(),
		Description: t.Description,
		UserID:      t.UserID,
		CreatedAt:   t.CreatedAt,
	}
}

func toTechniqueResponses(ts []models.MarkingTechnique) []TechniqueResponse {
	out := make([]TechniqueResponse, len(ts))
	for i, t := range ts {
		out[i] = toTechniqueResponse(t)
	}
	return out
}

func toQuoteResponse(q models.Quote) QuoteResponse {
	products := make([]map[string][]ProductResponse, len(q.Products))
	for i, tp := range q.Products {
		m := make(map[string][]ProductResponse, len(models.Tiers))
		for _, tier := range models.Tiers {
			m[string(tier)] = toProductResponses(tp[tier])
		}
		products[i] = m
	}
	return QuoteResponse{
		ID:                q.ID,
		ClientName:        q.ClientName,
		Category:          q.Category,
		Products:          products,
		TotalBasic:        q.TotalBasic.InexactFloat64(),
		TotalMedium:       q.TotalMedium.InexactFloat64(),
		TotalPremium:      q.TotalPremium.InexactFloat64(),
		MarkingTechniques: q.MarkingTechniques,
		CreatedAt:         q.CreatedAt,
		UserID:            q.UserID,
	}
}

func toQuoteResponses(qs []models.Quote) []QuoteResponse {
	out := make([]QuoteResponse, len(qs))
	for i, q := range qs {
		out[i] = toQuoteResponse(q)
	}
	return out
}

func priceFromFloat(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}
