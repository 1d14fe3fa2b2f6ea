package repo

import (
	"context"

	"github.com/rogerio-castellano/promo-quoter/internal/models"
)

// QuoteRepository stores generated quotes. Quotes are never updated.
type QuoteRepository interface {
	Create(ctx context.Context, q models.Quote) (models.Quote, error)
	// GetAll returns the user's quotes newest first.
	GetAll(ctx context.Context, userID string) ([]models.Quote, error)
	GetByID(ctx context.Context, userID, id string) (models.Quote, error)
	Count(ctx context.Context, userID string) (int, error)
}

func prepareQuote(q models.Quote) models.Quote {
	if q.ID == "" {
		q.ID = newID()
	}
	if q.CreatedAt.IsZero() {
		q.CreatedAt = now()
	}
	if q.MarkingTechniques == nil {
		q.MarkingTechniques = []string{}
	}
	return q
}
