package repo

import (
	"context"
	"sync"

	"github.com/rogerio-castellano/promo-quoter/internal/models"
)

type InMemoryQuoteRepository struct {
	mu     sync.RWMutex
	quotes []models.Quote
}

func NewInMemoryQuoteRepository() *InMemoryQuoteRepository {
	return &InMemoryQuoteRepository{quotes: []models.Quote{}}
}

func (r *InMemoryQuoteRepository) Create(_ context.Context, q models.Quote) (models.Quote, error) {
	q = prepareQuote(q)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.quotes = append(r.quotes, cloneQuote(q))
	return q, nil
}

func (r *InMemoryQuoteRepository) GetAll(_ context.Context, userID string) ([]models.Quote, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []models.Quote{}
	for i := len(r.quotes) - 1; i >= 0; i-- {
		if r.quotes[i].UserID == userID {
			out = append(out, cloneQuote(r.quotes[i]))
		}
	}
	return out, nil
}

func (r *InMemoryQuoteRepository) GetByID(_ context.Context, userID, id string) (models.Quote, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, q := range r.quotes {
		if q.ID == id && q.UserID == userID {
			return cloneQuote(q), nil
		}
	}
	return models.Quote{}, ErrQuoteNotFound
}

func (r *InMemoryQuoteRepository) Count(ctx context.Context, userID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, q := range r.quotes {
		if q.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (r *InMemoryQuoteRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.quotes = []models.Quote{}
}

func cloneQuote(q models.Quote) models.Quote {
	q.MarkingTechniques = append([]string{}, q.MarkingTechniques...)
	tiers := make([]models.TierProducts, len(q.Products))
	for i, tp := range q.Products {
		copied := make(models.TierProducts, len(tp))
		for tier, products := range tp {
			ps := make([]models.Product, len(products))
			for j, p := range products {
				ps[j] = p.Clone()
			}
			copied[tier] = ps
		}
		tiers[i] = copied
	}
	q.Products = tiers
	return q
}
