package repo

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/rogerio-castellano/promo-quoter/internal/models"
	"github.com/rogerio-castellano/promo-quoter/internal/redissvc"
)

const quoteKeyPrefix = "quote:"

// CachedQuoteRepository keeps generated quotes in redis by id in front of
// another QuoteRepository. Cache failures are logged and fall through.
type CachedQuoteRepository struct {
	next  QuoteRepository
	cache *redissvc.RedisService
	ttl   time.Duration
}

func NewCachedQuoteRepository(next QuoteRepository, cache *redissvc.RedisService, ttl time.Duration) *CachedQuoteRepository {
	return &CachedQuoteRepository{next: next, cache: cache, ttl: ttl}
}

func (r *CachedQuoteRepository) Create(ctx context.Context, q models.Quote) (models.Quote, error) {
	created, err := r.next.Create(ctx, q)
	if err != nil {
		return created, err
	}
	r.store(ctx, created)
	return created, nil
}

func (r *CachedQuoteRepository) GetAll(ctx context.Context, userID string) ([]models.Quote, error) {
	return r.next.GetAll(ctx, userID)
}

func (r *CachedQuoteRepository) GetByID(ctx context.Context, userID, id string) (models.Quote, error) {
	var cached models.Quote
	err := r.cache.GetJSON(ctx, quoteKeyPrefix+id, &cached)
	switch {
	case err == nil:
		if cached.UserID != userID {
			return models.Quote{}, ErrQuoteNotFound
		}
		return cached, nil
	case !errors.Is(err, redissvc.ErrCacheMiss):
		zap.L().Warn("quote cache read failed", zap.String("quote_id", id), zap.Error(err))
	}

	q, err := r.next.GetByID(ctx, userID, id)
	if err != nil {
		return q, err
	}
	r.store(ctx, q)
	return q, nil
}

func (r *CachedQuoteRepository) Count(ctx context.Context, userID string) (int, error) {
	return r.next.Count(ctx, userID)
}

func (r *CachedQuoteRepository) store(ctx context.Context, q models.Quote) {
	if err := r.cache.SetJSON(ctx, quoteKeyPrefix+q.ID, q, r.ttl); err != nil {
		zap.L().Warn("quote cache write failed", zap.String("quote_id", q.ID), zap.Error(err))
	}
}
