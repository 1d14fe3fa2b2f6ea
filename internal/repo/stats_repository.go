package repo

import (
	"context"

	"go.uber.org/zap"
)

type Stats struct {
	Products          int `json:"products"`
	MarkingTechniques int `json:"marking_techniques"`
	Quotes            int `json:"quotes"`
}

type StatsRepository interface {
	GetDashboardStats(ctx context.Context, userID string) (Stats, error)
}

type counter interface {
	Count(ctx context.Context, userID string) (int, error)
}

// CountingStatsRepository derives dashboard stats from the other repositories.
// A failing count is logged and reported as zero.
type CountingStatsRepository struct {
	productRepo   counter
	techniqueRepo counter
	quoteRepo     counter
}

func NewCountingStatsRepository(products ProductRepository, techniques TechniqueRepository, quotes QuoteRepository) *CountingStatsRepository {
	return &CountingStatsRepository{productRepo: products, techniqueRepo: techniques, quoteRepo: quotes}
}

func (s *CountingStatsRepository) GetDashboardStats(ctx context.Context, userID string) (Stats, error) {
	return Stats{
		Products:          count(ctx, s.productRepo, userID, "products"),
		MarkingTechniques: count(ctx, s.techniqueRepo, userID, "marking_techniques"),
		Quotes:            count(ctx, s.quoteRepo, userID, "quotes"),
	}, nil
}

func count(ctx context.Context, c counter, userID, what string) int {
	n, err := c.Count(ctx, userID)
	if err != nil {
		zap.L().Warn("stats count failed", zap.String("collection", what), zap.String("user_id", userID), zap.Error(err))
		return 0
	}
	return n
}
