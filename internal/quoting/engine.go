// Package quoting turns a category search over the user's catalog into a
// three-tier quote.
package quoting

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rogerio-castellano/promo-quoter/internal/apperr"
	"github.com/rogerio-castellano/promo-quoter/internal/metrics"
	"github.com/rogerio-castellano/promo-quoter/internal/models"
	"github.com/rogerio-castellano/promo-quoter/internal/repo"
)

type Request struct {
	ClientName        string
	Category          string
	MarkingTechniques []string
}

type Engine struct {
	products   repo.ProductRepository
	techniques repo.TechniqueRepository
	quotes     repo.QuoteRepository
}

func NewEngine(products repo.ProductRepository, techniques repo.TechniqueRepository, quotes repo.QuoteRepository) *Engine {
	return &Engine{products: products, techniques: techniques, quotes: quotes}
}

// Generate builds, stores and returns a quote for userID. Products and
// techniques are read once up front; later catalog changes do not affect the
// returned quote.
func (e *Engine) Generate(ctx context.Context, userID string, req Request) (models.Quote, error) {
	q, err := e.generate(ctx, userID, req)
	if err != nil {
		metrics.QuoteFailures.WithLabelValues(apperr.KindOf(err).String()).Inc()
		return models.Quote{}, err
	}
	metrics.QuotesGenerated.Inc()
	zap.L().Info("quote generated",
		zap.String("quote_id", q.ID),
		zap.String("user_id", userID),
		zap.String("category", q.Category),
		zap.String("total_basic", q.TotalBasic.StringFixed(2)),
		zap.String("total_premium", q.TotalPremium.StringFixed(2)),
	)
	return q, nil
}

func (e *Engine) generate(ctx context.Context, userID string, req Request) (models.Quote, error) {
	client := strings.TrimSpace(req.ClientName)
	category := strings.TrimSpace(req.Category)

	var fields []apperr.FieldError
	if client == "" {
		fields = append(fields, apperr.FieldError{Field: "client_name", Description: "client name is required"})
	}
	if category == "" {
		fields = append(fields, apperr.FieldError{Field: "search_criteria.category", Description: "category is required"})
	}
	if len(fields) > 0 {
		return models.Quote{}, apperr.Validation("invalid quote request", fields...)
	}

	names := uniqueNames(req.MarkingTechniques)

	var (
		products   []models.Product
		techniques []models.MarkingTechnique
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		products, err = e.products.Filter(gctx, userID, repo.ProductFilter{Category: category})
		if err != nil {
			return fmt.Errorf("load products: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		techniques, err = e.techniques.FindByNames(gctx, userID, names)
		if err != nil {
			return fmt.Errorf("load marking techniques: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return models.Quote{}, err
	}

	selected, err := selectTechniques(names, techniques)
	if err != nil {
		return models.Quote{}, err
	}
	if len(products) == 0 {
		return models.Quote{}, apperr.NotFound(fmt.Sprintf("no products found for category %q", category))
	}

	tiers := Band(products)
	extra := TechniqueCost(selected)

	q := models.Quote{
		UserID:            userID,
		ClientName:        client,
		Category:          category,
		Products:          []models.TierProducts{tiers},
		TotalBasic:        Sum(tiers[models.TierBasic]).Add(extra),
		TotalMedium:       Sum(tiers[models.TierMedium]).Add(extra),
		TotalPremium:      Sum(tiers[models.TierPremium]).Add(extra),
		MarkingTechniques: names,
	}

	created, err := e.quotes.Create(ctx, q)
	if err != nil {
		return models.Quote{}, fmt.Errorf("store quote: %w", err)
	}
	return created, nil
}

// List returns the user's quotes newest first.
func (e *Engine) List(ctx context.Context, userID string) ([]models.Quote, error) {
	return e.quotes.GetAll(ctx, userID)
}

func (e *Engine) Get(ctx context.Context, userID, id string) (models.Quote, error) {
	q, err := e.quotes.GetByID(ctx, userID, id)
	if errors.Is(err, repo.ErrQuoteNotFound) {
		return models.Quote{}, apperr.NotFound("quote not found")
	}
	return q, err
}

// uniqueNames trims names and drops blanks and repeats, keeping first-seen order.
func uniqueNames(names []string) []string {
	out := make([]string, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

// selectTechniques picks one technique per requested name and fails on any
// name the user has not configured.
func selectTechniques(names []string, found []models.MarkingTechnique) ([]models.MarkingTechnique, error) {
	byName := make(map[string]models.MarkingTechnique, len(found))
	for _, t := range found {
		if _, ok := byName[t.Name]; !ok {
			byName[t.Name] = t
		}
	}

	selected := make([]models.MarkingTechnique, 0, len(names))
	var fields []apperr.FieldError
	for _, n := range names {
		t, ok := byName[n]
		if !ok {
			fields = append(fields, apperr.FieldError{Field: "marking_techniques", Description: fmt.Sprintf("unknown marking technique %q", n)})
			continue
		}
		selected = append(selected, t)
	}
	if len(fields) > 0 {
		return nil, apperr.Validation("unknown marking techniques", fields...)
	}
	return selected, nil
}
