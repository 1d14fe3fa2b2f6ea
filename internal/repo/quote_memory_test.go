package repo

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rogerio-castellano/promo-quoter/internal/models"
)

func TestInMemoryQuoteRepository_NewestFirstAndScoped(t *testing.T) {
	ctx := context.Background()
	r := NewInMemoryQuoteRepository()

	first, err := r.Create(ctx, models.Quote{UserID: "u1", ClientName: "ACME"})
	require.NoError(t, err)
	second, err := r.Create(ctx, models.Quote{UserID: "u1", ClientName: "Globex"})
	require.NoError(t, err)
	_, err = r.Create(ctx, models.Quote{UserID: "u2", ClientName: "Initech"})
	require.NoError(t, err)

	all, err := r.GetAll(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID)
	assert.Equal(t, first.ID, all[1].ID)
	assert.Equal(t, []string{}, all[0].MarkingTechniques)

	_, err = r.GetByID(ctx, "u2", first.ID)
	assert.ErrorIs(t, err, ErrQuoteNotFound)
}

func TestInMemoryQuoteRepository_SnapshotsAreIsolated(t *testing.T) {
	ctx := context.Background()
	r := NewInMemoryQuoteRepository()

	p := models.Product{Name: "Taza", BasePrice: decimal.NewFromInt(3), Characteristics: models.Characteristics{"color": "rojo"}}
	q, err := r.Create(ctx, models.Quote{
		UserID:            "u1",
		Products:          []models.TierProducts{{models.TierBasic: {p}}},
		MarkingTechniques: []string{"Bordado"},
	})
	require.NoError(t, err)

	got, err := r.GetByID(ctx, "u1", q.ID)
	require.NoError(t, err)
	got.ProductsFor(models.TierBasic)[0].Characteristics["color"] = "verde"
	got.MarkingTechniques[0] = "Otro"

	again, err := r.GetByID(ctx, "u1", q.ID)
	require.NoError(t, err)
	assert.Equal(t, "rojo", again.ProductsFor(models.TierBasic)[0].Characteristics["color"])
	assert.Equal(t, []string{"Bordado"}, again.MarkingTechniques)
}

type failingCounter struct{}

func (failingCounter) Count(context.Context, string) (int, error) {
	return 0, errors.New("connection refused")
}

func TestCountingStatsRepository_DegradesToZero(t *testing.T) {
	ctx := context.Background()
	products := NewInMemoryProductRepository()
	techniques := NewInMemoryTechniqueRepository()
	quotes := NewInMemoryQuoteRepository()

	_, _ = products.Create(ctx, product("u1", "A", "X", "1"))
	_, _ = products.Create(ctx, product("u1", "B", "X", "1"))
	_, _ = techniques.Create(ctx, models.MarkingTechnique{UserID: "u1", Name: "Bordado"})

	s := NewCountingStatsRepository(products, techniques, quotes)
	s.quoteRepo = failingCounter{}

	stats, err := s.GetDashboardStats(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, Stats{Products: 2, MarkingTechniques: 1, Quotes: 0}, stats)
}

func TestInMemoryTechniqueRepository_FindByNames(t *testing.T) {
	ctx := context.Background()
	r := NewInMemoryTechniqueRepository()
	for _, name := range []string{"Serigrafía", "Bordado", "Grabado láser"} {
		_, err := r.Create(ctx, models.MarkingTechnique{UserID: "u1", Name: name})
		require.NoError(t, err)
	}

	got, err := r.FindByNames(ctx, "u1", []string{"Grabado láser", "Bordado", "Nope"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Bordado", got[0].Name)
	assert.Equal(t, "Grabado láser", got[1].Name)

	got, err = r.FindByNames(ctx, "u2", []string{"Bordado"})
	require.NoError(t, err)
	assert.Empty(t, got)
}
