package repo

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rogerio-castellano/promo-quoter/internal/models"
	"github.com/rogerio-castellano/promo-quoter/internal/redissvc"
)

type countingQuoteRepository struct {
	QuoteRepository
	gets int
}

func (c *countingQuoteRepository) GetByID(ctx context.Context, userID, id string) (models.Quote, error) {
	c.gets++
	return c.QuoteRepository.GetByID(ctx, userID, id)
}

func newCachedQuotes(t *testing.T) (*CachedQuoteRepository, *countingQuoteRepository, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	next := &countingQuoteRepository{QuoteRepository: NewInMemoryQuoteRepository()}
	return NewCachedQuoteRepository(next, redissvc.NewRedisService(rdb), time.Hour), next, mr
}

func sampleQuote(user string) models.Quote {
	return models.Quote{
		UserID:     user,
		ClientName: "ACME",
		Category:   "Tazas",
		Products: []models.TierProducts{{
			models.TierBasic: {{ID: "p1", UserID: user, Name: "Taza", BasePrice: decimal.RequireFromString("2.50"), Category: "Tazas",
				Characteristics: models.Characteristics{"color": "blanco"}}},
		}},
		TotalBasic:        decimal.RequireFromString("262.50"),
		TotalMedium:       decimal.Zero,
		TotalPremium:      decimal.RequireFromString("1000.1"),
		MarkingTechniques: []string{"Serigrafía"},
	}
}

func TestCachedQuoteRepository_HitMatchesStoredQuote(t *testing.T) {
	ctx := context.Background()
	r, next, mr := newCachedQuotes(t)

	created, err := r.Create(ctx, sampleQuote("u1"))
	require.NoError(t, err)
	assert.True(t, mr.Exists(quoteKeyPrefix+created.ID))
	assert.Equal(t, time.Hour, mr.TTL(quoteKeyPrefix+created.ID))

	got, err := r.GetByID(ctx, "u1", created.ID)
	require.NoError(t, err)
	assert.Zero(t, next.gets, "served from cache")

	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.ClientName, got.ClientName)
	assert.True(t, created.TotalBasic.Equal(got.TotalBasic), got.TotalBasic.String())
	assert.True(t, created.TotalMedium.Equal(got.TotalMedium))
	assert.True(t, created.TotalPremium.Equal(got.TotalPremium))
	assert.Equal(t, []string{"Serigrafía"}, got.MarkingTechniques)
	assert.True(t, created.CreatedAt.Equal(got.CreatedAt))
	require.Len(t, got.Products, 1)
	basic := got.Products[0][models.TierBasic]
	require.Len(t, basic, 1)
	assert.Equal(t, "Taza", basic[0].Name)
	assert.True(t, decimal.RequireFromString("2.5").Equal(basic[0].BasePrice))
	assert.Equal(t, "blanco", basic[0].Characteristics["color"])
}

func TestCachedQuoteRepository_OtherUserGetsNotFound(t *testing.T) {
	ctx := context.Background()
	r, _, _ := newCachedQuotes(t)

	created, err := r.Create(ctx, sampleQuote("u1"))
	require.NoError(t, err)

	_, err = r.GetByID(ctx, "u2", created.ID)
	assert.ErrorIs(t, err, ErrQuoteNotFound)
}

func TestCachedQuoteRepository_MissFallsBackAndRefills(t *testing.T) {
	ctx := context.Background()
	r, next, mr := newCachedQuotes(t)

	created, err := r.Create(ctx, sampleQuote("u1"))
	require.NoError(t, err)
	mr.FastForward(2 * time.Hour)
	require.False(t, mr.Exists(quoteKeyPrefix+created.ID))

	got, err := r.GetByID(ctx, "u1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, 1, next.gets)
	assert.True(t, mr.Exists(quoteKeyPrefix+created.ID))

	_, err = r.GetByID(ctx, "u1", "missing")
	assert.ErrorIs(t, err, ErrQuoteNotFound)
	assert.False(t, mr.Exists(quoteKeyPrefix+"missing"))
}

func TestCachedQuoteRepository_UnreadableEntryFallsThrough(t *testing.T) {
	ctx := context.Background()
	r, next, mr := newCachedQuotes(t)

	created, err := r.Create(ctx, sampleQuote("u1"))
	require.NoError(t, err)
	require.NoError(t, mr.Set(quoteKeyPrefix+created.ID, "{broken"))

	got, err := r.GetByID(ctx, "u1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, 1, next.gets)
}
