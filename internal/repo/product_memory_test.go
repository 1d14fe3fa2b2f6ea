package repo

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rogerio-castellano/promo-quoter/internal/models"
)

func product(user, name, category, price string) models.Product {
	return models.Product{UserID: user, Name: name, Category: category, BasePrice: decimal.RequireFromString(price)}
}

func TestInMemoryProductRepository_FilterIsScopedAndOrdered(t *testing.T) {
	ctx := context.Background()
	r := NewInMemoryProductRepository()

	n, err := r.CreateMany(ctx, []models.Product{
		product("u1", "Taza", "Tazas", "3"),
		product("u1", "Boli", "Escritura", "1"),
		product("u2", "Taza ajena", "tazas", "2"),
		product("u1", "Taza XL", " TAZAS ", "5"),
	})
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	got, err := r.Filter(ctx, "u1", ProductFilter{Category: "tazas"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Taza", got[0].Name)
	assert.Equal(t, "Taza XL", got[1].Name)
	assert.NotEmpty(t, got[0].ID)
	assert.NotNil(t, got[0].Characteristics)

	minPrice := decimal.NewFromInt(4)
	got, err = r.Filter(ctx, "u1", ProductFilter{MinPrice: &minPrice})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Taza XL", got[0].Name)
}

func TestInMemoryProductRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	r := NewInMemoryProductRepository()

	p := product("u1", "Gorra", "Textil", "4")
	p.Characteristics = models.Characteristics{"color": "rojo"}
	created, err := r.Create(ctx, p)
	require.NoError(t, err)

	all, err := r.GetAll(ctx, "u1")
	require.NoError(t, err)
	all[0].Characteristics["color"] = "azul"

	again, err := r.GetByID(ctx, "u1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, "rojo", again.Characteristics["color"])
}

func TestInMemoryProductRepository_Delete(t *testing.T) {
	ctx := context.Background()
	r := NewInMemoryProductRepository()

	a, _ := r.Create(ctx, product("u1", "A", "X", "1"))
	_, _ = r.Create(ctx, product("u1", "B", "X", "2"))
	_, _ = r.Create(ctx, product("u2", "C", "X", "3"))

	assert.ErrorIs(t, r.Delete(ctx, "u2", a.ID), ErrProductNotFound)
	require.NoError(t, r.Delete(ctx, "u1", a.ID))
	assert.ErrorIs(t, r.Delete(ctx, "u1", a.ID), ErrProductNotFound)

	removed, err := r.DeleteAll(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	n, _ := r.Count(ctx, "u1")
	assert.Zero(t, n)
	n, _ = r.Count(ctx, "u2")
	assert.Equal(t, 1, n)
}
