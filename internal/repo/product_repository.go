package repo

import (
	"context"

	"github.com/rogerio-castellano/promo-quoter/internal/models"
)

// ProductRepository defines the interface for product data operations.
// Every read and delete is scoped to the owning user.
type ProductRepository interface {
	Create(ctx context.Context, product models.Product) (models.Product, error)
	CreateMany(ctx context.Context, products []models.Product) (int, error)
	GetAll(ctx context.Context, userID string) ([]models.Product, error)
	GetByID(ctx context.Context, userID, id string) (models.Product, error)
	Filter(ctx context.Context, userID string, pf ProductFilter) ([]models.Product, error)
	Delete(ctx context.Context, userID, id string) error
	DeleteAll(ctx context.Context, userID string) (int, error)
	Count(ctx context.Context, userID string) (int, error)
}
