package repo

import (
	"context"
	"sync"

	"github.com/rogerio-castellano/promo-quoter/internal/models"
)

// InMemoryProductRepository is an in-memory implementation of ProductRepository.
// Products are kept in insertion order.
type InMemoryProductRepository struct {
	mu       sync.RWMutex
	products []models.Product
}

// NewInMemoryProductRepository creates a new instance of InMemoryProductRepository.
func NewInMemoryProductRepository() *InMemoryProductRepository {
	return &InMemoryProductRepository{
		products: []models.Product{},
	}
}

func prepareProduct(p models.Product) models.Product {
	if p.ID == "" {
		p.ID = newID()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now()
	}
	if p.Characteristics == nil {
		p.Characteristics = models.Characteristics{}
	}
	return p
}

// Create adds a new product to the repository.
func (r *InMemoryProductRepository) Create(_ context.Context, product models.Product) (models.Product, error) {
	product = prepareProduct(product)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.products = append(r.products, product.Clone())
	return product, nil
}

// CreateMany adds all products or none.
func (r *InMemoryProductRepository) CreateMany(_ context.Context, products []models.Product) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range products {
		r.products = append(r.products, prepareProduct(p).Clone())
	}
	return len(products), nil
}

// GetAll retrieves the user's products in insertion order.
func (r *InMemoryProductRepository) GetAll(ctx context.Context, userID string) ([]models.Product, error) {
	return r.Filter(ctx, userID, ProductFilter{})
}

// GetByID retrieves a product by its ID.
func (r *InMemoryProductRepository) GetByID(_ context.Context, userID, id string) (models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.products {
		if p.ID == id && p.UserID == userID {
			return p.Clone(), nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

// Filter returns copies of the matching products, so callers get a stable snapshot.
func (r *InMemoryProductRepository) Filter(_ context.Context, userID string, pf ProductFilter) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	filtered := []models.Product{}
	for _, p := range r.products {
		if p.UserID == userID && matchesFilter(p, pf) {
			filtered = append(filtered, p.Clone())
		}
	}
	return filtered, nil
}

// Delete removes a product from the repository by its ID.
func (r *InMemoryProductRepository) Delete(_ context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.products {
		if p.ID == id && p.UserID == userID {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return nil
		}
	}
	return ErrProductNotFound
}

// DeleteAll removes every product of the user and reports how many were removed.
func (r *InMemoryProductRepository) DeleteAll(_ context.Context, userID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.products[:0]
	removed := 0
	for _, p := range r.products {
		if p.UserID == userID {
			removed++
			continue
		}
		kept = append(kept, p)
	}
	r.products = kept
	return removed, nil
}

func (r *InMemoryProductRepository) Count(_ context.Context, userID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, p := range r.products {
		if p.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (r *InMemoryProductRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products = []models.Product{}
}
