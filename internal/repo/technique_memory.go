package repo

import (
	"context"
	"slices"
	"sync"

	"github.com/rogerio-castellano/promo-quoter/internal/models"
)

type InMemoryTechniqueRepository struct {
	mu         sync.RWMutex
	techniques []models.MarkingTechnique
}

func NewInMemoryTechniqueRepository() *InMemoryTechniqueRepository {
	return &InMemoryTechniqueRepository{techniques: []models.MarkingTechnique{}}
}

func prepareTechnique(t models.MarkingTechnique) models.MarkingTechnique {
	if t.ID == "" {
		t.ID = newID()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now()
	}
	return t
}

func (r *InMemoryTechniqueRepository) Create(_ context.Context, t models.MarkingTechnique) (models.MarkingTechnique, error) {
	t = prepareTechnique(t)
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.techniques {
		if existing.UserID == t.UserID && existing.Name == t.Name {
			return models.MarkingTechnique{}, ErrDuplicatedValueUnique
		}
	}
	r.techniques = append(r.techniques, t)
	return t, nil
}

func (r *InMemoryTechniqueRepository) GetAll(_ context.Context, userID string) ([]models.MarkingTechnique, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []models.MarkingTechnique{}
	for _, t := range r.techniques {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *InMemoryTechniqueRepository) FindByNames(_ context.Context, userID string, names []string) ([]models.MarkingTechnique, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []models.MarkingTechnique{}
	for _, t := range r.techniques {
		if t.UserID == userID && slices.Contains(names, t.Name) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *InMemoryTechniqueRepository) Count(ctx context.Context, userID string) (int, error) {
	all, err := r.GetAll(ctx, userID)
	return len(all), err
}

func (r *InMemoryTechniqueRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.techniques = []models.MarkingTechnique{}
}
