package repo

import (
	"context"

	"github.com/rogerio-castellano/promo-quoter/internal/models"
)

// TechniqueRepository stores marking techniques. Techniques are additive only.
type TechniqueRepository interface {
	Create(ctx context.Context, t models.MarkingTechnique) (models.MarkingTechnique, error)
	GetAll(ctx context.Context, userID string) ([]models.MarkingTechnique, error)
	// FindByNames returns the techniques whose name is in names, in catalog order.
	FindByNames(ctx context.Context, userID string, names []string) ([]models.MarkingTechnique, error)
	Count(ctx context.Context, userID string) (int, error)
}
