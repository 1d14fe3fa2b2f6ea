package quoting

import (
	"context"
	"errors"

	"github.com/rogerio-castellano/promo-quoter/internal/models"
	"github.com/rogerio-castellano/promo-quoter/internal/repo"
)

// SeedPredefined adds the built-in techniques the user does not have yet and
// returns the ones it created.
func SeedPredefined(ctx context.Context, techniques repo.TechniqueRepository, userID string) ([]models.MarkingTechnique, error) {
	existing, err := techniques.GetAll(ctx, userID)
	if err != nil {
		return nil, err
	}
	have := make(map[string]bool, len(existing))
	for _, t := range existing {
		have[t.Name] = true
	}

	created := []models.MarkingTechnique{}
	for _, p := range models.PredefinedTechniques {
		if have[p.Name] {
			continue
		}
		t, err := techniques.Create(ctx, models.MarkingTechnique{
			UserID:      userID,
			Name:        p.Name,
			CostPerUnit: p.CostPerUnit,
			Description: p.Description,
		})
		if errors.Is(err, repo.ErrDuplicatedValueUnique) {
			continue
		}
		if err != nil {
			return created, err
		}
		created = append(created, t)
	}
	return created, nil
}
