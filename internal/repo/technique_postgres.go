package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rogerio-castellano/promo-quoter/internal/models"
)

const techniqueColumns = `id, user_id, name, cost_per_unit, description, created_at`

type PostgresTechniqueRepository struct {
	db      *sql.DB
	timeout time.Duration
}

func NewPostgresTechniqueRepository(db *sql.DB, timeout time.Duration) *PostgresTechniqueRepository {
	return &PostgresTechniqueRepository{db: db, timeout: timeout}
}

func (r *PostgresTechniqueRepository) Create(ctx context.Context, t models.MarkingTechnique) (models.MarkingTechnique, error) {
	t = prepareTechnique(t)
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx, `INSERT INTO marking_techniques (`+techniqueColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
		t.ID, t.UserID, t.Name, t.CostPerUnit, t.Description, t.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return models.MarkingTechnique{}, ErrDuplicatedValueUnique
		}
		return models.MarkingTechnique{}, fmt.Errorf("insert marking technique: %w", err)
	}
	return t, nil
}

func (r *PostgresTechniqueRepository) GetAll(ctx context.Context, userID string) ([]models.MarkingTechnique, error) {
	return r.query(ctx, `SELECT `+techniqueColumns+` FROM marking_techniques WHERE user_id = $1 ORDER BY seq`, userID)
}

func (r *PostgresTechniqueRepository) FindByNames(ctx context.Context, userID string, names []string) ([]models.MarkingTechnique, error) {
	if len(names) == 0 {
		return []models.MarkingTechnique{}, nil
	}
	return r.query(ctx, `SELECT `+techniqueColumns+` FROM marking_techniques WHERE user_id = $1 AND name = ANY($2) ORDER BY seq`, userID, names)
}

func (r *PostgresTechniqueRepository) Count(ctx context.Context, userID string) (int, error) {
	return countRows(ctx, r.db, r.timeout, `SELECT COUNT(*) FROM marking_techniques WHERE user_id = $1`, userID)
}

func (r *PostgresTechniqueRepository) query(ctx context.Context, query string, args ...any) ([]models.MarkingTechnique, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query marking techniques: %w", err)
	}
	defer rows.Close()

	out := []models.MarkingTechnique{}
	for rows.Next() {
		var t models.MarkingTechnique
		if err := rows.Scan(&t.ID, &t.UserID, &t.Name, &t.CostPerUnit, &t.Description, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
