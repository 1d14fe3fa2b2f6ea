package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rogerio-castellano/promo-quoter/internal/models"
)

const quoteColumns = `id, user_id, client_name, category, products, total_basic, total_medium, total_premium, marking_techniques, created_at`

type PostgresQuoteRepository struct {
	db      *sql.DB
	timeout time.Duration
}

func NewPostgresQuoteRepository(db *sql.DB, timeout time.Duration) *PostgresQuoteRepository {
	return &PostgresQuoteRepository{db: db, timeout: timeout}
}

func (r *PostgresQuoteRepository) Create(ctx context.Context, q models.Quote) (models.Quote, error) {
	q = prepareQuote(q)

	products, err := json.Marshal(q.Products)
	if err != nil {
		return models.Quote{}, fmt.Errorf("encode quote products: %w", err)
	}
	techniques, err := json.Marshal(q.MarkingTechniques)
	if err != nil {
		return models.Quote{}, fmt.Errorf("encode quote techniques: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	_, err = r.db.ExecContext(ctx, `INSERT INTO quotes (`+quoteColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		q.ID, q.UserID, q.ClientName, q.Category, products, q.TotalBasic, q.TotalMedium, q.TotalPremium, techniques, q.CreatedAt)
	if err != nil {
		return models.Quote{}, fmt.Errorf("insert quote: %w", err)
	}
	return q, nil
}

func (r *PostgresQuoteRepository) GetAll(ctx context.Context, userID string) ([]models.Quote, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `SELECT `+quoteColumns+` FROM quotes WHERE user_id = $1 ORDER BY created_at DESC, seq DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("query quotes: %w", err)
	}
	defer rows.Close()

	quotes := []models.Quote{}
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, err
		}
		quotes = append(quotes, q)
	}
	return quotes, rows.Err()
}

func (r *PostgresQuoteRepository) GetByID(ctx context.Context, userID, id string) (models.Quote, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	q, err := scanQuote(r.db.QueryRowContext(ctx, `SELECT `+quoteColumns+` FROM quotes WHERE id = $1 AND user_id = $2`, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Quote{}, ErrQuoteNotFound
	}
	return q, err
}

func (r *PostgresQuoteRepository) Count(ctx context.Context, userID string) (int, error) {
	return countRows(ctx, r.db, r.timeout, `SELECT COUNT(*) FROM quotes WHERE user_id = $1`, userID)
}

func scanQuote(s rowScanner) (models.Quote, error) {
	var (
		q                    models.Quote
		products, techniques []byte
	)
	err := s.Scan(&q.ID, &q.UserID, &q.ClientName, &q.Category, &products, &q.TotalBasic, &q.TotalMedium, &q.TotalPremium, &techniques, &q.CreatedAt)
	if err != nil {
		return models.Quote{}, err
	}
	if err := json.Unmarshal(products, &q.Products); err != nil {
		return models.Quote{}, fmt.Errorf("decode quote %s products: %w", q.ID, err)
	}
	if err := json.Unmarshal(techniques, &q.MarkingTechniques); err != nil {
		return models.Quote{}, fmt.Errorf("decode quote %s techniques: %w", q.ID, err)
	}
	return q, nil
}
