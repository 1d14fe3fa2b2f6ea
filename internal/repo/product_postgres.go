package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rogerio-castellano/promo-quoter/internal/models"
)

const productColumns = `id, user_id, name, description, base_price, category, characteristics, image_url, created_at`

type PostgresProductRepository struct {
	db      *sql.DB
	timeout time.Duration
}

func NewPostgresProductRepository(db *sql.DB, timeout time.Duration) *PostgresProductRepository {
	return &PostgresProductRepository{db: db, timeout: timeout}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(s rowScanner) (models.Product, error) {
	var p models.Product
	err := s.Scan(&p.ID, &p.UserID, &p.Name, &p.Description, &p.BasePrice, &p.Category, &p.Characteristics, &p.ImageURL, &p.CreatedAt)
	return p, err
}

func (r *PostgresProductRepository) Create(ctx context.Context, p models.Product) (models.Product, error) {
	p = prepareProduct(p)
	query := `INSERT INTO products (` + productColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx, query, p.ID, p.UserID, p.Name, p.Description, p.BasePrice, p.Category, p.Characteristics, p.ImageURL, p.CreatedAt)
	if err != nil {
		return models.Product{}, fmt.Errorf("insert product: %w", err)
	}
	return p, nil
}

// CreateMany inserts all products in one transaction.
func (r *PostgresProductRepository) CreateMany(ctx context.Context, products []models.Product) (int, error) {
	if len(products) == 0 {
		return 0, nil
	}
	// Bulk imports get a longer budget than single statements.
	ctx, cancel := context.WithTimeout(ctx, r.timeout*10)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO products (`+productColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`)
	if err != nil {
		return 0, fmt.Errorf("prepare import: %w", err)
	}
	defer stmt.Close()

	for _, p := range products {
		p = prepareProduct(p)
		if _, err := stmt.ExecContext(ctx, p.ID, p.UserID, p.Name, p.Description, p.BasePrice, p.Category, p.Characteristics, p.ImageURL, p.CreatedAt); err != nil {
			return 0, fmt.Errorf("insert product %q: %w", p.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit import: %w", err)
	}
	return len(products), nil
}

func (r *PostgresProductRepository) GetAll(ctx context.Context, userID string) ([]models.Product, error) {
	return r.Filter(ctx, userID, ProductFilter{})
}

func (r *PostgresProductRepository) GetByID(ctx context.Context, userID, id string) (models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 AND user_id = $2`
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	return p, err
}

// Filter runs a single SELECT, so the result is one consistent snapshot.
// Rows come back in insertion order.
func (r *PostgresProductRepository) Filter(ctx context.Context, userID string, pf ProductFilter) ([]models.Product, error) {
	conditions, args := filterConditions(userID, pf)
	query := `SELECT ` + productColumns + ` FROM products WHERE ` + conditions + ` ORDER BY seq`

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func filterConditions(userID string, pf ProductFilter) (string, []any) {
	query := "user_id = $1"
	args := []any{userID}
	argIdx := 2

	if pf.Category != "" {
		query += fmt.Sprintf(" AND lower(btrim(category)) = $%d", argIdx)
		args = append(args, NormalizeCategory(pf.Category))
		argIdx++
	}
	if pf.Name != "" {
		query += fmt.Sprintf(` AND name ILIKE $%d ESCAPE '\'`, argIdx)
		args = append(args, containsPattern(pf.Name))
		argIdx++
	}
	if pf.MinPrice != nil {
		query += fmt.Sprintf(" AND base_price >= $%d", argIdx)
		args = append(args, *pf.MinPrice)
		argIdx++
	}
	if pf.MaxPrice != nil {
		query += fmt.Sprintf(" AND base_price <= $%d", argIdx)
		args = append(args, *pf.MaxPrice)
	}
	return query, args
}

func (r *PostgresProductRepository) Delete(ctx context.Context, userID, id string) error {
	query := `DELETE FROM products WHERE id = $1 AND user_id = $2`
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *PostgresProductRepository) DeleteAll(ctx context.Context, userID string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE user_id = $1`, userID)
	if err != nil {
		return 0, err
	}
	rowsAffected, _ := res.RowsAffected()
	return int(rowsAffected), nil
}

func (r *PostgresProductRepository) Count(ctx context.Context, userID string) (int, error) {
	return countRows(ctx, r.db, r.timeout, `SELECT COUNT(*) FROM products WHERE user_id = $1`, userID)
}

func countRows(ctx context.Context, db *sql.DB, timeout time.Duration, query string, args ...any) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var n int
	if err := db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
