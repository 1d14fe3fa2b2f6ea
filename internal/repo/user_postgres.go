package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rogerio-castellano/promo-quoter/internal/models"
)

const uniqueViolation = "23505"

type PostgresUserRepository struct {
	db      *sql.DB
	timeout time.Duration
}

func NewPostgresUserRepository(db *sql.DB, timeout time.Duration) *PostgresUserRepository {
	return &PostgresUserRepository{db: db, timeout: timeout}
}

func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (models.User, error) {
	return r.getOne(ctx, `SELECT id, email, username, password_hash, is_active, created_at FROM users WHERE email = $1`,
		strings.ToLower(strings.TrimSpace(email)))
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, id string) (models.User, error) {
	return r.getOne(ctx, `SELECT id, email, username, password_hash, is_active, created_at FROM users WHERE id = $1`, id)
}

func (r *PostgresUserRepository) getOne(ctx context.Context, query string, arg string) (models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var u models.User
	err := r.db.QueryRowContext(ctx, query, arg).
		Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.IsActive, &u.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	return u, err
}

func (r *PostgresUserRepository) CreateUser(ctx context.Context, u models.User) (models.User, error) {
	u = prepareUser(u)
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, email, username, password_hash, is_active, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		u.ID, u.Email, u.Username, u.PasswordHash, u.IsActive, u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return models.User{}, ErrDuplicatedValueUnique
		}
		return models.User{}, fmt.Errorf("insert user: %w", err)
	}
	return u, nil
}
