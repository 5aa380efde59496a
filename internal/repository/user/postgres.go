package user

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/salehkamalkamel/rofida-furniture-sub001/internal/domain"
)

const userColumns = `id::text, name, email, password_hash, role, is_anonymous, created_at, updated_at`

type postgresRepo struct {
	pool *pgxpool.Pool
}

// NewPostgres returns a Repository backed by Postgres.
func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Create(ctx context.Context, in CreateInput) (*domain.User, error) {
	role := in.Role
	if role == "" {
		role = domain.RoleUser
	}
	const q = `
INSERT INTO users (name, email, password_hash, role, is_anonymous)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + userColumns
	return scanUser(r.pool.QueryRow(ctx, q,
		in.Name,
		strings.ToLower(strings.TrimSpace(in.Email)),
		in.PasswordHash,
		role,
		in.IsAnonymous,
	))
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE id = $1 LIMIT 1`
	return scanUser(r.pool.QueryRow(ctx, q, id))
}

func (r *postgresRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE lower(email) = lower($1) LIMIT 1`
	return scanUser(r.pool.QueryRow(ctx, q, email))
}

func (r *postgresRepo) SetGuestIdentity(ctx context.Context, id, name, email string) (*domain.User, error) {
	const q = `
UPDATE users
SET name = $1, email = $2, updated_at = now()
WHERE id = $3 AND is_anonymous
RETURNING ` + userColumns
	return scanUser(r.pool.QueryRow(ctx, q, name, strings.ToLower(email), id))
}

func (r *postgresRepo) Promote(ctx context.Context, id, name, email, passwordHash string) (*domain.User, error) {
	const q = `
UPDATE users
SET name = $1, email = $2, password_hash = $3, is_anonymous = FALSE, updated_at = now()
WHERE id = $4
RETURNING ` + userColumns
	return scanUser(r.pool.QueryRow(ctx, q, name, strings.ToLower(email), passwordHash, id))
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.IsAnonymous,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		return nil, err
	}
	return &u, nil
}
