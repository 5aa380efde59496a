package address

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/salehkamalkamel/rofida-furniture-sub001/internal/domain"
)

const addressColumns = `id::text, user_id::text, COALESCE(shipping_rule_id::text, ''), full_name, phone, email,
       country, city, street, postal_code, notes, is_default, created_at`

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Create(ctx context.Context, a domain.Address) (*domain.Address, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if a.IsDefault {
		if _, err := tx.Exec(ctx, `UPDATE addresses SET is_default = FALSE WHERE user_id = $1`, a.UserID); err != nil {
			return nil, err
		}
	}

	const q = `
INSERT INTO addresses (user_id, shipping_rule_id, full_name, phone, email, country, city, street, postal_code, notes, is_default)
VALUES ($1, NULLIF($2, '')::uuid, $3, $4, $5, $6, $7, $8, $9, $10, $11)
RETURNING ` + addressColumns
	created, err := scanAddress(tx.QueryRow(ctx, q,
		a.UserID, a.ShippingRuleID, a.FullName, a.Phone, a.Email,
		a.Country, a.City, a.Street, a.PostalCode, a.Notes, a.IsDefault,
	))
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return created, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, userID, id string) (*domain.Address, error) {
	const q = `SELECT ` + addressColumns + ` FROM addresses WHERE id = $1 AND user_id = $2 LIMIT 1`
	return scanAddress(r.pool.QueryRow(ctx, q, id, userID))
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID string) ([]domain.Address, error) {
	const q = `SELECT ` + addressColumns + ` FROM addresses WHERE user_id = $1 ORDER BY is_default DESC, created_at DESC`
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Address
	for rows.Next() {
		a, err := scanAddress(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func scanAddress(row pgx.Row) (*domain.Address, error) {
	var a domain.Address
	err := row.Scan(
		&a.ID,
		&a.UserID,
		&a.ShippingRuleID,
		&a.FullName,
		&a.Phone,
		&a.Email,
		&a.Country,
		&a.City,
		&a.Street,
		&a.PostalCode,
		&a.Notes,
		&a.IsDefault,
		&a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}
