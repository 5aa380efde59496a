package shipping

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/salehkamalkamel/rofida-furniture-sub001/internal/domain"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.ShippingRule, error) {
	const q = `
SELECT id::text, name, price, free_over, is_active
FROM shipping_rules
WHERE id = $1
LIMIT 1
`
	var rule domain.ShippingRule
	err := r.pool.QueryRow(ctx, q, id).Scan(&rule.ID, &rule.Name, &rule.Price, &rule.FreeOver, &rule.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &rule, nil
}

func (r *postgresRepo) ListActive(ctx context.Context) ([]domain.ShippingRule, error) {
	const q = `
SELECT id::text, name, price, free_over, is_active
FROM shipping_rules
WHERE is_active
ORDER BY price ASC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ShippingRule
	for rows.Next() {
		var rule domain.ShippingRule
		if err := rows.Scan(&rule.ID, &rule.Name, &rule.Price, &rule.FreeOver, &rule.IsActive); err != nil {
			return nil, err
		}
		result = append(result, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
