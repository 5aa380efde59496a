package order

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/salehkamalkamel/rofida-furniture-sub001/internal/domain"
)

const orderColumns = `id::text, user_id::text, status, payment_status, total_amount, shipping_amount, currency,
       ship_full_name, ship_phone, ship_email, ship_country, ship_city, ship_street, ship_postal_code, ship_notes,
       created_at, updated_at`

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger logrus.FieldLogger
}

// NewPostgres returns a Repository backed by Postgres.
func NewPostgres(pool *pgxpool.Pool, logger logrus.FieldLogger) Repository {
	if logger == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		logger = l
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) Create(ctx context.Context, in CreateInput) (*domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if in.NewAddress != nil {
		a := in.NewAddress
		if _, err := tx.Exec(ctx, `UPDATE addresses SET is_default = FALSE WHERE user_id = $1`, in.UserID); err != nil {
			return nil, err
		}
		if _, err := tx.Exec(ctx, `
INSERT INTO addresses (user_id, shipping_rule_id, full_name, phone, email, country, city, street, postal_code, notes, is_default)
VALUES ($1, NULLIF($2, '')::uuid, $3, $4, $5, $6, $7, $8, $9, $10, TRUE)
`, in.UserID, a.ShippingRuleID, a.FullName, a.Phone, a.Email,
			a.Country, a.City, a.Street, a.PostalCode, a.Notes); err != nil {
			return nil, err
		}
	}

	const orderQuery = `
INSERT INTO orders (user_id, status, payment_status, total_amount, shipping_amount, currency,
                    ship_full_name, ship_phone, ship_email, ship_country, ship_city, ship_street,
                    ship_postal_code, ship_notes)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
RETURNING ` + orderColumns
	s := in.Snapshot
	created, err := scanOrder(tx.QueryRow(ctx, orderQuery,
		in.UserID, domain.OrderPending, domain.PaymentPending,
		in.TotalAmount, in.ShippingAmount, in.Currency,
		s.FullName, s.Phone, s.Email, s.Country, s.City, s.Street, s.PostalCode, s.Notes,
	))
	if err != nil {
		return nil, err
	}

	const itemQuery = `
INSERT INTO order_items (order_id, product_id, product_name, product_sku, product_image,
                         unit_price, customization_price, quantity, total,
                         is_customized, customization_text, selected_color)
VALUES ($1, NULLIF($2, '')::uuid, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
RETURNING id::text
`
	for _, item := range in.Items {
		var itemID string
		if err := tx.QueryRow(ctx, itemQuery,
			created.ID, item.ProductID, item.ProductName, item.ProductSKU, item.ProductImage,
			item.UnitPrice, item.CustomizationPrice, item.Quantity, item.Total,
			item.IsCustomized, item.CustomizationText, item.SelectedColor,
		).Scan(&itemID); err != nil {
			return nil, err
		}
		created.Items = append(created.Items, domain.OrderItem{
			ID:                 itemID,
			OrderID:            created.ID,
			ProductID:          item.ProductID,
			ProductName:        item.ProductName,
			ProductSKU:         item.ProductSKU,
			ProductImage:       item.ProductImage,
			UnitPrice:          item.UnitPrice,
			CustomizationPrice: item.CustomizationPrice,
			Quantity:           item.Quantity,
			Total:              item.Total,
			IsCustomized:       item.IsCustomized,
			CustomizationText:  item.CustomizationText,
			SelectedColor:      item.SelectedColor,
		})
	}

	if in.ClearCart {
		if _, err := tx.Exec(ctx, `DELETE FROM carts WHERE user_id = $1`, in.UserID); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	r.logger.WithFields(logrus.Fields{
		"order_id": created.ID,
		"user_id":  created.UserID,
		"total":    created.TotalAmount,
	}).Info("order repo: created")
	return created, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	const q = `SELECT ` + orderColumns + ` FROM orders WHERE id = $1 LIMIT 1`
	o, err := scanOrder(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		return nil, err
	}
	items, err := r.fetchItems(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return o, nil
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	const q = `SELECT ` + orderColumns + ` FROM orders WHERE user_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, q, userID)
}

func (r *postgresRepo) ListAll(ctx context.Context) ([]domain.Order, error) {
	const q = `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC`
	return r.list(ctx, q)
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, id, from, to string) error {
	const q = `
UPDATE orders
SET status = $1, updated_at = now()
WHERE id = $2 AND status = $3
`
	cmd, err := r.pool.Exec(ctx, q, to, id, from)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) list(ctx context.Context, q string, args ...any) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) fetchItems(ctx context.Context, orderID string) ([]domain.OrderItem, error) {
	const q = `
SELECT id::text, order_id::text, COALESCE(product_id::text, ''), product_name, product_sku, product_image,
       unit_price, customization_price, quantity, total, is_customized, customization_text, selected_color
FROM order_items
WHERE order_id = $1
ORDER BY product_name ASC
`
	rows, err := r.pool.Query(ctx, q, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ProductID,
			&item.ProductName,
			&item.ProductSKU,
			&item.ProductImage,
			&item.UnitPrice,
			&item.CustomizationPrice,
			&item.Quantity,
			&item.Total,
			&item.IsCustomized,
			&item.CustomizationText,
			&item.SelectedColor,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	err := row.Scan(
		&o.ID,
		&o.UserID,
		&o.Status,
		&o.PaymentStatus,
		&o.TotalAmount,
		&o.ShippingAmount,
		&o.Currency,
		&o.Shipping.FullName,
		&o.Shipping.Phone,
		&o.Shipping.Email,
		&o.Shipping.Country,
		&o.Shipping.City,
		&o.Shipping.Street,
		&o.Shipping.PostalCode,
		&o.Shipping.Notes,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}
