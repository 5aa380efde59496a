package cart

import (
	"context"
	"encoding/json"
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

func (r *postgresRepo) GetByUser(ctx context.Context, userID string) (*domain.Cart, error) {
	const cartQuery = `
SELECT id::text, user_id::text, created_at
FROM carts
WHERE user_id = $1
`
	var cart domain.Cart
	err := r.pool.QueryRow(ctx, cartQuery, userID).Scan(&cart.ID, &cart.UserID, &cart.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	const itemsQuery = `
SELECT i.id::text, i.cart_id::text, i.product_id::text, i.quantity,
       i.price_at_add, i.customization_price, i.is_customized,
       i.customization_text, i.selected_color, i.created_at,
       p.name, p.sku, p.price, p.sale_price, p.stock_status, p.images
FROM cart_items i
JOIN products p ON p.id = i.product_id
WHERE i.cart_id = $1
ORDER BY i.created_at ASC
`
	rows, err := r.pool.Query(ctx, itemsQuery, cart.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.CartItem
		var prod domain.Product
		var imagesJSON []byte
		if err := rows.Scan(
			&item.ID,
			&item.CartID,
			&item.ProductID,
			&item.Quantity,
			&item.PriceAtAdd,
			&item.CustomizationPrice,
			&item.IsCustomized,
			&item.CustomizationText,
			&item.SelectedColor,
			&item.CreatedAt,
			&prod.Name,
			&prod.SKU,
			&prod.Price,
			&prod.SalePrice,
			&prod.StockStatus,
			&imagesJSON,
		); err != nil {
			return nil, err
		}
		prod.ID = item.ProductID
		if len(imagesJSON) > 0 {
			_ = json.Unmarshal(imagesJSON, &prod.Images)
		}
		item.Product = &prod
		cart.Items = append(cart.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &cart, nil
}

func (r *postgresRepo) AddItem(ctx context.Context, userID string, in AddItemInput) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	// The no-op update makes the RETURNING clause fire on conflict too,
	// so concurrent first adds race safely on the user_id constraint and
	// both land on the same cart row.
	var cartID string
	if err := tx.QueryRow(ctx, `
INSERT INTO carts (user_id)
VALUES ($1)
ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
RETURNING id::text
`, userID).Scan(&cartID); err != nil {
		return err
	}

	// Merge-on-conflict over the full dedup key. Quantities sum; the
	// stored price snapshot from the first add wins.
	if _, err := tx.Exec(ctx, `
INSERT INTO cart_items (cart_id, product_id, quantity, price_at_add, customization_price,
                        is_customized, customization_text, selected_color)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (cart_id, product_id, is_customized, customization_text, selected_color)
DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
`, cartID, in.ProductID, in.Quantity, in.PriceAtAdd, in.CustomizationPrice,
		in.IsCustomized, in.CustomizationText, in.SelectedColor); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *postgresRepo) SetQuantity(ctx context.Context, userID, itemID string, quantity int) error {
	if quantity <= 0 {
		return r.RemoveItem(ctx, userID, itemID)
	}
	const q = `
UPDATE cart_items i
SET quantity = $1
FROM carts c
WHERE i.id = $2 AND i.cart_id = c.id AND c.user_id = $3
`
	cmd, err := r.pool.Exec(ctx, q, quantity, itemID, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) RemoveItem(ctx context.Context, userID, itemID string) error {
	// Owner scoping lives in the statement itself: an itemID from another
	// user's cart matches zero rows.
	const q = `
DELETE FROM cart_items i
USING carts c
WHERE i.id = $1 AND i.cart_id = c.id AND c.user_id = $2
`
	cmd, err := r.pool.Exec(ctx, q, itemID, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) CountItems(ctx context.Context, userID string) (int, error) {
	const q = `
SELECT COALESCE(SUM(i.quantity), 0)
FROM cart_items i
JOIN carts c ON c.id = i.cart_id
WHERE c.user_id = $1
`
	var count int
	if err := r.pool.QueryRow(ctx, q, userID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *postgresRepo) HasProduct(ctx context.Context, userID, productID string) (bool, error) {
	const q = `
SELECT EXISTS (
	SELECT 1
	FROM cart_items i
	JOIN carts c ON c.id = i.cart_id
	WHERE c.user_id = $1 AND i.product_id = $2
)
`
	var exists bool
	if err := r.pool.QueryRow(ctx, q, userID, productID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
