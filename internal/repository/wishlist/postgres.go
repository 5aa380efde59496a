package wishlist

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

func (r *postgresRepo) GetByUser(ctx context.Context, userID string) (*domain.Wishlist, error) {
	const listQuery = `
SELECT id::text, user_id::text, created_at
FROM wishlists
WHERE user_id = $1
`
	var list domain.Wishlist
	err := r.pool.QueryRow(ctx, listQuery, userID).Scan(&list.ID, &list.UserID, &list.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	const itemsQuery = `
SELECT i.id::text, i.wishlist_id::text, i.product_id::text, i.created_at,
       p.name, p.sku, p.price, p.sale_price, p.stock_status, p.images
FROM wishlist_items i
JOIN products p ON p.id = i.product_id
WHERE i.wishlist_id = $1
ORDER BY i.created_at ASC
`
	rows, err := r.pool.Query(ctx, itemsQuery, list.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.WishlistItem
		var prod domain.Product
		var imagesJSON []byte
		if err := rows.Scan(
			&item.ID,
			&item.WishlistID,
			&item.ProductID,
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
		list.Items = append(list.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &list, nil
}

func (r *postgresRepo) AddItem(ctx context.Context, userID, productID string) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var listID string
	if err := tx.QueryRow(ctx, `
INSERT INTO wishlists (user_id)
VALUES ($1)
ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
RETURNING id::text
`, userID).Scan(&listID); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `
INSERT INTO wishlist_items (wishlist_id, product_id)
VALUES ($1, $2)
ON CONFLICT (wishlist_id, product_id) DO NOTHING
`, listID, productID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *postgresRepo) RemoveItem(ctx context.Context, userID, itemID string) error {
	const q = `
DELETE FROM wishlist_items i
USING wishlists w
WHERE i.id = $1 AND i.wishlist_id = w.id AND w.user_id = $2
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

func (r *postgresRepo) HasProduct(ctx context.Context, userID, productID string) (bool, error) {
	const q = `
SELECT EXISTS (
	SELECT 1
	FROM wishlist_items i
	JOIN wishlists w ON w.id = i.wishlist_id
	WHERE w.user_id = $1 AND i.product_id = $2
)
`
	var exists bool
	if err := r.pool.QueryRow(ctx, q, userID, productID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
