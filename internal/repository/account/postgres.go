package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

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

type cartLine struct {
	id                string
	productID         string
	quantity          int
	isCustomized      bool
	customizationText string
	selectedColor     string
}

func (r *postgresRepo) MigrateAnonymous(ctx context.Context, anonUserID, targetUserID string) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	// Orders and addresses have no per-user uniqueness, so plain
	// reassignment cannot collide.
	if _, err := tx.Exec(ctx, `UPDATE orders SET user_id = $1 WHERE user_id = $2`, targetUserID, anonUserID); err != nil {
		return fmt.Errorf("reassign orders: %w", err)
	}
	if _, err := tx.Exec(ctx, `UPDATE addresses SET user_id = $1 WHERE user_id = $2`, targetUserID, anonUserID); err != nil {
		return fmt.Errorf("reassign addresses: %w", err)
	}

	if err := mergeCarts(ctx, tx, anonUserID, targetUserID); err != nil {
		return fmt.Errorf("merge carts: %w", err)
	}
	if err := mergeWishlists(ctx, tx, anonUserID, targetUserID); err != nil {
		return fmt.Errorf("merge wishlists: %w", err)
	}

	// The anonymous row is empty now; dropping it cascades its tokens
	// and invalidates the old session.
	if _, err := tx.Exec(ctx, `DELETE FROM users WHERE id = $1 AND is_anonymous`, anonUserID); err != nil {
		return fmt.Errorf("delete anonymous user: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}
	r.logger.WithFields(logrus.Fields{
		"anonymous_user_id": anonUserID,
		"target_user_id":    targetUserID,
	}).Info("account repo: anonymous migration applied")
	return nil
}

func mergeCarts(ctx context.Context, tx pgx.Tx, anonUserID, targetUserID string) error {
	var anonCartID string
	err := tx.QueryRow(ctx, `SELECT id::text FROM carts WHERE user_id = $1`, anonUserID).Scan(&anonCartID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil
	}
	if err != nil {
		return err
	}

	var targetCartID string
	err = tx.QueryRow(ctx, `SELECT id::text FROM carts WHERE user_id = $1`, targetUserID).Scan(&targetCartID)
	if errors.Is(err, pgx.ErrNoRows) {
		// Cheapest path: the target has no cart, so the anonymous cart
		// changes owner wholesale.
		_, err = tx.Exec(ctx, `UPDATE carts SET user_id = $1 WHERE id = $2`, targetUserID, anonCartID)
		return err
	}
	if err != nil {
		return err
	}

	lines, err := collectCartLines(ctx, tx, anonCartID)
	if err != nil {
		return err
	}

	for _, line := range lines {
		cmd, err := tx.Exec(ctx, `
UPDATE cart_items
SET quantity = quantity + $1
WHERE cart_id = $2 AND product_id = $3 AND is_customized = $4
  AND customization_text = $5 AND selected_color = $6
`, line.quantity, targetCartID, line.productID, line.isCustomized, line.customizationText, line.selectedColor)
		if err != nil {
			return err
		}
		if cmd.RowsAffected() > 0 {
			// Collision: quantities were summed onto the target line, the
			// anonymous line is discarded.
			if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE id = $1`, line.id); err != nil {
				return err
			}
			continue
		}
		if _, err := tx.Exec(ctx, `UPDATE cart_items SET cart_id = $1 WHERE id = $2`, targetCartID, line.id); err != nil {
			return err
		}
	}

	_, err = tx.Exec(ctx, `DELETE FROM carts WHERE id = $1`, anonCartID)
	return err
}

func mergeWishlists(ctx context.Context, tx pgx.Tx, anonUserID, targetUserID string) error {
	var anonListID string
	err := tx.QueryRow(ctx, `SELECT id::text FROM wishlists WHERE user_id = $1`, anonUserID).Scan(&anonListID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil
	}
	if err != nil {
		return err
	}

	var targetListID string
	err = tx.QueryRow(ctx, `SELECT id::text FROM wishlists WHERE user_id = $1`, targetUserID).Scan(&targetListID)
	if errors.Is(err, pgx.ErrNoRows) {
		_, err = tx.Exec(ctx, `UPDATE wishlists SET user_id = $1 WHERE id = $2`, targetUserID, anonListID)
		return err
	}
	if err != nil {
		return err
	}

	// First write wins: lines already wished on the target are dropped,
	// the rest change owner.
	if _, err := tx.Exec(ctx, `
DELETE FROM wishlist_items a
WHERE a.wishlist_id = $1
  AND EXISTS (
	SELECT 1 FROM wishlist_items t
	WHERE t.wishlist_id = $2 AND t.product_id = a.product_id
  )
`, anonListID, targetListID); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `UPDATE wishlist_items SET wishlist_id = $1 WHERE wishlist_id = $2`, targetListID, anonListID); err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `DELETE FROM wishlists WHERE id = $1`, anonListID)
	return err
}

func collectCartLines(ctx context.Context, tx pgx.Tx, cartID string) ([]cartLine, error) {
	rows, err := tx.Query(ctx, `
SELECT id::text, product_id::text, quantity, is_customized, customization_text, selected_color
FROM cart_items
WHERE cart_id = $1
ORDER BY created_at ASC
`, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []cartLine
	for rows.Next() {
		var line cartLine
		if err := rows.Scan(&line.id, &line.productID, &line.quantity, &line.isCustomized, &line.customizationText, &line.selectedColor); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
