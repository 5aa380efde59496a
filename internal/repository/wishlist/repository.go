package wishlist

import (
	"context"

	"github.com/salehkamalkamel/rofida-furniture-sub001/internal/domain"
)

type Repository interface {
	// GetByUser returns the user's wishlist with items and joined product
	// data, or domain.ErrNotFound when the user has no wishlist yet.
	GetByUser(ctx context.Context, userID string) (*domain.Wishlist, error)
	// AddItem lazily creates the wishlist and inserts the product.
	// Re-adding an already wished product is a no-op.
	AddItem(ctx context.Context, userID, productID string) error
	RemoveItem(ctx context.Context, userID, itemID string) error
	HasProduct(ctx context.Context, userID, productID string) (bool, error)
}
