package cart

import (
	"context"

	"github.com/salehkamalkamel/rofida-furniture-sub001/internal/domain"
)

// AddItemInput carries one line to add or merge into the user's cart.
// Price fields are the snapshot computed by the pricing engine at add
// time; the repository never recomputes them.
type AddItemInput struct {
	ProductID          string
	Quantity           int
	PriceAtAdd         int64
	CustomizationPrice int64
	IsCustomized       bool
	CustomizationText  string
	SelectedColor      string
}

type Repository interface {
	// GetByUser returns the user's cart with items and joined product
	// data, or domain.ErrNotFound when the user has no cart yet.
	GetByUser(ctx context.Context, userID string) (*domain.Cart, error)
	// AddItem lazily creates the user's cart and inserts the line, or
	// adds quantities onto an existing line with the same dedup key.
	// Both steps ride on unique constraints, so concurrent adds cannot
	// create a second cart or a duplicate line.
	AddItem(ctx context.Context, userID string, in AddItemInput) error
	// SetQuantity overwrites a line's quantity. Zero deletes the line.
	// The line must belong to a cart owned by userID.
	SetQuantity(ctx context.Context, userID, itemID string, quantity int) error
	// RemoveItem deletes a line scoped to the caller's own cart.
	RemoveItem(ctx context.Context, userID, itemID string) error
	CountItems(ctx context.Context, userID string) (int, error)
	HasProduct(ctx context.Context, userID, productID string) (bool, error)
}
