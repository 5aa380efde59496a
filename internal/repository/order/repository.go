package order

import (
	"context"

	"github.com/salehkamalkamel/rofida-furniture-sub001/internal/domain"
)

// ItemInput is one purchased line with product data already denormalized
// by the caller at placement time.
type ItemInput struct {
	ProductID          string
	ProductName        string
	ProductSKU         string
	ProductImage       string
	UnitPrice          int64
	CustomizationPrice int64
	Quantity           int
	Total              int64
	IsCustomized       bool
	CustomizationText  string
	SelectedColor      string
}

// CreateInput is everything needed to persist an order atomically.
type CreateInput struct {
	UserID         string
	TotalAmount    int64
	ShippingAmount int64
	Currency       string
	Snapshot       domain.AddressSnapshot
	// NewAddress, when set, is persisted as the user's new default
	// address inside the same transaction as the order.
	NewAddress *domain.Address
	Items      []ItemInput
	// ClearCart deletes the user's cart in the same transaction
	// (standing-cart checkout).
	ClearCart bool
}

type Repository interface {
	// Create inserts the order, its items, and optionally the new
	// address, in one transaction. Any failure rolls everything back.
	Create(ctx context.Context, in CreateInput) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	ListAll(ctx context.Context) ([]domain.Order, error)
	// UpdateStatus transitions the order from one status to another.
	// The guard on the current status makes concurrent transitions
	// lose cleanly with domain.ErrNotFound.
	UpdateStatus(ctx context.Context, id, from, to string) error
}
