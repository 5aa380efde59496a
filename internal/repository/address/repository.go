package address

import (
	"context"

	"github.com/salehkamalkamel/rofida-furniture-sub001/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, a domain.Address) (*domain.Address, error)
	// GetByID is owner-scoped: an address id belonging to another user
	// resolves to domain.ErrNotFound.
	GetByID(ctx context.Context, userID, id string) (*domain.Address, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Address, error)
}
