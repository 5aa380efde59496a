package shipping

import (
	"context"

	"github.com/salehkamalkamel/rofida-furniture-sub001/internal/domain"
)

type Repository interface {
	GetByID(ctx context.Context, id string) (*domain.ShippingRule, error)
	ListActive(ctx context.Context) ([]domain.ShippingRule, error)
}
