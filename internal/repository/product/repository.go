package product

import (
	"context"

	"github.com/salehkamalkamel/rofida-furniture-sub001/internal/domain"
)

type Repository interface {
	List(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}
