package wishlist

import (
	"context"
	"errors"
	"fmt"

	"github.com/salehkamalkamel/rofida-furniture-sub001/internal/domain"
	wishlistrepo "github.com/salehkamalkamel/rofida-furniture-sub001/internal/repository/wishlist"
)

type wishlistRepo interface {
	GetByUser(ctx context.Context, userID string) (*domain.Wishlist, error)
	AddItem(ctx context.Context, userID, productID string) error
	RemoveItem(ctx context.Context, userID, itemID string) error
	HasProduct(ctx context.Context, userID, productID string) (bool, error)
}

type productRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

type Service struct {
	repo     wishlistRepo
	products productRepo
}

func New(repo wishlistrepo.Repository, products productRepo) *Service {
	return &Service{repo: repo, products: products}
}

// Add puts a product on the user's wishlist; re-adding is a no-op.
func (s *Service) Add(ctx context.Context, userID, productID string) error {
	if userID == "" {
		return fmt.Errorf("%w: user required", domain.ErrValidation)
	}
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrProductUnavailable
		}
		return err
	}
	return s.repo.AddItem(ctx, userID, productID)
}

func (s *Service) Remove(ctx context.Context, userID, itemID string) error {
	return s.repo.RemoveItem(ctx, userID, itemID)
}

// Get returns an empty wishlist for unauthenticated callers and users
// without one; only a store failure is an error.
func (s *Service) Get(ctx context.Context, userID string) (*domain.Wishlist, error) {
	if userID == "" {
		return &domain.Wishlist{}, nil
	}
	list, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &domain.Wishlist{UserID: userID}, nil
		}
		return nil, err
	}
	return list, nil
}

func (s *Service) Has(ctx context.Context, userID, productID string) (bool, error) {
	if userID == "" {
		return false, nil
	}
	return s.repo.HasProduct(ctx, userID, productID)
}
