package cart

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/salehkamalkamel/rofida-furniture-sub001/internal/cache"
	"github.com/salehkamalkamel/rofida-furniture-sub001/internal/domain"
	"github.com/salehkamalkamel/rofida-furniture-sub001/internal/pricing"
	cartrepo "github.com/salehkamalkamel/rofida-furniture-sub001/internal/repository/cart"
)

const (
	// MaxAddQuantity bounds a single add request. Cumulative quantity per
	// line stays unbounded; repeated adds keep summing.
	MaxAddQuantity = 10
	// MaxUpdateQuantity bounds a quantity overwrite; zero removes the line.
	MaxUpdateQuantity = 20
)

type cartRepo interface {
	GetByUser(ctx context.Context, userID string) (*domain.Cart, error)
	AddItem(ctx context.Context, userID string, in cartrepo.AddItemInput) error
	SetQuantity(ctx context.Context, userID, itemID string, quantity int) error
	RemoveItem(ctx context.Context, userID, itemID string) error
	CountItems(ctx context.Context, userID string) (int, error)
	HasProduct(ctx context.Context, userID, productID string) (bool, error)
}

type productRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

type Service struct {
	repo     cartRepo
	products productRepo
	rdb      *redis.Client
	logger   logrus.FieldLogger
}

func New(repo cartrepo.Repository, products productRepo, rdb *redis.Client, logger logrus.FieldLogger) *Service {
	if logger == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		logger = l
	}
	return &Service{repo: repo, products: products, rdb: rdb, logger: logger}
}

// AddItemInput is one add-to-cart request.
type AddItemInput struct {
	ProductID         string `json:"productId"`
	Quantity          int    `json:"quantity"`
	IsCustomized      bool   `json:"isCustomized"`
	CustomizationText string `json:"customizationText"`
	SelectedColor     string `json:"selectedColor"`
}

// FullCart is the cart joined with live product data plus the computed
// totals from the stored price snapshots.
type FullCart struct {
	Cart   *domain.Cart   `json:"cart"`
	Totals pricing.Totals `json:"totals"`
}

// AddItem snapshots the product's current price and inserts or merges the
// line. Adding an already-carted combination is the merge path, never an
// error.
func (s *Service) AddItem(ctx context.Context, userID string, in AddItemInput) error {
	if userID == "" {
		return fmt.Errorf("%w: user required", domain.ErrValidation)
	}
	if in.Quantity < 1 || in.Quantity > MaxAddQuantity {
		return fmt.Errorf("%w: quantity must be between 1 and %d", domain.ErrValidation, MaxAddQuantity)
	}

	product, err := s.products.GetByID(ctx, in.ProductID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrProductUnavailable
		}
		return err
	}
	if !product.Available() {
		return domain.ErrProductUnavailable
	}
	if in.IsCustomized && !product.Customizable {
		return fmt.Errorf("%w: product cannot be customized", domain.ErrValidation)
	}

	quote := pricing.Quote(product.Price, product.SalePrice, in.IsCustomized, in.Quantity)
	err = s.repo.AddItem(ctx, userID, cartrepo.AddItemInput{
		ProductID:          product.ID,
		Quantity:           in.Quantity,
		PriceAtAdd:         quote.UnitPrice,
		CustomizationPrice: quote.CustomizationFee,
		IsCustomized:       in.IsCustomized,
		CustomizationText:  strings.TrimSpace(in.CustomizationText),
		SelectedColor:      strings.TrimSpace(in.SelectedColor),
	})
	if err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"user_id":    userID,
			"product_id": in.ProductID,
		}).Error("cart: add item")
		return err
	}

	cache.DropCartCount(ctx, s.rdb, userID)
	return nil
}

// UpdateQuantity overwrites a line's quantity without re-snapshotting the
// price. Zero removes the line.
func (s *Service) UpdateQuantity(ctx context.Context, userID, itemID string, quantity int) error {
	if quantity < 0 || quantity > MaxUpdateQuantity {
		return fmt.Errorf("%w: quantity must be between 0 and %d", domain.ErrValidation, MaxUpdateQuantity)
	}
	if err := s.repo.SetQuantity(ctx, userID, itemID, quantity); err != nil {
		return err
	}
	cache.DropCartCount(ctx, s.rdb, userID)
	return nil
}

func (s *Service) RemoveItem(ctx context.Context, userID, itemID string) error {
	if err := s.repo.RemoveItem(ctx, userID, itemID); err != nil {
		return err
	}
	cache.DropCartCount(ctx, s.rdb, userID)
	return nil
}

// GetFullCart returns an empty cart for unauthenticated callers and users
// with no cart yet; only a store failure is an error.
func (s *Service) GetFullCart(ctx context.Context, userID string) (*FullCart, error) {
	if userID == "" {
		return &FullCart{Cart: &domain.Cart{}}, nil
	}
	c, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &FullCart{Cart: &domain.Cart{UserID: userID}}, nil
		}
		return nil, err
	}

	if len(c.Items) == 0 {
		return &FullCart{Cart: c}, nil
	}
	lineTotals := make([]int64, 0, len(c.Items))
	for _, item := range c.Items {
		lineTotals = append(lineTotals, item.LineTotal())
	}
	return &FullCart{Cart: c, Totals: pricing.CartTotals(lineTotals...)}, nil
}

// CountItems returns the badge count, zero for unauthenticated callers.
// The redis-cached value may lag a concurrent write by a few moments.
func (s *Service) CountItems(ctx context.Context, userID string) (int, error) {
	if userID == "" {
		return 0, nil
	}
	if count, ok := cache.GetCartCount(ctx, s.rdb, userID); ok {
		return count, nil
	}
	count, err := s.repo.CountItems(ctx, userID)
	if err != nil {
		return 0, err
	}
	cache.SetCartCount(ctx, s.rdb, userID, count)
	return count, nil
}

// IsProductInCart returns false for unauthenticated callers.
func (s *Service) IsProductInCart(ctx context.Context, userID, productID string) (bool, error) {
	if userID == "" {
		return false, nil
	}
	return s.repo.HasProduct(ctx, userID, productID)
}
