// Package order implements order placement (standing-cart checkout and
// instant buy) and the admin status state machine.
package order

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/salehkamalkamel/rofida-furniture-sub001/internal/cache"
	"github.com/salehkamalkamel/rofida-furniture-sub001/internal/domain"
	"github.com/salehkamalkamel/rofida-furniture-sub001/internal/notify"
	"github.com/salehkamalkamel/rofida-furniture-sub001/internal/pricing"
	orderrepo "github.com/salehkamalkamel/rofida-furniture-sub001/internal/repository/order"
	"github.com/salehkamalkamel/rofida-furniture-sub001/internal/service/identity"
)

// MaxInstantBuyQuantity caps a single instant-buy line.
const MaxInstantBuyQuantity = 10

type cartRepo interface {
	GetByUser(ctx context.Context, userID string) (*domain.Cart, error)
}

type productRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

type addressRepo interface {
	GetByID(ctx context.Context, userID, id string) (*domain.Address, error)
}

type shippingRepo interface {
	GetByID(ctx context.Context, id string) (*domain.ShippingRule, error)
}

type userRepo interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

type resolver interface {
	Resolve(ctx context.Context, sess *domain.Session, contact *identity.GuestContact) (string, error)
}

type Service struct {
	orders    orderrepo.Repository
	carts     cartRepo
	products  productRepo
	addresses addressRepo
	shipping  shippingRepo
	users     userRepo
	identity  resolver
	publisher *notify.Publisher
	rdb       *redis.Client
	logger    logrus.FieldLogger
}

func New(
	orders orderrepo.Repository,
	carts cartRepo,
	products productRepo,
	addresses addressRepo,
	shipping shippingRepo,
	users userRepo,
	ident resolver,
	publisher *notify.Publisher,
	rdb *redis.Client,
	logger logrus.FieldLogger,
) *Service {
	if logger == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		logger = l
	}
	return &Service{
		orders:    orders,
		carts:     carts,
		products:  products,
		addresses: addresses,
		shipping:  shipping,
		users:     users,
		identity:  ident,
		publisher: publisher,
		rdb:       rdb,
		logger:    logger,
	}
}

// NewAddress is an inline shipping address supplied at checkout. It is
// saved as the user's default address in the same transaction as the
// order.
type NewAddress struct {
	ShippingRuleID string `json:"shippingRuleId"`
	FullName       string `json:"fullName" binding:"required"`
	Phone          string `json:"phone" binding:"required"`
	Email          string `json:"email"`
	Country        string `json:"country" binding:"required"`
	City           string `json:"city" binding:"required"`
	Street         string `json:"street" binding:"required"`
	PostalCode     string `json:"postalCode"`
	Notes          string `json:"notes"`
}

// AddressInput selects the shipping address for an order: either the id
// of a saved address or a new inline one, never both.
type AddressInput struct {
	AddressID string      `json:"addressId"`
	New       *NewAddress `json:"newAddress"`
}

// PlaceFromCartInput is the standing-cart checkout request.
type PlaceFromCartInput struct {
	Address AddressInput `json:"address"`
}

// InstantBuyInput is the single-product guest-friendly checkout request.
// Address takes either arm of the union: a saved address id for logged-in
// buyers or an inline address for guests.
type InstantBuyInput struct {
	ProductID         string       `json:"productId" binding:"required"`
	Quantity          int          `json:"quantity"`
	IsCustomized      bool         `json:"isCustomized"`
	CustomizationText string       `json:"customizationText"`
	SelectedColor     string       `json:"selectedColor"`
	Phone             string       `json:"phone"`
	FullName          string       `json:"fullName"`
	Address           AddressInput `json:"address"`
}

// PlaceFromCart converts the user's standing cart into an order. Line
// prices come from the cart snapshots, never the live catalog. The order
// insert, the optional address insert and the cart clear share one
// transaction.
func (s *Service) PlaceFromCart(ctx context.Context, userID string, in PlaceFromCartInput) (*domain.Order, error) {
	c, err := s.carts.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: cart is empty", domain.ErrValidation)
		}
		return nil, err
	}
	if len(c.Items) == 0 {
		return nil, fmt.Errorf("%w: cart is empty", domain.ErrValidation)
	}

	items := make([]orderrepo.ItemInput, 0, len(c.Items))
	var subtotal int64
	for _, it := range c.Items {
		line := orderrepo.ItemInput{
			ProductID:          it.ProductID,
			UnitPrice:          it.PriceAtAdd,
			CustomizationPrice: it.CustomizationPrice,
			Quantity:           it.Quantity,
			Total:              it.LineTotal(),
			IsCustomized:       it.IsCustomized,
			CustomizationText:  it.CustomizationText,
			SelectedColor:      it.SelectedColor,
		}
		if it.Product != nil {
			line.ProductName = it.Product.Name
			line.ProductSKU = it.Product.SKU
			line.ProductImage = it.Product.FirstImage()
		}
		items = append(items, line)
		subtotal += line.Total
	}

	snapshot, newAddr, ruleID, err := s.resolveAddress(ctx, userID, in.Address)
	if err != nil {
		return nil, err
	}
	shippingAmount, err := s.shippingCost(ctx, ruleID, subtotal)
	if err != nil {
		return nil, err
	}

	o, err := s.orders.Create(ctx, orderrepo.CreateInput{
		UserID:         userID,
		TotalAmount:    subtotal + shippingAmount,
		ShippingAmount: shippingAmount,
		Currency:       domain.Currency,
		Snapshot:       snapshot,
		NewAddress:     newAddr,
		Items:          items,
		ClearCart:      true,
	})
	if err != nil {
		return nil, err
	}
	cache.DropCartCount(ctx, s.rdb, userID)
	s.publishCreated(ctx, o)
	return o, nil
}

// InstantBuy places a one-line order without touching the standing cart.
// The acting user is resolved from the session and the contact block, so
// a bare guest checkout with a phone number works.
func (s *Service) InstantBuy(ctx context.Context, sess *domain.Session, in InstantBuyInput) (*domain.Order, error) {
	if in.Quantity < 1 || in.Quantity > MaxInstantBuyQuantity {
		return nil, fmt.Errorf("%w: quantity must be between 1 and %d", domain.ErrValidation, MaxInstantBuyQuantity)
	}

	// Inline addresses are validated up front so a malformed payload
	// cannot mint or mutate a user row and then abort.
	if in.Address.AddressID == "" {
		if in.Address.New == nil {
			return nil, fmt.Errorf("%w: no shipping address provided", domain.ErrAddressResolution)
		}
		if _, _, err := snapshotFromNew("", *in.Address.New); err != nil {
			return nil, err
		}
	}

	userID, err := s.identity.Resolve(ctx, sess, &identity.GuestContact{
		Phone:    in.Phone,
		FullName: in.FullName,
	})
	if err != nil {
		return nil, err
	}

	p, err := s.products.GetByID(ctx, in.ProductID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrProductUnavailable
		}
		return nil, err
	}
	if !p.Available() {
		return nil, domain.ErrProductUnavailable
	}
	if in.IsCustomized && !p.Customizable {
		return nil, fmt.Errorf("%w: product %q does not support customization", domain.ErrValidation, p.Name)
	}

	bd := pricing.Quote(p.Price, p.SalePrice, in.IsCustomized, in.Quantity)
	subtotal := bd.LineTotal

	snapshot, newAddr, ruleID, err := s.resolveAddress(ctx, userID, in.Address)
	if err != nil {
		return nil, err
	}
	shippingAmount, err := s.shippingCost(ctx, ruleID, subtotal)
	if err != nil {
		return nil, err
	}

	o, err := s.orders.Create(ctx, orderrepo.CreateInput{
		UserID:         userID,
		TotalAmount:    subtotal + shippingAmount,
		ShippingAmount: shippingAmount,
		Currency:       domain.Currency,
		Snapshot:       snapshot,
		NewAddress:     newAddr,
		Items: []orderrepo.ItemInput{{
			ProductID:          p.ID,
			ProductName:        p.Name,
			ProductSKU:         p.SKU,
			ProductImage:       p.FirstImage(),
			UnitPrice:          bd.UnitPrice,
			CustomizationPrice: bd.CustomizationFee,
			Quantity:           in.Quantity,
			Total:              bd.LineTotal,
			IsCustomized:       in.IsCustomized,
			CustomizationText:  strings.TrimSpace(in.CustomizationText),
			SelectedColor:      strings.TrimSpace(in.SelectedColor),
		}},
	})
	if err != nil {
		return nil, err
	}
	s.publishCreated(ctx, o)
	return o, nil
}

// Cancel cancels an order on behalf of its owner or an admin. Only
// pending and processing orders can be cancelled; the guarded update
// makes a concurrent transition lose cleanly.
func (s *Service) Cancel(ctx context.Context, sess *domain.Session, orderID string) (*domain.Order, error) {
	o, err := s.Get(ctx, sess, orderID)
	if err != nil {
		return nil, err
	}
	if !CanCancel(o.Status) {
		return nil, fmt.Errorf("%w: order in status %q cannot be cancelled", domain.ErrValidation, o.Status)
	}
	if err := s.orders.UpdateStatus(ctx, o.ID, o.Status, domain.OrderCancelled); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: order status changed concurrently", domain.ErrValidation)
		}
		return nil, err
	}
	o.Status = domain.OrderCancelled
	s.publishStatus(ctx, o)
	return o, nil
}

// SetStatus moves an order along the state machine. Caller is expected
// to be an admin; the HTTP layer enforces the role.
func (s *Service) SetStatus(ctx context.Context, orderID, to string) (*domain.Order, error) {
	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !CanTransition(o.Status, to) {
		return nil, fmt.Errorf("%w: cannot transition order from %q to %q", domain.ErrValidation, o.Status, to)
	}
	if err := s.orders.UpdateStatus(ctx, o.ID, o.Status, to); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: order status changed concurrently", domain.ErrValidation)
		}
		return nil, err
	}
	o.Status = to
	s.publishStatus(ctx, o)
	return o, nil
}

// Get returns an order visible to the session: its owner or an admin.
// Anyone else sees domain.ErrNotFound, not a permission error.
func (s *Service) Get(ctx context.Context, sess *domain.Session, orderID string) (*domain.Order, error) {
	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if sess == nil || (o.UserID != sess.UserID && !sess.IsAdmin()) {
		return nil, domain.ErrNotFound
	}
	return o, nil
}

func (s *Service) ListForUser(ctx context.Context, userID string) ([]domain.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}

func (s *Service) ListAll(ctx context.Context) ([]domain.Order, error) {
	return s.orders.ListAll(ctx)
}

// resolveAddress turns the checkout address input into a snapshot plus,
// for inline addresses, the row to persist with the order. ruleID may be
// empty, in which case the default delivery fee applies.
func (s *Service) resolveAddress(ctx context.Context, userID string, in AddressInput) (domain.AddressSnapshot, *domain.Address, string, error) {
	switch {
	case in.AddressID != "":
		a, err := s.addresses.GetByID(ctx, userID, in.AddressID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.AddressSnapshot{}, nil, "", fmt.Errorf("%w: address %q", domain.ErrAddressResolution, in.AddressID)
			}
			return domain.AddressSnapshot{}, nil, "", err
		}
		return domain.AddressSnapshot{
			FullName:   a.FullName,
			Phone:      a.Phone,
			Email:      a.Email,
			Country:    a.Country,
			City:       a.City,
			Street:     a.Street,
			PostalCode: a.PostalCode,
			Notes:      a.Notes,
		}, nil, a.ShippingRuleID, nil
	case in.New != nil:
		snapshot, addr, err := snapshotFromNew(userID, *in.New)
		if err != nil {
			return domain.AddressSnapshot{}, nil, "", err
		}
		return snapshot, addr, in.New.ShippingRuleID, nil
	default:
		return domain.AddressSnapshot{}, nil, "", fmt.Errorf("%w: no shipping address provided", domain.ErrAddressResolution)
	}
}

func snapshotFromNew(userID string, in NewAddress) (domain.AddressSnapshot, *domain.Address, error) {
	if strings.TrimSpace(in.FullName) == "" || strings.TrimSpace(in.Phone) == "" ||
		strings.TrimSpace(in.City) == "" || strings.TrimSpace(in.Street) == "" {
		return domain.AddressSnapshot{}, nil, fmt.Errorf("%w: full name, phone, city and street are required", domain.ErrAddressResolution)
	}
	snapshot := domain.AddressSnapshot{
		FullName:   strings.TrimSpace(in.FullName),
		Phone:      strings.TrimSpace(in.Phone),
		Email:      strings.TrimSpace(in.Email),
		Country:    strings.TrimSpace(in.Country),
		City:       strings.TrimSpace(in.City),
		Street:     strings.TrimSpace(in.Street),
		PostalCode: strings.TrimSpace(in.PostalCode),
		Notes:      strings.TrimSpace(in.Notes),
	}
	addr := &domain.Address{
		UserID:         userID,
		ShippingRuleID: in.ShippingRuleID,
		FullName:       snapshot.FullName,
		Phone:          snapshot.Phone,
		Email:          snapshot.Email,
		Country:        snapshot.Country,
		City:           snapshot.City,
		Street:         snapshot.Street,
		PostalCode:     snapshot.PostalCode,
		Notes:          snapshot.Notes,
		IsDefault:      true,
	}
	return snapshot, addr, nil
}

func (s *Service) shippingCost(ctx context.Context, ruleID string, subtotal int64) (int64, error) {
	if ruleID == "" {
		return pricing.TotalsFor(subtotal).DeliveryFee, nil
	}
	rule, err := s.shipping.GetByID(ctx, ruleID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return 0, fmt.Errorf("%w: unknown shipping rule %q", domain.ErrValidation, ruleID)
		}
		return 0, err
	}
	return rule.CostFor(subtotal), nil
}

func (s *Service) publishCreated(ctx context.Context, o *domain.Order) {
	ev := notify.OrderEvent{
		Event:    notify.EventOrderCreated,
		OrderID:  o.ID,
		Status:   o.Status,
		Total:    o.TotalAmount,
		Currency: o.Currency,
	}
	s.fillRecipient(ctx, o.UserID, &ev)
	s.publisher.Publish(ctx, ev)
}

func (s *Service) publishStatus(ctx context.Context, o *domain.Order) {
	ev := notify.OrderEvent{
		Event:   notify.EventOrderStatusChanged,
		OrderID: o.ID,
		Status:  o.Status,
	}
	s.fillRecipient(ctx, o.UserID, &ev)
	s.publisher.Publish(ctx, ev)
}

func (s *Service) fillRecipient(ctx context.Context, userID string, ev *notify.OrderEvent) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		s.logger.WithError(err).WithField("user_id", userID).Warn("order: recipient lookup failed")
		return
	}
	ev.Username = u.Name
	if !strings.HasSuffix(u.Email, "@"+domain.GuestEmailDomain) {
		ev.Email = u.Email
	}
}
