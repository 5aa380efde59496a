package order

import (
	"context"
	"errors"
	"testing"

	"github.com/salehkamalkamel/rofida-furniture-sub001/internal/domain"
	orderrepo "github.com/salehkamalkamel/rofida-furniture-sub001/internal/repository/order"
	"github.com/salehkamalkamel/rofida-furniture-sub001/internal/service/identity"
)

type stubOrderRepo struct {
	lastCreate orderrepo.CreateInput
	createErr  error

	orders map[string]*domain.Order

	lastStatusFrom string
	lastStatusTo   string
	updateErr      error

	listByUser []domain.Order
}

func (s *stubOrderRepo) Create(_ context.Context, in orderrepo.CreateInput) (*domain.Order, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	s.lastCreate = in
	return &domain.Order{
		ID:             "o-1",
		UserID:         in.UserID,
		Status:         domain.OrderPending,
		PaymentStatus:  domain.PaymentPending,
		TotalAmount:    in.TotalAmount,
		ShippingAmount: in.ShippingAmount,
		Currency:       in.Currency,
		Shipping:       in.Snapshot,
	}, nil
}

func (s *stubOrderRepo) GetByID(_ context.Context, id string) (*domain.Order, error) {
	if o, ok := s.orders[id]; ok {
		cp := *o
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (s *stubOrderRepo) ListByUser(_ context.Context, _ string) ([]domain.Order, error) {
	return s.listByUser, nil
}

func (s *stubOrderRepo) ListAll(_ context.Context) ([]domain.Order, error) {
	return nil, nil
}

func (s *stubOrderRepo) UpdateStatus(_ context.Context, _, from, to string) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	s.lastStatusFrom = from
	s.lastStatusTo = to
	return nil
}

type stubCartRepo struct {
	cart *domain.Cart
	err  error
}

func (s *stubCartRepo) GetByUser(_ context.Context, _ string) (*domain.Cart, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.cart, nil
}

type stubProductRepo struct {
	products map[string]*domain.Product
}

func (s *stubProductRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	if p, ok := s.products[id]; ok {
		return p, nil
	}
	return nil, domain.ErrNotFound
}

type stubAddressRepo struct {
	addresses map[string]*domain.Address
}

func (s *stubAddressRepo) GetByID(_ context.Context, userID, id string) (*domain.Address, error) {
	a, ok := s.addresses[id]
	if !ok || a.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return a, nil
}

type stubShippingRepo struct {
	rules map[string]*domain.ShippingRule
}

func (s *stubShippingRepo) GetByID(_ context.Context, id string) (*domain.ShippingRule, error) {
	if r, ok := s.rules[id]; ok {
		return r, nil
	}
	return nil, domain.ErrNotFound
}

type stubUserLookup struct{}

func (stubUserLookup) GetByID(_ context.Context, id string) (*domain.User, error) {
	return &domain.User{ID: id, Name: "Test User", Email: "user@example.com"}, nil
}

type stubResolver struct {
	userID string
	err    error

	lastSess    *domain.Session
	lastContact *identity.GuestContact
}

func (s *stubResolver) Resolve(_ context.Context, sess *domain.Session, contact *identity.GuestContact) (string, error) {
	s.lastSess = sess
	s.lastContact = contact
	if s.err != nil {
		return "", s.err
	}
	return s.userID, nil
}

func newTestService(orders *stubOrderRepo, carts *stubCartRepo, products *stubProductRepo, addresses *stubAddressRepo, shipping *stubShippingRepo, ident *stubResolver) *Service {
	if orders.orders == nil {
		orders.orders = map[string]*domain.Order{}
	}
	if products == nil {
		products = &stubProductRepo{products: map[string]*domain.Product{}}
	}
	if addresses == nil {
		addresses = &stubAddressRepo{addresses: map[string]*domain.Address{}}
	}
	if shipping == nil {
		shipping = &stubShippingRepo{rules: map[string]*domain.ShippingRule{}}
	}
	if ident == nil {
		ident = &stubResolver{userID: "u-1"}
	}
	svc := New(orders, carts, products, addresses, shipping, stubUserLookup{}, nil, nil, nil, nil)
	svc.identity = ident
	return svc
}

func freeOver(v int64) *int64 { return &v }

func TestPlaceFromCartUsesSnapshotsAndClearsCart(t *testing.T) {
	orders := &stubOrderRepo{}
	carts := &stubCartRepo{cart: &domain.Cart{
		ID:     "c-1",
		UserID: "u-1",
		Items: []domain.CartItem{
			{
				ID: "ci-1", ProductID: "p-1", Quantity: 2, PriceAtAdd: 400, CustomizationPrice: 40,
				IsCustomized: true, CustomizationText: "engrave",
				Product: &domain.Product{ID: "p-1", Name: "Oak Chair", SKU: "OAK-1", Images: []string{"chair.jpg"}},
			},
			{
				ID: "ci-2", ProductID: "p-2", Quantity: 1, PriceAtAdd: 120,
				Product: &domain.Product{ID: "p-2", Name: "Cushion", SKU: "CUS-1"},
			},
		},
	}}
	addresses := &stubAddressRepo{addresses: map[string]*domain.Address{
		"a-1": {ID: "a-1", UserID: "u-1", ShippingRuleID: "r-1", FullName: "Test User", Phone: "0100", City: "Cairo", Street: "Nile St"},
	}}
	shipping := &stubShippingRepo{rules: map[string]*domain.ShippingRule{
		"r-1": {ID: "r-1", Price: 150, FreeOver: freeOver(2000)},
	}}
	svc := newTestService(orders, carts, nil, addresses, shipping, nil)

	o, err := svc.PlaceFromCart(context.Background(), "u-1", PlaceFromCartInput{
		Address: AddressInput{AddressID: "a-1"},
	})
	if err != nil {
		t.Fatalf("place: %v", err)
	}

	// (400+40)*2 + 120 = 1000 subtotal, under the free-shipping threshold.
	if orders.lastCreate.ShippingAmount != 150 {
		t.Fatalf("shipping = %d, want 150", orders.lastCreate.ShippingAmount)
	}
	if o.TotalAmount != 1150 {
		t.Fatalf("total = %d, want 1150", o.TotalAmount)
	}
	if !orders.lastCreate.ClearCart {
		t.Fatal("standing-cart checkout must clear the cart in the same transaction")
	}
	if orders.lastCreate.NewAddress != nil {
		t.Fatal("saved address must not be re-persisted")
	}

	first := orders.lastCreate.Items[0]
	if first.ProductName != "Oak Chair" || first.ProductSKU != "OAK-1" || first.ProductImage != "chair.jpg" {
		t.Fatalf("product data not denormalized: %+v", first)
	}
	if first.UnitPrice != 400 || first.CustomizationPrice != 40 || first.Total != 880 {
		t.Fatalf("snapshot prices not carried: %+v", first)
	}
	if o.Shipping.City != "Cairo" {
		t.Fatalf("address not snapshotted: %+v", o.Shipping)
	}
}

func TestPlaceFromCartFreeShippingOverThreshold(t *testing.T) {
	orders := &stubOrderRepo{}
	carts := &stubCartRepo{cart: &domain.Cart{
		UserID: "u-1",
		Items:  []domain.CartItem{{ID: "ci-1", ProductID: "p-1", Quantity: 1, PriceAtAdd: 2500}},
	}}
	shipping := &stubShippingRepo{rules: map[string]*domain.ShippingRule{
		"r-1": {ID: "r-1", Price: 150, FreeOver: freeOver(2000)},
	}}
	svc := newTestService(orders, carts, nil, nil, shipping, nil)

	o, err := svc.PlaceFromCart(context.Background(), "u-1", PlaceFromCartInput{
		Address: AddressInput{New: &NewAddress{
			ShippingRuleID: "r-1", FullName: "Test User", Phone: "0100", City: "Giza", Street: "Pyramids Rd",
		}},
	})
	if err != nil {
		t.Fatalf("place: %v", err)
	}
	if o.ShippingAmount != 0 || o.TotalAmount != 2500 {
		t.Fatalf("got shipping %d total %d, want 0 and 2500", o.ShippingAmount, o.TotalAmount)
	}
	if orders.lastCreate.NewAddress == nil || !orders.lastCreate.NewAddress.IsDefault {
		t.Fatal("inline address must be persisted as the new default")
	}
}

func TestPlaceFromCartEmptyCart(t *testing.T) {
	svc := newTestService(&stubOrderRepo{}, &stubCartRepo{err: domain.ErrNotFound}, nil, nil, nil, nil)
	_, err := svc.PlaceFromCart(context.Background(), "u-1", PlaceFromCartInput{
		Address: AddressInput{AddressID: "a-1"},
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for missing cart, got %v", err)
	}

	svc = newTestService(&stubOrderRepo{}, &stubCartRepo{cart: &domain.Cart{UserID: "u-1"}}, nil, nil, nil, nil)
	_, err = svc.PlaceFromCart(context.Background(), "u-1", PlaceFromCartInput{
		Address: AddressInput{AddressID: "a-1"},
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for empty cart, got %v", err)
	}
}

func TestPlaceFromCartForeignAddress(t *testing.T) {
	orders := &stubOrderRepo{}
	carts := &stubCartRepo{cart: &domain.Cart{
		UserID: "u-1",
		Items:  []domain.CartItem{{ID: "ci-1", ProductID: "p-1", Quantity: 1, PriceAtAdd: 100}},
	}}
	addresses := &stubAddressRepo{addresses: map[string]*domain.Address{
		"a-2": {ID: "a-2", UserID: "u-other"},
	}}
	svc := newTestService(orders, carts, nil, addresses, nil, nil)

	_, err := svc.PlaceFromCart(context.Background(), "u-1", PlaceFromCartInput{
		Address: AddressInput{AddressID: "a-2"},
	})
	if !errors.Is(err, domain.ErrAddressResolution) {
		t.Fatalf("expected ErrAddressResolution, got %v", err)
	}
	if orders.lastCreate.UserID != "" {
		t.Fatal("no order must be created when the address cannot be resolved")
	}
}

func TestPlaceFromCartMissingAddress(t *testing.T) {
	carts := &stubCartRepo{cart: &domain.Cart{
		UserID: "u-1",
		Items:  []domain.CartItem{{ID: "ci-1", ProductID: "p-1", Quantity: 1, PriceAtAdd: 100}},
	}}
	svc := newTestService(&stubOrderRepo{}, carts, nil, nil, nil, nil)
	_, err := svc.PlaceFromCart(context.Background(), "u-1", PlaceFromCartInput{})
	if !errors.Is(err, domain.ErrAddressResolution) {
		t.Fatalf("expected ErrAddressResolution, got %v", err)
	}
}

func TestInstantBuyResolvesGuestAndQuotes(t *testing.T) {
	orders := &stubOrderRepo{}
	products := &stubProductRepo{products: map[string]*domain.Product{
		"p-1": {ID: "p-1", Name: "Walnut Table", SKU: "WAL-1", Price: 999.6, StockStatus: domain.StockInStock, Customizable: true},
	}}
	ident := &stubResolver{userID: "guest-1"}
	svc := newTestService(orders, &stubCartRepo{}, products, nil, nil, ident)

	o, err := svc.InstantBuy(context.Background(), nil, InstantBuyInput{
		ProductID:         "p-1",
		Quantity:          1,
		IsCustomized:      true,
		CustomizationText: "initials",
		Phone:             "01001234567",
		FullName:          "Guest Buyer",
		Address: AddressInput{New: &NewAddress{
			FullName: "Guest Buyer", Phone: "01001234567", City: "Alexandria", Street: "Corniche",
		}},
	})
	if err != nil {
		t.Fatalf("instant buy: %v", err)
	}
	if ident.lastContact == nil || ident.lastContact.Phone != "01001234567" {
		t.Fatalf("contact not passed to identity resolution: %+v", ident.lastContact)
	}
	if orders.lastCreate.UserID != "guest-1" {
		t.Fatalf("order attributed to %q, want guest-1", orders.lastCreate.UserID)
	}

	// Unit 1000 after rounding, fee 100, line 1100, plus default 150 delivery.
	item := orders.lastCreate.Items[0]
	if item.UnitPrice != 1000 || item.CustomizationPrice != 100 || item.Total != 1100 {
		t.Fatalf("unexpected quote %+v", item)
	}
	if o.ShippingAmount != 150 || o.TotalAmount != 1250 {
		t.Fatalf("got shipping %d total %d, want 150 and 1250", o.ShippingAmount, o.TotalAmount)
	}
	if orders.lastCreate.ClearCart {
		t.Fatal("instant buy must not touch the standing cart")
	}
}

func TestInstantBuySavedAddress(t *testing.T) {
	orders := &stubOrderRepo{}
	products := &stubProductRepo{products: map[string]*domain.Product{
		"p-1": {ID: "p-1", Name: "Walnut Table", SKU: "WAL-1", Price: 1000, StockStatus: domain.StockInStock},
	}}
	addresses := &stubAddressRepo{addresses: map[string]*domain.Address{
		"a-1": {ID: "a-1", UserID: "u-1", ShippingRuleID: "r-1", FullName: "Saved Buyer", Phone: "0100", City: "Cairo", Street: "Nile St"},
	}}
	shipping := &stubShippingRepo{rules: map[string]*domain.ShippingRule{
		"r-1": {ID: "r-1", Price: 80, FreeOver: freeOver(5000)},
	}}
	ident := &stubResolver{userID: "u-1"}
	svc := newTestService(orders, &stubCartRepo{}, products, addresses, shipping, ident)

	o, err := svc.InstantBuy(context.Background(), &domain.Session{UserID: "u-1"}, InstantBuyInput{
		ProductID: "p-1", Quantity: 1,
		Address: AddressInput{AddressID: "a-1"},
	})
	if err != nil {
		t.Fatalf("instant buy: %v", err)
	}
	// The saved address supplies both the snapshot and the shipping rule.
	if o.Shipping.City != "Cairo" || o.Shipping.FullName != "Saved Buyer" {
		t.Fatalf("saved address not snapshotted: %+v", o.Shipping)
	}
	if o.ShippingAmount != 80 || o.TotalAmount != 1080 {
		t.Fatalf("got shipping %d total %d, want 80 and 1080", o.ShippingAmount, o.TotalAmount)
	}
	if orders.lastCreate.NewAddress != nil {
		t.Fatal("saved address must not be re-persisted")
	}
}

func TestInstantBuyForeignSavedAddress(t *testing.T) {
	orders := &stubOrderRepo{}
	products := &stubProductRepo{products: map[string]*domain.Product{
		"p-1": {ID: "p-1", Price: 1000, StockStatus: domain.StockInStock},
	}}
	addresses := &stubAddressRepo{addresses: map[string]*domain.Address{
		"a-2": {ID: "a-2", UserID: "u-other"},
	}}
	ident := &stubResolver{userID: "u-1"}
	svc := newTestService(orders, &stubCartRepo{}, products, addresses, nil, ident)

	_, err := svc.InstantBuy(context.Background(), &domain.Session{UserID: "u-1"}, InstantBuyInput{
		ProductID: "p-1", Quantity: 1,
		Address: AddressInput{AddressID: "a-2"},
	})
	if !errors.Is(err, domain.ErrAddressResolution) {
		t.Fatalf("expected ErrAddressResolution, got %v", err)
	}
	if orders.lastCreate.UserID != "" {
		t.Fatal("no order must be created against a foreign address")
	}
}

func TestInstantBuyInvalidAddressSkipsIdentityResolution(t *testing.T) {
	ident := &stubResolver{userID: "guest-1"}
	svc := newTestService(&stubOrderRepo{}, &stubCartRepo{}, nil, nil, nil, ident)

	// Missing street fails the pure payload check before any user row
	// could be minted or upgraded.
	_, err := svc.InstantBuy(context.Background(), nil, InstantBuyInput{
		ProductID: "p-1", Quantity: 1,
		Address: AddressInput{New: &NewAddress{FullName: "A", Phone: "1", City: "B"}},
	})
	if !errors.Is(err, domain.ErrAddressResolution) {
		t.Fatalf("expected ErrAddressResolution, got %v", err)
	}
	if ident.lastContact != nil {
		t.Fatal("identity resolution must not run for a malformed address")
	}

	// Same for a request with no address at all.
	_, err = svc.InstantBuy(context.Background(), nil, InstantBuyInput{ProductID: "p-1", Quantity: 1})
	if !errors.Is(err, domain.ErrAddressResolution) {
		t.Fatalf("expected ErrAddressResolution, got %v", err)
	}
	if ident.lastContact != nil {
		t.Fatal("identity resolution must not run without an address")
	}
}

func TestInstantBuyQuantityBounds(t *testing.T) {
	svc := newTestService(&stubOrderRepo{}, &stubCartRepo{}, nil, nil, nil, nil)
	for _, q := range []int{0, -1, 11} {
		_, err := svc.InstantBuy(context.Background(), nil, InstantBuyInput{ProductID: "p-1", Quantity: q})
		if !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("quantity %d: expected ErrValidation, got %v", q, err)
		}
	}
}

func TestInstantBuyIdentityFailureCreatesNothing(t *testing.T) {
	orders := &stubOrderRepo{}
	ident := &stubResolver{err: domain.ErrIdentityResolution}
	svc := newTestService(orders, &stubCartRepo{}, nil, nil, nil, ident)

	_, err := svc.InstantBuy(context.Background(), nil, InstantBuyInput{
		ProductID: "p-1", Quantity: 1,
		Address: AddressInput{New: &NewAddress{FullName: "A", Phone: "1", City: "B", Street: "C"}},
	})
	if !errors.Is(err, domain.ErrIdentityResolution) {
		t.Fatalf("expected ErrIdentityResolution, got %v", err)
	}
	if orders.lastCreate.UserID != "" {
		t.Fatal("no order must be created when identity resolution fails")
	}
}

func TestInstantBuyUnavailableProduct(t *testing.T) {
	products := &stubProductRepo{products: map[string]*domain.Product{
		"p-out": {ID: "p-out", StockStatus: domain.StockOutOfStock},
	}}
	svc := newTestService(&stubOrderRepo{}, &stubCartRepo{}, products, nil, nil, nil)

	for _, id := range []string{"p-out", "p-missing"} {
		_, err := svc.InstantBuy(context.Background(), nil, InstantBuyInput{
			ProductID: id, Quantity: 1,
			Address: AddressInput{New: &NewAddress{FullName: "A", Phone: "1", City: "B", Street: "C"}},
		})
		if !errors.Is(err, domain.ErrProductUnavailable) {
			t.Fatalf("product %q: expected ErrProductUnavailable, got %v", id, err)
		}
	}
}

func TestCancelOwnerPendingOrder(t *testing.T) {
	orders := &stubOrderRepo{orders: map[string]*domain.Order{
		"o-1": {ID: "o-1", UserID: "u-1", Status: domain.OrderPending},
	}}
	svc := newTestService(orders, &stubCartRepo{}, nil, nil, nil, nil)

	o, err := svc.Cancel(context.Background(), &domain.Session{UserID: "u-1"}, "o-1")
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if o.Status != domain.OrderCancelled {
		t.Fatalf("status = %q, want cancelled", o.Status)
	}
	if orders.lastStatusFrom != domain.OrderPending || orders.lastStatusTo != domain.OrderCancelled {
		t.Fatalf("guarded update got %q -> %q", orders.lastStatusFrom, orders.lastStatusTo)
	}
}

func TestCancelShippedOrderRejected(t *testing.T) {
	orders := &stubOrderRepo{orders: map[string]*domain.Order{
		"o-1": {ID: "o-1", UserID: "u-1", Status: domain.OrderShipped},
	}}
	svc := newTestService(orders, &stubCartRepo{}, nil, nil, nil, nil)

	_, err := svc.Cancel(context.Background(), &domain.Session{UserID: "u-1"}, "o-1")
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestCancelForeignOrderHidden(t *testing.T) {
	orders := &stubOrderRepo{orders: map[string]*domain.Order{
		"o-1": {ID: "o-1", UserID: "u-1", Status: domain.OrderPending},
	}}
	svc := newTestService(orders, &stubCartRepo{}, nil, nil, nil, nil)

	_, err := svc.Cancel(context.Background(), &domain.Session{UserID: "u-2"}, "o-1")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign order, got %v", err)
	}

	// An admin may cancel on the customer's behalf.
	if _, err := svc.Cancel(context.Background(), &domain.Session{UserID: "a-1", Role: domain.RoleAdmin}, "o-1"); err != nil {
		t.Fatalf("admin cancel: %v", err)
	}
}

func TestCancelLostRace(t *testing.T) {
	orders := &stubOrderRepo{
		orders: map[string]*domain.Order{
			"o-1": {ID: "o-1", UserID: "u-1", Status: domain.OrderPending},
		},
		updateErr: domain.ErrNotFound,
	}
	svc := newTestService(orders, &stubCartRepo{}, nil, nil, nil, nil)

	_, err := svc.Cancel(context.Background(), &domain.Session{UserID: "u-1"}, "o-1")
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation when the guard loses, got %v", err)
	}
}

func TestSetStatusFollowsMachine(t *testing.T) {
	orders := &stubOrderRepo{orders: map[string]*domain.Order{
		"o-1": {ID: "o-1", UserID: "u-1", Status: domain.OrderProcessing},
	}}
	svc := newTestService(orders, &stubCartRepo{}, nil, nil, nil, nil)

	o, err := svc.SetStatus(context.Background(), "o-1", domain.OrderShipped)
	if err != nil {
		t.Fatalf("set status: %v", err)
	}
	if o.Status != domain.OrderShipped {
		t.Fatalf("status = %q, want shipped", o.Status)
	}

	orders.orders["o-1"].Status = domain.OrderDelivered
	if _, err := svc.SetStatus(context.Background(), "o-1", domain.OrderPending); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for backward transition, got %v", err)
	}
}
