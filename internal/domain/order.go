package domain

import "time"

// Currency is fixed; there is no multi-currency support.
const Currency = "EGP"

const (
	OrderPending    = "pending"
	OrderProcessing = "processing"
	OrderShipped    = "shipped"
	OrderDelivered  = "delivered"
	OrderCancelled  = "cancelled"
)

const (
	PaymentPending = "pending"
	PaymentPaid    = "paid"
	PaymentFailed  = "failed"
)

// AddressSnapshot is the copy of the shipping address embedded on an
// order at placement time.
type AddressSnapshot struct {
	FullName   string `json:"fullName"`
	Phone      string `json:"phone"`
	Email      string `json:"email,omitempty"`
	Country    string `json:"country"`
	City       string `json:"city"`
	Street     string `json:"street"`
	PostalCode string `json:"postalCode,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

// Order is a placed order. Orders are never deleted; status moves through
// the admin-controlled state machine in service/order.
type Order struct {
	ID             string          `json:"id"`
	UserID         string          `json:"userId"`
	Status         string          `json:"status"`
	PaymentStatus  string          `json:"paymentStatus"`
	TotalAmount    int64           `json:"totalAmount"`
	ShippingAmount int64           `json:"shippingAmount"`
	Currency       string          `json:"currency"`
	Shipping       AddressSnapshot `json:"shippingAddress"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
	Items          []OrderItem     `json:"items,omitempty"`
}

// OrderItem denormalizes product name/SKU/image and the charged prices at
// purchase time, so later catalog edits leave historical orders intact.
type OrderItem struct {
	ID                 string `json:"id"`
	OrderID            string `json:"orderId"`
	ProductID          string `json:"productId,omitempty"`
	ProductName        string `json:"productName"`
	ProductSKU         string `json:"productSku"`
	ProductImage       string `json:"productImage,omitempty"`
	UnitPrice          int64  `json:"unitPrice"`
	CustomizationPrice int64  `json:"customizationPrice"`
	Quantity           int    `json:"quantity"`
	Total              int64  `json:"total"`
	IsCustomized       bool   `json:"isCustomized"`
	CustomizationText  string `json:"customizationText,omitempty"`
	SelectedColor      string `json:"selectedColor,omitempty"`
}
