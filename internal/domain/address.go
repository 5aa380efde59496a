package domain

import "time"

// Address is a saved shipping address belonging to a user. Orders embed a
// copy of these fields, never a live reference, so editing or deleting an
// address cannot alter a placed order.
type Address struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	ShippingRuleID string    `json:"shippingRuleId"`
	FullName       string    `json:"fullName"`
	Phone          string    `json:"phone"`
	Email          string    `json:"email,omitempty"`
	Country        string    `json:"country"`
	City           string    `json:"city"`
	Street         string    `json:"street"`
	PostalCode     string    `json:"postalCode,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	IsDefault      bool      `json:"isDefault"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ShippingRule defines a flat shipping cost with an optional free-shipping
// threshold. Read-only input to pricing.
type ShippingRule struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	FreeOver *int64 `json:"freeOver,omitempty"`
	IsActive bool   `json:"isActive"`
}

// CostFor returns the shipping cost for the given order subtotal,
// honouring the rule's free-shipping threshold.
func (r ShippingRule) CostFor(subtotal int64) int64 {
	if r.FreeOver != nil && subtotal >= *r.FreeOver {
		return 0
	}
	return r.Price
}
