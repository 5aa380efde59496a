package domain

import "time"

// Cart is a user's single active cart. The users <-> carts relation is
// 1:1, enforced by a unique constraint on user_id.
type Cart struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId"`
	CreatedAt time.Time  `json:"createdAt"`
	Items     []CartItem `json:"items,omitempty"`
}

// CartItem is one cart line. Lines are deduplicated on
// (cart, product, isCustomized, customizationText, selectedColor);
// adding a matching combination again sums quantities instead of
// inserting a second line. PriceAtAdd and CustomizationPrice are
// captured once at insert time and never recomputed from the live
// product price.
type CartItem struct {
	ID                 string    `json:"id"`
	CartID             string    `json:"cartId"`
	ProductID          string    `json:"productId"`
	Quantity           int       `json:"quantity"`
	PriceAtAdd         int64     `json:"priceAtAdd"`
	CustomizationPrice int64     `json:"customizationPrice"`
	IsCustomized       bool      `json:"isCustomized"`
	CustomizationText  string    `json:"customizationText,omitempty"`
	SelectedColor      string    `json:"selectedColor,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`

	// Live product data joined in for display only.
	Product *Product `json:"product,omitempty"`
}

// LineTotal is the snapshot line total: (priceAtAdd + customizationPrice) * qty.
func (i CartItem) LineTotal() int64 {
	return (i.PriceAtAdd + i.CustomizationPrice) * int64(i.Quantity)
}
