package domain

import "time"

// Wishlist mirrors Cart structurally: one per user, unique on user_id.
type Wishlist struct {
	ID        string         `json:"id"`
	UserID    string         `json:"userId"`
	CreatedAt time.Time      `json:"createdAt"`
	Items     []WishlistItem `json:"items,omitempty"`
}

// WishlistItem carries no quantity or price snapshot; identity is
// (wishlist, product).
type WishlistItem struct {
	ID         string    `json:"id"`
	WishlistID string    `json:"wishlistId"`
	ProductID  string    `json:"productId"`
	CreatedAt  time.Time `json:"createdAt"`

	Product *Product `json:"product,omitempty"`
}
