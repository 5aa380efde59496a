package domain

import "time"

const (
	StockInStock    = "in_stock"
	StockOutOfStock = "out_of_stock"
)

// Product is catalog data, read-only from the order core's perspective.
// Price and SalePrice are stored values that may carry fractions; the
// pricing engine rounds them to whole currency units before anything is
// persisted on a cart line or order.
type Product struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	SKU          string    `json:"sku"`
	Description  string    `json:"description,omitempty"`
	Price        float64   `json:"price"`
	SalePrice    *float64  `json:"salePrice,omitempty"`
	StockStatus  string    `json:"stockStatus"`
	Customizable bool      `json:"customizable"`
	Images       []string  `json:"images,omitempty"`
	Category     string    `json:"category,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Available reports whether the product can be added to a cart or bought.
func (p *Product) Available() bool {
	return p != nil && p.StockStatus != StockOutOfStock
}

// FirstImage returns the image denormalized onto order items, or "".
func (p *Product) FirstImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}
