// Package pricing computes unit prices, customization fees and checkout
// totals. Every monetary value is rounded to the nearest whole currency
// unit at every step; no fractional amount ever leaves this package.
package pricing

import "math"

const (
	// CustomizationRate is the fee charged on top of the unit price when a
	// customization is requested.
	CustomizationRate = 0.10
	// FreeShippingThreshold is the cart subtotal at or above which the flat
	// delivery fee is waived.
	FreeShippingThreshold int64 = 2000
	// DeliveryFee is the flat delivery fee charged under the threshold.
	DeliveryFee int64 = 150
)

// Breakdown is the integer price breakdown for one line.
type Breakdown struct {
	UnitPrice        int64 `json:"unitPrice"`
	CustomizationFee int64 `json:"customizationFee"`
	FinalUnitPrice   int64 `json:"finalUnitPrice"`
	LineTotal        int64 `json:"lineTotal"`
}

// Totals is the cart/checkout aggregation.
type Totals struct {
	Subtotal    int64 `json:"subtotal"`
	DeliveryFee int64 `json:"deliveryFee"`
	Discount    int64 `json:"discount"`
	Total       int64 `json:"total"`
}

// Round rounds a stored monetary value to the nearest whole unit.
func Round(v float64) int64 {
	return int64(math.Round(v))
}

// UnitPrice picks the effective unit price: the sale price when one is set
// and positive, otherwise the regular price. A zero or missing sale price
// must never be read as "free".
func UnitPrice(price float64, salePrice *float64) int64 {
	if salePrice != nil && *salePrice > 0 {
		return Round(*salePrice)
	}
	return Round(price)
}

// Quote computes the full breakdown for one line.
func Quote(price float64, salePrice *float64, customized bool, quantity int) Breakdown {
	unit := UnitPrice(price, salePrice)
	var fee int64
	if customized {
		fee = Round(float64(unit) * CustomizationRate)
	}
	final := unit + fee
	return Breakdown{
		UnitPrice:        unit,
		CustomizationFee: fee,
		FinalUnitPrice:   final,
		LineTotal:        final * int64(quantity),
	}
}

// CartTotals aggregates line totals into checkout totals. Discount is
// reserved for future promotions and currently always zero.
func CartTotals(lineTotals ...int64) Totals {
	var subtotal int64
	for _, t := range lineTotals {
		subtotal += t
	}
	return TotalsFor(subtotal)
}

// TotalsFor computes delivery fee and grand total for a subtotal.
func TotalsFor(subtotal int64) Totals {
	fee := DeliveryFee
	if subtotal >= FreeShippingThreshold {
		fee = 0
	}
	return Totals{
		Subtotal:    subtotal,
		DeliveryFee: fee,
		Discount:    0,
		Total:       subtotal + fee,
	}
}
