package pricing

import "testing"

func floatPtr(v float64) *float64 {
	return &v
}

func TestUnitPricePrefersSalePrice(t *testing.T) {
	if got := UnitPrice(500, floatPtr(400)); got != 400 {
		t.Fatalf("expected sale price 400, got %d", got)
	}
}

func TestUnitPriceIgnoresZeroSalePrice(t *testing.T) {
	if got := UnitPrice(500, floatPtr(0)); got != 500 {
		t.Fatalf("zero sale price must fall back to price, got %d", got)
	}
	if got := UnitPrice(500, nil); got != 500 {
		t.Fatalf("missing sale price must fall back to price, got %d", got)
	}
}

func TestUnitPriceRounds(t *testing.T) {
	if got := UnitPrice(499.5, nil); got != 500 {
		t.Fatalf("expected 500, got %d", got)
	}
	if got := UnitPrice(499.4, nil); got != 499 {
		t.Fatalf("expected 499, got %d", got)
	}
}

func TestQuoteCustomizationFee(t *testing.T) {
	b := Quote(1000, nil, true, 2)
	if b.UnitPrice != 1000 || b.CustomizationFee != 100 {
		t.Fatalf("unexpected breakdown %+v", b)
	}
	if b.FinalUnitPrice != 1100 || b.LineTotal != 2200 {
		t.Fatalf("unexpected breakdown %+v", b)
	}
}

func TestQuoteNoCustomization(t *testing.T) {
	b := Quote(333, nil, false, 3)
	if b.CustomizationFee != 0 || b.FinalUnitPrice != 333 || b.LineTotal != 999 {
		t.Fatalf("unexpected breakdown %+v", b)
	}
}

// Breakdowns are integers and finalUnitPrice*qty == lineTotal for a sweep
// of price/sale/customization/quantity combinations.
func TestQuoteRoundingIdempotence(t *testing.T) {
	prices := []float64{0.4, 1, 99.99, 123.45, 500, 1999.5, 12345.67}
	sales := []*float64{nil, floatPtr(0), floatPtr(0.6), floatPtr(87.3), floatPtr(450)}
	for _, price := range prices {
		for _, sale := range sales {
			for _, customized := range []bool{false, true} {
				for qty := 1; qty <= 10; qty++ {
					b := Quote(price, sale, customized, qty)
					if b.FinalUnitPrice != b.UnitPrice+b.CustomizationFee {
						t.Fatalf("price=%v sale=%v: final %d != unit %d + fee %d",
							price, sale, b.FinalUnitPrice, b.UnitPrice, b.CustomizationFee)
					}
					if b.LineTotal != b.FinalUnitPrice*int64(qty) {
						t.Fatalf("price=%v qty=%d: total %d != final %d * qty",
							price, qty, b.LineTotal, b.FinalUnitPrice)
					}
				}
			}
		}
	}
}

func TestTotalsFreeShippingThreshold(t *testing.T) {
	for _, subtotal := range []int64{0, 1, 1849, 1999, 2000, 2001, 5000} {
		got := TotalsFor(subtotal)
		wantFee := DeliveryFee
		if subtotal >= FreeShippingThreshold {
			wantFee = 0
		}
		if got.DeliveryFee != wantFee {
			t.Fatalf("subtotal=%d: fee %d, want %d", subtotal, got.DeliveryFee, wantFee)
		}
		if got.Total != subtotal+wantFee-got.Discount {
			t.Fatalf("subtotal=%d: total %d mismatch", subtotal, got.Total)
		}
	}
}

func TestCartTotalsSums(t *testing.T) {
	got := CartTotals(500, 700, 300)
	if got.Subtotal != 1500 || got.DeliveryFee != 150 || got.Total != 1650 {
		t.Fatalf("unexpected totals %+v", got)
	}
	free := CartTotals(1500, 700)
	if free.DeliveryFee != 0 || free.Total != 2200 {
		t.Fatalf("unexpected totals %+v", free)
	}
}
