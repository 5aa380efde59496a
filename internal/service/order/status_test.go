package order

import (
	"testing"

	"github.com/salehkamalkamel/rofida-furniture-sub001/internal/domain"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{domain.OrderPending, domain.OrderProcessing, true},
		{domain.OrderPending, domain.OrderCancelled, true},
		{domain.OrderPending, domain.OrderShipped, false},
		{domain.OrderPending, domain.OrderDelivered, false},
		{domain.OrderProcessing, domain.OrderShipped, true},
		{domain.OrderProcessing, domain.OrderCancelled, true},
		{domain.OrderProcessing, domain.OrderPending, false},
		{domain.OrderShipped, domain.OrderDelivered, true},
		{domain.OrderShipped, domain.OrderCancelled, false},
		{domain.OrderShipped, domain.OrderProcessing, false},
		{domain.OrderDelivered, domain.OrderCancelled, false},
		{domain.OrderDelivered, domain.OrderShipped, false},
		{domain.OrderCancelled, domain.OrderPending, false},
		{domain.OrderCancelled, domain.OrderProcessing, false},
		{domain.OrderPending, domain.OrderPending, false},
		{"bogus", domain.OrderProcessing, false},
	}
	for _, c := range cases {
		if got := CanTransition(c.from, c.to); got != c.want {
			t.Errorf("CanTransition(%q, %q) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestCanCancel(t *testing.T) {
	cancellable := map[string]bool{
		domain.OrderPending:    true,
		domain.OrderProcessing: true,
		domain.OrderShipped:    false,
		domain.OrderDelivered:  false,
		domain.OrderCancelled:  false,
	}
	for status, want := range cancellable {
		if got := CanCancel(status); got != want {
			t.Errorf("CanCancel(%q) = %v, want %v", status, got, want)
		}
	}
}
