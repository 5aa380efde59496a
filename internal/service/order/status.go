package order

import "github.com/salehkamalkamel/rofida-furniture-sub001/internal/domain"

// validNext encodes the order status machine. Missing entries mean the
// transition is rejected; cancelled and delivered are terminal.
var validNext = map[string]map[string]bool{
	domain.OrderPending: {
		domain.OrderProcessing: true,
		domain.OrderCancelled:  true,
	},
	domain.OrderProcessing: {
		domain.OrderShipped:   true,
		domain.OrderCancelled: true,
	},
	domain.OrderShipped: {
		domain.OrderDelivered: true,
	},
}

// CanTransition reports whether an order may move from one status to
// another.
func CanTransition(from, to string) bool {
	return validNext[from][to]
}

// CanCancel reports whether an order in the given status may still be
// cancelled. Shipped and later orders cannot.
func CanCancel(status string) bool {
	return CanTransition(status, domain.OrderCancelled)
}
