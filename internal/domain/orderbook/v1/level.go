package orderbookv1

import "github.com/shopspring/decimal"

// Level represents a price level: the FIFO queue of orders resting at one
// price on one side of the book. Orders are visited oldest first, so
// insertion order is arrival order.
type Level struct {
	Price  decimal.Decimal
	orders []*Order
}

// NewLevel creates an empty level at the given price.
func NewLevel(price decimal.Decimal) *Level {
	return &Level{
		Price:  price,
		orders: make([]*Order, 0),
	}
}

// Enqueue appends an order to the tail of the level's queue.
func (l *Level) Enqueue(order *Order) {
	l.orders = append(l.orders, order)
}

// Head returns the oldest order at this level, or nil when empty.
func (l *Level) Head() *Order {
	if len(l.orders) == 0 {
		return nil
	}
	return l.orders[0]
}

// PopHead removes and returns the oldest order at this level.
func (l *Level) PopHead() *Order {
	if len(l.orders) == 0 {
		return nil
	}
	head := l.orders[0]
	l.orders = l.orders[1:]
	return head
}

// Remove removes a specific order from the queue, matching by ID. It
// reports whether the order was present.
func (l *Level) Remove(order *Order) bool {
	for i, o := range l.orders {
		if o.ID == order.ID {
			l.orders = append(l.orders[:i], l.orders[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of orders resting at this level.
func (l *Level) Len() int {
	return len(l.orders)
}

// IsEmpty checks if the level has no orders.
func (l *Level) IsEmpty() bool {
	return len(l.orders) == 0
}

// TotalQuantity returns the aggregated remaining quantity at this level.
func (l *Level) TotalQuantity() int64 {
	var total int64
	for _, o := range l.orders {
		total += o.RemainingQuantity
	}
	return total
}

// Orders returns a copy of the queue in arrival order.
func (l *Level) Orders() []*Order {
	orders := make([]*Order, len(l.orders))
	copy(orders, l.orders)
	return orders
}
