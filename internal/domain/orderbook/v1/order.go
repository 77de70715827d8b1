package orderbookv1

import (
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

// Side represents the direction of an order.
type Side string

const (
	// SideBuy represents a bid order.
	SideBuy Side = "buy"
	// SideSell represents an ask order.
	SideSell Side = "sell"
)

// Opposite returns the side an order of this side trades against.
func (s Side) Opposite() Side {
	if s == SideBuy {
		return SideSell
	}
	return SideBuy
}

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	// OrderStatusNew is the initial status: never matched, full quantity remaining.
	OrderStatusNew OrderStatus = "new"
	// OrderStatusPartiallyFilled means some quantity executed and some remains resting.
	OrderStatusPartiallyFilled OrderStatus = "partially_filled"
	// OrderStatusFilled is terminal: zero quantity remaining.
	OrderStatusFilled OrderStatus = "filled"
	// OrderStatusCanceled is terminal: removed from the book, remaining quantity frozen.
	OrderStatusCanceled OrderStatus = "canceled"
)

// IsTerminal reports whether no further mutation of the order is permitted.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusFilled || s == OrderStatusCanceled
}

// Order represents a single order in the order book. Identity is the
// generated ID: two orders with equal price and quantity are distinct
// entries. Side and Price are immutable after creation.
type Order struct {
	ID                string          `json:"id"`
	Side              Side            `json:"side"`
	Price             decimal.Decimal `json:"price"`
	RemainingQuantity int64           `json:"remainingQuantity"`
	Status            OrderStatus     `json:"status"`
	Timestamp         int64           `json:"timestamp"`
}

// NewOrder creates a new order with the given parameters.
func NewOrder(side Side, price decimal.Decimal, quantity int64) (*Order, error) {
	if price.Sign() <= 0 {
		return nil, fmt.Errorf("%w: price must be positive, got %s", ErrInvalidArgument, price)
	}
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive, got %d", ErrInvalidArgument, quantity)
	}

	return &Order{
		ID:                ulid.Make().String(), // Generate a unique ID for the order
		Side:              side,
		Price:             price,
		RemainingQuantity: quantity,
		Status:            OrderStatusNew,
		Timestamp:         time.Now().UnixNano(),
	}, nil
}

// ReduceQuantity subtracts an executed amount from the remaining quantity
// and advances the status: filled when nothing remains, partially filled
// otherwise. It is the only path by which an order moves toward completion
// and is applied to both sides of a match.
func (o *Order) ReduceQuantity(amount int64) error {
	if amount > o.RemainingQuantity {
		return fmt.Errorf("%w: reduction %d exceeds remaining quantity %d", ErrInvalidArgument, amount, o.RemainingQuantity)
	}

	o.RemainingQuantity -= amount
	if o.RemainingQuantity == 0 {
		o.Status = OrderStatusFilled
	} else {
		o.Status = OrderStatusPartiallyFilled
	}

	return nil
}

// IsFilled checks if the order is filled (remaining quantity is zero).
func (o *Order) IsFilled() bool {
	return o.RemainingQuantity == 0
}

// Crosses reports whether the order's limit price crosses the given best
// opposite price: buy at or above the best ask, sell at or below the best bid.
func (o *Order) Crosses(best decimal.Decimal) bool {
	if o.Side == SideBuy {
		return o.Price.GreaterThanOrEqual(best)
	}
	return o.Price.LessThanOrEqual(best)
}
