package engine

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	orderbookv1 "github.com/tradecore/matching-engine/internal/domain/orderbook/v1"
	"github.com/tradecore/matching-engine/internal/usecase/orderbook"
	"github.com/tradecore/matching-engine/pkg/config"
	"github.com/tradecore/matching-engine/pkg/logger"
)

// Engine matches incoming orders against the resting book for a single
// instrument and records every execution in the trade history.
//
// All public methods are safe for concurrent use: a single mutex guards
// the book and the history together, so matching, cancellation and the
// text renderings each observe a consistent snapshot. Internal helpers
// named with a lockHeld-style contract assume the guard is already taken
// and must never re-acquire it.
type Engine struct {
	orderbook *orderbook.Orderbook
	logger    *logger.Logger
	config    *config.Config

	mu     sync.Mutex
	trades []orderbookv1.Trade
}

// NewEngine creates a new instance of Engine with the provided dependencies.
func NewEngine(ob *orderbook.Orderbook, logger *logger.Logger, config *config.Config) *Engine {
	return &Engine{
		orderbook: ob,
		logger:    logger,
		config:    config,
		trades:    make([]orderbookv1.Trade, 0),
	}
}

// PlaceOrder matches the order against the opposite side of the book and,
// if quantity remains after matching, rests the remainder at its limit
// price. Executions happen at the resting order's price.
func (e *Engine) PlaceOrder(ctx context.Context, order *orderbookv1.Order) error {
	if order == nil {
		return fmt.Errorf("%w: order must not be nil", orderbookv1.ErrInvalidArgument)
	}
	if order.Price.Sign() <= 0 {
		return fmt.Errorf("%w: price must be positive, got %s", orderbookv1.ErrInvalidArgument, order.Price)
	}
	if order.RemainingQuantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive, got %d", orderbookv1.ErrInvalidArgument, order.RemainingQuantity)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.matchOrder(order) {
		e.orderbook.Insert(order)
	}

	// logged while the guard is held: a rested order may be mutated by a
	// concurrent match the moment the lock is released
	e.logger.DebugContext(ctx, "order placed",
		logger.Field{Key: "pair", Value: e.config.Pair},
		logger.Field{Key: "orderID", Value: order.ID},
		logger.Field{Key: "side", Value: order.Side},
		logger.Field{Key: "price", Value: order.Price},
		logger.Field{Key: "remainingQuantity", Value: order.RemainingQuantity},
		logger.Field{Key: "status", Value: order.Status},
	)

	return nil
}

// CancelOrder removes a resting order from the book and marks it canceled,
// freezing its remaining quantity. Orders that are already filled or
// canceled cannot be canceled again.
func (e *Engine) CancelOrder(ctx context.Context, order *orderbookv1.Order) error {
	if order == nil {
		return fmt.Errorf("%w: order must not be nil", orderbookv1.ErrInvalidArgument)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if order.Status.IsTerminal() {
		return fmt.Errorf("%w: cannot cancel a %s order", orderbookv1.ErrInvalidOperation, order.Status)
	}
	if !e.orderbook.Remove(order) {
		return fmt.Errorf("%w: order %s is not resting in the book", orderbookv1.ErrInvalidOperation, order.ID)
	}
	order.Status = orderbookv1.OrderStatusCanceled

	e.logger.DebugContext(ctx, "order canceled",
		logger.Field{Key: "pair", Value: e.config.Pair},
		logger.Field{Key: "orderID", Value: order.ID},
		logger.Field{Key: "remainingQuantity", Value: order.RemainingQuantity},
	)

	return nil
}

// GetBestPrice returns the best executable price for an incoming order of
// the given side: the lowest resting ask for a buy, the highest resting
// bid for a sell. The second return value is false when the opposite book
// is empty.
func (e *Engine) GetBestPrice(side orderbookv1.Side) (decimal.Decimal, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.orderbook.BestPrice(side)
}

// Trades returns a copy of the trade history in execution order.
func (e *Engine) Trades() []orderbookv1.Trade {
	e.mu.Lock()
	defer e.mu.Unlock()

	trades := make([]orderbookv1.Trade, len(e.trades))
	copy(trades, e.trades)
	return trades
}

// OrderBookText renders both sides of the book, one aggregated line per
// price level in priority order, bids first.
func (e *Engine) OrderBookText() string {
	e.mu.Lock()
	defer e.mu.Unlock()

	var sb strings.Builder
	sb.WriteString("Buy Orders:\n")
	for _, level := range e.orderbook.Bids() {
		fmt.Fprintf(&sb, "Price: %s, Quantity: %d\n", level.Price, level.TotalQuantity())
	}
	sb.WriteString("Sell Orders:\n")
	for _, level := range e.orderbook.Asks() {
		fmt.Fprintf(&sb, "Price: %s, Quantity: %d\n", level.Price, level.TotalQuantity())
	}
	return sb.String()
}

// TradingHistoryText renders the executed trades, oldest first.
func (e *Engine) TradingHistoryText() string {
	e.mu.Lock()
	defer e.mu.Unlock()

	var sb strings.Builder
	sb.WriteString("Trading History:\n")
	for _, trade := range e.trades {
		fmt.Fprintf(&sb, "Price: %s, Quantity: %d\n", trade.Price, trade.Quantity)
	}
	return sb.String()
}

// matchOrder sweeps the opposite side of the book while the taker still
// crosses the best price, executing against resting orders oldest first.
// It reports whether the taker was completely filled. The engine mutex
// must be held.
func (e *Engine) matchOrder(taker *orderbookv1.Order) bool {
	for {
		best, ok := e.orderbook.BestPrice(taker.Side)
		if !ok || !taker.Crosses(best) {
			return false
		}

		maker := e.orderbook.Head(taker.Side.Opposite(), best)
		if e.matchOrders(taker, maker) {
			return true
		}
	}
}

// matchOrders executes a single fill between the taker and the maker at
// the maker's price, removing the maker from the book when it fills. It
// reports whether the taker was completely filled. The engine mutex must
// be held.
func (e *Engine) matchOrders(taker, maker *orderbookv1.Order) bool {
	quantity := min(taker.RemainingQuantity, maker.RemainingQuantity)

	e.trades = append(e.trades, orderbookv1.Trade{
		Price:    maker.Price,
		Quantity: quantity,
	})
	_ = maker.ReduceQuantity(quantity)
	_ = taker.ReduceQuantity(quantity)

	if maker.IsFilled() {
		e.orderbook.RemoveHead(maker.Side, maker.Price)
	}

	return taker.IsFilled()
}
