package orderbook

import (
	"sort"

	"github.com/shopspring/decimal"

	orderbookv1 "github.com/tradecore/matching-engine/internal/domain/orderbook/v1"
)

// Orderbook maintains the two sides of a single instrument's book: a
// mapping from price to FIFO level per side, plus a price slice per side
// kept in priority order (bids descending, asks ascending). A price level
// with an empty queue never persists in the mapping.
//
// The book is not safe for concurrent use; the engine serializes all
// access behind its guard.
type Orderbook struct {
	bidLevels map[string]*orderbookv1.Level // price key -> level
	askLevels map[string]*orderbookv1.Level // price key -> level
	bidPrices []decimal.Decimal             // sorted descending (best bid first)
	askPrices []decimal.Decimal             // sorted ascending (best ask first)
}

// NewOrderbook creates a new empty orderbook.
func NewOrderbook() *Orderbook {
	return &Orderbook{
		bidLevels: make(map[string]*orderbookv1.Level),
		askLevels: make(map[string]*orderbookv1.Level),
		bidPrices: make([]decimal.Decimal, 0),
		askPrices: make([]decimal.Decimal, 0),
	}
}

// Insert appends an order to the tail of the level queue for its side and
// price, creating the level if absent.
func (ob *Orderbook) Insert(order *orderbookv1.Order) {
	levels := ob.levels(order.Side)
	key := order.Price.String()

	level, exists := levels[key]
	if !exists {
		level = orderbookv1.NewLevel(order.Price)
		levels[key] = level
		ob.insertPrice(order.Side, order.Price)
	}

	level.Enqueue(order)
}

// Head returns the oldest order at the given side's level for price, or
// nil when no such level exists.
func (ob *Orderbook) Head(side orderbookv1.Side, price decimal.Decimal) *orderbookv1.Order {
	level, exists := ob.levels(side)[price.String()]
	if !exists {
		return nil
	}
	return level.Head()
}

// RemoveHead pops the front order of the given side's level for price,
// deleting the level when it becomes empty.
func (ob *Orderbook) RemoveHead(side orderbookv1.Side, price decimal.Decimal) *orderbookv1.Order {
	key := price.String()
	level, exists := ob.levels(side)[key]
	if !exists {
		return nil
	}

	head := level.PopHead()
	if level.IsEmpty() {
		delete(ob.levels(side), key)
		ob.removePrice(side, price)
	}
	return head
}

// Remove removes a specific order, not necessarily the head, from its
// level's queue, deleting the level when it becomes empty. It reports
// whether the order was resting in the book.
func (ob *Orderbook) Remove(order *orderbookv1.Order) bool {
	key := order.Price.String()
	level, exists := ob.levels(order.Side)[key]
	if !exists {
		return false
	}

	if !level.Remove(order) {
		return false
	}
	if level.IsEmpty() {
		delete(ob.levels(order.Side), key)
		ob.removePrice(order.Side, order.Price)
	}
	return true
}

// BestPrice returns the best executable price for a new order of the given
// side, i.e. the best price on the opposite book: the lowest resting ask
// for a buy, the highest resting bid for a sell. The second return value
// is false when that book is empty.
func (ob *Orderbook) BestPrice(side orderbookv1.Side) (decimal.Decimal, bool) {
	var prices []decimal.Decimal
	if side == orderbookv1.SideBuy {
		prices = ob.askPrices
	} else {
		prices = ob.bidPrices
	}

	if len(prices) == 0 {
		return decimal.Decimal{}, false
	}
	return prices[0], true
}

// Bids returns the bid levels in priority order (highest price first).
func (ob *Orderbook) Bids() []*orderbookv1.Level {
	levels := make([]*orderbookv1.Level, 0, len(ob.bidPrices))
	for _, price := range ob.bidPrices {
		levels = append(levels, ob.bidLevels[price.String()])
	}
	return levels
}

// Asks returns the ask levels in priority order (lowest price first).
func (ob *Orderbook) Asks() []*orderbookv1.Level {
	levels := make([]*orderbookv1.Level, 0, len(ob.askPrices))
	for _, price := range ob.askPrices {
		levels = append(levels, ob.askLevels[price.String()])
	}
	return levels
}

func (ob *Orderbook) levels(side orderbookv1.Side) map[string]*orderbookv1.Level {
	if side == orderbookv1.SideBuy {
		return ob.bidLevels
	}
	return ob.askLevels
}

// insertPrice splices a new price into the side's slice, keeping priority
// order. Position is found by binary search.
func (ob *Orderbook) insertPrice(side orderbookv1.Side, price decimal.Decimal) {
	if side == orderbookv1.SideBuy {
		idx := sort.Search(len(ob.bidPrices), func(i int) bool {
			return ob.bidPrices[i].LessThan(price)
		})
		ob.bidPrices = append(ob.bidPrices, decimal.Decimal{})
		copy(ob.bidPrices[idx+1:], ob.bidPrices[idx:])
		ob.bidPrices[idx] = price
		return
	}

	idx := sort.Search(len(ob.askPrices), func(i int) bool {
		return ob.askPrices[i].GreaterThan(price)
	})
	ob.askPrices = append(ob.askPrices, decimal.Decimal{})
	copy(ob.askPrices[idx+1:], ob.askPrices[idx:])
	ob.askPrices[idx] = price
}

func (ob *Orderbook) removePrice(side orderbookv1.Side, price decimal.Decimal) {
	if side == orderbookv1.SideBuy {
		idx := sort.Search(len(ob.bidPrices), func(i int) bool {
			return ob.bidPrices[i].LessThanOrEqual(price)
		})
		if idx < len(ob.bidPrices) && ob.bidPrices[idx].Equal(price) {
			ob.bidPrices = append(ob.bidPrices[:idx], ob.bidPrices[idx+1:]...)
		}
		return
	}

	idx := sort.Search(len(ob.askPrices), func(i int) bool {
		return ob.askPrices[i].GreaterThanOrEqual(price)
	})
	if idx < len(ob.askPrices) && ob.askPrices[idx].Equal(price) {
		ob.askPrices = append(ob.askPrices[:idx], ob.askPrices[idx+1:]...)
	}
}
