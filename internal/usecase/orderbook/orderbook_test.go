package orderbook

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	orderbookv1 "github.com/tradecore/matching-engine/internal/domain/orderbook/v1"
)

func newTestOrder(t *testing.T, side orderbookv1.Side, price int64, quantity int64) *orderbookv1.Order {
	t.Helper()
	order, err := orderbookv1.NewOrder(side, decimal.NewFromInt(price), quantity)
	require.NoError(t, err)
	return order
}

func TestOrderbook_BestPrice(t *testing.T) {
	testCases := []struct {
		name          string
		setup         func(*Orderbook, *testing.T)
		side          orderbookv1.Side
		expectedPrice int64
		expectEmpty   bool
	}{
		{
			name:        "empty book has no best price for buy",
			setup:       func(ob *Orderbook, t *testing.T) {},
			side:        orderbookv1.SideBuy,
			expectEmpty: true,
		},
		{
			name:        "empty book has no best price for sell",
			setup:       func(ob *Orderbook, t *testing.T) {},
			side:        orderbookv1.SideSell,
			expectEmpty: true,
		},
		{
			name: "buy sees lowest ask",
			setup: func(ob *Orderbook, t *testing.T) {
				ob.Insert(newTestOrder(t, orderbookv1.SideSell, 102, 1))
				ob.Insert(newTestOrder(t, orderbookv1.SideSell, 100, 1))
				ob.Insert(newTestOrder(t, orderbookv1.SideSell, 101, 1))
			},
			side:          orderbookv1.SideBuy,
			expectedPrice: 100,
		},
		{
			name: "sell sees highest bid",
			setup: func(ob *Orderbook, t *testing.T) {
				ob.Insert(newTestOrder(t, orderbookv1.SideBuy, 98, 1))
				ob.Insert(newTestOrder(t, orderbookv1.SideBuy, 100, 1))
				ob.Insert(newTestOrder(t, orderbookv1.SideBuy, 99, 1))
			},
			side:          orderbookv1.SideSell,
			expectedPrice: 100,
		},
		{
			name: "own side does not affect best price",
			setup: func(ob *Orderbook, t *testing.T) {
				ob.Insert(newTestOrder(t, orderbookv1.SideBuy, 100, 1))
			},
			side:        orderbookv1.SideBuy,
			expectEmpty: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ob := NewOrderbook()
			tc.setup(ob, t)

			best, ok := ob.BestPrice(tc.side)
			if tc.expectEmpty {
				assert.False(t, ok)
				return
			}

			require.True(t, ok)
			assert.True(t, best.Equal(decimal.NewFromInt(tc.expectedPrice)))
		})
	}
}

func TestOrderbook_InsertKeepsPriceOrder(t *testing.T) {
	ob := NewOrderbook()
	for _, price := range []int64{100, 98, 102, 99, 101} {
		ob.Insert(newTestOrder(t, orderbookv1.SideBuy, price, 1))
		ob.Insert(newTestOrder(t, orderbookv1.SideSell, price, 1))
	}

	bids := ob.Bids()
	require.Len(t, bids, 5)
	for i, expected := range []int64{102, 101, 100, 99, 98} {
		assert.True(t, bids[i].Price.Equal(decimal.NewFromInt(expected)))
	}

	asks := ob.Asks()
	require.Len(t, asks, 5)
	for i, expected := range []int64{98, 99, 100, 101, 102} {
		assert.True(t, asks[i].Price.Equal(decimal.NewFromInt(expected)))
	}
}

func TestOrderbook_InsertSamePriceQueues(t *testing.T) {
	ob := NewOrderbook()
	first := newTestOrder(t, orderbookv1.SideSell, 100, 1)
	second := newTestOrder(t, orderbookv1.SideSell, 100, 2)
	ob.Insert(first)
	ob.Insert(second)

	asks := ob.Asks()
	require.Len(t, asks, 1)
	assert.Equal(t, 2, asks[0].Len())
	assert.Equal(t, first.ID, asks[0].Head().ID)
}

func TestOrderbook_RemoveHead(t *testing.T) {
	ob := NewOrderbook()
	price := decimal.NewFromInt(100)
	first := newTestOrder(t, orderbookv1.SideSell, 100, 1)
	second := newTestOrder(t, orderbookv1.SideSell, 100, 2)
	ob.Insert(first)
	ob.Insert(second)

	head := ob.RemoveHead(orderbookv1.SideSell, price)
	require.NotNil(t, head)
	assert.Equal(t, first.ID, head.ID)
	assert.Equal(t, second.ID, ob.Head(orderbookv1.SideSell, price).ID)

	// level disappears with its last order
	ob.RemoveHead(orderbookv1.SideSell, price)
	assert.Nil(t, ob.Head(orderbookv1.SideSell, price))
	assert.Empty(t, ob.Asks())

	_, ok := ob.BestPrice(orderbookv1.SideBuy)
	assert.False(t, ok)

	assert.Nil(t, ob.RemoveHead(orderbookv1.SideSell, price))
}

func TestOrderbook_Remove(t *testing.T) {
	ob := NewOrderbook()
	first := newTestOrder(t, orderbookv1.SideBuy, 100, 1)
	second := newTestOrder(t, orderbookv1.SideBuy, 100, 2)
	ob.Insert(first)
	ob.Insert(second)

	assert.True(t, ob.Remove(first))
	assert.False(t, ob.Remove(first))
	assert.Equal(t, second.ID, ob.Head(orderbookv1.SideBuy, decimal.NewFromInt(100)).ID)

	assert.True(t, ob.Remove(second))
	assert.Empty(t, ob.Bids())
}

func TestOrderbook_RemoveUnknownOrder(t *testing.T) {
	ob := NewOrderbook()
	ob.Insert(newTestOrder(t, orderbookv1.SideBuy, 100, 1))

	// same price, never inserted
	stranger := newTestOrder(t, orderbookv1.SideBuy, 100, 1)
	assert.False(t, ob.Remove(stranger))
	require.Len(t, ob.Bids(), 1)
}

func TestOrderbook_EquivalentDecimalPrices(t *testing.T) {
	ob := NewOrderbook()
	first, err := orderbookv1.NewOrder(orderbookv1.SideSell, decimal.NewFromFloat(100.0), 1)
	require.NoError(t, err)
	second, err := orderbookv1.NewOrder(orderbookv1.SideSell, decimal.NewFromInt(100), 2)
	require.NoError(t, err)

	ob.Insert(first)
	ob.Insert(second)

	// numerically equal prices share one level
	asks := ob.Asks()
	require.Len(t, asks, 1)
	assert.Equal(t, int64(3), asks[0].TotalQuantity())
}
