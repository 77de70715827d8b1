package orderbookv1

import "github.com/shopspring/decimal"

// Trade represents a single execution between a taker and a resting maker
// order. The price is always the maker's price; price improvement for the
// taker is not passed through. Trades are immutable once recorded.
type Trade struct {
	Price    decimal.Decimal `json:"price"`
	Quantity int64           `json:"quantity"`
}
