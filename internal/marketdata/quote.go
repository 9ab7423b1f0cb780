package marketdata

import (
	"github.com/shopspring/decimal"

	"lv-pnlrecalc/internal/types"
)

// Quote is a point-in-time bid/ask snapshot for one symbol. Price carries
// the last trade price and backstops providers that omit bid/ask.
type Quote struct {
	Symbol string          `json:"symbol"`
	Bid    decimal.Decimal `json:"bid"`
	Ask    decimal.Decimal `json:"ask"`
	Price  decimal.Decimal `json:"price"`
}

// ExitPrice returns the price at which a position of the given side would
// exit right now: closing a buy is a sell and fills at the bid, closing a
// sell is a buy and fills at the ask. Falls back to the last trade price
// when the relevant side is missing from the quote.
func (q Quote) ExitPrice(side types.PositionSide) decimal.Decimal {
	switch side {
	case types.PositionSideBuy:
		if q.Bid.IsPositive() {
			return q.Bid
		}
	case types.PositionSideSell:
		if q.Ask.IsPositive() {
			return q.Ask
		}
	}
	return q.Price
}

// Valid reports whether the quote carries at least one usable price.
func (q Quote) Valid() bool {
	return q.Bid.IsPositive() || q.Ask.IsPositive() || q.Price.IsPositive()
}
