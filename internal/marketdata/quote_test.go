package marketdata

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"lv-pnlrecalc/internal/types"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestExitPriceSideSelection(t *testing.T) {
	q := Quote{Symbol: "EUR/USD", Bid: d("1.1040"), Ask: d("1.1060"), Price: d("1.1050")}

	// Closing a buy sells at the bid, closing a sell buys at the ask.
	assert.True(t, q.ExitPrice(types.PositionSideBuy).Equal(d("1.1040")))
	assert.True(t, q.ExitPrice(types.PositionSideSell).Equal(d("1.1060")))
}

func TestExitPriceFallsBackToLast(t *testing.T) {
	q := Quote{Symbol: "EUR/USD", Price: d("1.1050")}
	assert.True(t, q.ExitPrice(types.PositionSideBuy).Equal(d("1.1050")))
	assert.True(t, q.ExitPrice(types.PositionSideSell).Equal(d("1.1050")))
}

func TestQuoteValid(t *testing.T) {
	assert.False(t, Quote{}.Valid())
	assert.True(t, Quote{Bid: d("1")}.Valid())
	assert.True(t, Quote{Price: d("1")}.Valid())
}

func TestCacheIgnoresUnusableQuotes(t *testing.T) {
	c := NewCache()
	c.Set(Quote{Symbol: "EUR/USD"}) // no prices
	c.Set(Quote{Bid: d("1")})       // no symbol
	_, ok := c.Get("EUR/USD")
	assert.False(t, ok)

	c.Set(Quote{Symbol: "EUR/USD", Bid: d("1.1")})
	q, ok := c.Get("EUR/USD")
	assert.True(t, ok)
	assert.True(t, q.Bid.Equal(d("1.1")))
}
