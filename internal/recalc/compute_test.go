package recalc

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"lv-pnlrecalc/internal/instruments"
	"lv-pnlrecalc/internal/positions"
	"lv-pnlrecalc/internal/types"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func nd(s string) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: decimal.RequireFromString(s), Valid: true}
}

func forexPosition(side types.PositionSide) positions.Position {
	return positions.Position{
		ID:        "p1",
		AccountID: "a1",
		Symbol:    "EUR/USD",
		Side:      side,
		Quantity:  d("0.01"), // 1000 units at lot size 100000
		OpenPrice: d("1.1000"),
		Status:    types.PositionStatusOpen,
	}
}

func TestComputePnLBuySign(t *testing.T) {
	pnl := ComputePnL(instruments.Default(), forexPosition(types.PositionSideBuy), d("1.1050"))
	assert.True(t, pnl.Equal(d("5")), "buy 1000 units over +0.0050 should net 5.00, got %s", pnl)
}

func TestComputePnLSellSign(t *testing.T) {
	pnl := ComputePnL(instruments.Default(), forexPosition(types.PositionSideSell), d("1.1050"))
	assert.True(t, pnl.Equal(d("-5")), "got %s", pnl)
}

func TestComputePnLFeesAlwaysSubtract(t *testing.T) {
	reg := instruments.Default()

	p := forexPosition(types.PositionSideBuy)
	p.Fees = d("1.25")
	assert.True(t, ComputePnL(reg, p, d("1.1050")).Equal(d("3.75")))

	// A losing position still pays fees.
	loser := forexPosition(types.PositionSideSell)
	loser.Fees = d("1.25")
	assert.True(t, ComputePnL(reg, loser, d("1.1050")).Equal(d("-6.25")))

	// Fees stored with a negative sign are still a cost.
	p.Fees = d("-1.25")
	assert.True(t, ComputePnL(reg, p, d("1.1050")).Equal(d("3.75")))
}

func TestComputePnLIndexMultiplier(t *testing.T) {
	p := positions.Position{
		ID:        "p2",
		Symbol:    "US30",
		Side:      types.PositionSideBuy,
		Quantity:  d("2"),
		OpenPrice: d("35000"),
		Status:    types.PositionStatusClosed,
	}
	// 2 contracts x 15 points x multiplier 10.
	pnl := ComputePnL(instruments.Default(), p, d("35015"))
	assert.True(t, pnl.Equal(d("300")), "got %s", pnl)
}

func TestComputePnLPrefersRegistryMultiplier(t *testing.T) {
	p := positions.Position{
		ID:                 "p3",
		Symbol:             "US30",
		Side:               types.PositionSideBuy,
		Quantity:           d("1"),
		OpenPrice:          d("35000"),
		ContractMultiplier: nd("1"), // stale denormalized copy
		Status:             types.PositionStatusClosed,
	}
	pnl := ComputePnL(instruments.Default(), p, d("35010"))
	assert.True(t, pnl.Equal(d("100")), "registry multiplier 10 must win, got %s", pnl)
}

func TestComputePnLRoundsToEightDecimals(t *testing.T) {
	p := positions.Position{
		ID:        "p4",
		Symbol:    "BTC/USD",
		Side:      types.PositionSideBuy,
		Quantity:  d("0.123456789"),
		OpenPrice: d("30000.123456789"),
		Status:    types.PositionStatusOpen,
	}
	pnl := ComputePnL(instruments.Default(), p, d("30001.987654321"))
	assert.Equal(t, pnl.Round(8).String(), pnl.String())
}

func TestClosedExitPriceFallsBackToCurrent(t *testing.T) {
	p := positions.Position{ID: "p5", Status: types.PositionStatusClosed, ClosePrice: nd("1.2345")}
	exit, err := closedExitPrice(p)
	assert.NoError(t, err)
	assert.True(t, exit.Equal(d("1.2345")))

	p.ClosePrice = decimal.NullDecimal{}
	p.CurrentPrice = nd("1.2000")
	exit, err = closedExitPrice(p)
	assert.NoError(t, err)
	assert.True(t, exit.Equal(d("1.2000")))

	p.CurrentPrice = decimal.NullDecimal{}
	_, err = closedExitPrice(p)
	assert.Error(t, err)
}
