package instruments

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lv-pnlrecalc/internal/types"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestPositionUnitsForexConvertsLots(t *testing.T) {
	reg := Default()

	units := reg.PositionUnits(d("0.01"), "EUR/USD")
	assert.True(t, units.Equal(d("1000")), "0.01 lot should be 1000 units, got %s", units)

	units = reg.PositionUnits(d("2.5"), "GBP/USD")
	assert.True(t, units.Equal(d("250000")), "got %s", units)
}

func TestPositionUnitsNonForexPassthrough(t *testing.T) {
	reg := Default()
	for _, symbol := range []string{"BTC/USD", "US30", "XAU/USD", "AAPL"} {
		qty := d("0.37")
		assert.True(t, reg.PositionUnits(qty, symbol).Equal(qty), "symbol %s", symbol)
	}
}

func TestGetUnknownSymbolFallsBack(t *testing.T) {
	reg := Default()
	require.NotPanics(t, func() {
		cfg := reg.Get("UNKNOWN/XYZ")
		assert.Equal(t, "UNKNOWN/XYZ", cfg.Symbol)
		assert.Equal(t, types.InstrumentKindCrypto, cfg.Kind)
		assert.True(t, cfg.ContractMultiplier.Equal(d("1")))
		assert.False(t, cfg.LotSize.IsPositive())
	})
	assert.False(t, reg.Has("UNKNOWN/XYZ"))
	assert.True(t, reg.Has("EUR/USD"))
}

func TestRoundingFloorsToIncrement(t *testing.T) {
	reg := Default()

	price := reg.RoundToTickSize("EUR/USD", d("1.234567"))
	assert.True(t, price.Equal(d("1.23456")), "got %s", price)

	qty := reg.RoundToQtyStep("EUR/USD", d("0.019"))
	assert.True(t, qty.Equal(d("0.01")), "got %s", qty)

	// Unknown symbol uses the fallback steps, never panics.
	assert.NotPanics(t, func() { reg.RoundToTickSize("NOPE", d("5.555")) })
}

func TestRequiredMargin(t *testing.T) {
	m := RequiredMargin(d("100000"), 100)
	assert.True(t, m.Equal(d("1000")), "got %s", m)

	// Non-positive leverage means no margin relief.
	assert.True(t, RequiredMargin(d("500"), 0).Equal(d("500")))
}
