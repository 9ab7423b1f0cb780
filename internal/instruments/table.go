package instruments

import (
	"github.com/shopspring/decimal"

	"lv-pnlrecalc/internal/types"
)

// Default returns the built-in instrument table used by the recalculation
// tool. Symbols match the platform's display format (slash-separated pairs,
// bare tickers for indices and stocks).
func Default() *Registry {
	return NewRegistry(defaultConfigs())
}

func defaultConfigs() []Config {
	d := func(s string) decimal.Decimal { return decimal.RequireFromString(s) }
	forex := func(symbol string) Config {
		return Config{
			Symbol:             symbol,
			Kind:               types.InstrumentKindForex,
			ContractMultiplier: d("1"),
			TickSize:           d("0.00001"),
			QtyStep:            d("0.01"),
			LotSize:            d("100000"),
			MaxLeverage:        500,
			MinNotional:        d("1000"),
		}
	}
	crypto := func(symbol, tick, qtyStep string) Config {
		return Config{
			Symbol:             symbol,
			Kind:               types.InstrumentKindCrypto,
			ContractMultiplier: d("1"),
			TickSize:           d(tick),
			QtyStep:            d(qtyStep),
			MaxLeverage:        20,
			MinNotional:        d("10"),
		}
	}
	index := func(symbol, multiplier, tick string) Config {
		return Config{
			Symbol:             symbol,
			Kind:               types.InstrumentKindIndex,
			ContractMultiplier: d(multiplier),
			TickSize:           d(tick),
			QtyStep:            d("0.1"),
			MaxLeverage:        100,
			MinNotional:        d("100"),
		}
	}

	jpy := forex("USD/JPY")
	jpy.TickSize = d("0.001")

	return []Config{
		forex("EUR/USD"),
		forex("GBP/USD"),
		forex("AUD/USD"),
		jpy,
		crypto("BTC/USD", "0.01", "0.00001"),
		crypto("ETH/USD", "0.01", "0.0001"),
		crypto("SOL/USD", "0.001", "0.001"),
		index("US30", "10", "1"),
		index("NAS100", "20", "0.25"),
		index("SPX500", "50", "0.25"),
		{
			Symbol:             "XAU/USD",
			Kind:               types.InstrumentKindCommodity,
			ContractMultiplier: d("100"),
			TickSize:           d("0.01"),
			QtyStep:            d("0.01"),
			MaxLeverage:        200,
			MinNotional:        d("100"),
		},
		{
			Symbol:             "WTI/USD",
			Kind:               types.InstrumentKindCommodity,
			ContractMultiplier: d("1000"),
			TickSize:           d("0.01"),
			QtyStep:            d("0.01"),
			MaxLeverage:        100,
			MinNotional:        d("100"),
		},
		{
			Symbol:             "AAPL",
			Kind:               types.InstrumentKindStock,
			ContractMultiplier: d("1"),
			TickSize:           d("0.01"),
			QtyStep:            d("1"),
			MaxLeverage:        5,
			MinNotional:        d("1"),
		},
		{
			Symbol:             "TSLA",
			Kind:               types.InstrumentKindStock,
			ContractMultiplier: d("1"),
			TickSize:           d("0.01"),
			QtyStep:            d("1"),
			MaxLeverage:        5,
			MinNotional:        d("1"),
		},
	}
}
