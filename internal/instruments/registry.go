package instruments

import (
	"log"

	"github.com/shopspring/decimal"

	"lv-pnlrecalc/internal/types"
)

// Config holds the static contract parameters for one tradable symbol.
// LotSize is set only for forex symbols: number of base currency units per
// 1.0 lot. A zero LotSize means quantities are already in base units.
type Config struct {
	Symbol             string
	Kind               types.InstrumentKind
	ContractMultiplier decimal.Decimal
	TickSize           decimal.Decimal
	QtyStep            decimal.Decimal
	LotSize            decimal.Decimal
	MaxLeverage        int
	MinNotional        decimal.Decimal
}

// Registry is an immutable symbol -> Config lookup built once at startup.
// Lookups never fail: unknown symbols get a crypto-like default so that a
// missing registry entry can never abort a batch.
type Registry struct {
	configs  map[string]Config
	fallback Config
}

func NewRegistry(configs []Config) *Registry {
	m := make(map[string]Config, len(configs))
	for _, c := range configs {
		m[c.Symbol] = c
	}
	return &Registry{
		configs: m,
		fallback: Config{
			Kind:               types.InstrumentKindCrypto,
			ContractMultiplier: decimal.NewFromInt(1),
			TickSize:           decimal.NewFromFloat(0.01),
			QtyStep:            decimal.NewFromFloat(0.00000001),
			MaxLeverage:        10,
		},
	}
}

// Get returns the config for symbol, or a crypto-like default when the
// symbol is unknown. The fallback is logged because a wrong multiplier is
// silently assumed in that case.
func (r *Registry) Get(symbol string) Config {
	if c, ok := r.configs[symbol]; ok {
		return c
	}
	log.Printf("[instruments] unknown symbol %q, using crypto defaults", symbol)
	c := r.fallback
	c.Symbol = symbol
	return c
}

// Has reports whether symbol is present without triggering the fallback.
func (r *Registry) Has(symbol string) bool {
	_, ok := r.configs[symbol]
	return ok
}

// PositionUnits converts a user-facing quantity into base units. Forex
// quantities are lots and scale by the lot size; everything else passes
// through unchanged. All P/L call sites must route quantity through here.
func (r *Registry) PositionUnits(qty decimal.Decimal, symbol string) decimal.Decimal {
	cfg := r.Get(symbol)
	if cfg.LotSize.IsPositive() {
		return qty.Mul(cfg.LotSize)
	}
	return qty
}

// RoundToTickSize floors price to the symbol's minimum price increment.
func (r *Registry) RoundToTickSize(symbol string, price decimal.Decimal) decimal.Decimal {
	return floorToStep(price, r.Get(symbol).TickSize)
}

// RoundToQtyStep floors qty to the symbol's minimum quantity increment.
func (r *Registry) RoundToQtyStep(symbol string, qty decimal.Decimal) decimal.Decimal {
	return floorToStep(qty, r.Get(symbol).QtyStep)
}

func floorToStep(v, step decimal.Decimal) decimal.Decimal {
	if !step.IsPositive() {
		return v
	}
	return v.Div(step).Floor().Mul(step)
}

// RequiredMargin returns notional / leverage.
func RequiredMargin(notional decimal.Decimal, leverage int) decimal.Decimal {
	if leverage <= 0 {
		return notional
	}
	return notional.Div(decimal.NewFromInt(int64(leverage)))
}
