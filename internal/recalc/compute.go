package recalc

import (
	"fmt"
	"log"

	"github.com/shopspring/decimal"

	"lv-pnlrecalc/internal/instruments"
	"lv-pnlrecalc/internal/positions"
	"lv-pnlrecalc/internal/types"
)

// pnlScale is the fractional precision of persisted monetary values.
const pnlScale = 8

// ComputePnL returns the signed net P/L in quote currency for a position
// exiting at exitPrice. The registry's contract multiplier is canonical; the
// denormalized copy on the position row is only checked so a stale value can
// be reported.
func ComputePnL(reg *instruments.Registry, p positions.Position, exitPrice decimal.Decimal) decimal.Decimal {
	cfg := reg.Get(p.Symbol)
	units := reg.PositionUnits(p.Quantity, p.Symbol)
	multiplier := cfg.ContractMultiplier
	if p.ContractMultiplier.Valid && !p.ContractMultiplier.Decimal.Equal(multiplier) {
		log.Printf("[recalc] position %s stores multiplier %s but registry says %s for %s, using registry",
			p.ID, p.ContractMultiplier.Decimal, multiplier, p.Symbol)
	}

	priceChange := exitPrice.Sub(p.OpenPrice)
	if p.Side == types.PositionSideSell {
		priceChange = p.OpenPrice.Sub(exitPrice)
	}
	gross := priceChange.Mul(units).Mul(multiplier)
	// Fees are an absolute cost and reduce P/L regardless of sign.
	return gross.Sub(p.Fees.Abs()).Round(pnlScale)
}

// closedExitPrice resolves the exit price for a closed position: the close
// price, falling back to the last known current price.
func closedExitPrice(p positions.Position) (decimal.Decimal, error) {
	if p.ClosePrice.Valid && p.ClosePrice.Decimal.IsPositive() {
		return p.ClosePrice.Decimal, nil
	}
	if p.CurrentPrice.Valid && p.CurrentPrice.Decimal.IsPositive() {
		return p.CurrentPrice.Decimal, nil
	}
	return decimal.Decimal{}, fmt.Errorf("closed position %s has no close or current price", p.ID)
}
