package positions

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"lv-pnlrecalc/internal/types"
)

// Position is one open or closed trade. The nullable P/L columns stay null
// until a calculation has run; null is "never computed", not zero.
// ContractMultiplier is a denormalized copy of the registry value and may be
// stale — the registry is canonical.
type Position struct {
	ID                 string
	AccountID          string
	Symbol             string
	Side               types.PositionSide
	Quantity           decimal.Decimal
	OpenPrice          decimal.Decimal
	CurrentPrice       decimal.NullDecimal
	ClosePrice         decimal.NullDecimal
	ContractMultiplier decimal.NullDecimal
	Fees               decimal.Decimal
	UnrealizedPnL      decimal.NullDecimal
	RealizedPnL        decimal.NullDecimal
	Status             types.PositionStatus
}

// StoredPnL returns the currently authoritative stored P/L for the position:
// unrealized for open, realized for closed. ok is false when it was never
// computed.
func (p Position) StoredPnL() (decimal.Decimal, bool) {
	switch p.Status {
	case types.PositionStatusClosed:
		return p.RealizedPnL.Decimal, p.RealizedPnL.Valid
	default:
		return p.UnrealizedPnL.Decimal, p.UnrealizedPnL.Valid
	}
}

type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

const selectColumns = `id, account_id, symbol, side, quantity, open_price, current_price, close_price, contract_multiplier, coalesce(fees, 0), unrealized_pnl, realized_pnl, status`

// List returns positions ordered by account then id, optionally filtered by
// status and symbol. Empty filter values match everything.
func (s *Store) List(ctx context.Context, status types.PositionStatus, symbol string) ([]Position, error) {
	query := `select ` + selectColumns + ` from positions where ($1 = '' or status = $1) and ($2 = '' or symbol = $2) order by account_id, id`
	rows, err := s.pool.Query(ctx, query, string(status), symbol)
	if err != nil {
		return nil, fmt.Errorf("list positions: %w", err)
	}
	defer rows.Close()
	var out []Position
	for rows.Next() {
		var p Position
		var side, st string
		if err := rows.Scan(&p.ID, &p.AccountID, &p.Symbol, &side, &p.Quantity, &p.OpenPrice, &p.CurrentPrice, &p.ClosePrice, &p.ContractMultiplier, &p.Fees, &p.UnrealizedPnL, &p.RealizedPnL, &st); err != nil {
			return nil, fmt.Errorf("scan position: %w", err)
		}
		p.Side = types.PositionSide(side)
		p.Status = types.PositionStatus(st)
		out = append(out, p)
	}
	return out, rows.Err()
}

// UpdateUnrealizedPnL overwrites the unrealized P/L of an open position.
func (s *Store) UpdateUnrealizedPnL(ctx context.Context, id string, pnl decimal.Decimal) error {
	_, err := s.pool.Exec(ctx, `update positions set unrealized_pnl = $2, updated_at = now() where id = $1`, id, pnl)
	if err != nil {
		return fmt.Errorf("update unrealized pnl %s: %w", id, err)
	}
	return nil
}

// UpdateRealizedPnL overwrites the realized P/L of a closed position.
func (s *Store) UpdateRealizedPnL(ctx context.Context, id string, pnl decimal.Decimal) error {
	_, err := s.pool.Exec(ctx, `update positions set realized_pnl = $2, updated_at = now() where id = $1`, id, pnl)
	if err != nil {
		return fmt.Errorf("update realized pnl %s: %w", id, err)
	}
	return nil
}
