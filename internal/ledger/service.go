package ledger

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"lv-pnlrecalc/internal/accounts"
	"lv-pnlrecalc/internal/types"
)

// Service posts balance corrections to accounts and records each one as an
// append-only transaction row. Corrections always target the real fund pool.
type Service struct {
	pool     *pgxpool.Pool
	accounts *accounts.Store
}

func NewService(pool *pgxpool.Pool, accountStore *accounts.Store) *Service {
	return &Service{pool: pool, accounts: accountStore}
}

// Result describes one applied adjustment.
type Result struct {
	AccountID     string
	TransactionID string
	OldBalance    decimal.Decimal
	NewBalance    decimal.Decimal
}

// ApplyAdjustment adds delta to the account's real balance and inserts the
// audit transaction, all inside a single database transaction with the
// account row locked. The caller supplies the delta, never an absolute P/L
// value: applying the new P/L absolutely would double-count what a prior
// correct run already moved into the balance.
func (s *Service) ApplyAdjustment(ctx context.Context, accountID string, delta decimal.Decimal, reference string) (Result, error) {
	if delta.IsZero() {
		return Result{}, fmt.Errorf("zero delta for account %s", accountID)
	}
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	acc, err := s.accounts.GetForUpdate(ctx, tx, accountID)
	if err != nil {
		return Result{}, err
	}
	newReal := acc.RealBalance.Add(delta)
	newBalance := newReal.Add(acc.DemoBalance).Add(acc.BonusBalance)
	if err := s.accounts.UpdateBalances(ctx, tx, accountID, newReal, newBalance); err != nil {
		return Result{}, err
	}

	txType := types.TransactionTypeProfit
	if delta.IsNegative() {
		txType = types.TransactionTypeLoss
	}
	txID := uuid.NewString()
	_, err = tx.Exec(ctx, `insert into transactions (id, account_id, type, amount, fund_type, status, reference, created_at) values ($1, $2, $3, $4, $5, $6, $7, $8)`,
		txID, accountID, string(txType), delta.Abs(), string(types.FundTypeReal), string(types.TransactionStatusCompleted), reference, time.Now().UTC())
	if err != nil {
		return Result{}, fmt.Errorf("insert transaction: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return Result{}, fmt.Errorf("commit: %w", err)
	}
	log.Printf("[ledger] account %s %s %s, balance %s -> %s", accountID, txType, delta.Abs(), acc.Balance, newBalance)
	return Result{AccountID: accountID, TransactionID: txID, OldBalance: acc.Balance, NewBalance: newBalance}, nil
}
