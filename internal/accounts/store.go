package accounts

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("account not found")

// Account owns three independently tracked fund pools. Balance must always
// equal RealBalance + DemoBalance + BonusBalance; the writer recomputes it
// on every update, there is no database constraint.
type Account struct {
	ID           string
	Balance      decimal.Decimal
	RealBalance  decimal.Decimal
	DemoBalance  decimal.Decimal
	BonusBalance decimal.Decimal
}

type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) Get(ctx context.Context, id string) (Account, error) {
	a, err := scanAccount(s.pool.QueryRow(ctx, `select id, balance, real_balance, demo_balance, bonus_balance from accounts where id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Account{}, ErrNotFound
		}
		return Account{}, fmt.Errorf("get account %s: %w", id, err)
	}
	return a, nil
}

// GetForUpdate reads the account row with a row lock inside tx. Used by the
// ledger so the read-modify-write on balances is atomic.
func (s *Store) GetForUpdate(ctx context.Context, tx pgx.Tx, id string) (Account, error) {
	a, err := scanAccount(tx.QueryRow(ctx, `select id, balance, real_balance, demo_balance, bonus_balance from accounts where id = $1 for update`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Account{}, ErrNotFound
		}
		return Account{}, fmt.Errorf("lock account %s: %w", id, err)
	}
	return a, nil
}

// UpdateBalances persists the real-fund pool and the recomputed total in one
// row update inside tx.
func (s *Store) UpdateBalances(ctx context.Context, tx pgx.Tx, id string, realBalance, balance decimal.Decimal) error {
	tag, err := tx.Exec(ctx, `update accounts set real_balance = $2, balance = $3, updated_at = now() where id = $1`, id, realBalance, balance)
	if err != nil {
		return fmt.Errorf("update account %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

type row interface {
	Scan(dest ...any) error
}

func scanAccount(r row) (Account, error) {
	var a Account
	err := r.Scan(&a.ID, &a.Balance, &a.RealBalance, &a.DemoBalance, &a.BonusBalance)
	return a, err
}
