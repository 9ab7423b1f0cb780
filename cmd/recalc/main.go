package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"lv-pnlrecalc/internal/accounts"
	"lv-pnlrecalc/internal/config"
	"lv-pnlrecalc/internal/db"
	"lv-pnlrecalc/internal/instruments"
	"lv-pnlrecalc/internal/ledger"
	"lv-pnlrecalc/internal/marketdata"
	"lv-pnlrecalc/internal/positions"
	"lv-pnlrecalc/internal/recalc"
	"lv-pnlrecalc/internal/types"
)

var (
	flagExecute     bool
	flagScope       string
	flagSymbol      string
	flagConcurrency int
)

var rootCmd = &cobra.Command{
	Use:   "recalc",
	Short: "Recalculate position P/L and correct account balances",
	Long: `Recalc recomputes position P/L with instrument-aware unit conversion and,
for closed positions, posts the realized-P/L difference to the owning
account's real balance as an audited ledger transaction.

Without --execute it is a dry run: every value is computed and printed but
nothing is written.`,
	RunE:          run,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.Flags().BoolVar(&flagExecute, "execute", false, "apply changes; omit for a dry run")
	rootCmd.Flags().StringVar(&flagScope, "scope", "all", "positions to process: open, closed or all")
	rootCmd.Flags().StringVar(&flagSymbol, "symbol", "", "restrict the batch to one symbol")
	rootCmd.Flags().IntVar(&flagConcurrency, "concurrency", 0, "parallel quote fetches (default from QUOTE_CONCURRENCY)")
}

func run(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	status, err := scopeStatus(flagScope)
	if err != nil {
		return err
	}
	materiality, err := decimal.NewFromString(cfg.Materiality)
	if err != nil {
		return fmt.Errorf("invalid PNL_MATERIALITY %q: %w", cfg.Materiality, err)
	}
	concurrency := cfg.Quotes.Concurrency
	if flagConcurrency > 0 {
		concurrency = flagConcurrency
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DBDSN)
	if err != nil {
		return err
	}
	defer pool.Close()

	accountStore := accounts.NewStore(pool)
	runner := recalc.NewRunner(recalc.Params{
		Registry:    instruments.Default(),
		Positions:   positions.NewStore(pool),
		Ledger:      ledger.NewService(pool, accountStore),
		Quotes:      marketdata.NewSource(nil, marketdata.NewClient(cfg.Quotes.HTTPURL, cfg.Quotes.APIToken, cfg.Quotes.Timeout)),
		Execute:     flagExecute,
		Status:      status,
		Symbol:      flagSymbol,
		Materiality: materiality,
		Concurrency: concurrency,
	})
	_, err = runner.Run(ctx)
	return err
}

func scopeStatus(scope string) (types.PositionStatus, error) {
	switch scope {
	case "all":
		return "", nil
	case "open":
		return types.PositionStatusOpen, nil
	case "closed":
		return types.PositionStatusClosed, nil
	default:
		return "", fmt.Errorf("invalid --scope %q: use open, closed or all", scope)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
