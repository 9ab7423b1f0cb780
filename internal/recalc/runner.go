package recalc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"lv-pnlrecalc/internal/accounts"
	"lv-pnlrecalc/internal/instruments"
	"lv-pnlrecalc/internal/ledger"
	"lv-pnlrecalc/internal/marketdata"
	"lv-pnlrecalc/internal/positions"
	"lv-pnlrecalc/internal/types"
)

// PositionStore is the slice of the positions store the runner needs.
type PositionStore interface {
	List(ctx context.Context, status types.PositionStatus, symbol string) ([]positions.Position, error)
	UpdateUnrealizedPnL(ctx context.Context, id string, pnl decimal.Decimal) error
	UpdateRealizedPnL(ctx context.Context, id string, pnl decimal.Decimal) error
}

// BalanceAdjuster posts one accumulated real-balance correction per account.
type BalanceAdjuster interface {
	ApplyAdjustment(ctx context.Context, accountID string, delta decimal.Decimal, reference string) (ledger.Result, error)
}

// QuoteSource provides live quotes for open-position revaluation.
type QuoteSource interface {
	GetQuote(ctx context.Context, symbol string) (marketdata.Quote, error)
}

// Params wires a Runner. Materiality defaults to $0.01 and Concurrency to 4
// when left zero. Out defaults to stdout.
type Params struct {
	Registry    *instruments.Registry
	Positions   PositionStore
	Ledger      BalanceAdjuster
	Quotes      QuoteSource
	Execute     bool
	Status      types.PositionStatus // "" = both open and closed
	Symbol      string               // "" = all symbols
	Materiality decimal.Decimal
	Concurrency int
	Out         io.Writer
}

// Runner performs one batch pass: recompute P/L for every matching position,
// persist material changes, and post per-account realized-P/L corrections.
// Without Execute it is a pure dry run: identical reads and computation, no
// writes.
type Runner struct {
	registry    *instruments.Registry
	positions   PositionStore
	ledger      BalanceAdjuster
	quotes      QuoteSource
	execute     bool
	status      types.PositionStatus
	symbol      string
	materiality decimal.Decimal
	concurrency int
	out         io.Writer
}

func NewRunner(p Params) *Runner {
	if !p.Materiality.IsPositive() {
		p.Materiality = decimal.NewFromFloat(0.01)
	}
	if p.Concurrency < 1 {
		p.Concurrency = 4
	}
	if p.Out == nil {
		p.Out = os.Stdout
	}
	return &Runner{
		registry:    p.Registry,
		positions:   p.Positions,
		ledger:      p.Ledger,
		quotes:      p.Quotes,
		execute:     p.Execute,
		status:      p.Status,
		symbol:      p.Symbol,
		materiality: p.Materiality,
		concurrency: p.Concurrency,
		out:         p.Out,
	}
}

// Report summarizes one batch pass.
type Report struct {
	DryRun           bool
	Scanned          int
	Updated          int
	Skipped          int
	Failed           int
	AccountsAdjusted int
	TotalDelta       decimal.Decimal
}

// accountDelta accumulates realized-P/L corrections for one account across
// all of its closed positions in the batch.
type accountDelta struct {
	delta decimal.Decimal
	notes []string
}

// Run executes one batch pass. Per-position and per-account failures are
// logged and skipped; only infrastructural failures (listing positions)
// abort the run.
func (r *Runner) Run(ctx context.Context) (Report, error) {
	report := Report{DryRun: !r.execute}
	if report.DryRun {
		fmt.Fprintln(r.out, "dry run: computing without writing, pass --execute to apply")
	}

	list, err := r.positions.List(ctx, r.status, r.symbol)
	if err != nil {
		return report, err
	}
	quotes := r.fetchQuotes(ctx, openSymbols(list))

	adjustments := map[string]*accountDelta{}
	for _, p := range list {
		report.Scanned++
		if err := r.recalcPosition(ctx, p, quotes, adjustments, &report); err != nil {
			log.Printf("[recalc] skipping position %s: %v", p.ID, err)
			report.Failed++
		}
	}

	r.applyAdjustments(ctx, adjustments, &report)

	mode := "executed"
	if report.DryRun {
		mode = "dry run"
	}
	fmt.Fprintf(r.out, "%s: scanned=%d updated=%d skipped=%d failed=%d accounts_adjusted=%d total_delta=%s\n",
		mode, report.Scanned, report.Updated, report.Skipped, report.Failed, report.AccountsAdjusted, report.TotalDelta)
	return report, nil
}

func (r *Runner) recalcPosition(ctx context.Context, p positions.Position, quotes map[string]marketdata.Quote, adjustments map[string]*accountDelta, report *Report) error {
	exit, err := r.exitPrice(p, quotes)
	if err != nil {
		return err
	}
	pnl := ComputePnL(r.registry, p, exit)

	old, computed := p.StoredPnL()
	// A never-computed P/L is always material: null means missing data, not
	// a zero result.
	if computed && pnl.Sub(old).Abs().LessThan(r.materiality) {
		report.Skipped++
		return nil
	}

	fmt.Fprintf(r.out, "position %s %s %s %s: pnl %s -> %s\n", p.ID, p.Symbol, p.Side, p.Status, storedString(p), pnl)

	if p.Status == types.PositionStatusClosed {
		if r.execute {
			if err := r.positions.UpdateRealizedPnL(ctx, p.ID, pnl); err != nil {
				return err
			}
		}
		// Only the difference moves the balance; the old value was already
		// reflected by whichever run computed it.
		delta := pnl
		if computed {
			delta = pnl.Sub(old)
		}
		acc := adjustments[p.AccountID]
		if acc == nil {
			acc = &accountDelta{}
			adjustments[p.AccountID] = acc
		}
		acc.delta = acc.delta.Add(delta)
		acc.notes = append(acc.notes, fmt.Sprintf("%s %s %s->%s (mult %s)", p.ID, p.Symbol, storedString(p), pnl, r.registry.Get(p.Symbol).ContractMultiplier))
	} else {
		if r.execute {
			if err := r.positions.UpdateUnrealizedPnL(ctx, p.ID, pnl); err != nil {
				return err
			}
		}
	}
	report.Updated++
	return nil
}

func (r *Runner) exitPrice(p positions.Position, quotes map[string]marketdata.Quote) (decimal.Decimal, error) {
	if p.Status == types.PositionStatusClosed {
		return closedExitPrice(p)
	}
	q, ok := quotes[p.Symbol]
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("no live quote for %s", p.Symbol)
	}
	exit := q.ExitPrice(p.Side)
	if !exit.IsPositive() {
		return decimal.Decimal{}, fmt.Errorf("unusable quote for %s", p.Symbol)
	}
	return exit, nil
}

func (r *Runner) applyAdjustments(ctx context.Context, adjustments map[string]*accountDelta, report *Report) {
	ids := make([]string, 0, len(adjustments))
	for id := range adjustments {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		adj := adjustments[id]
		if adj.delta.Abs().LessThan(r.materiality) {
			continue
		}
		reference := "P/L recalculation correction: " + summarizeNotes(adj.notes)
		fmt.Fprintf(r.out, "account %s: real balance delta %s\n", id, adj.delta)
		if !r.execute {
			report.AccountsAdjusted++
			report.TotalDelta = report.TotalDelta.Add(adj.delta)
			continue
		}
		if _, err := r.ledger.ApplyAdjustment(ctx, id, adj.delta, reference); err != nil {
			if errors.Is(err, accounts.ErrNotFound) {
				log.Printf("[recalc] account %s not found, skipping adjustment", id)
				continue
			}
			log.Printf("[recalc] adjustment failed for account %s: %v", id, err)
			continue
		}
		report.AccountsAdjusted++
		report.TotalDelta = report.TotalDelta.Add(adj.delta)
	}
}

// fetchQuotes pulls live quotes for the given symbols with bounded
// concurrency. A failed fetch logs and drops the symbol; positions on it are
// skipped later, the batch never aborts.
func (r *Runner) fetchQuotes(ctx context.Context, symbols []string) map[string]marketdata.Quote {
	out := make(map[string]marketdata.Quote, len(symbols))
	if len(symbols) == 0 || r.quotes == nil {
		return out
	}
	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for _, symbol := range symbols {
		symbol := symbol
		g.Go(func() error {
			q, err := r.quotes.GetQuote(gctx, symbol)
			if err != nil {
				log.Printf("[recalc] quote fetch failed for %s: %v", symbol, err)
				return nil
			}
			mu.Lock()
			out[symbol] = q
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return out
}

func openSymbols(list []positions.Position) []string {
	seen := map[string]bool{}
	var out []string
	for _, p := range list {
		if p.Status != types.PositionStatusOpen || seen[p.Symbol] {
			continue
		}
		seen[p.Symbol] = true
		out = append(out, p.Symbol)
	}
	sort.Strings(out)
	return out
}

func storedString(p positions.Position) string {
	if v, ok := p.StoredPnL(); ok {
		return v.String()
	}
	return "uncomputed"
}

func summarizeNotes(notes []string) string {
	const maxNotes = 5
	if len(notes) > maxNotes {
		extra := len(notes) - maxNotes
		notes = append(notes[:maxNotes:maxNotes], fmt.Sprintf("+%d more", extra))
	}
	return strings.Join(notes, "; ")
}
