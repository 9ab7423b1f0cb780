package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"lv-pnlrecalc/internal/config"
	"lv-pnlrecalc/internal/marketdata"
)

var flagInterval time.Duration

var rootCmd = &cobra.Command{
	Use:   "quotewatch SYMBOL...",
	Short: "Stream live quotes for the given symbols to stdout",
	Long: `Quotewatch subscribes to the quote provider's WebSocket feed and prints a
snapshot of the latest prices at a fixed interval. Symbols without a stream
update yet are fetched over HTTP. Useful for verifying provider connectivity
before running a recalculation on open positions.`,
	Args:         cobra.MinimumNArgs(1),
	RunE:         run,
	SilenceUsage: true,
}

func init() {
	rootCmd.Flags().DurationVar(&flagInterval, "interval", 2*time.Second, "snapshot print interval")
}

func run(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()
	cfg, err := config.LoadQuotes()
	if err != nil {
		return err
	}
	if cfg.HTTPURL == "" && cfg.WSURL == "" {
		return fmt.Errorf("set QUOTE_HTTP_URL or QUOTE_WS_URL")
	}
	symbols := append([]string(nil), args...)
	sort.Strings(symbols)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cache := marketdata.NewCache()
	source := marketdata.NewSource(cache, marketdata.NewClient(cfg.HTTPURL, cfg.APIToken, cfg.Timeout))
	if cfg.WSURL != "" {
		stream := marketdata.NewStream(cfg.WSURL, cfg.APIToken, symbols, cache)
		go func() { _ = stream.Run(ctx) }()
	}

	ticker := time.NewTicker(flagInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			printSnapshot(ctx, source, symbols)
		}
	}
}

func printSnapshot(ctx context.Context, source *marketdata.Source, symbols []string) {
	for _, symbol := range symbols {
		q, err := source.GetQuote(ctx, symbol)
		if err != nil {
			fmt.Printf("%-10s  unavailable: %v\n", symbol, err)
			continue
		}
		fmt.Printf("%-10s  bid=%s ask=%s last=%s\n", symbol, q.Bid, q.Ask, q.Price)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
