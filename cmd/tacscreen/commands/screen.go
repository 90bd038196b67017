package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sehyunkim/tacscreen/internal/contracts"
	"github.com/sehyunkim/tacscreen/internal/screener"
	"github.com/sehyunkim/tacscreen/pkg/config"
)

// screenCmd represents the screen command
var screenCmd = &cobra.Command{
	Use:   "screen",
	Short: "Run one screening pass and print the ranked table",
	Long: `Runs the full pipeline once for the given symbols and date range.

Example:
  go run ./cmd/tacscreen screen --symbols AAPL,MSFT,NVDA --start 2024-01-01 --end 2024-06-30
  go run ./cmd/tacscreen screen --symbols AAPL,MSFT --start 2024-01-01 --end 2024-06-30 --top 10`,
	RunE: runScreen,
}

var (
	screenSymbols string
	screenStart   string
	screenEnd     string
	screenTop     int
)

func init() {
	rootCmd.AddCommand(screenCmd)

	screenCmd.Flags().StringVar(&screenSymbols, "symbols", "", "comma-separated ticker symbols (required)")
	screenCmd.Flags().StringVar(&screenStart, "start", "", "range start, YYYY-MM-DD (required)")
	screenCmd.Flags().StringVar(&screenEnd, "end", "", "range end, YYYY-MM-DD (required)")
	screenCmd.Flags().IntVar(&screenTop, "top", 0, "print only the top N results (0 = all)")
	screenCmd.MarkFlagRequired("symbols")
	screenCmd.MarkFlagRequired("start")
	screenCmd.MarkFlagRequired("end")
}

func runScreen(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := newLogger(cfg)

	start, err := time.Parse("2006-01-02", screenStart)
	if err != nil {
		return fmt.Errorf("--start must be YYYY-MM-DD: %w", err)
	}
	end, err := time.Parse("2006-01-02", screenEnd)
	if err != nil {
		return fmt.Errorf("--end must be YYYY-MM-DD: %w", err)
	}

	prof, err := loadProfile(cfg)
	if err != nil {
		return err
	}

	scr, cleanup, err := buildScreener(cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Screener.RunDeadline)
	defer cancel()

	ranked, err := scr.Screen(ctx, screener.Request{
		Symbols: splitSymbols(screenSymbols),
		Start:   start,
		End:     end,
		Profile: prof,
	})
	if err != nil {
		return err
	}

	printRanked(ranked, screenTop)
	return nil
}

func splitSymbols(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if sym := strings.ToUpper(strings.TrimSpace(p)); sym != "" {
			out = append(out, sym)
		}
	}
	return out
}

// printRanked prints the result table plus the skip summary.
func printRanked(ranked *contracts.RankedResults, top int) {
	results := ranked.Results
	if top > 0 {
		results = ranked.Top(top)
	}

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════")
	fmt.Printf("  Screening results — profile %s\n", ranked.Profile)
	fmt.Printf("  Period    : %s ~ %s\n", ranked.Start.Format("2006-01-02"), ranked.End.Format("2006-01-02"))
	fmt.Printf("  Duration  : %s\n", ranked.Duration)
	fmt.Println("───────────────────────────────────────────────────────────")
	fmt.Printf("  %-8s %5s %10s %7s %7s %12s  %s\n", "SYMBOL", "SCORE", "CLOSE", "RSI", "ADX", "VOLUME", "SIGNALS")

	for _, r := range results {
		fmt.Printf("  %-8s %5d %10.2f %7s %7s %12.0f  %s\n",
			r.Symbol, r.Score, r.Close,
			formatIndicator(r.RSI), formatIndicator(r.ADX),
			r.Volume, strings.Join(r.Signals, ", "))
	}

	if len(ranked.Skipped) > 0 {
		fmt.Println("───────────────────────────────────────────────────────────")
		for sym, reason := range ranked.Skipped {
			fmt.Printf("  skipped %-8s %s\n", sym, reason)
		}
	}
	fmt.Println("═══════════════════════════════════════════════════════════")
	fmt.Printf("✅ %d scored, %d skipped\n", len(ranked.Results), len(ranked.Skipped))
}

func formatIndicator(v contracts.IndicatorValue) string {
	if !v.Avail {
		return "n/a"
	}
	return fmt.Sprintf("%.1f", v.Value)
}
