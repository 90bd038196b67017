package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	profilePath string
	verbose     bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tacscreen",
	Short: "Tactical equity screener",
	Long: `tacscreen - tactical equity screener

Fetches daily OHLCV history and fundamentals per symbol, computes a battery
of technical indicators, scores each symbol against a rule catalogue, and
ranks the results.

Usage:
  go run ./cmd/tacscreen [command]

Examples:
  go run ./cmd/tacscreen screen --symbols AAPL,MSFT,NVDA --start 2024-01-01 --end 2024-06-30
  go run ./cmd/tacscreen serve
  go run ./cmd/tacscreen watch --symbols AAPL,MSFT --cron "0 17 * * 1-5"`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&profilePath, "profile", "", "rule catalogue YAML (default is the built-in tactical profile)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
