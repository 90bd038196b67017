package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/sehyunkim/tacscreen/internal/scheduler"
	"github.com/sehyunkim/tacscreen/internal/scheduler/jobs"
	"github.com/sehyunkim/tacscreen/pkg/config"
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-run a screening pass on a cron schedule",
	Long: `Runs the screener periodically and logs the leaders of each pass.

Example:
  go run ./cmd/tacscreen watch --symbols AAPL,MSFT,NVDA --cron "0 17 * * 1-5"
  go run ./cmd/tacscreen watch --symbols AAPL,MSFT --cron "@daily" --lookback 2160h`,
	RunE: runWatch,
}

var (
	watchSymbols  string
	watchCron     string
	watchLookback time.Duration
)

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVar(&watchSymbols, "symbols", "", "comma-separated ticker symbols (required)")
	watchCmd.Flags().StringVar(&watchCron, "cron", "0 17 * * 1-5", "cron schedule expression")
	watchCmd.Flags().DurationVar(&watchLookback, "lookback", 365*24*time.Hour, "history window ending at each run")
	watchCmd.MarkFlagRequired("symbols")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := newLogger(cfg)

	prof, err := loadProfile(cfg)
	if err != nil {
		return err
	}

	scr, cleanup, err := buildScreener(cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	job := jobs.NewScreenJob(scr, prof, splitSymbols(watchSymbols), watchLookback, watchCron, cfg.Screener.RunDeadline, log)

	sched := scheduler.New(log)
	if err := sched.AddJob(job); err != nil {
		return err
	}
	sched.Start()

	// First pass immediately, then on schedule.
	if err := sched.RunJob(job.Name()); err != nil {
		return err
	}

	fmt.Printf("\n✅ Watching %s on schedule %q\n", watchSymbols, watchCron)
	fmt.Println("Press Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	sched.Stop()
	return nil
}
