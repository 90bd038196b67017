// Package jobs holds the scheduled job implementations.
package jobs

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sehyunkim/tacscreen/internal/contracts"
	"github.com/sehyunkim/tacscreen/internal/profile"
	"github.com/sehyunkim/tacscreen/internal/screener"
	"github.com/sehyunkim/tacscreen/pkg/logger"
)

// Runner is the screening operation the job drives.
type Runner interface {
	Screen(ctx context.Context, req screener.Request) (*contracts.RankedResults, error)
}

// ScreenJob re-runs a screening pass on a cron schedule and logs the leaders.
type ScreenJob struct {
	runner   Runner
	profile  *profile.Profile
	symbols  []string
	lookback time.Duration
	schedule string
	deadline time.Duration
	logger   *logger.Logger
}

// NewScreenJob creates a scheduled screening job. The lookback window ends at
// run time, so each run sees the latest bars.
func NewScreenJob(runner Runner, prof *profile.Profile, symbols []string, lookback time.Duration, schedule string, deadline time.Duration, log *logger.Logger) *ScreenJob {
	return &ScreenJob{
		runner:   runner,
		profile:  prof,
		symbols:  symbols,
		lookback: lookback,
		schedule: schedule,
		deadline: deadline,
		logger:   log.WithField("job", "screen"),
	}
}

// Name implements scheduler.Job.
func (j *ScreenJob) Name() string {
	return "screen"
}

// Schedule implements scheduler.Job.
func (j *ScreenJob) Schedule() string {
	return j.schedule
}

// Run implements scheduler.Job.
func (j *ScreenJob) Run(ctx context.Context) error {
	if j.deadline > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.deadline)
		defer cancel()
	}

	end := time.Now()
	ranked, err := j.runner.Screen(ctx, screener.Request{
		Symbols: j.symbols,
		Start:   end.Add(-j.lookback),
		End:     end,
		Profile: j.profile,
	})
	if err != nil {
		return fmt.Errorf("scheduled screen failed: %w", err)
	}

	for _, r := range ranked.Top(10) {
		j.logger.WithFields(map[string]interface{}{
			"symbol":  r.Symbol,
			"score":   r.Score,
			"signals": strings.Join(r.Signals, ", "),
		}).Info("Screen leader")
	}
	j.logger.WithFields(map[string]interface{}{
		"scored":  len(ranked.Results),
		"skipped": len(ranked.Skipped),
	}).Info("Scheduled screen completed")

	return nil
}
