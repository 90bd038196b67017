// Package screener orchestrates a screening run: fetch, sanitize, indicator
// battery, facts, and scoring per symbol, then ranking across symbols.
package screener

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/sehyunkim/tacscreen/internal/contracts"
	"github.com/sehyunkim/tacscreen/internal/facts"
	"github.com/sehyunkim/tacscreen/internal/indicator"
	"github.com/sehyunkim/tacscreen/internal/profile"
	"github.com/sehyunkim/tacscreen/internal/scoring"
	"github.com/sehyunkim/tacscreen/internal/series"
	"github.com/sehyunkim/tacscreen/pkg/logger"
)

// Screener drives the per-symbol pipeline and ranks the outcome
// ⭐ SSOT: 스크리닝 오케스트레이션은 이 패키지에서만
type Screener struct {
	data    contracts.MarketDataProvider
	facts   *facts.Adapter
	battery *indicator.Battery
	logger  *logger.Logger

	workers      int
	fetchTimeout time.Duration
}

// Config holds screener tuning knobs.
type Config struct {
	Workers      int           // concurrent symbol workers, min 1
	FetchTimeout time.Duration // per-symbol market data fetch timeout
}

// Request describes one screening run. A nil Profile means the default
// tactical catalogue.
type Request struct {
	Symbols []string
	Start   time.Time
	End     time.Time
	Profile *profile.Profile
}

// New creates a Screener over the given collaborators.
func New(data contracts.MarketDataProvider, factAdapter *facts.Adapter, battery *indicator.Battery, log *logger.Logger, cfg Config) *Screener {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = 30 * time.Second
	}
	return &Screener{
		data:         data,
		facts:        factAdapter,
		battery:      battery,
		logger:       log.WithField("module", "screener"),
		workers:      cfg.Workers,
		fetchTimeout: cfg.FetchTimeout,
	}
}

// job carries one symbol plus its position in the request, so ties in the
// final ranking can preserve request order.
type job struct {
	idx    int
	symbol string
}

type outcome struct {
	idx    int
	symbol string
	result *contracts.ScoreResult
	skip   contracts.SkipReason
}

// Screen runs the full pipeline for every requested symbol and returns the
// ranked results. Per-symbol failures are recorded as skips, never aborting
// sibling symbols; only precondition violations and an all-skipped run fail.
func (s *Screener) Screen(ctx context.Context, req Request) (*contracts.RankedResults, error) {
	if len(req.Symbols) == 0 {
		return nil, contracts.ErrEmptySymbolList
	}
	if !req.Start.Before(req.End) {
		return nil, fmt.Errorf("start %s is not before end %s: %w",
			req.Start.Format("2006-01-02"), req.End.Format("2006-01-02"), contracts.ErrInvalidDateRange)
	}

	prof := req.Profile
	if prof == nil {
		prof = profile.Default()
	}
	rules, err := scoring.NewCatalogue(prof)
	if err != nil {
		return nil, fmt.Errorf("resolve profile: %w", err)
	}
	engine := scoring.NewEngine(rules)

	started := time.Now()
	s.logger.WithFields(map[string]interface{}{
		"symbols": len(req.Symbols),
		"from":    req.Start.Format("2006-01-02"),
		"to":      req.End.Format("2006-01-02"),
		"profile": prof.Name,
		"workers": s.workers,
	}).Info("Starting screening run")

	jobCh := make(chan job, len(req.Symbols))
	outCh := make(chan outcome, len(req.Symbols))

	var wg sync.WaitGroup
	for i := 0; i < s.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobCh {
				outCh <- s.scoreSymbol(ctx, j, engine, req.Start, req.End)
			}
		}()
	}

	for i, sym := range req.Symbols {
		jobCh <- job{idx: i, symbol: sym}
	}
	close(jobCh)

	go func() {
		wg.Wait()
		close(outCh)
	}()

	// Re-impose request order before ranking so the stable sort's tie order
	// is the caller's order, not worker completion order.
	ordered := make([]outcome, len(req.Symbols))
	for out := range outCh {
		ordered[out.idx] = out
	}

	ranked := &contracts.RankedResults{
		Results: make([]contracts.ScoreResult, 0, len(req.Symbols)),
		Skipped: make(map[string]contracts.SkipReason),
		RunAt:   started,
		Start:   req.Start,
		End:     req.End,
		Profile: prof.Name,
	}
	for _, out := range ordered {
		if out.result != nil {
			ranked.Results = append(ranked.Results, *out.result)
		} else {
			ranked.Skipped[out.symbol] = out.skip
		}
	}

	if len(ranked.Results) == 0 {
		return nil, fmt.Errorf("all %d symbols skipped: %w", len(req.Symbols), contracts.ErrNoValidResults)
	}

	sort.SliceStable(ranked.Results, func(i, j int) bool {
		return ranked.Results[i].Score > ranked.Results[j].Score
	})
	ranked.Duration = time.Since(started).Round(time.Millisecond).String()

	s.logger.WithFields(map[string]interface{}{
		"scored":   len(ranked.Results),
		"skipped":  len(ranked.Skipped),
		"duration": ranked.Duration,
	}).Info("Screening run completed")

	return ranked, nil
}

// scoreSymbol runs fetch → sanitize → battery → facts → score for one symbol.
func (s *Screener) scoreSymbol(ctx context.Context, j job, engine *scoring.Engine, start, end time.Time) outcome {
	out := outcome{idx: j.idx, symbol: j.symbol}

	fetchCtx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	raw, err := s.data.GetSeries(fetchCtx, j.symbol, start, end)
	cancel()
	if err != nil {
		s.logger.WithError(err).WithField("symbol", j.symbol).Warn("Market data fetch failed")
		out.skip = contracts.SkipFetchFailed
		return out
	}
	if raw.Len() == 0 {
		out.skip = contracts.SkipEmptySeries
		return out
	}

	cleaned, err := series.Sanitize(raw)
	if err != nil {
		s.logger.WithFields(map[string]interface{}{
			"symbol": j.symbol,
			"rows":   raw.Len(),
		}).Debug("Series rejected by sanitizer")
		out.skip = contracts.SkipInsufficientData
		return out
	}

	snap := s.battery.Compute(cleaned.Series)
	factSet := s.facts.Facts(ctx, j.symbol)

	result := engine.Evaluate(snap, factSet)
	result.ScoredAt = time.Now()
	out.result = &result
	return out
}
