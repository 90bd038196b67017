// Package facts normalizes heterogeneous provider responses into the fixed
// FactSet consumed by the scoring engine.
package facts

import (
	"context"
	"strconv"
	"strings"

	"github.com/sehyunkim/tacscreen/internal/contracts"
	"github.com/sehyunkim/tacscreen/pkg/logger"
)

// Fixed thresholds. 이 계층에서만 적용 — 룰은 불리언 팩트만 본다.
const (
	instOwnHighPct   = 50.0
	marketCapFloor   = 2e9  // inclusive
	marketCapCeiling = 15e9 // exclusive
)

// Adapter turns raw provider data into a FactSet
// ⭐ SSOT: 팩트 정규화와 임계값 적용은 여기서만
//
// Every lookup is defensive: a missing key, unparsable value, or provider
// error collapses to the fact's conservative default. Facts never raises
// past this boundary.
type Adapter struct {
	facts     contracts.FactProvider
	sentiment contracts.SentimentProvider
	logger    *logger.Logger
}

// NewAdapter creates a new facts adapter. Either provider may be nil, in
// which case its facts stay at defaults.
func NewAdapter(facts contracts.FactProvider, sentiment contracts.SentimentProvider, log *logger.Logger) *Adapter {
	return &Adapter{
		facts:     facts,
		sentiment: sentiment,
		logger:    log,
	}
}

// Facts builds the FactSet for a symbol. Never returns an error.
func (a *Adapter) Facts(ctx context.Context, symbol string) contracts.FactSet {
	out := contracts.DefaultFactSet(symbol)

	if a.facts != nil {
		raw, err := a.facts.GetFacts(ctx, symbol)
		if err != nil {
			a.logger.WithFields(map[string]interface{}{
				"symbol": symbol,
				"error":  err.Error(),
			}).Warn("Fact provider failed, using defaults")
		} else {
			a.applySnapshot(&out, raw)
		}
	}

	if a.sentiment != nil {
		fraction, err := a.sentiment.GetSentiment(ctx, symbol)
		if err != nil {
			a.logger.WithFields(map[string]interface{}{
				"symbol": symbol,
				"error":  err.Error(),
			}).Debug("Sentiment provider failed, defaulting to 0")
		} else {
			out.SentimentBullish = fraction
		}
	}

	return out
}

// applySnapshot maps named snapshot cells onto boolean facts.
func (a *Adapter) applySnapshot(out *contracts.FactSet, raw map[string]string) {
	out.InsiderBuying = strings.Contains(raw["Insider Trans"], "Buy")
	out.ShortInterestDecline = strings.Contains(raw["Short Float"], "-")
	out.EarningsSurprise = strings.Contains(raw["EPS (ttm)"], "+")

	if pct, ok := parsePercent(raw["Inst Own"]); ok {
		out.InstOwnershipHigh = pct > instOwnHighPct
	}
	if pct, ok := parsePercent(raw["Perf YTD"]); ok {
		out.SectorOutperforming = pct > 0
	}
	if mc, ok := parseAbbrevNumber(raw["Market Cap"]); ok {
		out.MarketCapInRange = mc >= marketCapFloor && mc < marketCapCeiling
	}
}

// parsePercent parses strings like "61.2%" or "-3.40%".
func parsePercent(s string) (float64, bool) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	if s == "" || s == "-" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// parseAbbrevNumber parses abbreviated magnitudes like "4.50B" or "850.3M".
func parseAbbrevNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return 0, false
	}

	multiplier := 1.0
	switch s[len(s)-1] {
	case 'T':
		multiplier = 1e12
		s = s[:len(s)-1]
	case 'B':
		multiplier = 1e9
		s = s[:len(s)-1]
	case 'M':
		multiplier = 1e6
		s = s[:len(s)-1]
	case 'K':
		multiplier = 1e3
		s = s[:len(s)-1]
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v * multiplier, true
}
