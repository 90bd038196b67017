// Package scoring evaluates a data-driven rule catalogue against the latest
// indicator values and facts for one symbol.
package scoring

import (
	"fmt"

	"github.com/sehyunkim/tacscreen/internal/contracts"
	"github.com/sehyunkim/tacscreen/internal/profile"
)

// Inputs bundles everything a rule may inspect.
type Inputs struct {
	Snap  contracts.IndicatorSnapshot
	Facts contracts.FactSet
}

// Rule is one catalogue entry: a label and a predicate over Inputs.
// Predicates must treat unavailable indicators as "no signal" — an
// unavailable input can never make a rule fire.
type Rule struct {
	Name      string
	Predicate func(Inputs) bool
}

// Built-in rule defaults. 원본 스크리너의 고정 임계값.
const (
	defaultRSILow        = 30.0
	defaultRSIHigh       = 70.0
	defaultVolumeSurge   = 0.5
	defaultVolumeSpike   = 0.3
	defaultADXStrong     = 25.0
	defaultATRCompressed = 0.02
)

// builder constructs a rule from its spec.
type builder func(spec profile.RuleSpec) Rule

// registry maps rule IDs to builders
// ⭐ SSOT: 룰 카탈로그 등록은 여기서만
var registry = map[string]builder{
	"rsi_trigger": func(spec profile.RuleSpec) Rule {
		low := threshold(spec.Low, defaultRSILow)
		high := threshold(spec.High, defaultRSIHigh)
		return rule(spec, "RSI Trigger", func(in Inputs) bool {
			return in.Snap.RSI.Avail && (in.Snap.RSI.Value < low || in.Snap.RSI.Value > high)
		})
	},
	"macd_bullish_crossover": func(spec profile.RuleSpec) Rule {
		// Strict two-point sign change: flat-then-positive must not fire.
		return rule(spec, "MACD Bullish Crossover", func(in Inputs) bool {
			return in.Snap.MACDHist.Avail && in.Snap.MACDHistPrev.Avail &&
				in.Snap.MACDHist.Value > 0 && in.Snap.MACDHistPrev.Value < 0
		})
	},
	"bollinger_breakout": func(spec profile.RuleSpec) Rule {
		return rule(spec, "Bollinger Band Breakout", func(in Inputs) bool {
			return in.Snap.BollingerUp.Avail && in.Snap.LastClose > in.Snap.BollingerUp.Value
		})
	},
	"volume_surge": func(spec profile.RuleSpec) Rule {
		th := threshold(spec.Threshold, defaultVolumeSurge)
		return rule(spec, "Volume Surge", func(in Inputs) bool {
			return in.Snap.VolumeChange.Avail && in.Snap.VolumeChange.Value > th
		})
	},
	"golden_cross": func(spec profile.RuleSpec) Rule {
		return rule(spec, "Golden Cross", func(in Inputs) bool {
			return in.Snap.SMA50.Avail && in.Snap.SMA200.Avail &&
				in.Snap.SMA50.Value > in.Snap.SMA200.Value
		})
	},
	"adx_strong_trend": func(spec profile.RuleSpec) Rule {
		th := threshold(spec.Threshold, defaultADXStrong)
		return rule(spec, "ADX Strong Trend", func(in Inputs) bool {
			return in.Snap.ADX.Avail && in.Snap.ADX.Value > th
		})
	},
	"price_breakout": func(spec profile.RuleSpec) Rule {
		// Today's close against the prior 20-day high, today excluded.
		return rule(spec, "Price Breakout", func(in Inputs) bool {
			return in.Snap.High20.Avail && in.Snap.LastClose > in.Snap.High20.Value
		})
	},
	"volume_spike": func(spec profile.RuleSpec) Rule {
		th := threshold(spec.Threshold, defaultVolumeSpike)
		return rule(spec, "Volume Spike", func(in Inputs) bool {
			return in.Snap.VolumeChange.Avail && in.Snap.VolumeChange.Value > th
		})
	},
	"ma_alignment": func(spec profile.RuleSpec) Rule {
		return rule(spec, "Moving Average Alignment", func(in Inputs) bool {
			return in.Snap.SMA50.Avail && in.Snap.SMA200.Avail &&
				in.Snap.LastClose > in.Snap.SMA50.Value &&
				in.Snap.SMA50.Value > in.Snap.SMA200.Value
		})
	},
	"atr_compression": func(spec profile.RuleSpec) Rule {
		// Stealth setup: volatility compression as a pre-breakout proxy.
		th := threshold(spec.Threshold, defaultATRCompressed)
		return rule(spec, "ATR Compression", func(in Inputs) bool {
			return in.Snap.ATRPercent.Avail && in.Snap.ATRPercent.Value < th
		})
	},
	"insider_buying": func(spec profile.RuleSpec) Rule {
		return rule(spec, "Insider Buying", func(in Inputs) bool {
			return in.Facts.InsiderBuying
		})
	},
	"short_interest_decline": func(spec profile.RuleSpec) Rule {
		return rule(spec, "Short Interest Decline", func(in Inputs) bool {
			return in.Facts.ShortInterestDecline
		})
	},
	"high_inst_ownership": func(spec profile.RuleSpec) Rule {
		return rule(spec, "High Institutional Ownership", func(in Inputs) bool {
			return in.Facts.InstOwnershipHigh
		})
	},
	"earnings_surprise": func(spec profile.RuleSpec) Rule {
		return rule(spec, "Earnings Surprise", func(in Inputs) bool {
			return in.Facts.EarningsSurprise
		})
	},
	"sector_outperformance": func(spec profile.RuleSpec) Rule {
		return rule(spec, "Sector Outperformance", func(in Inputs) bool {
			return in.Facts.SectorOutperforming
		})
	},
	"market_cap_range": func(spec profile.RuleSpec) Rule {
		return rule(spec, "Market Cap In Range", func(in Inputs) bool {
			return in.Facts.MarketCapInRange
		})
	},
	"sentiment_bullish": func(spec profile.RuleSpec) Rule {
		return rule(spec, "Bullish Sentiment", func(in Inputs) bool {
			return in.Facts.SentimentIsBullish()
		})
	},
}

// NewCatalogue resolves a profile into an ordered rule list. Rule order in
// the profile is evaluation order and therefore output order.
func NewCatalogue(p *profile.Profile) ([]Rule, error) {
	if err := profile.Validate(p); err != nil {
		return nil, err
	}

	rules := make([]Rule, 0, len(p.Rules))
	for _, spec := range p.Rules {
		build, ok := registry[spec.ID]
		if !ok {
			return nil, fmt.Errorf("unknown rule id %q in profile %q", spec.ID, p.Name)
		}
		rules = append(rules, build(spec))
	}
	return rules, nil
}

func rule(spec profile.RuleSpec, defaultLabel string, pred func(Inputs) bool) Rule {
	name := spec.Label
	if name == "" {
		name = defaultLabel
	}
	return Rule{Name: name, Predicate: pred}
}

func threshold(v *float64, def float64) float64 {
	if v != nil {
		return *v
	}
	return def
}
