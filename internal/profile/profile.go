// Package profile defines screener profiles: the rule catalogue and its
// thresholds, loaded as data so screener variants are configurations of one
// engine rather than copies of it.
package profile

// Profile은 스크리너 변형 하나의 전체 설정
type Profile struct {
	Name  string     `yaml:"name" json:"name"`
	Rules []RuleSpec `yaml:"rules" json:"rules"`
}

// RuleSpec declares one catalogue entry. Threshold semantics depend on the
// rule ID; nil fields fall back to the rule's built-in default.
type RuleSpec struct {
	ID        string   `yaml:"id" json:"id"`
	Label     string   `yaml:"label,omitempty" json:"label,omitempty"`
	Threshold *float64 `yaml:"threshold,omitempty" json:"threshold,omitempty"`
	Low       *float64 `yaml:"low,omitempty" json:"low,omitempty"`
	High      *float64 `yaml:"high,omitempty" json:"high,omitempty"`
}

// Default returns the 13-metric tactical profile. Evaluation order is
// normative: the triggered-signal list in every ScoreResult follows it.
func Default() *Profile {
	return &Profile{
		Name: "tactical-13",
		Rules: []RuleSpec{
			{ID: "rsi_trigger", Label: "RSI Trigger"},
			{ID: "macd_bullish_crossover", Label: "MACD Bullish Crossover"},
			{ID: "bollinger_breakout", Label: "Bollinger Band Breakout"},
			{ID: "volume_surge", Label: "Volume Surge"},
			{ID: "golden_cross", Label: "Golden Cross"},
			{ID: "adx_strong_trend", Label: "ADX Strong Trend"},
			{ID: "price_breakout", Label: "Price Breakout"},
			{ID: "volume_spike", Label: "Volume Spike"},
			{ID: "insider_buying", Label: "Insider Buying"},
			{ID: "short_interest_decline", Label: "Short Interest Decline"},
			{ID: "high_inst_ownership", Label: "High Institutional Ownership"},
			{ID: "earnings_surprise", Label: "Earnings Surprise"},
			{ID: "sector_outperformance", Label: "Sector Outperformance"},
		},
	}
}
