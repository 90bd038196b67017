package contracts

import "time"

// SkipReason explains why a symbol was excluded from the ranked output.
type SkipReason string

const (
	SkipFetchFailed      SkipReason = "fetch_failed"
	SkipEmptySeries      SkipReason = "empty_series"
	SkipInsufficientData SkipReason = "insufficient_data"
)

// ScoreResult holds the scoring outcome for a single symbol
// ⭐ SSOT: 스코어링 엔진 → 랭킹 결과 전달
//
// Signals preserves rule-evaluation order, so len(Signals) == Score always.
type ScoreResult struct {
	Symbol  string   `json:"symbol"`
	Score   int      `json:"score"`
	Signals []string `json:"signals"`

	// Surfaced raw/derived values for display
	Close  float64        `json:"close"`
	RSI    IndicatorValue `json:"rsi"`
	ADX    IndicatorValue `json:"adx"`
	Volume float64        `json:"volume"`

	ScoredAt time.Time `json:"scored_at"`
}

// RankedResults is the outcome of one screening run: results sorted by score
// descending (stable on ties, original scan order preserved) plus the
// symbols that were skipped and why.
type RankedResults struct {
	Results []ScoreResult         `json:"results"`
	Skipped map[string]SkipReason `json:"skipped,omitempty"`

	RunAt    time.Time `json:"run_at"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Profile  string    `json:"profile"`
	Duration string    `json:"duration"`
}

// Top returns up to n leading results.
func (r *RankedResults) Top(n int) []ScoreResult {
	if n > len(r.Results) {
		n = len(r.Results)
	}
	return r.Results[:n]
}
