package scoring

import (
	"github.com/sehyunkim/tacscreen/internal/contracts"
)

// Engine scores one symbol against a fixed, ordered rule catalogue
// ⭐ SSOT: 스코어링 평가 프로토콜은 여기서만
//
// Pure function of its inputs: no state persists across symbols or runs.
// Each satisfied rule contributes exactly +1 and appends its label, so
// len(Signals) == Score and Signals follows catalogue order.
type Engine struct {
	rules []Rule
}

// NewEngine creates a scoring engine over an ordered catalogue.
func NewEngine(rules []Rule) *Engine {
	return &Engine{rules: rules}
}

// RuleCount returns the number of active rules (the maximum score).
func (e *Engine) RuleCount() int {
	return len(e.rules)
}

// Evaluate applies every rule in order and assembles the per-symbol result.
func (e *Engine) Evaluate(snap contracts.IndicatorSnapshot, facts contracts.FactSet) contracts.ScoreResult {
	in := Inputs{Snap: snap, Facts: facts}

	result := contracts.ScoreResult{
		Symbol:  snap.Symbol,
		Signals: []string{},
		Close:   snap.LastClose,
		RSI:     snap.RSI,
		ADX:     snap.ADX,
		Volume:  snap.LastVolume,
	}

	for _, r := range e.rules {
		if r.Predicate(in) {
			result.Score++
			result.Signals = append(result.Signals, r.Name)
		}
	}

	return result
}
