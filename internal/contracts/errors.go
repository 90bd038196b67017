package contracts

import "errors"

// Failure taxonomy. Failures are contained at the narrowest scope
// (indicator, fact, symbol) and converted to neutral values or exclusion;
// only the run-level and precondition errors below ever surface to callers.
var (
	// ErrInsufficientData marks a symbol whose cleaned series is too short
	// to score. The symbol is excluded, siblings are unaffected.
	ErrInsufficientData = errors.New("insufficient price data")

	// ErrNoValidResults marks a run where every symbol was excluded.
	// Distinct from an empty-but-successful scan of zero-scored symbols.
	ErrNoValidResults = errors.New("no valid results: every symbol was excluded")

	// Precondition failures, reported before any per-symbol work begins.
	ErrEmptySymbolList  = errors.New("symbol list is empty")
	ErrInvalidDateRange = errors.New("invalid date range: start must be before end")
)
