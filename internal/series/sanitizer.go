// Package series cleans and validates raw OHLCV series before indicator
// computation.
package series

import (
	"fmt"
	"math"
	"sort"

	"github.com/sehyunkim/tacscreen/internal/contracts"
)

const (
	// MinRows is the unconditional floor: below this the symbol is rejected.
	MinRows = 50

	// FullHistoryRows is required for rules built on the 200-day moving
	// average. Shorter series still screen, those rules just see the
	// indicator as unavailable.
	FullHistoryRows = 200
)

// Result is a sanitized series plus validity metadata.
type Result struct {
	Series      contracts.Series
	FullHistory bool // cleaned length >= FullHistoryRows
	Dropped     int  // rows removed during cleaning
}

// Sanitize validates and cleans a raw series
// ⭐ SSOT: 시계열 정제는 여기서만
//
// Pure transformation: the input is never mutated; a new point slice is
// built. Rows with non-finite values in any required field or negative
// volume are dropped. Dates are re-sorted ascending and de-duplicated
// (first occurrence wins). A cleaned length below MinRows yields
// contracts.ErrInsufficientData.
func Sanitize(raw contracts.Series) (Result, error) {
	cleaned := make([]contracts.PricePoint, 0, len(raw.Points))

	dropped := 0
	for _, p := range raw.Points {
		if !rowValid(p) {
			dropped++
			continue
		}
		cleaned = append(cleaned, p)
	}

	// Re-establish the ordering invariant. Providers는 오름차순을 약속하지만
	// 신뢰하지 않는다.
	sort.SliceStable(cleaned, func(i, j int) bool {
		return cleaned[i].Date.Before(cleaned[j].Date)
	})
	cleaned, dups := dedupeDates(cleaned)
	dropped += dups

	out := Result{
		Series:      contracts.Series{Symbol: raw.Symbol, Points: cleaned},
		FullHistory: len(cleaned) >= FullHistoryRows,
		Dropped:     dropped,
	}

	if len(cleaned) < MinRows {
		return out, fmt.Errorf("%w: %s has %d usable rows, need %d",
			contracts.ErrInsufficientData, raw.Symbol, len(cleaned), MinRows)
	}

	return out, nil
}

// rowValid reports whether every required field is finite and volume is
// non-negative.
func rowValid(p contracts.PricePoint) bool {
	if p.Date.IsZero() {
		return false
	}
	for _, v := range [...]float64{p.Open, p.High, p.Low, p.Close, p.Volume} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return p.Volume >= 0
}

// dedupeDates removes points sharing a date, keeping the first occurrence.
// Assumes the input is already sorted ascending.
func dedupeDates(points []contracts.PricePoint) ([]contracts.PricePoint, int) {
	if len(points) < 2 {
		return points, 0
	}

	out := points[:1]
	dropped := 0
	for _, p := range points[1:] {
		if p.Date.Equal(out[len(out)-1].Date) {
			dropped++
			continue
		}
		out = append(out, p)
	}
	return out, dropped
}
