package contracts

import (
	"sort"
	"time"
)

// PricePoint represents a single trading day of OHLCV data
type PricePoint struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// Series is an ordered OHLCV series for a single symbol
// ⭐ SSOT: 가격 시계열 데이터 전달은 이 타입으로만
//
// Invariant: once sanitized, Points is strictly ascending by date with no
// duplicate dates, and is never mutated in place. Derived indicator values
// live in IndicatorSnapshot, not on the series itself.
type Series struct {
	Symbol string       `json:"symbol"`
	Points []PricePoint `json:"points"`
}

// Len returns the number of points in the series.
func (s Series) Len() int {
	return len(s.Points)
}

// Last returns the most recent point. Callers must check Len() > 0 first.
func (s Series) Last() PricePoint {
	return s.Points[len(s.Points)-1]
}

// Closes returns the close column in date order.
func (s Series) Closes() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Close
	}
	return out
}

// Volumes returns the volume column in date order.
func (s Series) Volumes() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Volume
	}
	return out
}

// IsOrdered reports whether dates are strictly increasing and duplicate-free.
func (s Series) IsOrdered() bool {
	return sort.SliceIsSorted(s.Points, func(i, j int) bool {
		return s.Points[i].Date.Before(s.Points[j].Date)
	}) && !s.hasDuplicateDates()
}

func (s Series) hasDuplicateDates() bool {
	for i := 1; i < len(s.Points); i++ {
		if s.Points[i].Date.Equal(s.Points[i-1].Date) {
			return true
		}
	}
	return false
}
