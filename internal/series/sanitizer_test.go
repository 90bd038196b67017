package series

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sehyunkim/tacscreen/internal/contracts"
)

func makeSeries(symbol string, n int) contracts.Series {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	points := make([]contracts.PricePoint, n)
	for i := range points {
		points[i] = contracts.PricePoint{
			Date:   base.AddDate(0, 0, i),
			Open:   100,
			High:   101,
			Low:    99,
			Close:  100,
			Volume: 1000,
		}
	}
	return contracts.Series{Symbol: symbol, Points: points}
}

func TestSanitize_RejectsShortSeries(t *testing.T) {
	// Anything under 50 cleaned rows is rejected regardless of content.
	for _, n := range []int{0, 1, 10, 49} {
		_, err := Sanitize(makeSeries("AAPL", n))
		assert.ErrorIs(t, err, contracts.ErrInsufficientData, "n=%d", n)
	}

	res, err := Sanitize(makeSeries("AAPL", 50))
	require.NoError(t, err)
	assert.Equal(t, 50, res.Series.Len())
	assert.False(t, res.FullHistory)
}

func TestSanitize_FullHistoryFlag(t *testing.T) {
	res, err := Sanitize(makeSeries("MSFT", 200))
	require.NoError(t, err)
	assert.True(t, res.FullHistory)

	res, err = Sanitize(makeSeries("MSFT", 199))
	require.NoError(t, err)
	assert.False(t, res.FullHistory)
}

func TestSanitize_DropsBadRows(t *testing.T) {
	s := makeSeries("NVDA", 60)
	s.Points[3].Close = math.NaN()
	s.Points[7].High = math.Inf(1)
	s.Points[12].Volume = -5

	res, err := Sanitize(s)
	require.NoError(t, err)
	assert.Equal(t, 57, res.Series.Len())
	assert.Equal(t, 3, res.Dropped)
	assert.True(t, res.Series.IsOrdered())
}

func TestSanitize_DropsBelowThreshold(t *testing.T) {
	// 52 rows with 3 corrupt ones sinks below the 50-row floor.
	s := makeSeries("TSLA", 52)
	for _, i := range []int{5, 10, 15} {
		s.Points[i].Close = math.NaN()
	}

	_, err := Sanitize(s)
	assert.ErrorIs(t, err, contracts.ErrInsufficientData)
}

func TestSanitize_ReordersAndDedupes(t *testing.T) {
	s := makeSeries("AMD", 60)
	// Swap two points out of order and duplicate a date.
	s.Points[10], s.Points[11] = s.Points[11], s.Points[10]
	s.Points[20].Date = s.Points[19].Date

	res, err := Sanitize(s)
	require.NoError(t, err)
	assert.True(t, res.Series.IsOrdered())
	assert.Equal(t, 59, res.Series.Len())
}

func TestSanitize_PureTransformation(t *testing.T) {
	s := makeSeries("INTC", 60)
	s.Points[3].Close = math.NaN()
	before := s.Len()

	_, err := Sanitize(s)
	require.NoError(t, err)
	assert.Equal(t, before, s.Len(), "input must not be mutated")
	assert.True(t, math.IsNaN(s.Points[3].Close))
}
