// Package indicator computes the technical indicator battery over a
// sanitized price series.
//
// Every function takes the series oldest-first and returns a tagged
// contracts.IndicatorValue: insufficient window or a numeric singularity
// yields Unavailable, never a fabricated number.
package indicator

import (
	"math"

	"github.com/sehyunkim/tacscreen/internal/contracts"
)

// SMA returns the simple moving average of the last period values.
func SMA(values []float64, period int) contracts.IndicatorValue {
	if period <= 0 || len(values) < period {
		return contracts.Unavailable()
	}

	sum := 0.0
	for _, v := range values[len(values)-period:] {
		sum += v
	}
	return contracts.Available(sum / float64(period))
}

// RSI returns the Relative Strength Index over the last period day-over-day
// changes. Requires period+1 values. Zero average loss clamps to 100.
func RSI(closes []float64, period int) contracts.IndicatorValue {
	if period <= 0 || len(closes) < period+1 {
		return contracts.Unavailable()
	}

	var gains, losses float64
	start := len(closes) - period
	for i := start; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			gains += change
		} else {
			losses += -change
		}
	}

	if losses == 0 {
		// RS 정의 불가 — 경계값으로 클램프
		return contracts.Available(100)
	}

	avgGain := gains / float64(period)
	avgLoss := losses / float64(period)

	rs := avgGain / avgLoss
	return contracts.Available(100 - 100/(1+rs))
}

// BollingerUpper returns the 20-period upper band: SMA + k population
// standard deviations over the same window.
func BollingerUpper(closes []float64, period int, k float64) contracts.IndicatorValue {
	ma := SMA(closes, period)
	if !ma.Avail {
		return contracts.Unavailable()
	}

	window := closes[len(closes)-period:]
	var sumSq float64
	for _, v := range window {
		d := v - ma.Value
		sumSq += d * d
	}
	std := math.Sqrt(sumSq / float64(period)) // population stddev

	return contracts.Available(ma.Value + k*std)
}

// RollingMaxPrior returns the maximum of the window values immediately
// preceding the latest one (today excluded). Requires window+1 values.
func RollingMaxPrior(values []float64, window int) contracts.IndicatorValue {
	if window <= 0 || len(values) < window+1 {
		return contracts.Unavailable()
	}

	prior := values[len(values)-window-1 : len(values)-1]
	max := prior[0]
	for _, v := range prior[1:] {
		if v > max {
			max = v
		}
	}
	return contracts.Available(max)
}

// VolumeChange returns (vol(t) - vol(t-1)) / vol(t-1).
func VolumeChange(volumes []float64) contracts.IndicatorValue {
	if len(volumes) < 2 {
		return contracts.Unavailable()
	}

	prev := volumes[len(volumes)-2]
	if prev == 0 {
		return contracts.Unavailable()
	}
	return contracts.Available((volumes[len(volumes)-1] - prev) / prev)
}

// emaSeries computes the full EMA series seeded with the SMA of the first
// period values. Indices below period-1 hold NaN.
func emaSeries(values []float64, period int) []float64 {
	out := make([]float64, len(values))
	for i := range out {
		out[i] = math.NaN()
	}
	if len(values) < period {
		return out
	}

	var sum float64
	for _, v := range values[:period] {
		sum += v
	}
	ema := sum / float64(period)
	out[period-1] = ema

	multiplier := 2.0 / float64(period+1)
	for i := period; i < len(values); i++ {
		ema = (values[i]-ema)*multiplier + ema
		out[i] = ema
	}
	return out
}

// MACDHistogram returns the histogram (MACD line minus its signal line) at
// the latest point and the immediately preceding one. The two-point pair is
// what crossover rules need. Requires slow+signal values.
func MACDHistogram(closes []float64, fast, slow, signal int) (latest, prev contracts.IndicatorValue) {
	if len(closes) < slow+signal {
		return contracts.Unavailable(), contracts.Unavailable()
	}

	fastEMA := emaSeries(closes, fast)
	slowEMA := emaSeries(closes, slow)

	// MACD line is defined once the slow EMA exists.
	macd := make([]float64, 0, len(closes)-slow+1)
	for i := slow - 1; i < len(closes); i++ {
		macd = append(macd, fastEMA[i]-slowEMA[i])
	}

	signalLine := emaSeries(macd, signal)

	n := len(macd)
	latestHist := macd[n-1] - signalLine[n-1]
	prevHist := macd[n-2] - signalLine[n-2]

	if math.IsNaN(latestHist) {
		return contracts.Unavailable(), contracts.Unavailable()
	}
	if math.IsNaN(prevHist) {
		return contracts.Available(latestHist), contracts.Unavailable()
	}
	return contracts.Available(latestHist), contracts.Available(prevHist)
}

// ATR returns the Wilder Average True Range over the last period bars.
// Requires period+1 points for the previous-close component.
func ATR(points []contracts.PricePoint, period int) contracts.IndicatorValue {
	if period <= 0 || len(points) < period+1 {
		return contracts.Unavailable()
	}

	var sum float64
	start := len(points) - period
	for i := start; i < len(points); i++ {
		sum += trueRange(points[i], points[i-1].Close)
	}
	return contracts.Available(sum / float64(period))
}

func trueRange(p contracts.PricePoint, prevClose float64) float64 {
	tr := p.High - p.Low
	if hc := math.Abs(p.High - prevClose); hc > tr {
		tr = hc
	}
	if lc := math.Abs(p.Low - prevClose); lc > tr {
		tr = lc
	}
	return tr
}
