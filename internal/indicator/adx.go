package indicator

import (
	"github.com/sehyunkim/tacscreen/internal/contracts"
)

// ADX returns the Average Directional Index over the given period using
// standard Wilder smoothing. Requires 2*period+1 points (one smoothing pass
// for DI, one for the DX average). Zero smoothed true range or zero
// directional movement leaves the ratio undefined — unavailable, not zero.
func ADX(points []contracts.PricePoint, period int) contracts.IndicatorValue {
	if period <= 0 || len(points) < 2*period+1 {
		return contracts.Unavailable()
	}

	n := len(points)

	tr := make([]float64, n)
	plusDM := make([]float64, n)
	minusDM := make([]float64, n)
	for i := 1; i < n; i++ {
		tr[i] = trueRange(points[i], points[i-1].Close)

		upMove := points[i].High - points[i-1].High
		downMove := points[i-1].Low - points[i].Low
		if upMove > downMove && upMove > 0 {
			plusDM[i] = upMove
		}
		if downMove > upMove && downMove > 0 {
			minusDM[i] = downMove
		}
	}

	// Seed the Wilder sums with the first period bars.
	var smTR, smPlus, smMinus float64
	for i := 1; i <= period; i++ {
		smTR += tr[i]
		smPlus += plusDM[i]
		smMinus += minusDM[i]
	}

	dx := make([]float64, 0, n-period)
	appendDX := func() bool {
		if smTR == 0 {
			return false
		}
		plusDI := 100 * smPlus / smTR
		minusDI := 100 * smMinus / smTR
		diSum := plusDI + minusDI
		if diSum == 0 {
			return false
		}
		d := plusDI - minusDI
		if d < 0 {
			d = -d
		}
		dx = append(dx, 100*d/diSum)
		return true
	}

	if !appendDX() {
		return contracts.Unavailable()
	}
	for i := period + 1; i < n; i++ {
		smTR = smTR - smTR/float64(period) + tr[i]
		smPlus = smPlus - smPlus/float64(period) + plusDM[i]
		smMinus = smMinus - smMinus/float64(period) + minusDM[i]
		if !appendDX() {
			return contracts.Unavailable()
		}
	}

	// First ADX = mean of the first period DX values, then Wilder.
	if len(dx) < period {
		return contracts.Unavailable()
	}
	var adx float64
	for _, d := range dx[:period] {
		adx += d
	}
	adx /= float64(period)
	for _, d := range dx[period:] {
		adx = (adx*float64(period-1) + d) / float64(period)
	}

	return contracts.Available(adx)
}
