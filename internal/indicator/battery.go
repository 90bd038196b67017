package indicator

import (
	"github.com/sehyunkim/tacscreen/internal/contracts"
	"github.com/sehyunkim/tacscreen/pkg/logger"
)

// Battery period constants. 원본 스크리너와 동일한 파라미터.
const (
	RSIPeriod        = 14
	MACDFast         = 12
	MACDSlow         = 26
	MACDSignal       = 9
	BollingerPeriod  = 20
	BollingerK       = 2.0
	ADXPeriod        = 14
	BreakoutWindow   = 20
	VolumeAvgWindow  = 20
	SMAShortPeriod   = 50
	SMALongPeriod    = 200
	ATRPeriod        = 14
)

// Battery computes the full indicator set for one symbol
// ⭐ SSOT: 지표 배터리 계산은 여기서만
type Battery struct {
	logger *logger.Logger
}

// NewBattery creates a new indicator battery
func NewBattery(log *logger.Logger) *Battery {
	return &Battery{logger: log}
}

// Compute derives every indicator from a sanitized series. Each indicator is
// computed in isolation: a failure in one sets only that indicator to
// unavailable and never aborts the others.
func (b *Battery) Compute(s contracts.Series) contracts.IndicatorSnapshot {
	snap := contracts.IndicatorSnapshot{
		Symbol:       s.Symbol,
		SeriesLength: s.Len(),
	}
	if s.Len() == 0 {
		return snap
	}

	closes := s.Closes()
	volumes := s.Volumes()
	last := s.Last()
	snap.LastClose = last.Close
	snap.LastVolume = last.Volume

	b.isolate("rsi", func() {
		snap.RSI = RSI(closes, RSIPeriod)
	})
	b.isolate("macd_hist", func() {
		snap.MACDHist, snap.MACDHistPrev = MACDHistogram(closes, MACDFast, MACDSlow, MACDSignal)
	})
	b.isolate("bollinger_up", func() {
		snap.BollingerUp = BollingerUpper(closes, BollingerPeriod, BollingerK)
	})
	b.isolate("adx", func() {
		snap.ADX = ADX(s.Points, ADXPeriod)
	})
	b.isolate("high_20", func() {
		snap.High20 = RollingMaxPrior(closes, BreakoutWindow)
	})
	b.isolate("volume_avg_20", func() {
		snap.VolumeAvg20 = SMA(volumes, VolumeAvgWindow)
	})
	b.isolate("sma_50", func() {
		snap.SMA50 = SMA(closes, SMAShortPeriod)
	})
	b.isolate("sma_200", func() {
		snap.SMA200 = SMA(closes, SMALongPeriod)
	})
	b.isolate("volume_change", func() {
		snap.VolumeChange = VolumeChange(volumes)
	})
	b.isolate("atr_percent", func() {
		atr := ATR(s.Points, ATRPeriod)
		if atr.Avail && last.Close > 0 {
			snap.ATRPercent = contracts.Available(atr.Value / last.Close)
		}
	})

	return snap
}

// isolate runs one indicator computation, containing any panic so a numeric
// edge in one indicator cannot take down the battery. The failed indicator
// simply stays unavailable.
func (b *Battery) isolate(name string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.WithFields(map[string]interface{}{
				"indicator": name,
				"panic":     r,
			}).Warn("Indicator computation failed")
		}
	}()
	fn()
}
