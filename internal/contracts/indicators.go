package contracts

// IndicatorValue is a tagged numeric indicator result.
// Avail=false means the indicator could not be computed (insufficient window
// or numeric singularity) and must be treated as "no signal" by consumers,
// never as zero.
type IndicatorValue struct {
	Value float64 `json:"value"`
	Avail bool    `json:"avail"`
}

// Unavailable is the marker for an indicator that could not be computed.
func Unavailable() IndicatorValue {
	return IndicatorValue{}
}

// Available wraps a computed indicator value.
func Available(v float64) IndicatorValue {
	return IndicatorValue{Value: v, Avail: true}
}

// IndicatorSnapshot holds the latest (and where needed, the immediately
// preceding) value of every indicator in the battery for one symbol
// ⭐ SSOT: 지표 배터리 → 스코어링 엔진 데이터 전달
type IndicatorSnapshot struct {
	Symbol string `json:"symbol"`

	RSI           IndicatorValue `json:"rsi"`            // RSI(14)
	MACDHist      IndicatorValue `json:"macd_hist"`      // MACD(12,26,9) histogram, latest
	MACDHistPrev  IndicatorValue `json:"macd_hist_prev"` // histogram at t-1 (크로스오버 판정용)
	BollingerUp   IndicatorValue `json:"bollinger_up"`   // 20-period upper band, 2σ
	ADX           IndicatorValue `json:"adx"`            // ADX(14)
	High20        IndicatorValue `json:"high_20"`        // max close of the prior 20 days (excludes today)
	VolumeAvg20   IndicatorValue `json:"volume_avg_20"`  // 20-day mean volume
	SMA50         IndicatorValue `json:"sma_50"`
	SMA200        IndicatorValue `json:"sma_200"`
	VolumeChange  IndicatorValue `json:"volume_change"` // (vol(t)-vol(t-1))/vol(t-1)
	ATRPercent    IndicatorValue `json:"atr_percent"`   // ATR(14)/close, 변동성 프로파일용
	LastClose     float64        `json:"last_close"`
	LastVolume    float64        `json:"last_volume"`
	SeriesLength  int            `json:"series_length"`
}
