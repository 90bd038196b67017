package contracts

// FactSet holds the fundamental/sentiment facts for one symbol
// ⭐ SSOT: 팩트 어댑터 → 스코어링 엔진 데이터 전달
//
// Every field defaults to its conservative value (false, 0) when the
// provider is unreachable or a field is absent. A fact provider failure
// never aborts scoring.
type FactSet struct {
	Symbol string `json:"symbol"`

	InsiderBuying        bool    `json:"insider_buying"`
	ShortInterestDecline bool    `json:"short_interest_decline"`
	InstOwnershipHigh    bool    `json:"inst_ownership_high"`    // > 50%
	EarningsSurprise     bool    `json:"earnings_surprise"`
	SectorOutperforming  bool    `json:"sector_outperforming"`
	MarketCapInRange     bool    `json:"market_cap_in_range"`    // 2B ~ 15B (하한 포함)
	SentimentBullish     float64 `json:"sentiment_bullish"`      // bullish fraction [0,1]
}

// DefaultFactSet returns the all-inert fact set used when every provider
// lookup failed.
func DefaultFactSet(symbol string) FactSet {
	return FactSet{Symbol: symbol}
}

// SentimentIsBullish applies the fixed bullish threshold to the sentiment
// fraction.
func (f FactSet) SentimentIsBullish() bool {
	return f.SentimentBullish > 0.5
}
