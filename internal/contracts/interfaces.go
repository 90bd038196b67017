package contracts

import (
	"context"
	"time"
)

// MarketDataProvider supplies historical OHLCV data for a symbol
// ⭐ SSOT: 시세 데이터 조회 인터페이스
//
// The returned series covers [start, end] inclusive, ascending. An unknown
// symbol or a range with no trading activity yields an empty series, not an
// error.
type MarketDataProvider interface {
	GetSeries(ctx context.Context, symbol string, start, end time.Time) (Series, error)
}

// FactProvider supplies the raw fundamental facts behind a FactSet.
// Implementations may fail; the facts adapter absorbs every failure into
// defaults, so consumers above the adapter never see an error.
type FactProvider interface {
	GetFacts(ctx context.Context, symbol string) (map[string]string, error)
}

// SentimentProvider supplies the bullish-sentiment fraction for a symbol,
// in [0,1].
type SentimentProvider interface {
	GetSentiment(ctx context.Context, symbol string) (float64, error)
}
