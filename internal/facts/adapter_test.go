package facts

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sehyunkim/tacscreen/internal/contracts"
	"github.com/sehyunkim/tacscreen/pkg/logger"
)

type stubFacts struct {
	raw map[string]string
	err error
}

func (s stubFacts) GetFacts(_ context.Context, _ string) (map[string]string, error) {
	return s.raw, s.err
}

type stubSentiment struct {
	fraction float64
	err      error
}

func (s stubSentiment) GetSentiment(_ context.Context, _ string) (float64, error) {
	return s.fraction, s.err
}

func TestAdapter_Facts_AllSignals(t *testing.T) {
	a := NewAdapter(stubFacts{raw: map[string]string{
		"Insider Trans": "Buy 2.1%",
		"Short Float":   "-1.4%",
		"Inst Own":      "61.2%",
		"EPS (ttm)":     "+3.52",
		"Perf YTD":      "12.40%",
		"Market Cap":    "4.50B",
	}}, stubSentiment{fraction: 0.7}, logger.NewNop())

	f := a.Facts(context.Background(), "AAPL")

	assert.True(t, f.InsiderBuying)
	assert.True(t, f.ShortInterestDecline)
	assert.True(t, f.InstOwnershipHigh)
	assert.True(t, f.EarningsSurprise)
	assert.True(t, f.SectorOutperforming)
	assert.True(t, f.MarketCapInRange)
	assert.InDelta(t, 0.7, f.SentimentBullish, 1e-9)
	assert.True(t, f.SentimentIsBullish())
}

func TestAdapter_Facts_ProviderFailure(t *testing.T) {
	// Both providers down: every fact collapses to its inert default.
	a := NewAdapter(stubFacts{err: errors.New("blocked")},
		stubSentiment{err: errors.New("timeout")}, logger.NewNop())

	f := a.Facts(context.Background(), "MSFT")

	assert.Equal(t, contracts.DefaultFactSet("MSFT"), f)
	assert.False(t, f.SentimentIsBullish())
}

func TestAdapter_Facts_NilProviders(t *testing.T) {
	a := NewAdapter(nil, nil, logger.NewNop())
	f := a.Facts(context.Background(), "TSLA")
	assert.Equal(t, contracts.DefaultFactSet("TSLA"), f)
}

func TestAdapter_Facts_PartialGarbage(t *testing.T) {
	// Unparsable numerics default to false without touching parsed facts.
	a := NewAdapter(stubFacts{raw: map[string]string{
		"Insider Trans": "Sell 1.0%",
		"Inst Own":      "n/a",
		"Market Cap":    "-",
		"Perf YTD":      "garbage",
		"Short Float":   "-0.2%",
	}}, nil, logger.NewNop())

	f := a.Facts(context.Background(), "AMD")

	assert.False(t, f.InsiderBuying)
	assert.False(t, f.InstOwnershipHigh)
	assert.False(t, f.MarketCapInRange)
	assert.False(t, f.SectorOutperforming)
	assert.True(t, f.ShortInterestDecline)
}

func TestAdapter_Thresholds(t *testing.T) {
	cases := []struct {
		name string
		raw  map[string]string
		want func(contracts.FactSet) bool
		ok   bool
	}{
		{"inst own exactly 50 is not high", map[string]string{"Inst Own": "50.0%"},
			func(f contracts.FactSet) bool { return f.InstOwnershipHigh }, false},
		{"inst own above 50 is high", map[string]string{"Inst Own": "50.1%"},
			func(f contracts.FactSet) bool { return f.InstOwnershipHigh }, true},
		{"market cap floor is inclusive", map[string]string{"Market Cap": "2.00B"},
			func(f contracts.FactSet) bool { return f.MarketCapInRange }, true},
		{"market cap below floor", map[string]string{"Market Cap": "1.99B"},
			func(f contracts.FactSet) bool { return f.MarketCapInRange }, false},
		{"market cap ceiling is exclusive", map[string]string{"Market Cap": "15.00B"},
			func(f contracts.FactSet) bool { return f.MarketCapInRange }, false},
		{"market cap mid range", map[string]string{"Market Cap": "850.3M"},
			func(f contracts.FactSet) bool { return f.MarketCapInRange }, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := NewAdapter(stubFacts{raw: tc.raw}, nil, logger.NewNop())
			f := a.Facts(context.Background(), "X")
			assert.Equal(t, tc.ok, tc.want(f))
		})
	}
}

func TestParseAbbrevNumber(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want float64
		ok   bool
	}{
		{"4.50B", 4.5e9, true},
		{"850.3M", 8.503e8, true},
		{"1.2T", 1.2e12, true},
		{"900K", 9e5, true},
		{"123", 123, true},
		{"-", 0, false},
		{"", 0, false},
		{"abcB", 0, false},
	} {
		got, ok := parseAbbrevNumber(tc.in)
		assert.Equal(t, tc.ok, ok, tc.in)
		if ok {
			assert.InDelta(t, tc.want, got, 1e-6, tc.in)
		}
	}
}
