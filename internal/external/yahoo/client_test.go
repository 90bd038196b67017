package yahoo

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sehyunkim/tacscreen/pkg/config"
	"github.com/sehyunkim/tacscreen/pkg/httputil"
	"github.com/sehyunkim/tacscreen/pkg/logger"
)

const sampleChart = `{
  "chart": {
    "result": [
      {
        "timestamp": [1704153600, 1704240000, 1704326400],
        "indicators": {
          "quote": [
            {
              "open":   [100.0, 101.5, null],
              "high":   [102.0, 103.0, 104.0],
              "low":    [99.0, 100.5, 101.0],
              "close":  [101.0, 102.5, 103.5],
              "volume": [1000000, 1200000, 900000]
            }
          ]
        }
      }
    ],
    "error": null
  }
}`

const errorChart = `{
  "chart": {
    "result": null,
    "error": {"code": "Not Found", "description": "No data found, symbol may be delisted"}
  }
}`

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	log := logger.NewNop()
	return NewClient(config.YahooConfig{BaseURL: baseURL}, httputil.New(log).DisableRetry(), log)
}

func TestGetSeries(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		assert.Equal(t, "1d", r.URL.Query().Get("interval"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(sampleChart))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)

	series, err := c.GetSeries(context.Background(), "AAPL", start, end)
	require.NoError(t, err)
	assert.Equal(t, "/v8/finance/chart/AAPL", gotPath)
	assert.Equal(t, "AAPL", series.Symbol)
	require.Equal(t, 3, series.Len())

	assert.Equal(t, 101.0, series.Points[0].Close)
	assert.Equal(t, 1_000_000.0, series.Points[0].Volume)
	assert.True(t, series.Points[0].Date.Before(series.Points[1].Date))

	// Null quote slot surfaces as NaN for the sanitizer to drop.
	assert.True(t, math.IsNaN(series.Points[2].Open))
	assert.Equal(t, 103.5, series.Points[2].Close)
}

func TestGetSeries_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(errorChart))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.GetSeries(context.Background(), "GONE", time.Now().AddDate(-1, 0, 0), time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "delisted")
}

func TestGetSeries_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.GetSeries(context.Background(), "AAPL", time.Now().AddDate(-1, 0, 0), time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestParseChart_EmptyResult(t *testing.T) {
	_, err := parseChart("AAPL", []byte(`{"chart":{"result":[],"error":null}}`))
	assert.Error(t, err)
}
