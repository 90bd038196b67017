// Package yahoo fetches daily OHLCV history from the Yahoo Finance v8 chart
// API and maps it to the internal price series contract.
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/sehyunkim/tacscreen/internal/contracts"
	"github.com/sehyunkim/tacscreen/pkg/config"
	"github.com/sehyunkim/tacscreen/pkg/httputil"
	"github.com/sehyunkim/tacscreen/pkg/logger"
)

// Client handles communication with the Yahoo chart API
// ⭐ SSOT: Yahoo 가격 API 호출은 이 클라이언트에서만
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
}

// NewClient creates a new Yahoo Finance client.
func NewClient(cfg config.YahooConfig, httpClient *httputil.Client, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log,
		baseURL:    cfg.BaseURL,
	}
}

// chartResponse mirrors the v8 chart payload shape. Null slots in the quote
// arrays (halted days, missing prints) decode to nil pointers.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// GetSeries fetches daily bars for [start, end]. Implements
// contracts.MarketDataProvider. The returned series is raw: unsorted rows,
// null prints and other garbage are the sanitizer's problem, not ours.
func (c *Client) GetSeries(ctx context.Context, symbol string, start, end time.Time) (contracts.Series, error) {
	fullURL := fmt.Sprintf(
		"%s/v8/finance/chart/%s?period1=%d&period2=%d&interval=1d&events=history",
		c.baseURL, symbol, start.Unix(), end.Unix(),
	)

	resp, err := c.httpClient.GetWithHeaders(ctx, fullURL, map[string]string{
		"Accept": "application/json",
	})
	if err != nil {
		return contracts.Series{}, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return contracts.Series{}, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return contracts.Series{}, fmt.Errorf("read response body failed: %w", err)
	}

	series, err := parseChart(symbol, body)
	if err != nil {
		return contracts.Series{}, fmt.Errorf("parse chart failed: %w", err)
	}

	c.logger.WithFields(map[string]interface{}{
		"symbol": symbol,
		"count":  series.Len(),
	}).Debug("Fetched price series")
	return series, nil
}

// parseChart maps the chart payload to a Series. Null quote slots become NaN
// so the sanitizer drops those rows downstream.
func parseChart(symbol string, body []byte) (contracts.Series, error) {
	var cr chartResponse
	if err := json.Unmarshal(body, &cr); err != nil {
		return contracts.Series{}, err
	}

	if cr.Chart.Error != nil {
		return contracts.Series{}, fmt.Errorf("chart API error: %s (%s)",
			cr.Chart.Error.Code, cr.Chart.Error.Description)
	}
	if len(cr.Chart.Result) == 0 || len(cr.Chart.Result[0].Indicators.Quote) == 0 {
		return contracts.Series{}, fmt.Errorf("empty chart result")
	}

	result := cr.Chart.Result[0]
	quote := result.Indicators.Quote[0]

	points := make([]contracts.PricePoint, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		points = append(points, contracts.PricePoint{
			Date:   time.Unix(ts, 0).UTC().Truncate(24 * time.Hour),
			Open:   deref(quote.Open, i),
			High:   deref(quote.High, i),
			Low:    deref(quote.Low, i),
			Close:  deref(quote.Close, i),
			Volume: deref(quote.Volume, i),
		})
	}

	return contracts.Series{Symbol: symbol, Points: points}, nil
}

func deref(col []*float64, i int) float64 {
	if i >= len(col) || col[i] == nil {
		return math.NaN()
	}
	return *col[i]
}
