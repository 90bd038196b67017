// Package sentiment wraps the social-sentiment API.
package sentiment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sehyunkim/tacscreen/pkg/config"
	"github.com/sehyunkim/tacscreen/pkg/httputil"
	"github.com/sehyunkim/tacscreen/pkg/logger"
)

// Client calls the sentiment API
// ⭐ SSOT: 센티먼트 API 호출은 이 클라이언트에서만
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
	apiKey     string
}

// NewClient creates a new sentiment client. An empty base URL yields a
// client whose lookups always fail, which the facts adapter absorbs into
// the neutral default.
func NewClient(cfg config.SentimentConfig, httpClient *httputil.Client, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log,
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
	}
}

// response mirrors the API payload: message counts split by stance.
type response struct {
	Symbol   string  `json:"symbol"`
	Bullish  float64 `json:"bullish"`
	Bearish  float64 `json:"bearish"`
	Messages int     `json:"messages"`
}

// GetSentiment returns the bullish fraction in [0,1] for a symbol.
// Implements contracts.SentimentProvider.
func (c *Client) GetSentiment(ctx context.Context, symbol string) (float64, error) {
	if c.baseURL == "" {
		return 0, fmt.Errorf("sentiment API not configured")
	}

	url := fmt.Sprintf("%s/v1/sentiment/%s", c.baseURL, symbol)
	headers := map[string]string{}
	if c.apiKey != "" {
		headers["Authorization"] = "Bearer " + c.apiKey
	}

	resp, err := c.httpClient.GetWithHeaders(ctx, url, headers)
	if err != nil {
		return 0, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var payload response
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, fmt.Errorf("decode response failed: %w", err)
	}

	fraction := payload.Bullish
	total := payload.Bullish + payload.Bearish
	if total > 1 {
		// Raw counts rather than a fraction — normalize.
		fraction = payload.Bullish / total
	}
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}

	c.logger.WithFields(map[string]interface{}{
		"symbol":   symbol,
		"fraction": fraction,
	}).Debug("Fetched sentiment")
	return fraction, nil
}
