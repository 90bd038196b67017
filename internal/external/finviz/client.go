// Package finviz scrapes the Finviz quote snapshot page for per-symbol
// fundamental facts.
package finviz

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/sehyunkim/tacscreen/pkg/config"
	"github.com/sehyunkim/tacscreen/pkg/httputil"
	"github.com/sehyunkim/tacscreen/pkg/logger"
)

// Client handles communication with the Finviz quote page
// ⭐ SSOT: Finviz 스냅샷 호출은 이 클라이언트에서만
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
	userAgent  string
}

// NewClient creates a new Finviz client
func NewClient(cfg config.FinvizConfig, httpClient *httputil.Client, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log,
		baseURL:    cfg.BaseURL,
		userAgent:  cfg.UserAgent,
	}
}

// GetFacts fetches the snapshot table for a symbol as a label → value map.
// Implements contracts.FactProvider.
func (c *Client) GetFacts(ctx context.Context, symbol string) (map[string]string, error) {
	url := fmt.Sprintf("%s/quote.ashx?t=%s", c.baseURL, symbol)

	resp, err := c.httpClient.GetWithHeaders(ctx, url, map[string]string{
		"User-Agent": c.userAgent,
	})
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body failed: %w", err)
	}

	facts, err := parseSnapshot(string(body))
	if err != nil {
		return nil, fmt.Errorf("parse snapshot failed: %w", err)
	}

	c.logger.WithFields(map[string]interface{}{
		"symbol": symbol,
		"fields": len(facts),
	}).Debug("Fetched fundamental snapshot")
	return facts, nil
}

// parseSnapshot extracts the snapshot table: each labelled cell is paired
// with its immediately following value cell.
func parseSnapshot(html string) (map[string]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	facts := make(map[string]string)
	doc.Find("td.snapshot-td2-cp").Each(func(_ int, s *goquery.Selection) {
		label := strings.TrimSpace(s.Text())
		if label == "" {
			return
		}
		value := strings.TrimSpace(s.NextFiltered("td").Text())
		if value == "" {
			return
		}
		facts[label] = value
	})

	if len(facts) == 0 {
		return nil, fmt.Errorf("snapshot table not found")
	}
	return facts, nil
}
