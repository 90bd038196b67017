package sentiment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sehyunkim/tacscreen/pkg/config"
	"github.com/sehyunkim/tacscreen/pkg/httputil"
	"github.com/sehyunkim/tacscreen/pkg/logger"
)

func newTestClient(baseURL string) *Client {
	return NewClient(config.SentimentConfig{BaseURL: baseURL, APIKey: "k"},
		httputil.New(logger.NewNop()), logger.NewNop())
}

func TestGetSentiment_Fraction(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/sentiment/NVDA", r.URL.Path)
		assert.Equal(t, "Bearer k", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"symbol":"NVDA","bullish":0.62,"bearish":0.38,"messages":150}`))
	}))
	defer srv.Close()

	got, err := newTestClient(srv.URL).GetSentiment(context.Background(), "NVDA")
	require.NoError(t, err)
	assert.InDelta(t, 0.62, got, 1e-9)
}

func TestGetSentiment_RawCounts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"symbol":"AMD","bullish":90,"bearish":30,"messages":120}`))
	}))
	defer srv.Close()

	got, err := newTestClient(srv.URL).GetSentiment(context.Background(), "AMD")
	require.NoError(t, err)
	assert.InDelta(t, 0.75, got, 1e-9)
}

func TestGetSentiment_Unconfigured(t *testing.T) {
	_, err := newTestClient("").GetSentiment(context.Background(), "AAPL")
	assert.Error(t, err)
}

func TestGetSentiment_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	c.httpClient.DisableRetry()
	_, err := c.GetSentiment(context.Background(), "AAPL")
	assert.Error(t, err)
}
