package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sehyunkim/tacscreen/internal/contracts"
	"github.com/sehyunkim/tacscreen/internal/screener"
	"github.com/sehyunkim/tacscreen/pkg/logger"
)

type stubRunner struct {
	gotReq screener.Request
	ranked *contracts.RankedResults
	err    error
}

func (s *stubRunner) Screen(_ context.Context, req screener.Request) (*contracts.RankedResults, error) {
	s.gotReq = req
	return s.ranked, s.err
}

func postScreen(t *testing.T, h *ScreenHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/screen", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Screen(rec, req)
	return rec
}

func TestScreen_OK(t *testing.T) {
	runner := &stubRunner{ranked: &contracts.RankedResults{
		Results: []contracts.ScoreResult{{Symbol: "AAPL", Score: 4}},
		Profile: "tactical-13",
	}}
	h := NewScreenHandler(runner, nil, time.Minute, logger.NewNop())

	rec := postScreen(t, h, `{"symbols":["AAPL","MSFT"],"start":"2024-01-01","end":"2024-06-30"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"AAPL", "MSFT"}, runner.gotReq.Symbols)
	assert.Equal(t, 2024, runner.gotReq.Start.Year())
	assert.Equal(t, "tactical-13", runner.gotReq.Profile.Name)

	var got contracts.RankedResults
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got.Results, 1)
	assert.Equal(t, "AAPL", got.Results[0].Symbol)
}

func TestScreen_BadBody(t *testing.T) {
	h := NewScreenHandler(&stubRunner{}, nil, 0, logger.NewNop())

	assert.Equal(t, http.StatusBadRequest, postScreen(t, h, `{not json`).Code)
	assert.Equal(t, http.StatusBadRequest, postScreen(t, h, `{"symbols":["A"],"start":"01/02/2024","end":"2024-06-30"}`).Code)
	assert.Equal(t, http.StatusBadRequest, postScreen(t, h, `{"symbols":["A"],"start":"2024-01-01","end":"June"}`).Code)
}

func TestScreen_ErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{contracts.ErrEmptySymbolList, http.StatusBadRequest},
		{contracts.ErrInvalidDateRange, http.StatusBadRequest},
		{contracts.ErrNoValidResults, http.StatusUnprocessableEntity},
		{context.DeadlineExceeded, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		h := NewScreenHandler(&stubRunner{err: tc.err}, nil, 0, logger.NewNop())
		rec := postScreen(t, h, `{"symbols":["A"],"start":"2024-01-01","end":"2024-06-30"}`)
		assert.Equal(t, tc.code, rec.Code, tc.err.Error())
	}
}

func TestGetProfile(t *testing.T) {
	h := NewScreenHandler(&stubRunner{}, nil, 0, logger.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	rec := httptest.NewRecorder()
	h.GetProfile(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "tactical-13", got["name"])
}
