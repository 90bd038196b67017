package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/sehyunkim/tacscreen/internal/contracts"
	"github.com/sehyunkim/tacscreen/internal/profile"
	"github.com/sehyunkim/tacscreen/internal/screener"
	"github.com/sehyunkim/tacscreen/pkg/logger"
)

// Runner is the screening operation the handler drives.
type Runner interface {
	Screen(ctx context.Context, req screener.Request) (*contracts.RankedResults, error)
}

// ScreenHandler handles screening API endpoints
// ⭐ SSOT: 스크리닝 API 핸들러는 이 구조체에서만
type ScreenHandler struct {
	runner      Runner
	profile     *profile.Profile
	runDeadline time.Duration
	logger      *logger.Logger
}

// NewScreenHandler creates a new screen handler. The profile is the catalogue
// every request runs against; per-request profile overrides are not exposed.
func NewScreenHandler(runner Runner, prof *profile.Profile, runDeadline time.Duration, log *logger.Logger) *ScreenHandler {
	if prof == nil {
		prof = profile.Default()
	}
	return &ScreenHandler{
		runner:      runner,
		profile:     prof,
		runDeadline: runDeadline,
		logger:      log,
	}
}

// ScreenRequest is the JSON request body for POST /api/screen.
type ScreenRequest struct {
	Symbols []string `json:"symbols"`
	Start   string   `json:"start"` // YYYY-MM-DD
	End     string   `json:"end"`   // YYYY-MM-DD
}

// Screen runs a screening pass over the requested symbols.
// POST /api/screen
func (h *ScreenHandler) Screen(w http.ResponseWriter, r *http.Request) {
	var body ScreenRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	start, err := time.Parse("2006-01-02", body.Start)
	if err != nil {
		writeError(w, http.StatusBadRequest, "start must be YYYY-MM-DD")
		return
	}
	end, err := time.Parse("2006-01-02", body.End)
	if err != nil {
		writeError(w, http.StatusBadRequest, "end must be YYYY-MM-DD")
		return
	}

	ctx := r.Context()
	if h.runDeadline > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.runDeadline)
		defer cancel()
	}

	ranked, err := h.runner.Screen(ctx, screener.Request{
		Symbols: body.Symbols,
		Start:   start,
		End:     end,
		Profile: h.profile,
	})
	if err != nil {
		switch {
		case errors.Is(err, contracts.ErrEmptySymbolList),
			errors.Is(err, contracts.ErrInvalidDateRange):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, contracts.ErrNoValidResults):
			writeError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			h.logger.WithError(err).Error("Screening run failed")
			writeError(w, http.StatusInternalServerError, "screening run failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, ranked)
}

// GetProfile returns the active rule catalogue.
// GET /api/profile
func (h *ScreenHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.profile)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
