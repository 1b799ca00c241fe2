package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/wonny/vulture/internal/ma"
	"github.com/wonny/vulture/internal/scan"
	"github.com/wonny/vulture/pkg/logger"
)

// MAHandler handles M&A analysis API endpoints
type MAHandler struct {
	fetcher *scan.Fetcher
	scorer  *ma.Scorer
	logger  *logger.Logger
}

// NewMAHandler creates a new M&A handler
func NewMAHandler(fetcher *scan.Fetcher, scorer *ma.Scorer, log *logger.Logger) *MAHandler {
	return &MAHandler{
		fetcher: fetcher,
		scorer:  scorer,
		logger:  log,
	}
}

// AnalyzeRequest represents an M&A analysis request
type AnalyzeRequest struct {
	Code string `json:"code"`
}

// Analyze scores one instrument for M&A likelihood
// POST /api/ma/analyze
func (h *MAHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Code == "" {
		respondError(w, http.StatusBadRequest, "code is required")
		return
	}

	ctx := r.Context()
	snapshot, err := h.fetcher.Fetch(ctx, req.Code)
	if err != nil {
		h.logger.WithError(err).WithField("code", req.Code).Error("Snapshot fetch failed")
		respondError(w, http.StatusBadGateway, "Failed to fetch market data")
		return
	}

	score, err := h.scorer.Analyze(ctx, snapshot)
	if err != nil {
		h.logger.WithError(err).WithField("code", req.Code).Error("M&A analysis failed")
		respondError(w, http.StatusInternalServerError, "Analysis failed")
		return
	}

	respondJSON(w, http.StatusOK, score)
}
