package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/wonny/vulture/internal/monitor"
	"github.com/wonny/vulture/pkg/logger"
)

// WatchlistHandler handles watchlist API endpoints
type WatchlistHandler struct {
	repo    *monitor.Repository
	service *monitor.Service
	logger  *logger.Logger
}

// NewWatchlistHandler creates a new watchlist handler
func NewWatchlistHandler(repo *monitor.Repository, service *monitor.Service, log *logger.Logger) *WatchlistHandler {
	return &WatchlistHandler{
		repo:    repo,
		service: service,
		logger:  log,
	}
}

// List returns all monitored instruments
// GET /api/watchlist
func (h *WatchlistHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.repo.GetWatchlist(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to load watchlist")
		respondError(w, http.StatusInternalServerError, "Failed to load watchlist")
		return
	}
	if entries == nil {
		entries = []monitor.WatchlistEntry{}
	}
	respondJSON(w, http.StatusOK, entries)
}

// AddRequest represents a watchlist addition
type AddRequest struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Add registers an instrument for monitoring
// POST /api/watchlist
func (h *WatchlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req AddRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Code == "" {
		respondError(w, http.StatusBadRequest, "code is required")
		return
	}

	if err := h.repo.AddToWatchlist(r.Context(), req.Code, req.Name); err != nil {
		h.logger.WithError(err).WithField("code", req.Code).Error("Failed to add watchlist entry")
		respondError(w, http.StatusInternalServerError, "Failed to add watchlist entry")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{"code": req.Code})
}

// Remove disables monitoring for an instrument
// DELETE /api/watchlist/{code}
func (h *WatchlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	if err := h.repo.RemoveFromWatchlist(r.Context(), code); err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"code": code})
}

// History returns recent score observations for an instrument
// GET /api/watchlist/{code}/history?limit=20
func (h *WatchlistHandler) History(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			respondError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = parsed
	}

	records, err := h.repo.ScoreHistory(r.Context(), code, limit)
	if err != nil {
		h.logger.WithError(err).WithField("code", code).Error("Failed to load score history")
		respondError(w, http.StatusInternalServerError, "Failed to load score history")
		return
	}
	if records == nil {
		records = []monitor.ScoreRecord{}
	}
	respondJSON(w, http.StatusOK, records)
}

// RunCycle triggers one monitoring cycle immediately
// POST /api/monitor/run
func (h *WatchlistHandler) RunCycle(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Run(r.Context()); err != nil {
		h.logger.WithError(err).Error("Monitoring cycle failed")
		respondError(w, http.StatusInternalServerError, "Monitoring cycle failed")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "completed"})
}
