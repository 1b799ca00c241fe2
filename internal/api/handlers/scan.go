package handlers

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/wonny/vulture/internal/api/ws"
	"github.com/wonny/vulture/internal/contracts"
	"github.com/wonny/vulture/internal/scan"
	"github.com/wonny/vulture/pkg/logger"
)

// ScanHandler handles accumulation scan API endpoints
// ⭐ SSOT: 스캔 API 핸들러는 이 구조체에서만
type ScanHandler struct {
	scanner *scan.Scanner
	hub     *ws.Hub
	logger  *logger.Logger

	mu          sync.RWMutex
	lastSignals []contracts.Signal
	lastScanAt  time.Time
}

// NewScanHandler creates a new scan handler
func NewScanHandler(scanner *scan.Scanner, hub *ws.Hub, log *logger.Logger) *ScanHandler {
	return &ScanHandler{
		scanner: scanner,
		hub:     hub,
		logger:  log,
	}
}

// ScanRequest represents a scan request
type ScanRequest struct {
	Segment string   `json:"segment"` // "all", "kospi", "kosdaq", "quick", "custom"
	Codes   []string `json:"codes,omitempty"`
}

// ScanResponse wraps the classified signals of one run
type ScanResponse struct {
	Segment   string             `json:"segment"`
	Count     int                `json:"count"`
	Signals   []contracts.Signal `json:"signals"`
	ScannedAt time.Time          `json:"scanned_at"`
}

// Scan runs a scan synchronously, streaming progress over the websocket
// POST /api/scan
func (h *ScanHandler) Scan(w http.ResponseWriter, r *http.Request) {
	var req ScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Segment == "" {
		req.Segment = "all"
	}

	signals, err := h.scanner.Scan(r.Context(), scan.Options{
		Segment: req.Segment,
		Codes:   req.Codes,
		OnProgress: func(completed, total int, label string) {
			h.hub.Broadcast(ws.Event{Type: "scan_progress", Payload: map[string]interface{}{
				"completed": completed,
				"total":     total,
				"label":     label,
			}})
		},
	})
	if err != nil {
		h.logger.WithError(err).Error("Scan failed")
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	now := time.Now()
	h.mu.Lock()
	h.lastSignals = signals
	h.lastScanAt = now
	h.mu.Unlock()

	h.hub.Broadcast(ws.Event{Type: "scan_complete", Payload: map[string]interface{}{
		"segment": req.Segment,
		"count":   len(signals),
	}})

	respondJSON(w, http.StatusOK, ScanResponse{
		Segment:   req.Segment,
		Count:     len(signals),
		Signals:   signals,
		ScannedAt: now,
	})
}

// Signals returns the result of the most recent scan
// GET /api/signals
func (h *ScanHandler) Signals(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	signals := h.lastSignals
	scannedAt := h.lastScanAt
	h.mu.RUnlock()

	if signals == nil {
		respondError(w, http.StatusNotFound, "No scan has been run yet")
		return
	}

	respondJSON(w, http.StatusOK, ScanResponse{
		Count:     len(signals),
		Signals:   signals,
		ScannedAt: scannedAt,
	})
}

// StoreSignals records the result of a scheduled scan so GET /api/signals
// reflects background runs too
func (h *ScanHandler) StoreSignals(signals []contracts.Signal) {
	h.mu.Lock()
	h.lastSignals = signals
	h.lastScanAt = time.Now()
	h.mu.Unlock()
}
