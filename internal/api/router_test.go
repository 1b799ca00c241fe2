package api

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/vulture/internal/api/handlers"
	"github.com/wonny/vulture/internal/api/ws"
	"github.com/wonny/vulture/internal/contracts"
	"github.com/wonny/vulture/internal/ma"
	"github.com/wonny/vulture/internal/scan"
	"github.com/wonny/vulture/pkg/logger"
)

type stubProvider struct{}

func (stubProvider) FetchHistory(_ context.Context, code string) (*contracts.RawHistory, error) {
	if code == "BAD000" {
		return nil, fmt.Errorf("upstream failure")
	}
	bars := make([]contracts.Bar, 25)
	day := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	for i := range bars {
		bars[i] = contracts.Bar{Date: day.AddDate(0, 0, i), Open: 5000, High: 5000, Low: 5000, Close: 5000, Volume: 500_000}
	}
	bars[24].Volume = 2_000_000
	return &contracts.RawHistory{
		Code:              code,
		Name:              "종목" + code,
		Bars:              bars,
		SharesOutstanding: 50_000_000,
		MarketCap:         2.5e11,
	}, nil
}

type stubUniverse struct{}

func (stubUniverse) BySegment(_ context.Context, segment string) ([]string, error) {
	if segment != "kospi" {
		return nil, fmt.Errorf("unknown market segment: %q", segment)
	}
	return []string{"000100", "000200"}, nil
}

type stubNews struct{}

func (stubNews) Search(context.Context, string) ([]contracts.NewsItem, error) {
	return nil, nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	log := logger.NewNop()
	hub := ws.NewHub(log)
	fetcher := scan.NewFetcher(stubProvider{}, scan.NewSnapshotCache(time.Minute), log)
	orch := scan.NewOrchestrator(fetcher, 2, 10, log)
	scanner := scan.NewScanner(stubUniverse{}, orch, log)

	scanHandler := handlers.NewScanHandler(scanner, hub, log)
	maHandler := handlers.NewMAHandler(fetcher, ma.NewScorer(stubNews{}, log), log)

	return NewRouter(scanHandler, maHandler, nil, hub, log)
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "vulture-api")
}

func TestSignalsBeforeAnyScan(t *testing.T) {
	router := newTestRouter(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/signals", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestScanThenSignals(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("POST", "/api/scan", strings.NewReader(`{"segment":"kospi"}`)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"signals"`)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/signals", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestScanUnknownSegment(t *testing.T) {
	router := newTestRouter(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("POST", "/api/scan", strings.NewReader(`{"segment":"nasdaq"}`)))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestMAAnalyzeValidation(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("POST", "/api/ma/analyze", strings.NewReader(`{}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("POST", "/api/ma/analyze", strings.NewReader(`{"code":"BAD000"}`)))
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestMAAnalyze(t *testing.T) {
	router := newTestRouter(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("POST", "/api/ma/analyze", strings.NewReader(`{"code":"000100"}`)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total_score"`)
}
