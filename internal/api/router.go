package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/wonny/vulture/internal/api/handlers"
	"github.com/wonny/vulture/internal/api/ws"
	"github.com/wonny/vulture/pkg/logger"
)

// NewRouter creates and configures the HTTP router
// ⭐ SSOT: 라우팅 설정은 이 함수에서만
func NewRouter(
	scanHandler *handlers.ScanHandler,
	maHandler *handlers.MAHandler,
	watchlistHandler *handlers.WatchlistHandler,
	hub *ws.Hub,
	log *logger.Logger,
) http.Handler {
	r := mux.NewRouter()

	// Health check
	r.HandleFunc("/health", healthCheckHandler).Methods("GET")

	// Live event stream
	r.HandleFunc("/ws", hub.HandleConnection)

	api := r.PathPrefix("/api").Subrouter()

	// Scan endpoints
	api.HandleFunc("/scan", scanHandler.Scan).Methods("POST")
	api.HandleFunc("/signals", scanHandler.Signals).Methods("GET")

	// M&A analysis
	api.HandleFunc("/ma/analyze", maHandler.Analyze).Methods("POST")

	// Watchlist and monitoring
	if watchlistHandler != nil {
		api.HandleFunc("/watchlist", watchlistHandler.List).Methods("GET")
		api.HandleFunc("/watchlist", watchlistHandler.Add).Methods("POST")
		api.HandleFunc("/watchlist/{code}", watchlistHandler.Remove).Methods("DELETE")
		api.HandleFunc("/watchlist/{code}/history", watchlistHandler.History).Methods("GET")
		api.HandleFunc("/monitor/run", watchlistHandler.RunCycle).Methods("POST")
	}

	r.Use(loggingMiddleware(log))
	r.Use(recoveryMiddleware(log))

	return r
}

// healthCheckHandler returns server health status
func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "ok",
		"service": "vulture-api",
	})
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			next.ServeHTTP(w, r)

			log.WithFields(map[string]interface{}{
				"method":   r.Method,
				"path":     r.URL.Path,
				"duration": time.Since(start),
			}).Debug("HTTP request")
		})
	}
}

// recoveryMiddleware recovers from panics
func recoveryMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.WithFields(map[string]interface{}{
						"error": err,
						"path":  r.URL.Path,
					}).Error("Panic recovered")

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(w).Encode(map[string]string{
						"error": "Internal server error",
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
