package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/vulture/internal/api"
	"github.com/wonny/vulture/internal/api/handlers"
	"github.com/wonny/vulture/internal/api/ws"
	"github.com/wonny/vulture/internal/contracts"
	"github.com/wonny/vulture/internal/monitor"
	"github.com/wonny/vulture/internal/notify"
	"github.com/wonny/vulture/internal/scheduler"
	"github.com/wonny/vulture/internal/scheduler/jobs"
	"github.com/wonny/vulture/pkg/database"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "API 서버 시작",
	Long: `REST API 서버와 감시 스케줄러를 시작합니다.

Endpoints:
  GET    /health                        - Health check
  GET    /ws                            - 실시간 이벤트 스트림
  POST   /api/scan                      - 매집 스캔 실행
  GET    /api/signals                   - 최근 스캔 결과 조회
  POST   /api/ma/analyze                - M&A 분석
  GET    /api/watchlist                 - 감시 목록 조회
  POST   /api/watchlist                 - 감시 등록
  DELETE /api/watchlist/{code}          - 감시 해제
  GET    /api/watchlist/{code}/history  - 점수 이력 조회
  POST   /api/monitor/run               - 감시 사이클 즉시 실행

Example:
  go run ./cmd/vulture api
  go run ./cmd/vulture api --port 8090`,
	RunE: runAPIServer,
}

var apiPort string

func init() {
	rootCmd.AddCommand(apiCmd)

	apiCmd.Flags().StringVar(&apiPort, "port", "", "API 서버 포트 (기본: 환경 변수)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Vulture API Server ===")

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	if apiPort != "" {
		a.cfg.Port = apiPort
	}
	log := a.log

	// Database for watchlist and score history
	db, err := database.New(context.Background(), a.cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()
	log.Info("Connected to database")

	// Monitoring service with email alerts
	repo := monitor.NewRepository(db.Pool)
	notifier := notify.New(a.cfg.Notify, log)
	svc := monitor.NewService(repo, a.fetcher, a.scorer, notifier, a.cfg.Monitor, log)

	// Websocket hub and live alert fan-out
	hub := ws.NewHub(log)
	svc.OnAlert(func(alert monitor.Alert) {
		hub.Broadcast(ws.Event{Type: "alert", Payload: alert})
	})

	// Handlers and router
	scanHandler := handlers.NewScanHandler(a.scanner, hub, log)
	maHandler := handlers.NewMAHandler(a.fetcher, a.scorer, log)
	watchlistHandler := handlers.NewWatchlistHandler(repo, svc, log)
	router := api.NewRouter(scanHandler, maHandler, watchlistHandler, hub, log)

	server := api.New(a.cfg, log, router)

	// Scheduler: watchlist monitoring during trading hours, daily full scan
	sched := scheduler.New(log)
	if err := sched.AddJob(jobs.NewMonitorJob(svc, a.cfg.Monitor.Schedule, log)); err != nil {
		return fmt.Errorf("schedule monitor job: %w", err)
	}
	scanSink := func(signals []contracts.Signal) {
		scanHandler.StoreSignals(signals)
		hub.Broadcast(ws.Event{Type: "scan_complete", Payload: map[string]interface{}{
			"segment": "all",
			"count":   len(signals),
		}})
	}
	if err := sched.AddJob(jobs.NewScanJob(a.scanner, "all", "0 10 16 * * 1-5", scanSink, log)); err != nil {
		return fmt.Errorf("schedule scan job: %w", err)
	}
	sched.Start()
	defer sched.Stop()

	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	fmt.Printf("\n✅ Server running on http://localhost:%s\n", a.cfg.Port)
	fmt.Println("Press Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	log.Info("Server stopped")
	return nil
}
