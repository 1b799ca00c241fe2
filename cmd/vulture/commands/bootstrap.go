package commands

import (
	"fmt"

	"github.com/wonny/vulture/internal/external/naver"
	"github.com/wonny/vulture/internal/ma"
	"github.com/wonny/vulture/internal/scan"
	"github.com/wonny/vulture/internal/universe"
	"github.com/wonny/vulture/pkg/config"
	"github.com/wonny/vulture/pkg/httputil"
	"github.com/wonny/vulture/pkg/logger"
	"github.com/wonny/vulture/pkg/redis"
)

// app bundles the wiring every command needs. Commands that talk to the
// database or scheduler build those pieces on top.
type app struct {
	cfg     *config.Config
	log     *logger.Logger
	redis   *redis.Client
	naver   *naver.Client
	fetcher *scan.Fetcher
	scanner *scan.Scanner
	scorer  *ma.Scorer
}

// newApp loads config and wires the scan pipeline
// ⭐ SSOT: CLI 공통 조립은 이 함수에서만
func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	log := logger.New(cfg)

	redisClient, err := redis.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	httpClient := httputil.New(cfg, log).
		WithRateLimit(cfg.Naver.RatePerSec, cfg.Naver.Burst)

	naverClient := naver.NewClient(cfg, httpClient, log)

	listingCache := redis.NewCache(redisClient, "vulture")
	universeProvider := universe.NewProvider(naverClient, listingCache, cfg.Scan.ListingTTL, log)

	snapshotCache := scan.NewSnapshotCache(cfg.Scan.SnapshotTTL)
	fetcher := scan.NewFetcher(naverClient, snapshotCache, log)
	orchestrator := scan.NewOrchestrator(fetcher, cfg.Scan.Workers, cfg.Scan.BatchSize, log)
	scanner := scan.NewScanner(universeProvider, orchestrator, log)

	scorer := ma.NewScorer(naverClient, log)

	return &app{
		cfg:     cfg,
		log:     log,
		redis:   redisClient,
		naver:   naverClient,
		fetcher: fetcher,
		scanner: scanner,
		scorer:  scorer,
	}, nil
}

// close releases shared resources
func (a *app) close() {
	if a.redis != nil {
		a.redis.Close()
	}
}
