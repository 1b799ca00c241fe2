package monitor

import (
	"context"
	"fmt"

	"github.com/wonny/vulture/internal/contracts"
	"github.com/wonny/vulture/pkg/config"
	"github.com/wonny/vulture/pkg/logger"
)

// Store is the persistence surface the monitor needs
type Store interface {
	GetWatchlist(ctx context.Context) ([]WatchlistEntry, error)
	SaveScore(ctx context.Context, score *contracts.MAScore) error
	LatestScore(ctx context.Context, code string) (*ScoreRecord, error)
}

// SnapshotSource supplies current market snapshots
type SnapshotSource interface {
	Fetch(ctx context.Context, code string) (*contracts.Snapshot, error)
}

// Analyzer scores one instrument for M&A likelihood
type Analyzer interface {
	Analyze(ctx context.Context, snapshot *contracts.Snapshot) (*contracts.MAScore, error)
}

// EmailSender delivers alert digests
type EmailSender interface {
	Enabled() bool
	SendEmail(subject, body string) error
}

// Service re-scores the watchlist and raises alerts on meaningful changes.
// ⭐ SSOT: 감시 사이클 실행은 이 구조체에서만
type Service struct {
	store    Store
	source   SnapshotSource
	analyzer Analyzer
	email    EmailSender
	cfg      config.MonitorConfig
	logger   *logger.Logger

	// onAlert, if set, receives every alert as it fires (websocket fan-out)
	onAlert func(Alert)
}

// NewService creates a new monitor service
func NewService(store Store, source SnapshotSource, analyzer Analyzer, email EmailSender, cfg config.MonitorConfig, log *logger.Logger) *Service {
	return &Service{
		store:    store,
		source:   source,
		analyzer: analyzer,
		email:    email,
		cfg:      cfg,
		logger:   log.WithField("module", "monitor"),
	}
}

// OnAlert registers the live alert callback
func (s *Service) OnAlert(fn func(Alert)) {
	s.onAlert = fn
}

// Run executes one monitoring cycle over the whole watchlist. A failing
// instrument is logged and skipped; the cycle itself fails only when the
// watchlist cannot be loaded.
func (s *Service) Run(ctx context.Context) error {
	entries, err := s.store.GetWatchlist(ctx)
	if err != nil {
		return fmt.Errorf("load watchlist: %w", err)
	}
	if len(entries) == 0 {
		s.logger.Debug("Watchlist empty, nothing to monitor")
		return nil
	}

	s.logger.WithField("watchlist_size", len(entries)).Info("Monitoring cycle started")

	var fired []Alert
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("monitoring cycle cancelled: %w", err)
		}

		alerts, err := s.checkOne(ctx, entry)
		if err != nil {
			s.logger.WithError(err).WithField("code", entry.Code).Warn("Monitoring check failed, skipping")
			continue
		}
		fired = append(fired, alerts...)
	}

	for _, alert := range fired {
		s.logger.WithFields(map[string]interface{}{
			"code":  alert.Code,
			"rule":  string(alert.Rule),
			"score": alert.Score,
		}).Info("Alert fired")
		if s.onAlert != nil {
			s.onAlert(alert)
		}
	}

	if len(fired) > 0 && s.email != nil && s.email.Enabled() {
		subject, body := FormatAlertEmail(fired)
		if err := s.email.SendEmail(subject, body); err != nil {
			s.logger.WithError(err).Error("Alert email delivery failed")
		}
	}

	s.logger.WithFields(map[string]interface{}{
		"checked": len(entries),
		"alerts":  len(fired),
	}).Info("Monitoring cycle completed")
	return nil
}

func (s *Service) checkOne(ctx context.Context, entry WatchlistEntry) ([]Alert, error) {
	snapshot, err := s.source.Fetch(ctx, entry.Code)
	if err != nil {
		return nil, fmt.Errorf("fetch snapshot: %w", err)
	}

	score, err := s.analyzer.Analyze(ctx, snapshot)
	if err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}
	if score.Name == "" {
		score.Name = entry.Name
	}

	prev, err := s.store.LatestScore(ctx, entry.Code)
	if err != nil {
		return nil, fmt.Errorf("load previous score: %w", err)
	}

	if err := s.store.SaveScore(ctx, score); err != nil {
		return nil, fmt.Errorf("save score: %w", err)
	}

	return EvaluateAlerts(prev, score, s.cfg), nil
}
