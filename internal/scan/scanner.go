package scan

import (
	"context"
	"fmt"
	"time"

	"github.com/wonny/vulture/internal/contracts"
	"github.com/wonny/vulture/pkg/logger"
)

// SegmentCustom scans an explicit code list instead of a market segment.
const SegmentCustom = "custom"

// Options control a single scan run.
type Options struct {
	// Segment selects the universe: all, kospi, kosdaq, quick, or custom.
	Segment string

	// Codes is the explicit instrument list for the custom segment.
	Codes []string

	// OnProgress, if set, is invoked after each fetch batch.
	OnProgress contracts.ProgressFunc
}

// Scanner runs the full accumulation scan pipeline: universe resolution,
// snapshot collection, admission gate, factor scoring, tier classification.
// ⭐ SSOT: 스캔 파이프라인 조립은 이 구조체에서만
type Scanner struct {
	universe     contracts.UniverseProvider
	orchestrator *Orchestrator
	scorer       *FactorScorer
	logger       *logger.Logger
}

// NewScanner creates a new Scanner instance
func NewScanner(universe contracts.UniverseProvider, orchestrator *Orchestrator, log *logger.Logger) *Scanner {
	return &Scanner{
		universe:     universe,
		orchestrator: orchestrator,
		scorer:       NewFactorScorer(),
		logger:       log.WithField("module", "scanner"),
	}
}

// Scan runs one scan and returns classified signals in display order.
func (s *Scanner) Scan(ctx context.Context, opts Options) ([]contracts.Signal, error) {
	codes, err := s.resolveCodes(ctx, opts)
	if err != nil {
		return nil, err
	}

	started := time.Now()
	s.logger.WithFields(map[string]interface{}{
		"segment":    opts.Segment,
		"code_count": len(codes),
	}).Info("Scan started")

	snapshots, err := s.orchestrator.FetchAll(ctx, codes, opts.OnProgress)
	if err != nil {
		return nil, fmt.Errorf("snapshot collection failed: %w", err)
	}

	signals := s.scoreAdmitted(snapshots)
	classified := Classify(signals)

	s.logger.WithFields(map[string]interface{}{
		"segment":  opts.Segment,
		"fetched":  len(snapshots),
		"admitted": len(signals),
		"elapsed":  time.Since(started).Round(time.Millisecond).String(),
	}).Info("Scan completed")

	return classified, nil
}

func (s *Scanner) resolveCodes(ctx context.Context, opts Options) ([]string, error) {
	if opts.Segment == SegmentCustom {
		if len(opts.Codes) == 0 {
			return nil, fmt.Errorf("custom scan requires at least one code")
		}
		return opts.Codes, nil
	}

	codes, err := s.universe.BySegment(ctx, opts.Segment)
	if err != nil {
		return nil, fmt.Errorf("universe resolution failed: %w", err)
	}
	if len(codes) == 0 {
		return nil, fmt.Errorf("no scan targets for segment %q", opts.Segment)
	}
	return codes, nil
}

// scoreAdmitted gates every snapshot and scores the survivors.
func (s *Scanner) scoreAdmitted(snapshots map[string]*contracts.Snapshot) []contracts.Signal {
	detectedAt := time.Now()
	signals := make([]contracts.Signal, 0, len(snapshots))

	for _, snapshot := range snapshots {
		if !Admit(snapshot) {
			continue
		}
		scores := s.scorer.Score(snapshot)
		signals = append(signals, contracts.Signal{
			Code:           snapshot.Code,
			Name:           snapshot.Name,
			FactorScoreSet: scores,
			Price:          snapshot.Price,
			ChangePct:      snapshot.ChangePct,
			VolumeRatio:    snapshot.VolumeRatio,
			TurnoverPct:    snapshot.TurnoverPct,
			MarketCap:      snapshot.MarketCap,
			DetectedAt:     detectedAt,
		})
	}

	return signals
}
