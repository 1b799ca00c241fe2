package jobs

import (
	"context"

	"github.com/wonny/vulture/internal/contracts"
	"github.com/wonny/vulture/internal/scan"
	"github.com/wonny/vulture/pkg/logger"
)

// ScanJob runs a full-market accumulation scan on schedule and hands the
// classified signals to a sink (persistence, websocket fan-out).
type ScanJob struct {
	scanner  *scan.Scanner
	segment  string
	schedule string
	sink     func([]contracts.Signal)
	logger   *logger.Logger
}

// NewScanJob creates a new ScanJob
func NewScanJob(scanner *scan.Scanner, segment, schedule string, sink func([]contracts.Signal), log *logger.Logger) *ScanJob {
	return &ScanJob{
		scanner:  scanner,
		segment:  segment,
		schedule: schedule,
		sink:     sink,
		logger:   log.WithField("job", "scan"),
	}
}

// Name returns the job name
func (j *ScanJob) Name() string {
	return "market_scan_" + j.segment
}

// Schedule returns the cron expression
func (j *ScanJob) Schedule() string {
	return j.schedule
}

// Run executes one scan
func (j *ScanJob) Run(ctx context.Context) error {
	signals, err := j.scanner.Scan(ctx, scan.Options{Segment: j.segment})
	if err != nil {
		return err
	}
	if j.sink != nil {
		j.sink(signals)
	}
	return nil
}
