package scan

import (
	"context"
	"fmt"
	"sync"

	"github.com/wonny/vulture/internal/contracts"
	"github.com/wonny/vulture/pkg/logger"
)

// Orchestrator fans snapshot fetches out to a worker pool, batch by batch.
// ⭐ SSOT: 스냅샷 수집 오케스트레이션은 이 패키지에서만
type Orchestrator struct {
	fetcher   *Fetcher
	workers   int
	batchSize int
	logger    *logger.Logger
}

// NewOrchestrator creates a new Orchestrator instance
func NewOrchestrator(fetcher *Fetcher, workers, batchSize int, log *logger.Logger) *Orchestrator {
	if workers < 1 {
		workers = 1
	}
	if batchSize < 1 {
		batchSize = 1
	}
	return &Orchestrator{
		fetcher:   fetcher,
		workers:   workers,
		batchSize: batchSize,
		logger:    log.WithField("module", "orchestrator"),
	}
}

type fetchResult struct {
	code     string
	snapshot *contracts.Snapshot
	err      error
}

// FetchAll fetches snapshots for all codes. A code that fails is logged and
// skipped; it never aborts the run. Progress is reported once per batch.
func (o *Orchestrator) FetchAll(ctx context.Context, codes []string, onProgress contracts.ProgressFunc) (map[string]*contracts.Snapshot, error) {
	if len(codes) == 0 {
		return nil, fmt.Errorf("no codes to fetch")
	}

	o.logger.WithFields(map[string]interface{}{
		"code_count": len(codes),
		"workers":    o.workers,
		"batch_size": o.batchSize,
	}).Info("Starting snapshot collection")

	snapshots := make(map[string]*contracts.Snapshot, len(codes))
	total := len(codes)
	completed := 0
	failCount := 0

	for start := 0; start < total; start += o.batchSize {
		end := start + o.batchSize
		if end > total {
			end = total
		}
		batch := codes[start:end]

		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("snapshot collection cancelled: %w", err)
		}

		for _, result := range o.fetchBatch(ctx, batch) {
			if result.err != nil {
				failCount++
				o.logger.WithError(result.err).WithField("code", result.code).Debug("Snapshot fetch failed, skipping")
				continue
			}
			snapshots[result.code] = result.snapshot
		}

		completed += len(batch)
		if onProgress != nil {
			onProgress(completed, total, fmt.Sprintf("batch %d/%d", (start/o.batchSize)+1, (total+o.batchSize-1)/o.batchSize))
		}
	}

	o.logger.WithFields(map[string]interface{}{
		"success": len(snapshots),
		"failed":  failCount,
		"total":   total,
	}).Info("Snapshot collection completed")

	return snapshots, nil
}

func (o *Orchestrator) fetchBatch(ctx context.Context, batch []string) []fetchResult {
	codeCh := make(chan string, len(batch))
	resultCh := make(chan fetchResult, len(batch))

	var wg sync.WaitGroup
	for i := 0; i < o.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for code := range codeCh {
				snapshot, err := o.fetcher.Fetch(ctx, code)
				resultCh <- fetchResult{code: code, snapshot: snapshot, err: err}
			}
		}()
	}

	for _, code := range batch {
		codeCh <- code
	}
	close(codeCh)

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	results := make([]fetchResult, 0, len(batch))
	for result := range resultCh {
		results = append(results, result)
	}
	return results
}
