package scan

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/vulture/internal/contracts"
	"github.com/wonny/vulture/pkg/logger"
)

type fakeUniverse struct {
	segments map[string][]string
}

func (f *fakeUniverse) BySegment(_ context.Context, segment string) ([]string, error) {
	codes, ok := f.segments[segment]
	if !ok {
		return nil, fmt.Errorf("unknown market segment: %q", segment)
	}
	return codes, nil
}

// surgeHistory builds a history whose latest bar shows a strong volume
// anomaly, enough to clear the gate and score well.
func surgeHistory(code string, price float64) *contracts.RawHistory {
	bars := flatBars(25, price, 500_000)
	for i := 20; i < 25; i++ {
		bars[i].Volume = 900_000
	}
	bars[24].Volume = 2_000_000
	return &contracts.RawHistory{
		Code:              code,
		Name:              "종목" + code,
		Bars:              bars,
		SharesOutstanding: 50_000_000,
		MarketCap:         price * 50_000_000,
	}
}

func newTestScanner(universe contracts.UniverseProvider, provider contracts.MarketDataProvider) *Scanner {
	log := logger.NewNop()
	fetcher := NewFetcher(provider, NewSnapshotCache(time.Minute), log)
	orch := NewOrchestrator(fetcher, 4, 10, log)
	return NewScanner(universe, orch, log)
}

func TestScanCustomSegment(t *testing.T) {
	provider := &fakeProvider{histories: map[string]*contracts.RawHistory{
		"000100": surgeHistory("000100", 5000),
		"000200": surgeHistory("000200", 8000),
	}}
	scanner := newTestScanner(&fakeUniverse{}, provider)

	signals, err := scanner.Scan(context.Background(), Options{
		Segment: SegmentCustom,
		Codes:   []string{"000100", "000200"},
	})
	require.NoError(t, err)
	require.Len(t, signals, 2)

	for _, s := range signals {
		assert.NotEmpty(t, s.Tier)
		assert.Greater(t, s.Total, 0)
		assert.NotEmpty(t, s.Reasons)
	}
}

func TestScanCustomRequiresCodes(t *testing.T) {
	scanner := newTestScanner(&fakeUniverse{}, &fakeProvider{})
	_, err := scanner.Scan(context.Background(), Options{Segment: SegmentCustom})
	assert.Error(t, err)
}

func TestScanUnknownSegment(t *testing.T) {
	scanner := newTestScanner(&fakeUniverse{segments: map[string][]string{}}, &fakeProvider{})
	_, err := scanner.Scan(context.Background(), Options{Segment: "nasdaq"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "universe resolution failed")
}

func TestScanEmptyUniverse(t *testing.T) {
	universe := &fakeUniverse{segments: map[string][]string{"kospi": {}}}
	scanner := newTestScanner(universe, &fakeProvider{})
	_, err := scanner.Scan(context.Background(), Options{Segment: "kospi"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no scan targets")
}

func TestScanGateFiltersQuietInstruments(t *testing.T) {
	histories := map[string]*contracts.RawHistory{
		"000100": surgeHistory("000100", 5000),
		// Flat volume: fails the volume-ratio gate
		"000200": {
			Code:              "000200",
			Bars:              flatBars(25, 5000, 500_000),
			SharesOutstanding: 50_000_000,
			MarketCap:         2.5e11,
		},
	}
	universe := &fakeUniverse{segments: map[string][]string{"kospi": {"000100", "000200"}}}
	scanner := newTestScanner(universe, &fakeProvider{histories: histories})

	signals, err := scanner.Scan(context.Background(), Options{Segment: "kospi"})
	require.NoError(t, err)
	require.Len(t, signals, 1)
	assert.Equal(t, "000100", signals[0].Code)
}

func TestScanDeterministic(t *testing.T) {
	histories := make(map[string]*contracts.RawHistory)
	var codes []string
	for i := 0; i < 12; i++ {
		code := fmt.Sprintf("%06d", (i+1)*100)
		histories[code] = surgeHistory(code, float64(1000+i*500))
		codes = append(codes, code)
	}
	universe := &fakeUniverse{segments: map[string][]string{"kospi": codes}}

	run := func() []contracts.Signal {
		scanner := newTestScanner(universe, &fakeProvider{histories: histories})
		signals, err := scanner.Scan(context.Background(), Options{Segment: "kospi"})
		require.NoError(t, err)
		for i := range signals {
			signals[i].DetectedAt = time.Time{}
		}
		return signals
	}

	first := run()
	second := run()
	assert.Equal(t, first, second, "same inputs must produce identical output")

	lockons := 0
	for _, s := range first {
		if s.Tier == contracts.TierLockon {
			lockons++
		}
	}
	assert.LessOrEqual(t, lockons, contracts.MaxLockons)
}
