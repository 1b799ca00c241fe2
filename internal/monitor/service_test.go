package monitor

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/vulture/internal/contracts"
	"github.com/wonny/vulture/pkg/logger"
)

type fakeStore struct {
	watchlist []WatchlistEntry
	latest    map[string]*ScoreRecord
	saved     []*contracts.MAScore
}

func (f *fakeStore) GetWatchlist(context.Context) ([]WatchlistEntry, error) {
	return f.watchlist, nil
}

func (f *fakeStore) SaveScore(_ context.Context, score *contracts.MAScore) error {
	f.saved = append(f.saved, score)
	return nil
}

func (f *fakeStore) LatestScore(_ context.Context, code string) (*ScoreRecord, error) {
	return f.latest[code], nil
}

type fakeSource struct {
	snapshots map[string]*contracts.Snapshot
}

func (f *fakeSource) Fetch(_ context.Context, code string) (*contracts.Snapshot, error) {
	s, ok := f.snapshots[code]
	if !ok {
		return nil, fmt.Errorf("no snapshot for %s", code)
	}
	return s, nil
}

type fakeAnalyzer struct {
	totals map[string]int
}

func (f *fakeAnalyzer) Analyze(_ context.Context, s *contracts.Snapshot) (*contracts.MAScore, error) {
	total := f.totals[s.Code]
	return &contracts.MAScore{
		Code:  s.Code,
		Name:  s.Name,
		Total: total,
		Tier:  contracts.MATierFor(total),
	}, nil
}

type fakeEmail struct {
	enabled  bool
	subjects []string
}

func (f *fakeEmail) Enabled() bool { return f.enabled }
func (f *fakeEmail) SendEmail(subject, _ string) error {
	f.subjects = append(f.subjects, subject)
	return nil
}

func TestRunFiresAlertsAndEmail(t *testing.T) {
	store := &fakeStore{
		watchlist: []WatchlistEntry{
			{Code: "000100", Name: "알파", Enabled: true},
			{Code: "000200", Name: "베타", Enabled: true},
		},
		latest: map[string]*ScoreRecord{
			"000200": {Code: "000200", Total: 40, Tier: "MEDIUM"},
		},
	}
	source := &fakeSource{snapshots: map[string]*contracts.Snapshot{
		"000100": {Code: "000100", Name: "알파"},
		"000200": {Code: "000200", Name: "베타"},
	}}
	analyzer := &fakeAnalyzer{totals: map[string]int{
		"000100": 10, // quiet, no alert
		"000200": 60, // crossed 50 since last cycle
	}}
	email := &fakeEmail{enabled: true}

	svc := NewService(store, source, analyzer, email, testCfg, logger.NewNop())
	var live []Alert
	svc.OnAlert(func(a Alert) { live = append(live, a) })

	require.NoError(t, svc.Run(context.Background()))

	assert.Len(t, store.saved, 2, "every check is persisted")
	require.Len(t, live, 2, "threshold cross and score jump for 000200")
	assert.Equal(t, "000200", live[0].Code)
	assert.Len(t, email.subjects, 1)
}

func TestRunSkipsFailingInstrument(t *testing.T) {
	store := &fakeStore{
		watchlist: []WatchlistEntry{
			{Code: "DEAD00", Name: "고장", Enabled: true},
			{Code: "000100", Name: "알파", Enabled: true},
		},
		latest: map[string]*ScoreRecord{},
	}
	source := &fakeSource{snapshots: map[string]*contracts.Snapshot{
		"000100": {Code: "000100", Name: "알파"},
	}}
	svc := NewService(store, source, &fakeAnalyzer{totals: map[string]int{}}, &fakeEmail{}, testCfg, logger.NewNop())

	require.NoError(t, svc.Run(context.Background()))
	require.Len(t, store.saved, 1)
	assert.Equal(t, "000100", store.saved[0].Code)
}

func TestRunEmptyWatchlist(t *testing.T) {
	svc := NewService(&fakeStore{}, &fakeSource{}, &fakeAnalyzer{}, &fakeEmail{}, testCfg, logger.NewNop())
	assert.NoError(t, svc.Run(context.Background()))
}
