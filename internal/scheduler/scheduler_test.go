package scheduler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/vulture/pkg/logger"
)

type noopJob struct{ name string }

func (j *noopJob) Name() string              { return j.name }
func (j *noopJob) Run(context.Context) error { return nil }
func (j *noopJob) Schedule() string          { return "@daily" }

func TestAddJobRejectsDuplicates(t *testing.T) {
	s := New(logger.NewNop())
	require.NoError(t, s.AddJob(&noopJob{name: "a"}))
	assert.Error(t, s.AddJob(&noopJob{name: "a"}))
	assert.ElementsMatch(t, []string{"a"}, s.Jobs())
}

func TestRunJobUnknown(t *testing.T) {
	s := New(logger.NewNop())
	assert.Error(t, s.RunJob("missing"))
}

func TestJobHistoryLimitsAndRate(t *testing.T) {
	h := &JobHistory{}
	for i := 0; i < historyLimit+20; i++ {
		h.AddResult(JobResult{Success: i%2 == 0})
	}
	assert.Len(t, h.Results, historyLimit)
	assert.InDelta(t, 0.5, h.SuccessRate(), 0.01)
	assert.Len(t, h.LatestResults(10), 10)
	assert.Empty(t, (&JobHistory{}).LatestResults(5))
}
