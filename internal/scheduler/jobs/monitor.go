package jobs

import (
	"context"

	"github.com/wonny/vulture/internal/monitor"
	"github.com/wonny/vulture/pkg/logger"
)

// MonitorJob runs one watchlist monitoring cycle on schedule
type MonitorJob struct {
	service  *monitor.Service
	schedule string
	logger   *logger.Logger
}

// NewMonitorJob creates a new MonitorJob
func NewMonitorJob(service *monitor.Service, schedule string, log *logger.Logger) *MonitorJob {
	return &MonitorJob{
		service:  service,
		schedule: schedule,
		logger:   log.WithField("job", "monitor"),
	}
}

// Name returns the job name
func (j *MonitorJob) Name() string {
	return "watchlist_monitor"
}

// Schedule returns the cron expression
func (j *MonitorJob) Schedule() string {
	return j.schedule
}

// Run executes one monitoring cycle
func (j *MonitorJob) Run(ctx context.Context) error {
	return j.service.Run(ctx)
}
