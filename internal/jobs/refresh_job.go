package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// DashboardRefreshJobName is the name of the periodic dashboard refresh job
const DashboardRefreshJobName = "dashboard_refresh"

// DefaultRefreshTimeout bounds one aggregation pass, including the gateway
// round trip with retries.
const DefaultRefreshTimeout = 2 * time.Minute

// DashboardRefresher defines the interface for running an aggregation pass.
// This interface allows the job to call the service without importing the
// service package directly.
type DashboardRefresher interface {
	// Refresh re-fetches and re-derives the dashboard with the active
	// filter. A pass with no centre selected is a no-op.
	Refresh(ctx context.Context)
}

// DashboardRefreshJob keeps the derived dashboard state fresh by rerunning
// the aggregation on a schedule.
type DashboardRefreshJob struct {
	dashboard DashboardRefresher
	logger    *zap.Logger
	timeout   time.Duration
}

// NewDashboardRefreshJob creates a new dashboard refresh job.
// The timeout controls how long one refresh pass is allowed to run.
func NewDashboardRefreshJob(dashboard DashboardRefresher, logger *zap.Logger, timeout time.Duration) *DashboardRefreshJob {
	return &DashboardRefreshJob{
		dashboard: dashboard,
		logger:    logger,
		timeout:   timeout,
	}
}

// Run executes one dashboard refresh pass.
// This is called by the scheduler according to the cron expression.
func (j *DashboardRefreshJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	start := time.Now()
	j.dashboard.Refresh(ctx)
	j.logger.Info("dashboard refresh pass finished",
		zap.Duration("duration", time.Since(start)))
}

// RegisterDashboardRefreshJob registers the periodic refresh with the
// scheduler. The cronExpr should be a valid cron expression
// (e.g., "0 */5 * * * *" for every five minutes).
func RegisterDashboardRefreshJob(scheduler *Scheduler, dashboard DashboardRefresher, logger *zap.Logger, cronExpr string, timeout time.Duration) error {
	job := NewDashboardRefreshJob(dashboard, logger, timeout)
	return scheduler.AddJob(DashboardRefreshJobName, cronExpr, job.Run)
}
