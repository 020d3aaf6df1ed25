package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	serviceTimeJob *ServiceTimeReconciliationJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	reconciler serviceTimeReconciler,
	reconciliationSchedule string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		serviceTimeJob: NewServiceTimeReconciliationJob(reconciler, reconciliationSchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.serviceTimeJob.Start(); err != nil {
		return fmt.Errorf("failed to start service time reconciliation job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.serviceTimeJob.Stop()
}
