package jobs

import (
	"fmt"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	orderProgressJob *OrderProgressJob
}

// NewJobManager creates a job manager around the already built jobs.
func NewJobManager(orderProgressJob *OrderProgressJob) *JobManager {
	return &JobManager{
		orderProgressJob: orderProgressJob,
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.orderProgressJob.Start(); err != nil {
		return fmt.Errorf("failed to start order progress job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs and waits for running steps to finish.
func (jm *JobManager) StopAll() {
	jm.orderProgressJob.Stop()
}
