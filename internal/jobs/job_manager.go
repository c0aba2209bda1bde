package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"fieldservice/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	digestDispatchJob   *DigestDispatchJob
	notificationPollJob *NotificationPollJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	digestHandler commands.SendTechnicianDigestsCommandHandler,
	notificationHandler commands.SendCustomerNotificationsCommandHandler,
	schedule DigestSchedule,
	pollInterval time.Duration,
	loc *time.Location,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		digestDispatchJob:   NewDigestDispatchJob(digestHandler, schedule, loc, logger),
		notificationPollJob: NewNotificationPollJob(notificationHandler, pollInterval, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.digestDispatchJob.Start(); err != nil {
		return fmt.Errorf("failed to start digest dispatch job: %w", err)
	}

	if err := jm.notificationPollJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.digestDispatchJob.Stop()
		return fmt.Errorf("failed to start notification poll job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.digestDispatchJob.Stop()
	jm.notificationPollJob.Stop()
}
