package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"fieldservice/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// NotificationPollJob drains the customer notification queue on a fixed
// interval. Each tick picks up one bounded batch; a tick that finds nothing
// queued is silent.
type NotificationPollJob struct {
	handler  commands.SendCustomerNotificationsCommandHandler
	interval time.Duration
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewNotificationPollJob creates a new job draining the customer
// notification queue every interval.
func NewNotificationPollJob(
	handler commands.SendCustomerNotificationsCommandHandler,
	interval time.Duration,
	logger *slog.Logger,
) *NotificationPollJob {
	return &NotificationPollJob{
		handler:  handler,
		interval: interval,
		cron:     cron.New(),
		logger:   logger.With("component", "notification_poll_job"),
	}
}

// Start begins the notification poll job.
func (j *NotificationPollJob) Start() error {
	_, err := j.cron.AddFunc(fmt.Sprintf("@every %s", j.interval), func() {
		ctx := context.Background()
		cmd := commands.NewSendCustomerNotificationsCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			// An empty queue is an expected business scenario, not a failure.
			if !errors.Is(err, commands.ErrNoQueuedNotifications) {
				j.logger.ErrorContext(ctx, "Notification poll job failed", "error", err)
			}
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Notification poll job started", "interval", j.interval.String())
	return nil
}

// Stop stops the notification poll job.
func (j *NotificationPollJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Notification poll job stopped")
}
