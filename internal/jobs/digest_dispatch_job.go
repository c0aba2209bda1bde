package jobs

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"fieldservice/internal/core/application/usecases/commands"
	"fieldservice/internal/core/domain/model/digest"

	"github.com/robfig/cron/v3"
)

// DigestSchedule holds the three daily dispatch passes as cron expressions
// evaluated in the service time zone.
type DigestSchedule struct {
	Morning string
	Midday  string
	Evening string
}

// DefaultDigestSchedule fires the passes at 07:00, 12:30, and 17:30.
func DefaultDigestSchedule() DigestSchedule {
	return DigestSchedule{
		Morning: "0 7 * * *",
		Midday:  "30 12 * * *",
		Evening: "30 17 * * *",
	}
}

// DigestDispatchJob runs the three daily technician digest passes: the
// morning full-plan restatement and the midday and evening delta passes.
// Passes are serialized with a try-lock; a pass that fires while another is
// still running is skipped, not queued.
type DigestDispatchJob struct {
	handler  commands.SendTechnicianDigestsCommandHandler
	schedule DigestSchedule
	cron     *cron.Cron
	running  atomic.Bool
	logger   *slog.Logger
}

// NewDigestDispatchJob creates the digest dispatch job. The cron entries are
// evaluated in loc, the service time zone the day boundary rules use.
func NewDigestDispatchJob(
	handler commands.SendTechnicianDigestsCommandHandler,
	schedule DigestSchedule,
	loc *time.Location,
	logger *slog.Logger,
) *DigestDispatchJob {
	return &DigestDispatchJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithLocation(loc)),
		logger:   logger.With("component", "digest_dispatch_job"),
	}
}

// Start registers the three passes and begins the cron schedule.
func (j *DigestDispatchJob) Start() error {
	passes := []struct {
		spec   string
		window digest.Window
	}{
		{j.schedule.Morning, digest.Morning},
		{j.schedule.Midday, digest.Midday},
		{j.schedule.Evening, digest.Evening},
	}

	for _, pass := range passes {
		window := pass.window
		if _, err := j.cron.AddFunc(pass.spec, func() {
			j.runPass(window)
		}); err != nil {
			return err
		}
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Digest dispatch job started",
		"morning", j.schedule.Morning, "midday", j.schedule.Midday, "evening", j.schedule.Evening)
	return nil
}

// Stop stops the digest dispatch job.
func (j *DigestDispatchJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Digest dispatch job stopped")
}

// runPass executes one dispatch pass unless a previous pass is still running.
func (j *DigestDispatchJob) runPass(window digest.Window) {
	ctx := context.Background()

	if !j.running.CompareAndSwap(false, true) {
		j.logger.WarnContext(ctx, "Digest pass skipped, previous pass still running", "window", window.String())
		return
	}
	defer j.running.Store(false)

	cmd, err := commands.NewSendTechnicianDigestsCommand(window, time.Now())
	if err != nil {
		j.logger.ErrorContext(ctx, "Digest pass failed to construct", "window", window.String(), "error", err)
		return
	}

	if err = j.handler.Handle(ctx, cmd); err != nil {
		// An empty day is an expected business scenario, not a failure.
		if !errors.Is(err, commands.ErrNothingToDispatch) {
			j.logger.ErrorContext(ctx, "Digest pass failed", "window", window.String(), "error", err)
		}
	}
}
