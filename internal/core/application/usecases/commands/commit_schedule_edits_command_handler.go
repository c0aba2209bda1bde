package commands

import (
	"context"
	"time"

	"fieldservice/internal/core/domain/model/digest"
	"fieldservice/internal/core/domain/model/job"
	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/core/domain/model/schedule"
	"fieldservice/internal/core/ports"
)

// CommitScheduleEditsCommandHandler turns one editing session into one
// transaction: every patched job is loaded, mutated, and batch-updated
// together with the change events the edits imply. If anything fails the
// transaction rolls back whole; the caller keeps its board state and can
// retry the same commit.
//
// Event emission rules per patch:
//   - scheduled time changed: JOB_RESCHEDULED with the prior and new times
//   - technician changed: JOB_UNASSIGNED for the departing technician and a
//     classified assignment event for the arriving one
//   - only the sort position changed: ROUTE_REORDERED
//
// Events are only emitted for jobs with a technician to notify.
type CommitScheduleEditsCommandHandler struct {
	uowFactory ScheduleUoWFactory
	loc        *time.Location
}

// NewCommitScheduleEditsCommandHandler creates a handler for bulk schedule
// commits.
func NewCommitScheduleEditsCommandHandler(
	uowFactory ScheduleUoWFactory, loc *time.Location) CommitScheduleEditsCommandHandler {
	return CommitScheduleEditsCommandHandler{
		uowFactory: uowFactory,
		loc:        loc,
	}
}

// Handle processes the commit command. All job updates and emitted change
// events land in a single transaction.
func (h CommitScheduleEditsCommandHandler) Handle(ctx context.Context, cmd CommitScheduleEditsCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	jobRepo := uow.JobRepository()

	updated := make([]*job.Job, 0, len(cmd.Patches()))
	events := make([]*digest.ChangeEvent, 0, len(cmd.Patches()))

	for _, jobPatch := range cmd.Patches() {
		aggregate, err := jobRepo.Get(ctx, jobPatch.JobID)
		if err != nil {
			return err
		}

		patchEvents, err := h.applyPatch(ctx, jobRepo, aggregate, jobPatch.Patch)
		if err != nil {
			return err
		}

		updated = append(updated, aggregate)
		events = append(events, patchEvents...)
	}

	if err := jobRepo.UpdateBatch(ctx, updated); err != nil {
		return err
	}

	eventRepo := uow.ChangeEventRepository()
	for _, event := range events {
		if err := eventRepo.Add(ctx, event); err != nil {
			return err
		}
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}

// applyPatch mutates one job per its merged patch and returns the change
// events the edit implies.
func (h CommitScheduleEditsCommandHandler) applyPatch(
	ctx context.Context,
	jobRepo ports.JobRepository,
	aggregate *job.Job,
	patch schedule.Patch,
) ([]*digest.ChangeEvent, error) {
	previousAt := aggregate.ScheduledAt()
	previousTech := aggregate.Technician()

	if patch.ScheduledAt != nil {
		if err := aggregate.Reschedule(*patch.ScheduledAt); err != nil {
			return nil, err
		}
	}
	if patch.SortOrder != nil {
		if err := aggregate.SetSortOrder(*patch.SortOrder); err != nil {
			return nil, err
		}
	}

	var events []*digest.ChangeEvent

	if patch.Technician != nil {
		techEvents, err := h.applyTechnicianPatch(ctx, jobRepo, aggregate, previousTech, patch.Technician.ID)
		if err != nil {
			return nil, err
		}
		events = append(events, techEvents...)
	}

	rescheduled := patch.ScheduledAt != nil && !patch.ScheduledAt.Equal(previousAt)
	if rescheduled {
		if technicianID := aggregate.Technician(); technicianID != nil {
			event, err := newRescheduleEvent(aggregate, *technicianID, previousAt, h.loc)
			if err != nil {
				return nil, err
			}
			events = append(events, event)
		}
		return events, nil
	}

	// A sort-position change with no day or technician change reads as a
	// pure reorder.
	if patch.SortOrder != nil && patch.Technician == nil {
		if technicianID := aggregate.Technician(); technicianID != nil {
			event, err := newReorderEvent(aggregate, *technicianID, h.loc)
			if err != nil {
				return nil, err
			}
			events = append(events, event)
		}
	}

	return events, nil
}

// applyTechnicianPatch changes the job's technician and emits the departure
// and arrival events.
func (h CommitScheduleEditsCommandHandler) applyTechnicianPatch(
	ctx context.Context,
	jobRepo ports.JobRepository,
	aggregate *job.Job,
	previous *kernel.UUID,
	next *kernel.UUID,
) ([]*digest.ChangeEvent, error) {
	var events []*digest.ChangeEvent

	if previous != nil && (next == nil || !next.IsEqual(*previous)) {
		event, err := newUnassignmentEvent(aggregate, *previous, h.loc)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	if next == nil {
		if err := aggregate.Unassign(); err != nil {
			return nil, err
		}
		return events, nil
	}

	if previous != nil && next.IsEqual(*previous) {
		return events, nil
	}

	jobID := aggregate.ID()
	otherJobs, err := jobRepo.CountForTechnicianOnDay(ctx, *next, aggregate.Day(h.loc), &jobID)
	if err != nil {
		return nil, err
	}

	if err = aggregate.AssignTechnician(*next); err != nil {
		return nil, err
	}

	event, err := newAssignmentEvent(aggregate, *next, otherJobs, h.loc)
	if err != nil {
		return nil, err
	}

	return append(events, event), nil
}

// newRescheduleEvent builds the change event for a visit moved to a new
// timestamp.
func newRescheduleEvent(
	aggregate *job.Job,
	technicianID kernel.UUID,
	previousAt time.Time,
	loc *time.Location,
) (*digest.ChangeEvent, error) {
	payload, err := digest.NewReschedulePayload(
		aggregate.Customer().Name, aggregate.Customer().Address, previousAt, aggregate.ScheduledAt())
	if err != nil {
		return nil, err
	}

	return digest.NewChangeEvent(
		kernel.NewUUID(),
		technicianID,
		aggregate.ID(),
		aggregate.Day(loc),
		digest.JobRescheduled,
		payload,
	)
}

// newReorderEvent builds the change event for a pure position change within
// a day.
func newReorderEvent(
	aggregate *job.Job,
	technicianID kernel.UUID,
	loc *time.Location,
) (*digest.ChangeEvent, error) {
	payload, err := digest.NewReorderPayload(
		aggregate.Customer().Name, aggregate.Customer().Address)
	if err != nil {
		return nil, err
	}

	return digest.NewChangeEvent(
		kernel.NewUUID(),
		technicianID,
		aggregate.ID(),
		aggregate.Day(loc),
		digest.RouteReordered,
		payload,
	)
}
