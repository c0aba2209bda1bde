package commands

import (
	"context"
	"time"

	"fieldservice/internal/core/domain/model/digest"
	"fieldservice/internal/core/domain/model/job"
	"fieldservice/internal/core/domain/model/kernel"
)

// AssignTechnicianCommandHandler handles technician assignment as a
// first-class action so it emits the right change events: the departing
// technician sees the job removed, the arriving one sees it assigned,
// classified by whether it opens a new route on that day.
//
// Example:
//
//	handler := NewAssignTechnicianCommandHandler(uowFactory, loc)
//	cmd, _ := NewAssignTechnicianCommand(jobID, nil) // unassign
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("unassign failed: %w", err)
//	}
type AssignTechnicianCommandHandler struct {
	uowFactory ScheduleUoWFactory
	loc        *time.Location
}

// NewAssignTechnicianCommandHandler creates a handler for technician
// assignment operations.
func NewAssignTechnicianCommandHandler(
	uowFactory ScheduleUoWFactory, loc *time.Location) AssignTechnicianCommandHandler {
	return AssignTechnicianCommandHandler{
		uowFactory: uowFactory,
		loc:        loc,
	}
}

// Handle processes the assignment command. The job update and every emitted
// change event land in one transaction.
func (h AssignTechnicianCommandHandler) Handle(ctx context.Context, cmd AssignTechnicianCommand) error {
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
	eventRepo := uow.ChangeEventRepository()

	aggregate, err := jobRepo.Get(ctx, cmd.JobID())
	if err != nil {
		return err
	}

	previous := aggregate.Technician()
	next := cmd.Technician()

	if previous != nil && (next == nil || !next.IsEqual(*previous)) {
		event, eventErr := newUnassignmentEvent(aggregate, *previous, h.loc)
		if eventErr != nil {
			return eventErr
		}
		if err = eventRepo.Add(ctx, event); err != nil {
			return err
		}
	}

	if next == nil {
		if err = aggregate.Unassign(); err != nil {
			return err
		}
	} else if previous == nil || !next.IsEqual(*previous) {
		jobID := aggregate.ID()
		otherJobs, countErr := jobRepo.CountForTechnicianOnDay(
			ctx, *next, aggregate.Day(h.loc), &jobID)
		if countErr != nil {
			return countErr
		}

		if err = aggregate.AssignTechnician(*next); err != nil {
			return err
		}

		event, eventErr := newAssignmentEvent(aggregate, *next, otherJobs, h.loc)
		if eventErr != nil {
			return eventErr
		}
		if err = eventRepo.Add(ctx, event); err != nil {
			return err
		}
	}

	if err = jobRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}

// newUnassignmentEvent builds the change event telling a technician a job
// was taken off their route.
func newUnassignmentEvent(
	aggregate *job.Job,
	technicianID kernel.UUID,
	loc *time.Location,
) (*digest.ChangeEvent, error) {
	payload, err := digest.NewUnassignmentPayload(
		aggregate.Customer().Name, aggregate.Customer().Address)
	if err != nil {
		return nil, err
	}

	return digest.NewChangeEvent(
		kernel.NewUUID(),
		technicianID,
		aggregate.ID(),
		aggregate.Day(loc),
		digest.JobUnassigned,
		payload,
	)
}
