package commands

import (
	"context"
	"time"

	"fieldservice/internal/core/domain/model/digest"
	"fieldservice/internal/core/domain/model/job"
	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/core/domain/model/notification"
)

// CreateJobCommandHandler handles the business logic for booking a visit.
// Persists the new job, queues the customer notification, and, when the job
// is created already assigned, emits the assignment change event, classified
// by whether it opens a new route for the technician that day.
//
// Example:
//
//	handler := NewCreateJobCommandHandler(uowFactory, loc)
//	cmd, _ := NewCreateJobCommand(kernel.NewUUID(), customer, visitAt, job.PriorityNormal, svc, &techID)
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("job creation failed: %w", err)
//	}
type CreateJobCommandHandler struct {
	uowFactory ScheduleUoWFactory
	loc        *time.Location
}

// NewCreateJobCommandHandler creates a handler for visit booking operations.
// Requires a ScheduleUoWFactory for transactional persistence and the service
// time zone the day boundary rules are evaluated in.
func NewCreateJobCommandHandler(uowFactory ScheduleUoWFactory, loc *time.Location) CreateJobCommandHandler {
	return CreateJobCommandHandler{
		uowFactory: uowFactory,
		loc:        loc,
	}
}

// Handle processes the job creation command.
// The job, its customer notification, and (when assigned at creation) the
// assignment change event all land in one transaction.
func (h CreateJobCommandHandler) Handle(ctx context.Context, cmd CreateJobCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	newJob, err := job.NewJob(
		cmd.JobID(), cmd.Customer(), cmd.ScheduledAt(), cmd.Priority(), cmd.Service(), time.Now(), h.loc)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	jobRepo := uow.JobRepository()

	if technicianID := cmd.Technician(); technicianID != nil {
		otherJobs, countErr := jobRepo.CountForTechnicianOnDay(
			ctx, *technicianID, newJob.Day(h.loc), nil)
		if countErr != nil {
			return countErr
		}

		if err = newJob.AssignTechnician(*technicianID); err != nil {
			return err
		}

		event, eventErr := newAssignmentEvent(newJob, *technicianID, otherJobs, h.loc)
		if eventErr != nil {
			return eventErr
		}

		if err = jobRepo.Add(ctx, newJob); err != nil {
			return err
		}
		if err = uow.ChangeEventRepository().Add(ctx, event); err != nil {
			return err
		}
	} else if err = jobRepo.Add(ctx, newJob); err != nil {
		return err
	}

	customerNotification, err := notification.NewNotification(
		kernel.NewUUID(), cmd.Customer().ID, notification.JobScheduled, newJob.ID())
	if err != nil {
		return err
	}

	if err = uow.NotificationRepository().Add(ctx, customerNotification); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}

// newAssignmentEvent builds the change event for a job landing on a
// technician's day. otherJobs is the technician's job count on that day
// excluding the job itself.
func newAssignmentEvent(
	aggregate *job.Job,
	technicianID kernel.UUID,
	otherJobs int,
	loc *time.Location,
) (*digest.ChangeEvent, error) {
	payload, err := digest.NewAssignmentPayload(
		aggregate.Customer().Name, aggregate.Customer().Address, aggregate.ScheduledAt())
	if err != nil {
		return nil, err
	}

	return digest.NewChangeEvent(
		kernel.NewUUID(),
		technicianID,
		aggregate.ID(),
		aggregate.Day(loc),
		digest.ClassifyAssignment(otherJobs),
		payload,
	)
}
