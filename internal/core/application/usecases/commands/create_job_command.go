package commands

import (
	"errors"
	"time"

	"fieldservice/internal/core/domain/model/job"
	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/pkg/guard"
)

var (
	ErrCreateJobCommandIsNotConstructed = errors.New(
		"CreateJobCommand must be created via NewCreateJobCommand constructor",
	)
	ErrScheduledAtIsRequired = errors.New("scheduledAt is required")
)

// CreateJobCommand represents a request to book a new service visit.
// Encapsulates the customer snapshot, the visit time, and the optional
// technician the job is created assigned to.
//
// Example:
//
//	jobID := kernel.NewUUID()
//	cmd, err := NewCreateJobCommand(jobID, customer, visitAt, job.PriorityNormal, svc, nil)
//	if err != nil {
//	    return fmt.Errorf("invalid job data: %w", err)
//	}
//
//	handler := NewCreateJobCommandHandler(uowFactory, loc)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create job: %w", err)
//	}
type CreateJobCommand struct { //nolint:recvcheck //using for validation
	jobID        kernel.UUID
	customer     job.Customer
	scheduledAt  time.Time
	priority     job.Priority
	service      job.Service
	technicianID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreateJobCommand creates a command to book a new visit.
// technicianID may be nil; when set, the job is created already assigned and
// the handler emits the corresponding change event.
func NewCreateJobCommand(
	jobID kernel.UUID,
	customer job.Customer,
	scheduledAt time.Time,
	priority job.Priority,
	service job.Service,
	technicianID *kernel.UUID,
) (CreateJobCommand, error) {
	jobCommand := CreateJobCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		jobCommand.setJobID(jobID),
		jobCommand.setCustomer(customer),
		jobCommand.setScheduledAt(scheduledAt),
		jobCommand.setPriority(priority),
		jobCommand.setTechnician(technicianID),
	); err != nil {
		return CreateJobCommand{}, err
	}

	jobCommand.service = service
	return jobCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateJobCommandIsNotConstructed if validation fails.
func (c CreateJobCommand) Validate() error {
	return c.guard.Validate(ErrCreateJobCommandIsNotConstructed)
}

// JobID returns the unique identifier for the job.
func (c CreateJobCommand) JobID() kernel.UUID {
	return c.jobID
}

// Customer returns the customer snapshot the visit belongs to.
func (c CreateJobCommand) Customer() job.Customer {
	return c.customer
}

// ScheduledAt returns the planned visit timestamp.
func (c CreateJobCommand) ScheduledAt() time.Time {
	return c.scheduledAt
}

// Priority returns the requested visit priority.
func (c CreateJobCommand) Priority() job.Priority {
	return c.priority
}

// Service returns the opaque visit metadata.
func (c CreateJobCommand) Service() job.Service {
	return c.service
}

// Technician returns the technician to create the job assigned to, or nil.
func (c CreateJobCommand) Technician() *kernel.UUID {
	if c.technicianID == nil {
		return nil
	}
	v := *c.technicianID
	return &v
}

func (c *CreateJobCommand) setJobID(jobID kernel.UUID) error {
	if err := jobID.Validate(); err != nil {
		return err
	}

	c.jobID = jobID
	return nil
}

func (c *CreateJobCommand) setCustomer(customer job.Customer) error {
	if err := customer.Validate(); err != nil {
		return err
	}

	c.customer = customer
	return nil
}

func (c *CreateJobCommand) setScheduledAt(at time.Time) error {
	if at.IsZero() {
		return ErrScheduledAtIsRequired
	}

	c.scheduledAt = at
	return nil
}

func (c *CreateJobCommand) setPriority(priority job.Priority) error {
	if err := priority.Validate(); err != nil {
		return err
	}

	c.priority = priority
	return nil
}

func (c *CreateJobCommand) setTechnician(technicianID *kernel.UUID) error {
	if technicianID == nil {
		return nil
	}
	if err := technicianID.Validate(); err != nil {
		return err
	}

	techID := *technicianID
	c.technicianID = &techID
	return nil
}
