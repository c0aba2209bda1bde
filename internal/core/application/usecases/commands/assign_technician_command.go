package commands

import (
	"errors"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/pkg/guard"
)

var ErrAssignTechnicianCommandIsNotConstructed = errors.New(
	"AssignTechnicianCommand must be created via NewAssignTechnicianCommand constructor",
)

// AssignTechnicianCommand represents a request to assign, reassign, or
// unassign the technician for a job. A nil technician means unassign.
//
// Example:
//
//	cmd, err := NewAssignTechnicianCommand(jobID, &techID)
//	if err != nil {
//	    return fmt.Errorf("invalid assignment: %w", err)
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("assignment failed: %w", err)
//	}
type AssignTechnicianCommand struct { //nolint:recvcheck //using for validation
	jobID        kernel.UUID
	technicianID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewAssignTechnicianCommand creates a command to change a job's technician.
// technicianID may be nil to unassign.
func NewAssignTechnicianCommand(jobID kernel.UUID, technicianID *kernel.UUID) (AssignTechnicianCommand, error) {
	assignCommand := AssignTechnicianCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := assignCommand.setJobID(jobID); err != nil {
		return AssignTechnicianCommand{}, err
	}
	if err := assignCommand.setTechnician(technicianID); err != nil {
		return AssignTechnicianCommand{}, err
	}

	return assignCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrAssignTechnicianCommandIsNotConstructed if validation fails.
func (c AssignTechnicianCommand) Validate() error {
	return c.guard.Validate(ErrAssignTechnicianCommandIsNotConstructed)
}

// JobID returns the job to reassign.
func (c AssignTechnicianCommand) JobID() kernel.UUID {
	return c.jobID
}

// Technician returns the technician to assign, or nil for unassign.
func (c AssignTechnicianCommand) Technician() *kernel.UUID {
	if c.technicianID == nil {
		return nil
	}
	v := *c.technicianID
	return &v
}

func (c *AssignTechnicianCommand) setJobID(jobID kernel.UUID) error {
	if err := jobID.Validate(); err != nil {
		return err
	}

	c.jobID = jobID
	return nil
}

func (c *AssignTechnicianCommand) setTechnician(technicianID *kernel.UUID) error {
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
