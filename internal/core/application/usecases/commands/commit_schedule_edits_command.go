package commands

import (
	"errors"

	"fieldservice/internal/core/domain/model/schedule"
	"fieldservice/internal/pkg/guard"
)

var (
	ErrCommitScheduleEditsCommandIsNotConstructed = errors.New(
		"CommitScheduleEditsCommand must be created via NewCommitScheduleEditsCommand constructor",
	)
	ErrNoPendingEdits = errors.New("no pending edits to commit")
)

// CommitScheduleEditsCommand carries the flattened patch list of one editing
// session: at most one merged patch per job, in first-edit order, as produced
// by the schedule board's tracker.
//
// Example:
//
//	cmd, err := NewCommitScheduleEditsCommand(board.PendingEdits())
//	if err != nil {
//	    return err // nothing to commit
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("commit failed: %w", err) // board state survives for retry
//	}
//	board.DiscardEdits()
type CommitScheduleEditsCommand struct { //nolint:recvcheck //using for validation
	patches []schedule.JobPatch

	guard guard.ConstructorGuard
}

// NewCommitScheduleEditsCommand creates a command from a flattened patch
// list. Returns ErrNoPendingEdits when the list is empty, and rejects
// patches with an invalid job ID or no fields set.
func NewCommitScheduleEditsCommand(patches []schedule.JobPatch) (CommitScheduleEditsCommand, error) {
	if len(patches) == 0 {
		return CommitScheduleEditsCommand{}, ErrNoPendingEdits
	}

	for _, jobPatch := range patches {
		if err := jobPatch.JobID.Validate(); err != nil {
			return CommitScheduleEditsCommand{}, err
		}
		if jobPatch.Patch.IsEmpty() {
			return CommitScheduleEditsCommand{}, ErrNoPendingEdits
		}
	}

	return CommitScheduleEditsCommand{
		patches: append([]schedule.JobPatch(nil), patches...),
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCommitScheduleEditsCommandIsNotConstructed if validation fails.
func (c CommitScheduleEditsCommand) Validate() error {
	return c.guard.Validate(ErrCommitScheduleEditsCommandIsNotConstructed)
}

// Patches returns the flattened patch list in first-edit order.
func (c CommitScheduleEditsCommand) Patches() []schedule.JobPatch {
	return append([]schedule.JobPatch(nil), c.patches...)
}
