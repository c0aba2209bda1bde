package commands

import (
	"errors"
	"time"

	"fieldservice/internal/core/domain/model/digest"
	"fieldservice/internal/pkg/guard"
)

var (
	ErrSendTechnicianDigestsCommandIsNotConstructed = errors.New(
		"SendTechnicianDigestsCommand must be created via NewSendTechnicianDigestsCommand constructor",
	)
	ErrScheduledForIsRequired = errors.New("scheduledFor is required")
)

// SendTechnicianDigestsCommand represents one dispatch pass: the window that
// fired and the instant it was due.
//
// Example:
//
//	cmd, err := NewSendTechnicianDigestsCommand(digest.Midday, time.Now())
//	if err != nil {
//	    return err
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    log.Printf("digest pass failed: %v", err)
//	}
type SendTechnicianDigestsCommand struct { //nolint:recvcheck //using for validation
	window       digest.Window
	scheduledFor time.Time

	guard guard.ConstructorGuard
}

// NewSendTechnicianDigestsCommand creates a command for one dispatch pass.
func NewSendTechnicianDigestsCommand(
	window digest.Window, scheduledFor time.Time) (SendTechnicianDigestsCommand, error) {
	if err := window.Validate(); err != nil {
		return SendTechnicianDigestsCommand{}, err
	}
	if scheduledFor.IsZero() {
		return SendTechnicianDigestsCommand{}, ErrScheduledForIsRequired
	}

	return SendTechnicianDigestsCommand{
		window:       window,
		scheduledFor: scheduledFor,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrSendTechnicianDigestsCommandIsNotConstructed if validation fails.
func (c SendTechnicianDigestsCommand) Validate() error {
	return c.guard.Validate(ErrSendTechnicianDigestsCommandIsNotConstructed)
}

// Window returns the dispatch pass that fired.
func (c SendTechnicianDigestsCommand) Window() digest.Window {
	return c.window
}

// ScheduledFor returns the instant the pass was due.
func (c SendTechnicianDigestsCommand) ScheduledFor() time.Time {
	return c.scheduledFor
}
