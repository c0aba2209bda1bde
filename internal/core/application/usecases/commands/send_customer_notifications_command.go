package commands

import (
	"errors"

	"fieldservice/internal/pkg/guard"
)

var ErrSendCustomerNotificationsCommandIsNotConstructed = errors.New(
	"SendCustomerNotificationsCommand must be created via NewSendCustomerNotificationsCommand constructor",
)

// SendCustomerNotificationsCommand triggers one drain of the customer
// notification queue. This is a parameterless command fired by the poll job.
//
// Example:
//
//	cmd := NewSendCustomerNotificationsCommand()
//	handler := NewSendCustomerNotificationsCommandHandler(uowFactory, customers, mailer, loc)
//	err := handler.Handle(ctx, cmd)
//	if errors.Is(err, ErrNoQueuedNotifications) {
//	    return // nothing to do this tick
//	}
type SendCustomerNotificationsCommand struct {
	guard guard.ConstructorGuard
}

// NewSendCustomerNotificationsCommand creates a new command to drain the
// customer notification queue.
func NewSendCustomerNotificationsCommand() SendCustomerNotificationsCommand {
	return SendCustomerNotificationsCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
// Returns ErrSendCustomerNotificationsCommandIsNotConstructed if validation fails.
func (c *SendCustomerNotificationsCommand) Validate() error {
	return c.guard.Validate(
		ErrSendCustomerNotificationsCommandIsNotConstructed,
	)
}
