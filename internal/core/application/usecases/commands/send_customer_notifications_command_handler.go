package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fieldservice/internal/core/domain/model/job"
	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/core/domain/model/notification"
	"fieldservice/internal/core/ports"
	"fieldservice/internal/pkg/errs"
)

// ErrNoQueuedNotifications is returned when the drain finds nothing queued.
var ErrNoQueuedNotifications = errors.New("no queued notifications found")

// notificationBatchSize bounds how many queued rows one drain picks up.
const notificationBatchSize = 30

// SendCustomerNotificationsCommandHandler drains the customer notification
// queue: a bounded batch of queued rows, each resolved against its job,
// rendered per event type, sent, audited, and finalized.
//
// A notification whose job reference is missing or unresolvable fails
// permanently and produces no job-referencing audit entry. Failures on one
// notification never abort the rest of the batch.
type SendCustomerNotificationsCommandHandler struct {
	uowFactory NotificationUoWFactory
	customers  ports.CustomerDirectory
	mailer     ports.Mailer
	loc        *time.Location
}

// NewSendCustomerNotificationsCommandHandler creates a handler for the
// customer notification drain.
func NewSendCustomerNotificationsCommandHandler(
	uowFactory NotificationUoWFactory,
	customers ports.CustomerDirectory,
	mailer ports.Mailer,
	loc *time.Location,
) SendCustomerNotificationsCommandHandler {
	return SendCustomerNotificationsCommandHandler{
		uowFactory: uowFactory,
		customers:  customers,
		mailer:     mailer,
		loc:        loc,
	}
}

// Handle processes one queue drain. The whole batch lands in one
// transaction.
func (h SendCustomerNotificationsCommandHandler) Handle(
	ctx context.Context, cmd SendCustomerNotificationsCommand) error {
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

	notificationRepo := uow.NotificationRepository()

	queued, err := notificationRepo.GetQueued(ctx, notificationBatchSize)
	if err != nil {
		return err
	}
	if len(queued) == 0 {
		return ErrNoQueuedNotifications
	}

	for _, row := range queued {
		if err = h.process(ctx, uow, row); err != nil {
			return err
		}
		if err = notificationRepo.Update(ctx, row); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}

// process finalizes one notification: resolves its job, renders, sends, and
// audits. Only persistence errors propagate; everything else lands in the
// notification's final status.
func (h SendCustomerNotificationsCommandHandler) process(
	ctx context.Context,
	uow NotificationUoW,
	row *notification.Notification,
) error {
	// A missing job reference is a permanent failure: no send, no
	// job-referencing audit entry.
	if !row.HasJobReference() {
		return row.MarkFailed()
	}

	aggregate, err := uow.JobRepository().Get(ctx, *row.Job())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return row.MarkFailed()
	}
	if err != nil {
		return err
	}

	subject, body := renderCustomerMessage(row.EventType(), aggregate, h.loc)

	recipient := "unknown"
	contact, sendErr := h.customers.GetContact(ctx, row.Customer())
	if sendErr == nil {
		recipient = contact.Email
		sendErr = h.mailer.Send(ctx, contact.Email, subject, body)
	}

	customerID := row.Customer()
	jobID := aggregate.ID()
	refs := notification.DeliveryRefs{CustomerID: &customerID, JobID: &jobID}

	var entry *notification.DeliveryLogEntry
	var entryErr error
	now := time.Now()

	if sendErr == nil {
		if err = row.MarkSent(); err != nil {
			return err
		}
		entry, entryErr = notification.NewSentLogEntry(
			kernel.NewUUID(), recipient, notification.RecipientCustomer, subject, body, refs, now)
	} else {
		if err = row.MarkFailed(); err != nil {
			return err
		}
		entry, entryErr = notification.NewFailedLogEntry(
			kernel.NewUUID(), recipient, notification.RecipientCustomer,
			subject, body, sendErr.Error(), refs, now)
	}
	if entryErr != nil {
		return entryErr
	}

	return uow.DeliveryLogRepository().Add(ctx, entry)
}

// renderCustomerMessage builds the subject and body for one notification
// from its event type template.
func renderCustomerMessage(
	eventType notification.EventType,
	aggregate *job.Job,
	loc *time.Location,
) (string, string) {
	customer := aggregate.Customer()
	visitAt := aggregate.ScheduledAt().In(loc)
	when := fmt.Sprintf("%s at %s", visitAt.Format("January 2"), visitAt.Format("3:04 PM"))

	switch eventType {
	case notification.JobRescheduled:
		return "Your pool service was rescheduled",
			fmt.Sprintf("Hi %s, your service at %s has moved to %s.", customer.Name, customer.Address, when)
	case notification.JobCompleted:
		return "Your pool service is complete",
			fmt.Sprintf("Hi %s, your service at %s is complete. Thank you!", customer.Name, customer.Address)
	default:
		return "Your pool service is scheduled",
			fmt.Sprintf("Hi %s, your service at %s is scheduled for %s.", customer.Name, customer.Address, when)
	}
}
