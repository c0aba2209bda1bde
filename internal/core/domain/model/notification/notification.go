package notification

import (
	"errors"
	"fmt"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/pkg/errs"
	"fieldservice/internal/pkg/guard"
)

// Domain errors for notifications.
var (
	// ErrNotificationIsNotConstructed is returned when a Notification was not created
	// through NewNotification or RestoreNotification.
	ErrNotificationIsNotConstructed = errors.New(
		"Notification must be created via NewNotification or RestoreNotification constructor")
)

// EventType is the customer-facing event a notification reports.
// The dispatcher only drains event types it knows how to render; rows with
// other types stay queued untouched.
type EventType int

const (
	// EventTypeUnknown represents an invalid or undefined event type.
	EventTypeUnknown EventType = iota

	// JobScheduled tells the customer a visit has been booked.
	JobScheduled

	// JobRescheduled tells the customer their visit moved.
	JobRescheduled

	// JobCompleted tells the customer the visit is done.
	JobCompleted
)

func getEventTypeStrings() map[EventType]string {
	return map[EventType]string{
		EventTypeUnknown: "UNKNOWN",
		JobScheduled:     "JOB_SCHEDULED",
		JobRescheduled:   "JOB_RESCHEDULED",
		JobCompleted:     "JOB_COMPLETED",
	}
}

// KnownEventTypes returns the event types the dispatcher drains, in a
// stable order suitable for query filters.
func KnownEventTypes() []EventType {
	return []EventType{JobScheduled, JobRescheduled, JobCompleted}
}

// Validate checks if the EventType value is valid.
func (e EventType) Validate() error {
	if e < JobScheduled || e > JobCompleted {
		return errs.NewValueIsInvalidErrorWithCause("eventType is invalid",
			fmt.Errorf("%d is not a valid event type", e))
	}
	return nil
}

// String returns the storage name of the event type.
// This method implements the fmt.Stringer interface.
func (e EventType) String() string {
	if str, ok := getEventTypeStrings()[e]; ok {
		return str
	}
	return "UNKNOWN"
}

// EventTypeFromString parses a stored event type name.
func EventTypeFromString(s string) (EventType, error) {
	for et, str := range getEventTypeStrings() {
		if str == s && et != EventTypeUnknown {
			return et, nil
		}
	}
	return EventTypeUnknown, errs.NewValueIsInvalidErrorWithCause("eventType is invalid",
		fmt.Errorf("%q is not a valid event type", s))
}

// Status represents the delivery state of a notification.
//
// State transitions:
//
//	Queued ──┬──> Sent
//	         └──> Failed
//
// Failed is permanent: a notification that cannot resolve its job reference
// or whose send attempt errors is not retried.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// Queued means the notification is waiting for the dispatcher.
	Queued

	// Sent means the delivery attempt succeeded.
	Sent

	// Failed means the notification failed permanently.
	Failed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown: "Unknown",
		Queued:        "QUEUED",
		Sent:          "SENT",
		Failed:        "FAILED",
	}
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if s < Queued || s > Failed {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid notification status", s))
	}
	return nil
}

// String returns the storage name of the status.
// This method implements the fmt.Stringer interface.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// StatusFromString parses a stored status name.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != StatusUnknown {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status is invalid",
		fmt.Errorf("%q is not a valid notification status", s))
}

// Notification is one queued customer-facing message. It references the job
// it talks about; a notification whose job reference is missing or cannot be
// resolved fails permanently when the dispatcher picks it up.
type Notification struct {
	// id uniquely identifies the notification
	id kernel.UUID

	// customerID is the recipient customer
	customerID kernel.UUID

	// eventType selects the message template
	eventType EventType

	// jobID references the job the message is about (nil means the
	// producer failed to attach one; such rows fail on drain)
	jobID *kernel.UUID

	// status is the delivery state
	status Status

	// guard ensures the notification was properly constructed
	guard guard.ConstructorGuard
}

// NewNotification creates a queued notification referencing a job.
func NewNotification(
	id kernel.UUID,
	customerID kernel.UUID,
	eventType EventType,
	jobID kernel.UUID,
) (*Notification, error) {
	n := &Notification{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		id.Validate(),
		customerID.Validate(),
		eventType.Validate(),
		jobID.Validate(),
	); err != nil {
		return nil, err
	}

	n.id = id
	n.customerID = customerID
	n.eventType = eventType
	n.jobID = &jobID
	n.status = Queued
	return n, nil
}

// RestoreNotification reconstructs a notification from persistence.
// Unlike NewNotification it tolerates a missing job reference: such rows
// exist and must be drainable into Failed.
func RestoreNotification(
	id kernel.UUID,
	customerID kernel.UUID,
	eventType EventType,
	jobID *kernel.UUID,
	status Status,
) (*Notification, error) {
	n := &Notification{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		id.Validate(),
		customerID.Validate(),
		eventType.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	n.id = id
	n.customerID = customerID
	n.eventType = eventType
	if jobID != nil {
		ref := *jobID
		n.jobID = &ref
	}
	n.status = status
	return n, nil
}

// Validate ensures the notification was properly constructed.
func (n *Notification) Validate() error {
	if n == nil {
		return ErrNotificationIsNotConstructed
	}
	return n.guard.Validate(ErrNotificationIsNotConstructed)
}

// ID returns the notification's unique identifier.
func (n *Notification) ID() kernel.UUID { return n.id }

// Customer returns the recipient customer.
func (n *Notification) Customer() kernel.UUID { return n.customerID }

// EventType returns the message template selector.
func (n *Notification) EventType() EventType { return n.eventType }

// Job returns the referenced job's ID, or nil when the reference is missing.
func (n *Notification) Job() *kernel.UUID {
	if n.jobID == nil {
		return nil
	}
	v := *n.jobID
	return &v
}

// HasJobReference reports whether the notification carries a usable job
// reference.
func (n *Notification) HasJobReference() bool {
	return n.jobID != nil && n.jobID.Validate() == nil
}

// Status returns the delivery state.
func (n *Notification) Status() Status { return n.status }

// MarkSent finalizes the notification after a successful delivery.
func (n *Notification) MarkSent() error {
	if n.status != Queued {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s notification cannot be marked sent", n.status))
	}

	n.status = Sent
	return nil
}

// MarkFailed finalizes the notification permanently. Used both for send
// failures and for rows whose job reference cannot be resolved.
func (n *Notification) MarkFailed() error {
	if n.status != Queued {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s notification cannot be marked failed", n.status))
	}

	n.status = Failed
	return nil
}
