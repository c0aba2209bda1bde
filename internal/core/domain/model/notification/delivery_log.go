package notification

import (
	"errors"
	"fmt"
	"time"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/pkg/errs"
	"fieldservice/internal/pkg/guard"
)

// ErrDeliveryLogEntryIsNotConstructed is returned when a DeliveryLogEntry was
// not created through NewDeliveryLogEntry or RestoreDeliveryLogEntry.
var ErrDeliveryLogEntryIsNotConstructed = errors.New(
	"DeliveryLogEntry must be created via NewDeliveryLogEntry or RestoreDeliveryLogEntry constructor")

// RecipientRole distinguishes who an audit row was addressed to.
type RecipientRole int

const (
	// RecipientRoleUnknown represents an invalid or undefined role.
	RecipientRoleUnknown RecipientRole = iota

	// RecipientCustomer marks a customer-facing delivery.
	RecipientCustomer

	// RecipientTechnician marks a technician-facing delivery.
	RecipientTechnician
)

func getRecipientRoleStrings() map[RecipientRole]string {
	return map[RecipientRole]string{
		RecipientRoleUnknown: "UNKNOWN",
		RecipientCustomer:    "CUSTOMER",
		RecipientTechnician:  "TECH",
	}
}

// Validate checks if the RecipientRole value is valid.
func (r RecipientRole) Validate() error {
	if r < RecipientCustomer || r > RecipientTechnician {
		return errs.NewValueIsInvalidErrorWithCause("recipientRole is invalid",
			fmt.Errorf("%d is not a valid recipient role", r))
	}
	return nil
}

// String returns the storage name of the role.
// This method implements the fmt.Stringer interface.
func (r RecipientRole) String() string {
	if str, ok := getRecipientRoleStrings()[r]; ok {
		return str
	}
	return "UNKNOWN"
}

// RecipientRoleFromString parses a stored role name.
func RecipientRoleFromString(s string) (RecipientRole, error) {
	for r, str := range getRecipientRoleStrings() {
		if str == s && r != RecipientRoleUnknown {
			return r, nil
		}
	}
	return RecipientRoleUnknown, errs.NewValueIsInvalidErrorWithCause("recipientRole is invalid",
		fmt.Errorf("%q is not a valid recipient role", s))
}

// DeliveryRefs holds the optional links from an audit row back to the records
// that produced the delivery. All fields are optional; whichever are set must
// be valid IDs.
type DeliveryRefs struct {
	CustomerID   *kernel.UUID
	TechnicianID *kernel.UUID
	JobID        *kernel.UUID
	DigestID     *kernel.UUID
}

func (r DeliveryRefs) validate() error {
	return errors.Join(
		validateOptionalID(r.CustomerID, "customerID"),
		validateOptionalID(r.TechnicianID, "technicianID"),
		validateOptionalID(r.JobID, "jobID"),
		validateOptionalID(r.DigestID, "digestID"),
	)
}

func validateOptionalID(id *kernel.UUID, name string) error {
	if id == nil {
		return nil
	}
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause(name+" is invalid", err)
	}
	return nil
}

// DeliveryLogEntry is one append-only audit row: a single delivery attempt,
// successful or not, with a snapshot of what was sent to whom. Entries are
// never updated and never deleted; they are the only place failures surface.
type DeliveryLogEntry struct {
	// id uniquely identifies the entry
	id kernel.UUID

	// recipient is the address the attempt targeted
	recipient string

	// role says whether the recipient was a customer or a technician
	role RecipientRole

	// subject and body snapshot what was (or would have been) sent
	subject string
	body    string

	// succeeded is true for SENT attempts
	succeeded bool

	// errorMessage carries the failure reason (empty on success)
	errorMessage string

	// refs link the entry back to its originating records
	refs DeliveryRefs

	// createdAt is when the attempt was logged
	createdAt time.Time

	// guard ensures the entry was properly constructed
	guard guard.ConstructorGuard
}

// NewSentLogEntry records a successful delivery attempt.
func NewSentLogEntry(
	id kernel.UUID,
	recipient string,
	role RecipientRole,
	subject, body string,
	refs DeliveryRefs,
	now time.Time,
) (*DeliveryLogEntry, error) {
	return newDeliveryLogEntry(id, recipient, role, subject, body, true, "", refs, now)
}

// NewFailedLogEntry records a failed delivery attempt with its reason.
func NewFailedLogEntry(
	id kernel.UUID,
	recipient string,
	role RecipientRole,
	subject, body string,
	errorMessage string,
	refs DeliveryRefs,
	now time.Time,
) (*DeliveryLogEntry, error) {
	if errorMessage == "" {
		return nil, errs.NewValueIsRequiredError("errorMessage")
	}
	return newDeliveryLogEntry(id, recipient, role, subject, body, false, errorMessage, refs, now)
}

// RestoreDeliveryLogEntry reconstructs an entry from persistence.
func RestoreDeliveryLogEntry(
	id kernel.UUID,
	recipient string,
	role RecipientRole,
	subject, body string,
	succeeded bool,
	errorMessage string,
	refs DeliveryRefs,
	createdAt time.Time,
) (*DeliveryLogEntry, error) {
	return newDeliveryLogEntry(id, recipient, role, subject, body, succeeded, errorMessage, refs, createdAt)
}

func newDeliveryLogEntry(
	id kernel.UUID,
	recipient string,
	role RecipientRole,
	subject, body string,
	succeeded bool,
	errorMessage string,
	refs DeliveryRefs,
	createdAt time.Time,
) (*DeliveryLogEntry, error) {
	e := &DeliveryLogEntry{
		guard: guard.NewConstructorGuard(),
	}

	var recipientErr error
	if recipient == "" {
		recipientErr = errs.NewValueIsRequiredError("recipient")
	}
	if err := errors.Join(
		id.Validate(),
		role.Validate(),
		recipientErr,
		refs.validate(),
	); err != nil {
		return nil, err
	}
	if createdAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("createdAt")
	}

	e.id = id
	e.recipient = recipient
	e.role = role
	e.subject = subject
	e.body = body
	e.succeeded = succeeded
	e.errorMessage = errorMessage
	e.refs = refs
	e.createdAt = createdAt
	return e, nil
}

// Validate ensures the entry was properly constructed.
func (e *DeliveryLogEntry) Validate() error {
	if e == nil {
		return ErrDeliveryLogEntryIsNotConstructed
	}
	return e.guard.Validate(ErrDeliveryLogEntryIsNotConstructed)
}

// ID returns the entry's unique identifier.
func (e *DeliveryLogEntry) ID() kernel.UUID { return e.id }

// Recipient returns the targeted address.
func (e *DeliveryLogEntry) Recipient() string { return e.recipient }

// Role returns the recipient's role.
func (e *DeliveryLogEntry) Role() RecipientRole { return e.role }

// Subject returns the snapshotted subject line.
func (e *DeliveryLogEntry) Subject() string { return e.subject }

// Body returns the snapshotted message body.
func (e *DeliveryLogEntry) Body() string { return e.body }

// Succeeded reports whether the attempt went through.
func (e *DeliveryLogEntry) Succeeded() bool { return e.succeeded }

// ErrorMessage returns the failure reason, empty on success.
func (e *DeliveryLogEntry) ErrorMessage() string { return e.errorMessage }

// Refs returns the entry's traceability links.
func (e *DeliveryLogEntry) Refs() DeliveryRefs {
	refs := DeliveryRefs{}
	refs.CustomerID = copyID(e.refs.CustomerID)
	refs.TechnicianID = copyID(e.refs.TechnicianID)
	refs.JobID = copyID(e.refs.JobID)
	refs.DigestID = copyID(e.refs.DigestID)
	return refs
}

// CreatedAt returns when the attempt was logged.
func (e *DeliveryLogEntry) CreatedAt() time.Time { return e.createdAt }

func copyID(id *kernel.UUID) *kernel.UUID {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
