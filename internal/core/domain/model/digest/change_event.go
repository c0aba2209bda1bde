package digest

import (
	"errors"
	"fmt"
	"time"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/pkg/errs"
	"fieldservice/internal/pkg/guard"
)

// Domain errors for change events.
var (
	// ErrChangeEventIsNotConstructed is returned when a ChangeEvent was not created
	// through NewChangeEvent or RestoreChangeEvent.
	ErrChangeEventIsNotConstructed = errors.New(
		"ChangeEvent must be created via NewChangeEvent or RestoreChangeEvent constructor")
	// ErrChangeEventAlreadyClaimed is returned when claiming an event that already
	// belongs to a digest.
	ErrChangeEventAlreadyClaimed = errors.New("change event is already claimed by a digest")
)

// clockFormat is how visit times render inside digest lines.
const clockFormat = "3:04 PM"

// Payload is the snapshot a change event carries: enough to render a digest
// line without dereferencing live customer or job records. Which fields are
// populated depends on the change type; the typed constructors below are the
// only way to build one, so every event's payload matches its type.
type Payload struct {
	customerName string
	address      string
	fromAt       *time.Time
	toAt         *time.Time
	guard        guard.ConstructorGuard
}

// NewAssignmentPayload builds the payload for RouteAssigned / JobAssigned
// events: customer, address, and the visit time the job lands on.
func NewAssignmentPayload(customerName, address string, toAt time.Time) (Payload, error) {
	p := Payload{
		customerName: customerName,
		address:      address,
		toAt:         &toAt,
		guard:        guard.NewConstructorGuard(),
	}
	return p, p.validateSnapshot()
}

// NewUnassignmentPayload builds the payload for JobUnassigned events.
func NewUnassignmentPayload(customerName, address string) (Payload, error) {
	p := Payload{
		customerName: customerName,
		address:      address,
		guard:        guard.NewConstructorGuard(),
	}
	return p, p.validateSnapshot()
}

// NewReorderPayload builds the payload for RouteReordered events.
func NewReorderPayload(customerName, address string) (Payload, error) {
	p := Payload{
		customerName: customerName,
		address:      address,
		guard:        guard.NewConstructorGuard(),
	}
	return p, p.validateSnapshot()
}

// NewReschedulePayload builds the payload for JobRescheduled events,
// carrying both the prior and the new visit timestamp.
func NewReschedulePayload(customerName, address string, fromAt, toAt time.Time) (Payload, error) {
	p := Payload{
		customerName: customerName,
		address:      address,
		fromAt:       &fromAt,
		toAt:         &toAt,
		guard:        guard.NewConstructorGuard(),
	}
	return p, p.validateSnapshot()
}

// RestorePayload reconstructs a payload from persistence.
func RestorePayload(customerName, address string, fromAt, toAt *time.Time) (Payload, error) {
	p := Payload{
		customerName: customerName,
		address:      address,
		fromAt:       fromAt,
		toAt:         toAt,
		guard:        guard.NewConstructorGuard(),
	}
	return p, p.validateSnapshot()
}

func (p Payload) validateSnapshot() error {
	return errors.Join(
		requireNonEmpty(p.customerName, errs.NewValueIsRequiredError("customer name")),
		requireNonEmpty(p.address, errs.NewValueIsRequiredError("address")),
	)
}

// CustomerName returns the snapshotted customer name.
func (p Payload) CustomerName() string { return p.customerName }

// Address returns the snapshotted property address.
func (p Payload) Address() string { return p.address }

// FromScheduledAt returns the prior visit time for reschedules, or nil.
func (p Payload) FromScheduledAt() *time.Time { return copyTime(p.fromAt) }

// ToScheduledAt returns the new visit time, or nil for change types that
// carry none.
func (p Payload) ToScheduledAt() *time.Time { return copyTime(p.toAt) }

// Validate checks the payload was built via a constructor.
func (p Payload) Validate() error {
	return p.guard.Validate(errs.NewValueIsRequiredError("payload must be created via its constructors"))
}

// ChangeEvent records one schedule change concerning one technician,
// queued for inclusion in a delta digest. Events are immutable once written,
// with a single exception: claiming. Claim stamps the event with the digest
// that reported it, exactly once, which is what keeps a bounced or repeated
// pass from re-notifying the same change. Events are never deleted; they
// are the audit trail.
type ChangeEvent struct {
	// id uniquely identifies the event
	id kernel.UUID

	// technicianID is the technician the change concerns
	technicianID kernel.UUID

	// jobID is the job the change concerns
	jobID kernel.UUID

	// routeDate is the calendar day of the route the change belongs to
	routeDate kernel.Day

	// changeType classifies the change
	changeType ChangeType

	// payload is the snapshot used to render the digest line
	payload Payload

	// digestID is the claiming digest (nil means unclaimed)
	digestID *kernel.UUID

	// guard ensures the event was properly constructed
	guard guard.ConstructorGuard
}

// NewChangeEvent creates an unclaimed change event.
// The payload must carry the fields its change type renders: assignment and
// reschedule types require a new visit time, reschedules additionally the
// prior one.
func NewChangeEvent(
	id kernel.UUID,
	technicianID kernel.UUID,
	jobID kernel.UUID,
	routeDate kernel.Day,
	changeType ChangeType,
	payload Payload,
) (*ChangeEvent, error) {
	e := &ChangeEvent{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		e.setIdentity(id, technicianID, jobID),
		routeDate.Validate(),
		changeType.Validate(),
		payload.Validate(),
		validatePayloadForType(changeType, payload),
	); err != nil {
		return nil, err
	}

	e.routeDate = routeDate
	e.changeType = changeType
	e.payload = payload
	return e, nil
}

// RestoreChangeEvent reconstructs an event from persistence, including its
// claim state.
func RestoreChangeEvent(
	id kernel.UUID,
	technicianID kernel.UUID,
	jobID kernel.UUID,
	routeDate kernel.Day,
	changeType ChangeType,
	payload Payload,
	digestID *kernel.UUID,
) (*ChangeEvent, error) {
	e, err := NewChangeEvent(id, technicianID, jobID, routeDate, changeType, payload)
	if err != nil {
		return nil, err
	}

	if digestID != nil {
		if err = digestID.Validate(); err != nil {
			return nil, err
		}
		claimedBy := *digestID
		e.digestID = &claimedBy
	}
	return e, nil
}

// validatePayloadForType enforces the per-type field requirements.
func validatePayloadForType(changeType ChangeType, payload Payload) error {
	switch changeType {
	case RouteAssigned, JobAssigned:
		if payload.toAt == nil {
			return errs.NewValueIsRequiredError("assignment payload requires a visit time")
		}
	case JobRescheduled:
		if payload.fromAt == nil || payload.toAt == nil {
			return errs.NewValueIsRequiredError("reschedule payload requires prior and new visit times")
		}
	case JobUnassigned, RouteReordered:
		// Snapshot only.
	case ChangeTypeUnknown:
		return errs.NewValueIsInvalidError("changeType is invalid")
	}
	return nil
}

// Validate ensures the event was properly constructed.
func (e *ChangeEvent) Validate() error {
	if e == nil {
		return ErrChangeEventIsNotConstructed
	}
	return e.guard.Validate(ErrChangeEventIsNotConstructed)
}

// ID returns the event's unique identifier.
func (e *ChangeEvent) ID() kernel.UUID { return e.id }

// Technician returns the technician the change concerns.
func (e *ChangeEvent) Technician() kernel.UUID { return e.technicianID }

// Job returns the job the change concerns.
func (e *ChangeEvent) Job() kernel.UUID { return e.jobID }

// RouteDate returns the calendar day the change belongs to.
func (e *ChangeEvent) RouteDate() kernel.Day { return e.routeDate }

// Type returns the change classification.
func (e *ChangeEvent) Type() ChangeType { return e.changeType }

// Payload returns the rendering snapshot.
func (e *ChangeEvent) Payload() Payload { return e.payload }

// Digest returns the claiming digest's ID, or nil while unclaimed.
func (e *ChangeEvent) Digest() *kernel.UUID {
	if e.digestID == nil {
		return nil
	}
	v := *e.digestID
	return &v
}

// IsClaimed reports whether the event already belongs to a digest.
func (e *ChangeEvent) IsClaimed() bool {
	return e.digestID != nil
}

// Claim stamps the event with the digest that reported it. An event can be
// claimed exactly once; claiming happens after the send attempt regardless
// of its outcome, so a failed send is not re-notified on the next pass.
func (e *ChangeEvent) Claim(digestID kernel.UUID) error {
	if err := digestID.Validate(); err != nil {
		return err
	}
	if e.digestID != nil {
		return ErrChangeEventAlreadyClaimed
	}

	e.digestID = &digestID
	return nil
}

// Line renders the event as a digest line, one per change, using the fixed
// per-type templates. Times render in the service time zone.
func (e *ChangeEvent) Line(loc *time.Location) string {
	customer := e.payload.customerName
	address := e.payload.address

	switch e.changeType {
	case RouteAssigned:
		return fmt.Sprintf("New route assigned: %s - %s (%s)", customer, address, clock(e.payload.toAt, loc))
	case JobAssigned:
		return fmt.Sprintf("Job assigned: %s - %s (%s)", customer, address, clock(e.payload.toAt, loc))
	case JobUnassigned:
		return fmt.Sprintf("Job removed: %s - %s", customer, address)
	case RouteReordered:
		return fmt.Sprintf("Order adjusted: %s - %s", customer, address)
	case JobRescheduled:
		return fmt.Sprintf("Rescheduled: %s - %s (%s -> %s)",
			customer, address, clock(e.payload.fromAt, loc), clock(e.payload.toAt, loc))
	default:
		return fmt.Sprintf("Updated: %s - %s (%s)", customer, address, clock(e.payload.toAt, loc))
	}
}

func (e *ChangeEvent) setIdentity(id, technicianID, jobID kernel.UUID) error {
	if err := errors.Join(id.Validate(), technicianID.Validate(), jobID.Validate()); err != nil {
		return err
	}
	e.id = id
	e.technicianID = technicianID
	e.jobID = jobID
	return nil
}

// clock formats an optional visit time for a digest line.
func clock(t *time.Time, loc *time.Location) string {
	if t == nil {
		return "time pending"
	}
	return t.In(loc).Format(clockFormat)
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func requireNonEmpty(s string, err error) error {
	if s == "" {
		return err
	}
	return nil
}
