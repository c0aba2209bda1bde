package job

import (
	"errors"
	"time"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/pkg/errs"
	"fieldservice/internal/pkg/guard"
)

// Domain errors for job operations.
var (
	// ErrJobIsNotConstructed is returned when a Job instance was not created through
	// the NewJob or RestoreJob factory methods.
	ErrJobIsNotConstructed = errors.New("Job must be created via NewJob or RestoreJob constructor")
	// ErrCustomerNameIsRequired is returned when creating a job without a customer name.
	ErrCustomerNameIsRequired = errs.NewValueIsRequiredError("customer name")
	// ErrAddressIsRequired is returned when creating a job without a property address.
	ErrAddressIsRequired = errs.NewValueIsRequiredError("address")
	// ErrScheduledAtIsRequired is returned when creating or rescheduling a job without a visit time.
	ErrScheduledAtIsRequired = errs.NewValueIsRequiredError("scheduledAt")
	// ErrSortOrderIsNegative is returned when setting a negative sort position.
	ErrSortOrderIsNegative = errs.NewValueIsInvalidError("sortOrder must not be negative")
)

// Customer is the snapshot of the property owner a job belongs to.
// The scheduling core never dereferences the customer record; it carries
// the identity plus the name and address it needs for digests and
// notifications.
type Customer struct {
	ID      kernel.UUID
	Name    string
	Address string
}

// Validate checks the customer snapshot for required fields.
func (c Customer) Validate() error {
	return errors.Join(
		c.ID.Validate(),
		requireNonEmpty(c.Name, ErrCustomerNameIsRequired),
		requireNonEmpty(c.Address, ErrAddressIsRequired),
	)
}

// Service carries the visit metadata (type, tier, checklist).
// It is opaque to the scheduling core: admin tooling writes it,
// digests echo it, nothing here interprets it.
type Service struct {
	Type      string
	Tier      string
	Checklist []string
}

// Job represents a single scheduled service visit. It is the aggregate root
// that the ordering model, change events, and digests all hang off.
//
// Job follows these invariants:
//   - Must have a valid unique identifier and customer snapshot
//   - Must have a scheduled visit timestamp
//   - Sort position, when present, is a non-negative integer; among all jobs
//     on the same calendar day the positions form a contiguous 0-based
//     sequence (maintained by the schedule board, not by the aggregate)
//   - Status transitions follow the visit state machine in status.go
//   - Can only be created through NewJob or RestoreJob
//
// The struct uses private fields to ensure encapsulation and maintains
// its invariants through validated methods.
type Job struct {
	// id uniquely identifies the job
	id kernel.UUID

	// customer is the property/customer snapshot the visit belongs to
	customer Customer

	// scheduledAt is the planned visit timestamp (date and time-of-day)
	scheduledAt time.Time

	// sortOrder is the manual rank within the technician's day
	// (nil means "order by scheduled time")
	sortOrder *int

	// technicianID is the assigned technician (nil if unassigned)
	technicianID *kernel.UUID

	// status represents the current state in the visit lifecycle
	status Status

	// priority flags urgent visits
	priority Priority

	// service is the opaque visit metadata
	service Service

	// guard ensures the job was properly constructed
	guard guard.ConstructorGuard
}

// NewJob creates a new Job with validation. This is the primary way to create
// a job from operator input.
//
// The initial status is computed from the visit time: jobs due after the end
// of the current day (in loc) start Scheduled, jobs due today start Pending.
// New jobs carry no sort position and no technician; assignment is a separate
// first-class action so that it emits the proper change event.
//
// Parameters:
//   - id: Unique identifier for the job (must be a valid UUID)
//   - customer: Customer snapshot (identity, name, address all required)
//   - scheduledAt: Planned visit timestamp (must be non-zero)
//   - priority: Normal or Urgent
//   - service: Opaque visit metadata
//   - now: The current instant, used only for the initial status rule
//   - loc: The service time zone the end-of-day boundary is evaluated in
//
// Returns the created job, or a validation error aggregating every invalid
// parameter.
func NewJob(
	id kernel.UUID,
	customer Customer,
	scheduledAt time.Time,
	priority Priority,
	service Service,
	now time.Time,
	loc *time.Location,
) (*Job, error) {
	j := &Job{
		priority: priority,
		service:  service,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		j.setID(id),
		j.setCustomer(customer),
		j.setScheduledAt(scheduledAt),
		priority.Validate(),
	); err != nil {
		return nil, err
	}

	j.status = InitialStatus(scheduledAt, now, loc)
	return j, nil
}

// RestoreJob reconstructs a Job aggregate from persistent storage.
// Unlike NewJob it does not recompute the initial status; the persisted
// status, sort position, and technician assignment are restored verbatim.
func RestoreJob(
	id kernel.UUID,
	customer Customer,
	scheduledAt time.Time,
	sortOrder *int,
	technicianID *kernel.UUID,
	status Status,
	priority Priority,
	service Service,
) (*Job, error) {
	j := &Job{
		service: service,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		j.setID(id),
		j.setCustomer(customer),
		j.setScheduledAt(scheduledAt),
		status.Validate(),
		priority.Validate(),
	); err != nil {
		return nil, err
	}

	if sortOrder != nil {
		if err := j.SetSortOrder(*sortOrder); err != nil {
			return nil, err
		}
	}
	if technicianID != nil {
		if err := technicianID.Validate(); err != nil {
			return nil, err
		}
		techID := *technicianID
		j.technicianID = &techID
	}

	j.status = status
	j.priority = priority
	return j, nil
}

// Validate ensures the Job instance was properly constructed through a factory method.
func (j *Job) Validate() error {
	if j == nil {
		return ErrJobIsNotConstructed
	}
	return j.guard.Validate(ErrJobIsNotConstructed)
}

// IsEqual compares two jobs by their unique identifiers.
func (j *Job) IsEqual(other *Job) bool {
	return other != nil && j.id.IsEqual(other.id)
}

// ID returns the job's unique identifier.
func (j *Job) ID() kernel.UUID {
	return j.id
}

// Customer returns the customer snapshot the visit belongs to.
func (j *Job) Customer() Customer {
	return j.customer
}

// ScheduledAt returns the planned visit timestamp.
func (j *Job) ScheduledAt() time.Time {
	return j.scheduledAt
}

// Day returns the calendar day the visit falls on in the given time zone.
func (j *Job) Day(loc *time.Location) kernel.Day {
	return kernel.DayOf(j.scheduledAt, loc)
}

// SortOrder returns the manual rank within the day, or nil when the job
// falls back to scheduled-time ordering.
func (j *Job) SortOrder() *int {
	if j.sortOrder == nil {
		return nil
	}
	v := *j.sortOrder
	return &v
}

// Technician returns the assigned technician's ID, or nil if unassigned.
func (j *Job) Technician() *kernel.UUID {
	if j.technicianID == nil {
		return nil
	}
	v := *j.technicianID
	return &v
}

// IsAssigned reports whether a technician is assigned to the job.
func (j *Job) IsAssigned() bool {
	return j.technicianID != nil
}

// Status returns the current status of the job.
func (j *Job) Status() Status {
	return j.status
}

// Priority returns the job's priority.
func (j *Job) Priority() Priority {
	return j.priority
}

// Service returns the opaque visit metadata.
func (j *Job) Service() Service {
	return j.service
}

// Reschedule moves the visit to a new timestamp.
// Completed jobs cannot be rescheduled.
func (j *Job) Reschedule(at time.Time) error {
	if err := j.status.ValidateReschedulable(); err != nil {
		return err
	}
	return j.setScheduledAt(at)
}

// SetSortOrder sets the manual rank within the technician's day.
// The schedule board is responsible for keeping positions contiguous per day;
// the aggregate only rejects negative values.
func (j *Job) SetSortOrder(position int) error {
	if position < 0 {
		return ErrSortOrderIsNegative
	}
	j.sortOrder = &position
	return nil
}

// ClearSortOrder drops the manual rank, reverting the job to
// scheduled-time ordering.
func (j *Job) ClearSortOrder() {
	j.sortOrder = nil
}

// AssignTechnician assigns the job to a technician. Reassignment of an
// already-assigned job is allowed; completed jobs are frozen.
func (j *Job) AssignTechnician(technicianID kernel.UUID) error {
	if err := technicianID.Validate(); err != nil {
		return err
	}
	if j.status.IsFinal() {
		return errs.NewValueIsInvalidError("cannot assign a completed job")
	}

	j.technicianID = &technicianID
	return nil
}

// Unassign removes the technician from the job. Unassigning an unassigned
// job is a no-op.
func (j *Job) Unassign() error {
	if j.status.IsFinal() {
		return errs.NewValueIsInvalidError("cannot unassign a completed job")
	}

	j.technicianID = nil
	return nil
}

// MakePending moves a Scheduled job to Pending when its day arrives.
func (j *Job) MakePending() error {
	newStatus, err := j.status.MakePending()
	if err != nil {
		return err
	}
	j.status = newStatus
	return nil
}

// Depart marks the technician as traveling to the property.
func (j *Job) Depart() error {
	newStatus, err := j.status.Depart()
	if err != nil {
		return err
	}
	j.status = newStatus
	return nil
}

// Begin marks the visit as underway.
func (j *Job) Begin() error {
	newStatus, err := j.status.Begin()
	if err != nil {
		return err
	}
	j.status = newStatus
	return nil
}

// Complete marks the visit as finished. This is a final state.
func (j *Job) Complete() error {
	newStatus, err := j.status.Complete()
	if err != nil {
		return err
	}
	j.status = newStatus
	return nil
}

// setID validates and sets the job's unique identifier.
func (j *Job) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	j.id = id
	return nil
}

// setCustomer validates and sets the customer snapshot.
func (j *Job) setCustomer(customer Customer) error {
	if err := customer.Validate(); err != nil {
		return err
	}
	j.customer = customer
	return nil
}

// setScheduledAt validates and sets the visit timestamp.
func (j *Job) setScheduledAt(at time.Time) error {
	if at.IsZero() {
		return ErrScheduledAtIsRequired
	}
	j.scheduledAt = at
	return nil
}

func requireNonEmpty(s string, err error) error {
	if s == "" {
		return err
	}
	return nil
}
