package job

import (
	"fmt"
	"time"

	"fieldservice/internal/pkg/errs"
)

// Status represents the lifecycle state of a service job.
// It implements a state machine with defined transitions to ensure
// jobs follow the correct visit workflow.
//
// State transitions:
//
//	Scheduled ──> Pending ──┬──> OnTheWay ──> InProgress ──┐
//	                        │                              ├──> Completed
//	                        └──────────────────────────────┘
//
// The OnTheWay/InProgress leg is optional: a visit may be completed
// directly from Pending when the technician logs it after the fact.
//
// Status is a value object that validates state transitions
// and provides string representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Scheduled is the initial status for jobs whose visit lies beyond
	// the end of the current day. They become Pending when their day arrives.
	Scheduled

	// Pending indicates the job is due today and waiting for the technician.
	Pending

	// OnTheWay indicates the technician is traveling to the property.
	OnTheWay

	// InProgress indicates the visit is underway at the property.
	InProgress

	// Completed indicates the visit has been finished.
	// This is a final state with no further transitions allowed.
	Completed
)

// getStatusStrings returns a map of Status values to their string representations.
// All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "Unknown",
		Scheduled:  "Scheduled",
		Pending:    "Pending",
		OnTheWay:   "OnTheWay",
		InProgress: "InProgress",
		Completed:  "Completed",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Only valid statuses are included to support validation.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Scheduled:  "Scheduled",
		Pending:    "Pending",
		OnTheWay:   "OnTheWay",
		InProgress: "InProgress",
		Completed:  "Completed",
	}
}

// InitialStatus computes the status a newly created or rescheduled job
// starts in. A job whose visit timestamp lies beyond the end of the current
// day (in the service time zone) is Scheduled; anything due today or earlier
// is immediately Pending.
func InitialStatus(scheduledAt, now time.Time, loc *time.Location) Status {
	local := now.In(loc)
	endOfToday := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, 1)
	if scheduledAt.Before(endOfToday) {
		return Pending
	}
	return Scheduled
}

// Validate checks if the Status value is valid.
//
// Valid statuses are: Scheduled, Pending, OnTheWay, InProgress, Completed.
// Unknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Returns "Unknown" for invalid status values.
// This method implements the fmt.Stringer interface and is safe
// to call on any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// StatusFromString parses a stored status name.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid",
		fmt.Errorf("%q is not a valid status", s))
}

// IsFinal reports whether the status is terminal.
func (s Status) IsFinal() bool {
	return s == Completed
}

// MakePending transitions the status to Pending when the job's day arrives.
//
// Valid transitions:
//   - Scheduled -> Pending
//
// Returns (0, error) if the transition is not allowed from the current status.
func (s Status) MakePending() (Status, error) {
	if s != Scheduled {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to make pending", s.String()),
		)
	}
	return Pending, nil
}

// Depart transitions the status to OnTheWay.
//
// Valid transitions:
//   - Pending -> OnTheWay
//
// Returns (0, error) if the transition is not allowed from the current status.
func (s Status) Depart() (Status, error) {
	if s != Pending {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to depart from", s.String()),
		)
	}
	return OnTheWay, nil
}

// Begin transitions the status to InProgress.
//
// Valid transitions:
//   - OnTheWay -> InProgress
//
// Returns (0, error) if the transition is not allowed from the current status.
func (s Status) Begin() (Status, error) {
	if s != OnTheWay {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to begin work from", s.String()),
		)
	}
	return InProgress, nil
}

// Complete transitions the status to Completed.
//
// Valid transitions:
//   - Pending -> Completed (visit logged without travel tracking)
//   - OnTheWay -> Completed
//   - InProgress -> Completed
//
// Returns (0, error) if the transition is not allowed from the current status.
func (s Status) Complete() (Status, error) {
	if s != Pending && s != OnTheWay && s != InProgress {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to complete", s.String()),
		)
	}
	return Completed, nil
}

// ValidateReschedulable checks that a job in this status may still have its
// visit moved. Completed jobs are frozen.
func (s Status) ValidateReschedulable() error {
	if s == Completed {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to reschedule", s.String()),
		)
	}
	return nil
}
