package digest

import (
	"errors"
	"fmt"
	"time"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/pkg/errs"
	"fieldservice/internal/pkg/guard"
)

// Domain errors for digests.
var (
	// ErrDigestIsNotConstructed is returned when a Digest was not created
	// through NewDigest or RestoreDigest.
	ErrDigestIsNotConstructed = errors.New("Digest must be created via NewDigest or RestoreDigest constructor")
)

// Window identifies one of the three fixed daily dispatch passes.
type Window int

const (
	// WindowUnknown represents an invalid or undefined window.
	WindowUnknown Window = iota

	// Morning is the full-plan pass: a restatement of the technician's
	// entire route for the day, independent of change-event claiming.
	Morning

	// Midday is the first delta pass over unclaimed change events.
	Midday

	// Evening is the second delta pass over unclaimed change events.
	Evening
)

func getWindowStrings() map[Window]string {
	return map[Window]string{
		WindowUnknown: "UNKNOWN",
		Morning:       "MORNING",
		Midday:        "MIDDAY",
		Evening:       "EVENING",
	}
}

// Validate checks if the Window value is valid.
func (w Window) Validate() error {
	if w < Morning || w > Evening {
		return errs.NewValueIsInvalidErrorWithCause("window is invalid",
			fmt.Errorf("%d is not a valid window", w))
	}
	return nil
}

// IsDelta reports whether the window is one of the change-driven passes.
// Delta passes claim the events they report; the morning full plan does not.
func (w Window) IsDelta() bool {
	return w == Midday || w == Evening
}

// String returns the storage name of the window.
// This method implements the fmt.Stringer interface.
func (w Window) String() string {
	if str, ok := getWindowStrings()[w]; ok {
		return str
	}
	return "UNKNOWN"
}

// WindowFromString parses a stored window name.
func WindowFromString(s string) (Window, error) {
	for w, str := range getWindowStrings() {
		if str == s && w != WindowUnknown {
			return w, nil
		}
	}
	return WindowUnknown, errs.NewValueIsInvalidErrorWithCause("window is invalid",
		fmt.Errorf("%q is not a valid window", s))
}

// Status represents the delivery state of a digest.
//
// State transitions:
//
//	Queued ──┬──> Sent
//	         └──> Failed
//
// Both Sent and Failed are final. There is no retry transition: the audit
// trail, not the digest row, is authoritative for what was attempted.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// Queued means the digest row exists but delivery has not been attempted.
	Queued

	// Sent means the delivery attempt succeeded.
	Sent

	// Failed means the delivery attempt errored out.
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
			fmt.Errorf("%d is not a valid digest status", s))
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
		fmt.Errorf("%q is not a valid digest status", s))
}

// Digest is one dispatched per-technician, per-window message: either a
// morning restatement of the full route or a midday/evening summary of
// accumulated changes. The row is created QUEUED before the send attempt
// and finalized to SENT or FAILED after it.
type Digest struct {
	// id uniquely identifies the digest
	id kernel.UUID

	// technicianID is the recipient technician
	technicianID kernel.UUID

	// routeDate is the calendar day the digest covers
	routeDate kernel.Day

	// window is the dispatch pass that produced the digest
	window Window

	// status is the delivery state
	status Status

	// scheduledFor is when the pass that built the digest was due
	scheduledFor time.Time

	// sentAt is when delivery succeeded (nil unless status is Sent)
	sentAt *time.Time

	// guard ensures the digest was properly constructed
	guard guard.ConstructorGuard
}

// NewDigest creates a digest in Queued status, before any delivery attempt.
func NewDigest(
	id kernel.UUID,
	technicianID kernel.UUID,
	routeDate kernel.Day,
	window Window,
	scheduledFor time.Time,
) (*Digest, error) {
	d := &Digest{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		id.Validate(),
		technicianID.Validate(),
		routeDate.Validate(),
		window.Validate(),
	); err != nil {
		return nil, err
	}
	if scheduledFor.IsZero() {
		return nil, errs.NewValueIsRequiredError("scheduledFor")
	}

	d.id = id
	d.technicianID = technicianID
	d.routeDate = routeDate
	d.window = window
	d.status = Queued
	d.scheduledFor = scheduledFor
	return d, nil
}

// RestoreDigest reconstructs a digest from persistence.
func RestoreDigest(
	id kernel.UUID,
	technicianID kernel.UUID,
	routeDate kernel.Day,
	window Window,
	status Status,
	scheduledFor time.Time,
	sentAt *time.Time,
) (*Digest, error) {
	d, err := NewDigest(id, technicianID, routeDate, window, scheduledFor)
	if err != nil {
		return nil, err
	}
	if err = status.Validate(); err != nil {
		return nil, err
	}

	d.status = status
	d.sentAt = copyTime(sentAt)
	return d, nil
}

// Validate ensures the digest was properly constructed.
func (d *Digest) Validate() error {
	if d == nil {
		return ErrDigestIsNotConstructed
	}
	return d.guard.Validate(ErrDigestIsNotConstructed)
}

// ID returns the digest's unique identifier.
func (d *Digest) ID() kernel.UUID { return d.id }

// Technician returns the recipient technician.
func (d *Digest) Technician() kernel.UUID { return d.technicianID }

// RouteDate returns the calendar day the digest covers.
func (d *Digest) RouteDate() kernel.Day { return d.routeDate }

// Window returns the dispatch pass that produced the digest.
func (d *Digest) Window() Window { return d.window }

// Status returns the delivery state.
func (d *Digest) Status() Status { return d.status }

// ScheduledFor returns when the producing pass was due.
func (d *Digest) ScheduledFor() time.Time { return d.scheduledFor }

// SentAt returns the delivery success time, or nil.
func (d *Digest) SentAt() *time.Time { return copyTime(d.sentAt) }

// MarkSent finalizes the digest after a successful delivery.
func (d *Digest) MarkSent(now time.Time) error {
	if d.status != Queued {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s digest cannot be marked sent", d.status))
	}

	d.status = Sent
	d.sentAt = &now
	return nil
}

// MarkFailed finalizes the digest after a failed delivery attempt.
// No retry follows; the delivery log carries the error.
func (d *Digest) MarkFailed() error {
	if d.status != Queued {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s digest cannot be marked failed", d.status))
	}

	d.status = Failed
	return nil
}
