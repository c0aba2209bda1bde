package digest

import (
	"fmt"

	"fieldservice/internal/pkg/errs"
)

// ChangeType classifies what happened to a job from the technician's point
// of view. It drives both the digest line template and the audit trail.
type ChangeType int

const (
	// ChangeTypeUnknown represents an invalid or undefined change type.
	ChangeTypeUnknown ChangeType = iota

	// RouteAssigned marks the technician's first job of a route day:
	// assignment onto a day where the technician had no other jobs.
	RouteAssigned

	// JobAssigned marks an additional job joining an existing route day.
	JobAssigned

	// JobUnassigned marks a job being taken away from the technician.
	JobUnassigned

	// RouteReordered marks a pure position change within the day,
	// with no day or technician change.
	RouteReordered

	// JobRescheduled marks a visit moved to a different timestamp.
	JobRescheduled
)

func getChangeTypeStrings() map[ChangeType]string {
	return map[ChangeType]string{
		ChangeTypeUnknown: "UNKNOWN",
		RouteAssigned:     "ROUTE_ASSIGNED",
		JobAssigned:       "JOB_ASSIGNED",
		JobUnassigned:     "JOB_UNASSIGNED",
		RouteReordered:    "ROUTE_REORDERED",
		JobRescheduled:    "JOB_RESCHEDULED",
	}
}

// ClassifyAssignment decides how an assignment reads in the digest.
// otherJobsOnDay is the technician's job count on the route day, excluding
// the job being assigned: zero means the assignment opens a new route
// (RouteAssigned), anything else is one more job on it (JobAssigned).
func ClassifyAssignment(otherJobsOnDay int) ChangeType {
	if otherJobsOnDay == 0 {
		return RouteAssigned
	}
	return JobAssigned
}

// Validate checks if the ChangeType value is valid.
func (c ChangeType) Validate() error {
	if c < RouteAssigned || c > JobRescheduled {
		return errs.NewValueIsInvalidErrorWithCause("changeType is invalid",
			fmt.Errorf("%d is not a valid change type", c))
	}
	return nil
}

// String returns the wire/storage name of the change type.
// This method implements the fmt.Stringer interface.
func (c ChangeType) String() string {
	if str, ok := getChangeTypeStrings()[c]; ok {
		return str
	}
	return "UNKNOWN"
}

// ChangeTypeFromString parses a stored change type name.
func ChangeTypeFromString(s string) (ChangeType, error) {
	for ct, str := range getChangeTypeStrings() {
		if str == s && ct != ChangeTypeUnknown {
			return ct, nil
		}
	}
	return ChangeTypeUnknown, errs.NewValueIsInvalidErrorWithCause("changeType is invalid",
		fmt.Errorf("%q is not a valid change type", s))
}
