package job

import (
	"fmt"

	"fieldservice/internal/pkg/errs"
)

// Priority marks how urgently a job must be worked.
// Urgent jobs surface first in operator views; the ordering core itself
// treats priority as metadata and never reorders by it.
type Priority int

const (
	// PriorityUnknown represents an invalid or undefined priority.
	PriorityUnknown Priority = iota

	// PriorityNormal is the default priority for routine visits.
	PriorityNormal

	// PriorityUrgent flags jobs that need same-day attention.
	PriorityUrgent
)

func getPriorityStrings() map[Priority]string {
	return map[Priority]string{
		PriorityUnknown: "Unknown",
		PriorityNormal:  "Normal",
		PriorityUrgent:  "Urgent",
	}
}

// Validate checks if the Priority value is valid.
// Valid priorities are: Normal, Urgent.
func (p Priority) Validate() error {
	if p != PriorityNormal && p != PriorityUrgent {
		return errs.NewValueIsInvalidErrorWithCause("priority is invalid",
			fmt.Errorf("%d is not a valid priority", p))
	}
	return nil
}

// String returns the human-readable name of the priority.
// This method implements the fmt.Stringer interface.
func (p Priority) String() string {
	if str, ok := getPriorityStrings()[p]; ok {
		return str
	}
	return "Unknown"
}

// PriorityFromString parses a stored priority name.
func PriorityFromString(s string) (Priority, error) {
	for p, str := range getPriorityStrings() {
		if str == s && p != PriorityUnknown {
			return p, nil
		}
	}
	return PriorityUnknown, errs.NewValueIsInvalidErrorWithCause("priority is invalid",
		fmt.Errorf("%q is not a valid priority", s))
}
