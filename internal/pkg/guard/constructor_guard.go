// Package guard implements the constructor-guard pattern used by domain
// value objects and entities to reject zero-value instances that bypassed
// their constructors.
package guard

import "errors"

// ErrDefaultConstructorGuard is the default error returned by ConstructorGuard.Validate()
// when a nil error is passed as the validation error. This ensures that validation
// always fails with a meaningful message even if no specific error is provided.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard ensures value objects and entities are only created through
// their designated constructor functions. Embedding a ConstructorGuard in a
// struct makes zero-value instances detectable: the internal flag is only set
// when the object is built via NewConstructorGuard.
//
// Example usage:
//
//	var ErrVisitNotConstructed = errors.New("Visit must be created via NewVisit")
//
//	type Visit struct {
//	    at    time.Time
//	    guard guard.ConstructorGuard
//	}
//
//	func NewVisit(at time.Time) Visit {
//	    return Visit{at: at, guard: guard.NewConstructorGuard()}
//	}
//
//	func (v Visit) Validate() error {
//	    return v.guard.Validate(ErrVisitNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard that marks an object as properly
// constructed. Call it in the constructor of domain objects so they can be
// distinguished from zero-value instances.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate checks whether the guarded object was properly constructed.
// Returns nil for constructed objects. For zero values it returns the
// provided validationError, or ErrDefaultConstructorGuard when nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
