// Package guard provides a defensive construction marker for domain objects.
// Embedding a ConstructorGuard in a value object makes zero-value instances
// detectable, so commands and aggregates can reject structs that bypassed
// their constructor functions.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the caller passes a
// nil validation error. It guarantees that validation of a zero-value object
// always fails with a meaningful message.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard ensures value objects and entities are only created through
// their designated constructor functions. The guard holds an internal flag
// that is only set when the object was built by its constructor; any
// zero-value struct fails validation.
//
// Example:
//
//	var ErrRefreshCommandNotConstructed = errors.New(
//	    "RefreshOrderTrackingCommand must be created via its constructor")
//
//	type RefreshOrderTrackingCommand struct {
//	    orderID kernel.UUID
//	    guard   guard.ConstructorGuard
//	}
//
//	func (c RefreshOrderTrackingCommand) Validate() error {
//	    return c.guard.Validate(ErrRefreshCommandNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard that marks an object as properly
// constructed. Call it inside the constructor of the guarded object.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate reports whether the guarded object came from its constructor.
// Returns nil for constructed objects, the provided validationError for
// zero-value ones, or ErrDefaultConstructorGuard when validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
