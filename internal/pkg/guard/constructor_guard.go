// Package guard provides ConstructorGuard, a marker embedded in value objects,
// commands and queries so that zero values created without their constructor
// are rejected by Validate.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard records whether the enclosing value was built by its constructor.
//
// Example:
//
//	type ReleaseOrderCommand struct {
//	    orderID kernel.UUID
//	    guard   guard.ConstructorGuard
//	}
//
//	func NewReleaseOrderCommand(id kernel.UUID) ReleaseOrderCommand {
//	    return ReleaseOrderCommand{orderID: id, guard: guard.NewConstructorGuard()}
//	}
//
//	func (c ReleaseOrderCommand) Validate() error {
//	    return c.guard.Validate(ErrReleaseOrderCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard is a zero value, and nil otherwise.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
