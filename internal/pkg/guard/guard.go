// Package guard provides the constructor guard used by commands, queries and
// aggregates to reject zero-value instances that bypassed their constructor.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks a value as created through its designated constructor.
// Embed it as a field and call Validate from the owner's Validate method:
//
//	type CompleteTaskCommand struct {
//	    taskID kernel.ID
//	    guard  guard.ConstructorGuard
//	}
//
//	func (c CompleteTaskCommand) Validate() error {
//	    return c.guard.Validate(ErrCompleteTaskCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard that reports the owner as constructed.
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
