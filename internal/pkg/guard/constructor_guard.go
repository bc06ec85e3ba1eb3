// Package guard provides a small defensive-programming helper that ensures
// commands and queries are only created through their constructor functions.
// A zero-value guard fails validation, so a struct literal that bypassed the
// constructor is rejected before any handler work happens.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the caller passes a
// nil error, so validation always fails with a meaningful message.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as properly constructed. Embed it in a
// command or query struct and set it with NewConstructorGuard inside the
// constructor; Validate then distinguishes constructed instances from zero
// values.
//
// Example:
//
//	type CreateDeliveryCommand struct {
//	    pickupAddress string
//	    guard         guard.ConstructorGuard
//	}
//
//	func NewCreateDeliveryCommand(pickup string) (CreateDeliveryCommand, error) {
//	    if pickup == "" {
//	        return CreateDeliveryCommand{}, errs.NewValueIsRequiredError("pickupAddress")
//	    }
//	    return CreateDeliveryCommand{pickupAddress: pickup, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (c CreateDeliveryCommand) Validate() error {
//	    return c.guard.Validate(ErrCreateDeliveryCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard that marks its owner as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for constructed guards. For zero-value guards it
// returns notConstructed, or ErrDefaultConstructorGuard when notConstructed
// is nil.
func (g ConstructorGuard) Validate(notConstructed error) error {
	if g.isConstructed {
		return nil
	}
	if notConstructed == nil {
		return ErrDefaultConstructorGuard
	}
	return notConstructed
}
