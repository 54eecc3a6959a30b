// Package guard provides the ConstructorGuard pattern used to ensure that
// value objects and commands are only created through their designated
// constructor functions, never as bare zero values.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the caller did not
// supply its own validation error.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard detects whether the embedding struct was built through its
// constructor. The zero value fails validation; a guard obtained from
// NewConstructorGuard passes.
//
// Example:
//
//	type Phone struct {
//	    value string
//	    guard guard.ConstructorGuard
//	}
//
//	func NewPhone(raw string) (Phone, error) {
//	    // ... validate raw ...
//	    return Phone{value: raw, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (p Phone) Validate() error {
//	    return p.guard.Validate(ErrPhoneIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard marking the owning object as properly
// constructed. Call it only from constructors.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil when the owning object was built through its
// constructor. Otherwise it returns validationError, or
// ErrDefaultConstructorGuard when validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}

	if validationError == nil {
		return ErrDefaultConstructorGuard
	}

	return validationError
}
