package provision

import (
	"errors"
	"fmt"
)

var (
	ErrKeyTypeIsNil        = errors.New("key type is nil")
	ErrInstanceIsNil       = errors.New("instance parameter is nil")
	ErrMatcherIsNil        = errors.New("matcher parameter is nil")
	ErrListenerIsNil       = errors.New("listener parameter is nil")
	ErrInvalidConstructor  = errors.New("invalid constructor")
	ErrDuplicateBinding    = errors.New("duplicate binding")
	ErrRegistrationClosed  = errors.New("container already built; registration is closed")
	ErrDependencyCycle     = errors.New("dependency cycle detected")
	ErrInvocationSpent     = errors.New("provision invocation already completed")
	ErrConstructorPanic    = errors.New("constructor panicked")
	ErrMissingBinding      = errors.New("missing binding")
	ErrConstructionFailure = errors.New("construction failure")
)

// MissingBindingError is returned when resolution reaches a key that has no binding.
// It matches ErrMissingBinding with errors.Is.
type MissingBindingError struct {
	Key Key
}

func (e *MissingBindingError) Error() string {
	return fmt.Sprintf("no binding registered for %s", e.Key)
}

func (e *MissingBindingError) Is(target error) bool {
	return target == ErrMissingBinding
}

// ConstructionError is returned when the constructor of Key fails, either by
// returning an error or by panicking. It matches ErrConstructionFailure with
// errors.Is and unwraps to Cause.
type ConstructionError struct {
	Key   Key
	Cause error
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("constructing %s: %v", e.Key, e.Cause)
}

func (e *ConstructionError) Is(target error) bool {
	return target == ErrConstructionFailure
}

func (e *ConstructionError) Unwrap() error {
	return e.Cause
}
