package mvc

import (
	"errors"
	"fmt"
)

// Configuration errors, reported by Dispatcher.Init.
var (
	ErrDuplicateRoute = errors.New("duplicate route")
	ErrInvalidPath    = errors.New("invalid route path")
	ErrInvalidParam   = errors.New("invalid parameter metadata")
	ErrParamType      = errors.New("parameter type mismatch")
	ErrNilTarget      = errors.New("nil handler target")
)

// Request-time errors. These are logged by the dispatcher and never
// propagated to the serving loop.
var (
	ErrNotInitialized = errors.New("dispatcher not initialized")
	ErrForwardLoop    = errors.New("forward depth exceeded")
	ErrResponseClosed = errors.New("response closed")
)

// InvocationError wraps a fault raised by a handler invocation.
type InvocationError struct {
	Path string
	Err  error
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("invoke %s: %v", e.Path, e.Err)
}

func (e *InvocationError) Unwrap() error { return e.Err }

// PanicError is the fault recorded when a handler panics.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap returns the panic value when it is itself an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
