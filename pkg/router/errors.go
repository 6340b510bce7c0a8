package router

import "fmt"

// FailureKind classifies dispatch failures.
type FailureKind string

const (
	// KindMiddlewareConfig marks an identifier that did not resolve to a
	// registered middleware.
	KindMiddlewareConfig FailureKind = "middleware_config"

	// KindHandlerResolution marks a "Name@action" reference that did not
	// resolve to a registered controller action.
	KindHandlerResolution FailureKind = "handler_resolution"
)

// DispatchError is a failure raised by the dispatch machinery itself, as
// opposed to an error returned by handler code. These are server faults.
type DispatchError struct {
	Kind  FailureKind
	Route string // path template of the route being executed
	Ref   string // the identifier or handler reference that failed to resolve
	Err   error
}

// Error implements the error interface.
func (e *DispatchError) Error() string {
	return fmt.Sprintf("router: %s on %s: %v", e.Kind, e.Route, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *DispatchError) Unwrap() error {
	return e.Err
}

// PanicError wraps a panic raised while a middleware or handler executed.
type PanicError struct {
	Route string
	Value any
	Stack []byte
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("router: panic on %s: %v", e.Route, e.Value)
}
