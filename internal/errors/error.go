package errors

import (
	"fmt"
)

// Category represents the type of error.
type Category string

const (
	CategoryConfig  Category = "config"
	CategoryRoutes  Category = "routes"
	CategoryServer  Category = "server"
	CategoryCLI     Category = "cli"
	CategoryRuntime Category = "runtime"
)

// ViaductError is a structured error with a code, suggestions, and
// documentation pointers, meant for terminal display by the CLI.
type ViaductError struct {
	// Code is a unique error identifier (e.g., "E100").
	Code string

	// Category is the error type (config, routes, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// DocURL is a link to documentation about this error.
	DocURL string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *ViaductError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *ViaductError) Unwrap() error {
	return e.Wrapped
}

// WithSuggestion adds a fix suggestion to the error.
func (e *ViaductError) WithSuggestion(s string) *ViaductError {
	e.Suggestion = s
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *ViaductError) WithDetail(d string) *ViaductError {
	e.Detail = d
	return e
}

// Wrap wraps another error.
func (e *ViaductError) Wrap(err error) *ViaductError {
	e.Wrapped = err
	return e
}

// New creates a ViaductError from a registered error code.
func New(code string) *ViaductError {
	template, ok := registry[code]
	if !ok {
		return &ViaductError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &ViaductError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
		DocURL:   template.DocURL,
	}
}

// Newf creates a new ViaductError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *ViaductError {
	return &ViaductError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a ViaductError.
func FromError(err error, code string) *ViaductError {
	if err == nil {
		return nil
	}
	if ve, ok := err.(*ViaductError); ok {
		return ve
	}
	return New(code).Wrap(err)
}
