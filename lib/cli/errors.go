// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import "fmt"

// ErrorCategory classifies command errors so that main can choose an
// exit code without parsing message text.
type ErrorCategory string

const (
	// CategoryValidation: the operator supplied bad input (flags,
	// arguments, config file contents). Fix the input and retry.
	CategoryValidation ErrorCategory = "validation"

	// CategoryNotFound: a named file or resource does not exist.
	CategoryNotFound ErrorCategory = "not_found"

	// CategoryInternal: an unexpected failure (I/O, terminal setup,
	// a corrupt trace this tool wrote itself).
	CategoryInternal ErrorCategory = "internal"
)

// Error is a categorized command error. It wraps the underlying error
// so errors.Is and errors.As see the full chain. Use the constructors
// rather than building one directly.
type Error struct {
	Category ErrorCategory

	// Err carries the human-readable message.
	Err error

	// Hint is optional operator guidance printed after the message.
	Hint string
}

// Error returns the message, followed by the hint after a blank line
// when one is set.
func (e *Error) Error() string {
	if e.Hint == "" {
		return e.Err.Error()
	}
	return e.Err.Error() + "\n\n" + e.Hint
}

func (e *Error) Unwrap() error { return e.Err }

// WithHint sets the operator hint and returns the receiver for
// chaining.
func (e *Error) WithHint(hint string) *Error {
	e.Hint = hint
	return e
}

// ExitCode maps the category to the process exit status: 2 for bad
// input, 3 for a missing resource, 1 otherwise.
func (e *Error) ExitCode() int {
	switch e.Category {
	case CategoryValidation:
		return 2
	case CategoryNotFound:
		return 3
	default:
		return 1
	}
}

// Validation creates a validation error.
func Validation(format string, args ...any) *Error {
	return &Error{Category: CategoryValidation, Err: fmt.Errorf(format, args...)}
}

// NotFound creates a not-found error.
func NotFound(format string, args ...any) *Error {
	return &Error{Category: CategoryNotFound, Err: fmt.Errorf(format, args...)}
}

// Internal creates an internal error.
func Internal(format string, args ...any) *Error {
	return &Error{Category: CategoryInternal, Err: fmt.Errorf(format, args...)}
}
