// Package simerr defines the core's error taxonomy.
//
// Invariant violations never surface as errors — dead entity access
// and bad grid coordinates return a zero value / false, never a
// *SimError. A *SimError is reserved for genuinely caller-visible
// cases: sanitizer rejection, profile signature mismatch, budget
// exhaustion with no evictable cell, and bootstrap failures.
package simerr

import "fmt"

// Code classifies a SimError for programmatic handling.
type Code string

const (
	CodeInvalidState       Code = "invalid_state"
	CodeInvalidInput       Code = "invalid_input"
	CodeNotFound           Code = "not_found"
	CodeUnreachable        Code = "unreachable"
	CodeBudgetExhausted    Code = "budget_exhausted"
	CodeSignatureMismatch  Code = "signature_mismatch"
	CodeSanitizerRejected  Code = "sanitizer_rejected"
	CodeMigrationFailed    Code = "migration_failed"
	CodeBootstrapIncomplete Code = "bootstrap_incomplete"
)

// SimError is the core's single error type, carrying a stable Code
// alongside a human message and an optional wrapped cause.
type SimError struct {
	Code    Code
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *SimError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped cause, if any.
func (e *SimError) Unwrap() error {
	return e.Cause
}

// New creates a SimError with no wrapped cause.
func New(code Code, message string) *SimError {
	return &SimError{Code: code, Message: message}
}

// Wrap creates a SimError wrapping cause.
func Wrap(code Code, message string, cause error) *SimError {
	return &SimError{Code: code, Message: message, Cause: cause}
}

// Is reports whether err is a *SimError with the given code.
func Is(err error, code Code) bool {
	var se *SimError
	if e, ok := err.(*SimError); ok {
		se = e
	} else {
		return false
	}
	return se.Code == code
}
