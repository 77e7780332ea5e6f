package engine

import (
	"errors"
	"fmt"
)

// RuntimeError represents an error that aborts an import run.
//
// Every other failure during a run is recovered and written to the result
// log. A RuntimeError means an internal invariant is broken and the run
// cannot continue safely.
type RuntimeError struct {
	// Code identifies the error category.
	Code RuntimeErrorCode

	// Message is a human-readable description.
	Message string

	// Details contains additional context.
	Details map[string]string

	// Err is the underlying cause, if any.
	Err error
}

// RuntimeErrorCode categorizes runtime errors.
type RuntimeErrorCode string

const (
	// ErrCodeConversionMismatch indicates the conversion table accepted a
	// token type that no converter handles.
	ErrCodeConversionMismatch RuntimeErrorCode = "CONVERSION_MISMATCH"
)

// Error implements the error interface.
func (e *RuntimeError) Error() string {
	if token := e.Details["token"]; token != "" {
		return fmt.Sprintf("%s: %s (token=%s)", e.Code, e.Message, token)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *RuntimeError) Unwrap() error {
	return e.Err
}

// IsConversionError returns true if the error is a conversion mismatch.
// Uses errors.As to handle wrapped errors.
func IsConversionError(err error) bool {
	var re *RuntimeError
	if errors.As(err, &re) {
		return re.Code == ErrCodeConversionMismatch
	}
	return false
}

// NewConversionError creates a RuntimeError for a token type the converters
// cannot handle.
func NewConversionError(name, tokenType string, cause error) *RuntimeError {
	return &RuntimeError{
		Code:    ErrCodeConversionMismatch,
		Message: fmt.Sprintf("no conversion for %s tokens", tokenType),
		Details: map[string]string{
			"token": name,
			"type":  tokenType,
		},
		Err: cause,
	}
}
