package models

import (
	"fmt"

	"go.temporal.io/sdk/temporal"
)

// ErrorType categorizes activity errors for workflow-side handling.
type ErrorType string

const (
	ErrorTypeTransient ErrorType = "Transient" // network/timeout, retried by Temporal
	ErrorTypeAPILimit  ErrorType = "APILimit"  // provider rate limit, retry after delay
	ErrorTypeFatal     ErrorType = "Fatal"     // unrecoverable (auth, bad request)
)

// ActivityError is a categorized error returned by provider clients.
// The activity layer converts it into a temporal.ApplicationError whose
// Type() carries the ErrorType string, so workflow code classifies by
// type and never parses messages.
type ActivityError struct {
	Type      ErrorType `json:"type"`
	Retryable bool      `json:"retryable"`
	Message   string    `json:"message"`
}

func (e *ActivityError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// NewTransientError creates a retryable transient error.
func NewTransientError(message string) *ActivityError {
	return &ActivityError{Type: ErrorTypeTransient, Retryable: true, Message: message}
}

// NewAPILimitError creates a provider rate-limit error.
func NewAPILimitError(message string) *ActivityError {
	return &ActivityError{Type: ErrorTypeAPILimit, Retryable: true, Message: message}
}

// NewFatalError creates a non-retryable error.
func NewFatalError(message string) *ActivityError {
	return &ActivityError{Type: ErrorTypeFatal, Retryable: false, Message: message}
}

// WrapActivityError converts an ActivityError into a
// temporal.ApplicationError whose Type carries the ErrorType string.
// Fatal errors are marked non-retryable so Temporal stops immediately.
func WrapActivityError(err *ActivityError) error {
	if !err.Retryable {
		return temporal.NewNonRetryableApplicationError(err.Message, string(err.Type), err)
	}
	return temporal.NewApplicationError(err.Message, string(err.Type), err)
}
