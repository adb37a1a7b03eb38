package analysis

import (
	"errors"
	"fmt"
)

// ErrorKind classifies every failure the orchestrator or chat
// continuation can surface. Handlers map kinds onto HTTP statuses.
type ErrorKind string

const (
	KindInvalidInput    ErrorKind = "invalid_input"
	KindConfig          ErrorKind = "configuration_error"
	KindEmptyResponse   ErrorKind = "empty_response"
	KindMalformedOutput ErrorKind = "malformed_output"
	KindProvider        ErrorKind = "provider_failure"
	KindChat            ErrorKind = "chat_failure"
	KindPayloadTooLarge ErrorKind = "payload_too_large"
)

// Error is the typed failure value for all analysis and chat calls.
// Details carries diagnostic payload (dropped-item reasons, raw model
// output, provider error text) that must reach the caller without
// replacing the message.
type Error struct {
	Kind    ErrorKind
	Message string
	Details string
	cause   error
}

func (e *Error) Error() string {
	if e.Details != "" {
		return e.Message + ": " + e.Details
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

// Errf builds an Error with a formatted message.
func Errf(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the kind from an error chain.
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}

// providerError wraps a transport or provider-side failure. The cause
// stays on the chain so callers can still distinguish cancellation
// (context.Canceled) from genuine provider faults.
func providerError(err error) error {
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	return &Error{
		Kind:    KindProvider,
		Message: "reasoning provider call failed",
		Details: err.Error(),
		cause:   err,
	}
}
