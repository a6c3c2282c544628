package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why a session operation failed.
type ErrorKind string

const (
	// KindNetwork means no response was received.
	KindNetwork ErrorKind = "network"
	// KindRejected means the server answered with a non-2xx status.
	KindRejected ErrorKind = "rejected"
	// KindMalformed means a 2xx answer could not be used.
	KindMalformed ErrorKind = "malformed"
)

// NetworkErrorMessage is shown for every transport-level failure.
const NetworkErrorMessage = "Network error. Please try again."

// AuthError is the failure variant returned by session operations.
// Message is always safe to show to the user.
type AuthError struct {
	Kind    ErrorKind
	Message string
	Status  int   // HTTP status, 0 for network failures
	Cause   error // Underlying transport or decode error (if any)
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s (%s, status %d)", e.Message, e.Kind, e.Status)
	}
	return fmt.Sprintf("%s (%s)", e.Message, e.Kind)
}

// Unwrap returns the underlying error.
func (e *AuthError) Unwrap() error {
	return e.Cause
}

// NewNetworkError wraps a transport failure.
func NewNetworkError(cause error) *AuthError {
	return &AuthError{
		Kind:    KindNetwork,
		Message: NetworkErrorMessage,
		Cause:   cause,
	}
}

// NewRejectedError builds the failure for a non-2xx answer. An empty server
// message falls back to the per-operation default.
func NewRejectedError(status int, serverMessage, fallback string) *AuthError {
	msg := serverMessage
	if msg == "" {
		msg = fallback
	}
	return &AuthError{
		Kind:    KindRejected,
		Message: msg,
		Status:  status,
	}
}

// NewMalformedError builds the failure for a 2xx answer that cannot be used.
func NewMalformedError(status int, fallback string, cause error) *AuthError {
	return &AuthError{
		Kind:    KindMalformed,
		Message: fallback,
		Status:  status,
		Cause:   cause,
	}
}

// ErrorKindOf returns the kind of an AuthError in err's chain, or "" if there is none.
func ErrorKindOf(err error) ErrorKind {
	var ae *AuthError
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return ""
}

// UserMessage returns the user-facing message for err.
// Errors that are not AuthErrors get their Error() text.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var ae *AuthError
	if errors.As(err, &ae) {
		return ae.Message
	}
	return err.Error()
}
