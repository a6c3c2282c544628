// Package domain defines the core domain types for medqueue.
package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a domain error with a structured error code.
// Codes follow the format MQ-<AREA>-<NNNN>.
type DomainError struct {
	Code    string // Error code (e.g., "MQ-STORE-5001")
	Message string // Human-readable message
	Details string // Optional additional details
	Cause   error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is() support for error comparison.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new DomainError with the given code and message.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *DomainError) WithDetails(details string) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		Cause:   e.Cause,
	}
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *DomainError) WithCause(cause error) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		Cause:   cause,
	}
}

// GetErrorCode extracts the error code from an error if it's a DomainError.
func GetErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// ============================================================================
// Authentication Errors (AUTH)
// ============================================================================

var (
	// ErrLoginRequired indicates a gated page was requested without a session.
	ErrLoginRequired = NewDomainError("MQ-AUTH-4010", "login required")

	// ErrAdminRequired indicates the current session has no admin access.
	ErrAdminRequired = NewDomainError("MQ-AUTH-4030", "admin access required")
)

// ============================================================================
// Storage Errors (STORE)
// ============================================================================

var (
	// ErrStorageOpen indicates a storage tier could not be opened.
	ErrStorageOpen = NewDomainError("MQ-STORE-5000", "open storage")

	// ErrStorageWrite indicates a storage tier rejected a write or delete.
	ErrStorageWrite = NewDomainError("MQ-STORE-5001", "storage write failed")

	// ErrStorageKey indicates the at-rest encryption key is unusable.
	ErrStorageKey = NewDomainError("MQ-STORE-5002", "storage key unusable")
)

// ============================================================================
// Configuration Errors (CFG)
// ============================================================================

var (
	// ErrConfigInvalid indicates the configuration failed validation.
	ErrConfigInvalid = NewDomainError("MQ-CFG-4000", "invalid configuration")

	// ErrConfigLoad indicates the configuration could not be read.
	ErrConfigLoad = NewDomainError("MQ-CFG-5000", "load configuration")
)

// ============================================================================
// Argument Errors (ARG)
// ============================================================================

var (
	// ErrInvalidArgument indicates an invalid argument.
	ErrInvalidArgument = NewDomainError("MQ-ARG-1001", "invalid argument")

	// ErrMissingArgument indicates a required argument is missing.
	ErrMissingArgument = NewDomainError("MQ-ARG-1002", "missing required argument")
)
