package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestNewRejectedError(t *testing.T) {
	tests := []struct {
		name     string
		server   string
		fallback string
		want     string
	}{
		{"server message wins", "Invalid credentials", "Login failed", "Invalid credentials"},
		{"fallback when empty", "", "Login failed", "Login failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewRejectedError(401, tt.server, tt.fallback)
			if err.Message != tt.want {
				t.Errorf("Message = %q, want %q", err.Message, tt.want)
			}
			if err.Kind != KindRejected {
				t.Errorf("Kind = %q, want %q", err.Kind, KindRejected)
			}
			if err.Status != 401 {
				t.Errorf("Status = %d, want 401", err.Status)
			}
		})
	}
}

func TestNewNetworkError(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewNetworkError(cause)

	if err.Message != NetworkErrorMessage {
		t.Errorf("Message = %q, want %q", err.Message, NetworkErrorMessage)
	}
	if !errors.Is(err, cause) {
		t.Error("network error should unwrap to its cause")
	}
	if err.Status != 0 {
		t.Errorf("Status = %d, want 0", err.Status)
	}
}

func TestErrorKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"network", NewNetworkError(nil), KindNetwork},
		{"wrapped rejected", fmt.Errorf("login: %w", NewRejectedError(400, "", "x")), KindRejected},
		{"malformed", NewMalformedError(200, "x", nil), KindMalformed},
		{"plain error", errors.New("boom"), ""},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ErrorKindOf(tt.err); got != tt.want {
				t.Errorf("ErrorKindOf() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(nil); got != "" {
		t.Errorf("UserMessage(nil) = %q, want empty", got)
	}
	if got := UserMessage(NewRejectedError(401, "Invalid credentials", "Login failed")); got != "Invalid credentials" {
		t.Errorf("UserMessage() = %q", got)
	}
	if got := UserMessage(errors.New("disk full")); got != "disk full" {
		t.Errorf("UserMessage() = %q, want %q", got, "disk full")
	}
}

func TestAuthError_Error(t *testing.T) {
	err := NewRejectedError(403, "Access Denied", "")
	if got := err.Error(); got != "Access Denied (rejected, status 403)" {
		t.Errorf("Error() = %q", got)
	}

	err = NewNetworkError(nil)
	if got := err.Error(); got != NetworkErrorMessage+" (network)" {
		t.Errorf("Error() = %q", got)
	}
}
