package logger

import (
	"log/slog"
	"testing"
)

func TestRedactSensitive_SensitiveKeyName(t *testing.T) {
	tests := []struct {
		key   string
		value string
		want  string
	}{
		{"password", "hunter2", redactedValue},
		{"new_password", "s3cret", redactedValue},
		{"token", "T1", redactedValue},
		{"verification_code", "A1B2C3", redactedValue},
		{"Authorization", "abc", redactedValue},
		{"password", "", ""},
		{"email", "a@x.com", "a@x.com"},
		{"path", "/auth/login", "/auth/login"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			got := redactSensitive(slog.String(tt.key, tt.value))
			if got.Value.String() != tt.want {
				t.Errorf("redactSensitive(%q) = %q, want %q", tt.key, got.Value.String(), tt.want)
			}
		})
	}
}

func TestRedactSensitive_BearerValue(t *testing.T) {
	got := redactSensitive(slog.String("header", "Bearer 0123456789abcdef"))
	if got.Value.String() != "Bearer 012...def" {
		t.Errorf("got %q, want %q", got.Value.String(), "Bearer 012...def")
	}

	got = redactSensitive(slog.String("header", "Bearer abc"))
	if got.Value.String() != "Bearer ***" {
		t.Errorf("short bearer got %q, want %q", got.Value.String(), "Bearer ***")
	}
}

func TestRedactSensitive_Group(t *testing.T) {
	attr := slog.Group("req", slog.String("password", "x"), slog.Int("status", 200))
	got := redactSensitive(attr)

	group := got.Value.Group()
	if len(group) != 2 {
		t.Fatalf("group len = %d, want 2", len(group))
	}
	if group[0].Value.String() != redactedValue {
		t.Errorf("nested password = %q, want redacted", group[0].Value.String())
	}
	if group[1].Value.Int64() != 200 {
		t.Errorf("nested status = %v, want 200", group[1].Value)
	}
}

func TestRedactToken(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"short", "***"},
		{"Xq3vZ9-abcdef_LONGTOKEN", "Xq3...KEN"},
	}
	for _, tt := range tests {
		if got := RedactToken(tt.in); got != tt.want {
			t.Errorf("RedactToken(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsSensitiveKey(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"password", true},
		{"TOKEN", true},
		{"client_secret", true},
		{"email", false},
		{"operation", false},
	}
	for _, tt := range tests {
		if got := IsSensitiveKey(tt.key); got != tt.want {
			t.Errorf("IsSensitiveKey(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}
