package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/yndnr/medqueue-go/internal/core/domain"
)

func TestNewFormatter(t *testing.T) {
	tests := []struct {
		format Format
		wide   bool
	}{
		{FormatJSON, false},
		{FormatYAML, false},
		{FormatTable, false},
		{FormatTable, true},
		{"unknown", false}, // default to table
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			f := NewFormatter(tt.format, tt.wide)
			switch tt.format {
			case FormatJSON:
				if _, ok := f.(*JSONFormatter); !ok {
					t.Error("expected JSONFormatter")
				}
			case FormatYAML:
				if _, ok := f.(*YAMLFormatter); !ok {
					t.Error("expected YAMLFormatter")
				}
			default:
				tf, ok := f.(*TableFormatter)
				if !ok {
					t.Fatal("expected TableFormatter")
				}
				if tf.Wide != tt.wide {
					t.Errorf("Wide = %v, want %v", tf.Wide, tt.wide)
				}
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"table", FormatTable, false},
		{"JSON", FormatJSON, false},
		{" yaml ", FormatYAML, false},
		{"csv", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestJSONFormatter_Format(t *testing.T) {
	f := &JSONFormatter{}

	t.Run("object", func(t *testing.T) {
		var buf bytes.Buffer
		if err := f.Format(&buf, map[string]any{"name": "Ana", "priority": 5}); err != nil {
			t.Fatalf("Format() error = %v", err)
		}
		out := buf.String()
		if !strings.Contains(out, `"name": "Ana"`) || !strings.Contains(out, `"priority": 5`) {
			t.Errorf("unexpected JSON:\n%s", out)
		}
	})

	t.Run("raw user passes through", func(t *testing.T) {
		var buf bytes.Buffer
		user := domain.User(`{"email":"a@clinic.test","role":"admin"}`)
		if err := f.Format(&buf, user); err != nil {
			t.Fatal(err)
		}
		var back map[string]any
		if err := json.Unmarshal(buf.Bytes(), &back); err != nil {
			t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
		}
		if back["role"] != "admin" {
			t.Errorf("role = %v, want admin", back["role"])
		}
	})

	t.Run("nil", func(t *testing.T) {
		var buf bytes.Buffer
		if err := f.Format(&buf, nil); err != nil {
			t.Fatalf("Format(nil) error = %v", err)
		}
		if got := strings.TrimSpace(buf.String()); got != "null" {
			t.Errorf("Format(nil) = %q, want 'null'", got)
		}
	})
}

func TestYAMLFormatter_Format(t *testing.T) {
	f := &YAMLFormatter{}

	t.Run("uses json field names", func(t *testing.T) {
		data := struct {
			PatientID   string `json:"patient_id"`
			IsEmergency bool   `json:"is_emergency"`
		}{"P1A", true}

		var buf bytes.Buffer
		if err := f.Format(&buf, data); err != nil {
			t.Fatalf("Format() error = %v", err)
		}
		out := buf.String()
		if !strings.Contains(out, "patient_id: P1A") || !strings.Contains(out, "is_emergency: true") {
			t.Errorf("unexpected YAML:\n%s", out)
		}
	})

	t.Run("nested lists", func(t *testing.T) {
		data := map[string]any{
			"patients": []any{map[string]any{"id": "P1A"}},
		}
		var buf bytes.Buffer
		if err := f.Format(&buf, data); err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(buf.String(), "- id: P1A") {
			t.Errorf("unexpected YAML:\n%s", buf.String())
		}
	})

	t.Run("raw user", func(t *testing.T) {
		var buf bytes.Buffer
		if err := f.Format(&buf, domain.User(`{"email":"a@clinic.test"}`)); err != nil {
			t.Fatal(err)
		}
		if got := strings.TrimSpace(buf.String()); got != "email: a@clinic.test" {
			t.Errorf("Format(user) = %q", got)
		}
	})
}
