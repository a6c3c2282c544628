package output

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
	"time"
)

func render(t *testing.T, f *TableFormatter, data any) []string {
	t.Helper()
	var buf bytes.Buffer
	if err := f.Format(&buf, data); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	return strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
}

func fields(line string) []string { return strings.Fields(line) }

func TestTableFormatter_Format_Table(t *testing.T) {
	table := &Table{
		Headers: []string{"NAME", "VALUE"},
		Rows:    [][]string{{"key1", "value1"}, {"key2", "value2"}},
	}

	lines := render(t, &TableFormatter{}, table)
	if len(lines) != 3 || fields(lines[0])[0] != "NAME" || fields(lines[1])[0] != "key1" {
		t.Errorf("unexpected table:\n%s", strings.Join(lines, "\n"))
	}

	lines = render(t, &TableFormatter{NoHeaders: true}, *table)
	if len(lines) != 2 || fields(lines[0])[0] != "key1" {
		t.Errorf("NoHeaders table:\n%s", strings.Join(lines, "\n"))
	}
}

func TestTableFormatter_Format_Nil(t *testing.T) {
	var buf bytes.Buffer
	if err := (&TableFormatter{}).Format(&buf, nil); err != nil {
		t.Fatalf("Format(nil) error = %v", err)
	}
	if buf.Len() != 0 {
		t.Error("Format(nil) should produce empty output")
	}
}

func TestTableFormatter_Format_ObjectList(t *testing.T) {
	data := []any{
		map[string]any{"name": "Ana", "id": "P1A", "priority": float64(5), "history": []any{"x"}},
		map[string]any{"name": "Ben", "id": "P2B", "is_emergency": true},
	}

	lines := render(t, &TableFormatter{}, data)
	if got := fields(lines[0]); !reflect.DeepEqual(got, []string{"ID", "IS_EMERGENCY", "NAME", "PRIORITY"}) {
		t.Errorf("headers = %v", got)
	}
	if got := fields(lines[1]); !reflect.DeepEqual(got, []string{"P1A", "Ana", "5"}) {
		t.Errorf("row 1 = %v", got)
	}
	if got := fields(lines[2]); !reflect.DeepEqual(got, []string{"P2B", "true", "Ben"}) {
		t.Errorf("row 2 = %v", got)
	}

	wide := render(t, &TableFormatter{Wide: true}, data)
	if !strings.Contains(wide[0], "HISTORY") || !strings.Contains(wide[1], "[1 items]") {
		t.Errorf("wide table should keep nested columns:\n%s", strings.Join(wide, "\n"))
	}
}

func TestTableFormatter_Format_Map(t *testing.T) {
	data := map[string]any{"waiting": float64(3), "doctors": float64(2), "avg_wait": 12.5}

	lines := render(t, &TableFormatter{}, data)
	want := [][]string{{"KEY", "VALUE"}, {"avg_wait", "12.5"}, {"doctors", "2"}, {"waiting", "3"}}
	for i, w := range want {
		if got := fields(lines[i]); !reflect.DeepEqual(got, w) {
			t.Errorf("line %d = %v, want %v", i, got, w)
		}
	}
}

type testStruct struct {
	Name    string `json:"name"`
	Age     int    `json:"age"`
	Active  bool   `json:"active"`
	Details string `json:"details" table:"wide"`
	Secret  string `table:"-"`
	hidden  string
}

func TestTableFormatter_Format_StructSlice(t *testing.T) {
	data := []*testStruct{
		{Name: "Alice", Age: 30, Active: true, Details: "detail1", Secret: "s", hidden: "h"},
		{Name: "Bob", Age: 25, Details: "detail2"},
	}

	lines := render(t, &TableFormatter{}, data)
	if got := fields(lines[0]); !reflect.DeepEqual(got, []string{"NAME", "AGE", "ACTIVE"}) {
		t.Errorf("headers = %v", got)
	}
	if got := fields(lines[2]); !reflect.DeepEqual(got, []string{"Bob", "25", "false"}) {
		t.Errorf("row = %v", got)
	}

	wide := render(t, &TableFormatter{Wide: true}, data)
	if !strings.Contains(wide[0], "DETAILS") {
		t.Error("wide mode should include DETAILS")
	}
}

func TestTableFormatter_Format_SingleStruct(t *testing.T) {
	lines := render(t, &TableFormatter{}, testStruct{Name: "Alice", Age: 30})
	if fields(lines[0])[0] != "FIELD" || !reflect.DeepEqual(fields(lines[1]), []string{"name", "Alice"}) {
		t.Errorf("unexpected table:\n%s", strings.Join(lines, "\n"))
	}
	for _, l := range lines {
		if strings.Contains(l, "Secret") || strings.Contains(l, "hidden") {
			t.Errorf("skipped field rendered: %q", l)
		}
	}
}

func TestTableFormatter_Format_EmptySlice(t *testing.T) {
	var buf bytes.Buffer
	if err := (&TableFormatter{}).Format(&buf, []any{}); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Errorf("empty slice rendered %q", buf.String())
	}
}

func TestTableFormatter_Format_FallbackToJSON(t *testing.T) {
	lines := render(t, &TableFormatter{}, "ok")
	if lines[0] != `"ok"` {
		t.Errorf("scalar = %q, want JSON string", lines[0])
	}
}

func TestFormatValue(t *testing.T) {
	var nilPtr *string
	s := "x"
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"string", "P1A", "P1A"},
		{"empty string", "", "-"},
		{"int", 42, "42"},
		{"uint", uint(7), "7"},
		{"integral float", float64(5), "5"},
		{"fraction", 2.25, "2.25"},
		{"bool", true, "true"},
		{"empty slice", []any{}, "-"},
		{"slice", []any{1, 2}, "[2 items]"},
		{"map", map[string]any{"a": 1}, "{1 keys}"},
		{"nil pointer", nilPtr, ""},
		{"pointer", &s, "x"},
		{"zero time", time.Time{}, "-"},
		{"time", time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC), "2026-03-01 09:30"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatValue(reflect.ValueOf(tt.in)); got != tt.want {
				t.Errorf("formatValue(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}

	if got := formatValue(reflect.Value{}); got != "" {
		t.Errorf("formatValue(invalid) = %q", got)
	}
}

func TestToSnakeCase(t *testing.T) {
	tests := map[string]string{
		"PatientID": "Patient_I_D",
		"name":      "name",
		"IsUrgent":  "Is_Urgent",
	}
	for in, want := range tests {
		if got := toSnakeCase(in); got != want {
			t.Errorf("toSnakeCase(%q) = %q, want %q", in, got, want)
		}
	}
}
