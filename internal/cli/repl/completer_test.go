package repl

import (
	"reflect"
	"testing"
)

func TestCompleter_Complete(t *testing.T) {
	c := NewCompleter([]string{"patient list", "patient get", "patient search", "queue list", "queue list"})

	tests := []struct {
		prefix string
		want   []string
	}{
		{"patient", []string{"patient get", "patient list", "patient search"}},
		{"patient  s", []string{"patient search"}},
		{"q", []string{"queue list", "quit"}},
		{"ex", []string{"exit"}},
		{"zzz", nil},
	}
	for _, tt := range tests {
		if got := c.Complete(tt.prefix); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Complete(%q) = %v, want %v", tt.prefix, got, tt.want)
		}
	}
}

func TestCompleter_EmptyPrefixListsAll(t *testing.T) {
	c := NewCompleter([]string{"health"})
	want := []string{"exit", "health", "history", "quit"}
	if got := c.Complete(""); !reflect.DeepEqual(got, want) {
		t.Errorf("Complete(\"\") = %v, want %v", got, want)
	}
}
