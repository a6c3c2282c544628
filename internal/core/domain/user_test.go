package domain

import (
	"encoding/json"
	"testing"
)

func TestUser_RoundTripKeepsRawPayload(t *testing.T) {
	var resp struct {
		User User `json:"user"`
	}
	body := `{"user":{"id":1,"email":"a@x.com","extra":{"nested":true}}}`
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if got := string(resp.User); got != `{"id":1,"email":"a@x.com","extra":{"nested":true}}` {
		t.Errorf("raw user = %s", got)
	}

	out, err := json.Marshal(resp.User)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(out) != string(resp.User) {
		t.Errorf("Marshal() = %s, want raw payload", out)
	}
}

func TestUser_IsZero(t *testing.T) {
	tests := []struct {
		name string
		user User
		want bool
	}{
		{"nil", nil, true},
		{"null", User("null"), true},
		{"padded null", User(" null "), true},
		{"object", User(`{"id":1}`), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.user.IsZero(); got != tt.want {
				t.Errorf("IsZero() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUser_Fields(t *testing.T) {
	fields, err := User(`{"id":"admin-001","is_admin":true}`).Fields()
	if err != nil {
		t.Fatalf("Fields() error = %v", err)
	}
	if fields["id"] != "admin-001" || fields["is_admin"] != true {
		t.Errorf("Fields() = %v", fields)
	}

	fields, err = User(nil).Fields()
	if err != nil || fields != nil {
		t.Errorf("Fields() on zero user = %v, %v", fields, err)
	}

	if _, err := User(`[1,2]`).Fields(); err == nil {
		t.Error("Fields() should fail for non-object payloads")
	}
}

func TestUser_MarshalZero(t *testing.T) {
	out, err := json.Marshal(struct {
		User User `json:"user"`
	}{})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(out) != `{"user":null}` {
		t.Errorf("Marshal() = %s", out)
	}
}
