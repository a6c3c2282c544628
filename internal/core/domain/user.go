package domain

import (
	"bytes"
	"encoding/json"
)

// User is the identity object returned by the backend. The client does not
// model it; the raw JSON is kept and forwarded as-is.
type User json.RawMessage

// MarshalJSON returns the raw payload.
func (u User) MarshalJSON() ([]byte, error) {
	if len(u) == 0 {
		return []byte("null"), nil
	}
	return u, nil
}

// UnmarshalJSON stores a copy of the raw payload.
func (u *User) UnmarshalJSON(data []byte) error {
	*u = append((*u)[:0], data...)
	return nil
}

// IsZero reports whether the payload is missing or JSON null.
func (u User) IsZero() bool {
	trimmed := bytes.TrimSpace(u)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// Fields decodes the payload into a generic map for display.
func (u User) Fields() (map[string]any, error) {
	if u.IsZero() {
		return nil, nil
	}
	var m map[string]any
	if err := json.Unmarshal(u, &m); err != nil {
		return nil, err
	}
	return m, nil
}
