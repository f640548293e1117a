package record

import "encoding/json"

// Temporal is an optional temporal string (timestamp, duration, or interval).
// The wire convention of "empty string means absent" is decided here, at
// decode time: an empty or null value decodes as absent, and downstream
// logic never re-interprets empty strings. The zero value is absent.
type Temporal struct {
	value   string
	present bool
}

// SomeTemporal returns a present temporal value. An empty string yields
// the absent value.
func SomeTemporal(s string) Temporal {
	if s == "" {
		return Temporal{}
	}
	return Temporal{value: s, present: true}
}

// IsPresent reports whether a value is set.
func (t Temporal) IsPresent() bool {
	return t.present
}

// Value returns the temporal string and whether it is set.
func (t Temporal) Value() (string, bool) {
	return t.value, t.present
}

// String returns the temporal string, or "" when absent.
func (t Temporal) String() string {
	return t.value
}

// MarshalJSON encodes an absent value as the empty string, matching the
// wire convention.
func (t Temporal) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.value)
}

// UnmarshalJSON decodes "" and null as absent.
func (t *Temporal) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*t = Temporal{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*t = SomeTemporal(s)
	return nil
}
