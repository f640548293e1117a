// Package temporal classifies and validates the ISO-8601 temporal strings
// carried by metadata records: timestamps (created/updated), durations
// (quantitative ages such as P12Y0M), and start-anchored intervals
// (start/duration or start/end).
package temporal

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Kind classifies a temporal string.
type Kind int

const (
	// KindInvalid marks a string matching none of the recognized grammars.
	KindInvalid Kind = iota
	// KindTimestamp is a calendar date or date-time.
	KindTimestamp
	// KindDuration is an ISO-8601 duration (P12Y0M, PT6H, ...).
	KindDuration
	// KindInterval is a start-anchored interval: start/duration or start/end.
	KindInterval
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindTimestamp:
		return "timestamp"
	case KindDuration:
		return "duration"
	case KindInterval:
		return "interval"
	default:
		return "invalid"
	}
}

// Value is a classified temporal string. For intervals, Start and End hold
// the two halves; End may itself be a duration or a timestamp.
type Value struct {
	Kind  Kind
	Raw   string
	Start string
	End   string
}

// ErrMalformed is returned for strings matching none of the grammars.
var ErrMalformed = errors.New("malformed temporal value")

var (
	// Duration must carry at least one component, and a T designator must
	// be followed by at least one time component.
	durationRe = regexp.MustCompile(
		`^P(?:\d+Y)?(?:\d+M)?(?:\d+W)?(?:\d+D)?(?:T(?:\d+H)?(?:\d+M)?(?:\d+(?:\.\d+)?S)?)?$`)

	dateRe     = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	dateTimeRe = regexp.MustCompile(
		`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(?:\.\d+)?(?:Z|[+-]\d{2}:\d{2})?$`)
)

// Parse classifies s and returns its parsed form. Empty input is rejected;
// absence is decided upstream at ingestion, not here.
func Parse(s string) (Value, error) {
	if s == "" {
		return Value{}, fmt.Errorf("%w: empty string", ErrMalformed)
	}

	if IsDuration(s) {
		return Value{Kind: KindDuration, Raw: s}, nil
	}
	if IsTimestamp(s) {
		return Value{Kind: KindTimestamp, Raw: s}, nil
	}
	if start, end, ok := splitInterval(s); ok {
		return Value{Kind: KindInterval, Raw: s, Start: start, End: end}, nil
	}

	return Value{Raw: s}, fmt.Errorf("%w: %q matches no ISO-8601 grammar", ErrMalformed, s)
}

// Classify returns the kind of s without the parsed form.
func Classify(s string) Kind {
	v, err := Parse(s)
	if err != nil {
		return KindInvalid
	}
	return v.Kind
}

// IsDuration reports whether s is a well-formed ISO-8601 duration.
func IsDuration(s string) bool {
	// "P" alone carries no components, and a trailing T designator has an
	// empty time part; both are invalid.
	if s == "P" || strings.HasSuffix(s, "T") {
		return false
	}
	return durationRe.MatchString(s)
}

// IsTimestamp reports whether s is a well-formed calendar date or date-time.
// The calendar itself is checked, not just the shape: 2021-02-30 is rejected.
func IsTimestamp(s string) bool {
	switch {
	case dateRe.MatchString(s):
		_, err := time.Parse("2006-01-02", s)
		return err == nil
	case dateTimeRe.MatchString(s):
		// time.Parse tolerates a fractional second in the input without it
		// appearing in the layout, so two layouts cover all shapes.
		if _, err := time.Parse("2006-01-02T15:04:05Z07:00", s); err == nil {
			return true
		}
		_, err := time.Parse("2006-01-02T15:04:05", s)
		return err == nil
	default:
		return false
	}
}

// IsInterval reports whether s is a start-anchored interval.
func IsInterval(s string) bool {
	_, _, ok := splitInterval(s)
	return ok
}

// splitInterval splits s into its start anchor and second half. The start
// must be a timestamp; the second half is either a duration or a timestamp.
func splitInterval(s string) (start, end string, ok bool) {
	idx := strings.IndexByte(s, '/')
	if idx < 0 || strings.IndexByte(s[idx+1:], '/') >= 0 {
		return "", "", false
	}
	start, end = s[:idx], s[idx+1:]
	if !IsTimestamp(start) {
		return "", "", false
	}
	if !IsDuration(end) && !IsTimestamp(end) {
		return "", "", false
	}
	return start, end, true
}

// IsAge reports whether s is acceptable as a quantitative age encoding,
// which admits durations and start-anchored intervals but not bare
// timestamps.
func IsAge(s string) bool {
	switch Classify(s) {
	case KindDuration, KindInterval:
		return true
	default:
		return false
	}
}
