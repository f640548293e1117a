package temporal

import (
	"errors"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Kind
	}{
		{"duration years months", "P12Y0M", KindDuration},
		{"duration years", "P5Y", KindDuration},
		{"duration weeks", "P10W", KindDuration},
		{"duration time only", "PT6H30M", KindDuration},
		{"duration full", "P1Y2M3DT4H5M6.5S", KindDuration},
		{"bare designator", "P", KindInvalid},
		{"empty time part", "P1YT", KindInvalid},
		{"lowercase designator", "p5y", KindInvalid},
		{"date", "2021-03-15", KindTimestamp},
		{"datetime", "2021-03-15T10:30:00", KindTimestamp},
		{"datetime zulu", "2021-03-15T10:30:00Z", KindTimestamp},
		{"datetime offset", "2021-03-15T10:30:00+02:00", KindTimestamp},
		{"datetime fraction", "2021-03-15T10:30:00.123Z", KindTimestamp},
		{"impossible date", "2021-02-30", KindInvalid},
		{"impossible time", "2021-03-15T25:00:00", KindInvalid},
		{"interval start duration", "2020-01-01/P5Y", KindInterval},
		{"interval start end", "2020-01-01/2025-01-01", KindInterval},
		{"interval datetime anchor", "2020-01-01T00:00:00Z/P6M", KindInterval},
		{"interval duration anchor", "P5Y/2020-01-01", KindInvalid},
		{"interval three parts", "2020-01-01/P1Y/P2Y", KindInvalid},
		{"not temporal", "not-a-duration", KindInvalid},
		{"empty", "", KindInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.in); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseInterval(t *testing.T) {
	v, err := Parse("2020-01-01/P5Y")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if v.Start != "2020-01-01" || v.End != "P5Y" {
		t.Errorf("interval halves = %q / %q", v.Start, v.End)
	}
}

func TestParseMalformed(t *testing.T) {
	_, err := Parse("five years")
	if !errors.Is(err, ErrMalformed) {
		t.Errorf("Parse error = %v, want ErrMalformed", err)
	}

	_, err = Parse("")
	if !errors.Is(err, ErrMalformed) {
		t.Errorf("Parse(\"\") error = %v, want ErrMalformed", err)
	}
}

func TestIsAge(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"P5Y", true},
		{"2020-01-01/P5Y", true},
		{"2021-03-15", false}, // a bare timestamp is not an age
		{"not-a-duration", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := IsAge(tt.in); got != tt.want {
				t.Errorf("IsAge(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestKindString(t *testing.T) {
	if KindDuration.String() != "duration" || KindInvalid.String() != "invalid" {
		t.Error("Kind.String() mismatch")
	}
}
