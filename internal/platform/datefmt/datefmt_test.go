package datefmt

import (
	"testing"
	"time"
)

func TestFormatDisplay(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"iso date", "2025-09-11", "11.09.2025."},
		{"rfc3339", "2025-09-11T18:30:00Z", "11.09.2025."},
		{"empty", "", ""},
		{"unparsable passes through", "sutra", "sutra"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatDisplay(tc.in); got != tc.want {
				t.Fatalf("FormatDisplay(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestDisplayRoundTrip(t *testing.T) {
	display := FormatDisplay("2025-09-11")
	parsed, err := ParseDisplay(display)
	if err != nil {
		t.Fatalf("ParseDisplay(%q): %v", display, err)
	}

	want := time.Date(2025, time.September, 11, 0, 0, 0, 0, time.UTC)
	if !parsed.Equal(want) {
		t.Fatalf("round trip changed the date: got %v, want %v", parsed, want)
	}
}

func TestClockTime(t *testing.T) {
	if got := ClockTime("2025-09-11T20:15:00Z", "18:30"); got != "20:15" {
		t.Fatalf("ClockTime with time component = %q, want 20:15", got)
	}
	if got := ClockTime("2025-09-11", "18:30"); got != "18:30" {
		t.Fatalf("ClockTime without time component = %q, want fallback", got)
	}
	if got := ClockTime("2025-09-11T00:00:00Z", "18:30"); got != "00:00" {
		t.Fatalf("ClockTime at midnight = %q, want 00:00", got)
	}
	if got := ClockTime("", "18:30"); got != "18:30" {
		t.Fatalf("ClockTime empty = %q, want fallback", got)
	}
}
