// Package datefmt converts between the ISO dates stored in Airtable and the
// Croatian display format the site renders.
package datefmt

import (
	"fmt"
	"time"
)

const (
	// DisplayLayout renders dates as DD.MM.YYYY. including the trailing dot.
	DisplayLayout = "02.01.2006."
	isoLayout     = "2006-01-02"
)

// FormatDisplay renders an ISO date or RFC3339 timestamp in display format.
// Empty input stays empty; values that parse as neither pass through
// unchanged so unknown upstream formats never break a page.
func FormatDisplay(raw string) string {
	if raw == "" {
		return ""
	}
	t, err := parseISO(raw)
	if err != nil {
		return raw
	}
	return t.Format(DisplayLayout)
}

// ParseDisplay parses a DD.MM.YYYY. display date back to a calendar date.
func ParseDisplay(value string) (time.Time, error) {
	t, err := time.Parse(DisplayLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse display date %q: %w", value, err)
	}
	return t, nil
}

// ClockTime extracts HH:MM from an RFC3339 timestamp. The fallback is used
// only for values that carry no time component at all (empty or date-only
// strings); a timestamp at midnight renders as 00:00.
func ClockTime(raw, fallback string) string {
	if raw == "" {
		return fallback
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return fallback
	}
	return t.Format("15:04")
}

func parseISO(raw string) (time.Time, error) {
	if t, err := time.Parse(isoLayout, raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}
