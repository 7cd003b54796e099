// Package day provides calendar-date helpers for kindctl.
// Dates cross every storage boundary as "YYYY-MM-DD" keys so they sort and
// compare lexically.
package day

import (
	"fmt"
	"time"
)

// Layout is the canonical date key format.
const Layout = "2006-01-02"

// Now returns the current time. Tests replace it to pin "today".
var Now = time.Now

// Key formats t as a date key in t's own location.
//
// Example:
//
//	input:  2024-01-15 23:30:00 -0500
//	output: "2024-01-15"
func Key(t time.Time) string {
	return t.Format(Layout)
}

// Today returns the date key for the current local day.
func Today() string {
	return Key(Now())
}

// Parse parses a date key into midnight UTC of that calendar date.
func Parse(key string) (time.Time, error) {
	t, err := time.ParseInLocation(Layout, key, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", key)
	}
	return t, nil
}

// Valid reports whether key is a well-formed date key.
func Valid(key string) bool {
	_, err := Parse(key)
	return err == nil
}

// AddDays shifts a date key by n calendar days (n may be negative).
func AddDays(key string, n int) (string, error) {
	t, err := Parse(key)
	if err != nil {
		return "", err
	}
	return Key(t.AddDate(0, 0, n)), nil
}

// IsNextDay reports whether next is exactly one calendar day after prev.
// Unparseable input is treated as not consecutive.
func IsNextDay(prev, next string) bool {
	want, err := AddDays(prev, 1)
	if err != nil {
		return false
	}
	return want == next
}

// Seed returns the epoch-millisecond value of midnight UTC on the given date.
// It is the basis for the deterministic per-day prompt pick, so the value
// does not depend on the host time zone.
func Seed(key string) (int64, error) {
	t, err := Parse(key)
	if err != nil {
		return 0, err
	}
	return t.UnixMilli(), nil
}

// Display formats a date key for humans ("Jan 02, 2006").
// Invalid keys are returned unchanged.
func Display(key string) string {
	t, err := Parse(key)
	if err != nil {
		return key
	}
	return t.Format("Jan 02, 2006")
}

// Relative labels a date key relative to today: "Today", "Yesterday", or
// the Display form.
func Relative(key, today string) string {
	if key == today {
		return "Today"
	}
	if IsNextDay(key, today) {
		return "Yesterday"
	}
	return Display(key)
}
