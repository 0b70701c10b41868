// Package timeutil provides calendar-day arithmetic for the cycle engine.
// A "day number" is an integer count of calendar days since the Unix epoch,
// computed under one of two boundary policies. Day numbers produced under
// different policies must never be compared.
package timeutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// LayoutISO is the wire format for reference dates.
	LayoutISO = "2006-01-02"

	msPerDay  = 86_400_000
	msPerHour = 3_600_000
)

// Policy selects which midnight defines a calendar-day boundary.
type Policy string

const (
	// PolicyUTC counts days by UTC midnights, stable across travel.
	PolicyUTC Policy = "utc"
	// PolicyLocal counts days by wall-clock midnights in the time's own
	// location, stable to where the user lives.
	PolicyLocal Policy = "local"
)

// ParsePolicy validates a policy string.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(s))) {
	case PolicyUTC:
		return PolicyUTC, nil
	case PolicyLocal:
		return PolicyLocal, nil
	}
	return "", fmt.Errorf("timeutil: unknown calendar policy %q (want utc or local)", s)
}

// DayNumber converts an instant to the day number of its calendar date under
// the policy. The result is label arithmetic: whichever policy picked the
// date, the count is anchored at 1970-01-01, so day numbers under one policy
// difference cleanly.
func DayNumber(t time.Time, p Policy) int {
	var y int
	var m time.Month
	var d int
	if p == PolicyLocal {
		y, m, d = t.Date()
	} else {
		y, m, d = t.UTC().Date()
	}
	return dateToDayNumber(y, m, d)
}

// FormatYMD renders the instant's calendar date under the policy, zero padded.
func FormatYMD(t time.Time, p Policy) string {
	if p == PolicyLocal {
		return t.Format(LayoutISO)
	}
	return t.UTC().Format(LayoutISO)
}

// FromDayNumber reconstructs the instant at exactly dayNumber*24h since the
// epoch. The arithmetic is UTC anchored regardless of policy; the result is
// only suitable for displaying a future calendar date, not for re-deriving a
// day number under PolicyLocal.
func FromDayNumber(dayNumber int) time.Time {
	return time.UnixMilli(int64(dayNumber) * msPerDay).UTC()
}

// ParseDate parses a strict YYYY-MM-DD string into a calendar date, carried
// as a UTC-midnight instant. The second return is false for empty or
// malformed input.
func ParseDate(value string) (time.Time, bool) {
	parts := strings.Split(strings.TrimSpace(value), "-")
	if len(parts) != 3 {
		return time.Time{}, false
	}
	y, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	d, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return time.Time{}, false
	}
	if y == 0 || m < 1 || m > 12 || d < 1 || d > 31 {
		return time.Time{}, false
	}
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	// Reject normalized overflow such as February 31.
	if t.Day() != d || t.Month() != time.Month(m) {
		return time.Time{}, false
	}
	return t, true
}

// DayNumberOfDate returns the day number of a pure calendar date. A date
// with no time component has the same day number under either policy.
func DayNumberOfDate(t time.Time) int {
	y, m, d := t.Date()
	return dateToDayNumber(y, m, d)
}

// HoursBetween returns whole hours from earlier to later, floored.
func HoursBetween(earlier, later time.Time) int {
	return floorDiv(later.UnixMilli()-earlier.UnixMilli(), msPerHour)
}

func dateToDayNumber(y int, m time.Month, d int) int {
	midnight := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return floorDiv(midnight.UnixMilli(), msPerDay)
}

// floorDiv divides rounding toward negative infinity, so pre-epoch dates
// still land on the correct day number.
func floorDiv(a, b int64) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return int(q)
}
