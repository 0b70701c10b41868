package cycle

import (
	"time"

	"tableflip.dev/cosmic36/pkg/timeutil"
)

// Meta locates "now" within the cycle derived from a reference date.
type Meta struct {
	DaysLived  int
	DayInCycle int    // 1..36
	CycleIndex int    // 1-based sequence number of the current cycle
	CycleStart string // YYYY-MM-DD of the current cycle's first day
	HoursLived int    // display only, never used in cycle math
}

// ComputeMeta classifies now against the reference date under the policy.
// ok is false when the reference date is empty, malformed, or in the future;
// callers render all three identically as "no date set".
func ComputeMeta(refDate string, policy timeutil.Policy, now time.Time) (Meta, bool) {
	ref, ok := timeutil.ParseDate(refDate)
	if !ok {
		return Meta{}, false
	}

	// The reference date is a pure calendar date, so its day number is the
	// same under either policy; only "now" needs the boundary choice.
	refDay := timeutil.DayNumberOfDate(ref)
	todayDay := timeutil.DayNumber(now, policy)
	if todayDay < refDay {
		return Meta{}, false
	}
	daysLived := todayDay - refDay

	// The cycle's first calendar day is derived in the reference date's own
	// calendar rather than via FromDayNumber, so the anchor never drifts
	// across the utc/local seam.
	startOffset := daysLived - (daysLived % Days)
	y, m, d := ref.Date()
	start := time.Date(y, m, d+startOffset, 0, 0, 0, 0, ref.Location())

	return Meta{
		DaysLived:  daysLived,
		DayInCycle: (daysLived % Days) + 1,
		CycleIndex: daysLived/Days + 1,
		CycleStart: start.Format(timeutil.LayoutISO),
		HoursLived: timeutil.HoursBetween(ref, now),
	}, true
}

// DateOfPosition returns the calendar date of the given position within the
// current cycle, derived from the same reference-calendar anchor as
// CycleStart.
func DateOfPosition(refDate string, policy timeutil.Policy, now time.Time, position int) (time.Time, bool) {
	meta, ok := ComputeMeta(refDate, policy, now)
	if !ok {
		return time.Time{}, false
	}
	ref, _ := timeutil.ParseDate(refDate)
	startOffset := meta.DaysLived - (meta.DaysLived % Days)
	y, m, d := ref.Date()
	return time.Date(y, m, d+startOffset+position-1, 0, 0, 0, 0, ref.Location()), true
}

// PatternStart is one of the two valid entry points into a fresh pattern.
type PatternStart struct {
	Day    int // 1 or 18
	InDays int
	Date   time.Time
}

// PatternStarts reports the forward distance to the next day-1 and day-18
// entry points. ok mirrors ComputeMeta.
func PatternStarts(refDate string, policy timeutil.Policy, now time.Time) (day1, day18 PatternStart, ok bool) {
	meta, found := ComputeMeta(refDate, policy, now)
	if !found {
		return PatternStart{}, PatternStart{}, false
	}

	todayDay := timeutil.DayNumber(now, policy)
	in1 := NextOccurrenceInCycle(meta.DayInCycle, 1)
	in18 := NextOccurrenceInCycle(meta.DayInCycle, 18)

	day1 = PatternStart{Day: 1, InDays: in1, Date: timeutil.FromDayNumber(todayDay + in1)}
	day18 = PatternStart{Day: 18, InDays: in18, Date: timeutil.FromDayNumber(todayDay + in18)}
	return day1, day18, true
}

// SoonerPatternStart picks whichever entry point arrives first, favoring
// day 1 on ties.
func SoonerPatternStart(day1, day18 PatternStart) PatternStart {
	if day18.InDays < day1.InDays {
		return day18
	}
	return day1
}
