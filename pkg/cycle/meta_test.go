package cycle

import (
	"testing"
	"time"

	"tableflip.dev/cosmic36/pkg/timeutil"
)

func TestComputeMetaUnset(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	for _, ref := range []string{"", "not-a-date", "2024-13-01"} {
		if _, ok := ComputeMeta(ref, timeutil.PolicyUTC, now); ok {
			t.Errorf("ComputeMeta(%q) should be unset", ref)
		}
	}

	// A future reference date is a valid zero-progress state that presents
	// the same as unset.
	if _, ok := ComputeMeta("2030-01-01", timeutil.PolicyUTC, now); ok {
		t.Error("future reference date should be unset")
	}
}

func TestComputeMetaFreshCycle(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	meta, ok := ComputeMeta("2024-03-01", timeutil.PolicyUTC, now)
	if !ok {
		t.Fatal("expected meta")
	}
	if meta.DaysLived != 0 || meta.DayInCycle != 1 || meta.CycleIndex != 1 {
		t.Errorf("fresh cycle meta = %+v", meta)
	}
	if meta.CycleStart != "2024-03-01" {
		t.Errorf("CycleStart = %q, want 2024-03-01", meta.CycleStart)
	}
	if DayType(meta.DayInCycle) != RoleLight {
		t.Errorf("day 1 role = %s, want light", DayType(meta.DayInCycle))
	}
	if PhaseOf(meta.DayInCycle).Name != "Phase 1: Sending" {
		t.Errorf("day 1 phase = %q", PhaseOf(meta.DayInCycle).Name)
	}
}

func TestComputeMetaBoundaryDays(t *testing.T) {
	ref := "2024-01-01"

	// daysLived = 35: last day of cycle 1, an echo day.
	now := time.Date(2024, 2, 5, 8, 0, 0, 0, time.UTC)
	meta, ok := ComputeMeta(ref, timeutil.PolicyUTC, now)
	if !ok {
		t.Fatal("expected meta")
	}
	if meta.DaysLived != 35 || meta.DayInCycle != 36 || meta.CycleIndex != 1 {
		t.Errorf("day 35 meta = %+v", meta)
	}
	if DayType(meta.DayInCycle) != RoleEcho {
		t.Errorf("day 36 role = %s, want echo", DayType(meta.DayInCycle))
	}

	// daysLived = 36: first day of cycle 2.
	now = now.AddDate(0, 0, 1)
	meta, ok = ComputeMeta(ref, timeutil.PolicyUTC, now)
	if !ok {
		t.Fatal("expected meta")
	}
	if meta.DaysLived != 36 || meta.DayInCycle != 1 || meta.CycleIndex != 2 {
		t.Errorf("day 36 meta = %+v", meta)
	}
	if meta.CycleStart != "2024-02-06" {
		t.Errorf("cycle 2 start = %q, want 2024-02-06", meta.CycleStart)
	}
}

func TestComputeMetaRoundTrip(t *testing.T) {
	ref := "2023-06-15"
	for offset := 0; offset < 120; offset++ {
		now := time.Date(2023, 6, 15, 10, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
		meta, ok := ComputeMeta(ref, timeutil.PolicyUTC, now)
		if !ok {
			t.Fatalf("offset %d: expected meta", offset)
		}
		if meta.DayInCycle < 1 || meta.DayInCycle > Days {
			t.Fatalf("offset %d: DayInCycle %d out of range", offset, meta.DayInCycle)
		}
		if meta.CycleIndex < 1 {
			t.Fatalf("offset %d: CycleIndex %d < 1", offset, meta.CycleIndex)
		}
		startOffset := meta.DaysLived - (meta.DaysLived % Days)
		if startOffset+meta.DayInCycle-1 != meta.DaysLived {
			t.Fatalf("offset %d: start offset %d + position %d - 1 != days lived %d",
				offset, startOffset, meta.DayInCycle, meta.DaysLived)
		}
	}
}

func TestPatternStarts(t *testing.T) {
	ref := "2024-01-01"
	// daysLived = 9, position 10.
	now := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)

	day1, day18, ok := PatternStarts(ref, timeutil.PolicyUTC, now)
	if !ok {
		t.Fatal("expected pattern starts")
	}
	if day1.InDays != 27 {
		t.Errorf("day1.InDays = %d, want 27", day1.InDays)
	}
	if day18.InDays != 8 {
		t.Errorf("day18.InDays = %d, want 8", day18.InDays)
	}
	if got := timeutil.FormatYMD(day18.Date, timeutil.PolicyUTC); got != "2024-01-18" {
		t.Errorf("day18 date = %q, want 2024-01-18", got)
	}

	if got := SoonerPatternStart(day1, day18); got.Day != 18 {
		t.Errorf("sooner start = day %d, want 18", got.Day)
	}

	// On a start window itself the distance is zero and ties favor day 1.
	now = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	day1, day18, _ = PatternStarts(ref, timeutil.PolicyUTC, now)
	if day1.InDays != 0 {
		t.Errorf("on day 1, day1.InDays = %d, want 0", day1.InDays)
	}
	equal := PatternStart{Day: 1, InDays: 5}
	if got := SoonerPatternStart(equal, PatternStart{Day: 18, InDays: 5}); got.Day != 1 {
		t.Errorf("tie should favor day 1, got day %d", got.Day)
	}
}

func TestDateOfPosition(t *testing.T) {
	ref := "2024-01-01"
	now := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC) // position 10

	date, ok := DateOfPosition(ref, timeutil.PolicyUTC, now, 10)
	if !ok {
		t.Fatal("expected date")
	}
	if got := date.Format("2006-01-02"); got != "2024-01-10" {
		t.Errorf("position 10 date = %q, want 2024-01-10", got)
	}

	date, _ = DateOfPosition(ref, timeutil.PolicyUTC, now, 36)
	if got := date.Format("2006-01-02"); got != "2024-02-05" {
		t.Errorf("position 36 date = %q, want 2024-02-05", got)
	}
}
