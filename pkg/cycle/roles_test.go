package cycle

import "testing"

func TestDayTypePartition(t *testing.T) {
	counts := map[Role]int{}
	for d := 1; d <= Days; d++ {
		counts[DayType(d)]++
	}
	if counts[RoleAnchor] != 6 {
		t.Errorf("anchor count = %d, want 6", counts[RoleAnchor])
	}
	if counts[RoleEcho] != 6 {
		t.Errorf("echo count = %d, want 6", counts[RoleEcho])
	}
	if counts[RoleLight] != 24 {
		t.Errorf("light count = %d, want 24", counts[RoleLight])
	}
}

func TestDayTypeKnownDays(t *testing.T) {
	tests := []struct {
		day  int
		want Role
	}{
		{1, RoleLight},
		{3, RoleAnchor},
		{18, RoleAnchor},
		{19, RoleLight},
		{21, RoleEcho},
		{36, RoleEcho},
	}
	for _, tt := range tests {
		if got := DayType(tt.day); got != tt.want {
			t.Errorf("DayType(%d) = %s, want %s", tt.day, got, tt.want)
		}
	}
}

func TestPhaseOf(t *testing.T) {
	if got := PhaseOf(18).Name; got != "Phase 1: Sending" {
		t.Errorf("PhaseOf(18) = %q", got)
	}
	if got := PhaseOf(19).Name; got != "Phase 2: Receiving" {
		t.Errorf("PhaseOf(19) = %q", got)
	}
}

func TestNextOccurrenceInCycle(t *testing.T) {
	for d := 1; d <= Days; d++ {
		if got := NextOccurrenceInCycle(d, d); got != 0 {
			t.Errorf("NextOccurrenceInCycle(%d, %d) = %d, want 0", d, d, got)
		}
	}
	if got := NextOccurrenceInCycle(36, 1); got != 1 {
		t.Errorf("NextOccurrenceInCycle(36, 1) = %d, want 1", got)
	}
	if got := NextOccurrenceInCycle(2, 1); got != 35 {
		t.Errorf("NextOccurrenceInCycle(2, 1) = %d, want 35", got)
	}
	if got := NextOccurrenceInCycle(10, 18); got != 8 {
		t.Errorf("NextOccurrenceInCycle(10, 18) = %d, want 8", got)
	}
}

func TestNextSpecialDay(t *testing.T) {
	anchorsOnly := RoleSet(true, false)

	day, in, ok := NextSpecialDay(3, anchorsOnly)
	if !ok || day != 3 || in != 0 {
		t.Errorf("NextSpecialDay(3) = %d, %d, %v; want 3, 0, true", day, in, ok)
	}

	day, in, ok = NextSpecialDay(19, anchorsOnly)
	if !ok || day != 3 || in != 20 {
		t.Errorf("NextSpecialDay(19, anchors) = %d, %d, %v; want 3, 20, true", day, in, ok)
	}

	day, in, ok = NextSpecialDay(19, RoleSet(false, true))
	if !ok || day != 21 || in != 2 {
		t.Errorf("NextSpecialDay(19, echoes) = %d, %d, %v; want 21, 2, true", day, in, ok)
	}

	if _, _, ok := NextSpecialDay(1, map[int]bool{}); ok {
		t.Error("NextSpecialDay with empty set should report !ok")
	}
}
