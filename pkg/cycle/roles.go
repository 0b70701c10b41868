// Package cycle implements the 36-day cycle engine: the fixed day-role
// classification and the deterministic mapping from a reference date and
// "now" to a position within the current cycle.
package cycle

// Days is the fixed length of one cycle.
const Days = 36

// Role classifies a cycle position.
type Role string

const (
	// RoleLight is an ordinary day.
	RoleLight Role = "light"
	// RoleAnchor marks the action-pressure days of the sending phase.
	RoleAnchor Role = "anchor"
	// RoleEcho marks the mirror-return days of the receiving phase.
	RoleEcho Role = "echo"
)

var (
	anchors = map[int]bool{3: true, 6: true, 9: true, 12: true, 15: true, 18: true}
	echoes  = map[int]bool{21: true, 24: true, 27: true, 30: true, 33: true, 36: true}

	// StartWindows are the only positions a fresh pattern may start on.
	StartWindows = []int{1, 18}
)

// Anchors returns the anchor positions in ascending order.
func Anchors() []int { return []int{3, 6, 9, 12, 15, 18} }

// Echoes returns the echo positions in ascending order.
func Echoes() []int { return []int{21, 24, 27, 30, 33, 36} }

// DayType returns the role for a cycle position. Anchors are checked before
// echoes; the sets are disjoint so the order only matters for reading.
func DayType(position int) Role {
	if anchors[position] {
		return RoleAnchor
	}
	if echoes[position] {
		return RoleEcho
	}
	return RoleLight
}

// Phase describes which half of the cycle a position falls in.
type Phase struct {
	Name string
	Desc string
}

// PhaseOf returns the sending phase for positions 1-18 and the receiving
// phase for 19-36.
func PhaseOf(position int) Phase {
	if position <= 18 {
		return Phase{
			Name: "Phase 1: Sending",
			Desc: "Imprint through repetition. Pressure days carry the charge.",
		}
	}
	return Phase{
		Name: "Phase 2: Receiving",
		Desc: "Repeat and observe what returns. Let life respond.",
	}
}

// NextOccurrenceInCycle returns the forward distance in days from current to
// target, zero when they are the same position.
func NextOccurrenceInCycle(current, target int) int {
	return (target - current + Days) % Days
}

// NextSpecialDay scans forward from position (inclusive) for the first
// position whose role matches. ok is false only when roles is empty.
func NextSpecialDay(from int, roles map[int]bool) (day, inDays int, ok bool) {
	for i := 0; i < Days; i++ {
		d := ((from - 1 + i) % Days) + 1
		if roles[d] {
			return d, i, true
		}
	}
	return 0, 0, false
}

// RoleSet builds a membership set for the requested roles, for use with
// NextSpecialDay.
func RoleSet(includeAnchors, includeEchoes bool) map[int]bool {
	set := make(map[int]bool, 12)
	if includeAnchors {
		for _, d := range Anchors() {
			set[d] = true
		}
	}
	if includeEchoes {
		for _, d := range Echoes() {
			set[d] = true
		}
	}
	return set
}
