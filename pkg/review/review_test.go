package review

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"tableflip.dev/cosmic36/pkg/record"
	"tableflip.dev/cosmic36/pkg/timeutil"
)

const dob = "1990-04-16"

func fixture() record.Store {
	c1 := record.New()
	c1.SetNote(5, "walked the long way home")
	c1.SetIntention(5, "move before noon")

	c2 := record.New()
	c2.SetNote(12, "anchor day, repeated the pattern out loud")
	c2.SetReflection(30, "the echo came back quieter than expected")
	c2.Close = record.Close{Lesson: "consistency beats intensity", Carry: "morning walks", Release: "doomscrolling"}

	c3 := record.New()
	c3.SetNote(2, "fresh cycle, same pattern")

	other := record.New()
	other.SetNote(9, "different policy entry")

	return record.Store{
		record.Key(dob, timeutil.PolicyUTC, 1):   c1,
		record.Key(dob, timeutil.PolicyUTC, 2):   c2,
		record.Key(dob, timeutil.PolicyUTC, 3):   c3,
		record.Key(dob, timeutil.PolicyLocal, 4): other,
		"2001-01-01|utc|cycle1":                  record.New(),
	}
}

func TestBuildScopeAll(t *testing.T) {
	items := Build(fixture(), dob, timeutil.PolicyUTC, 3, ScopeAll, AllKinds(), "")

	// 5 day entries plus one close-out; the local-policy record is excluded.
	if len(items) != 6 {
		t.Fatalf("len(items) = %d, want 6: %+v", len(items), items)
	}
	for _, it := range items {
		if strings.Contains(it.Full, "different policy") {
			t.Error("local-policy record leaked into a utc view")
		}
	}

	// Newest cycle first, then higher day first; close-out (day 0) sorts
	// last within its cycle.
	if items[0].CycleIndex != 3 || items[0].Day != 2 {
		t.Errorf("items[0] = %+v, want cycle 3 day 2", items[0])
	}
	last2 := items[len(items)-3]
	if last2.CycleIndex != 2 || last2.Kind != KindClose || last2.Day != 0 {
		t.Errorf("close-out should sort after cycle 2 day entries, got %+v", last2)
	}
}

func TestBuildScopeCycle(t *testing.T) {
	items := Build(fixture(), dob, timeutil.PolicyUTC, 2, ScopeCycle, AllKinds(), "")

	for _, it := range items {
		if it.CycleIndex != 2 {
			t.Errorf("scope=cycle leaked cycle %d: %+v", it.CycleIndex, it)
		}
	}
	if len(items) != 3 {
		t.Errorf("len(items) = %d, want note+reflection+close", len(items))
	}
}

func TestBuildKindFilter(t *testing.T) {
	items := Build(fixture(), dob, timeutil.PolicyUTC, 3, ScopeAll,
		map[Kind]bool{KindIntention: true}, "")

	if len(items) != 1 || items[0].Kind != KindIntention || items[0].Day != 5 {
		t.Errorf("items = %+v, want only the day-5 intention", items)
	}
}

func TestBuildQueryIsCaseInsensitiveSubstring(t *testing.T) {
	items := Build(fixture(), dob, timeutil.PolicyUTC, 3, ScopeAll, AllKinds(), "ECHO came")

	if len(items) != 1 || items[0].Kind != KindReflection || items[0].Day != 30 {
		t.Errorf("items = %+v, want only the day-30 reflection", items)
	}

	if got := Build(fixture(), dob, timeutil.PolicyUTC, 3, ScopeAll, AllKinds(), "no such phrase"); len(got) != 0 {
		t.Errorf("unmatched query returned %+v", got)
	}
}

func TestPreviewCollapsesAndTruncates(t *testing.T) {
	c := record.New()
	long := strings.Repeat("pattern  \n\n holds ", 20)
	c.SetNote(1, long)
	cycles := record.Store{record.Key(dob, timeutil.PolicyUTC, 1): c}

	items := Build(cycles, dob, timeutil.PolicyUTC, 1, ScopeAll, AllKinds(), "")
	if len(items) != 1 {
		t.Fatalf("len(items) = %d", len(items))
	}
	p := items[0].Preview
	if got := utf8.RuneCountInString(p); got != 90 {
		t.Errorf("rune count = %d, want 90", got)
	}
	if strings.Contains(p, "\n") || strings.Contains(p, "  ") {
		t.Errorf("preview not collapsed: %q", p)
	}
}

func TestPreviewTruncatesOnRuneBoundary(t *testing.T) {
	c := record.New()
	c.SetNote(1, "a"+strings.Repeat("é", 120))
	cycles := record.Store{record.Key(dob, timeutil.PolicyUTC, 1): c}

	items := Build(cycles, dob, timeutil.PolicyUTC, 1, ScopeAll, AllKinds(), "")
	if len(items) != 1 {
		t.Fatalf("len(items) = %d", len(items))
	}
	p := items[0].Preview
	if !utf8.ValidString(p) {
		t.Fatalf("preview is not valid UTF-8: %q", p)
	}
	if got := utf8.RuneCountInString(p); got != 90 {
		t.Errorf("rune count = %d, want 90", got)
	}
	if !strings.HasSuffix(p, "é") {
		t.Errorf("preview ends mid-character: %q", p)
	}
}

func TestWhitespaceOnlyEntriesAreSkipped(t *testing.T) {
	c := record.New()
	c.SetNote(7, "   \n\t  ")
	cycles := record.Store{record.Key(dob, timeutil.PolicyUTC, 1): c}

	if items := Build(cycles, dob, timeutil.PolicyUTC, 1, ScopeAll, AllKinds(), ""); len(items) != 0 {
		t.Errorf("items = %+v, want none", items)
	}
}

func TestCloseItemsAreReadOnly(t *testing.T) {
	items := Build(fixture(), dob, timeutil.PolicyUTC, 2, ScopeCycle,
		map[Kind]bool{KindClose: true}, "")

	if len(items) != 1 {
		t.Fatalf("len(items) = %d, want 1", len(items))
	}
	it := items[0]
	if it.Editable {
		t.Error("close-out items must not be editable in place")
	}
	if it.Badge != "close" || it.Day != 0 {
		t.Errorf("item = %+v", it)
	}
	for _, q := range []string{
		"What did this cycle teach me?",
		"What stays (what I carry forward)?",
		"What leaves (what I release)?",
	} {
		if !strings.Contains(it.Full, q) {
			t.Errorf("close text missing %q:\n%s", q, it.Full)
		}
	}
}

func TestUnsetReferenceDateYieldsNothing(t *testing.T) {
	if items := Build(fixture(), "", timeutil.PolicyUTC, 1, ScopeAll, AllKinds(), ""); items != nil {
		t.Errorf("items = %+v, want nil", items)
	}
}

func TestExportNotes(t *testing.T) {
	items := Build(fixture(), dob, timeutil.PolicyUTC, 3, ScopeAll,
		map[Kind]bool{KindNote: true}, "")
	now := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)

	out := ExportNotes(items, dob, "utc", ScopeAll, now)

	for _, want := range []string{
		"COSMIC 36 — NOTES EXPORT",
		"Exported: 2024-03-01T12:30:00Z",
		"DOB: 1990-04-16",
		"Mode: utc",
		"Scope: all",
		"Cycle 2 — Day 12 (ANCHOR) [note]",
		strings.Repeat("-", 60),
	} {
		if !strings.Contains(out, want) {
			t.Errorf("export missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "[intention]") {
		t.Error("notes export should not contain intentions")
	}
}

func TestExportEmpty(t *testing.T) {
	out := ExportClose(nil, "", "utc", ScopeCycle, time.Unix(0, 0))
	if !strings.Contains(out, "(no entries)") || !strings.Contains(out, "DOB: (not set)") {
		t.Errorf("empty export:\n%s", out)
	}
}
