// Package review builds the filtered, sorted, cross-cycle view of journal
// entries used for in-place editing and export.
package review

import (
	"sort"
	"strings"

	"tableflip.dev/cosmic36/pkg/cycle"
	"tableflip.dev/cosmic36/pkg/record"
	"tableflip.dev/cosmic36/pkg/timeutil"
)

// Scope selects which cycles feed the view.
type Scope string

const (
	// ScopeCycle restricts the view to the current cycle.
	ScopeCycle Scope = "cycle"
	// ScopeAll spans every cycle under the current reference/policy pair.
	ScopeAll Scope = "all"
)

// Kind identifies the entry family an item came from.
type Kind string

const (
	KindNote       Kind = "note"
	KindIntention  Kind = "intention"
	KindReflection Kind = "reflection"
	KindClose      Kind = "close"
)

// AllKinds enables every entry family.
func AllKinds() map[Kind]bool {
	return map[Kind]bool{KindNote: true, KindIntention: true, KindReflection: true, KindClose: true}
}

const previewLen = 90

// Item is one reviewable entry.
type Item struct {
	CycleIndex int
	Day        int // 0 for close-out items, which are cycle scoped
	Kind       Kind
	Badge      string // day role, or "close"
	Preview    string
	Full       string
	StoreKey   string
	Editable   bool
}

// Build flattens the store into review items. Only keys under the
// (refDate, policy) prefix are considered; ScopeCycle further restricts to
// currentIndex. Records orphaned by a settings change simply stop matching
// the prefix.
func Build(cycles record.Store, refDate string, policy timeutil.Policy, currentIndex int, scope Scope, kinds map[Kind]bool, query string) []Item {
	if refDate == "" {
		return nil
	}
	prefix := record.Prefix(refDate, policy)
	onlyKey := record.Key(refDate, policy, currentIndex)
	q := strings.ToLower(strings.TrimSpace(query))

	var items []Item
	for key, c := range cycles {
		if !strings.HasPrefix(key, prefix) || c == nil {
			continue
		}
		if scope == ScopeCycle && key != onlyKey {
			continue
		}
		_, _, cIndex, ok := record.ParseKey(key)
		if !ok {
			continue
		}

		if kinds[KindNote] {
			items = appendDayItems(items, key, cIndex, KindNote, c.Notes, q)
		}
		if kinds[KindIntention] {
			items = appendDayItems(items, key, cIndex, KindIntention, c.Intention, q)
		}
		if kinds[KindReflection] {
			items = appendDayItems(items, key, cIndex, KindReflection, c.Reflection, q)
		}
		if kinds[KindClose] && c.Close.HasContent() {
			full := FormatClose(c.Close)
			if it, ok := makeItem(key, cIndex, 0, KindClose, "close", full, false, q); ok {
				items = append(items, it)
			}
		}
	}

	sort.Slice(items, func(i, k int) bool {
		a, b := items[i], items[k]
		if a.CycleIndex != b.CycleIndex {
			return a.CycleIndex > b.CycleIndex
		}
		if a.Day != b.Day {
			return a.Day > b.Day
		}
		return a.Kind < b.Kind
	})
	return items
}

func appendDayItems(items []Item, key string, cIndex int, kind Kind, entries map[string]string, q string) []Item {
	for dayStr, text := range entries {
		day := parseDay(dayStr)
		if day == 0 {
			continue
		}
		badge := string(cycle.DayType(day))
		if it, ok := makeItem(key, cIndex, day, kind, badge, text, true, q); ok {
			items = append(items, it)
		}
	}
	return items
}

func makeItem(key string, cIndex, day int, kind Kind, badge, text string, editable bool, q string) (Item, bool) {
	full := normalize(text)
	if full == "" {
		return Item{}, false
	}
	preview := collapse(full)
	// Truncate on a rune boundary; a byte slice could split a multi-byte
	// character and leak invalid UTF-8 into tables and JSON.
	if r := []rune(preview); len(r) > previewLen {
		preview = string(r[:previewLen])
	}
	if q != "" {
		hay := strings.ToLower(preview + " " + full)
		if !strings.Contains(hay, q) {
			return Item{}, false
		}
	}
	return Item{
		CycleIndex: cIndex,
		Day:        day,
		Kind:       kind,
		Badge:      badge,
		Preview:    preview,
		Full:       full,
		StoreKey:   key,
		Editable:   editable,
	}, true
}

// FormatClose renders the close-out group with its question labels, the
// same wording the export uses.
func FormatClose(c record.Close) string {
	if !c.HasContent() {
		return ""
	}
	var b strings.Builder
	b.WriteString("What did this cycle teach me?\n")
	b.WriteString(normalize(c.Lesson))
	b.WriteString("\n\nWhat stays (what I carry forward)?\n")
	b.WriteString(normalize(c.Carry))
	b.WriteString("\n\nWhat leaves (what I release)?\n")
	b.WriteString(normalize(c.Release))
	return b.String()
}

func parseDay(s string) int {
	day := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0
		}
		day = day*10 + int(r-'0')
	}
	return day
}

// normalize unifies line endings and trims, mirroring the web client's
// escapePlain.
func normalize(text string) string {
	return strings.TrimSpace(strings.ReplaceAll(text, "\r\n", "\n"))
}

// collapse flattens all whitespace runs to single spaces for previews.
func collapse(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
