// Package record defines the per-cycle journal record, the unit of
// persistence. The JSON shape is stable so a backed-up blob restores
// byte-compatibly: done flags and free-text maps are keyed by the cycle
// position rendered as a string.
package record

import (
	"strconv"
	"strings"
	"time"
)

// CurrentSchema is stamped on records by Normalize. Older blobs carry no
// schema field and may be missing the intention, reflection, or close
// fields; Normalize backfills them instead of guarding every read site.
const CurrentSchema = 1

// Close holds the cycle close-out group, written meaningfully on day 36.
type Close struct {
	Lesson  string `json:"lesson"`
	Carry   string `json:"carry"`
	Release string `json:"release"`
}

// HasContent reports whether any close-out field is non-empty.
func (c Close) HasContent() bool {
	return strings.TrimSpace(c.Lesson) != "" ||
		strings.TrimSpace(c.Carry) != "" ||
		strings.TrimSpace(c.Release) != ""
}

// Cycle is one cycle's journal record.
type Cycle struct {
	Schema     int               `json:"schema,omitempty"`
	UpdatedAt  int64             `json:"updatedAt"` // unix millis, informational only
	Done       map[string]bool   `json:"done"`
	Notes      map[string]string `json:"notes"`
	Intention  map[string]string `json:"intention"`
	Reflection map[string]string `json:"reflection"`
	Close      Close             `json:"close"`
}

// New returns an empty record. It is not persisted until the first Put.
func New() *Cycle {
	c := &Cycle{UpdatedAt: time.Now().UnixMilli()}
	c.Normalize()
	return c
}

// Normalize backfills fields that older schema versions did not write.
func (c *Cycle) Normalize() {
	if c.Done == nil {
		c.Done = make(map[string]bool)
	}
	if c.Notes == nil {
		c.Notes = make(map[string]string)
	}
	if c.Intention == nil {
		c.Intention = make(map[string]string)
	}
	if c.Reflection == nil {
		c.Reflection = make(map[string]string)
	}
	c.Schema = CurrentSchema
}

// DayKey renders a cycle position as a record map key.
func DayKey(day int) string {
	return strconv.Itoa(day)
}

// Note returns the daily note for a position.
func (c *Cycle) Note(day int) string { return c.Notes[DayKey(day)] }

// SetNote stores the daily note for a position.
func (c *Cycle) SetNote(day int, text string) { c.Notes[DayKey(day)] = text }

// IntentionFor returns the intention entry for a position.
func (c *Cycle) IntentionFor(day int) string { return c.Intention[DayKey(day)] }

// SetIntention stores the intention entry for a position.
func (c *Cycle) SetIntention(day int, text string) { c.Intention[DayKey(day)] = text }

// ReflectionFor returns the reflection entry for a position.
func (c *Cycle) ReflectionFor(day int) string { return c.Reflection[DayKey(day)] }

// SetReflection stores the reflection entry for a position.
func (c *Cycle) SetReflection(day int, text string) { c.Reflection[DayKey(day)] = text }

// IsDone reports the marked flag for a position.
func (c *Cycle) IsDone(day int) bool { return c.Done[DayKey(day)] }

// SetDone marks a position; unmarking removes the key entirely so the
// serialized map only ever contains true flags.
func (c *Cycle) SetDone(day int, done bool) {
	if done {
		c.Done[DayKey(day)] = true
		return
	}
	delete(c.Done, DayKey(day))
}

// DoneCount returns how many positions are marked.
func (c *Cycle) DoneCount() int { return len(c.Done) }

// HasContent reports whether any content field for the position is
// non-empty. The close-out group is cycle scoped, so it counts for every
// position.
func (c *Cycle) HasContent(day int) bool {
	if strings.TrimSpace(c.Note(day)) != "" {
		return true
	}
	if strings.TrimSpace(c.IntentionFor(day)) != "" {
		return true
	}
	if strings.TrimSpace(c.ReflectionFor(day)) != "" {
		return true
	}
	return c.Close.HasContent()
}

// Store is the full persisted record map, keyed by the composite cycle key.
type Store map[string]*Cycle
