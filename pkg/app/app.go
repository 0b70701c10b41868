// Package app wires the store, settings, journal, cycle engine, and the
// autosave coordinator into one service shared by the CLI, the TUI, and the
// MCP surface.
package app

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"tableflip.dev/cosmic36/pkg/autosave"
	"tableflip.dev/cosmic36/pkg/cycle"
	"tableflip.dev/cosmic36/pkg/journal"
	"tableflip.dev/cosmic36/pkg/record"
	"tableflip.dev/cosmic36/pkg/review"
	"tableflip.dev/cosmic36/pkg/settings"
	"tableflip.dev/cosmic36/pkg/store"
	"tableflip.dev/cosmic36/pkg/timeutil"
)

// ErrNoDate is returned by operations that need a reference date before one
// has been set.
var ErrNoDate = errors.New("app: no reference date set")

// Service is the shared application core. One in-memory record backs the
// current cycle; the day card and any other surface edit the same value, so
// a debounced save from one is never stale for the other.
type Service struct {
	KV       store.KV
	Journal  *journal.Journal
	Settings settings.Settings
	Saves    *autosave.Coordinator

	// Now is swappable for tests.
	Now func() time.Time

	// mu guards key, current, autoMarked, and every Journal access: the
	// journal's map and record values are shared between surface
	// goroutines and the autosave commit timers.
	mu         sync.Mutex
	key        string
	current    *record.Cycle
	autoMarked map[int]bool
}

// New loads settings and the journal and binds the current cycle record.
func New(kv store.KV) (*Service, error) {
	s, err := settings.Load(kv)
	if err != nil {
		return nil, err
	}
	j, err := journal.Load(kv)
	if err != nil {
		return nil, err
	}
	svc := &Service{
		KV:       kv,
		Journal:  j,
		Settings: s,
		Saves:    &autosave.Coordinator{},
		Now:      time.Now,
	}
	svc.mu.Lock()
	svc.rebind()
	svc.mu.Unlock()
	return svc, nil
}

// rebind recomputes the composite key for "today" and swaps the shared
// record when the key changed (midnight rollover, or a settings change).
// Callers hold s.mu.
func (s *Service) rebind() {
	meta, ok := cycle.ComputeMeta(s.Settings.DOB, s.Settings.Policy(), s.Now())
	if !ok {
		s.key = ""
		s.current = nil
		s.autoMarked = nil
		return
	}
	key := record.Key(s.Settings.DOB, s.Settings.Policy(), meta.CycleIndex)
	if key == s.key && s.current != nil {
		return
	}
	s.key = key
	s.current = s.Journal.GetOrCreate(s.Settings.DOB, s.Settings.Policy(), meta.CycleIndex)
	s.autoMarked = make(map[int]bool)
}

// Refresh re-derives the current cycle binding; call after a day boundary
// or an external store change.
func (s *Service) Refresh() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rebind()
}

// Meta locates now within the current cycle.
func (s *Service) Meta() (cycle.Meta, bool) {
	return cycle.ComputeMeta(s.Settings.DOB, s.Settings.Policy(), s.Now())
}

// Policy returns the active day-boundary policy.
func (s *Service) Policy() timeutil.Policy { return s.Settings.Policy() }

// Today is the assembled day-card state.
type Today struct {
	Meta       cycle.Meta
	Role       cycle.Role
	Phase      cycle.Phase
	Done       bool
	Note       string
	Intention  string
	Reflection string
	Close      record.Close
	DoneCount  int
	Gentle     bool
}

// Today assembles the current day card. ok is false when no valid reference
// date is set.
func (s *Service) Today() (Today, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rebind()
	if s.current == nil {
		return Today{}, false
	}
	meta, _ := cycle.ComputeMeta(s.Settings.DOB, s.Settings.Policy(), s.Now())
	day := meta.DayInCycle
	return Today{
		Meta:       meta,
		Role:       cycle.DayType(day),
		Phase:      cycle.PhaseOf(day),
		Done:       s.current.IsDone(day),
		Note:       s.current.Note(day),
		Intention:  s.current.IntentionFor(day),
		Reflection: s.current.ReflectionFor(day),
		Close:      s.current.Close,
		DoneCount:  s.current.DoneCount(),
		Gentle:     s.Settings.Gentle,
	}, true
}

// Current exposes the in-memory record backing the current cycle, for
// surfaces that render the whole cycle strip.
func (s *Service) Current() (*record.Cycle, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rebind()
	if s.current == nil {
		return nil, false
	}
	return s.current, true
}

// Field write targets for the autosave coordinator.
const (
	TargetNote       = "note"
	TargetIntention  = "intention"
	TargetReflection = "reflection"
	TargetClose      = "close"
)

// SetNote schedules a debounced save of today's note.
func (s *Service) SetNote(text string) error {
	return s.scheduleField(TargetNote, func(c *record.Cycle, day int) {
		c.SetNote(day, text)
	})
}

// SetIntention schedules a debounced save of today's intention.
func (s *Service) SetIntention(text string) error {
	return s.scheduleField(TargetIntention, func(c *record.Cycle, day int) {
		c.SetIntention(day, text)
	})
}

// SetReflection schedules a debounced save of today's reflection.
func (s *Service) SetReflection(text string) error {
	return s.scheduleField(TargetReflection, func(c *record.Cycle, day int) {
		c.SetReflection(day, text)
	})
}

// SetClose schedules a debounced save of the cycle close-out group.
func (s *Service) SetClose(close record.Close) error {
	return s.scheduleField(TargetClose, func(c *record.Cycle, _ int) {
		c.Close = close
	})
}

// scheduleField captures the record and day at edit time, so a save timer
// that crosses midnight still writes to the day the edit belonged to.
func (s *Service) scheduleField(target string, apply func(c *record.Cycle, day int)) error {
	s.mu.Lock()
	s.rebind()
	if s.current == nil {
		s.mu.Unlock()
		return ErrNoDate
	}
	meta, _ := cycle.ComputeMeta(s.Settings.DOB, s.Settings.Policy(), s.Now())
	rec, key, day := s.current, s.key, meta.DayInCycle
	s.mu.Unlock()

	s.Saves.Schedule(target, func() error {
		s.mu.Lock()
		defer s.mu.Unlock()
		apply(rec, day)
		s.syncAutoDone(rec, day)
		return s.Journal.PutKey(key, rec)
	})
	return nil
}

// syncAutoDone derives the done flag from content presence. Content
// appearing marks the day; content emptying unmarks it only when the mark
// was auto-derived, so an explicit mark survives a cleared field. Callers
// hold s.mu.
func (s *Service) syncAutoDone(c *record.Cycle, day int) {
	has := c.HasContent(day)
	switch {
	case has && !c.IsDone(day):
		c.SetDone(day, true)
		s.autoMarked[day] = true
	case !has && c.IsDone(day) && s.autoMarked[day]:
		c.SetDone(day, false)
		delete(s.autoMarked, day)
	}
}

// SetDoneToday explicitly marks or unmarks today. Explicit intent wins over
// the auto-marking rule until the next content edit.
func (s *Service) SetDoneToday(done bool) error {
	return s.SetDoneOn(0, done)
}

// SetDoneOn marks or unmarks a position in the current cycle; day 0 means
// today.
func (s *Service) SetDoneOn(day int, done bool) error {
	if day < 0 || day > cycle.Days {
		return fmt.Errorf("app: day %d out of range", day)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rebind()
	if s.current == nil {
		return ErrNoDate
	}
	if day == 0 {
		meta, _ := cycle.ComputeMeta(s.Settings.DOB, s.Settings.Policy(), s.Now())
		day = meta.DayInCycle
	}
	s.current.SetDone(day, done)
	delete(s.autoMarked, day)

	return s.Journal.PutKey(s.key, s.current)
}

// CurrentKey returns the composite key of the bound cycle record.
func (s *Service) CurrentKey() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rebind()
	if s.current == nil {
		return "", false
	}
	return s.key, true
}

// ClearCycle discards every entry in the current cycle and rebinds a fresh
// empty record. Pending saves are cancelled first so a stale timer cannot
// resurrect cleared text.
func (s *Service) ClearCycle() error {
	s.mu.Lock()
	if s.current == nil {
		s.mu.Unlock()
		return ErrNoDate
	}
	key := s.key
	s.mu.Unlock()

	// Cancel timers outside the lock; a commit that already fired is
	// serialized against the clear below by s.mu.
	s.Saves.Close()

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.Journal.Clear(key); err != nil {
		return err
	}
	s.current = record.New()
	s.autoMarked = make(map[int]bool)
	return nil
}

// SaveEdit writes an edited entry from the review list directly into its
// record, whatever cycle it belongs to. Close-out entries are read-only
// there.
func (s *Service) SaveEdit(storeKey string, day int, kind review.Kind, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.Journal.Get(storeKey)
	if !ok {
		// The current cycle lives in memory until its first save.
		if storeKey != s.key || s.current == nil {
			return fmt.Errorf("app: no record for %q", storeKey)
		}
		rec = s.current
	}
	switch kind {
	case review.KindNote:
		rec.SetNote(day, text)
	case review.KindIntention:
		rec.SetIntention(day, text)
	case review.KindReflection:
		rec.SetReflection(day, text)
	default:
		return fmt.Errorf("app: %s entries are not editable in review", kind)
	}
	if rec == s.current {
		s.syncAutoDone(rec, day)
	}
	return s.Journal.PutKey(storeKey, rec)
}

// Record looks up a stored cycle record by its composite key.
func (s *Service) Record(key string) (*record.Cycle, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Journal.Get(key)
}

// CycleKeys lists the composite keys under the active settings prefix,
// newest cycle first.
func (s *Service) CycleKeys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Journal.Keys(record.Prefix(s.Settings.DOB, s.Settings.Policy()))
}

// Review builds the filtered entry list across cycles.
func (s *Service) Review(scope review.Scope, kinds map[review.Kind]bool, query string) []review.Item {
	meta, ok := s.Meta()
	if !ok {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return review.Build(s.Journal.All(), s.Settings.DOB, s.Settings.Policy(),
		meta.CycleIndex, scope, kinds, query)
}

// PatternStarts reports the next day-1 and day-18 entry windows.
func (s *Service) PatternStarts() (day1, day18 cycle.PatternStart, ok bool) {
	return cycle.PatternStarts(s.Settings.DOB, s.Settings.Policy(), s.Now())
}

// SaveSettings persists new settings and rebinds the current record; records
// written under a previous reference date or policy stay in the store but
// stop matching the composite-key prefix.
func (s *Service) SaveSettings(next settings.Settings) error {
	if err := settings.Save(s.KV, next); err != nil {
		return err
	}
	s.mu.Lock()
	s.Settings = next
	s.key = "" // force rebind even when the composite key would match
	s.rebind()
	s.mu.Unlock()
	return nil
}

// Reload re-reads both blobs from the store, for surfaces reacting to an
// external change (another shell, the backup collaborator).
func (s *Service) Reload() error {
	st, err := settings.Load(s.KV)
	if err != nil {
		return err
	}
	j, err := journal.Load(s.KV)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.Settings = st
	s.Journal = j
	s.key = ""
	s.rebind()
	s.mu.Unlock()
	return nil
}

// Flush drains every pending debounced save. One-shot commands call this
// before exit so nothing is lost to a cancelled timer.
func (s *Service) Flush() error {
	return s.Saves.FlushAll()
}
