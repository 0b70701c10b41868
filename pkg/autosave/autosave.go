// Package autosave debounces free-text edits into batched saves. Each
// editable target owns a single pending task: a new edit cancels and
// reschedules it, so the last edit inside the debounce window is the one
// persisted. Targets are independent; an edit in one field never disturbs
// a pending save in another.
package autosave

import (
	"errors"
	"sync"
	"time"
)

// Status is reported to the save indicator as a target moves through its
// save lifecycle.
type Status int

const (
	// StatusIdle is the rest label ("Autosave enabled").
	StatusIdle Status = iota
	// StatusSaving means a save is pending or running.
	StatusSaving
	// StatusSaved means the last commit succeeded; it reverts to idle
	// after the settle window.
	StatusSaved
	// StatusFailed means the commit errored; the unsaved value stays in
	// memory so a later edit or flush can retry.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusSaving:
		return "Saving…"
	case StatusSaved:
		return "Saved ✓"
	case StatusFailed:
		return "Save failed"
	default:
		return "Autosave enabled"
	}
}

const (
	// DefaultDelay is the debounce window between the last edit and the
	// commit.
	DefaultDelay = 650 * time.Millisecond
	// DefaultSettle is how long the saved indicator shows before
	// reverting to idle.
	DefaultSettle = time.Second
)

// Coordinator schedules per-target debounced commits.
type Coordinator struct {
	// Delay and Settle fall back to the package defaults when zero.
	Delay  time.Duration
	Settle time.Duration
	// OnStatus, when set, observes every indicator transition. It is
	// called outside the coordinator's locks.
	OnStatus func(target string, s Status)

	mu       sync.Mutex
	gen      uint64
	pending  map[string]*pendingSave
	reverts  map[string]*time.Timer
	commitMu sync.Mutex
}

type pendingSave struct {
	gen    uint64
	timer  *time.Timer
	commit func() error
}

// Schedule arms (or re-arms) the save task for target. commit captures the
// field value at call time; whichever Schedule call survives the debounce
// window is the one whose commit runs.
func (c *Coordinator) Schedule(target string, commit func() error) {
	c.mu.Lock()
	if c.pending == nil {
		c.pending = make(map[string]*pendingSave)
	}
	if prev := c.pending[target]; prev != nil {
		prev.timer.Stop()
	}
	if rt := c.reverts[target]; rt != nil {
		rt.Stop()
		delete(c.reverts, target)
	}
	c.gen++
	p := &pendingSave{gen: c.gen, commit: commit}
	gen := p.gen
	p.timer = time.AfterFunc(c.delay(), func() { c.fire(target, gen) })
	c.pending[target] = p
	c.mu.Unlock()

	c.notify(target, StatusSaving)
}

// Flush runs the pending save for target immediately, if any. Used when a
// field loses focus or the process is about to exit.
func (c *Coordinator) Flush(target string) error {
	c.mu.Lock()
	p := c.pending[target]
	if p != nil {
		p.timer.Stop()
		delete(c.pending, target)
	}
	c.mu.Unlock()

	if p == nil {
		return nil
	}
	return c.runCommit(target, p.commit)
}

// FlushAll drains every pending save.
func (c *Coordinator) FlushAll() error {
	c.mu.Lock()
	drained := c.pending
	c.pending = make(map[string]*pendingSave)
	c.mu.Unlock()

	var errs []error
	for target, p := range drained {
		p.timer.Stop()
		if err := c.runCommit(target, p.commit); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// HasPending reports whether target has an uncommitted edit.
func (c *Coordinator) HasPending(target string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending[target] != nil
}

// Close cancels every pending timer without committing. Callers that want
// the edits persisted should FlushAll first.
func (c *Coordinator) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range c.pending {
		p.timer.Stop()
	}
	for _, rt := range c.reverts {
		rt.Stop()
	}
	c.pending = make(map[string]*pendingSave)
	c.reverts = nil
}

func (c *Coordinator) fire(target string, gen uint64) {
	c.mu.Lock()
	p := c.pending[target]
	if p == nil || p.gen != gen {
		// Superseded by a newer edit or a flush.
		c.mu.Unlock()
		return
	}
	delete(c.pending, target)
	c.mu.Unlock()

	_ = c.runCommit(target, p.commit)
}

// runCommit serializes commits so two targets never interleave writes to
// the shared record blob.
func (c *Coordinator) runCommit(target string, commit func() error) error {
	c.commitMu.Lock()
	err := commit()
	c.commitMu.Unlock()

	if err != nil {
		c.notify(target, StatusFailed)
		return err
	}
	c.notify(target, StatusSaved)

	c.mu.Lock()
	if c.reverts == nil {
		c.reverts = make(map[string]*time.Timer)
	}
	if rt := c.reverts[target]; rt != nil {
		rt.Stop()
	}
	c.reverts[target] = time.AfterFunc(c.settle(), func() {
		c.mu.Lock()
		delete(c.reverts, target)
		c.mu.Unlock()
		c.notify(target, StatusIdle)
	})
	c.mu.Unlock()
	return nil
}

func (c *Coordinator) notify(target string, s Status) {
	if c.OnStatus != nil {
		c.OnStatus(target, s)
	}
}

func (c *Coordinator) delay() time.Duration {
	if c.Delay > 0 {
		return c.Delay
	}
	return DefaultDelay
}

func (c *Coordinator) settle() time.Duration {
	if c.Settle > 0 {
		return c.Settle
	}
	return DefaultSettle
}
