// Package remind computes and schedules role-based daily reminders. One
// pending timer exists at a time; every firing re-arms the next one.
package remind

import (
	"sync"
	"time"

	"tableflip.dev/cosmic36/pkg/cycle"
	"tableflip.dev/cosmic36/pkg/timeutil"
)

// scanDays bounds the forward search for a matching role. Two full cycles
// is enough to hit any non-empty role set.
const scanDays = 72

// Candidate is one computed reminder firing.
type Candidate struct {
	At   time.Time
	Day  int // cycle position on that date
	Role cycle.Role
}

// ComputeNext finds the first strictly-future firing: the configured
// wall-clock time on the nearest day whose role is in roles. now's location
// decides the wall clock the timer runs against.
func ComputeNext(refDate string, policy timeutil.Policy, clock timeutil.Clock, roles map[int]bool, now time.Time) (Candidate, bool) {
	meta, ok := cycle.ComputeMeta(refDate, policy, now)
	if !ok || len(roles) == 0 {
		return Candidate{}, false
	}

	// Today's calendar label under the policy, re-expressed in now's zone so
	// the firing instant matches the clock on the wall.
	label := timeutil.FormatYMD(now, policy)
	base, ok := timeutil.ParseDate(label)
	if !ok {
		return Candidate{}, false
	}
	y, m, d := base.Date()

	for offset := 0; offset < scanDays; offset++ {
		position := (meta.DaysLived+offset)%cycle.Days + 1
		if !roles[position] {
			continue
		}
		at := time.Date(y, m, d+offset, clock.Hour, clock.Minute, 0, 0, now.Location())
		if !at.After(now) {
			continue
		}
		return Candidate{At: at, Day: position, Role: cycle.DayType(position)}, true
	}
	return Candidate{}, false
}

// Scheduler owns the single pending reminder timer.
type Scheduler struct {
	// Next computes the upcoming firing; absent means nothing to arm.
	Next func(now time.Time) (Candidate, bool)
	// ShouldFire is evaluated at firing time: the day must still be
	// unmarked and still carry a matching role. The timer re-arms either
	// way.
	ShouldFire func(c Candidate) bool
	// Fire delivers the reminder.
	Fire func(c Candidate)
	// Now is swappable for tests.
	Now func() time.Time

	mu      sync.Mutex
	timer   *time.Timer
	stopped bool
}

// Arm cancels any pending timer and schedules the next firing. It is a
// no-op when Next finds no candidate.
func (s *Scheduler) Arm() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.armLocked()
}

func (s *Scheduler) armLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if s.stopped {
		return
	}
	now := s.now()
	c, ok := s.Next(now)
	if !ok {
		return
	}
	s.timer = time.AfterFunc(c.At.Sub(now), func() { s.fire(c) })
}

func (s *Scheduler) fire(c Candidate) {
	if s.ShouldFire == nil || s.ShouldFire(c) {
		if s.Fire != nil {
			s.Fire(c)
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.armLocked()
}

// Pending reports whether a timer is armed.
func (s *Scheduler) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timer != nil
}

// Stop cancels the pending timer and prevents re-arming.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Scheduler) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
