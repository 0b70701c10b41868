package remind

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"tableflip.dev/cosmic36/pkg/cycle"
	"tableflip.dev/cosmic36/pkg/timeutil"
)

const ref = "2024-01-01"

var nineAM = timeutil.Clock{Hour: 9}

func TestComputeNextFindsUpcomingAnchor(t *testing.T) {
	// 2024-01-10 is day 10 of the first cycle; the next anchor is day 12.
	now := time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC)
	roles := cycle.RoleSet(true, false)

	c, ok := ComputeNext(ref, timeutil.PolicyUTC, nineAM, roles, now)
	if !ok {
		t.Fatal("expected a candidate")
	}
	want := time.Date(2024, 1, 12, 9, 0, 0, 0, time.UTC)
	if !c.At.Equal(want) || c.Day != 12 || c.Role != cycle.RoleAnchor {
		t.Errorf("candidate = %+v, want day 12 at %v", c, want)
	}
}

func TestComputeNextSameDayWhenClockStillAhead(t *testing.T) {
	roles := cycle.RoleSet(true, false)

	// 2024-01-12 is day 12, an anchor. Before 09:00 it is today's firing.
	now := time.Date(2024, 1, 12, 8, 0, 0, 0, time.UTC)
	c, ok := ComputeNext(ref, timeutil.PolicyUTC, nineAM, roles, now)
	if !ok || c.Day != 12 || !c.At.Equal(time.Date(2024, 1, 12, 9, 0, 0, 0, time.UTC)) {
		t.Errorf("candidate = %+v, want today at 09:00", c)
	}

	// At or past 09:00 the firing moves to the next anchor, day 15.
	now = time.Date(2024, 1, 12, 9, 0, 0, 0, time.UTC)
	c, ok = ComputeNext(ref, timeutil.PolicyUTC, nineAM, roles, now)
	if !ok || c.Day != 15 || !c.At.Equal(time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)) {
		t.Errorf("candidate = %+v, want day 15", c)
	}
}

func TestComputeNextEchoOnly(t *testing.T) {
	now := time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC)
	roles := cycle.RoleSet(false, true)

	c, ok := ComputeNext(ref, timeutil.PolicyUTC, nineAM, roles, now)
	if !ok || c.Day != 21 || c.Role != cycle.RoleEcho {
		t.Errorf("candidate = %+v, want the day-21 echo", c)
	}
	if !c.At.Equal(time.Date(2024, 1, 21, 9, 0, 0, 0, time.UTC)) {
		t.Errorf("At = %v", c.At)
	}
}

func TestComputeNextUsesWallClockZone(t *testing.T) {
	zone := time.FixedZone("UTC+10", 10*60*60)
	now := time.Date(2024, 1, 10, 8, 0, 0, 0, zone)

	c, ok := ComputeNext(ref, timeutil.PolicyLocal, nineAM, cycle.RoleSet(true, false), now)
	if !ok {
		t.Fatal("expected a candidate")
	}
	if c.At.Location() != zone {
		t.Errorf("candidate zone = %v, want the caller's zone", c.At.Location())
	}
	if h := c.At.Hour(); h != 9 {
		t.Errorf("wall-clock hour = %d, want 9", h)
	}
}

func TestComputeNextNothingToArm(t *testing.T) {
	now := time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC)

	if _, ok := ComputeNext(ref, timeutil.PolicyUTC, nineAM, map[int]bool{}, now); ok {
		t.Error("empty role set should yield no candidate")
	}
	if _, ok := ComputeNext("", timeutil.PolicyUTC, nineAM, cycle.RoleSet(true, true), now); ok {
		t.Error("unset reference date should yield no candidate")
	}
}

func TestSchedulerFiresAndRearms(t *testing.T) {
	var mu sync.Mutex
	armed, fired := 0, 0

	s := &Scheduler{
		Next: func(now time.Time) (Candidate, bool) {
			mu.Lock()
			defer mu.Unlock()
			armed++
			if armed > 2 {
				return Candidate{}, false
			}
			return Candidate{At: now.Add(10 * time.Millisecond), Day: 3, Role: cycle.RoleAnchor}, true
		},
		Fire: func(Candidate) {
			mu.Lock()
			fired++
			mu.Unlock()
		},
	}
	s.Arm()
	time.Sleep(150 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if fired != 2 {
		t.Errorf("fired = %d, want 2", fired)
	}
	if s.Pending() {
		t.Error("no candidate left, nothing should be pending")
	}
}

func TestSchedulerSuppressedFiringStillRearms(t *testing.T) {
	var mu sync.Mutex
	armed, fired := 0, 0

	s := &Scheduler{
		Next: func(now time.Time) (Candidate, bool) {
			mu.Lock()
			defer mu.Unlock()
			armed++
			if armed > 2 {
				return Candidate{}, false
			}
			return Candidate{At: now.Add(10 * time.Millisecond)}, true
		},
		// The day got marked before the timer fired.
		ShouldFire: func(Candidate) bool { return false },
		Fire: func(Candidate) {
			mu.Lock()
			fired++
			mu.Unlock()
		},
	}
	s.Arm()
	time.Sleep(150 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if fired != 0 {
		t.Errorf("fired = %d, want suppression", fired)
	}
	if armed < 3 {
		t.Errorf("armed = %d, suppressed firings must still re-arm", armed)
	}
}

func TestSchedulerStop(t *testing.T) {
	s := &Scheduler{
		Next: func(now time.Time) (Candidate, bool) {
			return Candidate{At: now.Add(time.Hour)}, true
		},
		Fire: func(Candidate) { t.Error("stopped scheduler fired") },
	}
	s.Arm()
	if !s.Pending() {
		t.Fatal("expected an armed timer")
	}
	s.Stop()
	if s.Pending() {
		t.Error("stop should cancel the timer")
	}
	s.Arm()
	if s.Pending() {
		t.Error("a stopped scheduler must not re-arm")
	}
}

type fakeNotifier struct {
	perm Permission
	err  error
	got  []string
}

func (f *fakeNotifier) Permission() Permission { return f.perm }
func (f *fakeNotifier) Request() Permission    { return f.perm }
func (f *fakeNotifier) Notify(title, body string) error {
	f.got = append(f.got, title+": "+body)
	return f.err
}

func TestDeliverPrefersGrantedNotifier(t *testing.T) {
	preferred := &fakeNotifier{perm: PermissionGranted}
	fallback := &fakeNotifier{perm: PermissionGranted}

	Deliver(preferred, fallback, Candidate{Day: 12, Role: cycle.RoleAnchor})
	if len(preferred.got) != 1 || len(fallback.got) != 0 {
		t.Errorf("preferred = %v, fallback = %v", preferred.got, fallback.got)
	}
	if !strings.Contains(preferred.got[0], "anchor day") {
		t.Errorf("message = %q", preferred.got[0])
	}
}

func TestDeliverFallsBackWhenDenied(t *testing.T) {
	preferred := &fakeNotifier{perm: PermissionDenied}
	fallback := &fakeNotifier{perm: PermissionGranted}

	Deliver(preferred, fallback, Candidate{Day: 21, Role: cycle.RoleEcho})
	if len(preferred.got) != 0 || len(fallback.got) != 1 {
		t.Errorf("preferred = %v, fallback = %v", preferred.got, fallback.got)
	}
}

func TestDeliverFallsBackOnDeliveryFailure(t *testing.T) {
	preferred := &fakeNotifier{perm: PermissionGranted, err: errors.New("notification daemon unreachable")}
	fallback := &fakeNotifier{perm: PermissionGranted}

	Deliver(preferred, fallback, Candidate{Day: 5})
	if len(fallback.got) != 1 {
		t.Error("a failed system notification should fall back in-app")
	}
}
