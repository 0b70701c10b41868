// Package remind shows the next scheduled reminder, or keeps a live
// scheduler running in the foreground.
package remind

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/cosmic36/pkg/app"
	"tableflip.dev/cosmic36/pkg/cycle"
	"tableflip.dev/cosmic36/pkg/printers"
	"tableflip.dev/cosmic36/pkg/remind"
)

type Remind struct {
	Service *app.Service

	// Run keeps the process alive, firing reminders until ctx is cancelled.
	Run bool
	// Out receives in-app toast lines; defaults to stdout.
	Out io.Writer
}

func (r *Remind) Do(ctx context.Context) error {
	if r.Service == nil {
		return errors.New("remind requires the application service")
	}

	out := r.Out
	if out == nil {
		out = os.Stdout
	}
	pp := printers.PrettyPrint{}

	st := r.Service.Settings
	if _, ok := r.Service.Meta(); !ok {
		pp.NoDate()
		return nil
	}
	if !st.RemindersEnabled {
		_, _ = color.New(color.Faint).Println("Reminders are off. Run `cosmic36 set --reminders=on` to enable them.")
		return nil
	}

	next := func(now time.Time) (remind.Candidate, bool) {
		st := r.Service.Settings
		anchors, echoes := st.ReminderRoles()
		return remind.ComputeNext(st.DOB, st.Policy(), st.ReminderClock(), cycle.RoleSet(anchors, echoes), now)
	}

	c, ok := next(r.Service.Now())
	if !ok {
		_, _ = color.New(color.Faint).Println("No upcoming reminder.")
		return nil
	}
	fmt.Fprintf(out, "Next reminder: %s — day %d (%s)\n", c.At.Format("Mon Jan 2 15:04"), c.Day, c.Role)

	if !r.Run {
		return nil
	}

	var preferred remind.Notifier
	if st.NotificationsEnabled {
		desktop := remind.NewDesktop()
		desktop.Request()
		preferred = desktop
	}
	toast := &remind.Toast{Out: out}

	sched := &remind.Scheduler{
		Next: next,
		ShouldFire: func(c remind.Candidate) bool {
			// Re-check at firing time: the day may have been marked, or the
			// reference date changed, since the timer was armed.
			today, ok := r.Service.Today()
			if !ok {
				return false
			}
			anchors, echoes := r.Service.Settings.ReminderRoles()
			return today.Meta.DayInCycle == c.Day && !today.Done && cycle.RoleSet(anchors, echoes)[c.Day]
		},
		Fire: func(c remind.Candidate) {
			remind.Deliver(preferred, toast, c)
		},
		Now: r.Service.Now,
	}
	sched.Arm()
	defer sched.Stop()

	fmt.Fprintln(out, "Watching for reminders. Press Ctrl-C to stop.")
	<-ctx.Done()
	return nil
}
