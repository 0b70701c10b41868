package remind

import (
	"fmt"
	"io"
	"sync"

	"github.com/gen2brain/beeep"

	"tableflip.dev/cosmic36/pkg/cycle"
)

// Permission mirrors the notification permission states a surface can be
// in. Delivery falls back to an in-app toast for anything but granted.
type Permission string

const (
	PermissionUnsupported Permission = "unsupported"
	PermissionNotAsked    Permission = "not_asked"
	PermissionGranted     Permission = "granted"
	PermissionDenied      Permission = "denied"
)

// Notifier delivers a reminder to the user.
type Notifier interface {
	Permission() Permission
	Request() Permission
	Notify(title, body string) error
}

// Desktop sends system notifications. Desktop environments do not gate
// sending behind an explicit grant, so Request succeeds immediately; a
// delivery failure downgrades to unsupported and stays there.
type Desktop struct {
	mu    sync.Mutex
	state Permission
}

// NewDesktop returns a notifier in the not-asked state.
func NewDesktop() *Desktop {
	return &Desktop{state: PermissionNotAsked}
}

func (d *Desktop) Permission() Permission {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

func (d *Desktop) Request() Permission {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state == PermissionNotAsked {
		d.state = PermissionGranted
	}
	return d.state
}

func (d *Desktop) Notify(title, body string) error {
	if err := beeep.Notify(title, body, ""); err != nil {
		d.mu.Lock()
		d.state = PermissionUnsupported
		d.mu.Unlock()
		return fmt.Errorf("remind: notify: %w", err)
	}
	return nil
}

// Toast writes reminders as plain lines, the in-app fallback when system
// notifications are unavailable or declined.
type Toast struct {
	Out io.Writer
}

func (t *Toast) Permission() Permission { return PermissionGranted }
func (t *Toast) Request() Permission    { return PermissionGranted }

func (t *Toast) Notify(title, body string) error {
	_, err := fmt.Fprintf(t.Out, "%s — %s\n", title, body)
	return err
}

// Message renders the reminder wording for a candidate.
func Message(c Candidate) (title, body string) {
	title = "Cosmic 36"
	switch c.Role {
	case cycle.RoleAnchor:
		body = fmt.Sprintf("Day %d is an anchor day. Your pattern is still unmarked.", c.Day)
	case cycle.RoleEcho:
		body = fmt.Sprintf("Day %d is an echo day. Watch what returns — still unmarked.", c.Day)
	default:
		body = fmt.Sprintf("Day %d is still unmarked.", c.Day)
	}
	return title, body
}

// Deliver sends through the preferred notifier when granted, otherwise
// through the fallback. A failed system notification also falls back, so a
// reminder is never silently lost.
func Deliver(preferred, fallback Notifier, c Candidate) {
	title, body := Message(c)
	if preferred != nil && preferred.Permission() == PermissionGranted {
		if err := preferred.Notify(title, body); err == nil {
			return
		}
	}
	if fallback != nil {
		_ = fallback.Notify(title, body)
	}
}
