package settings

import (
	"fmt"

	"tableflip.dev/cosmic36/pkg/timeutil"
)

// Patch carries optional settings updates; nil fields are left untouched.
// Shared by the set command and the MCP surface so both validate the same
// way.
type Patch struct {
	DOB                  *string
	Mode                 *string
	Gentle               *bool
	RemindersEnabled     *bool
	NotificationsEnabled *bool
	ReminderKinds        *string
	ReminderTime         *string
	AutoBackupEnabled    *bool
}

// Apply validates each present field and writes it into s. The first
// invalid field aborts without partial application.
func Apply(s *Settings, p Patch) error {
	next := *s

	if p.DOB != nil {
		if *p.DOB != "" {
			if _, ok := timeutil.ParseDate(*p.DOB); !ok {
				return fmt.Errorf("settings: invalid date %q (expected YYYY-MM-DD)", *p.DOB)
			}
		}
		next.DOB = *p.DOB
	}
	if p.Mode != nil {
		if _, err := timeutil.ParsePolicy(*p.Mode); err != nil {
			return fmt.Errorf("settings: %w", err)
		}
		next.Mode = *p.Mode
	}
	if p.Gentle != nil {
		next.Gentle = *p.Gentle
	}
	if p.RemindersEnabled != nil {
		next.RemindersEnabled = *p.RemindersEnabled
	}
	if p.NotificationsEnabled != nil {
		next.NotificationsEnabled = *p.NotificationsEnabled
	}
	if p.ReminderKinds != nil {
		switch *p.ReminderKinds {
		case KindsAnchor, KindsEcho, KindsAnchorEcho:
			next.ReminderKinds = *p.ReminderKinds
		default:
			return fmt.Errorf("settings: unknown reminder kinds %q", *p.ReminderKinds)
		}
	}
	if p.ReminderTime != nil {
		if _, err := timeutil.ParseClock(*p.ReminderTime); err != nil {
			return fmt.Errorf("settings: %w", err)
		}
		next.ReminderTime = *p.ReminderTime
	}
	if p.AutoBackupEnabled != nil {
		next.AutoBackupEnabled = *p.AutoBackupEnabled
	}

	*s = next
	return nil
}
