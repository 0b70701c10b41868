package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/cosmic36/pkg/settings"
)

// SetOptions collect raw flag values; only flags the user actually changed
// become part of the patch.
type SetOptions struct {
	DOB           string
	Mode          string
	Gentle        bool
	Reminders     bool
	Notifications bool
	RemindOn      string
	RemindAt      string
	AutoBackup    bool
}

func AddSetArgs(cmd *cobra.Command, so *SetOptions) {
	cmd.Flags().StringVar(&so.DOB, "dob", "",
		"Reference date of birth, YYYY-MM-DD. Empty clears it.")
	cmd.Flags().StringVar(&so.Mode, "mode", "",
		"Day-boundary mode: utc or local.")
	cmd.Flags().BoolVar(&so.Gentle, "gentle", true,
		"Show gentle day hints.")
	cmd.Flags().BoolVar(&so.Reminders, "reminders", false,
		"Enable daily reminders.")
	cmd.Flags().BoolVar(&so.Notifications, "notifications", true,
		"Deliver reminders as system notifications.")
	cmd.Flags().StringVar(&so.RemindOn, "remind-on", "",
		"Reminder days: anchor, echo, or anchor_echo.")
	cmd.Flags().StringVar(&so.RemindAt, "remind-at", "",
		"Reminder time of day, HH:MM.")
	cmd.Flags().BoolVar(&so.AutoBackup, "auto-backup", false,
		"Enable automatic backups.")
}

// Patch builds the settings patch from the flags the user set.
func (so *SetOptions) Patch(cmd *cobra.Command) settings.Patch {
	var p settings.Patch
	f := cmd.Flags()
	if f.Changed("dob") {
		p.DOB = &so.DOB
	}
	if f.Changed("mode") {
		p.Mode = &so.Mode
	}
	if f.Changed("gentle") {
		p.Gentle = &so.Gentle
	}
	if f.Changed("reminders") {
		p.RemindersEnabled = &so.Reminders
	}
	if f.Changed("notifications") {
		p.NotificationsEnabled = &so.Notifications
	}
	if f.Changed("remind-on") {
		p.ReminderKinds = &so.RemindOn
	}
	if f.Changed("remind-at") {
		p.ReminderTime = &so.RemindAt
	}
	if f.Changed("auto-backup") {
		p.AutoBackupEnabled = &so.AutoBackup
	}
	return p
}
