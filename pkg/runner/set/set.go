// Package set applies preference changes and shows the resulting settings.
package set

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/cosmic36/pkg/app"
	"tableflip.dev/cosmic36/pkg/settings"
)

type Set struct {
	Service *app.Service

	Patch settings.Patch
}

func (s *Set) Do(ctx context.Context) error {
	if s.Service == nil {
		return errors.New("set requires the application service")
	}

	next := s.Service.Settings
	if err := settings.Apply(&next, s.Patch); err != nil {
		return err
	}
	if err := s.Service.SaveSettings(next); err != nil {
		return err
	}

	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "

	dob := next.DOB
	if dob == "" {
		dob = faint.Sprint("(not set)")
	}
	onOff := func(b bool) string {
		if b {
			return "on"
		}
		return "off"
	}

	tbl.AddRow(bold.Sprint("SETTING"), bold.Sprint("VALUE"))
	tbl.AddRow("Date of birth", dob)
	tbl.AddRow("Day mode", next.Mode)
	tbl.AddRow("Gentle hints", onOff(next.Gentle))
	tbl.AddRow("Reminders", onOff(next.RemindersEnabled))
	tbl.AddRow("Notifications", onOff(next.NotificationsEnabled))
	tbl.AddRow("Reminder days", next.ReminderKinds)
	tbl.AddRow("Reminder time", next.ReminderTime)
	tbl.AddRow("Auto backup", onOff(next.AutoBackupEnabled))
	fmt.Println(tbl)
	return nil
}
