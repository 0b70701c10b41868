// Package settings persists user preferences as the settings blob in the
// store. The JSON field names match the original web client so a restored
// backup parses unchanged.
package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"tableflip.dev/cosmic36/pkg/store"
	"tableflip.dev/cosmic36/pkg/timeutil"
)

// Reminder kind selectors.
const (
	KindsAnchor     = "anchor"
	KindsEcho       = "echo"
	KindsAnchorEcho = "anchor_echo"
)

// Settings is the full user preference set.
type Settings struct {
	DOB                  string `json:"dobStr"`
	Mode                 string `json:"mode"`
	Gentle               bool   `json:"gentle"`
	RemindersEnabled     bool   `json:"remindersEnabled"`
	NotificationsEnabled bool   `json:"notificationsEnabled"`
	ReminderKinds        string `json:"reminderKinds"`
	ReminderTime         string `json:"reminderTime"`
	AutoBackupEnabled    bool   `json:"autoBackupEnabled"`
}

// Default returns the first-run settings.
func Default() Settings {
	return Settings{
		DOB:                  "",
		Mode:                 string(timeutil.PolicyUTC),
		Gentle:               true,
		RemindersEnabled:     false,
		NotificationsEnabled: true,
		ReminderKinds:        KindsAnchorEcho,
		ReminderTime:         "09:00",
	}
}

// Load reads the settings blob, layering stored fields over the defaults.
// Absent or corrupt blobs yield defaults. An unset reference date may be
// seeded from the COSMIC36_DOB environment, validated with the same parser
// as manual entry; the seed is not persisted until the user saves.
func Load(kv store.KV) (Settings, error) {
	s := Default()

	data, err := kv.Get(store.SettingsKey)
	switch {
	case errors.Is(err, store.ErrNotFound):
		// first run
	case err != nil:
		return s, fmt.Errorf("settings: load: %w", err)
	default:
		if err := json.Unmarshal(data, &s); err != nil {
			fmt.Fprintf(os.Stderr, "settings: corrupt blob discarded: %v\n", err)
			s = Default()
		}
	}

	if s.DOB == "" {
		if seed := os.Getenv("COSMIC36_DOB"); seed != "" {
			if _, ok := timeutil.ParseDate(seed); ok {
				s.DOB = seed
			}
		}
	}
	return s, nil
}

// Save writes the settings blob.
func Save(kv store.KV, s Settings) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("settings: marshal: %w", err)
	}
	if err := kv.Set(store.SettingsKey, data); err != nil {
		return fmt.Errorf("settings: save: %w", err)
	}
	return nil
}

// Policy returns the calendar policy, defaulting to utc for unknown values.
func (s Settings) Policy() timeutil.Policy {
	p, err := timeutil.ParsePolicy(s.Mode)
	if err != nil {
		return timeutil.PolicyUTC
	}
	return p
}

// ReminderClock returns the configured time of day, defaulting to 09:00.
func (s Settings) ReminderClock() timeutil.Clock {
	c, err := timeutil.ParseClock(s.ReminderTime)
	if err != nil {
		return timeutil.Clock{Hour: 9}
	}
	return c
}

// ReminderRoles reports which day roles should trigger reminders.
func (s Settings) ReminderRoles() (anchors, echoes bool) {
	switch s.ReminderKinds {
	case KindsAnchor:
		return true, false
	case KindsEcho:
		return false, true
	default:
		return true, true
	}
}
