package settings

import (
	"context"
	"testing"

	"tableflip.dev/cosmic36/pkg/store"
	"tableflip.dev/cosmic36/pkg/timeutil"
)

type memoryKV struct {
	blobs map[string][]byte
}

func newMemoryKV() *memoryKV { return &memoryKV{blobs: make(map[string][]byte)} }

func (m *memoryKV) Get(key string) ([]byte, error) {
	data, ok := m.blobs[key]
	if !ok {
		return nil, store.ErrNotFound
	}
	return data, nil
}

func (m *memoryKV) Set(key string, data []byte) error {
	m.blobs[key] = append([]byte(nil), data...)
	return nil
}

func (m *memoryKV) Watch(ctx context.Context) (<-chan store.Event, error) {
	ch := make(chan store.Event)
	go func() {
		<-ctx.Done()
		close(ch)
	}()
	return ch, nil
}

func TestLoadFirstRunDefaults(t *testing.T) {
	t.Setenv("COSMIC36_DOB", "")

	s, err := Load(newMemoryKV())
	if err != nil {
		t.Fatal(err)
	}
	if s.DOB != "" || s.Mode != "utc" || !s.Gentle || s.RemindersEnabled {
		t.Errorf("defaults = %+v", s)
	}
	if s.ReminderTime != "09:00" || s.ReminderKinds != KindsAnchorEcho {
		t.Errorf("reminder defaults = %+v", s)
	}
}

func TestLoadLayersStoredOverDefaults(t *testing.T) {
	t.Setenv("COSMIC36_DOB", "")
	kv := newMemoryKV()
	// A partial blob from an older version: unknown fields absent.
	kv.blobs[store.SettingsKey] = []byte(`{"dobStr":"1990-04-16","mode":"local"}`)

	s, err := Load(kv)
	if err != nil {
		t.Fatal(err)
	}
	if s.DOB != "1990-04-16" || s.Policy() != timeutil.PolicyLocal {
		t.Errorf("stored fields = %+v", s)
	}
	if !s.Gentle || s.ReminderTime != "09:00" {
		t.Errorf("missing fields should keep defaults, got %+v", s)
	}
}

func TestLoadCorruptFallsBackToDefaults(t *testing.T) {
	t.Setenv("COSMIC36_DOB", "")
	kv := newMemoryKV()
	kv.blobs[store.SettingsKey] = []byte(`{nope`)

	s, err := Load(kv)
	if err != nil {
		t.Fatal(err)
	}
	if s != Default() {
		t.Errorf("corrupt blob should yield defaults, got %+v", s)
	}
}

func TestEnvSeedValidatedLikeManualEntry(t *testing.T) {
	kv := newMemoryKV()

	t.Setenv("COSMIC36_DOB", "1990-04-16")
	s, _ := Load(kv)
	if s.DOB != "1990-04-16" {
		t.Errorf("valid seed ignored, got %q", s.DOB)
	}

	t.Setenv("COSMIC36_DOB", "not-a-date")
	s, _ = Load(kv)
	if s.DOB != "" {
		t.Errorf("invalid seed accepted: %q", s.DOB)
	}

	// A stored date wins over the environment.
	kv.blobs[store.SettingsKey] = []byte(`{"dobStr":"1985-01-02"}`)
	t.Setenv("COSMIC36_DOB", "1990-04-16")
	s, _ = Load(kv)
	if s.DOB != "1985-01-02" {
		t.Errorf("stored date should win, got %q", s.DOB)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	t.Setenv("COSMIC36_DOB", "")
	kv := newMemoryKV()

	s := Default()
	s.DOB = "1990-04-16"
	s.RemindersEnabled = true
	s.ReminderKinds = KindsEcho
	if err := Save(kv, s); err != nil {
		t.Fatal(err)
	}

	got, err := Load(kv)
	if err != nil {
		t.Fatal(err)
	}
	if got != s {
		t.Errorf("round trip = %+v, want %+v", got, s)
	}

	anchors, echoes := got.ReminderRoles()
	if anchors || !echoes {
		t.Errorf("ReminderRoles = %v, %v; want false, true", anchors, echoes)
	}
}

func TestAccessorFallbacks(t *testing.T) {
	s := Settings{Mode: "solar", ReminderTime: "25:99", ReminderKinds: "bogus"}
	if s.Policy() != timeutil.PolicyUTC {
		t.Error("unknown mode should fall back to utc")
	}
	if c := s.ReminderClock(); c.Hour != 9 || c.Minute != 0 {
		t.Errorf("bad clock should fall back to 09:00, got %v", c)
	}
	anchors, echoes := s.ReminderRoles()
	if !anchors || !echoes {
		t.Error("unknown kinds should enable both roles")
	}
}
