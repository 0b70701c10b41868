package record

import (
	"encoding/json"
	"testing"

	"tableflip.dev/cosmic36/pkg/timeutil"
)

func TestNormalizeBackfillsLegacyShape(t *testing.T) {
	// A record written before intention/reflection/close existed.
	legacy := []byte(`{"updatedAt":1600000000000,"done":{"5":true},"notes":{"5":"hello"}}`)

	var c Cycle
	if err := json.Unmarshal(legacy, &c); err != nil {
		t.Fatal(err)
	}
	c.Normalize()

	if c.Schema != CurrentSchema {
		t.Errorf("schema = %d, want %d", c.Schema, CurrentSchema)
	}
	if c.Intention == nil || c.Reflection == nil {
		t.Error("normalize should backfill missing maps")
	}
	if !c.IsDone(5) || c.Note(5) != "hello" {
		t.Error("normalize must not disturb existing fields")
	}
	if c.Close.HasContent() {
		t.Error("backfilled close group should be empty")
	}
}

func TestSetDoneRemovesKeyOnUnmark(t *testing.T) {
	c := New()
	c.SetDone(7, true)
	if !c.IsDone(7) || c.DoneCount() != 1 {
		t.Fatal("expected day 7 marked")
	}
	c.SetDone(7, false)
	if c.IsDone(7) || c.DoneCount() != 0 {
		t.Error("unmark should delete the key")
	}
	if _, present := c.Done[DayKey(7)]; present {
		t.Error("serialized done map must only hold true flags")
	}
}

func TestHasContent(t *testing.T) {
	c := New()
	if c.HasContent(3) {
		t.Error("empty record has no content")
	}

	c.SetNote(3, "  ")
	if c.HasContent(3) {
		t.Error("whitespace-only note is not content")
	}

	c.SetNote(3, "wrote something")
	if !c.HasContent(3) {
		t.Error("note should count as content")
	}
	if c.HasContent(4) {
		t.Error("content is per day")
	}

	// The close-out group is cycle scoped and counts for every day.
	c2 := New()
	c2.Close.Carry = "keep the morning walk"
	if !c2.HasContent(1) || !c2.HasContent(36) {
		t.Error("close content should count for all days")
	}
}

func TestKeyRoundTrip(t *testing.T) {
	key := Key("1990-04-16", timeutil.PolicyUTC, 3)
	if key != "1990-04-16|utc|cycle3" {
		t.Errorf("key = %q", key)
	}

	ref, policy, idx, ok := ParseKey(key)
	if !ok || ref != "1990-04-16" || policy != timeutil.PolicyUTC || idx != 3 {
		t.Errorf("ParseKey(%q) = %q, %q, %d, %v", key, ref, policy, idx, ok)
	}

	for _, bad := range []string{"", "a|b", "1990-04-16|utc|cyclex", "1990-04-16|solar|cycle1", "1990-04-16|utc|cycle0"} {
		if _, _, _, ok := ParseKey(bad); ok {
			t.Errorf("ParseKey(%q) should fail", bad)
		}
	}
}

func TestPrefixMatchesKey(t *testing.T) {
	prefix := Prefix("1990-04-16", timeutil.PolicyLocal)
	key := Key("1990-04-16", timeutil.PolicyLocal, 12)
	if len(key) <= len(prefix) || key[:len(prefix)] != prefix {
		t.Errorf("key %q should start with prefix %q", key, prefix)
	}

	other := Key("1990-04-16", timeutil.PolicyUTC, 12)
	if other[:len(prefix)] == prefix {
		t.Error("different policy must produce a different prefix")
	}
}
