// Package journal is the cycle-record store: a flat in-memory map of cycle
// records persisted as one JSON blob through the store KV. Every mutation
// rewrites the whole blob; stores stay small (tens to low hundreds of
// records over a lifetime) and writes are debounced upstream.
package journal

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"tableflip.dev/cosmic36/pkg/record"
	"tableflip.dev/cosmic36/pkg/store"
	"tableflip.dev/cosmic36/pkg/timeutil"
)

// Journal owns the in-memory record map and its persistence.
type Journal struct {
	kv     store.KV
	cycles record.Store
}

// Load reads the cycle blob. A missing blob is an empty store; a corrupt
// blob is treated as absent rather than salvaged, with a warning on stderr.
func Load(kv store.KV) (*Journal, error) {
	j := &Journal{kv: kv, cycles: make(record.Store)}

	data, err := kv.Get(store.CyclesKey)
	if errors.Is(err, store.ErrNotFound) {
		return j, nil
	}
	if err != nil {
		return nil, fmt.Errorf("journal: load: %w", err)
	}

	var loaded record.Store
	if err := json.Unmarshal(data, &loaded); err != nil {
		fmt.Fprintf(os.Stderr, "journal: corrupt store discarded: %v\n", err)
		return j, nil
	}
	for key, c := range loaded {
		if c == nil {
			delete(loaded, key)
			continue
		}
		c.Normalize()
	}
	j.cycles = loaded
	if j.cycles == nil {
		j.cycles = make(record.Store)
	}
	return j, nil
}

// GetOrCreate returns the record for the composite key, or a fresh empty
// record when absent. The fresh record is not written back; reading must
// never have a persistence side effect.
func (j *Journal) GetOrCreate(refDate string, policy timeutil.Policy, cycleIndex int) *record.Cycle {
	if c, ok := j.cycles[record.Key(refDate, policy, cycleIndex)]; ok {
		c.Normalize()
		return c
	}
	return record.New()
}

// Get looks up a record by its raw composite key.
func (j *Journal) Get(key string) (*record.Cycle, bool) {
	c, ok := j.cycles[key]
	return c, ok
}

// Put stamps the record, assigns it under the composite key, and saves the
// whole blob. On a failed save the in-memory record keeps the new value so
// the next Put can retry.
func (j *Journal) Put(refDate string, policy timeutil.Policy, cycleIndex int, c *record.Cycle) error {
	return j.PutKey(record.Key(refDate, policy, cycleIndex), c)
}

// PutKey is Put for callers that already hold a composite key, such as the
// review editor.
func (j *Journal) PutKey(key string, c *record.Cycle) error {
	c.UpdatedAt = time.Now().UnixMilli()
	j.cycles[key] = c
	return j.save()
}

// Clear removes one composite key entirely and saves. Used only by the
// explicit clear-this-cycle action.
func (j *Journal) Clear(key string) error {
	delete(j.cycles, key)
	return j.save()
}

// Keys returns the composite keys sharing the prefix, ordered by cycle
// index descending.
func (j *Journal) Keys(prefix string) []string {
	keys := make([]string, 0, len(j.cycles))
	for key := range j.cycles {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Slice(keys, func(i, k int) bool {
		_, _, a, _ := record.ParseKey(keys[i])
		_, _, b, _ := record.ParseKey(keys[k])
		return a > b
	})
	return keys
}

// All exposes the live record map. All access is single-goroutine by
// construction; callers must not retain it across saves.
func (j *Journal) All() record.Store {
	return j.cycles
}

// Len reports how many records exist.
func (j *Journal) Len() int { return len(j.cycles) }

func (j *Journal) save() error {
	data, err := json.Marshal(j.cycles)
	if err != nil {
		return fmt.Errorf("journal: marshal: %w", err)
	}
	if err := j.kv.Set(store.CyclesKey, data); err != nil {
		return fmt.Errorf("journal: save: %w", err)
	}
	return nil
}
