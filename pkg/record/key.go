package record

import (
	"fmt"
	"strconv"
	"strings"

	"tableflip.dev/cosmic36/pkg/timeutil"
)

// Key builds the composite store key for one cycle. The namespace is
// partitioned by the (reference date, policy) prefix: changing either in
// settings orphans prior records rather than migrating them.
func Key(refDate string, policy timeutil.Policy, cycleIndex int) string {
	return fmt.Sprintf("%s|%s|cycle%d", refDate, policy, cycleIndex)
}

// Prefix returns the shared key prefix for every cycle under one
// (reference date, policy) pair.
func Prefix(refDate string, policy timeutil.Policy) string {
	return fmt.Sprintf("%s|%s|cycle", refDate, policy)
}

// ParseKey splits a composite key back into its parts. ok is false for keys
// written by other versions or foreign prefixes.
func ParseKey(key string) (refDate string, policy timeutil.Policy, cycleIndex int, ok bool) {
	parts := strings.Split(key, "|")
	if len(parts) != 3 || !strings.HasPrefix(parts[2], "cycle") {
		return "", "", 0, false
	}
	idx, err := strconv.Atoi(strings.TrimPrefix(parts[2], "cycle"))
	if err != nil || idx < 1 {
		return "", "", 0, false
	}
	p, err := timeutil.ParsePolicy(parts[1])
	if err != nil {
		return "", "", 0, false
	}
	return parts[0], p, idx, true
}
