package timeutil

import (
	"fmt"
	"strconv"
	"strings"
)

// Clock is a wall-clock time of day.
type Clock struct {
	Hour   int
	Minute int
}

// ParseClock parses an "HH:MM" string.
func ParseClock(value string) (Clock, error) {
	parts := strings.SplitN(strings.TrimSpace(value), ":", 2)
	if len(parts) != 2 {
		return Clock{}, fmt.Errorf("timeutil: invalid clock %q (want HH:MM)", value)
	}
	hh, err := strconv.Atoi(parts[0])
	if err != nil {
		return Clock{}, fmt.Errorf("timeutil: invalid clock hour %q: %w", parts[0], err)
	}
	mm, err := strconv.Atoi(parts[1])
	if err != nil {
		return Clock{}, fmt.Errorf("timeutil: invalid clock minute %q: %w", parts[1], err)
	}
	if hh < 0 || hh > 23 || mm < 0 || mm > 59 {
		return Clock{}, fmt.Errorf("timeutil: clock %q out of range", value)
	}
	return Clock{Hour: hh, Minute: mm}, nil
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}
