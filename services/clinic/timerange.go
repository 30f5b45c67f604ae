package clinic

import (
	"fmt"
	"strings"
	"time"
)

// ClockTime is a wall-clock instant within a day.
type ClockTime struct {
	Hour   int
	Minute int
}

func (c ClockTime) minutes() int {
	return c.Hour*60 + c.Minute
}

// ParseSlotRange splits a slot string of the form "<start> - <end>" and
// parses each side as either 24-hour ("16:30") or 12-hour ("4:30 PM")
// clock time. Noon and midnight follow the usual 12-hour rules: "12 PM" is
// hour 12, "12 AM" is hour 0. A string matching neither pattern, or whose
// end is not strictly after its start, is rejected.
func ParseSlotRange(slot string) (start, end ClockTime, err error) {
	parts := strings.Split(slot, " - ")
	if len(parts) != 2 {
		return start, end, fmt.Errorf("invalid slot %q: want \"<start> - <end>\"", slot)
	}

	start, err = parseClockTime(parts[0])
	if err != nil {
		return start, end, fmt.Errorf("invalid slot %q: %w", slot, err)
	}
	end, err = parseClockTime(parts[1])
	if err != nil {
		return start, end, fmt.Errorf("invalid slot %q: %w", slot, err)
	}

	if end.minutes() <= start.minutes() {
		return start, end, fmt.Errorf("invalid slot %q: end is not after start", slot)
	}
	return start, end, nil
}

func parseClockTime(s string) (ClockTime, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"15:04", "3:04 PM"} {
		if t, err := time.Parse(layout, s); err == nil {
			return ClockTime{Hour: t.Hour(), Minute: t.Minute()}, nil
		}
	}
	return ClockTime{}, fmt.Errorf("unparseable clock time %q", s)
}
