package clinic

import (
	"fmt"
	"time"
)

// DefaultSlots is the fixed clinic schedule: five 20-minute sessions per
// clinic day.
var DefaultSlots = []string{
	"16:30 - 16:50",
	"16:50 - 17:10",
	"17:10 - 17:30",
	"17:30 - 17:50",
	"17:50 - 18:10",
}

const dateLayout = "2006-01-02"

// NormalizeDate reduces a client-supplied date to the UTC calendar day in
// "YYYY-MM-DD" form. The same normalization runs on the write path and both
// read paths so the uniqueness index always compares like with like.
func NormalizeDate(raw string) (string, error) {
	if t, err := time.Parse(dateLayout, raw); err == nil {
		return t.Format(dateLayout), nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC().Format(dateLayout), nil
	}
	return "", fmt.Errorf("invalid date %q: want YYYY-MM-DD or RFC 3339", raw)
}
