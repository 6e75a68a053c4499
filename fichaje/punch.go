package fichaje

import (
	"fmt"
	"regexp"
	"time"
)

// Kind is the punch direction as the backend spells it.
type Kind string

const (
	Entrada Kind = "entrada"
	Salida  Kind = "salida"
)

// Punch is a single clock-in/clock-out event. Immutable once fetched.
type Punch struct {
	Kind      Kind
	Timestamp time.Time
	IsManual  bool
	Motive    string
}

// ParseTimestamp parses a backend timestamp. RFC 3339 is the wire format;
// an ISO timestamp without a zone is assumed UTC, matching how the rest of
// the system treats zoneless values.
func ParseTimestamp(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02T15:04:05", value); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("invalid timestamp: %s", value)
}

// DayKey returns the YYYY-MM-DD day the punch belongs to, in loc.
func (p Punch) DayKey(loc *time.Location) string {
	return p.Timestamp.In(loc).Format("2006-01-02")
}

// ParseTimeOfDay parses a time string in HH:MM format.
// Returns hour and minute, or an error if invalid.
func ParseTimeOfDay(value string) (hour, minute int, err error) {
	re := regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)
	matches := re.FindStringSubmatch(value)
	if matches == nil {
		return 0, 0, fmt.Errorf("invalid time format: %s", value)
	}

	var h, m int
	fmt.Sscanf(matches[1], "%d", &h)
	fmt.Sscanf(matches[2], "%d", &m)

	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, 0, fmt.Errorf("invalid time value: %s", value)
	}

	return h, m, nil
}
