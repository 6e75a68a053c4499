package calendar

import (
	"fmt"
	"time"
)

// KeyLayout is the canonical day-key format (zero-padded, sortable).
const KeyLayout = "2006-01-02"

// AtMidnight strips the time of day, keeping the calendar date as observed
// in the value's own location. The result is pinned to UTC so that two day
// values always compare by calendar date, regardless of the zone the inputs
// arrived in.
func AtMidnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ToKey returns the canonical YYYY-MM-DD key for the calendar day of t.
func ToKey(t time.Time) string {
	y, m, d := t.Date()
	return fmt.Sprintf("%04d-%02d-%02d", y, int(m), d)
}

// FromKey parses a canonical day key back into a midnight day value.
// Invalid keys are a programmer error upstream; the error is returned so
// call sites can fail fast.
func FromKey(key string) (time.Time, error) {
	t, err := time.ParseInLocation(KeyLayout, key, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day key %q: %w", key, err)
	}
	return t, nil
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
