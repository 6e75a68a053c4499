package calendar

import (
	"testing"
	"time"
)

func TestToKeyPadsFields(t *testing.T) {
	d := time.Date(2024, 3, 7, 15, 42, 9, 0, time.UTC)
	if got := ToKey(d); got != "2024-03-07" {
		t.Errorf("Expected 2024-03-07, got %s", got)
	}
}

func TestFromKeyToKeyRoundTrip(t *testing.T) {
	keys := []string{"2024-01-01", "1999-12-31", "2025-02-28"}
	for _, k := range keys {
		d, err := FromKey(k)
		if err != nil {
			t.Fatalf("Failed to parse key %s: %v", k, err)
		}
		if got := ToKey(d); got != k {
			t.Errorf("Round trip mismatch: got %s, want %s", got, k)
		}
	}
}

func TestFromKeyRejectsGarbage(t *testing.T) {
	for _, k := range []string{"", "2024-13-01", "not-a-key", "2024/01/01"} {
		if _, err := FromKey(k); err == nil {
			t.Errorf("Expected error for key %q", k)
		}
	}
}

func TestAtMidnightStripsTimeAndZone(t *testing.T) {
	madrid, err := time.LoadLocation("Europe/Madrid")
	if err != nil {
		t.Skip("tzdata unavailable")
	}
	d := time.Date(2024, 6, 15, 23, 30, 0, 0, madrid)
	got := AtMidnight(d)
	if got.Hour() != 0 || got.Minute() != 0 || got.Second() != 0 {
		t.Errorf("Expected midnight, got %v", got)
	}
	// The calendar day is taken from the value's own location, not UTC.
	if ToKey(got) != "2024-06-15" {
		t.Errorf("Expected 2024-06-15, got %s", ToKey(got))
	}
}

func TestRoundTripMatchesAtMidnight(t *testing.T) {
	d := time.Date(2024, 8, 9, 13, 5, 0, 0, time.UTC)
	back, err := FromKey(ToKey(d))
	if err != nil {
		t.Fatalf("Failed round trip: %v", err)
	}
	if !back.Equal(AtMidnight(d)) {
		t.Errorf("Expected %v, got %v", AtMidnight(d), back)
	}
}

func TestSameDay(t *testing.T) {
	a := time.Date(2024, 5, 1, 0, 0, 1, 0, time.UTC)
	b := time.Date(2024, 5, 1, 23, 59, 59, 0, time.UTC)
	c := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)
	if !SameDay(a, b) {
		t.Error("Expected a and b to share a day")
	}
	if SameDay(b, c) {
		t.Error("Expected b and c to differ")
	}
}
