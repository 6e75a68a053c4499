package calendar

import (
	"math/rand"
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func rangeOf(a, b time.Time) DateRange { return DateRange{Start: a, End: b} }

func TestNormalizeOrdersEnds(t *testing.T) {
	r, ok := Normalize(rangeOf(day(2024, 1, 10), day(2024, 1, 3)))
	if !ok {
		t.Fatal("Expected normalization to succeed")
	}
	if !r.Start.Equal(day(2024, 1, 3)) || !r.End.Equal(day(2024, 1, 10)) {
		t.Errorf("Expected 03..10, got %v..%v", r.Start, r.End)
	}
}

func TestNormalizeRejectsMissingEnd(t *testing.T) {
	if _, ok := Normalize(DateRange{Start: day(2024, 1, 1)}); ok {
		t.Error("Expected normalization to fail for missing end")
	}
	if _, ok := Normalize(DateRange{}); ok {
		t.Error("Expected normalization to fail for empty range")
	}
}

func TestMergeOverlapping(t *testing.T) {
	got := Merge([]DateRange{
		rangeOf(day(2024, 1, 1), day(2024, 1, 5)),
		rangeOf(day(2024, 1, 4), day(2024, 1, 9)),
	})
	if len(got) != 1 {
		t.Fatalf("Expected 1 range, got %d", len(got))
	}
	if !got[0].Start.Equal(day(2024, 1, 1)) || !got[0].End.Equal(day(2024, 1, 9)) {
		t.Errorf("Expected 01..09, got %v..%v", got[0].Start, got[0].End)
	}
}

func TestMergeAdjacentDaysCollapse(t *testing.T) {
	// Two adjoining single days become one continuous range.
	got := Merge([]DateRange{
		rangeOf(day(2024, 1, 2), day(2024, 1, 2)),
		rangeOf(day(2024, 1, 3), day(2024, 1, 3)),
	})
	if len(got) != 1 {
		t.Fatalf("Expected 1 range, got %d", len(got))
	}
	if got[0].Days() != 2 {
		t.Errorf("Expected 2 days, got %d", got[0].Days())
	}
}

func TestMergeKeepsGaps(t *testing.T) {
	got := Merge([]DateRange{
		rangeOf(day(2024, 1, 1), day(2024, 1, 2)),
		rangeOf(day(2024, 1, 4), day(2024, 1, 5)),
	})
	if len(got) != 2 {
		t.Fatalf("Expected 2 ranges, got %d", len(got))
	}
}

func equalRanges(a, b []DateRange) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

func TestMergeIdempotentRandomized(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	base := day(2024, 1, 1)
	for trial := 0; trial < 200; trial++ {
		n := rng.Intn(8)
		var rs []DateRange
		for i := 0; i < n; i++ {
			a := base.AddDate(0, 0, rng.Intn(60))
			b := a.AddDate(0, 0, rng.Intn(10)-3)
			rs = append(rs, rangeOf(a, b))
		}
		once := Merge(rs)
		twice := Merge(once)
		if !equalRanges(once, twice) {
			t.Fatalf("Merge not idempotent for %v: %v != %v", rs, once, twice)
		}
		// Output must be sorted, non-overlapping and non-adjacent.
		for i := 1; i < len(once); i++ {
			if !once[i].Start.After(nextDay(once[i-1].End)) {
				t.Fatalf("Ranges %v and %v overlap or touch", once[i-1], once[i])
			}
		}
		for _, r := range once {
			if r.Start.After(r.End) {
				t.Fatalf("Inverted range %v", r)
			}
		}
	}
}

func TestContainsInclusiveEnds(t *testing.T) {
	rs := []DateRange{rangeOf(day(2024, 1, 5), day(2024, 1, 10))}
	for _, d := range []time.Time{day(2024, 1, 5), day(2024, 1, 7), day(2024, 1, 10)} {
		if !Contains(rs, d) {
			t.Errorf("Expected %v to be contained", d)
		}
	}
	for _, d := range []time.Time{day(2024, 1, 4), day(2024, 1, 11)} {
		if Contains(rs, d) {
			t.Errorf("Expected %v to be outside", d)
		}
	}
}

func TestRemoveDayOutsideIsNoop(t *testing.T) {
	rs := []DateRange{rangeOf(day(2024, 1, 1), day(2024, 1, 3))}
	got := RemoveDay(rs, day(2024, 2, 1))
	if !equalRanges(got, rs) {
		t.Errorf("Expected unchanged ranges, got %v", got)
	}
}

func TestRemoveDayDeletesSingleton(t *testing.T) {
	rs := []DateRange{rangeOf(day(2024, 1, 2), day(2024, 1, 2))}
	if got := RemoveDay(rs, day(2024, 1, 2)); len(got) != 0 {
		t.Errorf("Expected empty selection, got %v", got)
	}
}

func TestRemoveDayShrinksEdges(t *testing.T) {
	rs := []DateRange{rangeOf(day(2024, 1, 1), day(2024, 1, 5))}

	got := RemoveDay(rs, day(2024, 1, 1))
	if len(got) != 1 || !got[0].Start.Equal(day(2024, 1, 2)) {
		t.Errorf("Expected start to shrink to 02, got %v", got)
	}

	got = RemoveDay(rs, day(2024, 1, 5))
	if len(got) != 1 || !got[0].End.Equal(day(2024, 1, 4)) {
		t.Errorf("Expected end to shrink to 04, got %v", got)
	}
}

func TestRemoveDaySplitsInterior(t *testing.T) {
	rs := []DateRange{rangeOf(day(2024, 1, 1), day(2024, 1, 10))}
	got := RemoveDay(rs, day(2024, 1, 5))
	if len(got) != 2 {
		t.Fatalf("Expected 2 ranges, got %d: %v", len(got), got)
	}
	if !got[0].Start.Equal(day(2024, 1, 1)) || !got[0].End.Equal(day(2024, 1, 4)) {
		t.Errorf("Expected left 01..04, got %v..%v", got[0].Start, got[0].End)
	}
	if !got[1].Start.Equal(day(2024, 1, 6)) || !got[1].End.Equal(day(2024, 1, 10)) {
		t.Errorf("Expected right 06..10, got %v..%v", got[1].Start, got[1].End)
	}
}

func TestRemoveDayThenContainsFalse(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	base := day(2024, 3, 1)
	for trial := 0; trial < 100; trial++ {
		var rs []DateRange
		for i := 0; i < 1+rng.Intn(4); i++ {
			a := base.AddDate(0, 0, rng.Intn(40))
			rs = append(rs, rangeOf(a, a.AddDate(0, 0, rng.Intn(6))))
		}
		rs = Merge(rs)
		d := base.AddDate(0, 0, rng.Intn(50))
		if Contains(RemoveDay(rs, d), d) {
			t.Fatalf("Day %v still contained after removal from %v", d, rs)
		}
	}
}
