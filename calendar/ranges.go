package calendar

import (
	"sort"
	"time"
)

// DateRange is a closed interval of calendar days. Both ends are midnight
// day values and Start never follows End once normalized.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Days returns the number of calendar days covered, inclusive of both ends.
func (r DateRange) Days() int {
	return int(r.End.Sub(r.Start)/(24*time.Hour)) + 1
}

// Equal reports value equality of the two ranges.
func (r DateRange) Equal(o DateRange) bool {
	return r.Start.Equal(o.Start) && r.End.Equal(o.End)
}

func nextDay(t time.Time) time.Time { return t.AddDate(0, 0, 1) }
func prevDay(t time.Time) time.Time { return t.AddDate(0, 0, -1) }

// Normalize orders the range so Start <= End, with both ends at midnight.
// Returns false for a range missing either end.
func Normalize(r DateRange) (DateRange, bool) {
	if r.Start.IsZero() || r.End.IsZero() {
		return DateRange{}, false
	}
	a := AtMidnight(r.Start)
	b := AtMidnight(r.End)
	if a.After(b) {
		a, b = b, a
	}
	return DateRange{Start: a, End: b}, true
}

// Merge normalizes, sorts and folds the ranges into a canonical set: sorted
// by start, non-overlapping, and with adjacent ranges (no gap between them)
// collapsed into one. Two single days one day apart become one range, so a
// user selecting adjoining days sees a continuous span. Merge is idempotent.
func Merge(ranges []DateRange) []DateRange {
	rs := make([]DateRange, 0, len(ranges))
	for _, r := range ranges {
		if n, ok := Normalize(r); ok {
			rs = append(rs, n)
		}
	}
	if len(rs) == 0 {
		return nil
	}
	sort.Slice(rs, func(i, j int) bool { return rs[i].Start.Before(rs[j].Start) })

	out := []DateRange{rs[0]}
	for _, cur := range rs[1:] {
		prev := &out[len(out)-1]
		if !cur.Start.After(nextDay(prev.End)) {
			if cur.End.After(prev.End) {
				prev.End = cur.End
			}
		} else {
			out = append(out, cur)
		}
	}
	return out
}

// Contains reports whether day falls within any range, inclusive both ends.
func Contains(ranges []DateRange, day time.Time) bool {
	d := AtMidnight(day)
	for _, r := range ranges {
		if !d.Before(AtMidnight(r.Start)) && !d.After(AtMidnight(r.End)) {
			return true
		}
	}
	return false
}

// RemoveDay removes exactly one day from the set. A range not containing the
// day passes through; a single-day range equal to the day disappears; a day
// at either edge shrinks the range; an interior day splits the range in two.
// The result is re-merged before returning.
func RemoveDay(ranges []DateRange, day time.Time) []DateRange {
	d := AtMidnight(day)
	var out []DateRange
	for _, r := range ranges {
		a := AtMidnight(r.Start)
		b := AtMidnight(r.End)
		switch {
		case d.Before(a) || d.After(b):
			out = append(out, DateRange{Start: a, End: b})
		case a.Equal(b):
			// single-day range removed entirely
		case d.Equal(a):
			out = append(out, DateRange{Start: nextDay(a), End: b})
		case d.Equal(b):
			out = append(out, DateRange{Start: a, End: prevDay(b)})
		default:
			out = append(out,
				DateRange{Start: a, End: prevDay(d)},
				DateRange{Start: nextDay(d), End: b},
			)
		}
	}
	return Merge(out)
}

// EachDay calls fn for every calendar day in every range, in order.
func EachDay(ranges []DateRange, fn func(day time.Time)) {
	for _, r := range ranges {
		end := AtMidnight(r.End)
		for d := AtMidnight(r.Start); !d.After(end); d = nextDay(d) {
			fn(d)
		}
	}
}
