package calendar

import "time"

// Modifiers carries the keyboard state of a pointer event. Ctrl stands in
// for both ctrl and cmd.
type Modifiers struct {
	Shift bool
	Ctrl  bool
}

// Selection is the interactive multi-range calendar selection: a merged,
// sorted set of day ranges plus the anchor and in-flight drag state. It is a
// pure state machine over well-formed day values; the owning view feeds it
// discrete pointer and keyboard events.
//
// While a drag is in progress the selection is always the merge of dragBase
// (the ranges that existed before the drag) with the single span
// [dragFixedStart, current day]. Recomputing from the base on every pointer
// move keeps the dragged span a single logical range even when merging
// re-sorts the set.
type Selection struct {
	ranges         []DateRange
	anchor         time.Time // zero when unset
	dragging       bool
	dragStarted    bool // the in-flight span has been materialized
	dragBase       []DateRange
	dragFixedStart time.Time
	suppressClick  bool
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{}
}

// Ranges returns the current merged ranges. The slice is a copy.
func (s *Selection) Ranges() []DateRange {
	out := make([]DateRange, len(s.ranges))
	copy(out, s.ranges)
	return out
}

// Anchor returns the anchor day, if one is set.
func (s *Selection) Anchor() (time.Time, bool) {
	return s.anchor, !s.anchor.IsZero()
}

// Dragging reports whether a press-drag is in progress.
func (s *Selection) Dragging() bool { return s.dragging }

// IsSelected reports whether day belongs to the selection.
func (s *Selection) IsSelected(day time.Time) bool {
	return Contains(s.ranges, day)
}

// IsEmpty reports whether nothing is selected.
func (s *Selection) IsEmpty() bool { return len(s.ranges) == 0 }

// Click handles a completed click on a day. A click that terminated a drag
// is swallowed once so the drag's release cannot toggle the day back off.
func (s *Selection) Click(day time.Time, mods Modifiers) {
	if s.suppressClick {
		s.suppressClick = false
		return
	}
	d := AtMidnight(day)

	// Plain click on a selected day toggles it off.
	if !mods.Shift && !mods.Ctrl && Contains(s.ranges, d) {
		s.ranges = RemoveDay(s.ranges, d)
		s.anchor = d
		return
	}

	if mods.Ctrl {
		if Contains(s.ranges, d) {
			s.ranges = RemoveDay(s.ranges, d)
		} else {
			s.ranges = Merge(append(s.Ranges(), DateRange{Start: d, End: d}))
		}
		s.anchor = d
		return
	}

	if mods.Shift && !s.anchor.IsZero() {
		rs := s.Ranges()
		span, _ := Normalize(DateRange{Start: s.anchor, End: d})
		if len(rs) == 0 {
			rs = []DateRange{span}
		} else {
			rs[len(rs)-1] = span
		}
		s.ranges = Merge(rs)
		return
	}

	s.ranges = []DateRange{{Start: d, End: d}}
	s.anchor = d
}

// Press handles a pointer press on a day. A press only arms the drag: the
// dragged span is not materialized until the pointer enters a second day,
// so a press followed by an immediate release falls through to Click and
// behaves as a plain, ctrl or shift click instead of a degenerate one-day
// drag. A shift press drags from the anchor and replaces the last range,
// matching the shift-click contract.
func (s *Selection) Press(day time.Time, mods Modifiers) {
	d := AtMidnight(day)

	if mods.Shift && !s.anchor.IsZero() {
		base := s.Ranges()
		if len(base) > 0 {
			base = base[:len(base)-1]
		}
		s.beginDrag(base, s.anchor)
		return
	}

	s.anchor = d
	s.beginDrag(s.Ranges(), d)
}

// Enter handles the pointer moving onto a day while a drag is in progress.
// The first entered day materializes the dragged span; every move rewrites
// it as [fixedStart, day] merged into the pre-drag ranges.
func (s *Selection) Enter(day time.Time) {
	if !s.dragging {
		return
	}
	if !s.dragStarted {
		s.dragStarted = true
		s.suppressClick = true
	}
	s.applyDrag(AtMidnight(day))
}

// Release ends any drag unconditionally, wherever the pointer is. The view
// must route every pointer-up here so a drag can never be left stuck.
func (s *Selection) Release() {
	s.dragging = false
	s.dragStarted = false
	s.dragBase = nil
	s.dragFixedStart = time.Time{}
}

// Clear empties the selection and anchor (Escape).
func (s *Selection) Clear() {
	s.ranges = nil
	s.anchor = time.Time{}
	s.Release()
}

// RemoveRange drops one merged range by value, e.g. from a chip's close
// button.
func (s *Selection) RemoveRange(r DateRange) {
	var out []DateRange
	for _, x := range s.ranges {
		if !x.Equal(r) {
			out = append(out, x)
		}
	}
	s.ranges = out
}

func (s *Selection) beginDrag(base []DateRange, fixedStart time.Time) {
	s.dragging = true
	s.dragStarted = false
	s.dragBase = base
	s.dragFixedStart = AtMidnight(fixedStart)
}

func (s *Selection) applyDrag(d time.Time) {
	start := s.dragFixedStart
	if start.IsZero() {
		start = d
	}
	span, _ := Normalize(DateRange{Start: start, End: d})
	base := make([]DateRange, len(s.dragBase))
	copy(base, s.dragBase)
	s.ranges = Merge(append(base, span))
}
