package calendar

import (
	"strings"
	"time"
)

// Absence states as the backend reports them.
const (
	EstadoAprobada  = "APROBADA"
	EstadoPendiente = "PENDIENTE"
	EstadoRechazada = "RECHAZADA"
	EstadoFestivo   = "FESTIVO"
)

// DayEntry is an external absence or holiday record as it participates in
// day-indexed lookups. The engine never mutates these.
type DayEntry struct {
	Tipo        string
	Subtipo     string
	Estado      string
	Parcial     bool
	Retribuida  bool
	FechaInicio string // YYYY-MM-DD
	FechaFin    string // YYYY-MM-DD
	HoraInicio  string
	HoraFin     string
	Motivo      string
}

// HolidayEvent is one record of the backend's unified calendar feed.
type HolidayEvent struct {
	Fecha  string `json:"fecha"`
	Titulo string `json:"titulo"`
	Type   string `json:"type"`
}

// ExpandToDays turns date-span records into a day-key index: every day a
// record covers gets the record appended under its key.
func ExpandToDays(items []DayEntry) map[string][]DayEntry {
	byDay := make(map[string][]DayEntry)
	for _, a := range items {
		start, err := FromKey(a.FechaInicio)
		if err != nil {
			continue
		}
		end, err := FromKey(a.FechaFin)
		if err != nil {
			continue
		}
		for d := start; !d.After(end); d = nextDay(d) {
			k := ToKey(d)
			byDay[k] = append(byDay[k], a)
		}
	}
	return byDay
}

// FilterByType keeps only entries whose Tipo is in types. An empty type list
// keeps everything; callers use this to choose which leave-type collections
// participate in a stats computation.
func FilterByType(byDay map[string][]DayEntry, types []string) map[string][]DayEntry {
	if len(types) == 0 {
		return byDay
	}
	want := make(map[string]bool, len(types))
	for _, t := range types {
		want[strings.ToUpper(t)] = true
	}
	out := make(map[string][]DayEntry, len(byDay))
	for k, entries := range byDay {
		var kept []DayEntry
		for _, e := range entries {
			if want[strings.ToUpper(e.Tipo)] {
				kept = append(kept, e)
			}
		}
		if len(kept) > 0 {
			out[k] = kept
		}
	}
	return out
}

// HolidayIndex filters the unified feed down to holidays and indexes them by
// day as pseudo-entries, deduplicating repeated day/title pairs.
func HolidayIndex(events []HolidayEvent) map[string][]DayEntry {
	byDay := make(map[string][]DayEntry)
	seen := make(map[string]bool)
	for _, ev := range events {
		if !strings.EqualFold(ev.Type, EstadoFestivo) {
			continue
		}
		k := ev.Fecha
		if len(k) > 10 {
			k = k[:10]
		}
		sig := k + "|" + ev.Titulo
		if seen[sig] {
			continue
		}
		seen[sig] = true
		byDay[k] = append(byDay[k], DayEntry{
			Tipo:        EstadoFestivo,
			Estado:      EstadoFestivo,
			Retribuida:  true,
			FechaInicio: k,
			FechaFin:    k,
			Motivo:      ev.Titulo,
		})
	}
	return byDay
}

// RangeStats accumulates what a selection touches in a day index.
type RangeStats struct {
	RangeCount int
	Days       int
	Total      int
	Partials   int
	ByStatus   map[string]int
}

// Stats walks every calendar day in every range, looks the day up in byDay
// and accumulates counts. Returns nil for an empty selection.
func Stats(ranges []DateRange, byDay map[string][]DayEntry) *RangeStats {
	if len(ranges) == 0 {
		return nil
	}
	st := &RangeStats{
		RangeCount: len(ranges),
		ByStatus:   map[string]int{EstadoAprobada: 0, EstadoPendiente: 0, EstadoRechazada: 0},
	}
	EachDay(ranges, func(day time.Time) {
		st.Days++
		for _, e := range byDay[ToKey(day)] {
			st.Total++
			if e.Parcial {
				st.Partials++
			}
			st.ByStatus[e.Estado]++
		}
	})
	return st
}

// WeekendDays counts Saturdays and Sundays across the ranges. Computed
// locally: weekends need no absence record to be attributed.
func WeekendDays(ranges []DateRange) int {
	n := 0
	EachDay(ranges, func(day time.Time) {
		if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
			n++
		}
	})
	return n
}

// HolidayCount counts holiday pseudo-entries inside the ranges.
func HolidayCount(ranges []DateRange, holidaysByDay map[string][]DayEntry) int {
	n := 0
	EachDay(ranges, func(day time.Time) {
		for _, e := range holidaysByDay[ToKey(day)] {
			if e.Estado == EstadoFestivo {
				n++
			}
		}
	})
	return n
}

// SelectionSummary is the derived view-model for the selection stats bar.
// WorkingDays is nil while the backend count is unknown (pending fetch or
// fetch failure); dependent fields degrade to nil with it.
type SelectionSummary struct {
	Stats          *RangeStats
	WorkingDays    *int
	Weekends       int
	Holidays       int
	NonWorking     *int // total - working, clamped at zero
	OtherNonWork   *int // non-working minus weekends and holidays, clamped
}

// Summarize reconciles the local stats with the backend working-day count.
// Purely informational display, not authoritative leave accounting.
func Summarize(ranges []DateRange, byDay, holidaysByDay map[string][]DayEntry, workingDays *int) SelectionSummary {
	sum := SelectionSummary{
		Stats:       Stats(ranges, byDay),
		WorkingDays: workingDays,
		Weekends:    WeekendDays(ranges),
		Holidays:    HolidayCount(ranges, holidaysByDay),
	}
	if sum.Stats != nil && workingDays != nil {
		nw := sum.Stats.Days - *workingDays
		if nw < 0 {
			nw = 0
		}
		other := sum.Stats.Days - *workingDays - sum.Weekends - sum.Holidays
		if other < 0 {
			other = 0
		}
		sum.NonWorking = &nw
		sum.OtherNonWork = &other
	}
	return sum
}
