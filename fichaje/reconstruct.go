package fichaje

import (
	"sort"
	"time"
)

// Anomaly strings surfaced on irregular intervals. They are display values,
// never errors: reconstruction keeps computing with best-effort semantics.
const (
	AnomalyUnclosedEntrada = "Entrada sin salida"
	AnomalyOrphanSalida    = "Salida sin entrada"
	AnomalyNegative        = "Duración negativa"
	AnomalyStillOpen       = "Aún sin salida"
)

// Interval is one reconstructed work session. An interval with a nil Salida
// is open; Duration is nil while the duration is not fixed (open session) and
// zero for flagged orphan salidas. At most one open interval may exist per
// user; violations are reported as anomalies, not silently repaired.
type Interval struct {
	Entrada  *Punch
	Salida   *Punch
	Duration *time.Duration
	Anomaly  string
}

// Open reports whether the interval has a start but no recorded end.
func (iv Interval) Open() bool { return iv.Entrada != nil && iv.Salida == nil }

// DaySummary is the reconstruction result for one calendar day.
type DaySummary struct {
	Date      string // day key
	Intervals []Interval
	Total     time.Duration // completed intervals only
}

// OpenShift is the explicit cross-view "there is a live session" state,
// replacing ambient shared flags: every view derives the same answer from it.
type OpenShift struct {
	Since    time.Time
	IsManual bool
}

// DayGroup is one day's punches, sorted and ready for reconstruction.
type DayGroup struct {
	Key     string
	Punches []Punch
}

// Resumen is the full reconstruction over a user's punch stream.
type Resumen struct {
	Days   []DaySummary // ascending by day key
	Open   *OpenShift   // trailing open session of the last day, if any
	Future []Punch      // punches stamped after now; surfaced, never dropped
}

// GroupByDay buckets punches by calendar day in loc and sorts each bucket by
// timestamp. The sort is stable, so punches sharing a timestamp keep their
// arrival order: reconstruction is deterministic for any input order of days
// and any duplicated instants.
func GroupByDay(punches []Punch, loc *time.Location) []DayGroup {
	buckets := make(map[string][]Punch)
	for _, p := range punches {
		k := p.DayKey(loc)
		buckets[k] = append(buckets[k], p)
	}
	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	groups := make([]DayGroup, 0, len(keys))
	for _, k := range keys {
		list := buckets[k]
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].Timestamp.Before(list[j].Timestamp)
		})
		groups = append(groups, DayGroup{Key: k, Punches: list})
	}
	return groups
}

// Reconstruct pairs one day's sorted punches into work intervals. Every
// punch maps to exactly one interval edge:
//
//   - an entrada while another entrada is pending emits the pending one as a
//     flagged open interval (last entrada wins, no guessed pairing);
//   - a salida with a pending entrada closes it, carrying both sides' manual
//     flags and motives; a negative duration is clamped to zero and flagged;
//   - a salida with nothing pending is an orphan: emitted zero-duration and
//     flagged rather than discarded;
//   - a pending entrada at end of day stays open, and is reported as the
//     day's open shift.
func Reconstruct(g DayGroup) (DaySummary, *OpenShift) {
	day := DaySummary{Date: g.Key}
	var pending *Punch
	var open *OpenShift

	for i := range g.Punches {
		p := &g.Punches[i]
		switch p.Kind {
		case Entrada:
			if pending != nil {
				day.Intervals = append(day.Intervals, Interval{
					Entrada: pending,
					Anomaly: AnomalyUnclosedEntrada,
				})
			}
			pending = p
		case Salida:
			if pending == nil {
				zero := time.Duration(0)
				day.Intervals = append(day.Intervals, Interval{
					Salida:   p,
					Duration: &zero,
					Anomaly:  AnomalyOrphanSalida,
				})
				continue
			}
			dur := p.Timestamp.Sub(pending.Timestamp)
			anomaly := ""
			if dur < 0 {
				dur = 0
				anomaly = AnomalyNegative
			}
			d := dur
			day.Intervals = append(day.Intervals, Interval{
				Entrada:  pending,
				Salida:   p,
				Duration: &d,
				Anomaly:  anomaly,
			})
			day.Total += dur
			pending = nil
		}
	}

	if pending != nil {
		day.Intervals = append(day.Intervals, Interval{
			Entrada: pending,
			Anomaly: AnomalyStillOpen,
		})
		open = &OpenShift{Since: pending.Timestamp, IsManual: pending.IsManual}
	}
	return day, open
}

// BuildResumen reconstructs the whole punch stream: group by day, rebuild
// each day, and carry the open shift of the latest day that has one. Future
// punches are collected for the caller to warn about.
func BuildResumen(punches []Punch, now time.Time, loc *time.Location) Resumen {
	var res Resumen
	for _, p := range punches {
		if p.Timestamp.After(now) {
			res.Future = append(res.Future, p)
		}
	}
	for _, g := range GroupByDay(punches, loc) {
		day, open := Reconstruct(g)
		res.Days = append(res.Days, day)
		if open != nil {
			res.Open = open
		}
	}
	return res
}

// Day returns the summary for a day key, if present.
func (r Resumen) Day(key string) (DaySummary, bool) {
	for _, d := range r.Days {
		if d.Date == key {
			return d, true
		}
	}
	return DaySummary{}, false
}

// OpenDuration computes what an open session is worth right now. For a
// session opened today in loc it returns the live now-since value and true:
// the caller re-renders it on a one-second tick. A session left open on a
// past day returns its fixed duration up to the end of that day and false;
// it must not tick. Never negative.
func OpenDuration(open OpenShift, now time.Time, loc *time.Location) (time.Duration, bool) {
	since := open.Since.In(loc)
	local := now.In(loc)
	if since.Year() == local.Year() && since.YearDay() == local.YearDay() {
		d := now.Sub(open.Since)
		if d < 0 {
			d = 0
		}
		return d, true
	}
	endOfDay := time.Date(since.Year(), since.Month(), since.Day(), 23, 59, 59, 0, loc)
	d := endOfDay.Sub(since)
	if d < 0 {
		d = 0
	}
	return d, false
}

// TodayTotal is the live day total: the day's closed intervals plus the
// ticking extra of an open session that belongs to today.
func TodayTotal(res Resumen, now time.Time, loc *time.Location) time.Duration {
	key := now.In(loc).Format("2006-01-02")
	var total time.Duration
	if day, ok := res.Day(key); ok {
		total = day.Total
	}
	if res.Open != nil {
		if extra, live := OpenDuration(*res.Open, now, loc); live {
			total += extra
		}
	}
	return total
}
