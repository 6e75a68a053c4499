package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var monthNames = [...]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// MonthLayout fixes where a month grid sits on screen so pointer events can
// be mapped back to days. Cells are CellW x CellH terminal cells laid out in
// a Monday-first 7-column grid; OriginX/OriginY is the top-left cell of the
// first week row.
type MonthLayout struct {
	Month   time.Time // first day of the month, midnight UTC
	OriginX int
	OriginY int
	CellW   int
	CellH   int

	lead int // blank cells before day 1
	days int
}

// NewMonthLayout builds the layout for the month containing ref.
func NewMonthLayout(ref time.Time, originX, originY int) MonthLayout {
	first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)
	next := first.AddDate(0, 1, 0)
	return MonthLayout{
		Month:   first,
		OriginX: originX,
		OriginY: originY,
		CellW:   4,
		CellH:   1,
		lead:    (int(first.Weekday()) + 6) % 7,
		days:    int(next.Sub(first).Hours() / 24),
	}
}

// Rows returns how many week rows the grid occupies.
func (l MonthLayout) Rows() int {
	return (l.lead + l.days + 6) / 7
}

// DayAt maps a screen position to the day under it, if any.
func (l MonthLayout) DayAt(x, y int) (time.Time, bool) {
	if l.CellW <= 0 || l.CellH <= 0 || x < l.OriginX || y < l.OriginY {
		return time.Time{}, false
	}
	col := (x - l.OriginX) / l.CellW
	row := (y - l.OriginY) / l.CellH
	if col > 6 || row >= l.Rows() {
		return time.Time{}, false
	}
	idx := row*7 + col - l.lead
	if idx < 0 || idx >= l.days {
		return time.Time{}, false
	}
	return l.Month.AddDate(0, 0, idx), true
}

// RenderMonth renders the grid. The model decides per-day presentation via
// styleFor and markFor; a mark is a single rune shown next to the day number
// (absence state, holiday) or 0 for none.
func RenderMonth(l MonthLayout, titleStyle, headerStyle lipgloss.Style, styleFor func(time.Time) lipgloss.Style, markFor func(time.Time) rune) string {
	var lines []string

	title := fmt.Sprintf("%s %d", monthNames[l.Month.Month()-1], l.Month.Year())
	lines = append(lines, titleStyle.Render(title))

	names := []string{"lu", "ma", "mi", "ju", "vi", "sa", "do"}
	var header strings.Builder
	for _, n := range names {
		header.WriteString(fmt.Sprintf("%-*s", l.CellW, " "+n))
	}
	lines = append(lines, headerStyle.Render(header.String()))

	for row := 0; row < l.Rows(); row++ {
		var cells []string
		for col := 0; col < 7; col++ {
			idx := row*7 + col - l.lead
			if idx < 0 || idx >= l.days {
				cells = append(cells, strings.Repeat(" ", l.CellW))
				continue
			}
			day := l.Month.AddDate(0, 0, idx)
			mark := ' '
			if m := markFor(day); m != 0 {
				mark = m
			}
			cell := fmt.Sprintf(" %2d%c", day.Day(), mark)
			cells = append(cells, styleFor(day).Render(cell))
		}
		lines = append(lines, strings.Join(cells, ""))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// HeaderRows is how many lines RenderMonth emits above the first week row.
const HeaderRows = 2
