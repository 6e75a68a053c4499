package components

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/adrischez00/campel-fichajes/fichaje"
)

// RenderMonthHeatmap renders a Monday-first grid of the current month where
// each day is shaded by hours worked.
func RenderMonthHeatmap(res fichaje.Resumen, now time.Time, loc *time.Location, width, height int, heatColor func(time.Duration) lipgloss.Color, boxStyle lipgloss.Style) string {
	local := now.In(loc)
	first := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, time.UTC)
	daysIn := int(first.AddDate(0, 1, 0).Sub(first).Hours() / 24)
	lead := (int(first.Weekday()) + 6) % 7

	totals := make(map[string]time.Duration, len(res.Days))
	for _, d := range res.Days {
		totals[d.Date] = d.Total
	}

	var lines []string
	lines = append(lines, lipgloss.NewStyle().Bold(true).Render("Horas del mes"))
	lines = append(lines, "")

	var row strings.Builder
	row.WriteString(strings.Repeat("   ", lead))
	for i := 0; i < daysIn; i++ {
		day := first.AddDate(0, 0, i)
		total := totals[day.Format("2006-01-02")]
		sq := lipgloss.NewStyle().Foreground(heatColor(total)).Render("██ ")
		row.WriteString(sq)
		if (lead+i+1)%7 == 0 {
			lines = append(lines, row.String())
			row.Reset()
		}
	}
	if row.Len() > 0 {
		lines = append(lines, row.String())
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return boxStyle.Width(width).Height(height).Render(content)
}
