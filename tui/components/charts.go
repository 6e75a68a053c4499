package components

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/adrischez00/campel-fichajes/fichaje"
)

// RenderWeekHours renders a horizontal bar per day of the current week
// (Monday-first) showing hours worked.
func RenderWeekHours(res fichaje.Resumen, now time.Time, loc *time.Location, width, height int, barStyle, labelStyle, boxStyle lipgloss.Style, formatDuration func(time.Duration) string) string {
	local := now.In(loc)
	weekday := int(local.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	weekday--
	monday := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -weekday)

	totals := make(map[string]time.Duration, len(res.Days))
	for _, d := range res.Days {
		totals[d.Date] = d.Total
	}

	names := []string{"lu", "ma", "mi", "ju", "vi", "sa", "do"}
	var maxTotal time.Duration
	week := make([]time.Duration, 7)
	for i := 0; i < 7; i++ {
		week[i] = totals[monday.AddDate(0, 0, i).Format("2006-01-02")]
		if week[i] > maxTotal {
			maxTotal = week[i]
		}
	}

	barWidth := width - 18
	if barWidth < 5 {
		barWidth = 5
	}

	var lines []string
	lines = append(lines, lipgloss.NewStyle().Bold(true).Render("Semana"))
	for i := 0; i < 7; i++ {
		filled := 0
		if maxTotal > 0 {
			filled = int(float64(barWidth) * float64(week[i]) / float64(maxTotal))
		}
		bar := ""
		for j := 0; j < filled; j++ {
			bar += "█"
		}
		line := fmt.Sprintf("%s %s %s",
			labelStyle.Render(names[i]),
			barStyle.Render(bar),
			labelStyle.Render(formatDuration(week[i])))
		lines = append(lines, line)
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return boxStyle.Width(width).Height(height).Render(content)
}
