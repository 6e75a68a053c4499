package components

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/adrischez00/campel-fichajes/fichaje"
)

// RenderDayTree renders reconstructed days as a two-level tree: day with its
// total, then each interval underneath. Days come in ascending order; the
// most recent ones are shown, oldest trimmed first when space runs out.
func RenderDayTree(days []fichaje.DaySummary, loc *time.Location, width, height int, dayStyle, durationStyle, anomalyStyle, boxStyle lipgloss.Style, formatDuration func(time.Duration) string) string {
	if len(days) == 0 {
		return boxStyle.Width(width).Height(height).Render(
			lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).Render("No hay fichajes."))
	}

	maxLines := height - 2
	if maxLines < 2 {
		maxLines = 2
	}

	// Keep the most recent days that fit.
	needed := 0
	first := len(days)
	for i := len(days) - 1; i >= 0; i-- {
		needed += 1 + len(days[i].Intervals)
		if needed > maxLines {
			break
		}
		first = i
	}

	var lines []string
	for _, day := range days[first:] {
		total := durationStyle.Render(formatDuration(day.Total))
		label := dayStyle.Render(day.Date)
		dots := width - lipgloss.Width(label) - lipgloss.Width(total) - 7
		if dots < 0 {
			dots = 0
		}
		lines = append(lines, "> "+label+" "+strings.Repeat(".", dots)+" "+total)

		for _, iv := range day.Intervals {
			lines = append(lines, "  "+renderInterval(iv, loc, anomalyStyle, formatDuration))
		}
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return boxStyle.Width(width).Height(height).Render(content)
}

func renderInterval(iv fichaje.Interval, loc *time.Location, anomalyStyle lipgloss.Style, formatDuration func(time.Duration) string) string {
	clock := func(p *fichaje.Punch) string {
		if p == nil {
			return "--:--"
		}
		return p.Timestamp.In(loc).Format("15:04")
	}

	line := clock(iv.Entrada) + " - " + clock(iv.Salida)
	if iv.Duration != nil {
		line += "  " + formatDuration(*iv.Duration)
	}
	if iv.Anomaly != "" {
		line += "  " + anomalyStyle.Render(iv.Anomaly)
	}
	return line
}
