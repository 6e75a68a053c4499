package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/adrischez00/campel-fichajes/calendar"
)

// RenderSelectionStats renders the selection summary line shown under the
// calendar. Counts that depend on the backend working-day figure show "..."
// while the fetch is pending.
func RenderSelectionStats(sum calendar.SelectionSummary, width int, labelStyle, boxStyle lipgloss.Style, estadoColor func(string) lipgloss.Color) string {
	if sum.Stats == nil {
		return boxStyle.Width(width).Render(labelStyle.Render("Sin selección"))
	}

	pending := func(v *int) string {
		if v == nil {
			return "..."
		}
		return fmt.Sprintf("%d", *v)
	}

	parts := []string{
		fmt.Sprintf("%d rango(s), %d día(s)", sum.Stats.RangeCount, sum.Stats.Days),
		"laborables " + pending(sum.WorkingDays),
		fmt.Sprintf("findes %d", sum.Weekends),
		fmt.Sprintf("festivos %d", sum.Holidays),
	}
	if sum.OtherNonWork != nil && *sum.OtherNonWork > 0 {
		parts = append(parts, fmt.Sprintf("otros no laborables %d", *sum.OtherNonWork))
	}

	line := labelStyle.Render(strings.Join(parts, "  ·  "))

	var states []string
	for _, estado := range []string{calendar.EstadoAprobada, calendar.EstadoPendiente, calendar.EstadoRechazada} {
		if n := sum.Stats.ByStatus[estado]; n > 0 {
			style := lipgloss.NewStyle().Foreground(estadoColor(estado))
			states = append(states, style.Render(fmt.Sprintf("%s %d", strings.ToLower(estado), n)))
		}
	}
	if sum.Stats.Partials > 0 {
		states = append(states, labelStyle.Render(fmt.Sprintf("parciales %d", sum.Stats.Partials)))
	}
	if len(states) > 0 {
		line = lipgloss.JoinVertical(lipgloss.Left, line, strings.Join(states, "  "))
	}

	return boxStyle.Width(width).Render(line)
}
