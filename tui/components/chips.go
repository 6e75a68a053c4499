package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/adrischez00/campel-fichajes/calendar"
)

// RenderChips renders the selected ranges as a row of chips. The chip at
// highlight is emphasized; pressing delete removes it.
func RenderChips(ranges []calendar.DateRange, highlight int, width int, chipStyle, activeStyle lipgloss.Style) string {
	if len(ranges) == 0 {
		return ""
	}

	var chips []string
	for i, r := range ranges {
		label := calendar.ToKey(r.Start)
		if !r.Start.Equal(r.End) {
			label += " a " + calendar.ToKey(r.End)
		}
		style := chipStyle
		if i == highlight {
			style = activeStyle
		}
		chips = append(chips, style.Render(label))
	}

	row := strings.Join(chips, " ")
	if lipgloss.Width(row) > width {
		row = lipgloss.NewStyle().MaxWidth(width).Render(row)
	}
	return row
}
