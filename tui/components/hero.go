package components

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/adrischez00/campel-fichajes/fichaje"
)

// RenderHero renders the hero section: the live shift timer when a shift is
// open, the day total otherwise. A shift left open on a past day is shown
// frozen with a warning note instead of a ticking timer.
func RenderHero(res fichaje.Resumen, now time.Time, loc *time.Location, width int, borderIdle, borderRunning, styleIdle, heroTimerStyle, heroLabelStyle, heroNoteStyle lipgloss.Style, formatDurationFull func(time.Duration) string) string {
	var lines []string
	border := borderIdle

	if res.Open == nil {
		total := fichaje.TodayTotal(res, now, loc)
		text := styleIdle.Render("SIN JORNADA  " + formatDurationFull(total) + " hoy")
		lines = append(lines, lipgloss.Place(width-4, 1, lipgloss.Center, lipgloss.Center, text))
	} else {
		elapsed, live := fichaje.OpenDuration(*res.Open, now, loc)
		timer := heroTimerStyle.Render(formatDurationFull(elapsed))
		since := res.Open.Since.In(loc)

		if live {
			border = borderRunning
			label := heroLabelStyle.Render("Jornada abierta desde las " + since.Format("15:04"))
			spacing := 2
			availableWidth := width - 4
			if lipgloss.Width(timer)+spacing+lipgloss.Width(label) <= availableWidth {
				lines = append(lines, timer+strings.Repeat(" ", spacing)+label)
			} else {
				lines = append(lines, timer)
			}
			if res.Open.IsManual {
				lines = append(lines, heroNoteStyle.Render("entrada manual"))
			}
		} else {
			lines = append(lines, timer+"  "+heroLabelStyle.Render("computadas"))
			lines = append(lines, heroNoteStyle.Render("Jornada sin cerrar del "+since.Format("2006-01-02")))
		}
	}

	if len(res.Future) > 0 {
		lines = append(lines, heroNoteStyle.Render("Hay fichajes con fecha futura"))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return border.Width(width).Render(content)
}
