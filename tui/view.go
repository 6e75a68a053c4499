package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/adrischez00/campel-fichajes/calendar"
	"github.com/adrischez00/campel-fichajes/tui/components"
)

func (m Model) View() string {
	width := m.width
	height := m.height
	if width < 80 {
		width = 80
	}
	if height < 24 {
		height = 24
	}

	var body string
	if m.view == ViewCalendario {
		body = m.renderCalendarView(width, height)
	} else {
		body = m.renderFichajesView(width, height)
	}

	var messageLine string
	if m.message != "" {
		style := SuccessStyle
		if m.messageError {
			style = ErrorStyle
		}
		messageLine = lipgloss.Place(width, 1, lipgloss.Center, lipgloss.Top, style.Render(m.message))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		body,
		messageLine,
		m.renderFooter(width),
	)
}

func (m Model) renderTabs(width int) string {
	tabs := []string{"Fichajes", "Calendario"}
	var parts []string
	for i, label := range tabs {
		style := TabInactive
		if ViewMode(i) == m.view {
			style = TabActive
		}
		parts = append(parts, style.Render(fmt.Sprintf("[%d] %s", i+1, label)))
	}
	return strings.Join(parts, " ")
}

func (m Model) renderFichajesView(width, height int) string {
	hero := components.RenderHero(m.res, m.now, m.loc, width-2,
		BorderIdle, BorderRunning, StyleIdle, HeroTimerStyle, HeroLabelStyle, HeroNoteStyle,
		FormatDurationFull)

	mainHeight := height - 12
	if mainHeight < 8 {
		mainHeight = 8
	}
	leftWidth := width / 2
	rightWidth := width - leftWidth - 3

	tree := components.RenderDayTree(m.res.Days, m.loc, leftWidth, mainHeight,
		TreeDayStyle, TreeDurationStyle, TreeAnomalyStyle, BoxStyle, FormatDuration)

	chartHeight := mainHeight / 2
	chart := components.RenderWeekHours(m.res, m.now, m.loc, rightWidth, chartHeight,
		ChartBarStyle, ChartLabelStyle, BoxStyle, FormatDuration)
	heatmap := components.RenderMonthHeatmap(m.res, m.now, m.loc, rightWidth, mainHeight-chartHeight-2,
		GetHeatColor, BoxStyle)
	sidebar := lipgloss.JoinVertical(lipgloss.Left, chart, heatmap)

	content := lipgloss.JoinHorizontal(lipgloss.Top, tree, " ", sidebar)

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderTabs(width),
		"",
		hero,
		content,
	)
}

// renderCalendarView lays the month grid out at the exact position the
// mouse hit-testing expects: tabs, one blank line, then the calendar box.
func (m Model) renderCalendarView(width, height int) string {
	calWidth := 7*m.layout.CellW + 4
	grid := components.RenderMonth(m.layout,
		lipgloss.NewStyle().Bold(true).Foreground(ColorWhite),
		DayMutedStyle,
		m.dayStyle,
		m.dayMark)
	calBox := BoxStyle.Width(calWidth).Render(grid)

	rightWidth := width - calWidth - 3
	if rightWidth < 30 {
		rightWidth = 30
	}

	byDay := calendar.FilterByType(m.absByDay, m.statTypes)
	summary := calendar.Summarize(m.sel.Ranges(), byDay, m.holByDay, m.workingDays)
	stats := components.RenderSelectionStats(summary, rightWidth, ChartLabelStyle, BoxStyle, GetEstadoColor)
	if len(m.statTypes) > 0 {
		stats = lipgloss.JoinVertical(lipgloss.Left, stats,
			ChartLabelStyle.Render("filtro: "+strings.Join(m.statTypes, ", ")))
	}

	chips := components.RenderChips(m.sel.Ranges(), m.chipIndex, rightWidth, ChipStyle, DaySelectedStyle)

	balance := components.RenderBalance(m.balance, rightWidth, 4+len(m.balance.Saldos),
		ChartLabelStyle, BoxStyle, GetProgressColor)

	sidebarParts := []string{stats}
	if chips != "" {
		sidebarParts = append(sidebarParts, chips)
	}
	sidebarParts = append(sidebarParts, balance)
	if m.form != nil {
		sidebarParts = append(sidebarParts, m.renderForm(rightWidth))
	}
	sidebar := lipgloss.JoinVertical(lipgloss.Left, sidebarParts...)

	content := lipgloss.JoinHorizontal(lipgloss.Top, calBox, " ", sidebar)

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderTabs(width),
		"",
		content,
	)
}

func (m Model) renderForm(width int) string {
	form := m.form
	var lines []string
	lines = append(lines, lipgloss.NewStyle().Bold(true).Render("Solicitar ausencia"))
	for i, tipo := range absenceTypes {
		prefix := "  "
		style := ChartLabelStyle
		if i == form.tipoIndex {
			prefix = "> "
			style = DayStyle
		}
		lines = append(lines, style.Render(prefix+tipo))
	}
	lines = append(lines, "Motivo: "+form.motivo+"_")
	lines = append(lines, FooterStyle.Render("[enter] enviar  [esc] cancelar"))
	return BoxStyle.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// dayStyle picks the presentation of one grid day from selection, cursor
// and today, in that precedence.
func (m Model) dayStyle(day time.Time) lipgloss.Style {
	today := calendar.AtMidnight(m.now.In(m.loc))
	switch {
	case m.sel.IsSelected(day):
		return DaySelectedStyle
	case day.Equal(m.cursor):
		return DayCursorStyle
	case day.Equal(today):
		return DayTodayStyle
	default:
		return DayStyle
	}
}

// dayMark decorates a day with its strongest absence state or holiday.
func (m Model) dayMark(day time.Time) rune {
	key := calendar.ToKey(day)
	if len(m.holByDay[key]) > 0 {
		return '*'
	}
	mark := rune(0)
	for _, e := range m.absByDay[key] {
		switch e.Estado {
		case calendar.EstadoAprobada:
			return '●'
		case calendar.EstadoPendiente:
			mark = '○'
		case calendar.EstadoRechazada:
			if mark == 0 {
				mark = '×'
			}
		}
	}
	return mark
}

func (m Model) renderFooter(width int) string {
	var help string
	if m.view == ViewCalendario {
		help = "[1/2] Vistas  [click/arrastrar] Seleccionar  [a] Solicitar  [t] Filtro  [esc] Limpiar  [n/p] Mes  [h] Hoy  [q] Salir"
	} else {
		help = "[1/2] Vistas  [e] Entrada  [s] Salida  [r] Recargar  [q] Salir"
	}
	return FooterStyle.Width(width).Render(help)
}
