package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/adrischez00/campel-fichajes/api"
)

// RenderBalanceBar renders one leave-type balance as a consumed/available
// progress bar.
func RenderBalanceBar(s api.Saldo, width int, progressStyle, labelStyle lipgloss.Style) string {
	total := s.Asignado + s.Arrastre
	if total <= 0 {
		return labelStyle.Render(fmt.Sprintf("%s: sin asignación", s.Tipo))
	}

	percent := s.Gastado / total
	if percent > 1.0 {
		percent = 1.0
	}
	if percent < 0 {
		percent = 0
	}

	barWidth := width - 30
	if barWidth < 10 {
		barWidth = 10
	}
	filled := int(float64(barWidth) * percent)

	bar := ""
	for i := 0; i < filled; i++ {
		bar += "█"
	}
	for i := filled; i < barWidth; i++ {
		bar += "░"
	}

	return fmt.Sprintf("%s %s %s",
		labelStyle.Render(fmt.Sprintf("%-16s", s.Tipo)),
		progressStyle.Render(bar),
		labelStyle.Render(fmt.Sprintf("%.1f/%.1f", s.Disponible, total)))
}

// RenderBalance renders the year's balances, one bar per leave type.
func RenderBalance(bal api.Balance, width, height int, labelStyle, boxStyle lipgloss.Style, progressFor func(available, assigned float64) lipgloss.Style) string {
	var lines []string
	lines = append(lines, lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("Saldos %d", bal.Anio)))

	if len(bal.Saldos) == 0 {
		lines = append(lines, labelStyle.Render("(sin saldos)"))
	}
	for _, s := range bal.Saldos {
		style := progressFor(s.Disponible, s.Asignado+s.Arrastre)
		lines = append(lines, RenderBalanceBar(s, width, style, labelStyle))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return boxStyle.Width(width).Height(height).Render(content)
}
