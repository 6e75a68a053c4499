package tui

import (
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/adrischez00/campel-fichajes/calendar"
)

// Color palette.
var (
	ColorGreen  = lipgloss.Color("#22c55e")
	ColorYellow = lipgloss.Color("#eab308")
	ColorRed    = lipgloss.Color("#ef4444")
	ColorBlue   = lipgloss.Color("#3b82f6")
	ColorPurple = lipgloss.Color("#a855f7")
	ColorGray   = lipgloss.Color("#888888")
	ColorDim    = lipgloss.Color("#444444")
	ColorWhite  = lipgloss.Color("#f8fafc")
)

var (
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorDim).
			Padding(0, 1)

	BorderIdle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorGray).
			Padding(1, 2)

	BorderRunning = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorGreen).
			Padding(1, 2)

	StyleIdle      = lipgloss.NewStyle().Foreground(ColorGray)
	HeroTimerStyle = lipgloss.NewStyle().Foreground(ColorGreen).Bold(true)
	HeroLabelStyle = lipgloss.NewStyle().Foreground(ColorWhite)
	HeroNoteStyle  = lipgloss.NewStyle().Foreground(ColorYellow)

	TabActive = lipgloss.NewStyle().
			Foreground(ColorWhite).
			Background(ColorBlue).
			Padding(0, 2)
	TabInactive = lipgloss.NewStyle().
			Foreground(ColorGray).
			Padding(0, 2)

	FooterStyle  = lipgloss.NewStyle().Foreground(ColorGray)
	SuccessStyle = lipgloss.NewStyle().Foreground(ColorGreen)
	ErrorStyle   = lipgloss.NewStyle().Foreground(ColorRed)

	DayStyle         = lipgloss.NewStyle().Foreground(ColorWhite)
	DayMutedStyle    = lipgloss.NewStyle().Foreground(ColorDim)
	DayTodayStyle    = lipgloss.NewStyle().Foreground(ColorBlue).Bold(true)
	DaySelectedStyle = lipgloss.NewStyle().Foreground(ColorWhite).Background(ColorBlue)
	DayCursorStyle   = lipgloss.NewStyle().Foreground(ColorWhite).Background(ColorPurple)

	ChipStyle = lipgloss.NewStyle().
			Foreground(ColorWhite).
			Background(ColorDim).
			Padding(0, 1)

	TreeDayStyle      = lipgloss.NewStyle().Foreground(ColorBlue).Bold(true)
	TreeDurationStyle = lipgloss.NewStyle().Foreground(ColorGreen)
	TreeAnomalyStyle  = lipgloss.NewStyle().Foreground(ColorYellow)

	ChartBarStyle   = lipgloss.NewStyle().Foreground(ColorBlue)
	ChartLabelStyle = lipgloss.NewStyle().Foreground(ColorGray)
)

// GetEstadoColor maps an absence state to its display color.
func GetEstadoColor(estado string) lipgloss.Color {
	switch estado {
	case calendar.EstadoAprobada:
		return ColorGreen
	case calendar.EstadoPendiente:
		return ColorYellow
	case calendar.EstadoRechazada:
		return ColorRed
	case calendar.EstadoFestivo:
		return ColorPurple
	default:
		return ColorGray
	}
}

// GetProgressColor picks a bar color from how much of the balance is left.
func GetProgressColor(available, assigned float64) lipgloss.Style {
	if assigned <= 0 {
		return lipgloss.NewStyle().Foreground(ColorGray)
	}
	ratio := available / assigned
	switch {
	case ratio < 0.15:
		return lipgloss.NewStyle().Foreground(ColorRed)
	case ratio < 0.4:
		return lipgloss.NewStyle().Foreground(ColorYellow)
	default:
		return lipgloss.NewStyle().Foreground(ColorGreen)
	}
}

// GetHeatColor shades a day by hours worked.
func GetHeatColor(d time.Duration) lipgloss.Color {
	switch {
	case d <= 0:
		return ColorDim
	case d < 4*time.Hour:
		return lipgloss.Color("#14532d")
	case d < 7*time.Hour:
		return lipgloss.Color("#16a34a")
	default:
		return ColorGreen
	}
}
