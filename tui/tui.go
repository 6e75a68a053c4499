package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/adrischez00/campel-fichajes/api"
)

// LaunchTUI initializes and launches the terminal UI using Bubbletea. All
// motion events are requested so calendar drags track the pointer between
// presses.
func LaunchTUI(client *api.Client, loc *time.Location) error {
	m := NewModel(client, loc)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	return err
}

// FormatDuration formats a duration as "XhYYm".
func FormatDuration(d time.Duration) string {
	totalSeconds := int(d.Seconds())
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	return fmt.Sprintf("%dh%02dm", hours, minutes)
}

// FormatDurationFull formats a duration as "HH:MM:SS" for the live timer.
func FormatDurationFull(d time.Duration) string {
	totalSeconds := int(d.Seconds())
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}
