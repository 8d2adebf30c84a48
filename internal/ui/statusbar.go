package ui

import (
	"fmt"
	"strings"

	"aebs.klederson.com/internal/aebs"
	"github.com/charmbracelet/lipgloss"
)

// StatusInfo is the data shown in the bottom status bar.
type StatusInfo struct {
	Decision aebs.Decision
	Sensors  int
	Faults   int
	Speed    float64
	Message  string
}

// RenderStatusBar renders the bottom status bar.
func RenderStatusBar(width int, s StatusInfo) string {
	var status string
	switch {
	case !s.Decision.Active:
		status = StyleOff.Render("[AEBS OFF]")
	case s.Decision.FaultDetected:
		status = StyleAlert.Render("[FAULT]")
	default:
		status = StyleOn.Render("[MONITORING]")
	}

	info := fmt.Sprintf(" Sensors: %d  Faults: %d  Speed: %.0f km/h  Cycle: %d",
		s.Sensors, s.Faults, s.Speed, s.Decision.Cycle)
	if s.Message != "" {
		info += "  " + s.Message
	}

	content := status + StyleStatusBar.Render(info)

	gap := width - 2 - lipgloss.Width(content)
	if gap < 0 {
		gap = 0
	}
	return StyleStatusBar.Width(width).Render(content + strings.Repeat(" ", gap))
}
