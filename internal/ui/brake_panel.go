package ui

import (
	"fmt"
	"strings"

	"aebs.klederson.com/internal/aebs"
	"github.com/charmbracelet/lipgloss"
)

// BrakePanelHeight is the rendered height of RenderBrakePanel.
const BrakePanelHeight = 8

// RenderBrakePanel shows the current brake command and fault indicator.
func RenderBrakePanel(d aebs.Decision, width int) string {
	innerW := width - 4
	if innerW < 16 {
		innerW = 16
	}

	levelSty := StyleOn
	switch d.BrakeLevel {
	case aebs.BrakeFull:
		levelSty = StyleAlert
	case aebs.BrakePartial:
		levelSty = StyleOff
	}

	fault := StyleOn.Render("NO")
	if d.FaultDetected {
		fault = StyleAlert.Render("YES")
	}

	minDist := "--"
	if d.HasObstacle() {
		minDist = fmt.Sprintf("%.1fm", d.MinDistance)
	}

	faulty := strings.Join(d.Faulty, ",")
	if faulty == "" {
		faulty = "-"
	}

	lines := []string{
		StylePanelTitle.Render("AEBS EVALUATION"),
		fmt.Sprintf(" Brake Level: %s", levelSty.Render(fmt.Sprintf("%d%% %s", int(d.BrakeLevel), d.BrakeLevel))),
		" " + renderBrakeBar(d.BrakeLevel, innerW-2),
		fmt.Sprintf(" Fault Detected: %s", fault),
		fmt.Sprintf(" Min Distance: %s", minDist),
		StyleHelp.Render(truncRaw(" Faulty: "+faulty, innerW)),
	}

	sty := StylePanelBorder
	if d.BrakeLevel == aebs.BrakeFull {
		sty = StylePanelAlert
	}
	return sty.Width(width - 2).Height(BrakePanelHeight - 2).Render(strings.Join(lines, "\n"))
}

func renderBrakeBar(level aebs.BrakeLevel, width int) string {
	if width < 4 {
		width = 4
	}
	filled := width * int(level) / 100
	color := ColorOK
	switch level {
	case aebs.BrakeFull:
		color = ColorError
	case aebs.BrakePartial:
		color = ColorWarning
	}
	return lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("#", filled)) +
		lipgloss.NewStyle().Foreground(ColorDim).Render(strings.Repeat(".", width-filled))
}
