package ui

import (
	"fmt"
	"strings"

	"aebs.klederson.com/internal/config"
	"github.com/charmbracelet/lipgloss"
)

// RenderMenuBar renders the top menu bar.
func RenderMenuBar(width int, engineOn, aebsActive bool) string {
	title := fmt.Sprintf(" %s v%s ", config.AppName, config.AppVersion)

	keys := []struct{ key, label string }{
		{"E", "ngine"},
		{"A", "EBS"},
		{"1-3", " add"},
		{"X", " remove"},
		{"F", "ault"},
		{"C", "lear"},
		{"R", "eset"},
		{"Q", "uit"},
	}

	var menu strings.Builder
	for _, k := range keys {
		menu.WriteString("  " + StyleMenuKey.Render("["+k.key+"]") + StyleMenuLabel.Render(k.label))
	}

	right := onOff("ENGINE", engineOn) + "  " + onOff("AEBS", aebsActive) + " "
	left := StyleMenuKey.Render(title) + menu.String()
	if lipgloss.Width(left)+lipgloss.Width(right) > width-2 {
		left = StyleMenuKey.Render(title)
	}

	gap := width - 2 - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	return StyleMenuBar.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}

func onOff(label string, on bool) string {
	if on {
		return StyleOn.Render(label + " ON")
	}
	return StyleOff.Render(label + " OFF")
}
