package ui

import "github.com/charmbracelet/lipgloss"

// ComposeLayout joins the left (scope or detail) panel, the brake panel and
// the sensor list horizontally, with menu bar on top and status bar on bottom.
func ComposeLayout(menuBar, leftPanel, brakePanel, sensorList, statusBar string) string {
	right := lipgloss.JoinVertical(lipgloss.Left, brakePanel, sensorList)
	middle := lipgloss.JoinHorizontal(lipgloss.Top, leftPanel, right)
	return lipgloss.JoinVertical(lipgloss.Left, menuBar, middle, statusBar)
}

// RenderScopePanel wraps scope content with a styled border. The scope itself
// is rendered by the caller to keep this package free of the scope import.
func RenderScopePanel(width, height int, scopeContent, legend string, alert bool) string {
	content := StylePanelTitle.Render("RANGE SCOPE") + "\n" + scopeContent + "\n" + legend
	sty := StylePanelBorder
	if alert {
		sty = StylePanelAlert
	}
	return sty.Width(width - 2).Height(height - 2).Render(content)
}
