package ui

import "github.com/charmbracelet/lipgloss"

// Dashboard palette
var (
	ColorText        = lipgloss.Color("#E0E0E0")
	ColorMuted       = lipgloss.Color("#8A8A8A")
	ColorDim         = lipgloss.Color("#444444")
	ColorOK          = lipgloss.Color("#2EC46B")
	ColorWarning     = lipgloss.Color("#FFAA00")
	ColorError       = lipgloss.Color("#FF3300")
	ColorAccent      = lipgloss.Color("#4FC3F7")
	ColorBar         = lipgloss.Color("#1A1A2E")
	ColorBorderNorm  = lipgloss.Color("#3A3A5A")
	ColorBorderAlert = lipgloss.Color("#FF3300")
)

// Pre-built styles
var (
	StyleMenuBar = lipgloss.NewStyle().
			Background(ColorBar).
			Foreground(ColorText).
			Bold(true).
			Padding(0, 1)

	StyleMenuKey = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	StyleMenuLabel = lipgloss.NewStyle().
			Foreground(ColorMuted)

	StyleStatusBar = lipgloss.NewStyle().
			Background(ColorBar).
			Foreground(ColorMuted).
			Padding(0, 1)

	StyleOn = lipgloss.NewStyle().
		Foreground(ColorOK).
		Bold(true)

	StyleOff = lipgloss.NewStyle().
			Foreground(ColorWarning).
			Bold(true)

	StyleAlert = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	StylePanelBorder = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBorderNorm)

	StylePanelAlert = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorderAlert)

	StylePanelTitle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true).
			Padding(0, 1)

	StyleSensorName = lipgloss.NewStyle().
			Foreground(ColorText).
			Bold(true)

	StyleSensorID = lipgloss.NewStyle().
			Foreground(ColorDim)

	StyleReading = lipgloss.NewStyle().
			Foreground(ColorOK)

	StyleKindLidar = lipgloss.NewStyle().
			Foreground(ColorOK)

	StyleKindRadar = lipgloss.NewStyle().
			Foreground(ColorWarning)

	StyleKindCamera = lipgloss.NewStyle().
			Foreground(ColorText)

	StyleSeparator = lipgloss.NewStyle().
			Foreground(ColorDim)

	StyleHelp = lipgloss.NewStyle().
			Foreground(ColorMuted)

	StyleCursorRow = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#000000")).
			Background(ColorAccent).
			Bold(true)

	StyleFaultRow = lipgloss.NewStyle().
			Foreground(ColorError)
)
