package ui

import (
	"fmt"
	"strings"

	"aebs.klederson.com/internal/aebs"
	"aebs.klederson.com/internal/sensor"
	"github.com/charmbracelet/lipgloss"
)

// RenderSensorList renders the scrollable sensor list panel with a cursor.
// The title stays fixed at the top; only the sensor entries scroll.
func RenderSensorList(sensors []aebs.SensorInfo, width, height, cursorIndex int) string {
	innerW := width - 4
	if innerW < 10 {
		innerW = 10
	}

	title := StylePanelTitle.Render(fmt.Sprintf("SENSORS [%d]", len(sensors)))
	separator := StyleSeparator.Render(strings.Repeat("-", innerW))
	headerLines := []string{title, separator}
	headerCount := len(headerLines)

	// Total inner height (excluding border top+bottom)
	innerH := height - 2
	if innerH < headerCount+1 {
		innerH = headerCount + 1
	}
	space := innerH - headerCount

	var lines []string
	if len(sensors) == 0 {
		lines = append(lines, "")
		lines = append(lines, StyleHelp.Render(" No active sensors."))
		lines = append(lines, StyleHelp.Render(" Press 1-3 to add one"))
	} else {
		linesPerSensor := 3 // 2 content + 1 blank
		maxVisible := space / linesPerSensor
		if maxVisible < 1 {
			maxVisible = 1
		}

		// Keep the cursor inside the viewport
		viewStart := 0
		if cursorIndex >= maxVisible {
			viewStart = cursorIndex - maxVisible + 1
		}

		for i := viewStart; i < len(sensors) && len(lines) < space; i++ {
			lines = append(lines, renderSensorEntry(sensors[i], innerW, i == cursorIndex)...)
		}
	}

	if len(lines) > space {
		lines = lines[:space]
	}
	for len(lines) < space {
		lines = append(lines, "")
	}

	all := append(headerLines, lines...)
	rendered := StylePanelBorder.Width(width - 2).Height(innerH).Render(strings.Join(all, "\n"))

	// lipgloss Height() only sets a minimum; clamp overflow.
	outLines := strings.Split(rendered, "\n")
	if len(outLines) > height {
		outLines = outLines[:height]
	}
	return strings.Join(outLines, "\n")
}

func renderSensorEntry(s aebs.SensorInfo, maxW int, isCursor bool) []string {
	cursor := "  "
	if isCursor {
		cursor = ">>"
	}

	name := s.Name
	nameMax := maxW - 12
	if nameMax < 4 {
		nameMax = 4
	}
	if len(name) > nameMax {
		name = name[:nameMax]
	}

	reading := FormatReading(s)
	raw1 := fmt.Sprintf("%s %s %s", cursor, s.Kind.Tag(), name)
	raw2 := fmt.Sprintf("      %s  hist %d", reading, s.History)

	raw1 = truncRaw(raw1, maxW)
	raw2 = truncRaw(raw2, maxW)

	switch {
	case isCursor:
		return []string{StyleCursorRow.Render(raw1), StyleCursorRow.Render(raw2), ""}
	case s.Faulty:
		return []string{StyleFaultRow.Render(raw1), StyleFaultRow.Render(raw2), ""}
	}

	line1 := fmt.Sprintf("%s %s %s", cursor, kindStyle(s.Kind).Render(s.Kind.Tag()), StyleSensorName.Render(name))
	line2 := fmt.Sprintf("      %s  %s", StyleReading.Render(reading), StyleHelp.Render(fmt.Sprintf("hist %d", s.History)))
	return []string{line1, line2, ""}
}

// FormatReading renders a sensor's last reading for display.
func FormatReading(s aebs.SensorInfo) string {
	switch {
	case s.Faulty:
		return "FAULT"
	case !s.Polled:
		return "--"
	}
	return fmt.Sprintf("%.1fm", s.Reading)
}

func kindStyle(k sensor.Kind) lipgloss.Style {
	switch k {
	case sensor.KindRadar:
		return StyleKindRadar
	case sensor.KindCamera:
		return StyleKindCamera
	default:
		return StyleKindLidar
	}
}

// truncRaw pads or truncates a raw string to exactly w characters.
func truncRaw(s string, w int) string {
	if len(s) > w {
		return s[:w]
	}
	if len(s) < w {
		return s + strings.Repeat(" ", w-len(s))
	}
	return s
}
