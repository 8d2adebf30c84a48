package ui

import (
	"fmt"
	"math"
	"strings"

	"aebs.klederson.com/internal/aebs"
	"aebs.klederson.com/internal/history"
	"aebs.klederson.com/internal/sensor"
	"github.com/charmbracelet/lipgloss"
)

// DetailInfo is everything the sensor detail panel shows.
type DetailInfo struct {
	Sensor     aebs.SensorInfo
	History    []float64
	Stats      history.Summary
	MaxHistory int
	MaxRange   float64
}

// RenderDetailPanel renders the sensor detail overlay that replaces the scope.
func RenderDetailPanel(d DetailInfo, width, height int) string {
	innerW := width - 4
	if innerW < 20 {
		innerW = 20
	}

	title := StylePanelTitle.Render("SENSOR DETAIL")
	escHint := StyleHelp.Render("[ESC]")
	titleLine := title + strings.Repeat(" ", max(0, innerW-lipgloss.Width(title)-lipgloss.Width(escHint))) + escHint

	sep := StyleSeparator.Render(strings.Repeat("-", innerW))

	lines := []string{titleLine, sep, ""}

	labelSty := lipgloss.NewStyle().Foreground(ColorMuted)
	valSty := lipgloss.NewStyle().Foreground(ColorText).Bold(true)

	status := StyleOn.Render("OK")
	if d.Sensor.Faulty {
		status = StyleAlert.Render("FAULT")
	}

	fields := []struct{ label, value string }{
		{"Name", valSty.Render(d.Sensor.Name)},
		{"ID", StyleSensorID.Render(d.Sensor.ID)},
		{"Kind", valSty.Render(d.Sensor.Kind.String())},
		{"Reading", valSty.Render(FormatReading(d.Sensor))},
		{"Status", status},
		{"History", valSty.Render(fmt.Sprintf("%d / %d", len(d.History), d.MaxHistory))},
	}
	for _, f := range fields {
		lines = append(lines, labelSty.Render(fmt.Sprintf("  %-10s", f.label))+f.value)
	}

	lines = append(lines, "")

	if d.Stats.Count > 0 {
		spread := fmt.Sprintf("min %.1fm  max %.1fm  mean %.1fm", d.Stats.Min, d.Stats.Max, d.Stats.Mean)
		motion := fmt.Sprintf("sd %.2f  trend %+.2fm/tick", d.Stats.StdDev, d.Stats.Trend)
		lines = append(lines, labelSty.Render("  Stats     ")+valSty.Render(spread))
		lines = append(lines, labelSty.Render("            ")+valSty.Render(motion))
		lines = append(lines, "")
	}

	// Range bar
	barWidth := innerW - 22
	if barWidth < 10 {
		barWidth = 10
	}
	if d.Sensor.Polled && !d.Sensor.Faulty {
		lines = append(lines, labelSty.Render("  Range    ")+renderRangeBar(d.Sensor.Reading, d.MaxRange, barWidth))
		lines = append(lines, "")
	}

	if len(d.History) > 0 {
		sparkW := innerW - 4
		if sparkW < 10 {
			sparkW = 10
		}
		lines = append(lines, labelSty.Render("  Reading History:"))
		lines = append(lines, "  "+lipgloss.NewStyle().Foreground(ColorAccent).Render(renderSparkline(d.History, sparkW)))
	}

	for len(lines) < height-2 {
		lines = append(lines, "")
	}
	if len(lines) > height-2 {
		lines = lines[:max(0, height-2)]
	}

	sty := StylePanelBorder
	if d.Sensor.Faulty {
		sty = StylePanelAlert
	}
	return sty.Width(width - 2).Height(height - 2).Render(strings.Join(lines, "\n"))
}

// renderRangeBar fills more of the bar the closer the obstacle is.
func renderRangeBar(meters, maxRange float64, width int) string {
	ratio := 1 - meters/maxRange
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	filled := int(math.Round(ratio * float64(width)))

	bar := strings.Repeat("|", filled) + strings.Repeat("-", width-filled)
	filledPart := lipgloss.NewStyle().Foreground(proximityColor(meters)).Render(bar[:filled])
	emptyPart := lipgloss.NewStyle().Foreground(ColorDim).Render(bar[filled:])
	return StyleHelp.Render("[") + filledPart + emptyPart + StyleHelp.Render("]") +
		lipgloss.NewStyle().Foreground(ColorText).Render(fmt.Sprintf(" %.1fm", meters))
}

// proximityColor maps a distance to the default brake zone colours.
func proximityColor(meters float64) lipgloss.Color {
	switch {
	case meters < 10:
		return ColorError
	case meters < 25:
		return ColorWarning
	default:
		return ColorOK
	}
}

// renderSparkline scales the last width readings between their min and max.
// Fault readings are drawn as '!' and excluded from scaling.
func renderSparkline(values []float64, width int) string {
	if len(values) == 0 {
		return ""
	}

	chars := []byte{'_', '.', '-', '~', '^'}

	start := 0
	if len(values) > width {
		start = len(values) - width
	}
	window := values[start:]

	minV, maxV := math.Inf(1), math.Inf(-1)
	for _, v := range window {
		if sensor.IsSentinel(v) {
			continue
		}
		minV = math.Min(minV, v)
		maxV = math.Max(maxV, v)
	}

	rng := maxV - minV
	if rng < 1 {
		rng = 1
	}

	var sb strings.Builder
	for _, v := range window {
		if sensor.IsSentinel(v) {
			sb.WriteByte('!')
			continue
		}
		idx := int((v - minV) / rng * float64(len(chars)-1))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(chars) {
			idx = len(chars) - 1
		}
		sb.WriteByte(chars[idx])
	}
	return sb.String()
}
