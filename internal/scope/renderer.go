package scope

import (
	"fmt"
	"math"
	"strings"

	"aebs.klederson.com/internal/aebs"
	"github.com/charmbracelet/lipgloss"
)

var (
	colorClear   = lipgloss.Color("#2E7D32")
	colorPartial = lipgloss.Color("#FFAA00")
	colorFull    = lipgloss.Color("#FF3300")
	colorDim     = lipgloss.Color("#444444")
	colorBright  = lipgloss.Color("#FFFFFF")

	styleEdge    = lipgloss.NewStyle().Foreground(colorDim)
	styleLabel   = lipgloss.NewStyle().Foreground(colorDim)
	styleEgo     = lipgloss.NewStyle().Foreground(colorBright).Bold(true)
	styleFault   = lipgloss.NewStyle().Foreground(colorFull).Bold(true).Blink(true)
	styleClear   = lipgloss.NewStyle().Foreground(colorClear)
	stylePartial = lipgloss.NewStyle().Foreground(colorPartial)
	styleFull    = lipgloss.NewStyle().Foreground(colorFull)
)

const labelWidth = 5 // "120m "

// Frame is everything the scope needs for one render.
type Frame struct {
	Sensors    []aebs.SensorInfo
	Thresholds aebs.Thresholds
	MaxRange   float64
	Brake      aebs.BrakeLevel
	Pulse      *Pulse
}

// lane holds the column bounds and marked rows of one render.
type lane struct {
	left, right, center int
	fullRow, partialRow int
}

type blip struct {
	col, row int
	symbol   string
	zone     Zone
	faulty   bool
}

// Render draws the lane ahead as a width x height grid. The ego vehicle sits
// on the bottom row; each sensor's last reading is plotted at its distance.
// Faulty sensors are pinned to the far edge as '?'.
func Render(width, height int, f Frame) string {
	if width < labelWidth+7 || height < 4 {
		return ""
	}

	laneW := width - labelWidth
	rows := height - 1 // last row is the ego vehicle
	g := lane{
		left:       1,
		right:      laneW - 2,
		center:     laneW / 2,
		fullRow:    MetersToRow(f.Thresholds.Full, f.MaxRange, rows),
		partialRow: MetersToRow(f.Thresholds.Partial, f.MaxRange, rows),
	}

	blips := placeBlips(f, g.left, g.right, rows)

	var sb strings.Builder
	for row := 0; row < rows; row++ {
		meters := RowToMeters(row, f.MaxRange, rows)
		sb.WriteString(rowLabel(row, g, meters))
		for col := 0; col < laneW; col++ {
			sb.WriteString(renderCell(col, row, g, meters, f, blips))
		}
		sb.WriteByte('\n')
	}
	sb.WriteString(strings.Repeat(" ", labelWidth))
	sb.WriteString(renderEgo(laneW, g.center, f))

	return sb.String()
}

func placeBlips(f Frame, laneL, laneR, rows int) []blip {
	half := float64(laneR-laneL) / 2
	mid := float64(laneL+laneR) / 2

	out := make([]blip, 0, len(f.Sensors))
	for _, s := range f.Sensors {
		if !s.Polled {
			continue
		}
		col := int(math.Round(mid + LaneOffset(s.ID)*(half-1)))
		b := blip{col: col, symbol: s.Kind.Symbol(), faulty: s.Faulty}
		if s.Faulty {
			b.row = 0
			b.symbol = "?"
		} else {
			b.row = MetersToRow(s.Reading, f.MaxRange, rows)
			b.zone = ZoneFor(s.Reading, f.Thresholds)
		}
		out = append(out, b)
	}
	return out
}

// rowLabel labels the far edge and the threshold rows only.
func rowLabel(row int, g lane, meters float64) string {
	switch row {
	case 0, g.fullRow, g.partialRow:
		return styleLabel.Render(fmt.Sprintf("%3.0fm ", math.Round(meters)))
	}
	return strings.Repeat(" ", labelWidth)
}

func renderCell(col, row int, g lane, meters float64, f Frame, blips []blip) string {
	for _, b := range blips {
		if b.col == col && b.row == row {
			return renderBlip(b, f.Pulse)
		}
	}

	if col == g.left-1 || col == g.right+1 {
		return styleEdge.Render("|")
	}
	if col < g.left || col > g.right {
		return " "
	}

	zone := ZoneFor(meters, f.Thresholds)
	if row == g.fullRow || row == g.partialRow {
		return zoneStyle(zone).Render("-")
	}
	if col == g.center && row%2 == 0 {
		return zoneStyle(zone).Render(":")
	}
	return zoneStyle(zone).Faint(true).Render(".")
}

func renderBlip(b blip, pulse *Pulse) string {
	if b.faulty {
		return styleFault.Render(b.symbol)
	}
	sty := zoneStyle(b.zone).Bold(true)
	if b.zone == ZoneFull && pulse != nil && pulse.On() {
		sty = sty.Reverse(true)
	}
	return sty.Render(b.symbol)
}

func renderEgo(laneW, center int, f Frame) string {
	car := "[^]"
	left := center - 1
	if left < 0 {
		left = 0
	}
	right := laneW - left - len(car)
	if right < 0 {
		right = 0
	}

	sty := styleEgo
	switch f.Brake {
	case aebs.BrakeFull:
		sty = styleEgo.Foreground(colorFull)
		if f.Pulse != nil && f.Pulse.On() {
			sty = sty.Reverse(true)
		}
	case aebs.BrakePartial:
		sty = styleEgo.Foreground(colorPartial)
	}
	return strings.Repeat(" ", left) + sty.Render(car) + strings.Repeat(" ", right)
}

func zoneStyle(z Zone) lipgloss.Style {
	switch z {
	case ZoneFull:
		return styleFull
	case ZonePartial:
		return stylePartial
	default:
		return styleClear
	}
}

// RenderLegend produces the scope legend line.
func RenderLegend(width int) string {
	legend := styleClear.Render("L Lidar") + "  " +
		stylePartial.Render("R Radar") + "  " +
		styleEgo.Render("C Camera") + "  " +
		styleFault.Render("? Fault")

	pad := (width - lipgloss.Width(legend)) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat(" ", pad) + legend
}
