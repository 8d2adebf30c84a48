package sim

import (
	"fmt"
	"io"
	"strconv"

	"aebs.klederson.com/internal/aebs"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// WriteReport prints the transitions of res followed by a per-sensor history
// summary taken from engine.
func WriteReport(w io.Writer, res Result, engine *aebs.Engine) error {
	for _, tr := range res.Transitions {
		d := tr.Decision
		if _, err := fmt.Fprintf(w, "tick %4d  brake=%-7s fault=%-5t min=%s\n",
			tr.Tick, d.BrakeLevel, d.FaultDetected, formatDistance(d)); err != nil {
			return err
		}
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("SENSOR", "KIND", "FAULT", "SAMPLES", "MIN", "MAX", "MEAN", "TREND").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	for _, info := range engine.Sensors() {
		st, err := engine.HistoryStats(info.ID)
		if err != nil {
			return err
		}
		t.Row(
			info.Name,
			info.Kind.String(),
			strconv.FormatBool(info.Faulty),
			strconv.Itoa(info.History),
			fmt.Sprintf("%.1f", st.Min),
			fmt.Sprintf("%.1f", st.Max),
			fmt.Sprintf("%.1f", st.Mean),
			fmt.Sprintf("%+.2f", st.Trend),
		)
	}

	_, err := fmt.Fprintf(w, "\n%s\nfinal: brake=%s fault=%t after %d ticks\n",
		t.Render(), res.Final.BrakeLevel, res.Final.FaultDetected, res.Ticks)
	return err
}

func formatDistance(d aebs.Decision) string {
	if !d.HasObstacle() {
		return "-"
	}
	return fmt.Sprintf("%.1fm", d.MinDistance)
}
