package app

import (
	"strings"
	"testing"
	"time"

	"aebs.klederson.com/internal/aebs"
	"aebs.klederson.com/internal/config"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newModel(t *testing.T) AppModel {
	t.Helper()
	e, err := aebs.FromConfig(config.Default())
	require.NoError(t, err)
	return New(e, config.Default(), nil)
}

func send(m AppModel, msgs ...tea.Msg) AppModel {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(AppModel)
	}
	return m
}

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func tick() TickMsg { return TickMsg(time.Now()) }

func TestTickEvaluates(t *testing.T) {
	m := newModel(t)
	m = send(m, tick(), tick())

	assert.Equal(t, uint64(2), m.decision.Cycle)
	require.Len(t, m.sensors, 1)
	assert.Equal(t, "LIDAR", m.sensors[0].Name)
	assert.Equal(t, 99.0, m.sensors[0].Reading)
	assert.Equal(t, 2, m.sensors[0].History)
}

func TestFaultInjectionKeys(t *testing.T) {
	m := newModel(t)
	m = send(m, tick(), key("f"), tick())

	assert.True(t, m.decision.FaultDetected)
	assert.Equal(t, aebs.BrakeFull, m.decision.BrakeLevel)
	assert.Contains(t, m.message, "fault injected")

	m = send(m, key("c"), tick())
	assert.False(t, m.decision.FaultDetected)
	assert.Equal(t, aebs.BrakeNone, m.decision.BrakeLevel)
}

func TestAEBSToggle(t *testing.T) {
	m := newModel(t)
	m = send(m, key("f"), tick())
	require.Equal(t, aebs.BrakeFull, m.decision.BrakeLevel)

	m = send(m, key("a"), tick())
	assert.False(t, m.decision.Active)
	assert.Equal(t, aebs.BrakeNone, m.decision.BrakeLevel)
	assert.True(t, m.decision.FaultDetected)

	m = send(m, key("a"))
	assert.True(t, m.decision.Active)
}

func TestAddAndRemoveSensors(t *testing.T) {
	m := newModel(t)
	m = send(m, key("1"), key("2"), key("3"), key("2"))

	require.Len(t, m.sensors, 5)
	names := make([]string, 0, len(m.sensors))
	for _, s := range m.sensors {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"LIDAR", "LIDAR-2", "RADAR", "CAMERA", "RADAR-2"}, names)
	assert.Equal(t, 4, m.cursor)

	m = send(m, key("x"))
	assert.Len(t, m.sensors, 4)
	assert.Equal(t, 3, m.cursor)

	m = send(m, key("x"), key("x"), key("x"), key("x"))
	assert.Empty(t, m.sensors)

	m = send(m, key("x"))
	assert.Equal(t, "no sensor selected", m.message)

	m = send(m, tick())
	assert.Equal(t, aebs.BrakeNone, m.decision.BrakeLevel)
	assert.False(t, m.decision.FaultDetected)
}

func TestResetObstacle(t *testing.T) {
	m := newModel(t)
	for i := 0; i < 10; i++ {
		m = send(m, tick())
	}
	require.Equal(t, 95.0, m.sensors[0].Reading)

	m = send(m, key("r"), tick())
	assert.Equal(t, 99.5, m.sensors[0].Reading)

	m = send(m, key("3"), key("r"))
	assert.Contains(t, m.message, "no movable obstacle")
}

func TestSpeedNeedsEngine(t *testing.T) {
	m := newModel(t)
	m = send(m, key("+"))
	assert.Equal(t, 0.0, m.speed)

	m = send(m, key("e"), key("+"), key("+"))
	assert.Equal(t, 2*config.SpeedStep, m.speed)

	for i := 0; i < 100; i++ {
		m = send(m, key("+"))
	}
	assert.Equal(t, config.MaxSpeed, m.speed)

	m = send(m, key("e"))
	assert.Equal(t, 0.0, m.speed)
}

func TestCursorAndDetail(t *testing.T) {
	m := newModel(t)
	m = send(m, key("2"), key("up"), key("up"))
	assert.Equal(t, 0, m.cursor)

	m = send(m, key("down"), key("down"))
	assert.Equal(t, 1, m.cursor)

	m = send(m, tea.WindowSizeMsg{Width: 120, Height: 40}, tick(), key("enter"))
	assert.True(t, m.detail)
	assert.Contains(t, m.View(), "SENSOR DETAIL")

	m = send(m, key("esc"))
	assert.False(t, m.detail)
	assert.Contains(t, m.View(), "RANGE SCOPE")
}

func TestView(t *testing.T) {
	m := newModel(t)
	assert.True(t, strings.HasPrefix(m.View(), "Initializing"))

	m = send(m, tea.WindowSizeMsg{Width: 120, Height: 40}, tick())
	out := m.View()
	assert.Contains(t, out, "AEBS EVALUATION")
	assert.Contains(t, out, "SENSORS [1]")
	assert.Contains(t, out, "[MONITORING]")
}

func TestQuit(t *testing.T) {
	m := newModel(t)
	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
