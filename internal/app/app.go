package app

import (
	"fmt"
	"io"
	"time"

	"aebs.klederson.com/internal/aebs"
	"aebs.klederson.com/internal/config"
	"aebs.klederson.com/internal/scope"
	"aebs.klederson.com/internal/sensor"
	"aebs.klederson.com/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
)

// shared holds state shared between the Bubble Tea model copies.
// Because Bubble Tea uses value receivers, pointer fields ensure all copies
// see the same underlying data.
type shared struct {
	engine *aebs.Engine
	pulse  *scope.Pulse
	log    logrus.FieldLogger
}

// AppModel is the root Bubble Tea model for the driver console.
type AppModel struct {
	width  int
	height int

	engineOn   bool
	speed      float64
	cursor     int
	detail     bool
	message    string
	fps        int
	thresholds aebs.Thresholds

	shared *shared

	// Cached snapshot of the last cycle
	decision aebs.Decision
	sensors  []aebs.SensorInfo
}

// New creates a console driving engine at cfg.TargetFPS evaluations per second.
func New(engine *aebs.Engine, cfg config.Config, log logrus.FieldLogger) AppModel {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return AppModel{
		fps:        cfg.TargetFPS,
		thresholds: aebs.Thresholds{Full: cfg.FullBrakeDistance, Partial: cfg.PartialBrakeDistance},
		shared: &shared{
			engine: engine,
			pulse:  scope.NewPulse(2),
			log:    log,
		},
		decision: engine.Last(),
		sensors:  engine.Sensors(),
	}
}

func (m AppModel) Init() tea.Cmd {
	return tickCmd(m.fps)
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case TickMsg:
		m.shared.pulse.Update()
		m.decision = m.shared.engine.Evaluate()
		m.refresh()
		return m, tickCmd(m.fps)
	}

	return m, nil
}

func (m *AppModel) refresh() {
	m.sensors = m.shared.engine.Sensors()
	if m.cursor >= len(m.sensors) {
		m.cursor = max(0, len(m.sensors)-1)
	}
	if len(m.sensors) == 0 {
		m.detail = false
	}
}

func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.message = ""
	engine := m.shared.engine

	switch msg.String() {
	case "q", "Q", "ctrl+c":
		return m, tea.Quit

	case "e", "E":
		m.engineOn = !m.engineOn
		if !m.engineOn {
			m.speed = 0
		}

	case "a", "A":
		engine.SetActive(!engine.Active())
		m.decision.Active = engine.Active()

	case "+", "=":
		if m.engineOn {
			m.speed = min(m.speed+config.SpeedStep, config.MaxSpeed)
		}

	case "-", "_":
		if m.engineOn {
			m.speed = max(m.speed-config.SpeedStep, 0)
		}

	case "1", "2", "3":
		kind := sensor.Kinds[int(msg.String()[0]-'1')]
		m.addSensor(kind)

	case "x", "X":
		m.withSelected(func(s aebs.SensorInfo) error { return engine.RemoveSensor(s.ID) }, "removed")

	case "f", "F":
		m.withSelected(func(s aebs.SensorInfo) error { return engine.InjectFault(s.ID) }, "fault injected")

	case "c", "C":
		m.withSelected(func(s aebs.SensorInfo) error { return engine.ResetFault(s.ID) }, "fault cleared")

	case "r", "R":
		m.withSelected(m.resetObstacle, "obstacle reset")

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.sensors)-1 {
			m.cursor++
		}

	case "enter":
		if len(m.sensors) > 0 {
			m.detail = true
		}

	case "esc":
		m.detail = false
	}

	return m, nil
}

// distanceSetter is implemented by sensors whose obstacle can be moved.
type distanceSetter interface {
	SetDistance(float64)
}

func (m AppModel) resetObstacle(s aebs.SensorInfo) error {
	sn, err := m.shared.engine.Sensor(s.ID)
	if err != nil {
		return err
	}
	ds, ok := sn.(distanceSetter)
	if !ok {
		return fmt.Errorf("%s has no movable obstacle", s.Kind)
	}
	ds.SetDistance(config.LidarStartRange)
	return nil
}

func (m *AppModel) withSelected(fn func(aebs.SensorInfo) error, done string) {
	if len(m.sensors) == 0 {
		m.message = "no sensor selected"
		return
	}
	s := m.sensors[m.cursor]
	if err := fn(s); err != nil {
		m.message = err.Error()
		m.shared.log.WithError(err).WithField("sensor", s.Name).Warn("console action failed")
		m.refresh()
		return
	}
	m.message = s.Name + " " + done
	m.shared.log.WithField("sensor", s.Name).Debug(done)
	m.refresh()
}

func (m *AppModel) addSensor(kind sensor.Kind) {
	name := m.freeName(kind)
	s, err := sensor.New(kind, name)
	if err == nil {
		_, err = m.shared.engine.AddSensor(s)
	}
	if err != nil {
		m.message = err.Error()
		return
	}
	m.message = name + " added"
	m.refresh()
	m.cursor = len(m.sensors) - 1
}

// freeName returns the kind's upper-case name, suffixed until it is unused.
func (m AppModel) freeName(kind sensor.Kind) string {
	taken := make(map[string]bool, len(m.sensors))
	for _, s := range m.shared.engine.Sensors() {
		taken[s.Name] = true
	}
	base := kindName(kind)
	name := base
	for i := 2; taken[name]; i++ {
		name = fmt.Sprintf("%s-%d", base, i)
	}
	return name
}

func kindName(kind sensor.Kind) string {
	switch kind {
	case sensor.KindRadar:
		return "RADAR"
	case sensor.KindCamera:
		return "CAMERA"
	default:
		return "LIDAR"
	}
}

func (m AppModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing AEBS console..."
	}

	menuH := 1
	statusH := 1
	bodyH := m.height - menuH - statusH
	if bodyH < ui.BrakePanelHeight+5 {
		bodyH = ui.BrakePanelHeight + 5
	}

	leftW := m.width * 3 / 5
	if leftW < 30 {
		leftW = 30
	}
	rightW := m.width - leftW
	if rightW < 24 {
		rightW = 24
		leftW = m.width - rightW
	}

	menuBar := ui.RenderMenuBar(m.width, m.engineOn, m.decision.Active)

	var left string
	if m.detail && m.cursor < len(m.sensors) {
		left = ui.RenderDetailPanel(m.detailInfo(), leftW, bodyH)
	} else {
		frame := scope.Frame{
			Sensors:    m.sensors,
			Thresholds: m.thresholds,
			MaxRange:   config.MaxRange,
			Brake:      m.decision.BrakeLevel,
			Pulse:      m.shared.pulse,
		}
		innerW := max(leftW-4, 5)
		innerH := max(bodyH-4, 4)
		content := scope.Render(innerW, innerH, frame)
		left = ui.RenderScopePanel(leftW, bodyH, content, scope.RenderLegend(innerW), m.decision.BrakeLevel == aebs.BrakeFull)
	}

	brake := ui.RenderBrakePanel(m.decision, rightW)
	list := ui.RenderSensorList(m.sensors, rightW, bodyH-ui.BrakePanelHeight, m.cursor)

	faults := 0
	for _, s := range m.sensors {
		if s.Faulty {
			faults++
		}
	}
	status := ui.RenderStatusBar(m.width, ui.StatusInfo{
		Decision: m.decision,
		Sensors:  len(m.sensors),
		Faults:   faults,
		Speed:    m.speed,
		Message:  m.message,
	})

	return ui.ComposeLayout(menuBar, left, brake, list, status)
}

func (m AppModel) detailInfo() ui.DetailInfo {
	s := m.sensors[m.cursor]
	info := ui.DetailInfo{
		Sensor:     s,
		MaxHistory: m.shared.engine.MaxHistory(),
		MaxRange:   config.MaxRange,
	}
	info.History, _ = m.shared.engine.History(s.ID)
	info.Stats, _ = m.shared.engine.HistoryStats(s.ID)
	return info
}

func tickCmd(fps int) tea.Cmd {
	if fps <= 0 {
		fps = config.TargetFPS
	}
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
