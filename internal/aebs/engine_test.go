package aebs

import (
	"bytes"
	"math"
	"testing"

	"aebs.klederson.com/internal/config"
	"aebs.klederson.com/internal/sensor"
	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addAll(t *testing.T, e *Engine, sensors ...sensor.Sensor) []string {
	t.Helper()
	ids := make([]string, 0, len(sensors))
	for _, s := range sensors {
		id, err := e.AddSensor(s)
		require.NoError(t, err)
		ids = append(ids, id)
	}
	return ids
}

func TestEvaluateNoSensors(t *testing.T) {
	e := New()
	d := e.Evaluate()

	assert.Equal(t, BrakeNone, d.BrakeLevel)
	assert.False(t, d.FaultDetected)
	assert.True(t, math.IsInf(d.MinDistance, 1))
	assert.False(t, d.HasObstacle())
	assert.Equal(t, uint64(1), d.Cycle)
}

func TestEvaluateBrakeLadder(t *testing.T) {
	tests := []struct {
		name     string
		readings []float64
		wantMin  float64
		want     BrakeLevel
	}{
		{"mixed partial", []float64{30, 15, 50}, 15, BrakePartial},
		{"one close", []float64{8, 40}, 8, BrakeFull},
		{"all far", []float64{30, 26}, 26, BrakeNone},
		{"exactly partial edge", []float64{25}, 25, BrakeNone},
		{"exactly full edge", []float64{10}, 10, BrakePartial},
		{"zero distance", []float64{0}, 0, BrakeFull},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New()
			for i, r := range tt.readings {
				addAll(t, e, sensor.NewCamera(string(rune('a'+i)), r))
			}

			d := e.Evaluate()
			assert.Equal(t, tt.want, d.BrakeLevel)
			assert.Equal(t, tt.wantMin, d.MinDistance)
			assert.False(t, d.FaultDetected)
		})
	}
}

func TestFaultForcesFullBrake(t *testing.T) {
	e := New()
	far := sensor.NewCamera("far", 500)
	broken := sensor.NewRadar("broken", 80, 0)
	addAll(t, e, far, broken)

	broken.InjectFault()
	d := e.Evaluate()

	assert.True(t, d.FaultDetected)
	assert.Equal(t, BrakeFull, d.BrakeLevel)
	assert.Equal(t, []string{"broken"}, d.Faulty)
	assert.Equal(t, 500.0, d.MinDistance, "faulty readings never count as a distance")
	assert.True(t, e.FaultDetected())
	assert.Equal(t, BrakeFull, e.BrakeLevel())
}

func TestFaultInjectedThenReset(t *testing.T) {
	e := New()
	ids := addAll(t, e, sensor.NewCamera("cam", 60))

	require.NoError(t, e.InjectFault(ids[0]))
	require.NoError(t, e.ResetFault(ids[0]))

	s, err := e.Sensor(ids[0])
	require.NoError(t, err)
	assert.False(t, s.IsFaulty())

	d := e.Evaluate()
	assert.False(t, d.FaultDetected)
	assert.Equal(t, BrakeNone, d.BrakeLevel)
}

func TestFaultClearsOnNextCycle(t *testing.T) {
	e := New()
	ids := addAll(t, e, sensor.NewCamera("cam", 60))

	require.NoError(t, e.InjectFault(ids[0]))
	assert.Equal(t, BrakeFull, e.Evaluate().BrakeLevel)

	require.NoError(t, e.ResetFault(ids[0]))
	d := e.Evaluate()
	assert.False(t, d.FaultDetected)
	assert.Equal(t, BrakeNone, d.BrakeLevel)
	assert.Empty(t, d.Faulty)
}

func TestInactiveSuppressesBraking(t *testing.T) {
	e := New()
	near := sensor.NewCamera("near", 2)
	ids := addAll(t, e, near)
	near.InjectFault()

	d := e.Evaluate()
	require.Equal(t, BrakeFull, d.BrakeLevel)
	require.True(t, d.FaultDetected)

	e.SetActive(false)
	d = e.Evaluate()
	assert.False(t, d.Active)
	assert.Equal(t, BrakeNone, d.BrakeLevel)
	assert.True(t, d.FaultDetected, "inactivity does not clear the fault indicator")

	hist, err := e.History(ids[0])
	require.NoError(t, err)
	assert.Len(t, hist, 1, "no history is recorded while inactive")
}

func TestInactiveDoesNotTick(t *testing.T) {
	e := New()
	l := sensor.NewLidar("LIDAR")
	addAll(t, e, l)
	e.SetActive(false)

	for i := 0; i < 10; i++ {
		e.Evaluate()
	}
	assert.Equal(t, config.LidarStartRange, l.Distance())
	assert.False(t, e.Active())

	e.SetActive(true)
	e.Evaluate()
	assert.Equal(t, config.LidarStartRange-config.LidarDecayStep, l.Distance())
}

func TestInactiveAlwaysZero(t *testing.T) {
	sets := map[string][]sensor.Sensor{
		"none":   nil,
		"close":  {sensor.NewCamera("c", 1)},
		"faulty": {sensor.NewCamera("c", 100)},
	}
	for name, sensors := range sets {
		t.Run(name, func(t *testing.T) {
			e := New()
			addAll(t, e, sensors...)
			if name == "faulty" {
				sensors[0].InjectFault()
			}
			e.SetActive(false)
			assert.Equal(t, BrakeNone, e.Evaluate().BrakeLevel)
		})
	}
}

func TestHistoryBounded(t *testing.T) {
	e := New(WithMaxHistory(100))
	lidar := sensor.NewLidar("LIDAR")
	ids := addAll(t, e, lidar, sensor.NewCamera("cam", 40))

	var readings []float64
	for i := 0; i < 150; i++ {
		e.Evaluate()
		readings = append(readings, lidar.Read())
	}

	hist, err := e.History(ids[0])
	require.NoError(t, err)
	require.Len(t, hist, 100)
	if diff := cmp.Diff(readings[50:], hist); diff != "" {
		t.Errorf("lidar history mismatch (-want +got):\n%s", diff)
	}

	cam, err := e.History(ids[1])
	require.NoError(t, err)
	assert.Len(t, cam, 100)
	assert.Equal(t, 100, e.MaxHistory())
}

func TestHistoryZeroCapacity(t *testing.T) {
	e := New(WithMaxHistory(0))
	ids := addAll(t, e, sensor.NewCamera("cam", 40))
	for i := 0; i < 3; i++ {
		e.Evaluate()
	}
	hist, err := e.History(ids[0])
	require.NoError(t, err)
	assert.Empty(t, hist)
	assert.Equal(t, BrakeNone, e.BrakeLevel())
}

func TestHistoryRecordsSentinel(t *testing.T) {
	e := New()
	cam := sensor.NewCamera("cam", 40)
	ids := addAll(t, e, cam)

	e.Evaluate()
	cam.InjectFault()
	e.Evaluate()
	cam.ResetFault()
	e.Evaluate()

	hist, err := e.History(ids[0])
	require.NoError(t, err)
	assert.Equal(t, []float64{40, sensor.FaultSentinel, 40}, hist)

	stats, err := e.HistoryStats(ids[0])
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Count)
	assert.Equal(t, 40.0, stats.Max)

	again, err := e.History(ids[0])
	require.NoError(t, err)
	assert.Equal(t, hist, again, "stats must not alter stored history")
}

func TestIdempotentWithoutDecay(t *testing.T) {
	e := New()
	addAll(t, e, sensor.NewCamera("cam", 18), sensor.NewRadar("radar", 30, 0))

	first := e.Evaluate()
	for i := 0; i < 20; i++ {
		d := e.Evaluate()
		assert.Equal(t, first.BrakeLevel, d.BrakeLevel)
		assert.Equal(t, first.FaultDetected, d.FaultDetected)
		assert.Equal(t, first.MinDistance, d.MinDistance)
	}
	assert.Equal(t, BrakePartial, first.BrakeLevel)
}

func TestLidarApproachCrossesZones(t *testing.T) {
	e := New()
	addAll(t, e, sensor.NewLidar("LIDAR"))

	var levels []BrakeLevel
	for i := 0; i < 200; i++ {
		d := e.Evaluate()
		if len(levels) == 0 || levels[len(levels)-1] != d.BrakeLevel {
			levels = append(levels, d.BrakeLevel)
		}
	}
	assert.Equal(t, []BrakeLevel{BrakeNone, BrakePartial, BrakeFull}, levels)
	assert.Equal(t, 0.0, e.Last().MinDistance)
}

func TestAddSensorValidation(t *testing.T) {
	e := New()

	_, err := e.AddSensor(nil)
	assert.ErrorIs(t, err, ErrNilSensor)

	_, err = e.AddSensor(sensor.NewCamera("", 10))
	assert.ErrorIs(t, err, ErrEmptyName)

	first, err := e.AddSensor(sensor.NewLidar("LIDAR"))
	require.NoError(t, err)
	_, err = e.AddSensor(sensor.NewLidar("LIDAR"))
	assert.ErrorIs(t, err, ErrDuplicateName)

	second, err := e.AddSensor(sensor.NewLidar("LIDAR-2"))
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
	assert.Equal(t, 2, e.Count())
}

func TestRemoveSensor(t *testing.T) {
	e := New()
	ids := addAll(t, e, sensor.NewCamera("near", 5), sensor.NewCamera("far", 80))

	assert.Equal(t, BrakeFull, e.Evaluate().BrakeLevel)

	require.NoError(t, e.RemoveSensor(ids[0]))
	_, err := e.History(ids[0])
	assert.ErrorIs(t, err, ErrUnknownSensor)
	assert.Equal(t, BrakeNone, e.Evaluate().BrakeLevel)

	assert.ErrorIs(t, e.RemoveSensor(ids[0]), ErrUnknownSensor)
	assert.ErrorIs(t, e.InjectFault("missing"), ErrUnknownSensor)
	assert.ErrorIs(t, e.ResetFault("missing"), ErrUnknownSensor)
	_, err = e.Sensor("missing")
	assert.ErrorIs(t, err, ErrUnknownSensor)

	// The name is free again once removed.
	_, err = e.AddSensor(sensor.NewCamera("near", 5))
	assert.NoError(t, err)
}

func TestSensorsSnapshot(t *testing.T) {
	e := New()
	ids := addAll(t, e, sensor.NewLidar("LIDAR"), sensor.NewCamera("cam", 33))

	infos := e.Sensors()
	require.Len(t, infos, 2)
	assert.False(t, infos[0].Polled)

	e.Evaluate()
	infos = e.Sensors()
	assert.Equal(t, ids[0], infos[0].ID)
	assert.Equal(t, "LIDAR", infos[0].Name)
	assert.Equal(t, sensor.KindLidar, infos[0].Kind)
	assert.Equal(t, 99.5, infos[0].Reading)
	assert.True(t, infos[0].Polled)
	assert.Equal(t, 1, infos[0].History)
	assert.Equal(t, 33.0, infos[1].Reading)
}

func TestCustomThresholds(t *testing.T) {
	e := New(WithThresholds(Thresholds{Full: 5, Partial: 50}))
	addAll(t, e, sensor.NewCamera("cam", 20))
	assert.Equal(t, BrakePartial, e.Evaluate().BrakeLevel)
}

func TestFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.MaxHistory = 3
	cfg.Sensors = []config.SensorSpec{
		{Kind: "lidar", Name: "LIDAR"},
		{Kind: "camera", Name: "CAM"},
	}

	e, err := FromConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, 2, e.Count())
	assert.Equal(t, 3, e.MaxHistory())

	cfg.Sensors = append(cfg.Sensors, config.SensorSpec{Kind: "camera", Name: "CAM"})
	_, err = FromConfig(cfg)
	assert.ErrorIs(t, err, config.ErrSensorName)
}

func TestTransitionsAreLogged(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)
	logger.SetLevel(logrus.InfoLevel)

	e := New(WithLogger(logger))
	cam := sensor.NewCamera("cam", 8)
	addAll(t, e, cam)
	e.Evaluate()
	cam.InjectFault()
	e.Evaluate()

	out := buf.String()
	assert.Contains(t, out, "sensor added")
	assert.Contains(t, out, "brake level changed")
	assert.Contains(t, out, "fault indicator changed")
}
