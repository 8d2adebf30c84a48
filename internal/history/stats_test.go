package history

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, Summary{}, Summarize(nil))
	})

	t.Run("single value", func(t *testing.T) {
		s := Summarize([]float64{12})
		assert.Equal(t, Summary{Count: 1, Min: 12, Max: 12, Mean: 12}, s)
	})

	t.Run("closing obstacle", func(t *testing.T) {
		s := Summarize([]float64{100, 99.5, 99, 98.5})
		assert.Equal(t, 4, s.Count)
		assert.Equal(t, 98.5, s.Min)
		assert.Equal(t, 100.0, s.Max)
		assert.InDelta(t, 99.25, s.Mean, 1e-9)
		assert.InDelta(t, -0.5, s.Trend, 1e-9)
		assert.Greater(t, s.StdDev, 0.0)
	})

	t.Run("steady", func(t *testing.T) {
		s := Summarize([]float64{40, 40, 40})
		assert.InDelta(t, 0, s.Trend, 1e-9)
		assert.InDelta(t, 0, s.StdDev, 1e-9)
	})

	t.Run("skips non-finite", func(t *testing.T) {
		s := Summarize([]float64{math.Inf(1), 10, math.NaN(), 20})
		assert.Equal(t, 2, s.Count)
		assert.InDelta(t, 15, s.Mean, 1e-9)
	})
}
