package history

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary describes a reading series for diagnostics.
type Summary struct {
	Count  int
	Min    float64
	Max    float64
	Mean   float64
	StdDev float64
	Trend  float64 // Least-squares slope per sample; negative means closing
}

// Summarize computes a Summary over the finite values. An empty or all
// non-finite series returns the zero Summary.
func Summarize(values []float64) Summary {
	ys := make([]float64, 0, len(values))
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		ys = append(ys, v)
	}
	if len(ys) == 0 {
		return Summary{}
	}

	sum := Summary{
		Count: len(ys),
		Min:   floats.Min(ys),
		Max:   floats.Max(ys),
	}
	if len(ys) == 1 {
		sum.Mean = ys[0]
		return sum
	}

	sum.Mean, sum.StdDev = stat.MeanStdDev(ys, nil)

	xs := make([]float64, len(ys))
	floats.Span(xs, 0, float64(len(ys)-1))
	_, sum.Trend = stat.LinearRegression(xs, ys, nil, false)
	return sum
}
