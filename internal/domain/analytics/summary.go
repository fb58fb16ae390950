package analytics

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary describes the observed values of a price series
type Summary struct {
	Count  int
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

// Summarize computes descriptive statistics over x, skipping NaN entries.
// An all-NaN or empty series returns a zero Summary.
func Summarize(x []float64) Summary {
	observed := make([]float64, 0, len(x))
	for _, v := range x {
		if !math.IsNaN(v) {
			observed = append(observed, v)
		}
	}
	if len(observed) == 0 {
		return Summary{}
	}

	mean, std := stat.MeanStdDev(observed, nil)
	if len(observed) == 1 {
		std = 0
	}

	return Summary{
		Count:  len(observed),
		Mean:   mean,
		StdDev: std,
		Min:    floats.Min(observed),
		Max:    floats.Max(observed),
	}
}
