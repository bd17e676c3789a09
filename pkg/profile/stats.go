package profile

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary holds descriptive statistics of a profile curve
type Summary struct {
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

// Summarize computes statistics over the samples of a profile.
// An empty profile yields a zero Summary.
func Summarize(samples []float32) Summary {
	if len(samples) == 0 {
		return Summary{}
	}
	values := make([]float64, len(samples))
	for i, v := range samples {
		values[i] = float64(v)
	}
	mean, std := stat.MeanStdDev(values, nil)
	if len(values) == 1 {
		std = 0
	}
	return Summary{
		Mean:   mean,
		StdDev: std,
		Min:    floats.Min(values),
		Max:    floats.Max(values),
	}
}

// Summary returns statistics over the result samples
func (r Result) Summary() Summary {
	return Summarize(r.Samples)
}
