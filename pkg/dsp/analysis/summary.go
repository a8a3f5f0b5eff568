package analysis

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/justyntemme/fuzzgo/pkg/dsp/gain"
)

// Summary holds whole-buffer level statistics.
type Summary struct {
	Samples int
	Peak    float64 // largest absolute sample
	RMS     float64
	DC      float64 // mean
	NaNs    int     // NaN or infinite samples, excluded from the other fields
}

// PeakDB returns the peak level in decibels.
func (s Summary) PeakDB() float64 {
	return gain.LinearToDb(s.Peak)
}

// RMSDB returns the RMS level in decibels.
func (s Summary) RMSDB() float64 {
	return gain.LinearToDb(s.RMS)
}

// Summarize computes peak, RMS and DC of samples.
func Summarize(samples []float32) Summary {
	values := make([]float64, 0, len(samples))
	nans := 0
	for _, v := range samples {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			nans++
			continue
		}
		values = append(values, f)
	}

	s := Summary{Samples: len(samples), NaNs: nans}
	if len(values) == 0 {
		return s
	}

	n := float64(len(values))
	s.Peak = math.Max(floats.Max(values), -floats.Min(values))
	s.RMS = math.Sqrt(floats.Dot(values, values) / n)
	s.DC = floats.Sum(values) / n
	return s
}
