// Package param provides parameter descriptors, smoothing and lock-free
// parameter exchange for audio plugins.
package param

import (
	"fmt"
	"math"
)

// SmoothingType defines different parameter smoothing algorithms.
type SmoothingType int

const (
	// NoSmoothing jumps to new values immediately
	NoSmoothing SmoothingType = iota
	// LinearSmoothing adds a constant increment per sample
	LinearSmoothing
	// LogarithmicSmoothing multiplies by a constant factor per sample (for
	// linear gain and frequencies; values must be strictly positive)
	LogarithmicSmoothing
)

// String returns the smoothing type name.
func (t SmoothingType) String() string {
	switch t {
	case NoSmoothing:
		return "none"
	case LinearSmoothing:
		return "linear"
	case LogarithmicSmoothing:
		return "logarithmic"
	default:
		return "unknown"
	}
}

// Smoothing is a smoothing style together with its duration.
type Smoothing struct {
	Type   SmoothingType
	TimeMs float64
}

// SmoothLinear returns linear smoothing over ms milliseconds.
func SmoothLinear(ms float64) Smoothing {
	return Smoothing{Type: LinearSmoothing, TimeMs: ms}
}

// SmoothLogarithmic returns logarithmic smoothing over ms milliseconds.
func SmoothLogarithmic(ms float64) Smoothing {
	return Smoothing{Type: LogarithmicSmoothing, TimeMs: ms}
}

// Steps converts the smoothing time to a sample count, at least 1.
func (s Smoothing) Steps(sampleRate float64) int {
	steps := int(math.Ceil(s.TimeMs*sampleRate/1000.0 - 1e-9))
	if steps < 1 {
		return 1
	}
	return steps
}

// Smoother interpolates a parameter's runtime value toward a target, one
// value per audio sample. It is owned by the audio thread.
type Smoother struct {
	smoothing Smoothing
	min, max  float64

	current   float64
	target    float64
	remaining int

	// increment for linear smoothing, factor for logarithmic smoothing
	step float64
}

// NewSmoother creates a smoother with the style and range of p, resting at
// its default value.
func NewSmoother(p *Parameter) *Smoother {
	s := &Smoother{
		smoothing: p.Smoothing,
		min:       p.Range.Min,
		max:       p.Range.Max,
	}
	s.Reset(p.DefaultValue)
	return s
}

// SetTarget starts interpolating from the current value toward target over
// the full smoothing time. The target is clamped to the parameter range.
func (s *Smoother) SetTarget(target, sampleRate float64) {
	target = s.clamp(target)
	s.target = target

	switch s.smoothing.Type {
	case LinearSmoothing:
		s.remaining = s.smoothing.Steps(sampleRate)
		s.step = (target - s.current) / float64(s.remaining)

	case LogarithmicSmoothing:
		if !(s.current > 0) || !(target > 0) {
			panic(fmt.Sprintf("param: logarithmic smoothing from %g to %g needs strictly positive values", s.current, target))
		}
		s.remaining = s.smoothing.Steps(sampleRate)
		s.step = math.Exp(math.Log(target/s.current) / float64(s.remaining))

	default:
		s.current = target
		s.remaining = 0
	}
}

// Next advances one sample and returns the value for it.
func (s *Smoother) Next() float64 {
	if s.remaining == 0 {
		return s.current
	}

	s.remaining--
	if s.remaining == 0 {
		s.current = s.target
		return s.current
	}

	if s.smoothing.Type == LogarithmicSmoothing {
		s.current *= s.step
	} else {
		s.current += s.step
	}
	return s.current
}

// NextBlock fills dst with the next len(dst) values.
func (s *Smoother) NextBlock(dst []float64) {
	if s.remaining == 0 {
		for i := range dst {
			dst[i] = s.current
		}
		return
	}

	for i := range dst {
		dst[i] = s.Next()
	}
}

// Reset jumps to value, dropping any interpolation in flight.
func (s *Smoother) Reset(value float64) {
	s.current = s.clamp(value)
	s.target = s.current
	s.remaining = 0
	s.step = 0
}

// Current returns the value that the last Next returned.
func (s *Smoother) Current() float64 {
	return s.current
}

// Target returns the value being converged to.
func (s *Smoother) Target() float64 {
	return s.target
}

// Remaining returns the number of samples until Current equals Target.
func (s *Smoother) Remaining() int {
	return s.remaining
}

// IsSmoothing returns true if the smoother is still moving.
func (s *Smoother) IsSmoothing() bool {
	return s.remaining > 0
}

// Smoothing returns the smoothing style.
func (s *Smoother) Smoothing() Smoothing {
	return s.smoothing
}

func (s *Smoother) clamp(v float64) float64 {
	if v < s.min {
		return s.min
	}
	if v > s.max {
		return s.max
	}
	return v
}
