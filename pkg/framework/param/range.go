package param

import (
	"math"

	"github.com/pkg/errors"

	"github.com/justyntemme/fuzzgo/pkg/dsp/gain"
)

// RangeKind selects the normalized-to-real mapping of a Range.
type RangeKind int

const (
	// LinearRange maps normalized values proportionally onto [Min, Max].
	LinearRange RangeKind = iota
	// SkewedRange maps normalized values through a power curve.
	SkewedRange
)

// Range describes the valid real values of a parameter and how they map to
// the host's normalized [0, 1] representation.
type Range struct {
	Kind   RangeKind
	Min    float64
	Max    float64
	Factor float64 // skew factor, only used by SkewedRange
}

// Linear returns a linear range over [min, max].
func Linear(min, max float64) Range {
	return Range{Kind: LinearRange, Min: min, Max: max, Factor: 1}
}

// Skewed returns a skewed range over [min, max]. Factors below 1 spend more of
// the normalized range on the low end, factors above 1 on the high end.
func Skewed(min, max, factor float64) Range {
	return Range{Kind: SkewedRange, Min: min, Max: max, Factor: factor}
}

// GainSkewFactor returns the skew factor that makes a gain range stored as a
// linear multiplier look linear in decibels: normalized 0.5 lands on the
// middle of [minDB, maxDB].
func GainSkewFactor(minDB, maxDB float64) float64 {
	minGain := gain.DbToLinear(minDB)
	maxGain := gain.DbToLinear(maxDB)
	midGain := gain.DbToLinear((minDB + maxDB) / 2)

	return math.Log(0.5) / math.Log((midGain-minGain)/(maxGain-minGain))
}

// ToReal converts a normalized value to a real value within the range.
// Normalized input outside [0, 1] is saturated.
func (r Range) ToReal(normalized float64) float64 {
	normalized = clamp01(normalized)
	if r.Max == r.Min {
		return r.Min
	}

	if r.Kind == SkewedRange && r.Factor != 1 {
		normalized = math.Pow(normalized, 1/r.Factor)
	}
	return r.Min + normalized*(r.Max-r.Min)
}

// ToNormalized converts a real value to its normalized position. The result
// is saturated to [0, 1]; clamping stored values is the caller's job.
func (r Range) ToNormalized(value float64) float64 {
	if r.Max == r.Min {
		return 0
	}

	proportion := clamp01((value - r.Min) / (r.Max - r.Min))
	if r.Kind == SkewedRange && r.Factor != 1 {
		return math.Pow(proportion, r.Factor)
	}
	return proportion
}

// Clamp limits a real value to [Min, Max].
func (r Range) Clamp(value float64) float64 {
	if value < r.Min {
		return r.Min
	}
	if value > r.Max {
		return r.Max
	}
	return value
}

// Contains reports whether value lies within [Min, Max].
func (r Range) Contains(value float64) bool {
	return value >= r.Min && value <= r.Max
}

// Validate checks that the range is usable.
func (r Range) Validate() error {
	if math.IsNaN(r.Min) || math.IsNaN(r.Max) || math.IsInf(r.Min, 0) || math.IsInf(r.Max, 0) {
		return errors.Errorf("range bounds must be finite, got [%g, %g]", r.Min, r.Max)
	}
	if r.Max < r.Min {
		return errors.Errorf("range max %g is below min %g", r.Max, r.Min)
	}
	if r.Kind == SkewedRange && !(r.Factor > 0) {
		return errors.Errorf("skew factor must be positive, got %g", r.Factor)
	}
	return nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
