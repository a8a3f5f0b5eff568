// Package gain provides amplitude and gain-related DSP operations.
package gain

import (
	"math"

	"github.com/tphakala/simd/f32"
)

// MinDB stands in for -infinity in dB conversions.
const MinDB = -200.0

// LinearToDb converts a linear amplitude value to decibels, or MinDB for
// values <= 0.
func LinearToDb(linear float64) float64 {
	if linear <= 0 {
		return MinDB
	}
	return 20.0 * math.Log10(linear)
}

// DbToLinear converts a decibel value to linear amplitude. At or below
// MinDB the result is 0; 0 dB is exactly 1.
func DbToLinear(db float64) float64 {
	if db <= MinDB {
		return 0
	}
	return math.Pow(10.0, db/20.0)
}

// ApplyBuffer applies a constant gain to an entire buffer in-place.
func ApplyBuffer(buffer []float32, gain float32) {
	if gain == 1 || len(buffer) == 0 {
		return
	}
	f32.Scale(buffer, buffer, gain)
}

// ApplyRamp applies a per-sample gain to buffer in-place. gains must be at
// least as long as buffer.
func ApplyRamp(buffer []float32, gains []float64) {
	gains = gains[:len(buffer)]
	for i := range buffer {
		buffer[i] *= float32(gains[i])
	}
}
