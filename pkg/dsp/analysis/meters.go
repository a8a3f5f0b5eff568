package analysis

import (
	"math"
	"sync/atomic"

	"github.com/justyntemme/fuzzgo/pkg/dsp/gain"
)

// PeakMeter measures peak signal levels. Process is called from a single
// audio thread; the getters may be called from any goroutine.
type PeakMeter struct {
	sampleRate float64
	holdTime   float64
	decayRate  float64

	// audio thread state
	level     float64
	held      float64
	holdCount int

	peak atomic.Uint64 // float64 bits
	hold atomic.Uint64 // float64 bits
}

// NewPeakMeter creates a new peak meter with a 3 second hold and a
// 20 dB/second decay.
func NewPeakMeter(sampleRate float64) *PeakMeter {
	return &PeakMeter{
		sampleRate: sampleRate,
		holdTime:   3.0,
		decayRate:  20.0,
	}
}

// SetHoldTime sets the peak hold time in seconds. Call before processing.
func (pm *PeakMeter) SetHoldTime(seconds float64) {
	pm.holdTime = seconds
}

// SetDecayRate sets the peak decay rate in dB/second. Call before processing.
func (pm *PeakMeter) SetDecayRate(dbPerSecond float64) {
	pm.decayRate = dbPerSecond
}

// Process updates the meter with one block of samples.
func (pm *PeakMeter) Process(samples []float32) {
	var blockPeak float32
	for _, sample := range samples {
		if sample < 0 {
			sample = -sample
		}
		blockPeak = max(blockPeak, sample)
	}
	peak := float64(blockPeak)

	// Exponential fall at decayRate dB/s
	decayPerSample := pm.decayRate / pm.sampleRate / 20.0 * math.Ln10
	pm.level *= math.Exp(-decayPerSample * float64(len(samples)))
	pm.level = max(pm.level, peak)

	if peak > pm.held {
		pm.held = peak
		pm.holdCount = int(pm.holdTime * pm.sampleRate)
	} else {
		pm.holdCount -= len(samples)
		if pm.holdCount <= 0 {
			pm.held = pm.level
			pm.holdCount = 0
		}
	}

	pm.peak.Store(math.Float64bits(pm.level))
	pm.hold.Store(math.Float64bits(pm.held))
}

// Peak returns the current peak level (linear)
func (pm *PeakMeter) Peak() float64 {
	return math.Float64frombits(pm.peak.Load())
}

// PeakDB returns the current peak level in decibels
func (pm *PeakMeter) PeakDB() float64 {
	return gain.LinearToDb(pm.Peak())
}

// Hold returns the held peak level (linear)
func (pm *PeakMeter) Hold() float64 {
	return math.Float64frombits(pm.hold.Load())
}

// HoldDB returns the held peak level in decibels
func (pm *PeakMeter) HoldDB() float64 {
	return gain.LinearToDb(pm.Hold())
}

// Reset clears the peak and hold values. Call from the audio thread or
// while it is stopped.
func (pm *PeakMeter) Reset() {
	pm.level = 0
	pm.held = 0
	pm.holdCount = 0
	pm.peak.Store(0)
	pm.hold.Store(0)
}
