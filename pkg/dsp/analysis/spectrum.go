package analysis

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// bandHalfWidth is how many bins on each side of a partial count towards it.
// It covers the main lobe of the Hann window.
const bandHalfWidth = 2

// Spectrum measures power spectra of one fixed frame size.
type Spectrum struct {
	fft        *FFT
	sampleRate float64
	input      []float64
}

// NewSpectrum creates a spectrum analyzer for frames of size samples.
func NewSpectrum(size int, sampleRate float64, window WindowFunc) *Spectrum {
	return &Spectrum{
		fft:        NewFFT(size, window),
		sampleRate: sampleRate,
		input:      make([]float64, size),
	}
}

// FFT returns the underlying transform.
func (s *Spectrum) FFT() *FFT {
	return s.fft
}

// Analyze returns the power spectrum of the first frame of samples. The
// returned slice is reused by the next call.
func (s *Spectrum) Analyze(samples []float32) []float64 {
	n := min(len(samples), len(s.input))
	for i := 0; i < n; i++ {
		s.input[i] = float64(samples[i])
	}
	clear(s.input[n:])
	return s.fft.Power(s.input)
}

// PeakFrequency returns the frequency and power of the strongest bin above
// DC.
func (s *Spectrum) PeakFrequency(power []float64) (freq, peak float64) {
	if len(power) < 2 {
		return 0, 0
	}
	bin := floats.MaxIdx(power[1:]) + 1
	return s.fft.BinFrequency(bin, s.sampleRate), power[bin]
}

// BandPower sums the power of the bins around freq.
func (s *Spectrum) BandPower(power []float64, freq float64) float64 {
	if freq <= 0 || freq >= s.sampleRate/2 {
		return 0
	}
	center := s.fft.BinForFrequency(freq, s.sampleRate)
	lo := max(center-bandHalfWidth, 1)
	hi := min(center+bandHalfWidth+1, len(power))
	if lo >= hi {
		return 0
	}
	return floats.Sum(power[lo:hi])
}

// HarmonicRatio returns the power of harmonics 2..harmonics of fundamental
// relative to the power of the fundamental itself. Harmonics above Nyquist
// are ignored. A clean sine reads close to 0; the more it is distorted the
// larger the ratio.
func (s *Spectrum) HarmonicRatio(power []float64, fundamental float64, harmonics int) float64 {
	base := s.BandPower(power, fundamental)
	if base == 0 {
		return math.Inf(1)
	}

	sum := 0.0
	for k := 2; k <= harmonics; k++ {
		sum += s.BandPower(power, fundamental*float64(k))
	}
	return sum / base
}

// frameSize returns the largest power of two not above n, capped at 16384.
func frameSize(n int) int {
	size := 1
	for size*2 <= n && size < 16384 {
		size *= 2
	}
	return size
}

// HarmonicRatio analyzes the largest power-of-two frame at the start of
// samples, up to 16384, and returns its harmonic ratio. See
// Spectrum.HarmonicRatio.
func HarmonicRatio(samples []float32, sampleRate, fundamental float64, harmonics int) float64 {
	s := NewSpectrum(frameSize(len(samples)), sampleRate, HannWindow)
	return s.HarmonicRatio(s.Analyze(samples), fundamental, harmonics)
}

// PeakFrequency returns the strongest frequency in the same frame
// HarmonicRatio analyzes, or 0 for inputs shorter than two samples.
func PeakFrequency(samples []float32, sampleRate float64) float64 {
	if len(samples) < 2 {
		return 0
	}
	s := NewSpectrum(frameSize(len(samples)), sampleRate, HannWindow)
	freq, _ := s.PeakFrequency(s.Analyze(samples))
	return freq
}
