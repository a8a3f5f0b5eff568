package analysis

import (
	"math"

	vecmath "github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/dsp/fourier"
)

// WindowFunc represents a window function type
type WindowFunc int

const (
	RectangularWindow WindowFunc = iota
	HannWindow
)

// String returns the window name.
func (w WindowFunc) String() string {
	switch w {
	case RectangularWindow:
		return "rectangular"
	case HannWindow:
		return "hann"
	default:
		return "unknown"
	}
}

// FFT computes windowed power spectra of real signals. It reuses its
// buffers, so one FFT must not be shared between goroutines.
type FFT struct {
	size       int
	window     WindowFunc
	windowData []float64
	windowGain float64 // coherent gain, sum(window)/size

	plan      *fourier.FFT
	frame     []float64
	coeffs    []complex128
	re, im    []float64
	power     []float64
	magnitude []float64
}

// NewFFT creates a new FFT processor with the specified size and window function
func NewFFT(size int, window WindowFunc) *FFT {
	bins := size/2 + 1
	f := &FFT{
		size:       size,
		window:     window,
		windowData: make([]float64, size),
		plan:       fourier.NewFFT(size),
		frame:      make([]float64, size),
		coeffs:     make([]complex128, bins),
		re:         make([]float64, bins),
		im:         make([]float64, bins),
		power:      make([]float64, bins),
		magnitude:  make([]float64, bins),
	}
	f.calculateWindow()
	return f
}

// calculateWindow pre-calculates the window coefficients
func (f *FFT) calculateWindow() {
	n := float64(f.size)
	if f.size == 1 {
		f.windowData[0] = 1
		f.windowGain = 1
		return
	}

	sum := 0.0
	for i := range f.windowData {
		x := 2.0 * math.Pi * float64(i) / (n - 1.0)
		var v float64
		switch f.window {
		case HannWindow:
			v = 0.5 * (1.0 - math.Cos(x))
		default:
			v = 1.0
		}
		f.windowData[i] = v
		sum += v
	}
	f.windowGain = sum / n
}

// Size returns the transform length.
func (f *FFT) Size() int {
	return f.size
}

// Bins returns the number of frequency bins, size/2+1.
func (f *FFT) Bins() int {
	return len(f.power)
}

// Window returns the window coefficients.
func (f *FFT) Window() []float64 {
	return f.windowData
}

// Power windows input, transforms it and returns |X[k]|^2 per bin, scaled so
// a full-scale sine reads about 1 in its bin regardless of window and size.
// Input shorter than the transform is zero padded. The returned slice is
// reused by the next call.
func (f *FFT) Power(input []float64) []float64 {
	f.transform(input)
	vecmath.Power(f.power, f.re, f.im)
	return f.power
}

// Magnitude is like Power but returns |X[k]|.
func (f *FFT) Magnitude(input []float64) []float64 {
	f.transform(input)
	vecmath.Magnitude(f.magnitude, f.re, f.im)
	return f.magnitude
}

func (f *FFT) transform(input []float64) {
	n := copy(f.frame, input)
	clear(f.frame[n:])
	vecmath.MulBlockInPlace(f.frame, f.windowData)

	f.plan.Coefficients(f.coeffs, f.frame)

	// Peak normalization: a sine of amplitude A shows A/2 * size * gain.
	scale := 2.0 / (float64(f.size) * f.windowGain)
	for i, c := range f.coeffs {
		f.re[i] = real(c) * scale
		f.im[i] = imag(c) * scale
	}
}

// BinFrequency returns the center frequency of a bin.
func (f *FFT) BinFrequency(bin int, sampleRate float64) float64 {
	return float64(bin) * sampleRate / float64(f.size)
}

// BinForFrequency returns the bin nearest to freq.
func (f *FFT) BinForFrequency(freq, sampleRate float64) int {
	bin := int(math.Round(freq * float64(f.size) / sampleRate))
	return min(max(bin, 0), f.Bins()-1)
}
