package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justyntemme/fuzzgo/pkg/dsp/distortion"
)

func sine(n int, freq, sampleRate, amplitude float64) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = float32(amplitude * math.Sin(2*math.Pi*freq*float64(i)/sampleRate))
	}
	return out
}

func TestWindows(t *testing.T) {
	for _, w := range []WindowFunc{RectangularWindow, HannWindow} {
		t.Run(w.String(), func(t *testing.T) {
			f := NewFFT(64, w)
			window := f.Window()
			require.Len(t, window, 64)
			for i, v := range window {
				assert.GreaterOrEqual(t, v, 0.0, "coefficient %d", i)
				assert.LessOrEqual(t, v, 1.0+1e-12, "coefficient %d", i)
			}
			// Symmetric windows
			assert.InDelta(t, window[1], window[62], 1e-12)
		})
	}

	hann := NewFFT(8, HannWindow).Window()
	assert.InDelta(t, 0.0, hann[0], 1e-12)
	assert.InDelta(t, 0.0, hann[7], 1e-12)
}

func TestFFTPower(t *testing.T) {
	const (
		size       = 1024
		sampleRate = 1024.0
	)
	f := NewFFT(size, HannWindow)
	require.Equal(t, size/2+1, f.Bins())

	// 64 Hz falls exactly on bin 64.
	in := make([]float64, size)
	for i := range in {
		in[i] = 0.5 * math.Sin(2*math.Pi*64*float64(i)/sampleRate)
	}

	power := f.Power(in)
	peak := 0
	for i := range power {
		if power[i] > power[peak] {
			peak = i
		}
	}
	assert.Equal(t, 64, peak)
	assert.InDelta(t, 64.0, f.BinFrequency(peak, sampleRate), 1e-9)
	assert.InDelta(t, 0.25, power[peak], 1e-3, "amplitude 0.5 reads as power 0.25")

	magnitude := f.Magnitude(in)
	assert.InDelta(t, 0.5, magnitude[64], 1e-3)

	assert.Equal(t, 64, f.BinForFrequency(64.2, sampleRate))
	assert.Equal(t, f.Bins()-1, f.BinForFrequency(1e6, sampleRate))
	assert.Equal(t, 0, f.BinForFrequency(-5, sampleRate))
}

func TestSpectrumPeakFrequency(t *testing.T) {
	const sampleRate = 48000.0
	s := NewSpectrum(4096, sampleRate, HannWindow)

	power := s.Analyze(sine(4096, 1000, sampleRate, 0.8))
	freq, peak := s.PeakFrequency(power)

	binWidth := sampleRate / 4096
	assert.InDelta(t, 1000, freq, binWidth)
	assert.Greater(t, peak, 0.0)
}

func TestHarmonicRatioGrowsWithFuzz(t *testing.T) {
	const (
		sampleRate  = 44100.0
		fundamental = 441.0
	)
	clean := sine(8192, fundamental, sampleRate, 0.5)

	cleanRatio := HarmonicRatio(clean, sampleRate, fundamental, 8)
	assert.Less(t, cleanRatio, 1e-3, "a sine has no harmonics")

	shaper := distortion.NewShaper()
	prev := cleanRatio
	for _, amount := range []float32{0.1, 0.5, 1.0} {
		driven := append([]float32(nil), clean...)
		shaper.ProcessBuffer(driven, amount)

		ratio := HarmonicRatio(driven, sampleRate, fundamental, 8)
		assert.Greater(t, ratio, prev, "fuzz %.1f", amount)
		prev = ratio
	}
}

func TestHarmonicRatioSilence(t *testing.T) {
	assert.True(t, math.IsInf(HarmonicRatio(make([]float32, 1024), 44100, 440, 4), 1))
}

func TestPeakMeter(t *testing.T) {
	pm := NewPeakMeter(1000)
	pm.SetHoldTime(0.1) // 100 samples
	pm.SetDecayRate(20) // -20 dB per second

	pm.Process([]float32{0.1, -0.5, 0.25})
	assert.InDelta(t, 0.5, pm.Peak(), 1e-12)
	assert.InDelta(t, 0.5, pm.Hold(), 1e-12)
	assert.InDelta(t, 20*math.Log10(0.5), pm.PeakDB(), 1e-9)

	// One second of silence decays the peak by 20 dB.
	pm.Process(make([]float32, 1000))
	assert.InDelta(t, 0.05, pm.Peak(), 1e-9)

	// Hold expired, so it follows the decayed level.
	assert.InDelta(t, pm.Peak(), pm.Hold(), 1e-12)
	assert.InDelta(t, pm.PeakDB(), pm.HoldDB(), 1e-9)

	pm.Reset()
	assert.Equal(t, 0.0, pm.Peak())
	assert.Equal(t, 0.0, pm.Hold())
}

func TestPeakMeterConcurrentReads(t *testing.T) {
	pm := NewPeakMeter(48000)
	block := sine(256, 1000, 48000, 0.9)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 1000; i++ {
			if p := pm.Peak(); p < 0 || p > 1 {
				t.Errorf("unexpected peak %v", p)
				return
			}
		}
	}()
	for i := 0; i < 100; i++ {
		pm.Process(block)
	}
	<-done
}

func TestSummarize(t *testing.T) {
	s := Summarize([]float32{1, -1, 1, -1})
	assert.Equal(t, 4, s.Samples)
	assert.Equal(t, 1.0, s.Peak)
	assert.Equal(t, 1.0, s.RMS)
	assert.Equal(t, 0.0, s.DC)
	assert.InDelta(t, 0.0, s.PeakDB(), 1e-12)

	s = Summarize([]float32{0.5, 0.5, float32(math.NaN()), float32(math.Inf(1))})
	assert.Equal(t, 2, s.NaNs)
	assert.Equal(t, 0.5, s.DC)
	assert.Equal(t, 0.5, s.Peak)

	s = Summarize([]float32{-0.8, 0.2})
	assert.InDelta(t, 0.8, s.Peak, 1e-7)

	empty := Summarize(nil)
	assert.Equal(t, Summary{}, empty)
}

func TestPackagePeakFrequency(t *testing.T) {
	const sampleRate = 44100.0
	freq := PeakFrequency(sine(10000, 441, sampleRate, 0.5), sampleRate)
	// 10000 samples analyze as an 8192 frame
	assert.InDelta(t, 441, freq, sampleRate/8192)

	assert.Equal(t, 0.0, PeakFrequency([]float32{1}, sampleRate))
	assert.Equal(t, 8192, frameSize(10000))
	assert.Equal(t, 16384, frameSize(1<<20))
}
