package distortion

import (
	"math"
	"testing"
)

func TestShaper(t *testing.T) {
	s := NewShaper()

	t.Run("Identity", func(t *testing.T) {
		for _, input := range []float32{-1, -0.5, 0, 0.25, 0.8} {
			if got := s.Process(input, 0); got != input {
				t.Errorf("Process(%f, 0) = %f, want %f", input, got, input)
			}
		}
	})

	t.Run("Drive", func(t *testing.T) {
		tests := []struct {
			input    float32
			fuzz     float32
			expected float32
		}{
			{0.01, 1.0, 0.21},
			{0.02, 0.5, 0.22},
			{0.1, 0.1, 0.3},
			{1.0, 1.0, 0.8},
			{0.5, 0.0, 0.5},
			{0.9, 0.0, 0.8},
		}

		for _, test := range tests {
			result := s.Process(test.input, test.fuzz)
			if math.Abs(float64(result-test.expected)) > 1e-6 {
				t.Errorf("Process(%f, %f) = %f, want %f", test.input, test.fuzz, result, test.expected)
			}
		}
	})

	t.Run("ClipsToExactCeiling", func(t *testing.T) {
		// 1.0 + 1.0*1.0*20.0 = 21.0 before clipping
		if got := s.Process(1.0, 1.0); got != float32(0.8) {
			t.Errorf("Process(1, 1) = %v, want exactly 0.8", got)
		}
	})

	t.Run("NegativeSideUnclipped", func(t *testing.T) {
		// Only positive excursions are clipped.
		got := s.Process(-1.0, 1.0)
		if got != -21.0 {
			t.Errorf("Process(-1, 1) = %f, want -21", got)
		}
		if s.Process(-0.9, 0) != -0.9 {
			t.Errorf("negative input below -ceiling must pass through")
		}
	})

	t.Run("Symmetric", func(t *testing.T) {
		sym := NewShaper()
		sym.SetSymmetric(true)
		if !sym.Symmetric() {
			t.Fatal("expected symmetric shaper")
		}
		if got := sym.Process(-1.0, 1.0); got != float32(-0.8) {
			t.Errorf("symmetric Process(-1, 1) = %f, want -0.8", got)
		}
		if got := sym.Process(1.0, 1.0); got != float32(0.8) {
			t.Errorf("symmetric Process(1, 1) = %f, want 0.8", got)
		}
	})
}

func TestShaperBuffers(t *testing.T) {
	s := NewShaper()

	buffer := []float32{0.01, -0.01, 0.5}
	s.ProcessBuffer(buffer, 1.0)
	expected := []float32{0.21, -0.21, 0.8}
	for i, v := range buffer {
		if math.Abs(float64(v-expected[i])) > 1e-6 {
			t.Errorf("ProcessBuffer: buffer[%d] = %f, want %f", i, v, expected[i])
		}
	}

	ramp := []float32{0.01, 0.01, 0.01}
	s.ProcessRamp(ramp, []float64{0, 0.5, 1, 1})
	expected = []float32{0.01, 0.11, 0.21}
	for i, v := range ramp {
		if math.Abs(float64(v-expected[i])) > 1e-6 {
			t.Errorf("ProcessRamp: buffer[%d] = %f, want %f", i, v, expected[i])
		}
	}
}

func BenchmarkShaper(b *testing.B) {
	s := NewShaper()
	buffer := make([]float32, 512)
	for i := range buffer {
		buffer[i] = float32(math.Sin(float64(i) * 0.05))
	}
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		s.ProcessBuffer(buffer, 0.5)
	}
}
