package param

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRangeMapping(t *testing.T) {
	t.Run("Linear", func(t *testing.T) {
		r := Linear(0, 10)
		assert.InDelta(t, 2.5, r.ToReal(0.25), 1e-12)
		assert.InDelta(t, 0.75, r.ToNormalized(7.5), 1e-12)
	})

	t.Run("Skewed", func(t *testing.T) {
		r := Skewed(0, 1, 2)
		assert.InDelta(t, 0.5, r.ToReal(0.25), 1e-12)
		assert.InDelta(t, 0.25, r.ToNormalized(0.5), 1e-12)
	})

	t.Run("UnitFactorIsLinear", func(t *testing.T) {
		skewed := Skewed(-5, 5, 1)
		linear := Linear(-5, 5)
		for n := 0.0; n <= 1.0; n += 0.1 {
			assert.Equal(t, linear.ToReal(n), skewed.ToReal(n))
		}
	})

	t.Run("EmptyRange", func(t *testing.T) {
		r := Skewed(3, 3, 0.5)
		assert.Equal(t, 3.0, r.ToReal(0.7))
		assert.Equal(t, 0.0, r.ToNormalized(3))
		assert.NoError(t, r.Validate())
	})

	t.Run("Saturation", func(t *testing.T) {
		r := Skewed(1, 4, 0.3)
		assert.Equal(t, 4.0, r.ToReal(1.5))
		assert.Equal(t, 1.0, r.ToReal(-0.5))
		assert.Equal(t, 1.0, r.ToNormalized(20))
		assert.Equal(t, 0.0, r.ToNormalized(-20))
	})
}

func TestRangeRoundTrip(t *testing.T) {
	ranges := map[string]Range{
		"linear":      Linear(-30, 30),
		"skewed low":  Skewed(20, 20000, 0.25),
		"skewed high": Skewed(0, 1, 3),
		"gain":        Skewed(dbToGain(-30), dbToGain(30), GainSkewFactor(-30, 30)),
	}

	for name, r := range ranges {
		t.Run(name, func(t *testing.T) {
			for i := 0; i <= 20; i++ {
				n := float64(i) / 20
				assert.InDelta(t, n, r.ToNormalized(r.ToReal(n)), 1e-9, "n=%v", n)
			}
		})
	}
}

func TestGainSkewFactor(t *testing.T) {
	factor := GainSkewFactor(-30, 30)
	require.True(t, factor > 0 && factor < 1, "gain ranges skew toward the low end, got %v", factor)

	r := Skewed(dbToGain(-30), dbToGain(30), factor)

	// The middle of the knob is the middle of the dB range.
	assert.InDelta(t, 1.0, r.ToReal(0.5), 1e-9)
	assert.InDelta(t, 0.5, r.ToNormalized(1.0), 1e-9)

	// The ends are exactly the range bounds.
	assert.Equal(t, r.Min, r.ToReal(0))
	assert.Equal(t, r.Max, r.ToReal(1))
}

func TestRangeValidate(t *testing.T) {
	tests := []struct {
		name    string
		r       Range
		wantErr bool
	}{
		{"linear", Linear(0, 1), false},
		{"skewed", Skewed(0.1, 10, 0.5), false},
		{"inverted", Linear(1, 0), true},
		{"nan", Linear(math.NaN(), 1), true},
		{"infinite", Linear(0, math.Inf(1)), true},
		{"zero factor", Skewed(0, 1, 0), true},
		{"negative factor", Skewed(0, 1, -2), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.r.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRangeClamp(t *testing.T) {
	r := Linear(-1, 1)
	assert.Equal(t, -1.0, r.Clamp(-3))
	assert.Equal(t, 1.0, r.Clamp(3))
	assert.Equal(t, 0.5, r.Clamp(0.5))
	assert.True(t, r.Contains(1))
	assert.False(t, r.Contains(1.0001))
}
