package param

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"
)

// Parameter describes a continuous plugin parameter. It is pure data: once
// registered it is never mutated. Live values belong to the processor's
// smoothers and to the Handle.
type Parameter struct {
	ID           uint32
	Key          string // stable string identifier, e.g. "gain"
	Name         string
	ShortName    string
	Unit         string
	Range        Range
	DefaultValue float64 // real value within Range
	Smoothing    Smoothing
	StepCount    int32
	Flags        uint32

	// Value formatting, operating on real values
	formatFunc func(float64) string
	parseFunc  func(string) (float64, error)
}

// Flags for parameters
const (
	CanAutomate uint32 = 1 << 0
	IsReadOnly  uint32 = 1 << 1
	IsHidden    uint32 = 1 << 4
)

// Normalize converts a real value to normalized (0-1), clamping it to the
// range first.
func (p *Parameter) Normalize(plain float64) float64 {
	return p.Range.ToNormalized(p.Range.Clamp(plain))
}

// Denormalize converts normalized (0-1) to a real value. The normalized
// default maps back to DefaultValue exactly.
func (p *Parameter) Denormalize(normalized float64) float64 {
	if normalized == p.DefaultNormalized() {
		return p.DefaultValue
	}
	return p.Range.ToReal(normalized)
}

// DefaultNormalized returns the default value in normalized form.
func (p *Parameter) DefaultNormalized() float64 {
	return p.Normalize(p.DefaultValue)
}

// FormatValue returns the display string for a normalized value.
func (p *Parameter) FormatValue(normalized float64) string {
	plain := p.Denormalize(normalized)

	if p.formatFunc != nil {
		return p.formatFunc(plain)
	}

	if p.StepCount > 0 {
		return fmt.Sprintf("%.0f", plain)
	}
	return fmt.Sprintf("%.2f", plain)
}

// ParseValue parses a display string to a normalized value.
func (p *Parameter) ParseValue(str string) (float64, error) {
	if p.parseFunc != nil {
		plain, err := p.parseFunc(str)
		if err != nil {
			return 0, errors.Wrapf(err, "parse %s value %q", p.Key, str)
		}
		return p.Normalize(plain), nil
	}

	plain, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "parse %s value %q", p.Key, str)
	}
	return p.Normalize(plain), nil
}

// Validate checks the descriptor invariants: a key, a usable range, a
// default inside it and a smoothing style the range supports.
func (p *Parameter) Validate() error {
	if p.Key == "" {
		return errors.Errorf("parameter %d has no key", p.ID)
	}
	if err := p.Range.Validate(); err != nil {
		return errors.Wrapf(err, "parameter %s", p.Key)
	}
	if !p.Range.Contains(p.DefaultValue) {
		return errors.Errorf("parameter %s default %g outside [%g, %g]",
			p.Key, p.DefaultValue, p.Range.Min, p.Range.Max)
	}
	if p.Smoothing.TimeMs < 0 {
		return errors.Errorf("parameter %s has negative smoothing time", p.Key)
	}
	if p.Smoothing.Type == LogarithmicSmoothing && p.Range.Min <= 0 {
		return errors.Errorf("parameter %s: logarithmic smoothing needs a strictly positive range", p.Key)
	}
	return nil
}
