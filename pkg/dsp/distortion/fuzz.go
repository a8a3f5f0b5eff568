// Package distortion provides waveshaping distortion stages.
package distortion

const (
	// DriveConstant scales the fuzz amount into extra gain before clipping.
	DriveConstant = 20.0
	// Ceiling is the level the shaped signal is clipped to.
	Ceiling = 0.8
)

// Shaper is the fuzz waveshaper: the sample is driven by
// 1 + fuzz*DriveConstant and then clipped at the ceiling. Only positive
// excursions are clipped unless the shaper is symmetric, which gives the
// stage its asymmetric character.
type Shaper struct {
	drive     float32
	ceiling   float32
	symmetric bool
}

// NewShaper creates a shaper with the default drive and ceiling.
func NewShaper() Shaper {
	return Shaper{
		drive:   DriveConstant,
		ceiling: Ceiling,
	}
}

// SetSymmetric makes the shaper clip negative excursions at -ceiling too.
func (s *Shaper) SetSymmetric(symmetric bool) {
	s.symmetric = symmetric
}

// Symmetric reports whether negative excursions are clipped.
func (s *Shaper) Symmetric() bool {
	return s.symmetric
}

// Process shapes a single sample with the given fuzz amount (0-1).
func (s *Shaper) Process(sample, fuzz float32) float32 {
	shaped := sample + sample*fuzz*s.drive
	if shaped > s.ceiling {
		return s.ceiling
	}
	if s.symmetric && shaped < -s.ceiling {
		return -s.ceiling
	}
	return shaped
}

// ProcessBuffer shapes buffer in-place with a constant fuzz amount.
func (s *Shaper) ProcessBuffer(buffer []float32, fuzz float32) {
	for i := range buffer {
		buffer[i] = s.Process(buffer[i], fuzz)
	}
}

// ProcessRamp shapes buffer in-place with a per-sample fuzz amount. fuzz
// must be at least as long as buffer.
func (s *Shaper) ProcessRamp(buffer []float32, fuzz []float64) {
	fuzz = fuzz[:len(buffer)]
	for i := range buffer {
		buffer[i] = s.Process(buffer[i], float32(fuzz[i]))
	}
}
