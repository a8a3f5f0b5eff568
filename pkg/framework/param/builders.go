package param

// Common parameter helpers

// GainParameter creates a gain parameter stored as a linear multiplier and
// displayed in decibels. The range is skewed so equal normalized steps are
// equal steps in dB, and the value is smoothed logarithmically.
func GainParameter(id uint32, key, name string, minDB, maxDB, smoothingMs float64) *Builder {
	return New(id, key, name).
		SkewedRange(dbToGain(minDB), dbToGain(maxDB), GainSkewFactor(minDB, maxDB)).
		Default(dbToGain(0)).
		Unit(" dB").
		Smoothing(SmoothLogarithmic(smoothingMs)).
		Formatter(GainToDecibelFormatter(2), DecibelToGainParser)
}

// DriveParameter creates a 0-1 drive amount parameter shown as a percentage
func DriveParameter(id uint32, key, name string) *Builder {
	return New(id, key, name).
		Range(0, 1).
		Default(0).
		Unit("%").
		Formatter(UnitPercentFormatter, UnitPercentParser)
}
