// Package analysis provides measurement tools for checking processed audio.
//
// Level metering:
//   - PeakMeter with hold and decay, written by the audio thread and read
//     lock-free from any other thread
//   - Summarize for peak, RMS and DC of a finished buffer
//
// Spectral analysis:
//   - FFT with window functions, backed by gonum
//   - Spectrum frames with peak and harmonic measurements
//
// Example usage:
//
//	s := analysis.NewSpectrum(4096, 44100, analysis.HannWindow)
//	power := s.Analyze(samples)
//	ratio := s.HarmonicRatio(power, 220, 5)
package analysis
