package main

import (
	"math"

	"github.com/pkg/errors"

	"github.com/justyntemme/fuzzgo/pkg/framework/debug"
	"github.com/justyntemme/fuzzgo/pkg/fuzz"
)

// config holds everything the subcommands read from the command line
type config struct {
	// input and output WAV paths
	input  string
	output string
	// blockSize is the max block size the engine is initialized with
	blockSize int
	// sampleRate overrides the rate in the WAV header (0 keeps it)
	sampleRate float64
	// fuzz is the 0-1 fuzz amount
	fuzz float64
	// gainDB is the output gain in dB
	gainDB float64
	// rampTo is the fuzz amount automated to by the end of the file
	// (negative disables automation)
	rampTo float64
	// rampStep is the distance in samples between automation points
	rampStep int
	// loadState and saveState are parameter state files
	loadState string
	saveState string
	// logLevel names the debug log level
	logLevel string
	// logFile receives log output instead of stderr
	logFile string
	// verbose enables block profiling
	verbose bool
	// symmetric clips both half waves
	symmetric bool
	// loop repeats the input while playing
	loop bool

	level debug.LogLevel
}

// newZeroConfig returns the defaults: unity gain, no fuzz and a block size
// common to most hosts
func newZeroConfig() config {
	return config{
		blockSize: 512,
		fuzz:      0,
		gainDB:    0,
		rampTo:    -1,
		rampStep:  32,
		logLevel:  "warn",
		loop:      true,
		level:     debug.LogLevelWarn,
	}
}

// validate checks ranges and resolves the log level
func (cfg *config) validate() error {
	switch {
	case cfg.blockSize < 1:
		return errors.Errorf("block size %d too small (1 min)", cfg.blockSize)
	case cfg.blockSize > 1<<16:
		return errors.Errorf("block size %d too large (65536 max)", cfg.blockSize)
	}

	if cfg.sampleRate < 0 || math.IsNaN(cfg.sampleRate) {
		return errors.Errorf("invalid sample rate %v", cfg.sampleRate)
	}

	if cfg.fuzz < 0 || cfg.fuzz > 1 || math.IsNaN(cfg.fuzz) {
		return errors.Errorf("fuzz %v out of range [0, 1]", cfg.fuzz)
	}

	if cfg.gainDB < fuzz.MinGainDB || cfg.gainDB > fuzz.MaxGainDB || math.IsNaN(cfg.gainDB) {
		return errors.Errorf("gain %v dB out of range [%v, %v]", cfg.gainDB, fuzz.MinGainDB, fuzz.MaxGainDB)
	}

	if cfg.rampTo > 1 || math.IsNaN(cfg.rampTo) {
		return errors.Errorf("ramp target %v out of range [0, 1]", cfg.rampTo)
	}

	if cfg.rampStep < 1 {
		return errors.Errorf("ramp step %d too small (1 min)", cfg.rampStep)
	}

	level, err := debug.ParseLevel(cfg.logLevel)
	if err != nil {
		return errors.Wrap(err, "invalid log level")
	}
	cfg.level = level

	return nil
}

// ramping reports whether the process subcommand automates the fuzz amount
func (cfg *config) ramping() bool {
	return cfg.rampTo >= 0
}
