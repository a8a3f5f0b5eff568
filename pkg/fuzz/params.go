package fuzz

import (
	"github.com/justyntemme/fuzzgo/pkg/framework/param"
	"github.com/justyntemme/fuzzgo/pkg/framework/plugin"
)

// Parameter IDs
const (
	GainID uint32 = 0
	FuzzID uint32 = 1
)

// Gain parameter setup
const (
	MinGainDB       = -30.0
	MaxGainDB       = 30.0
	GainSmoothingMs = 50.0
)

// PluginInfo describes the fuzz processor.
var PluginInfo = plugin.Info{
	ID:       "com.justyntemme.fuzzgo",
	Name:     "Fuzz",
	Version:  "0.1.0",
	Vendor:   "fuzzgo",
	URL:      "https://github.com/justyntemme/fuzzgo",
	Category: "Fx|Distortion",
}

// NewParameters returns the processor's parameter set: a gain stored as a
// linear multiplier and shown in dB, and a 0-1 fuzz amount.
func NewParameters() (*param.Registry, error) {
	return param.NewRegistry(
		param.GainParameter(GainID, "gain", "Gain", MinGainDB, MaxGainDB, GainSmoothingMs).Build(),
		param.DriveParameter(FuzzID, "fuzz", "Fuzz").Build(),
	)
}
