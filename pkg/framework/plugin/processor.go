// Package plugin defines the contract between a host and an audio processor.
package plugin

import (
	"github.com/justyntemme/fuzzgo/pkg/framework/bus"
	"github.com/justyntemme/fuzzgo/pkg/framework/param"
	"github.com/justyntemme/fuzzgo/pkg/framework/process"
	"github.com/pkg/errors"
)

// BufferConfig is the processing setup the host activates a processor with.
type BufferConfig struct {
	SampleRate   float64
	MaxBlockSize int
}

// Validate checks that the configuration can be processed.
func (c BufferConfig) Validate() error {
	if !(c.SampleRate > 0) {
		return errors.Errorf("sample rate must be positive, got %g", c.SampleRate)
	}
	if c.MaxBlockSize <= 0 {
		return errors.Errorf("max block size must be positive, got %d", c.MaxBlockSize)
	}
	return nil
}

// Processor is the interface a host drives.
//
// AcceptsBusConfig and Initialize run on the control thread before
// processing starts. Process runs on the audio thread and must not block or
// allocate.
type Processor interface {
	AcceptsBusConfig(layout bus.Layout) bool
	Initialize(layout bus.Layout, cfg BufferConfig) bool
	Reset()
	Process(ctx *process.Context) process.Status

	Info() Info
	Parameters() *param.Registry
	Handle() *param.Handle
}
