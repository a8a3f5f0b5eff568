package plugin

import (
	"github.com/justyntemme/fuzzgo/pkg/framework/param"
	"github.com/justyntemme/fuzzgo/pkg/framework/state"
)

// Base provides the metadata, parameters and state handling shared by all
// processors
type Base struct {
	info   Info
	params *param.Registry
	handle *param.Handle
	state  *state.Manager
}

// NewBase creates a plugin base for a fixed parameter set
func NewBase(info Info, params *param.Registry) *Base {
	handle := param.NewHandle(params)
	return &Base{
		info:   info,
		params: params,
		handle: handle,
		state:  state.NewManager(handle),
	}
}

// Info returns the plugin metadata
func (b *Base) Info() Info {
	return b.info
}

// Parameters returns the parameter registry
func (b *Base) Parameters() *param.Registry {
	return b.params
}

// Handle returns the lock-free parameter handle shared with control threads
func (b *Base) Handle() *param.Handle {
	return b.handle
}

// State returns the state manager
func (b *Base) State() *state.Manager {
	return b.state
}
