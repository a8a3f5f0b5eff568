package param

import (
	"math"
	"sync/atomic"
)

// Handle is the lock-free link between a control thread (editor, automation
// playback, terminal) and the audio thread. The control thread posts
// normalized targets; the audio thread publishes the smoothed values it is
// using so they can be displayed. Each value is a single atomic word, so a
// reader sees either the old or the new value, never a torn one.
type Handle struct {
	registry *Registry
	targets  []atomic.Uint64 // normalized float64 bits, written by the control thread
	values   []atomic.Uint64 // real float64 bits, written by the audio thread
}

// NewHandle creates a handle for every parameter in r, initialized to the
// parameter defaults.
func NewHandle(r *Registry) *Handle {
	h := &Handle{
		registry: r,
		targets:  make([]atomic.Uint64, r.Count()),
		values:   make([]atomic.Uint64, r.Count()),
	}
	for i, p := range r.params {
		h.targets[i].Store(math.Float64bits(p.DefaultNormalized()))
		h.values[i].Store(math.Float64bits(p.DefaultValue))
	}
	return h
}

// Registry returns the parameter set the handle serves.
func (h *Handle) Registry() *Registry {
	return h.registry
}

// SetNormalized posts a normalized target for parameter id. It returns false
// for unknown ids.
func (h *Handle) SetNormalized(id uint32, normalized float64) bool {
	i, ok := h.registry.IndexOf(id)
	if !ok || math.IsNaN(normalized) {
		return false
	}
	h.targets[i].Store(math.Float64bits(clamp01(normalized)))
	return true
}

// SetPlain posts a real-valued target for parameter id, clamped to its range.
func (h *Handle) SetPlain(id uint32, plain float64) bool {
	p := h.registry.Get(id)
	if p == nil || math.IsNaN(plain) {
		return false
	}
	return h.SetNormalized(id, p.Normalize(plain))
}

// Normalized returns the last posted normalized target for id.
func (h *Handle) Normalized(id uint32) (float64, bool) {
	i, ok := h.registry.IndexOf(id)
	if !ok {
		return 0, false
	}
	return math.Float64frombits(h.targets[i].Load()), true
}

// Value returns the real value the audio thread most recently published for
// id, for display.
func (h *Handle) Value(id uint32) (float64, bool) {
	i, ok := h.registry.IndexOf(id)
	if !ok {
		return 0, false
	}
	return math.Float64frombits(h.values[i].Load()), true
}

// TargetBitsAt returns the raw target word of the parameter at index i.
// Audio threads compare it with the last word they applied to detect changes.
func (h *Handle) TargetBitsAt(i int) uint64 {
	return h.targets[i].Load()
}

// PublishValueAt stores the real value in use for the parameter at index i.
func (h *Handle) PublishValueAt(i int, value float64) {
	h.values[i].Store(math.Float64bits(value))
}
