package param

import (
	"github.com/pkg/errors"
)

// Registry is the fixed set of plugin parameters. It is built once at
// startup and read-only afterwards, so lookups take no locks.
type Registry struct {
	params []*Parameter
	byID   map[uint32]int
	byKey  map[string]int
}

// NewRegistry validates and registers the given parameters in order.
// Duplicate IDs or keys are rejected.
func NewRegistry(params ...*Parameter) (*Registry, error) {
	r := &Registry{
		params: make([]*Parameter, 0, len(params)),
		byID:   make(map[uint32]int, len(params)),
		byKey:  make(map[string]int, len(params)),
	}

	for _, p := range params {
		if p == nil {
			return nil, errors.New("nil parameter")
		}
		if err := p.Validate(); err != nil {
			return nil, err
		}
		if _, exists := r.byID[p.ID]; exists {
			return nil, errors.Errorf("duplicate parameter id %d", p.ID)
		}
		if _, exists := r.byKey[p.Key]; exists {
			return nil, errors.Errorf("duplicate parameter key %q", p.Key)
		}

		r.byID[p.ID] = len(r.params)
		r.byKey[p.Key] = len(r.params)
		r.params = append(r.params, p)
	}

	return r, nil
}

// Get retrieves a parameter by ID
func (r *Registry) Get(id uint32) *Parameter {
	if i, ok := r.byID[id]; ok {
		return r.params[i]
	}
	return nil
}

// GetByKey retrieves a parameter by its string key
func (r *Registry) GetByKey(key string) *Parameter {
	if i, ok := r.byKey[key]; ok {
		return r.params[i]
	}
	return nil
}

// GetByIndex retrieves a parameter by index
func (r *Registry) GetByIndex(index int) *Parameter {
	if index < 0 || index >= len(r.params) {
		return nil
	}
	return r.params[index]
}

// IndexOf returns the registration index of a parameter ID
func (r *Registry) IndexOf(id uint32) (int, bool) {
	i, ok := r.byID[id]
	return i, ok
}

// Count returns the number of parameters
func (r *Registry) Count() int {
	return len(r.params)
}

// All returns all parameters in registration order. The slice is a copy;
// the descriptors are shared and must not be modified.
func (r *Registry) All() []*Parameter {
	result := make([]*Parameter, len(r.params))
	copy(result, r.params)
	return result
}
