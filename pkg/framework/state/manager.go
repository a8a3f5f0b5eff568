// Package state saves and restores parameter values.
package state

import (
	"encoding/binary"
	"io"

	"github.com/justyntemme/fuzzgo/pkg/framework/param"
	"github.com/pkg/errors"
)

const (
	magic = "FUZZGO"

	// Version is the state format version written by Save.
	Version uint32 = 1
)

// Manager handles plugin state saving and loading
type Manager struct {
	version uint32
	handle  *param.Handle
	custom  CustomStateFunc
	load    CustomLoadFunc
}

// CustomStateFunc allows plugins to save additional state beyond parameters
type CustomStateFunc func(w io.Writer) error

// CustomLoadFunc reads state written by a CustomStateFunc
type CustomLoadFunc func(r io.Reader) error

// NewManager creates a new state manager backed by a parameter handle
func NewManager(handle *param.Handle) *Manager {
	return &Manager{
		version: Version,
		handle:  handle,
	}
}

// SetCustomStateFuncs sets the functions for saving and loading custom state
func (m *Manager) SetCustomStateFuncs(save CustomStateFunc, load CustomLoadFunc) {
	m.custom = save
	m.load = load
}

// Save writes the current parameter targets to w
func (m *Manager) Save(w io.Writer) error {
	if _, err := io.WriteString(w, magic); err != nil {
		return errors.Wrap(err, "write header")
	}

	if err := binary.Write(w, binary.LittleEndian, m.version); err != nil {
		return errors.Wrap(err, "write version")
	}

	registry := m.handle.Registry()
	if err := binary.Write(w, binary.LittleEndian, uint32(registry.Count())); err != nil {
		return errors.Wrap(err, "write parameter count")
	}

	for _, p := range registry.All() {
		if err := binary.Write(w, binary.LittleEndian, p.ID); err != nil {
			return errors.Wrapf(err, "write parameter %q", p.Key)
		}
		value, _ := m.handle.Normalized(p.ID)
		if err := binary.Write(w, binary.LittleEndian, value); err != nil {
			return errors.Wrapf(err, "write parameter %q", p.Key)
		}
	}

	if m.custom == nil {
		return binary.Write(w, binary.LittleEndian, uint32(0))
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(1)); err != nil {
		return errors.Wrap(err, "write custom marker")
	}
	return errors.Wrap(m.custom(w), "write custom state")
}

// Load reads state from r and posts every known parameter through the
// handle. Unknown parameter IDs are skipped.
func (m *Manager) Load(r io.Reader) error {
	header := make([]byte, len(magic))
	if _, err := io.ReadFull(r, header); err != nil {
		return errors.Wrap(err, "read header")
	}
	if string(header) != magic {
		return errors.New("invalid state format")
	}

	var version uint32
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return errors.Wrap(err, "read version")
	}
	if version > m.version {
		return errors.Errorf("state version %d is newer than supported version %d", version, m.version)
	}

	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return errors.Wrap(err, "read parameter count")
	}

	for i := uint32(0); i < count; i++ {
		var id uint32
		if err := binary.Read(r, binary.LittleEndian, &id); err != nil {
			return errors.Wrapf(err, "read parameter %d", i)
		}
		var value float64
		if err := binary.Read(r, binary.LittleEndian, &value); err != nil {
			return errors.Wrapf(err, "read parameter %d", i)
		}
		// Ignore unknown parameters for forward compatibility
		m.handle.SetNormalized(id, value)
	}

	var hasCustom uint32
	if err := binary.Read(r, binary.LittleEndian, &hasCustom); err != nil {
		return errors.Wrap(err, "read custom marker")
	}
	if hasCustom == 0 {
		return nil
	}
	if m.load == nil {
		return errors.New("state carries custom data but no loader is set")
	}
	return errors.Wrap(m.load(r), "read custom state")
}
