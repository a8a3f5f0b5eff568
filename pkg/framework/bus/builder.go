package bus

import (
	"github.com/pkg/errors"
)

// maxChannels is the largest channel count a single bus may carry
const maxChannels = 32

// Builder assembles a configuration of at most one main bus per direction.
// The first mistake is kept and reported by Validate and Build.
type Builder struct {
	main [2]*Info // indexed by Direction
	err  error
}

// NewBuilder creates a new bus configuration builder
func NewBuilder() *Builder {
	return &Builder{}
}

// WithAudioInput adds the main input bus
func (b *Builder) WithAudioInput(name string, channels int32) *Builder {
	return b.set(DirectionInput, name, channels)
}

// WithAudioOutput adds the main output bus
func (b *Builder) WithAudioOutput(name string, channels int32) *Builder {
	return b.set(DirectionOutput, name, channels)
}

func (b *Builder) WithStereoInput(name string) *Builder {
	return b.WithAudioInput(name, 2)
}

func (b *Builder) WithStereoOutput(name string) *Builder {
	return b.WithAudioOutput(name, 2)
}

func (b *Builder) WithMonoInput(name string) *Builder {
	return b.WithAudioInput(name, 1)
}

func (b *Builder) WithMonoOutput(name string) *Builder {
	return b.WithAudioOutput(name, 1)
}

func (b *Builder) set(direction Direction, name string, channels int32) *Builder {
	if b.err != nil {
		return b
	}

	switch {
	case b.main[direction] != nil:
		b.err = errors.Errorf("bus %q: only one main %s bus allowed", name, direction)
	case channels <= 0:
		b.err = errors.Errorf("bus %q: invalid channel count %d", name, channels)
	case channels > maxChannels:
		b.err = errors.Errorf("bus %q: channel count %d exceeds maximum of %d", name, channels, maxChannels)
	default:
		b.main[direction] = &Info{
			Direction:    direction,
			ChannelCount: channels,
			Name:         name,
			IsActive:     true,
		}
	}
	return b
}

// Validate reports the first error recorded while adding buses, or a
// missing output bus.
func (b *Builder) Validate() error {
	if b.err != nil {
		return b.err
	}
	if b.main[DirectionOutput] == nil {
		return errors.New("configuration must have a main output bus")
	}
	return nil
}

// Build returns the configuration, inputs first
func (b *Builder) Build() (*Configuration, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}

	config := &Configuration{}
	for _, info := range b.main {
		if info != nil {
			config.audioBuses = append(config.audioBuses, *info)
		}
	}
	return config, nil
}

// MustBuild returns the built configuration or panics on error
func (b *Builder) MustBuild() *Configuration {
	config, err := b.Build()
	if err != nil {
		panic(err)
	}
	return config
}
