package bus

import "fmt"

// Common bus configuration templates

// NewEffectStereo creates a standard stereo effect configuration (1 stereo in, 1 stereo out)
func NewEffectStereo() *Configuration {
	return NewBuilder().
		WithStereoInput("Stereo In").
		WithStereoOutput("Stereo Out").
		MustBuild()
}

// NewEffectMono creates a mono effect configuration (1 mono in, 1 mono out)
func NewEffectMono() *Configuration {
	return NewBuilder().
		WithMonoInput("Mono In").
		WithMonoOutput("Mono Out").
		MustBuild()
}

// NewMultiChannel creates an n-in n-out configuration
func NewMultiChannel(channels int32) (*Configuration, error) {
	return NewBuilder().
		WithAudioInput(fmt.Sprintf("%dch In", channels), channels).
		WithAudioOutput(fmt.Sprintf("%dch Out", channels), channels).
		Build()
}

// ForLayout creates the configuration matching a negotiated layout
func ForLayout(l Layout) (*Configuration, error) {
	switch {
	case l == Stereo:
		return NewEffectStereo(), nil
	case l == Mono:
		return NewEffectMono(), nil
	case l.NumInputChannels == l.NumOutputChannels:
		return NewMultiChannel(int32(l.NumOutputChannels))
	}
	return NewBuilder().
		WithAudioInput("Main In", int32(l.NumInputChannels)).
		WithAudioOutput("Main Out", int32(l.NumOutputChannels)).
		Build()
}
