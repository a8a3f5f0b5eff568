// Package fuzz implements a fuzz distortion followed by a smoothed output
// gain.
package fuzz

import (
	"encoding/binary"
	"io"
	"math"
	"sync/atomic"

	"github.com/pkg/errors"

	"github.com/justyntemme/fuzzgo/pkg/dsp/distortion"
	"github.com/justyntemme/fuzzgo/pkg/dsp/gain"
	"github.com/justyntemme/fuzzgo/pkg/framework/bus"
	"github.com/justyntemme/fuzzgo/pkg/framework/debug"
	"github.com/justyntemme/fuzzgo/pkg/framework/param"
	"github.com/justyntemme/fuzzgo/pkg/framework/plugin"
	"github.com/justyntemme/fuzzgo/pkg/framework/process"
)

// Processor is the fuzz engine. Initialize and Reset run on the control
// thread; Process runs on the audio thread and neither blocks nor
// allocates. Parameter targets reach the audio thread either as sample
// accurate events in the process context or through the Handle.
type Processor struct {
	*plugin.Base

	logger *debug.Logger
	shaper distortion.Shaper

	// clip mode requested by the control thread, copied into the shaper at
	// the start of every block
	symmetric atomic.Bool

	layout       bus.Layout
	sampleRate   float64
	maxBlockSize int
	initialized  bool

	// false until the first block after Initialize or Reset; handle values
	// are applied as jumps until then
	started bool

	smoothers []*param.Smoother // indexed like the registry
	applied   []uint64          // last handle target word applied per parameter
	gain      *param.Smoother
	fuzz      *param.Smoother

	gainRamp []float64
	fuzzRamp []float64
}

var _ plugin.Processor = (*Processor)(nil)

// Option configures a Processor.
type Option func(*Processor)

// WithLogger sets the logger used outside the audio path.
func WithLogger(l *debug.Logger) Option {
	return func(p *Processor) {
		p.logger = l
	}
}

// WithSymmetricClipping clips negative excursions at the ceiling too.
func WithSymmetricClipping() Option {
	return func(p *Processor) {
		p.SetSymmetricClipping(true)
	}
}

// New creates an uninitialized processor with default parameter values.
func New(opts ...Option) *Processor {
	params, err := NewParameters()
	if err != nil {
		panic(err)
	}

	p := &Processor{
		Base:      plugin.NewBase(PluginInfo, params),
		logger:    debug.Component("fuzz"),
		shaper:    distortion.NewShaper(),
		smoothers: make([]*param.Smoother, params.Count()),
		applied:   make([]uint64, params.Count()),
	}
	for i, d := range params.All() {
		p.smoothers[i] = param.NewSmoother(d)
	}
	p.gain = p.smoother(GainID)
	p.fuzz = p.smoother(FuzzID)
	p.State().SetCustomStateFuncs(p.saveClipMode, p.loadClipMode)

	for _, opt := range opts {
		opt(p)
	}
	return p
}

// SetSymmetricClipping selects the clip mode from any goroutine. It takes
// effect at the next block.
func (p *Processor) SetSymmetricClipping(symmetric bool) {
	p.symmetric.Store(symmetric)
}

// SymmetricClipping reports the requested clip mode.
func (p *Processor) SymmetricClipping() bool {
	return p.symmetric.Load()
}

// clip mode stored after the parameters in saved state
const (
	clipAsymmetric uint8 = iota
	clipSymmetric
)

func (p *Processor) saveClipMode(w io.Writer) error {
	mode := clipAsymmetric
	if p.SymmetricClipping() {
		mode = clipSymmetric
	}
	return binary.Write(w, binary.LittleEndian, mode)
}

func (p *Processor) loadClipMode(r io.Reader) error {
	var mode uint8
	if err := binary.Read(r, binary.LittleEndian, &mode); err != nil {
		return err
	}
	switch mode {
	case clipAsymmetric, clipSymmetric:
		p.SetSymmetricClipping(mode == clipSymmetric)
		return nil
	}
	return errors.Errorf("unknown clip mode %d", mode)
}

func (p *Processor) smoother(id uint32) *param.Smoother {
	i, ok := p.Parameters().IndexOf(id)
	if !ok {
		return nil
	}
	return p.smoothers[i]
}

// AcceptsBusConfig reports whether the processor can run with layout.
func (p *Processor) AcceptsBusConfig(layout bus.Layout) bool {
	return bus.Accepts(layout)
}

// Initialize prepares the processor for a layout and buffer configuration.
// It returns false, leaving the processor unusable, when either is rejected.
func (p *Processor) Initialize(layout bus.Layout, cfg plugin.BufferConfig) bool {
	p.initialized = false

	if !p.AcceptsBusConfig(layout) {
		p.logger.Warn("rejected bus layout %d in / %d out", layout.NumInputChannels, layout.NumOutputChannels)
		return false
	}
	if err := cfg.Validate(); err != nil {
		p.logger.Warn("rejected buffer config: %v", err)
		return false
	}

	p.layout = layout
	p.sampleRate = cfg.SampleRate
	p.maxBlockSize = cfg.MaxBlockSize
	if cap(p.gainRamp) < cfg.MaxBlockSize {
		p.gainRamp = make([]float64, cfg.MaxBlockSize)
		p.fuzzRamp = make([]float64, cfg.MaxBlockSize)
	}

	// Start from whatever the control side holds right now.
	h := p.Handle()
	for i, d := range p.Parameters().All() {
		word := h.TargetBitsAt(i)
		p.applied[i] = word
		p.smoothers[i].Reset(d.Denormalize(math.Float64frombits(word)))
	}
	p.started = false
	p.initialized = true

	p.logger.Info("initialized %d channel(s) at %.0f Hz, max block %d",
		layout.NumInputChannels, cfg.SampleRate, cfg.MaxBlockSize)
	return true
}

// Reset drops any interpolation in flight: every smoother jumps to its
// target. Nothing is reallocated.
func (p *Processor) Reset() {
	for _, s := range p.smoothers {
		s.Reset(s.Target())
	}
	p.started = false
}

// Process runs one block in place from ctx.Input to ctx.Output.
func (p *Processor) Process(ctx *process.Context) process.Status {
	if !p.initialized {
		return process.StatusError
	}
	if ctx.NumInputChannels() != p.layout.NumInputChannels ||
		ctx.NumOutputChannels() != p.layout.NumOutputChannels {
		return process.StatusError
	}

	n := ctx.NumSamples()
	if n > p.maxBlockSize {
		return process.StatusError
	}
	for ch := range ctx.Input {
		if len(ctx.Input[ch]) < n || len(ctx.Output[ch]) < n {
			return process.StatusError
		}
	}

	p.pollHandle()
	p.shaper.SetSymmetric(p.symmetric.Load())
	p.started = true

	for ch := range ctx.Output {
		copy(ctx.Output[ch][:n], ctx.Input[ch][:n])
	}

	// Split the block at every event offset.
	changes := ctx.ParameterChanges()
	next := 0
	for start := 0; start < n; {
		for next < len(changes) && changes[next].SampleOffset <= start {
			p.applyChange(changes[next])
			next++
		}

		end := n
		if next < len(changes) && changes[next].SampleOffset < n {
			end = changes[next].SampleOffset
		}
		p.processSegment(ctx.Output, start, end)
		start = end
	}
	// Events at or past the block end land after the last sample.
	for ; next < len(changes); next++ {
		p.applyChange(changes[next])
	}

	h := p.Handle()
	for i, s := range p.smoothers {
		h.PublishValueAt(i, s.Current())
	}
	return process.StatusNormal
}

// pollHandle retargets every parameter whose control-side word changed.
func (p *Processor) pollHandle() {
	h := p.Handle()
	params := p.Parameters()
	for i, s := range p.smoothers {
		word := h.TargetBitsAt(i)
		if word == p.applied[i] {
			continue
		}
		p.applied[i] = word

		value := params.GetByIndex(i).Denormalize(math.Float64frombits(word))
		if p.started {
			s.SetTarget(value, p.sampleRate)
		} else {
			s.Reset(value)
		}
	}
}

func (p *Processor) applyChange(c process.ParameterChange) {
	i, ok := p.Parameters().IndexOf(c.ParamID)
	if !ok || math.IsNaN(c.Value) {
		return
	}
	d := p.Parameters().GetByIndex(i)
	p.smoothers[i].SetTarget(d.Denormalize(c.Value), p.sampleRate)
}

func (p *Processor) processSegment(out [][]float32, start, end int) {
	if !p.gain.IsSmoothing() && !p.fuzz.IsSmoothing() {
		fuzz := float32(p.fuzz.Current())
		g := float32(p.gain.Current())
		for ch := range out {
			buf := out[ch][start:end]
			p.shaper.ProcessBuffer(buf, fuzz)
			gain.ApplyBuffer(buf, g)
		}
		return
	}

	// Each smoother advances once per frame, shared by all channels.
	length := end - start
	fuzzRamp := p.fuzzRamp[:length]
	gainRamp := p.gainRamp[:length]
	p.fuzz.NextBlock(fuzzRamp)
	p.gain.NextBlock(gainRamp)

	for ch := range out {
		buf := out[ch][start:end]
		p.shaper.ProcessRamp(buf, fuzzRamp)
		gain.ApplyRamp(buf, gainRamp)
	}
}

// SampleRate returns the rate the processor was initialized with.
func (p *Processor) SampleRate() float64 {
	return p.sampleRate
}

// Layout returns the negotiated bus layout.
func (p *Processor) Layout() bus.Layout {
	return p.layout
}
