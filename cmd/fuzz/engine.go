package main

import (
	"os"

	"github.com/pkg/errors"

	"github.com/justyntemme/fuzzgo/pkg/dsp/gain"
	"github.com/justyntemme/fuzzgo/pkg/framework/bus"
	"github.com/justyntemme/fuzzgo/pkg/framework/debug"
	"github.com/justyntemme/fuzzgo/pkg/framework/plugin"
	"github.com/justyntemme/fuzzgo/pkg/framework/process"
	"github.com/justyntemme/fuzzgo/pkg/fuzz"
)

// engine drives a fuzz processor block by block, the way a plugin host does
type engine struct {
	proc *fuzz.Processor
	ctx  *process.Context
	log  *debug.Logger

	// full-size block buffers; ctx slices into them
	in  [][]float32
	out [][]float32

	blockSize int
	profiler  *debug.BlockProfiler // nil unless profiling
}

// newEngine creates and initializes a processor for channels at sampleRate.
// Parameter values come from cfg, then from cfg.loadState when set.
func newEngine(cfg *config, channels int, sampleRate float64) (*engine, error) {
	log := debug.Component("host")

	var opts []fuzz.Option
	if cfg.symmetric {
		opts = append(opts, fuzz.WithSymmetricClipping())
	}
	proc := fuzz.New(opts...)

	h := proc.Handle()
	h.SetPlain(fuzz.FuzzID, cfg.fuzz)
	h.SetPlain(fuzz.GainID, gain.DbToLinear(cfg.gainDB))

	if cfg.loadState != "" {
		if err := loadState(proc, cfg.loadState); err != nil {
			return nil, err
		}
		log.Info("loaded parameter state from %s", cfg.loadState)
	}

	buses, err := bus.ForLayout(bus.Layout{NumInputChannels: channels, NumOutputChannels: channels})
	if err != nil {
		return nil, errors.Wrap(err, "invalid channel layout")
	}
	for _, dir := range []bus.Direction{bus.DirectionInput, bus.DirectionOutput} {
		info := buses.GetBusInfo(dir, 0)
		log.Debug("bus %q: %d channel(s)", info.Name, info.ChannelCount)
	}

	layout := buses.Layout()
	bufCfg := plugin.BufferConfig{SampleRate: sampleRate, MaxBlockSize: cfg.blockSize}
	if !proc.Initialize(layout, bufCfg) {
		return nil, errors.Errorf("processor rejected %d channel(s) at %v Hz with block size %d",
			channels, sampleRate, cfg.blockSize)
	}

	e := &engine{
		proc:      proc,
		ctx:       process.NewContext(process.DefaultMaxParameterChanges),
		log:       log,
		in:        make([][]float32, channels),
		out:       make([][]float32, channels),
		blockSize: cfg.blockSize,
	}
	for c := 0; c < channels; c++ {
		e.in[c] = make([]float32, cfg.blockSize)
		e.out[c] = make([]float32, cfg.blockSize)
	}
	e.ctx.Input = make([][]float32, channels)
	e.ctx.Output = make([][]float32, channels)
	e.ctx.SampleRate = sampleRate

	if cfg.verbose {
		e.profiler = debug.NewBlockProfiler(sampleRate, cfg.blockSize)
	}
	return e, nil
}

// run processes the first frames samples of e.in into e.out and drops the
// block's parameter changes.
func (e *engine) run(frames int) process.Status {
	for c := range e.in {
		e.ctx.Input[c] = e.in[c][:frames]
		e.ctx.Output[c] = e.out[c][:frames]
	}

	var status process.Status
	if e.profiler != nil {
		start := e.profiler.StartBlock()
		status = e.proc.Process(e.ctx)
		e.profiler.EndBlock(start)
	} else {
		status = e.proc.Process(e.ctx)
	}

	e.ctx.ClearParameterChanges()
	return status
}

// automate schedules a parameter change at offset within the next block.
// It reports false once the block's event queue is full.
func (e *engine) automate(id uint32, plain float64, offset int) bool {
	p := e.proc.Parameters().Get(id)
	if p == nil {
		return false
	}
	return e.ctx.SetParameterAtOffset(id, p.Normalize(plain), offset)
}

func loadState(proc *fuzz.Processor, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "failed to open state file")
	}
	defer f.Close()

	return errors.Wrapf(proc.State().Load(f), "failed to load state from %s", path)
}

func saveState(proc *fuzz.Processor, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "failed to create state file")
	}

	if err := proc.State().Save(f); err != nil {
		_ = f.Close()
		return errors.Wrapf(err, "failed to save state to %s", path)
	}
	return f.Close()
}
