package main

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"sync/atomic"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/pkg/errors"
	"golang.org/x/term"

	"github.com/justyntemme/fuzzgo/pkg/dsp/analysis"
	"github.com/justyntemme/fuzzgo/pkg/dsp/gain"
	"github.com/justyntemme/fuzzgo/pkg/framework/param"
	"github.com/justyntemme/fuzzgo/pkg/framework/process"
	"github.com/justyntemme/fuzzgo/pkg/fuzz"
)

const (
	fuzzStep   = 0.05
	gainStepDB = 1.0

	bytesPerFloat = 4
	maxPlayChans  = 2

	refreshInterval = 100 * time.Millisecond
)

const playHelp = "f/F fuzz -/+   g/G gain -/+   s clipping   q quit"

// player feeds the sound card from the engine. Read runs on the audio
// goroutine; everything it touches is preallocated.
type player struct {
	eng    *engine
	source [][]float32
	pos    int
	loop   bool

	meters   []*analysis.PeakMeter
	finished atomic.Bool
}

func newPlayer(eng *engine, source [][]float32, rate float64, loop bool) *player {
	p := &player{
		eng:    eng,
		source: source,
		loop:   loop,
		meters: make([]*analysis.PeakMeter, len(source)),
	}
	for c := range p.meters {
		p.meters[c] = analysis.NewPeakMeter(rate)
		p.meters[c].SetHoldTime(1)
	}
	return p
}

// Read renders interleaved float32 frames into b.
func (p *player) Read(b []byte) (int, error) {
	channels := len(p.source)
	frames := len(b) / (bytesPerFloat * channels)

	off := 0
	for done := 0; done < frames; {
		n := min(frames-done, p.eng.blockSize)
		p.fill(n)

		out := p.eng.out
		if p.eng.run(n) != process.StatusNormal {
			p.eng.ctx.Clear()
		}
		for c := range out {
			p.meters[c].Process(out[c][:n])
		}

		for i := 0; i < n; i++ {
			for c := range out {
				binary.LittleEndian.PutUint32(b[off:], math.Float32bits(out[c][i]))
				off += bytesPerFloat
			}
		}
		done += n
	}
	return off, nil
}

// fill copies the next n source frames into the engine input, wrapping
// when looping and padding with silence otherwise.
func (p *player) fill(n int) {
	length := len(p.source[0])
	for i := 0; i < n; {
		if p.pos >= length {
			if !p.loop {
				for c := range p.eng.in {
					clear(p.eng.in[c][i:n])
				}
				p.finished.Store(true)
				return
			}
			p.pos = 0
		}

		count := min(n-i, length-p.pos)
		for c := range p.eng.in {
			copy(p.eng.in[c][i:i+count], p.source[c][p.pos:p.pos+count])
		}
		i += count
		p.pos += count
	}
}

// peakDB returns the loudest channel's held peak.
func (p *player) peakDB() float64 {
	db := math.Inf(-1)
	for _, m := range p.meters {
		db = max(db, m.HoldDB())
	}
	return db
}

// runPlay plays cfg.input through the engine while terminal keys move the
// parameters.
func runPlay(cfg *config, w io.Writer) error {
	if cfg.input == "" {
		return errors.New("play needs an input file")
	}

	src, err := openWAV(cfg.input)
	if err != nil {
		return err
	}
	source, err := src.ReadAll()
	_ = src.Close()
	if err != nil {
		return err
	}
	if len(source) > maxPlayChans {
		return errors.Errorf("cannot play %d channels (%d max)", len(source), maxPlayChans)
	}
	if len(source[0]) == 0 {
		return errors.Errorf("%s holds no audio", cfg.input)
	}

	rate := float64(src.SampleRate())
	if cfg.sampleRate > 0 {
		rate = cfg.sampleRate
	}

	eng, err := newEngine(cfg, len(source), rate)
	if err != nil {
		return err
	}
	pl := newPlayer(eng, source, rate, cfg.loop)

	otoCtx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   int(rate),
		ChannelCount: len(source),
		Format:       oto.FormatFloat32LE,
		BufferSize:   2 * time.Duration(float64(cfg.blockSize)/rate*float64(time.Second)),
	})
	if err != nil {
		return errors.Wrap(err, "failed to open audio output")
	}
	<-ready

	out := otoCtx.NewPlayer(pl)
	out.Play()
	defer out.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	keys := make(chan byte, 16)
	done := make(chan struct{})
	defer close(done)
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		old, err := term.MakeRaw(fd)
		if err != nil {
			return errors.Wrap(err, "failed to set raw terminal mode")
		}
		defer term.Restore(fd, old)
		go readKeys(os.Stdin, keys, done)
	}

	fmt.Fprintf(w, "%s\r\n", playHelp)

	ticker := time.NewTicker(refreshInterval)
	defer ticker.Stop()

loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case key := <-keys:
			if applyKey(eng.proc, key) {
				break loop
			}
		case <-ticker.C:
			if pl.finished.Load() {
				break loop
			}
			load := -1.0
			if eng.profiler != nil {
				eng.profiler.UpdateLoad()
				load = eng.profiler.Load()
			}
			fmt.Fprintf(w, "\r%s", statusLine(eng.proc, pl.peakDB(), load))
		}
	}
	fmt.Fprint(w, "\r\n")

	if cfg.saveState != "" {
		return saveState(eng.proc, cfg.saveState)
	}
	return nil
}

// readKeys forwards bytes from r until it fails or done is closed.
func readKeys(r io.Reader, keys chan<- byte, done <-chan struct{}) {
	buf := make([]byte, 1)
	for {
		if _, err := r.Read(buf); err != nil {
			return
		}
		select {
		case keys <- buf[0]:
		case <-done:
			return
		}
	}
}

// applyKey posts the change bound to key and reports whether the key quits.
func applyKey(proc *fuzz.Processor, key byte) bool {
	h := proc.Handle()
	switch key {
	case 'q', 'Q', 3, 27: // Ctrl-C, Esc
		return true
	case 'f':
		nudgeFuzz(h, -fuzzStep)
	case 'F':
		nudgeFuzz(h, fuzzStep)
	case 'g':
		nudgeGain(h, -gainStepDB)
	case 'G':
		nudgeGain(h, gainStepDB)
	case 's', 'S':
		proc.SetSymmetricClipping(!proc.SymmetricClipping())
	}
	return false
}

func nudgeFuzz(h *param.Handle, delta float64) {
	p := h.Registry().Get(fuzz.FuzzID)
	normalized, _ := h.Normalized(fuzz.FuzzID)
	h.SetPlain(fuzz.FuzzID, p.Denormalize(normalized)+delta)
}

func nudgeGain(h *param.Handle, deltaDB float64) {
	p := h.Registry().Get(fuzz.GainID)
	normalized, _ := h.Normalized(fuzz.GainID)
	db := gain.LinearToDb(p.Denormalize(normalized)) + deltaDB
	h.SetPlain(fuzz.GainID, gain.DbToLinear(db))
}

// statusLine renders the values the audio thread is using. Silence reads
// as -inf and a negative load is left out.
func statusLine(proc *fuzz.Processor, peakDB, load float64) string {
	h := proc.Handle()
	line := ""
	for _, p := range h.Registry().All() {
		value, _ := h.Value(p.ID)
		line += fmt.Sprintf("%s %-10s ", p.ShortName, p.FormatValue(p.Normalize(value)))
	}
	line += fmt.Sprintf("clip %-13s ", describeClipping(proc.SymmetricClipping()))
	if peakDB <= gain.MinDB {
		line += "peak   -inf dB"
	} else {
		line += fmt.Sprintf("peak %6.1f dB", peakDB)
	}
	if load >= 0 {
		line += fmt.Sprintf("  load %5.1f%%", load)
	}
	return line
}
