package main

import (
	"fmt"
	"io"

	"github.com/go-audio/audio"
	"github.com/pkg/errors"

	"github.com/justyntemme/fuzzgo/pkg/dsp/analysis"
	"github.com/justyntemme/fuzzgo/pkg/framework/debug"
	"github.com/justyntemme/fuzzgo/pkg/framework/process"
	"github.com/justyntemme/fuzzgo/pkg/fuzz"
)

// harmonics counted by the distortion report
const reportHarmonics = 8

// sections timed around the engine by process -v
const (
	sectionDecode = "decode"
	sectionEncode = "encode"
)

// runProcess streams cfg.input through the engine into cfg.output and
// reports what the effect did to the first channel.
func runProcess(cfg *config, w io.Writer) error {
	if cfg.input == "" || cfg.output == "" {
		return errors.New("process needs an input and an output file")
	}

	src, err := openWAV(cfg.input)
	if err != nil {
		return err
	}
	defer src.Close()

	channels := src.Channels()
	rate := float64(src.SampleRate())
	if cfg.sampleRate > 0 {
		rate = cfg.sampleRate
	}

	eng, err := newEngine(cfg, channels, rate)
	if err != nil {
		return err
	}

	dst, err := createWAV(cfg.output, int(rate), src.bitDepth, channels)
	if err != nil {
		return err
	}

	total := src.Frames()

	buf := &audio.IntBuffer{
		Data:   make([]int, cfg.blockSize*channels),
		Format: src.format,
	}
	scale := 1 / maxValue(src.bitDepth)

	sections := debug.NewProfiler(1000)
	sections.SetEnabled(cfg.verbose)

	var dry, wet []float32
	pos := 0
	for {
		stop := sections.Start(sectionDecode)
		frames, err := src.Read(buf)
		stop()
		if err != nil {
			_ = dst.Close()
			return err
		}
		if frames == 0 {
			break
		}

		deinterleave(buf.Data, eng.in, frames, scale)
		if cfg.ramping() {
			scheduleRamp(eng, cfg, pos, frames, total)
		}

		if status := eng.run(frames); status != process.StatusNormal {
			_ = dst.Close()
			return errors.Errorf("processing failed at frame %d: %s", pos, status)
		}

		dry = append(dry, eng.in[0][:frames]...)
		wet = append(wet, eng.out[0][:frames]...)

		stop = sections.Start(sectionEncode)
		err = dst.Write(eng.out, frames)
		stop()
		if err != nil {
			_ = dst.Close()
			return err
		}
		pos += frames
	}

	if err := dst.Close(); err != nil {
		return err
	}
	eng.log.Info("wrote %d frames to %s", pos, cfg.output)

	if cfg.saveState != "" {
		if err := saveState(eng.proc, cfg.saveState); err != nil {
			return err
		}
	}

	report(w, dry, wet, rate)
	if eng.profiler != nil {
		fmt.Fprintln(w, sections.Report())
		fmt.Fprintln(w, eng.profiler.BlockReport())
	}
	return nil
}

// scheduleRamp posts sample-accurate fuzz changes for one block, moving
// linearly from cfg.fuzz at the first frame to cfg.rampTo at the last.
func scheduleRamp(eng *engine, cfg *config, pos, frames, total int) {
	if total <= 1 {
		eng.automate(fuzz.FuzzID, cfg.rampTo, 0)
		return
	}

	step := max(cfg.rampStep, (frames+process.DefaultMaxParameterChanges-1)/process.DefaultMaxParameterChanges)
	for offset := 0; offset < frames; offset += step {
		t := min(float64(pos+offset)/float64(total-1), 1)
		if !eng.automate(fuzz.FuzzID, cfg.fuzz+(cfg.rampTo-cfg.fuzz)*t, offset) {
			return
		}
	}

	// the last frame of the file always lands on the target
	if last := total - 1 - pos; last >= 0 && last < frames && last%step != 0 {
		eng.automate(fuzz.FuzzID, cfg.rampTo, last)
	}
}

// report prints level and distortion figures before and after the effect.
func report(w io.Writer, dry, wet []float32, rate float64) {
	in, out := analysis.Summarize(dry), analysis.Summarize(wet)
	fmt.Fprintf(w, "frames:   %d\n", in.Samples)
	fmt.Fprintf(w, "peak:     %7.2f dB -> %7.2f dB\n", in.PeakDB(), out.PeakDB())
	fmt.Fprintf(w, "rms:      %7.2f dB -> %7.2f dB\n", in.RMSDB(), out.RMSDB())
	fmt.Fprintf(w, "dc:       %7.4f    -> %7.4f\n", in.DC, out.DC)
	if out.NaNs > 0 {
		fmt.Fprintf(w, "invalid:  %d samples\n", out.NaNs)
	}

	fundamental := analysis.PeakFrequency(dry, rate)
	if fundamental <= 0 {
		return
	}
	fmt.Fprintf(w, "harmonics of %.1f Hz: %.4f -> %.4f\n", fundamental,
		analysis.HarmonicRatio(dry, rate, fundamental, reportHarmonics),
		analysis.HarmonicRatio(wet, rate, fundamental, reportHarmonics))
}
