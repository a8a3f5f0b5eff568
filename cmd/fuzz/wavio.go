package main

import (
	"io"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/pkg/errors"
)

const (
	bitsPerSample16 = 16
	bitsPerSample24 = 24
	bitsPerSample32 = 32

	maxInt16 = 32767.0
	maxInt24 = 8388607.0
	maxInt32 = 2147483647.0

	wavFormatPCM = 1
)

// wavInput is an open, validated WAV file
type wavInput struct {
	file     *os.File
	decoder  *wav.Decoder
	format   *audio.Format
	bitDepth int
}

// openWAV opens path and reads its header.
func openWAV(path string) (*wavInput, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open input")
	}

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		_ = f.Close()
		return nil, errors.Errorf("invalid WAV file: %s", path)
	}

	format := dec.Format()
	if format.NumChannels < 1 {
		_ = f.Close()
		return nil, errors.Errorf("WAV file %s has no channels", path)
	}
	switch dec.BitDepth {
	case bitsPerSample16, bitsPerSample24, bitsPerSample32:
	default:
		_ = f.Close()
		return nil, errors.Errorf("unsupported bit depth %d in %s", dec.BitDepth, path)
	}
	if err := dec.FwdToPCM(); err != nil {
		_ = f.Close()
		return nil, errors.Wrapf(err, "no PCM data in %s", path)
	}

	return &wavInput{
		file:     f,
		decoder:  dec,
		format:   format,
		bitDepth: int(dec.BitDepth),
	}, nil
}

func (w *wavInput) Channels() int {
	return w.format.NumChannels
}

func (w *wavInput) SampleRate() int {
	return w.format.SampleRate
}

// Frames returns the frame count of the data chunk.
func (w *wavInput) Frames() int {
	return int(w.decoder.PCMLen()) / (w.Channels() * w.bitDepth / 8)
}

// Read fills buf with up to len(buf.Data) interleaved samples and returns
// the number of frames read. Zero frames means the end of the file.
func (w *wavInput) Read(buf *audio.IntBuffer) (int, error) {
	n, err := w.decoder.PCMBuffer(buf)
	if err != nil && !errors.Is(err, io.EOF) {
		return 0, errors.Wrap(err, "failed to decode samples")
	}
	return n / w.Channels(), nil
}

// ReadAll decodes the remaining samples into one slice per channel.
func (w *wavInput) ReadAll() ([][]float32, error) {
	buf, err := w.decoder.FullPCMBuffer()
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode samples")
	}

	ch := w.Channels()
	frames := len(buf.Data) / ch
	out := make([][]float32, ch)
	for c := range out {
		out[c] = make([]float32, frames)
	}
	deinterleave(buf.Data, out, frames, 1/maxValue(w.bitDepth))
	return out, nil
}

func (w *wavInput) Close() error {
	return w.file.Close()
}

// wavOutput writes PCM samples at a fixed bit depth
type wavOutput struct {
	file    *os.File
	encoder *wav.Encoder
	buf     *audio.IntBuffer
	scale   float64
}

func createWAV(path string, sampleRate, bitDepth, channels int) (*wavOutput, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create output")
	}

	return &wavOutput{
		file:    f,
		encoder: wav.NewEncoder(f, sampleRate, bitDepth, channels, wavFormatPCM),
		buf: &audio.IntBuffer{
			Format: &audio.Format{NumChannels: channels, SampleRate: sampleRate},
			// bit depth of the encoded samples
			SourceBitDepth: bitDepth,
		},
		scale: maxValue(bitDepth),
	}, nil
}

// Write encodes the first frames samples of every channel.
func (w *wavOutput) Write(channels [][]float32, frames int) error {
	need := frames * len(channels)
	if cap(w.buf.Data) < need {
		w.buf.Data = make([]int, need)
	}
	w.buf.Data = w.buf.Data[:need]
	interleave(channels, w.buf.Data, frames, w.scale)

	return errors.Wrap(w.encoder.Write(w.buf), "failed to encode samples")
}

// Close finalizes the header and closes the file.
func (w *wavOutput) Close() error {
	if err := w.encoder.Close(); err != nil {
		_ = w.file.Close()
		return errors.Wrap(err, "failed to finalize output")
	}
	return w.file.Close()
}

// maxValue returns the full-scale integer value for a PCM bit depth.
func maxValue(bitDepth int) float64 {
	switch bitDepth {
	case bitsPerSample24:
		return maxInt24
	case bitsPerSample32:
		return maxInt32
	default:
		return maxInt16
	}
}

// deinterleave converts interleaved integer samples into per-channel float
// buffers.
func deinterleave(data []int, out [][]float32, frames int, scale float64) {
	ch := len(out)
	for c := range out {
		dst := out[c][:frames]
		for i := range dst {
			dst[i] = float32(float64(data[i*ch+c]) * scale)
		}
	}
}

// interleave converts per-channel float buffers into interleaved integer
// samples, clipping at full scale.
func interleave(in [][]float32, data []int, frames int, scale float64) {
	ch := len(in)
	for c := range in {
		src := in[c][:frames]
		for i, v := range src {
			s := float64(v)
			switch {
			case math.IsNaN(s):
				s = 0
			case s > 1:
				s = 1
			case s < -1:
				s = -1
			}
			data[i*ch+c] = int(s * scale)
		}
	}
}
