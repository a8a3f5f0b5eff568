package debug

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Profiler records execution times of named sections. It takes a lock per
// measurement and is meant for offline hosts and tests, not audio callbacks.
type Profiler struct {
	mu           sync.RWMutex
	measurements map[string]*Measurement
	enabled      atomic.Bool
	maxSamples   int
}

// Measurement holds timing statistics for a profiled section.
type Measurement struct {
	name        string
	count       uint64
	totalTime   time.Duration
	minTime     time.Duration
	maxTime     time.Duration
	lastTime    time.Duration
	samples     []time.Duration
	sampleIndex int
}

// NewProfiler creates a new profiler keeping the last maxSamples timings of
// each section for percentiles.
func NewProfiler(maxSamples int) *Profiler {
	if maxSamples < 1 {
		maxSamples = 1
	}
	p := &Profiler{
		measurements: make(map[string]*Measurement),
		maxSamples:   maxSamples,
	}
	p.enabled.Store(true)
	return p
}

// SetEnabled enables or disables profiling.
func (p *Profiler) SetEnabled(enabled bool) {
	p.enabled.Store(enabled)
}

// IsEnabled returns whether profiling is enabled.
func (p *Profiler) IsEnabled() bool {
	return p.enabled.Load()
}

// Start begins timing a named section.
func (p *Profiler) Start(name string) func() {
	if !p.enabled.Load() {
		return func() {}
	}

	start := time.Now()
	return func() {
		p.record(name, time.Since(start))
	}
}

// Time measures the execution time of a function.
func (p *Profiler) Time(name string, fn func()) {
	stop := p.Start(name)
	defer stop()
	fn()
}

func (p *Profiler) record(name string, elapsed time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	m, exists := p.measurements[name]
	if !exists {
		m = &Measurement{
			name:    name,
			minTime: elapsed,
			maxTime: elapsed,
			samples: make([]time.Duration, p.maxSamples),
		}
		p.measurements[name] = m
	}

	m.count++
	m.totalTime += elapsed
	m.lastTime = elapsed
	m.minTime = min(m.minTime, elapsed)
	m.maxTime = max(m.maxTime, elapsed)

	m.samples[m.sampleIndex] = elapsed
	m.sampleIndex = (m.sampleIndex + 1) % p.maxSamples
}

// GetMeasurement returns a copy of the measurement for a named section.
func (p *Profiler) GetMeasurement(name string) (*Measurement, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	m, exists := p.measurements[name]
	if !exists {
		return nil, false
	}
	return m.clone(), true
}

// GetAllMeasurements returns copies of all measurements.
func (p *Profiler) GetAllMeasurements() map[string]*Measurement {
	p.mu.RLock()
	defer p.mu.RUnlock()

	result := make(map[string]*Measurement, len(p.measurements))
	for k, v := range p.measurements {
		result[k] = v.clone()
	}
	return result
}

// Reset clears all measurements.
func (p *Profiler) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.measurements = make(map[string]*Measurement)
}

// Report generates a performance report, sections sorted by name.
func (p *Profiler) Report() string {
	measurements := p.GetAllMeasurements()
	if len(measurements) == 0 {
		return "No measurements recorded"
	}

	names := make([]string, 0, len(measurements))
	for name := range measurements {
		names = append(names, name)
	}
	slices.Sort(names)

	var sb strings.Builder
	sb.WriteString("Performance Report:\n")
	sb.WriteString("==================\n\n")
	for _, name := range names {
		m := measurements[name]
		fmt.Fprintf(&sb, "%s:\n", name)
		fmt.Fprintf(&sb, "  Count:   %d\n", m.count)
		fmt.Fprintf(&sb, "  Total:   %v\n", m.totalTime)
		fmt.Fprintf(&sb, "  Average: %v\n", m.Average())
		fmt.Fprintf(&sb, "  Min:     %v\n", m.minTime)
		fmt.Fprintf(&sb, "  Max:     %v\n", m.maxTime)
		fmt.Fprintf(&sb, "  p99:     %v\n", m.Percentile(99))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (m *Measurement) clone() *Measurement {
	c := *m
	c.samples = slices.Clone(m.samples)
	return &c
}

// Count returns how many times the section was recorded.
func (m *Measurement) Count() uint64 {
	return m.count
}

// Last returns the most recent timing.
func (m *Measurement) Last() time.Duration {
	return m.lastTime
}

// Average returns the average time for this measurement.
func (m *Measurement) Average() time.Duration {
	if m.count == 0 {
		return 0
	}
	return m.totalTime / time.Duration(m.count)
}

// Percentile returns the p-th percentile (0-100) of the retained samples.
func (m *Measurement) Percentile(p float64) time.Duration {
	n := min(int(m.count), len(m.samples))
	if n == 0 {
		return 0
	}

	sorted := make([]float64, n)
	for i := range sorted {
		sorted[i] = float64(m.samples[i])
	}
	slices.Sort(sorted)

	p = min(max(p, 0), 100)
	return time.Duration(stat.Quantile(p/100, stat.Empirical, sorted, nil))
}

// BlockProfiler measures block processing time against the real-time budget
// of a block. StartBlock and EndBlock only touch atomics, so they are safe to
// call from an audio callback while another goroutine reads Load.
type BlockProfiler struct {
	sampleRate float64
	blockSize  int

	blocks   atomic.Uint64
	totalNs  atomic.Int64
	maxNs    atomic.Int64
	loadBits atomic.Uint64 // real-time load in hundredths of a percent
}

// NewBlockProfiler creates a profiler for blocks of blockSize frames.
func NewBlockProfiler(sampleRate float64, blockSize int) *BlockProfiler {
	return &BlockProfiler{
		sampleRate: sampleRate,
		blockSize:  blockSize,
	}
}

// StartBlock returns the start time to hand to EndBlock.
func (b *BlockProfiler) StartBlock() time.Time {
	return time.Now()
}

// EndBlock records the block that began at start.
func (b *BlockProfiler) EndBlock(start time.Time) {
	b.record(time.Since(start))
}

func (b *BlockProfiler) record(elapsed time.Duration) {
	ns := int64(elapsed)
	b.blocks.Add(1)
	b.totalNs.Add(ns)
	for {
		cur := b.maxNs.Load()
		if ns <= cur || b.maxNs.CompareAndSwap(cur, ns) {
			return
		}
	}
}

// Blocks returns how many blocks were recorded.
func (b *BlockProfiler) Blocks() uint64 {
	return b.blocks.Load()
}

// Average returns the mean block processing time.
func (b *BlockProfiler) Average() time.Duration {
	n := b.blocks.Load()
	if n == 0 {
		return 0
	}
	return time.Duration(b.totalNs.Load() / int64(n))
}

// Max returns the slowest block.
func (b *BlockProfiler) Max() time.Duration {
	return time.Duration(b.maxNs.Load())
}

// Budget returns the real time one full block lasts.
func (b *BlockProfiler) Budget() time.Duration {
	if b.sampleRate <= 0 {
		return 0
	}
	return time.Duration(float64(b.blockSize) / b.sampleRate * float64(time.Second))
}

// UpdateLoad computes the average share of the block budget spent
// processing.
func (b *BlockProfiler) UpdateLoad() {
	avg, budget := b.Average(), b.Budget()
	if avg == 0 || budget <= 0 {
		return
	}
	load := float64(avg) / float64(budget) * 100.0
	b.loadBits.Store(uint64(load * 100))
}

// Load returns the last computed real-time load in percent.
func (b *BlockProfiler) Load() float64 {
	return float64(b.loadBits.Load()) / 100.0
}

// BlockReport generates the real-time statistics.
func (b *BlockProfiler) BlockReport() string {
	b.UpdateLoad()

	var sb strings.Builder
	sb.WriteString("Block Processing Stats:\n")
	fmt.Fprintf(&sb, "  Blocks:       %d\n", b.Blocks())
	fmt.Fprintf(&sb, "  Average:      %v\n", b.Average())
	fmt.Fprintf(&sb, "  Max:          %v\n", b.Max())
	fmt.Fprintf(&sb, "  Sample Rate:  %.0f Hz\n", b.sampleRate)
	fmt.Fprintf(&sb, "  Block Size:   %d samples\n", b.blockSize)
	fmt.Fprintf(&sb, "  RT Load:      %.2f%%\n", b.Load())
	return sb.String()
}
