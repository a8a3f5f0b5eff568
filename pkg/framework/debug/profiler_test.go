package debug

import (
	"strings"
	"testing"
	"time"
)

func TestProfiler(t *testing.T) {
	t.Run("BasicProfiling", func(t *testing.T) {
		p := NewProfiler(100)

		stop := p.Start("test")
		time.Sleep(10 * time.Millisecond)
		stop()

		m, exists := p.GetMeasurement("test")
		if !exists {
			t.Fatal("Measurement not found")
		}
		if m.Count() != 1 {
			t.Errorf("Expected count 1, got %d", m.Count())
		}
		if m.Last() < 10*time.Millisecond {
			t.Error("Timing seems too short")
		}
	})

	t.Run("MultipleRuns", func(t *testing.T) {
		p := NewProfiler(100)

		for i := 0; i < 5; i++ {
			stop := p.Start("multi")
			time.Sleep(time.Millisecond)
			stop()
		}

		m, exists := p.GetMeasurement("multi")
		if !exists {
			t.Fatal("Measurement not found")
		}
		if m.Count() != 5 {
			t.Errorf("Expected count 5, got %d", m.Count())
		}

		avg := m.Average()
		if m.minTime > avg || avg > m.maxTime {
			t.Error("Invalid min/avg/max relationship")
		}
	})

	t.Run("Percentile", func(t *testing.T) {
		p := NewProfiler(4)
		for _, d := range []time.Duration{5, 1, 3, 2, 4, 9} {
			p.record("p", d)
		}

		// Ring keeps the last four samples: 3, 2, 4, 9
		m, _ := p.GetMeasurement("p")
		if got := m.Percentile(0); got != 2 {
			t.Errorf("Percentile(0) = %v, want 2", got)
		}
		if got := m.Percentile(100); got != 9 {
			t.Errorf("Percentile(100) = %v, want 9", got)
		}
		if got := m.Percentile(50); got != 3 {
			t.Errorf("Percentile(50) = %v, want 3", got)
		}
	})

	t.Run("Disabled", func(t *testing.T) {
		p := NewProfiler(100)
		p.SetEnabled(false)

		stop := p.Start("disabled")
		stop()

		if _, exists := p.GetMeasurement("disabled"); exists {
			t.Error("Measurement should not exist when disabled")
		}
	})

	t.Run("Reset", func(t *testing.T) {
		p := NewProfiler(100)
		p.Start("reset")()
		p.Reset()

		if len(p.GetAllMeasurements()) != 0 {
			t.Error("Measurements not cleared")
		}
	})

	t.Run("Report", func(t *testing.T) {
		p := NewProfiler(100)
		if p.Report() != "No measurements recorded" {
			t.Error("Empty report mismatch")
		}

		p.Time("task2", func() {})
		p.Time("task1", func() {})

		report := p.Report()
		first, second := strings.Index(report, "task1"), strings.Index(report, "task2")
		if first < 0 || second < 0 {
			t.Fatalf("Report missing tasks:\n%s", report)
		}
		if first > second {
			t.Error("Report sections should be sorted by name")
		}
		if !strings.Contains(report, "Count:") {
			t.Error("Report missing count")
		}
	})
}

func TestBlockProfiler(t *testing.T) {
	t.Run("Load", func(t *testing.T) {
		p := NewBlockProfiler(1000, 100) // 100ms budget

		for _, d := range []time.Duration{20, 30, 25, 25} {
			p.record(d * time.Millisecond)
		}

		if p.Blocks() != 4 {
			t.Errorf("Blocks() = %d, want 4", p.Blocks())
		}
		if p.Max() != 30*time.Millisecond {
			t.Errorf("Max() = %v, want 30ms", p.Max())
		}
		p.UpdateLoad()
		if load := p.Load(); load < 24.99 || load > 25.01 {
			t.Errorf("Load() = %.2f%%, want 25%%", load)
		}
	})

	t.Run("Empty", func(t *testing.T) {
		p := NewBlockProfiler(44100, 256)
		p.UpdateLoad()
		if p.Load() != 0 || p.Average() != 0 {
			t.Error("Empty profiler should report no load")
		}
	})

	t.Run("NoAllocations", func(t *testing.T) {
		p := NewBlockProfiler(48000, 64)
		allocs := testing.AllocsPerRun(100, func() {
			p.EndBlock(p.StartBlock())
		})
		if allocs != 0 {
			t.Errorf("StartBlock/EndBlock allocated %.0f times per block", allocs)
		}
		if p.Blocks() == 0 {
			t.Error("Blocks not recorded")
		}
	})

	t.Run("BlockReport", func(t *testing.T) {
		p := NewBlockProfiler(44100, 256)
		p.EndBlock(p.StartBlock())

		report := p.BlockReport()
		for _, want := range []string{"44100 Hz", "256 samples", "RT Load:", "Blocks:       1"} {
			if !strings.Contains(report, want) {
				t.Errorf("Report missing %q", want)
			}
		}
	})
}

func BenchmarkBlockProfiler(b *testing.B) {
	p := NewBlockProfiler(48000, 64)
	for i := 0; i < b.N; i++ {
		p.EndBlock(p.StartBlock())
	}
}

func BenchmarkProfiler(b *testing.B) {
	p := NewProfiler(1000)

	b.Run("StartStop", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			p.Start("bench")()
		}
	})

	b.Run("Disabled", func(b *testing.B) {
		p.SetEnabled(false)
		for i := 0; i < b.N; i++ {
			p.Start("bench")()
		}
	})
}
