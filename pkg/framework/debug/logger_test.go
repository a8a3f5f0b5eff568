package debug

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLogger(t *testing.T) {
	t.Run("BasicLogging", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(&buf, "TEST", FlagLevel|FlagPrefix)

		logger.Info("Hello %s", "World")

		output := buf.String()
		if !strings.Contains(output, "[INFO]") {
			t.Error("Missing log level")
		}
		if !strings.Contains(output, "[TEST]") {
			t.Error("Missing prefix")
		}
		if !strings.Contains(output, "Hello World") {
			t.Error("Missing message")
		}
	})

	t.Run("LogLevels", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(&buf, "", FlagLevel)
		logger.SetLevel(LogLevelWarn)

		logger.Debug("debug message")
		logger.Info("info message")
		logger.Warn("warn message")
		logger.Error("error message")

		output := buf.String()
		if strings.Contains(output, "debug message") {
			t.Error("Debug message should not be logged")
		}
		if strings.Contains(output, "info message") {
			t.Error("Info message should not be logged")
		}
		if !strings.Contains(output, "warn message") {
			t.Error("Warn message should be logged")
		}
		if !strings.Contains(output, "error message") {
			t.Error("Error message should be logged")
		}
	})

	t.Run("Disabled", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(&buf, "", DefaultFlags)
		logger.SetEnabled(false)

		logger.Info("should not appear")

		if buf.Len() > 0 {
			t.Error("Disabled logger should not write")
		}
	})

	t.Run("FileInfo", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(&buf, "", FlagShortFile|FlagLevel)

		logger.Info("test")

		output := buf.String()
		if !strings.Contains(output, ".go:") {
			t.Errorf("Missing file info in output: %s", output)
		}
	})

	t.Run("Component", func(t *testing.T) {
		var buf bytes.Buffer
		parent := New(&buf, "host", FlagLevel|FlagPrefix)
		c := parent.Component("fuzz")

		// Set after the component exists; it still applies.
		parent.SetLevel(LogLevelWarn)
		if c.Level() != LogLevelWarn {
			t.Errorf("Component level = %v, want WARN", c.Level())
		}

		c.Info("dropped")
		c.Warn("kept")

		output := buf.String()
		if strings.Contains(output, "dropped") {
			t.Error("Component should follow the parent level")
		}
		if !strings.Contains(output, "[WARN] [fuzz] kept") {
			t.Errorf("unexpected component output: %q", output)
		}

		var moved bytes.Buffer
		parent.SetOutput(&moved)
		c.Error("moved")
		if !strings.Contains(moved.String(), "[fuzz] moved") {
			t.Error("Component should follow the parent output")
		}
	})

	t.Run("OpenFile", func(t *testing.T) {
		logger := New(io.Discard, "", FlagLevel)
		path := filepath.Join(t.TempDir(), "logs", "fuzz.log")

		f, err := logger.OpenFile(path)
		if err != nil {
			t.Fatalf("OpenFile() error: %v", err)
		}
		logger.Info("to file")
		f.Close()

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("ReadFile() error: %v", err)
		}
		if string(data) != "[INFO] to file\n" {
			t.Errorf("log file holds %q", data)
		}
	})

	t.Run("Fatal", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(&buf, "", FlagLevel)

		defer func() {
			if r := recover(); r != "boom 1" {
				t.Errorf("recovered %v, want boom 1", r)
			}
			if !strings.Contains(buf.String(), "[FATAL] boom 1") {
				t.Errorf("unexpected output: %q", buf.String())
			}
		}()
		logger.Fatal("boom %d", 1)
	})
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name    string
		level   LogLevel
		wantErr bool
	}{
		{"debug", LogLevelDebug, false},
		{"INFO", LogLevelInfo, false},
		{"", LogLevelInfo, false},
		{" warning ", LogLevelWarn, false},
		{"error", LogLevelError, false},
		{"off", LogLevelOff, false},
		{"verbose", LogLevelInfo, true},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
		if got != tt.level {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.name, got, tt.level)
		}
	}
}

func TestLogLevel(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{LogLevelDebug, "DEBUG"},
		{LogLevelInfo, "INFO"},
		{LogLevelWarn, "WARN"},
		{LogLevelError, "ERROR"},
		{LogLevelFatal, "FATAL"},
		{LogLevelOff, "OFF"},
		{LogLevel(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.expected {
			t.Errorf("LogLevel.String() = %v, want %v", got, tt.expected)
		}
	}
}

func BenchmarkLogger(b *testing.B) {
	logger := New(bytes.NewBuffer(nil), "BENCH", DefaultFlags)

	b.Run("Enabled", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			logger.Info("Benchmark message %d", i)
		}
	})

	b.Run("Disabled", func(b *testing.B) {
		logger.SetEnabled(false)
		for i := 0; i < b.N; i++ {
			logger.Info("Benchmark message %d", i)
		}
	})

	b.Run("BelowLevel", func(b *testing.B) {
		logger.SetEnabled(true)
		logger.SetLevel(LogLevelError)
		for i := 0; i < b.N; i++ {
			logger.Info("Benchmark message %d", i)
		}
	})
}