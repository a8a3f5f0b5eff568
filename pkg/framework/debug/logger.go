// Package debug provides logging and profiling for processors and their hosts.
package debug

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
)

// LogLevel represents the severity of a log message.
type LogLevel int

const (
	// LogLevelDebug is for detailed debugging information.
	LogLevelDebug LogLevel = iota
	// LogLevelInfo is for general informational messages.
	LogLevelInfo
	// LogLevelWarn is for warning messages.
	LogLevelWarn
	// LogLevelError is for error messages.
	LogLevelError
	// LogLevelFatal is for fatal errors that should terminate the plugin.
	LogLevelFatal
	// LogLevelOff disables all logging.
	LogLevelOff
)

// String returns the string representation of the log level.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	case LogLevelFatal:
		return "FATAL"
	case LogLevelOff:
		return "OFF"
	default:
		return "UNKNOWN"
	}
}

// sink is the output and threshold a logger shares with its components.
type sink struct {
	mu      sync.Mutex
	output  io.Writer
	level   LogLevel
	enabled bool
}

// Logger is a leveled logger safe for concurrent use. It must never be
// called from an audio callback. Loggers returned by Component share the
// output, level and enabled state of their parent, so changing any of them
// on the parent changes them for every component.
type Logger struct {
	sink   *sink
	prefix string
	flags  int // guarded by sink.mu
}

// Flags for logger output formatting.
const (
	FlagTime      = 1 << iota // timestamp
	FlagShortFile             // file base name and line
	FlagLongFile              // full file path and line
	FlagLevel
	FlagPrefix
)

// DefaultFlags are the default formatting flags.
const DefaultFlags = FlagTime | FlagShortFile | FlagLevel | FlagPrefix

const timeLayout = "2006-01-02 15:04:05.000 "

var defaultLogger = New(os.Stderr, "", DefaultFlags)

// New creates a logger writing messages at LogLevelInfo and above.
func New(output io.Writer, prefix string, flags int) *Logger {
	return &Logger{
		sink: &sink{
			output:  output,
			level:   LogLevelInfo,
			enabled: true,
		},
		prefix: prefix,
		flags:  flags,
	}
}

// ParseLevel converts a level name such as "debug" or "WARN" to a LogLevel.
func ParseLevel(name string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return LogLevelDebug, nil
	case "info", "":
		return LogLevelInfo, nil
	case "warn", "warning":
		return LogLevelWarn, nil
	case "error":
		return LogLevelError, nil
	case "fatal":
		return LogLevelFatal, nil
	case "off", "none":
		return LogLevelOff, nil
	}
	return LogLevelInfo, errors.Errorf("unknown log level %q", name)
}

// Component returns a logger for one component, writing through l under its
// own prefix.
func (l *Logger) Component(prefix string) *Logger {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	return &Logger{sink: l.sink, prefix: prefix, flags: l.flags}
}

// OpenFile redirects l, and every component sharing its output, to the
// named file. The caller closes the returned file when done logging.
func (l *Logger) OpenFile(filename string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return nil, errors.Wrap(err, "create log directory")
	}

	file, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, errors.Wrap(err, "open log file")
	}
	l.SetOutput(file)
	return file, nil
}

// Level returns the minimum level that is written.
func (l *Logger) Level() LogLevel {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	return l.sink.level
}

// SetOutput sets the output destination.
func (l *Logger) SetOutput(w io.Writer) {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	l.sink.output = w
}

// SetLevel sets the minimum log level.
func (l *Logger) SetLevel(level LogLevel) {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	l.sink.level = level
}

// SetFlags sets the output formatting flags of l only.
func (l *Logger) SetFlags(flags int) {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	l.flags = flags
}

// SetEnabled enables or disables the logger.
func (l *Logger) SetEnabled(enabled bool) {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	l.sink.enabled = enabled
}

// IsEnabled returns whether the logger is enabled.
func (l *Logger) IsEnabled() bool {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	return l.sink.enabled
}

// log formats one line. depth is the number of frames between the caller
// being reported and log itself.
func (l *Logger) log(depth int, level LogLevel, format string, args ...any) {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()

	if !l.sink.enabled || level < l.sink.level {
		return
	}

	var sb strings.Builder
	if l.flags&FlagTime != 0 {
		sb.WriteString(time.Now().Format(timeLayout))
	}
	if l.flags&FlagLevel != 0 {
		fmt.Fprintf(&sb, "[%s] ", level)
	}
	if l.flags&FlagPrefix != 0 && l.prefix != "" {
		fmt.Fprintf(&sb, "[%s] ", l.prefix)
	}
	if l.flags&(FlagShortFile|FlagLongFile) != 0 {
		if _, file, line, ok := runtime.Caller(depth + 1); ok {
			if l.flags&FlagShortFile != 0 {
				file = filepath.Base(file)
			}
			fmt.Fprintf(&sb, "%s:%d: ", file, line)
		}
	}

	fmt.Fprintf(&sb, format, args...)
	if !strings.HasSuffix(sb.String(), "\n") {
		sb.WriteByte('\n')
	}

	io.WriteString(l.sink.output, sb.String())
}

// Debug logs a debug message.
func (l *Logger) Debug(format string, args ...any) {
	l.log(1, LogLevelDebug, format, args...)
}

// Info logs an informational message.
func (l *Logger) Info(format string, args ...any) {
	l.log(1, LogLevelInfo, format, args...)
}

// Warn logs a warning message.
func (l *Logger) Warn(format string, args ...any) {
	l.log(1, LogLevelWarn, format, args...)
}

// Error logs an error message.
func (l *Logger) Error(format string, args ...any) {
	l.log(1, LogLevelError, format, args...)
}

// Fatal logs a fatal error message and panics with it.
func (l *Logger) Fatal(format string, args ...any) {
	l.log(1, LogLevelFatal, format, args...)
	panic(fmt.Sprintf(format, args...))
}

// Default returns the package logger. Component loggers created by the
// package-level Component follow its level and output.
func Default() *Logger {
	return defaultLogger
}

// SetOutput sets the output destination for the default logger.
func SetOutput(w io.Writer) {
	defaultLogger.SetOutput(w)
}

// SetLevel sets the minimum log level for the default logger.
func SetLevel(level LogLevel) {
	defaultLogger.SetLevel(level)
}

// SetEnabled enables or disables the default logger.
func SetEnabled(enabled bool) {
	defaultLogger.SetEnabled(enabled)
}

// Package-level logging through the default logger

func Debug(format string, args ...any) {
	defaultLogger.log(1, LogLevelDebug, format, args...)
}

func Info(format string, args ...any) {
	defaultLogger.log(1, LogLevelInfo, format, args...)
}

func Warn(format string, args ...any) {
	defaultLogger.log(1, LogLevelWarn, format, args...)
}

func Error(format string, args ...any) {
	defaultLogger.log(1, LogLevelError, format, args...)
}

// Component returns a component logger derived from the default logger.
func Component(prefix string) *Logger {
	return defaultLogger.Component(prefix)
}
