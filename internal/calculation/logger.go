package calculation

import (
	"fmt"
	"io"
	"log"
	"strings"
)

// Logger is a minimal logging interface for the projection engine and its callers.
// Implementations should be fast; the default is a no-op.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// NopLogger implements Logger with no output.
type NopLogger struct{}

func (NopLogger) Debugf(format string, args ...any) {}
func (NopLogger) Infof(format string, args ...any)  {}
func (NopLogger) Warnf(format string, args ...any)  {}
func (NopLogger) Errorf(format string, args ...any) {}

// Level orders log severities.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	default:
		return "ERROR"
	}
}

// ParseLevel maps a level name (debug, info, warn, error) to a Level.
func ParseLevel(name string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return LevelInfo, fmt.Errorf("unknown log level %q", name)
}

// WriterLogger writes leveled lines to an io.Writer, dropping anything below Min.
type WriterLogger struct {
	Min Level
	out *log.Logger
}

// NewWriterLogger creates a logger writing to w with the given minimum level.
func NewWriterLogger(w io.Writer, min Level) *WriterLogger {
	return &WriterLogger{Min: min, out: log.New(w, "", log.LstdFlags)}
}

func (l *WriterLogger) logf(level Level, format string, args ...any) {
	if level < l.Min {
		return
	}
	l.out.Printf("[%s] %s", level, fmt.Sprintf(format, args...))
}

func (l *WriterLogger) Debugf(format string, args ...any) { l.logf(LevelDebug, format, args...) }
func (l *WriterLogger) Infof(format string, args ...any)  { l.logf(LevelInfo, format, args...) }
func (l *WriterLogger) Warnf(format string, args ...any)  { l.logf(LevelWarn, format, args...) }
func (l *WriterLogger) Errorf(format string, args ...any) { l.logf(LevelError, format, args...) }
