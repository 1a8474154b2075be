// Package util provides low-level helpers shared by all other packages.
package util

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// LogLevel controls output verbosity.
type LogLevel int

const (
	LogQuiet   LogLevel = 0
	LogNormal  LogLevel = 1
	LogVerbose LogLevel = 2
	LogDebug   LogLevel = 3
)

// sink is shared by a Logger and every logger derived with Named, so
// lines from different components never interleave.
type sink struct {
	mu         sync.Mutex
	output     io.Writer
	timestamps bool
}

// Logger writes levelled messages to stderr with optional timestamps,
// level prefixes and a component name.
type Logger struct {
	level LogLevel
	name  string
	out   *sink
}

// NewLogger returns a Logger that prints messages at or below the given
// verbosity (0 = quiet, 1 = normal, 2 = verbose, 3 = debug).
func NewLogger(verbosity int) *Logger {
	return &Logger{
		level: LogLevel(verbosity),
		out: &sink{
			output:     os.Stderr,
			timestamps: verbosity >= 3, // auto-enable timestamps in debug mode
		},
	}
}

// Discard returns a quiet Logger that drops everything except errors,
// and sends those nowhere.  Used when a caller passes a nil logger.
func Discard() *Logger {
	l := NewLogger(0)
	l.SetOutput(io.Discard)
	return l
}

// Named returns a logger sharing this one's output and level whose
// lines carry "name:" after the level prefix.
func (l *Logger) Named(name string) *Logger {
	if l.name != "" {
		name = l.name + "." + name
	}
	return &Logger{level: l.level, name: name, out: l.out}
}

// SetTimestamps enables or disables timestamp prefixes.
func (l *Logger) SetTimestamps(on bool) {
	l.out.mu.Lock()
	l.out.timestamps = on
	l.out.mu.Unlock()
}

// SetOutput overrides the output writer (default: os.Stderr).
func (l *Logger) SetOutput(w io.Writer) {
	l.out.mu.Lock()
	l.out.output = w
	l.out.mu.Unlock()
}

// Level returns the current log level.
func (l *Logger) Level() LogLevel { return l.level }

// Info prints when verbosity ≥ 1.  Prefixed with [INF].
func (l *Logger) Info(format string, args ...interface{}) {
	if l.level >= LogNormal {
		l.write("INF", format, args...)
	}
}

// Warn prints when verbosity ≥ 1.  Prefixed with [WRN].
func (l *Logger) Warn(format string, args ...interface{}) {
	if l.level >= LogNormal {
		l.write("WRN", format, args...)
	}
}

// Verbose prints when verbosity ≥ 2.  Prefixed with [VRB].
func (l *Logger) Verbose(format string, args ...interface{}) {
	if l.level >= LogVerbose {
		l.write("VRB", format, args...)
	}
}

// Debug prints when verbosity ≥ 3.  Prefixed with [DBG].
func (l *Logger) Debug(format string, args ...interface{}) {
	if l.level >= LogDebug {
		l.write("DBG", format, args...)
	}
}

// Error always prints regardless of verbosity.  Prefixed with [ERR].
func (l *Logger) Error(format string, args ...interface{}) {
	l.write("ERR", format, args...)
}

func (l *Logger) write(level, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if l.name != "" {
		msg = l.name + ": " + msg
	}

	l.out.mu.Lock()
	defer l.out.mu.Unlock()

	if l.out.timestamps {
		ts := time.Now().Format("15:04:05.000")
		fmt.Fprintf(l.out.output, "%s [%s] %s\n", ts, level, msg)
	} else {
		fmt.Fprintf(l.out.output, "[%s] %s\n", level, msg)
	}
}
