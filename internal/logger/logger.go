// Package logger is a small leveled logger on top of the standard log package.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

// Level controls verbosity.
type Level int

const (
	LevelOff Level = iota
	LevelInfo
	LevelDebug
)

// ParseLevel maps "off", "info" and "debug" (case-insensitive) to a Level.
// Anything else is LevelInfo.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "off", "none", "quiet":
		return LevelOff
	case "debug", "verbose":
		return LevelDebug
	}
	return LevelInfo
}

// Logger writes prefixed lines when the message level is enabled.
// Safe for concurrent use.
type Logger struct {
	mu    sync.RWMutex
	level Level
	out   *log.Logger
}

// New creates a logger writing to out, or to os.Stderr when out is nil.
func New(level Level, out io.Writer) *Logger {
	if out == nil {
		out = os.Stderr
	}
	return &Logger{
		level: level,
		out:   log.New(out, "", log.LstdFlags),
	}
}

// Discard returns a logger that never writes.
func Discard() *Logger {
	return New(LevelOff, io.Discard)
}

// SetLevel changes the level at runtime.
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

func (l *Logger) enabled(level Level) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.level >= level
}

func (l *Logger) write(prefix, format string, args ...any) {
	l.out.Output(3, prefix+fmt.Sprintf(format, args...))
}

// Debug logs only at LevelDebug.
func (l *Logger) Debug(format string, args ...any) {
	if l.enabled(LevelDebug) {
		l.write("[DBG] ", format, args...)
	}
}

// Info logs at LevelInfo and above.
func (l *Logger) Info(format string, args ...any) {
	if l.enabled(LevelInfo) {
		l.write("[INF] ", format, args...)
	}
}

// Warn logs at LevelInfo and above.
func (l *Logger) Warn(format string, args ...any) {
	if l.enabled(LevelInfo) {
		l.write("[WRN] ", format, args...)
	}
}

// Error logs at LevelInfo and above.
func (l *Logger) Error(format string, args ...any) {
	if l.enabled(LevelInfo) {
		l.write("[ERR] ", format, args...)
	}
}
