// Package logger provides a simple logging interface for hwmon components.
// It allows packages to log debug, info, warn, and error messages without
// being coupled to a specific logging implementation.
package logger

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"sync/atomic"
)

// DebugEnv is the environment variable that enables debug output.
const DebugEnv = "HWMON_DEBUG"

// Logger defines the interface for logging operations.
// All methods accept a format string and arguments, similar to fmt.Printf.
type Logger interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}

var forceDebug atomic.Bool

// SetDebug forces debug output on regardless of HWMON_DEBUG.
// The CLI calls this for --verbose.
func SetDebug(enabled bool) {
	forceDebug.Store(enabled)
}

// DebugEnabled reports whether debug messages are currently printed.
func DebugEnabled() bool {
	return forceDebug.Load() || os.Getenv(DebugEnv) != ""
}

// envLogger implements Logger and logs through the standard log package.
// Debug messages are only printed when HWMON_DEBUG is set or SetDebug(true) was called.
type envLogger struct {
	prefix string
}

// NewEnvLogger creates a logger that respects the HWMON_DEBUG environment variable.
// The prefix is prepended to all log messages (e.g., "[sync]" or "[ws]").
func NewEnvLogger(prefix string) Logger {
	return &envLogger{prefix: prefix}
}

func (l *envLogger) Debug(format string, args ...interface{}) {
	if DebugEnabled() {
		log.Printf(l.prefix+" "+format, args...)
	}
}

func (l *envLogger) Info(format string, args ...interface{}) {
	log.Printf(l.prefix+" "+format, args...)
}

func (l *envLogger) Warn(format string, args ...interface{}) {
	log.Printf(l.prefix+" WARN: "+format, args...)
}

func (l *envLogger) Error(format string, args ...interface{}) {
	log.Printf(l.prefix+" ERROR: "+format, args...)
}

// noopLogger implements Logger but discards all messages.
type noopLogger struct{}

// Noop returns a logger that discards all messages.
func Noop() Logger {
	return &noopLogger{}
}

func (l *noopLogger) Debug(format string, args ...interface{}) {}
func (l *noopLogger) Info(format string, args ...interface{})  {}
func (l *noopLogger) Warn(format string, args ...interface{})  {}
func (l *noopLogger) Error(format string, args ...interface{}) {}

// LogMessage represents a captured log message.
type LogMessage struct {
	Level   string
	Message string
}

// BufferLogger captures log messages for testing.
// It is safe for concurrent use since the sync controller logs from its own goroutine.
type BufferLogger struct {
	mu       sync.Mutex
	messages []LogMessage
}

// NewBufferLogger creates a logger that captures messages for inspection.
func NewBufferLogger() *BufferLogger {
	return &BufferLogger{}
}

func (l *BufferLogger) add(level, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, LogMessage{Level: level, Message: fmt.Sprintf(format, args...)})
}

func (l *BufferLogger) Debug(format string, args ...interface{}) { l.add("debug", format, args...) }
func (l *BufferLogger) Info(format string, args ...interface{})  { l.add("info", format, args...) }
func (l *BufferLogger) Warn(format string, args ...interface{})  { l.add("warn", format, args...) }
func (l *BufferLogger) Error(format string, args ...interface{}) { l.add("error", format, args...) }

// Messages returns a copy of everything captured so far.
func (l *BufferLogger) Messages() []LogMessage {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]LogMessage, len(l.messages))
	copy(out, l.messages)
	return out
}

// HasLevel returns true if any message was logged at the given level.
func (l *BufferLogger) HasLevel(level string) bool {
	for _, m := range l.Messages() {
		if m.Level == level {
			return true
		}
	}
	return false
}

// Contains returns true if a message at level contains substr.
func (l *BufferLogger) Contains(level, substr string) bool {
	for _, m := range l.Messages() {
		if m.Level == level && strings.Contains(m.Message, substr) {
			return true
		}
	}
	return false
}

// Clear removes all captured messages.
func (l *BufferLogger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = l.messages[:0]
}

var (
	defaultMu     sync.RWMutex
	defaultLogger = NewEnvLogger("")
)

// Default returns the default logger for the package.
// This is an environment-based logger with no prefix.
func Default() Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetDefault sets the default logger for the package.
func SetDefault(l Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = l
}
