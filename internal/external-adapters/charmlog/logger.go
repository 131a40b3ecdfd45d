// Package charmlog adapts charmbracelet/log to the domain Logger contract.
package charmlog

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/rewintool/rewin/internal/domain/interfaces"
)

// Logger implements interfaces.Logger on top of charmbracelet/log
type Logger struct {
	inner *log.Logger
}

// New creates a logger writing to stderr. verbose enables debug output.
func New(verbose bool) *Logger {
	inner := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
	})
	if verbose {
		inner.SetLevel(log.DebugLevel)
	}
	return &Logger{inner: inner}
}

// Debug logs debug-level messages
func (l *Logger) Debug(msg string, fields ...interfaces.Field) {
	l.inner.Debug(msg, kv(fields)...)
}

// Info logs informational messages
func (l *Logger) Info(msg string, fields ...interfaces.Field) {
	l.inner.Info(msg, kv(fields)...)
}

// Warn logs warning messages
func (l *Logger) Warn(msg string, fields ...interfaces.Field) {
	l.inner.Warn(msg, kv(fields)...)
}

// Error logs error messages
func (l *Logger) Error(msg string, fields ...interfaces.Field) {
	l.inner.Error(msg, kv(fields)...)
}

func kv(fields []interfaces.Field) []interface{} {
	out := make([]interface{}, 0, len(fields)*2)
	for _, f := range fields {
		out = append(out, f.Key, f.Value)
	}
	return out
}
