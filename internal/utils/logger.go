// Package utils holds small shared pieces used across packages.
package utils

// Logger is the logging interface accepted by the core packages. The concrete
// implementation lives in internal/logger; core packages depend only on this
// interface so they stay usable with a silent logger in tests.
type Logger interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}

// NoopLogger discards everything. It is the default of every functional-options
// constructor in this module.
type NoopLogger struct{}

func (NoopLogger) Debug(format string, args ...interface{}) {}
func (NoopLogger) Info(format string, args ...interface{})  {}
func (NoopLogger) Warn(format string, args ...interface{})  {}
func (NoopLogger) Error(format string, args ...interface{}) {}
