// Package logger provides the leveled stderr logger used by the CLI.
package logger

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
)

// Level defines log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelNone
)

// Logger writes timestamped, leveled messages. All output goes to a single
// writer (normally stderr) so document output on stdout stays clean.
type Logger struct {
	out       io.Writer
	useColors bool
	level     Level
}

// New creates a Logger at Info level, or Debug level when verbose is set.
func New(out io.Writer, verbose bool, useColors bool) *Logger {
	level := LevelInfo
	if verbose {
		level = LevelDebug
	}
	return &Logger{out: out, useColors: useColors, level: level}
}

// WithLevel sets the level and returns the logger.
func (l *Logger) WithLevel(level Level) *Logger {
	l.level = level
	return l
}

// SetLevel sets the level from its string name ("debug", "info", "warn",
// "error", "none"). Unknown names fall back to Info.
func (l *Logger) SetLevel(name string) {
	l.WithLevel(parseLevel(name))
}

func parseLevel(name string) Level {
	switch strings.ToLower(name) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	case "none", "off":
		return LevelNone
	default:
		return LevelInfo
	}
}

func (l *Logger) Debug(format string, args ...interface{}) {
	l.log(LevelDebug, "DEBUG", color.CyanString, format, args...)
}

func (l *Logger) Info(format string, args ...interface{}) {
	l.log(LevelInfo, "INFO", color.BlueString, format, args...)
}

func (l *Logger) Warn(format string, args ...interface{}) {
	l.log(LevelWarn, "WARN", color.YellowString, format, args...)
}

func (l *Logger) Error(format string, args ...interface{}) {
	l.log(LevelError, "ERROR", color.RedString, format, args...)
}

func (l *Logger) log(level Level, prefix string, paint func(string, ...interface{}) string, format string, args ...interface{}) {
	if l.level > level {
		return
	}
	if l.useColors {
		prefix = paint(prefix)
	}
	fmt.Fprintf(l.out, "[%s %s] %s\n", time.Now().Format("15:04:05.000"), prefix, fmt.Sprintf(format, args...))
}
