package logger

import (
	"io"
	"log"
	"os"
)

// Logger is the printf style logger accepted by the input and schemafile packages.
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Error(format string, args ...any)
}

// Level filters which messages DefaultLogger emits.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelError
)

var LoggerEnabled = true

// DefaultLogger writes "[LEVEL] name | message" lines through the standard log package.
type DefaultLogger struct {
	name  string
	level Level
	out   *log.Logger
}

// NewDefaultLogger returns a logger tagged with name that writes to stderr.
func NewDefaultLogger(name string) *DefaultLogger {
	return NewWriterLogger(name, os.Stderr)
}

// NewWriterLogger is NewDefaultLogger writing to w.
func NewWriterLogger(name string, w io.Writer) *DefaultLogger {
	return &DefaultLogger{
		name:  name,
		level: LevelDebug,
		out:   log.New(w, "", log.LstdFlags),
	}
}

// WithLevel drops messages below level.
func (d *DefaultLogger) WithLevel(level Level) *DefaultLogger {
	d.level = level
	return d
}

func (d *DefaultLogger) Debug(format string, args ...any) {
	d.print(LevelDebug, "[DEBUG] ", format, args...)
}

func (d *DefaultLogger) Info(format string, args ...any) {
	d.print(LevelInfo, "[INFO] ", format, args...)
}

func (d *DefaultLogger) Error(format string, args ...any) {
	d.print(LevelError, "[ERROR] ", format, args...)
}

func (d *DefaultLogger) print(level Level, tag, format string, args ...any) {
	if !LoggerEnabled || level < d.level {
		return
	}
	d.out.Printf(tag+d.name+" | "+format+"\n", args...)
}

// Nop discards everything.
type Nop struct{}

func (Nop) Debug(string, ...any) {}
func (Nop) Info(string, ...any)  {}
func (Nop) Error(string, ...any) {}
