// Package solog is a minimal leveled logger, mirroring golang-dep's
// log/logger.go: a thin wrapper around an io.Writer with no formatting
// machinery beyond fmt.
package solog

import (
	"fmt"
	"io"
)

// Logger wraps an io.Writer. The zero value is not usable; use New.
type Logger struct {
	io.Writer
	Verbose bool
}

// New returns a Logger writing to w.
func New(w io.Writer, verbose bool) *Logger {
	return &Logger{Writer: w, Verbose: verbose}
}

// Logln logs a line unconditionally.
func (l *Logger) Logln(args ...interface{}) {
	fmt.Fprintln(l, args...)
}

// Logf logs a formatted string unconditionally.
func (l *Logger) Logf(format string, args ...interface{}) {
	fmt.Fprintf(l, format, args...)
}

// LogSolvefln logs a formatted line prefixed "sukp: ", only when Verbose.
func (l *Logger) LogSolvefln(format string, args ...interface{}) {
	if !l.Verbose {
		return
	}
	fmt.Fprintf(l, "sukp: "+format+"\n", args...)
}
