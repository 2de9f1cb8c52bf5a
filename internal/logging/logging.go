package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/finshield/console/internal/interfaces"
)

// Logger and Field are re-exported so most packages only import logging.
type Logger = interfaces.Logger
type Field = interfaces.Field

// LineLogger is a tiny, structured logger used during development.
// It implements interfaces.Logger and prints JSON lines to the configured
// writer. The console UI owns stdout, so the default writer is stderr.
type LineLogger struct {
	component string
	out       io.Writer
}

// NewStderrLogger creates a LineLogger writing to stderr. component is
// optional and will be included as a persistent field on With().
func NewStderrLogger(component string) *LineLogger {
	return &LineLogger{component: component, out: os.Stderr}
}

// NewWriterLogger creates a LineLogger writing to an arbitrary writer
// (a log file, a test buffer).
func NewWriterLogger(component string, out io.Writer) *LineLogger {
	if out == nil {
		out = os.Stderr
	}
	return &LineLogger{component: component, out: out}
}

func (l *LineLogger) log(level string, msg string, fields ...interfaces.Field) {
	type outEntry struct {
		Level     string         `json:"level"`
		Msg       string         `json:"msg"`
		Component string         `json:"component,omitempty"`
		Time      string         `json:"time"`
		Fields    map[string]any `json:"fields,omitempty"`
	}
	m := make(map[string]any)
	for _, f := range fields {
		m[f.Key] = f.Value
	}
	entry := outEntry{
		Level:     level,
		Msg:       msg,
		Component: l.component,
		Time:      time.Now().UTC().Format(time.RFC3339),
		Fields:    m,
	}
	enc, err := json.Marshal(entry)
	if err != nil {
		// Fallback simple formatting if JSON marshal fails
		fmt.Fprintf(l.out, "%s %s %v\n", level, msg, m)
		return
	}
	fmt.Fprintln(l.out, string(enc))
}

func (l *LineLogger) Debug(msg string, fields ...interfaces.Field) {
	l.log("debug", msg, fields...)
}

func (l *LineLogger) Info(msg string, fields ...interfaces.Field) {
	l.log("info", msg, fields...)
}

func (l *LineLogger) Warn(msg string, fields ...interfaces.Field) {
	l.log("warn", msg, fields...)
}

func (l *LineLogger) Error(msg string, fields ...interfaces.Field) {
	l.log("error", msg, fields...)
}

func (l *LineLogger) With(fields ...interfaces.Field) interfaces.Logger {
	// create a child logger with the same writer (simple implementation)
	child := &LineLogger{component: l.component, out: l.out}
	// If fields include a component key, prefer that as the component name
	for _, f := range fields {
		if f.Key == "component" {
			if str, ok := f.Value.(string); ok {
				child.component = str
			}
		}
	}
	return child
}
