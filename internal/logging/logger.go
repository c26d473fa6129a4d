// Package logging configures the structured logger used by the command line
// tools. It uses environment variables for configuration.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// NewLoggerWithWriter creates a new logger with the provided writer.
//
// BPFASM_LOG_LEVEL: debug, info, warn, error (default: info)
// BPFASM_LOG_PREFIX: prefix for log messages (default: the program name)
func NewLoggerWithWriter(w io.Writer, name string) *log.Logger {
	lg := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
	})

	level, err := log.ParseLevel(os.Getenv("BPFASM_LOG_LEVEL"))
	if err != nil {
		level = log.InfoLevel
	}
	lg.SetLevel(level)

	prefix := os.Getenv("BPFASM_LOG_PREFIX")
	if prefix == "" {
		prefix = name
	}

	return lg.WithPrefix(prefix)
}

// NewLogger creates a new logger on stderr and makes it the default.
func NewLogger(name string) *log.Logger {
	lg := NewLoggerWithWriter(os.Stderr, name)
	log.SetDefault(lg)
	return lg
}
