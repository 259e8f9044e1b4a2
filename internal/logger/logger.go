// Package logger builds the zerolog logger used for diagnostic output.
package logger

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// LevelForVerbosity maps the -v counter to a log level: none is error-only,
// each -v lowers the threshold one step down to trace.
func LevelForVerbosity(verbosity int) zerolog.Level {
	switch {
	case verbosity <= 0:
		return zerolog.ErrorLevel
	case verbosity == 1:
		return zerolog.WarnLevel
	case verbosity == 2:
		return zerolog.InfoLevel
	case verbosity == 3:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

// ParseLevel converts a configured level name, falling back to error for
// anything zerolog does not recognize.
func ParseLevel(s string) zerolog.Level {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil || level == zerolog.NoLevel {
		return zerolog.ErrorLevel
	}
	return level
}

// New returns a human-readable console logger writing to w.
func New(w io.Writer, level zerolog.Level) zerolog.Logger {
	consoleWriter := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.TimeOnly,
	}

	return zerolog.New(consoleWriter).
		Level(level).
		With().
		Timestamp().
		Logger()
}
