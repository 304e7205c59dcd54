// Package logger provides structured logging using zerolog.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Log is the global logger instance
var Log zerolog.Logger

// Init initializes the global logger writing to stdout
func Init(level string, pretty bool) {
	InitWithWriter(os.Stdout, level, pretty)
}

// InitWithWriter initializes the global logger on out with the given level and format
func InitWithWriter(out io.Writer, level string, pretty bool) {
	zerolog.TimeFieldFormat = time.RFC3339

	if pretty {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
		}
	}

	zerolog.SetGlobalLevel(ParseLevel(level))

	Log = zerolog.New(out).
		With().
		Timestamp().
		Caller().
		Logger()
}

// ParseLevel converts a level name to a zerolog level, defaulting to info
func ParseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		return zerolog.InfoLevel
	}
	return lvl
}
