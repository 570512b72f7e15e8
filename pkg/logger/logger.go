// Package logger builds the zerolog loggers used across the service.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	FormatPlain = "plain"
	FormatJSON  = "json"

	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// New returns a logger writing to w at the given level. Format "plain" is a
// human readable console line, "json" is one JSON object per line.
func New(format, level string, w io.Writer) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q", level)
	}

	switch strings.ToLower(format) {
	case FormatJSON:
	case FormatPlain, "":
		w = zerolog.ConsoleWriter{Out: w, NoColor: true, TimeFormat: time.RFC3339}
	default:
		return zerolog.Nop(), fmt.Errorf("unsupported log format %q", format)
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger(), nil
}

// MustNew is New writing to stderr, falling back to info/plain on bad input.
func MustNew(format, level string) zerolog.Logger {
	l, err := New(format, level, os.Stderr)
	if err != nil {
		l, _ = New(FormatPlain, LevelInfo, os.Stderr)
		l.Warn().Err(err).Msg("falling back to default logger")
	}
	return l
}
