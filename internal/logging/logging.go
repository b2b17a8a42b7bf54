// Package logging builds the zerolog logger shared by all commands and
// bridges readout adapter attempts into it.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/redjax/sysreadout/internal/readout"
)

// Base builds a zerolog.Logger with level/format applied per-call.
// format: json|console; level: trace|debug|info|warn|error
//
// Logs go to stderr so they never mix with readout output on stdout.
func Base(app, level, format string) zerolog.Logger {
	return New(os.Stderr, app, level, format)
}

// New is Base writing to w.
func New(w io.Writer, app, level, format string) zerolog.Logger {
	lvl := parseLevel(level)

	return zerolog.New(writerForFormat(w, format)).Level(lvl).With().Timestamp().Str("app", app).Logger()
}

func parseLevel(s string) zerolog.Level {
	if lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s))); err == nil && lvl != zerolog.NoLevel {
		return lvl
	}
	return zerolog.InfoLevel
}

func writerForFormat(w io.Writer, format string) io.Writer {
	if strings.ToLower(strings.TrimSpace(format)) == "console" {
		return zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	}

	return w
}

// Observer returns a readout.Observer that traces every adapter attempt.
// Successes and NotImplemented/MetricNotAvailable failures log at debug,
// Other failures at warn.
func Observer(log *zerolog.Logger) readout.Observer {
	return func(field readout.Field, adapter string, err *readout.Error) {
		if err == nil {
			log.Debug().Str("field", field.String()).Str("adapter", adapter).Msg("adapter succeeded")
			return
		}

		ev := log.Debug()
		if err.Kind == readout.KindOther {
			ev = log.Warn()
		}
		ev.Str("field", field.String()).
			Str("adapter", adapter).
			Stringer("kind", err.Kind).
			Err(err).
			Msg("adapter failed")
	}
}
