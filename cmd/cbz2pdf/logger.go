package main

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/alnah/go-cbz2pdf/internal/config"
)

// resolveLogLevel picks the diagnostic level. Flags win over config.
func resolveLogLevel(cfg config.LogConfig, verbose, quiet bool) zerolog.Level {
	switch {
	case verbose:
		return zerolog.DebugLevel
	case quiet:
		return zerolog.ErrorLevel
	}
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || cfg.Level == "" {
		return zerolog.WarnLevel
	}
	return level
}

// newLogger builds the diagnostic logger writing to w.
// Console format is human-readable; json emits one object per line.
func newLogger(w io.Writer, cfg config.LogConfig, verbose, quiet bool) zerolog.Logger {
	out := w
	if !strings.EqualFold(cfg.Format, "json") {
		out = zerolog.ConsoleWriter{Out: w, NoColor: true, TimeFormat: time.TimeOnly}
	}
	return zerolog.New(out).
		Level(resolveLogLevel(cfg, verbose, quiet)).
		With().Timestamp().Logger()
}
