// Package logger provides opinionated logging for the recall engine.
//
// Loggers are standard *slog.Logger instances so every package depends only
// on the stdlib interface; the handler behind one is chosen here: a pretty
// charmbracelet handler for CLI use, slog's text handler by default, or
// JSON for structured service logs.
package logger

import (
	"context"
	"log/slog"
	"os"

	charmlog "github.com/charmbracelet/log"
)

// New creates a *slog.Logger from the given options. With no options it
// logs text at Info level to stdout.
func New(opts ...Option) *slog.Logger {
	s := &settings{
		level: slog.LevelInfo,
		out:   os.Stdout,
	}

	for _, opt := range opts {
		opt(s)
	}

	var handler slog.Handler
	switch s.format {
	case formatPretty:
		handler = charmlog.NewWithOptions(s.out, charmlog.Options{
			Level:           charmLevel(s.level),
			ReportCaller:    s.source,
			ReportTimestamp: true,
		})

	case formatJSON:
		handler = slog.NewJSONHandler(s.out, &slog.HandlerOptions{
			Level:     s.level,
			AddSource: s.source,
		})

	default:
		handler = slog.NewTextHandler(s.out, &slog.HandlerOptions{
			Level:     s.level,
			AddSource: s.source,
		})
	}

	return slog.New(handler)
}

// Nop returns a logger that discards every record. Useful as a default in
// tests and for components that accept but do not require a logger.
func Nop() *slog.Logger {
	return slog.New(nopHandler{})
}

type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func charmLevel(level slog.Level) charmlog.Level {
	switch {
	case level <= slog.LevelDebug:
		return charmlog.DebugLevel
	case level <= slog.LevelInfo:
		return charmlog.InfoLevel
	case level <= slog.LevelWarn:
		return charmlog.WarnLevel
	}
	return charmlog.ErrorLevel
}
