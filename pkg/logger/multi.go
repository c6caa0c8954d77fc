package logger

import (
	"context"
	"errors"
	"log/slog"
)

// Multi returns a *slog.Logger whose records reach every given logger's
// handler. The usual pairing is a pretty terminal logger and a JSON file
// logger.
func Multi(loggers ...*slog.Logger) *slog.Logger {
	hs := make([]slog.Handler, len(loggers))
	for i, l := range loggers {
		hs[i] = l.Handler()
	}
	return slog.New(fanout(hs))
}

// fanout dispatches each record to every handler that wants it.
type fanout []slog.Handler

func (f fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f fanout) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range f {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (f fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make(fanout, len(f))
	for i, h := range f {
		next[i] = h.WithAttrs(attrs)
	}
	return next
}

func (f fanout) WithGroup(name string) slog.Handler {
	next := make(fanout, len(f))
	for i, h := range f {
		next[i] = h.WithGroup(name)
	}
	return next
}
