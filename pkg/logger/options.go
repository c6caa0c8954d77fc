package logger

import (
	"io"
	"log/slog"
)

// settings collects everything New needs before it picks a handler.
type settings struct {
	level  slog.Level
	format format
	source bool
	out    io.Writer
}

type format int

const (
	formatText format = iota
	formatJSON
	formatPretty
)

// Option configures a logger created with New.
type Option func(*settings)

// WithDebug lowers the level to Debug. False leaves it at Info.
func WithDebug(debug bool) Option {
	return func(s *settings) {
		if debug {
			s.level = slog.LevelDebug
		}
	}
}

// WithJSON switches to slog's JSON handler for structured output.
func WithJSON(json bool) Option {
	return func(s *settings) {
		if json {
			s.format = formatJSON
		}
	}
}

// WithPretty switches to the charmbracelet handler for colorized CLI
// output. Takes precedence over WithJSON when both are set.
func WithPretty(pretty bool) Option {
	return func(s *settings) {
		if pretty {
			s.format = formatPretty
		}
	}
}

// WithWriter redirects output. The default is os.Stdout.
func WithWriter(w io.Writer) Option {
	return func(s *settings) {
		s.out = w
	}
}

// WithWriters duplicates output across several writers, typically a
// terminal plus a log file.
func WithWriters(w ...io.Writer) Option {
	return func(s *settings) {
		s.out = io.MultiWriter(w...)
	}
}

// WithSource annotates records with the caller's file:line.
func WithSource(source bool) Option {
	return func(s *settings) {
		s.source = source
	}
}
