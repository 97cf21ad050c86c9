package ulogger

import (
	"io"
	"os"
)

// Options configures a Logger constructed via New, NewGoCoreLogger or NewZeroLogger.
type Options struct {
	logLevel      string
	skip          int
	skipIncrement int
	writer        io.Writer
	loggerType    string
}

// Option mutates an Options during logger construction.
type Option func(*Options)

// DefaultOptions returns the baseline Options used when no Option is supplied.
func DefaultOptions() *Options {
	return &Options{
		logLevel:   "INFO",
		skip:       0,
		writer:     os.Stdout,
		loggerType: "zerolog",
	}
}

// WithLevel sets the minimum log level ("DEBUG", "INFO", "WARN", "ERROR", "FATAL").
func WithLevel(level string) Option {
	return func(o *Options) {
		o.logLevel = level
	}
}

// WithSkipFrame sets the skip-frame count a GoCoreLogger carries; the zerolog
// logger ignores it.
func WithSkipFrame(skip int) Option {
	return func(o *Options) {
		o.skip = skip
	}
}

// WithSkipFrameIncrement adds n skipped stack frames on top of whatever a
// Duplicate call's source logger already carries. Only positive values take
// effect; this is additive, unlike WithSkipFrame which replaces the count.
func WithSkipFrameIncrement(n int) Option {
	return func(o *Options) {
		o.skipIncrement = n
	}
}

// WithWriter sets the destination of the zerolog logger's raw JSON output;
// the pretty console output always goes to os.Stdout, and the gocore logger
// ignores it.
func WithWriter(w io.Writer) Option {
	return func(o *Options) {
		o.writer = w
	}
}

// WithLoggerType selects the backing implementation: "gocore" selects the
// gocore logger, and any other value selects zerolog (the default).
func WithLoggerType(loggerType string) Option {
	return func(o *Options) {
		o.loggerType = loggerType
	}
}
