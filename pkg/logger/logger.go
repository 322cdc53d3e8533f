// Package logger owns the process-wide zerolog logger and the request-scoped
// loggers derived from it.
//
// Init builds the base logger once at startup. Middleware stores per-request
// children with WithContext; code below the handlers reads them back with
// FromContext.
package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const defaultService = "timetracker"

// Options controls logger behaviour at initialisation time.
type Options struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Defaults to "info" when empty or unrecognised.
	Level string
	// Pretty switches to coloured console output. Production emits JSON.
	Pretty bool
	// Service is stamped on every line. Defaults to "timetracker".
	Service string
	// Env is stamped on every line when set.
	Env string
	// Output defaults to os.Stdout.
	Output io.Writer
}

var (
	mu   sync.RWMutex
	base *zerolog.Logger
)

// Init builds the process logger. Only the first call has any effect; later
// calls return the logger built by the first.
func Init(opts Options) zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if base != nil {
		return *base
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	if opts.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
	service := opts.Service
	if service == "" {
		service = defaultService
	}

	lvl := parseLevel(opts.Level)
	zerolog.SetGlobalLevel(lvl)

	lc := zerolog.New(out).Level(lvl).With().Timestamp().Str("service", service)
	if opts.Env != "" {
		lc = lc.Str("env", opts.Env)
	}
	l := lc.Logger()
	base = &l
	return l
}

// WithContext returns a copy of ctx carrying l.
func WithContext(ctx context.Context, l zerolog.Logger) context.Context {
	return l.WithContext(ctx)
}

// FromContext returns the request-scoped logger stored by WithContext,
// falling back to the process logger, or a no-op logger before Init.
func FromContext(ctx context.Context) zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return *l
	}
	mu.RLock()
	defer mu.RUnlock()
	if base != nil {
		return *base
	}
	return zerolog.Nop()
}

//	"trace" → TraceLevel
//	"debug" → DebugLevel
//	"info"  → InfoLevel (default)
//	"warn"  → WarnLevel
//	"error" → ErrorLevel
func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
