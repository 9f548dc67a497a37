// Package logger owns the process zerolog logger and its request scoped children
package logger

import (
	"context"
	"io"
	"os"
	"sync"
	"time"

	"github.com/benya7/rss3-widget/internal/platform/config/raw"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

// Logger is zerolog's logger
type Logger = zerolog.Logger

// Options configures the root logger
type Options struct {
	// Level is a zerolog level name; unknown names mean debug
	Level string
	// Format is console or json
	Format  string
	Service string
	Caller  bool
	// Writer defaults to stdout
	Writer io.Writer
}

// FromEnv reads LOG_LEVEL, LOG_FORMAT, LOG_SERVICE and LOG_CALLER
func FromEnv() Options {
	rc := raw.New().Prefix("LOG_")
	return Options{
		Level:   rc.Get("LEVEL", "debug"),
		Format:  rc.Get("FORMAT", "console"),
		Service: rc.Get("SERVICE", ""),
		Caller:  rc.GetBool("CALLER", false),
	}
}

var (
	once sync.Once
	root Logger
)

// Init sets up the root logger. Only the first call counts, including the implicit one in Get
func Init(opt Options) {
	once.Do(func() {
		zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
		zerolog.TimeFieldFormat = time.RFC3339Nano
		root = New(opt)
	})
}

// New builds a logger from opt without touching the root
func New(opt Options) Logger {
	w := opt.Writer
	if w == nil {
		w = os.Stdout
	}
	if opt.Format != "json" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: opt.Writer != nil}
	}
	lvl, err := zerolog.ParseLevel(opt.Level)
	if err != nil || opt.Level == "" {
		lvl = zerolog.DebugLevel
	}
	c := zerolog.New(w).Level(lvl).With().Timestamp()
	if opt.Service != "" {
		c = c.Str("service", opt.Service)
	}
	if opt.Caller {
		c = c.Caller()
	}
	return c.Logger()
}

// Get returns the root logger, initializing it from the environment if needed
func Get() *Logger {
	Init(FromEnv())
	return &root
}

// Named returns a child tagged with component
func Named(component string) *Logger {
	l := Get().With().Str("component", component).Logger()
	return &l
}

type ctxKey int

const (
	keyRequest ctxKey = iota
	keySession
)

// WithRequest stores the ids C tags lines with. Empty ids are skipped
func WithRequest(ctx context.Context, reqID, sessionID string) context.Context {
	if reqID != "" {
		ctx = context.WithValue(ctx, keyRequest, reqID)
	}
	if sessionID != "" {
		ctx = context.WithValue(ctx, keySession, sessionID)
	}
	return ctx
}

// C returns a child of the root carrying request_id and session_id from ctx
func C(ctx context.Context) *Logger {
	c := Get().With()
	if v, _ := ctx.Value(keyRequest).(string); v != "" {
		c = c.Str("request_id", v)
	}
	if v, _ := ctx.Value(keySession).(string); v != "" {
		c = c.Str("session_id", v)
	}
	l := c.Logger()
	return &l
}
