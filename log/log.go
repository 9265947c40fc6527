package log

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger is a leveled logger bound to a set of attributes.
type Logger struct {
	zl *zerolog.Logger
}

// AttrOption adds an attribute to a logger context.
type AttrOption func(l zerolog.Context) zerolog.Context

// Scope names the component that logs.
func Scope(s string) AttrOption {
	return func(l zerolog.Context) zerolog.Context {
		return l.Str("s", s)
	}
}

// Operation names the operation being logged.
func Operation(op string) AttrOption {
	return func(l zerolog.Context) zerolog.Context {
		return l.Str("op", op)
	}
}

// Name identifies a list instance.
func Name(name string) AttrOption {
	return func(l zerolog.Context) zerolog.Context {
		return l.Str("list", name)
	}
}

// Worker identifies a fuzz worker.
func Worker(id int) AttrOption {
	return func(l zerolog.Context) zerolog.Context {
		return l.Int("worker", id)
	}
}

// InitGlobals builds the process logger and installs it as the fallback for
// contexts that carry none.
func InitGlobals(level zerolog.Level, json, noColor bool) *zerolog.Logger {
	var w io.Writer = os.Stderr
	if !json {
		w = zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
			w.Out = os.Stderr
			w.NoColor = noColor
			w.TimeFormat = time.DateTime
		})
	}

	l := zerolog.New(w).Level(level).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &l

	return &l
}

// New returns a logger for scope derived from the global logger.
func New(scope string) *Logger {
	base := zerolog.DefaultContextLogger
	if base == nil {
		nop := zerolog.Nop()
		base = &nop
	}

	l := base.With().Str("s", scope).Logger()

	return &Logger{zl: &l}
}

// Ctx returns the logger carried by ctx.
func Ctx(ctx context.Context) *Logger {
	return &Logger{zl: zerolog.Ctx(ctx)}
}

// WithAttrs returns a copy of ctx whose logger carries the given attributes.
func WithAttrs(ctx context.Context, opts ...AttrOption) context.Context {
	return Ctx(ctx).With(opts...).WithContext(ctx)
}

// With returns a child logger with the given attributes.
func (l *Logger) With(opts ...AttrOption) *Logger {
	c := l.zl.With()
	for _, opt := range opts {
		c = opt(c)
	}

	zl := c.Logger()

	return &Logger{zl: &zl}
}

// WithContext stores the logger in ctx.
func (l *Logger) WithContext(ctx context.Context) context.Context {
	return l.zl.WithContext(ctx)
}

// Enabled reports whether messages at level would be written.
func (l *Logger) Enabled(level zerolog.Level) bool {
	return l.zl.GetLevel() <= level && zerolog.GlobalLevel() <= level
}

func (l *Logger) Trace(msg string) {
	l.zl.Trace().Msg(msg)
}

func (l *Logger) Tracef(msg string, args ...any) {
	l.zl.Trace().Msgf(msg, args...)
}

func (l *Logger) Debug(msg string) {
	l.zl.Debug().Msg(msg)
}

func (l *Logger) Debugf(msg string, args ...any) {
	l.zl.Debug().Msgf(msg, args...)
}

func (l *Logger) Info(msg string) {
	l.zl.Info().Msg(msg)
}

func (l *Logger) Infof(msg string, args ...any) {
	l.zl.Info().Msgf(msg, args...)
}

func (l *Logger) Warn(msg string) {
	l.zl.Warn().Msg(msg)
}

func (l *Logger) Warnf(msg string, args ...any) {
	l.zl.Warn().Msgf(msg, args...)
}

func (l *Logger) Error(err error, msg string) {
	l.zl.Error().Err(err).Msg(msg)
}

func (l *Logger) Errorf(err error, msg string, args ...any) {
	l.zl.Error().Err(err).Msgf(msg, args...)
}

// Fatal logs at fatal level and exits the process.
func (l *Logger) Fatal(err error, msg string) {
	l.zl.Fatal().Err(err).Msg(msg)
}
