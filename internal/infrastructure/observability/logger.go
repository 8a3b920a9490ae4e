package observability

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/trace"
)

// LogOptions configures the process logger
type LogOptions struct {
	Service string
	Version string
	Env     string
	Level   string
	// APIBaseURL is stamped on every line so logs from frontends pointed at
	// different API deployments can be told apart.
	APIBaseURL string
	// Out defaults to stdout.
	Out io.Writer
}

type loggerKey struct{}

// InitLogger initializes the global zerolog logger
func InitLogger(opts LogOptions) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	lvl, err := zerolog.ParseLevel(opts.Level)
	if err != nil || opts.Level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	var ctx zerolog.Context
	if opts.Env == "development" {
		ctx = zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}).With().Timestamp()
	} else {
		ctx = zerolog.New(out).With().Timestamp().Caller()
	}

	ctx = ctx.Str("service", opts.Service).Str("env", opts.Env)
	if opts.Version != "" {
		ctx = ctx.Str("version", opts.Version)
	}
	if opts.APIBaseURL != "" {
		ctx = ctx.Str("api", opts.APIBaseURL)
	}
	log.Logger = ctx.Logger()
}

// WithLogger returns ctx carrying l for LoggerFromContext
func WithLogger(ctx context.Context, l zerolog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, &l)
}

// LoggerFromContext returns the request logger, or the global one, with
// trace context attached.
func LoggerFromContext(ctx context.Context) *zerolog.Logger {
	logger := log.Logger
	if l, ok := ctx.Value(loggerKey{}).(*zerolog.Logger); ok {
		logger = *l
	}

	span := trace.SpanFromContext(ctx)
	if span.SpanContext().IsValid() {
		logger = logger.With().
			Str("trace_id", span.SpanContext().TraceID().String()).
			Str("span_id", span.SpanContext().SpanID().String()).
			Logger()
	}

	return &logger
}

// GetLogger returns the global logger
func GetLogger() *zerolog.Logger {
	return &log.Logger
}
