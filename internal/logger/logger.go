package logger

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
)

type ctxKey string

const (
	requestIDKey ctxKey = "requestID"
	gatherIDKey  ctxKey = "gatherID"
)

// InitLogger installs the process-wide slog logger writing to stdout
func InitLogger(cfg Config) {
	InitLoggerWithWriter(cfg, os.Stdout)
}

// InitLoggerWithWriter installs the process-wide slog logger writing to w.
// Base attributes (service, version, environment) are attached to every record.
func InitLoggerWithWriter(cfg Config, w io.Writer) {
	opts := &slog.HandlerOptions{
		Level:     cfg.LogLevel(),
		AddSource: cfg.AddSource,
	}

	var handler slog.Handler
	if cfg.IsJSON() {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	attrs := cfg.BaseAttributes()
	args := make([]any, 0, len(attrs))
	for _, a := range attrs {
		args = append(args, a)
	}
	slog.SetDefault(slog.New(handler).With(args...))
}

// GenerateRequestID creates a new UUID for tracing requests.
func GenerateRequestID() string {
	return uuid.NewString()
}

// WithRequestID returns a new context containing the request ID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// GetRequestID returns the request ID stored in ctx, or "".
func GetRequestID(ctx context.Context) string {
	id, _ := stringFromContext(ctx, requestIDKey)
	return id
}

// WithGatherID returns a context tagged with a fresh gather trace id.
// Every log line emitted while resolving one host event carries it.
func WithGatherID(ctx context.Context) context.Context {
	return context.WithValue(ctx, gatherIDKey, uuid.NewString())
}

// GetGatherID returns the gather trace id stored in ctx, or "".
func GetGatherID(ctx context.Context) string {
	id, _ := stringFromContext(ctx, gatherIDKey)
	return id
}

func stringFromContext(ctx context.Context, key ctxKey) (string, bool) {
	if ctx == nil {
		return "", false
	}
	v := ctx.Value(key)
	if v == nil {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// FromContext returns a logger that includes request_id / gather_id when present.
func FromContext(ctx context.Context) *slog.Logger {
	log := slog.Default()
	if id, ok := stringFromContext(ctx, requestIDKey); ok {
		log = log.With(AttrKeyRequestID, id)
	}
	if id, ok := stringFromContext(ctx, gatherIDKey); ok {
		log = log.With(AttrKeyGatherID, id)
	}
	return log
}

// Debug logs at debug level on the default logger
func Debug(msg string, args ...any) { slog.Default().Debug(msg, args...) }

// Info logs at info level on the default logger
func Info(msg string, args ...any) { slog.Default().Info(msg, args...) }

// Warn logs at warn level on the default logger
func Warn(msg string, args ...any) { slog.Default().Warn(msg, args...) }

// Error logs at error level on the default logger
func Error(msg string, args ...any) { slog.Default().Error(msg, args...) }
