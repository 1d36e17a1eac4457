package structlog

import "context"

type ctxKey struct{}

// NewContext returns a copy of ctx carrying l, so request-scoped loggers
// can travel with the request.
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext returns the Logger carried by ctx, or the default logger
// when none is set.
func FromContext(ctx context.Context) *Logger {
	if l, ok := ctx.Value(ctxKey{}).(*Logger); ok {
		return l
	}
	return Default()
}
