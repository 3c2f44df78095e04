package logger

import (
	"context"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// echoKey is the echo.Context key under which the request middleware
// stores the per-request logger.
const echoKey = "logger"

type ctxKey struct{}

// FromEcho returns the request-scoped logger stored on the Echo context,
// falling back to the global logger outside a request.
func FromEcho(c echo.Context) *zap.Logger {
	if log, ok := c.Get(echoKey).(*zap.Logger); ok {
		return log
	}
	return GetLogger()
}

// WithContext returns a context carrying the given logger.
func WithContext(ctx context.Context, log *zap.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

// FromContext returns the logger carried by ctx, or the global logger
// when none was attached.
func FromContext(ctx context.Context) *zap.Logger {
	if log, ok := ctx.Value(ctxKey{}).(*zap.Logger); ok {
		return log
	}
	return GetLogger()
}
