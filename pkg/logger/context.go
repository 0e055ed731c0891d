package logger

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Context keys shared with the request-id middleware.
const (
	ContextKey          = "logger"
	RequestIDContextKey = "request_id"
	RequestIDHeader     = "X-Request-ID"
)

// FromContext returns the request-scoped logger. When the middleware has not
// run it falls back to the global logger tagged with whatever request id can
// still be recovered.
func FromContext(c echo.Context) *zap.Logger {
	if log, ok := c.Get(ContextKey).(*zap.Logger); ok {
		return log
	}

	requestID, ok := c.Get(RequestIDContextKey).(string)
	if !ok {
		requestID = c.Request().Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = "unknown"
		}
	}

	return GetLogger().With(zap.String("request_id", requestID))
}
