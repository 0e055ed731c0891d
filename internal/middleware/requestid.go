package middleware

import (
	"backoffice-service/pkg/logger"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// RequestIDMiddleware tags each request with an id and a request-scoped
// logger. An id supplied by an upstream proxy is kept; otherwise a fresh
// one is minted.
func RequestIDMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := c.Request().Header.Get(logger.RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		c.Response().Header().Set(logger.RequestIDHeader, requestID)
		c.Set(logger.RequestIDContextKey, requestID)
		c.Set(logger.ContextKey, logger.GetLogger().With(zap.String("request_id", requestID)))

		return next(c)
	}
}
