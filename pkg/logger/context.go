package logger

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// RequestIDKey is the context key under which RequestIDMiddleware stores
// the generated request id.
const RequestIDKey = "request_id"

// FromContext returns the request-scoped logger prepared by
// RequestIDMiddleware. Routes mounted without that middleware (health,
// metrics, tests) fall back to the global logger tagged with whatever
// request id can be recovered, so storefront handlers can always log.
func FromContext(c echo.Context) *zap.Logger {
	if log, ok := c.Get("logger").(*zap.Logger); ok {
		return log
	}

	requestID, _ := c.Get(RequestIDKey).(string)
	if requestID == "" {
		requestID = c.Request().Header.Get("X-Request-ID")
	}
	if requestID == "" {
		requestID = "unknown"
	}
	return GetLogger().With(zap.String("request_id", requestID))
}
