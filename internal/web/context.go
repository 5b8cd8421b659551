package web

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// AppContext wraps the echo context with a request-scoped logger carrying
// the request id assigned by the RequestID middleware.
type AppContext struct {
	echo.Context
	AppLogger *zap.Logger
}

func CreateAppContext(
	logger *zap.Logger,
) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestLogger := logger
			if requestID := c.Response().Header().Get(echo.HeaderXRequestID); requestID != "" {
				requestLogger = logger.With(zap.String("requestid", requestID))
			}
			cc := &AppContext{c, requestLogger}
			return next(cc)
		}
	}
}
