package http

import (
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// RequestLogger logs every finished request through the zap global.
func RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				// Let the error handler write the response so the status below is final.
				c.Error(err)
			}

			res := c.Response()
			zap.L().Info(
				"got incoming HTTP request",
				zap.String("uri", c.Request().RequestURI),
				zap.String("method", c.Request().Method),
				zap.Duration("duration", time.Since(start)),
				zap.Int("status", res.Status),
				zap.Int64("size", res.Size),
			)

			return nil
		}
	}
}
