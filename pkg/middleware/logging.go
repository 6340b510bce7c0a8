package middleware

import (
	"log/slog"
	"time"

	"github.com/viaduct-dev/viaduct/pkg/router"
	"github.com/viaduct-dev/viaduct/pkg/server"
)

// Logging creates middleware that logs one line per request with method,
// path, status and duration. Failed requests are logged at error level with
// the failure attached.
//
// A nil logger falls back to the request-scoped logger on the Ctx.
func Logging(logger *slog.Logger) router.Middleware {
	return router.MiddlewareFunc(func(c *server.Ctx, next func() error) error {
		start := time.Now()
		err := next()
		duration := time.Since(start)

		l := logger
		if l == nil {
			l = c.Logger()
		}

		attrs := []any{
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.Int("status", c.Status()),
			slog.Duration("duration", duration),
			slog.Int("bytes", c.BytesWritten()),
		}
		if err != nil {
			attrs = append(attrs, slog.Any("error", err))
			l.Error("request failed", attrs...)
			return err
		}
		l.Info("request", attrs...)
		return nil
	})
}
