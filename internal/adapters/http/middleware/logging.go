package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/recharge-proxy/internal/platform/logging"
)

// Logging returns middleware that logs HTTP requests.
// It logs:
//   - Request start: method, path, client IP, user agent
//   - Request completion: status, latency, bytes written
//
// The client IP is added to the context logger so use-case logs carry it.
// Ops paths (starting with /-/) are skipped to avoid log noise.
func Logging(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/-/") {
			c.Next()
			return
		}

		start := time.Now()
		path := c.Request.URL.Path

		ctx := c.Request.Context()
		ctx = logging.WithContext(ctx, logging.FromContextOr(ctx, logger))
		ctx = logging.WithClientIP(ctx, c.ClientIP())
		c.Request = c.Request.WithContext(ctx)

		ctxLogger := logging.FromContext(ctx)

		ctxLogger.InfoContext(ctx, "request started",
			slog.String("method", c.Request.Method),
			slog.String("path", path),
			slog.String("user_agent", c.Request.UserAgent()),
		)

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		// Choose log level based on status code
		level := slog.LevelInfo
		if status >= http.StatusInternalServerError {
			level = slog.LevelError
		} else if status >= http.StatusBadRequest {
			level = slog.LevelWarn
		}

		ctxLogger.Log(ctx, level, "request completed",
			slog.String("method", c.Request.Method),
			slog.String("path", path),
			slog.String("route", c.FullPath()),
			slog.Int("status", status),
			slog.Duration("latency", latency),
			slog.Int64("latency_ms", latency.Milliseconds()),
			slog.Int("bytes", c.Writer.Size()),
		)
	}
}
