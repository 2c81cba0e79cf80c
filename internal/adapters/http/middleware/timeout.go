package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/recharge-proxy/internal/adapters/http/dto"
	"github.com/jsamuelsen/recharge-proxy/internal/platform/i18n"
	"github.com/jsamuelsen/recharge-proxy/internal/platform/logging"
)

// Timeout returns middleware that puts a deadline on the request context.
// Handlers run on the request goroutine and must honor ctx.Done(); the
// upstream client does. When the deadline passed and the handler wrote
// nothing, a timeout failure is written.
func Timeout(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()

		if errors.Is(ctx.Err(), context.DeadlineExceeded) && !c.Writer.Written() {
			handleTimeout(c, timeout)
		}
	}
}

// handleTimeout handles a timeout by logging and responding with an error.
func handleTimeout(c *gin.Context, timeout time.Duration) {
	logging.FromContext(c.Request.Context()).Warn("request timeout",
		slog.String("path", c.Request.URL.Path),
		slog.String("method", c.Request.Method),
		slog.Duration("timeout", timeout),
		slog.String("trace_id", dto.GetTraceID(c)),
	)

	dto.AbortWithFailure(c, dto.ErrorCodeTimeout, i18n.MsgTimeout)
}
