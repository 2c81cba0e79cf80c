package middleware

import (
	"log/slog"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/recharge-proxy/internal/adapters/http/dto"
	"github.com/jsamuelsen/recharge-proxy/internal/platform/i18n"
	"github.com/jsamuelsen/recharge-proxy/internal/platform/logging"
)

// Recovery returns middleware that recovers from panics.
// On panic, it:
//   - Logs the error with full stack trace at ERROR level
//   - Returns 500 with {success:false, error:"服务器内部错误"}
//   - Includes trace_id in the response for debugging
//
// This middleware should be applied first in the chain to catch panics
// from all subsequent handlers and middleware.
func Recovery(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}

			ctxLogger := logging.FromContextOr(c.Request.Context(), logger)

			ctxLogger.ErrorContext(c.Request.Context(), "panic recovered",
				slog.Any("error", r),
				slog.String("stack", string(debug.Stack())),
				slog.String("path", c.Request.URL.Path),
				slog.String("method", c.Request.Method),
				slog.String("trace_id", dto.GetTraceID(c)),
			)

			dto.AbortWithFailure(c, dto.ErrorCodeInternal, i18n.MsgInternalError)
		}()

		c.Next()
	}
}
