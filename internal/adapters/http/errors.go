package http

import (
	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/recharge-proxy/internal/adapters/http/dto"
	"github.com/jsamuelsen/recharge-proxy/internal/platform/i18n"
)

// NotFound writes the JSON failure for unknown routes.
func NotFound(c *gin.Context) {
	dto.Fail(c, dto.ErrorCodeNotFound, i18n.MsgNotFound)
}
