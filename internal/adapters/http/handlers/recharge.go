package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/recharge-proxy/internal/adapters/http/dto"
	"github.com/jsamuelsen/recharge-proxy/internal/adapters/http/middleware"
	"github.com/jsamuelsen/recharge-proxy/internal/app"
	"github.com/jsamuelsen/recharge-proxy/internal/domain"
)

// RechargeHandler handles the recharge API endpoints.
type RechargeHandler struct {
	service  *app.RechargeService
	sessions *middleware.Sessions
}

// NewRechargeHandler creates a new recharge handler.
func NewRechargeHandler(service *app.RechargeService, sessions *middleware.Sessions) *RechargeHandler {
	return &RechargeHandler{
		service:  service,
		sessions: sessions,
	}
}

// VerifyCode handles POST /api/verify-code.
// It verifies the activation code within a fresh upstream session and binds
// that session to the caller.
func (h *RechargeHandler) VerifyCode(c *gin.Context) {
	var req dto.VerifyCodeRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.HandleError(c, err)
		return
	}

	outcome, err := h.service.Verify(c.Request.Context(), req.ActivationCode)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	if err := h.sessions.Save(c, &outcome.Session); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewVerifyCodeResponse(outcome.Verification))
}

// SubmitJSON handles POST /api/submit-json.
// The upstream body is passed through with a translated error on failure.
func (h *RechargeHandler) SubmitJSON(c *gin.Context) {
	var req dto.TokenRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.HandleError(c, err)
		return
	}

	result, err := h.service.SubmitToken(c.Request.Context(), middleware.CallerSession(c), req.JSONToken)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, result.Payload())
}

// ReuseRecord handles POST /api/reuse-record.
func (h *RechargeHandler) ReuseRecord(c *gin.Context) {
	result, err := h.service.Reuse(c.Request.Context(), middleware.CallerSession(c))
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, result.Payload())
}

// UpdateToken handles POST /api/update-token.
func (h *RechargeHandler) UpdateToken(c *gin.Context) {
	var req dto.TokenRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.HandleError(c, err)
		return
	}

	result, err := h.service.UpdateToken(c.Request.Context(), middleware.CallerSession(c), req.JSONToken)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, result.Payload())
}

// Recharge handles POST /api/recharge.
// It runs the whole workflow in one call and returns the step trace.
func (h *RechargeHandler) Recharge(c *gin.Context) {
	var req dto.RechargeRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.HandleError(c, err)
		return
	}

	res, err := h.service.Run(c.Request.Context(), req.ActivationCode, req.JSONToken)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewWorkflowResponse(res.Success, res.Trace.Steps(), res.Final, res.FailedStep, res.Error))
}

// fail answers a session-bound call that could not run. A caller session
// that no longer carries what the call needs is dropped, so the next
// request starts clean.
func (h *RechargeHandler) fail(c *gin.Context, err error) {
	if domain.IsSessionExpired(err) && middleware.CallerSession(c) != nil {
		if clearErr := h.sessions.Clear(c); clearErr != nil {
			dto.HandleError(c, clearErr)
			return
		}
	}

	dto.HandleError(c, err)
}

// RegisterRechargeRoutes registers the recharge routes on the given router group.
func (h *RechargeHandler) RegisterRechargeRoutes(rg *gin.RouterGroup) {
	rg.POST("/verify-code", h.VerifyCode)
	rg.POST("/submit-json", h.SubmitJSON)
	rg.POST("/reuse-record", h.ReuseRecord)
	rg.POST("/update-token", h.UpdateToken)
	rg.POST("/recharge", h.Recharge)
}
