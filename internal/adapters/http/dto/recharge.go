package dto

import (
	"time"

	"github.com/jsamuelsen/recharge-proxy/internal/domain"
)

// VerifyCodeRequest is the body of POST /api/verify-code.
type VerifyCodeRequest struct {
	ActivationCode string `json:"activation_code" form:"activation_code" validate:"notempty"`
}

// TokenRequest is the body of POST /api/submit-json and /api/update-token.
type TokenRequest struct {
	JSONToken string `json:"json_token" form:"json_token" validate:"notempty"`
}

// RechargeRequest is the body of POST /api/recharge. The token is only
// needed for a code that was never used.
type RechargeRequest struct {
	ActivationCode string `json:"activation_code" form:"activation_code" validate:"notempty"`
	JSONToken      string `json:"json_token"      form:"json_token"`
}

// VerifyCodeResponse reports a successful verification.
type VerifyCodeResponse struct {
	Success bool   `json:"success"`
	Status  string `json:"status"`
	IsNew   bool   `json:"is_new"`
	Email   string `json:"email"`
}

// NewVerifyCodeResponse renders a verification.
func NewVerifyCodeResponse(v domain.Verification) VerifyCodeResponse {
	return VerifyCodeResponse{
		Success: true,
		Status:  string(v.Status),
		IsNew:   !v.HasExistingRecord,
		Email:   v.MaskedEmail,
	}
}

// StepResponse is one entry of a workflow trace.
type StepResponse struct {
	Step    string         `json:"step"`
	Success bool           `json:"success"`
	Result  map[string]any `json:"result,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// WorkflowResponse is the body of POST /api/recharge.
type WorkflowResponse struct {
	Success     bool           `json:"success"`
	Steps       []StepResponse `json:"steps"`
	FinalResult map[string]any `json:"final_result"`
	FailedStep  string         `json:"failed_step,omitempty"`
	Error       string         `json:"error,omitempty"`
}

// NewWorkflowResponse renders a trace. The upstream session handle is left
// out of the steps; it is kept server-side only.
func NewWorkflowResponse(success bool, steps []domain.StepRecord, final *domain.UpstreamResult,
	failed domain.Step, errMsg string,
) WorkflowResponse {
	out := WorkflowResponse{
		Success:    success,
		Steps:      make([]StepResponse, 0, len(steps)),
		FailedStep: string(failed),
		Error:      errMsg,
	}

	for _, s := range steps {
		step := StepResponse{Step: string(s.Step), Success: s.Success, Error: s.Error}
		if s.Result != nil && s.Step != domain.StepGetSession {
			step.Result = s.Result.Payload()
		}

		out.Steps = append(out.Steps, step)
	}

	if final != nil {
		out.FinalResult = final.Payload()
	}

	return out
}

// HealthResponse is the body of GET /api/health.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// NewHealthResponse reports a healthy service at now.
func NewHealthResponse(version string, now time.Time) HealthResponse {
	return HealthResponse{
		Status:    "healthy",
		Timestamp: now.Format(time.RFC3339Nano),
		Version:   version,
	}
}
