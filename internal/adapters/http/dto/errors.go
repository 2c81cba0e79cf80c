// Package dto provides Data Transfer Objects for HTTP request/response handling.
package dto

import "net/http"

// FailureResponse is the envelope for every failed /api call. Error holds the
// user-facing message; Code is the machine-readable category.
type FailureResponse struct {
	Success bool              `json:"success"`
	Error   string            `json:"error"`
	Code    string            `json:"code,omitempty"`
	Details map[string]string `json:"details,omitempty"`
	TraceID string            `json:"traceId,omitempty"`
}

// Error codes for machine-readable error identification.
const (
	// ErrorCodeBadRequest indicates the request body could not be read.
	ErrorCodeBadRequest = "BAD_REQUEST"

	// ErrorCodeValidation indicates request validation failed.
	ErrorCodeValidation = "VALIDATION_ERROR"

	// ErrorCodeSessionExpired indicates the caller must verify a code again.
	ErrorCodeSessionExpired = "SESSION_EXPIRED"

	// ErrorCodeUpstream indicates the recharge site rejected or failed a call.
	ErrorCodeUpstream = "UPSTREAM_ERROR"

	// ErrorCodeUnavailable indicates the recharge site could not be reached.
	ErrorCodeUnavailable = "SERVICE_UNAVAILABLE"

	// ErrorCodeNotFound indicates an unknown route.
	ErrorCodeNotFound = "NOT_FOUND"

	// ErrorCodeRateLimited indicates the caller exceeded the request rate.
	ErrorCodeRateLimited = "RATE_LIMITED"

	// ErrorCodeTimeout indicates the request timed out.
	ErrorCodeTimeout = "TIMEOUT"

	// ErrorCodeInternal indicates an internal server error.
	ErrorCodeInternal = "INTERNAL_ERROR"
)

// NewFailure creates a failure envelope with the given code and message.
func NewFailure(code, message string) *FailureResponse {
	return &FailureResponse{
		Success: false,
		Error:   message,
		Code:    code,
	}
}

// WithDetails adds field-level details.
func (f *FailureResponse) WithDetails(details map[string]string) *FailureResponse {
	if len(details) > 0 {
		f.Details = details
	}

	return f
}

// WithTraceID adds a trace ID to the failure.
func (f *FailureResponse) WithTraceID(traceID string) *FailureResponse {
	f.TraceID = traceID
	return f
}

// HTTPStatusFromCode maps error codes to HTTP status codes.
//
// Failures the caller can act on are reported with 200 and success=false,
// which is what the recharge front end expects. Only routing, rate limiting,
// timeouts and crashes use their HTTP status.
func HTTPStatusFromCode(code string) int {
	switch code {
	case ErrorCodeNotFound:
		return http.StatusNotFound
	case ErrorCodeRateLimited:
		return http.StatusTooManyRequests
	case ErrorCodeTimeout:
		return http.StatusGatewayTimeout
	case ErrorCodeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusOK
	}
}
