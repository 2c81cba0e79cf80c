package domain

import (
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// SessionHandle is the opaque upstream session token carried in the
// ios_gpt_session cookie. Empty means "no session".
type SessionHandle string

// IsZero reports whether the handle is absent.
func (h SessionHandle) IsZero() bool {
	return h == ""
}

// ActivationCode is a recharge card code that passed ValidateActivationCode.
type ActivationCode string

// String returns the code as sent upstream.
func (c ActivationCode) String() string {
	return string(c)
}

// An optional alphabetic prefix, then three or four 4-char groups.
var activationCodePattern = regexp.MustCompile(`(?i)^(?:[A-Z]+-)?[A-Z0-9]{4}(?:-[A-Z0-9]{4}){2,3}$`)

// NormalizeActivationCode trims surrounding space and folds full-width
// characters to their ASCII forms. Case is preserved.
func NormalizeActivationCode(raw string) string {
	return strings.TrimSpace(norm.NFKC.String(raw))
}

// ValidateActivationCode normalizes raw and checks it against the card
// code grammar. It never touches the network.
func ValidateActivationCode(raw string) (ActivationCode, error) {
	code := NormalizeActivationCode(raw)
	if code == "" {
		return "", NewValidationError("activation_code", "required")
	}

	if !activationCodePattern.MatchString(code) {
		return "", NewValidationErrorWithValue("activation_code", "invalid format", code)
	}

	return ActivationCode(code), nil
}

// CodeStatus is the upstream status of an activation code. The set is open;
// only the two named values drive workflow decisions.
type CodeStatus string

// Known code statuses.
const (
	CodeStatusActive CodeStatus = "active"
	CodeStatusUsed   CodeStatus = "used"
)

// ErrorKind classifies why an upstream call failed.
type ErrorKind string

// Upstream failure kinds. An empty kind means the call succeeded.
const (
	ErrorKindNone       ErrorKind = ""
	ErrorKindTimeout    ErrorKind = "timeout"
	ErrorKindConnection ErrorKind = "connection"
	ErrorKindTransport  ErrorKind = "transport"
	ErrorKindHTTP       ErrorKind = "http"
	ErrorKindDecode     ErrorKind = "decode"
	ErrorKindBusiness   ErrorKind = "business"
	ErrorKindNoSession  ErrorKind = "no_session"
)

// UpstreamResult is the normalized outcome of one upstream call.
//
// Body is the decoded upstream JSON object with http_code injected; it is nil
// for transport, status and decode failures. Error always holds the raw,
// untranslated failure text.
type UpstreamResult struct {
	Success     bool
	Body        map[string]any
	Error       string
	Kind        ErrorKind
	HTTPCode    int
	RawResponse string
}

// Data returns the body's "data" object, or nil.
func (r *UpstreamResult) Data() map[string]any {
	if r == nil || r.Body == nil {
		return nil
	}

	data, _ := r.Body["data"].(map[string]any)

	return data
}

// Payload renders the result as the JSON object returned to callers:
// the upstream body when present, otherwise a synthesized failure object.
func (r *UpstreamResult) Payload() map[string]any {
	out := make(map[string]any, len(r.Body)+3)
	for k, v := range r.Body {
		out[k] = v
	}

	out["success"] = r.Success
	out["http_code"] = r.HTTPCode

	if !r.Success {
		out["error"] = r.Error
	}

	if r.RawResponse != "" {
		out["raw_response"] = r.RawResponse
	}

	return out
}

// Verification is what a successful verify call tells us about a code.
type Verification struct {
	Status            CodeStatus `json:"status"`
	HasExistingRecord bool       `json:"has_existing_record"`
	MaskedEmail       string     `json:"masked_email,omitempty"`
}

// ParseVerification reads data.code_status and data.existing_record from a
// verify result. Missing fields yield zero values.
func ParseVerification(r *UpstreamResult) Verification {
	data := r.Data()
	if data == nil {
		return Verification{}
	}

	var v Verification

	if status, ok := data["code_status"].(string); ok {
		v.Status = CodeStatus(status)
	}

	if record, ok := data["existing_record"].(map[string]any); ok && len(record) > 0 {
		v.HasExistingRecord = true
		v.MaskedEmail, _ = record["bound_email_masked"].(string)
	}

	return v
}

// CallerSession is the per end-user state kept between the verify call and
// the follow-up submit, reuse and update calls.
type CallerSession struct {
	Upstream       SessionHandle  `json:"upstream"`
	ActivationCode ActivationCode `json:"activation_code,omitempty"`
	Verification   Verification   `json:"verification"`
	CreatedAt      time.Time      `json:"created_at"`
}
