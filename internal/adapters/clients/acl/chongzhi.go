package acl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"time"

	"github.com/jsamuelsen/recharge-proxy/internal/adapters/clients"
	"github.com/jsamuelsen/recharge-proxy/internal/domain"
	"github.com/jsamuelsen/recharge-proxy/internal/platform/logging"
	"github.com/jsamuelsen/recharge-proxy/internal/ports"
)

// Upstream endpoints, relative to the base URL.
const (
	PathLanding = "/"
	PathVerify  = "/api-verify.php"
	PathReuse   = "/api-recharge-reuse.php"
	PathSubmit  = "/simple-submit-recharge.php"
)

const (
	actionReuseRecord            = "reuse_record"
	actionUpdateTokenAndRecharge = "update_token_and_recharge"

	acceptHTML = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"
	acceptJSON = "application/json"
	acceptAny  = "*/*"

	defaultSessionCookie = "ios_gpt_session"
)

// Outbound bodies. Field names are the site's.
type (
	verifyRequest struct {
		ActivationCode string `json:"activation_code"`
	}

	reuseRequest struct {
		Action string `json:"action"`
	}

	submitRequest struct {
		UserData string `json:"user_data"`
	}

	updateTokenRequest struct {
		Action   string `json:"action"`
		CardCode string `json:"card_code"`
		JSONData string `json:"json_data"`
	}
)

// UpstreamHeaders returns the headers every call to the site carries.
// Install them as clients.Config.Headers.
func UpstreamHeaders(userAgent, acceptLanguage string) http.Header {
	h := http.Header{}

	if userAgent != "" {
		h.Set("User-Agent", userAgent)
	}

	if acceptLanguage != "" {
		h.Set("Accept-Language", acceptLanguage)
	}

	return h
}

// ChongzhiConfig contains configuration for the recharge site adapter.
type ChongzhiConfig struct {
	// Client is the HTTP client; its BaseURL points at the site.
	Client *clients.Client

	// Name identifies the site in health checks and errors.
	Name string

	// SessionCookie is the cookie carrying the session handle.
	SessionCookie string

	// Logger is the structured logger.
	Logger *slog.Logger
}

// Chongzhi implements ports.RechargeUpstream against the recharge site.
// It holds no per-call state and is safe for concurrent use.
type Chongzhi struct {
	client        *clients.Client
	name          string
	cookieName    string
	cookiePattern *regexp.Regexp
	origin        string
	logger        *slog.Logger
}

var (
	_ ports.RechargeUpstream = (*Chongzhi)(nil)
	_ ports.OptionalChecker  = (*Chongzhi)(nil)
)

// NewChongzhi creates the recharge site adapter.
// Panics if Client is nil. Defaults logger to slog.Default() if nil.
func NewChongzhi(cfg ChongzhiConfig) *Chongzhi {
	if cfg.Client == nil {
		panic("Chongzhi: Client is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	name := cfg.Name
	if name == "" {
		name = "chongzhi"
	}

	cookie := cfg.SessionCookie
	if cookie == "" {
		cookie = defaultSessionCookie
	}

	return &Chongzhi{
		client:        cfg.Client,
		name:          name,
		cookieName:    cookie,
		cookiePattern: regexp.MustCompile(regexp.QuoteMeta(cookie) + `=([^;]+)`),
		origin:        cfg.Client.BaseURL(),
		logger:        logger.With(slog.String("component", "acl.Chongzhi")),
	}
}

// AcquireSession loads the landing page and extracts the session cookie.
// Parsed cookies are tried first, then a raw scan of every Set-Cookie header
// for values net/http refuses to parse.
func (a *Chongzhi) AcquireSession(ctx context.Context) (domain.SessionHandle, *domain.UpstreamResult) {
	resp, err := a.client.Get(ctx, PathLanding, clients.WithHeader("Accept", acceptHTML))
	if err != nil {
		return "", a.finish(ctx, domain.StepGetSession, transportFailure(err))
	}
	defer closeBody(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return "", a.finish(ctx, domain.StepGetSession, statusFailure(resp.StatusCode))
	}

	handle := a.extractSession(resp)
	if handle.IsZero() {
		return "", a.finish(ctx, domain.StepGetSession, missingSession(resp.StatusCode))
	}

	return handle, a.finish(ctx, domain.StepGetSession, &domain.UpstreamResult{
		Success:  true,
		HTTPCode: resp.StatusCode,
	})
}

func (a *Chongzhi) extractSession(resp *http.Response) domain.SessionHandle {
	for _, c := range resp.Cookies() {
		if c.Name == a.cookieName && c.Value != "" {
			return domain.SessionHandle(c.Value)
		}
	}

	for _, header := range resp.Header.Values("Set-Cookie") {
		if m := a.cookiePattern.FindStringSubmatch(header); m != nil {
			return domain.SessionHandle(m[1])
		}
	}

	return ""
}

// VerifyCode checks an activation code within a session.
func (a *Chongzhi) VerifyCode(
	ctx context.Context, session domain.SessionHandle, code domain.ActivationCode,
) *domain.UpstreamResult {
	return a.post(ctx, domain.StepVerifyCode, PathVerify, acceptJSON, session,
		verifyRequest{ActivationCode: code.String()})
}

// ReuseRecord replays the recharge bound to the verified code.
func (a *Chongzhi) ReuseRecord(ctx context.Context, session domain.SessionHandle) *domain.UpstreamResult {
	return a.post(ctx, domain.StepReuseRecord, PathReuse, acceptAny, session,
		reuseRequest{Action: actionReuseRecord})
}

// SubmitRecharge submits the opaque account token for a first recharge.
func (a *Chongzhi) SubmitRecharge(
	ctx context.Context, session domain.SessionHandle, tokenJSON string,
) *domain.UpstreamResult {
	return a.post(ctx, domain.StepSubmitRecharge, PathSubmit, acceptJSON, session,
		submitRequest{UserData: tokenJSON})
}

// UpdateTokenAndRecharge swaps the token bound to code and recharges again.
func (a *Chongzhi) UpdateTokenAndRecharge(
	ctx context.Context, session domain.SessionHandle, code domain.ActivationCode, tokenJSON string,
) *domain.UpstreamResult {
	return a.post(ctx, domain.StepUpdateToken, PathReuse, acceptAny, session,
		updateTokenRequest{
			Action:   actionUpdateTokenAndRecharge,
			CardCode: code.String(),
			JSONData: tokenJSON,
		})
}

func (a *Chongzhi) post(
	ctx context.Context, step domain.Step, path, accept string, session domain.SessionHandle, payload any,
) *domain.UpstreamResult {
	body, err := json.Marshal(payload)
	if err != nil {
		return a.finish(ctx, step, transportFailure(err))
	}

	a.logger.Log(ctx, logging.LevelTrace, "upstream request",
		slog.String("step", string(step)),
		slog.String("path", path),
		slog.String("json_data", string(body)),
	)

	resp, err := a.client.Post(ctx, path, bytes.NewReader(body),
		clients.WithHeader("Accept", accept),
		clients.WithHeader("Origin", a.origin),
		clients.WithHeader("Referer", a.origin+"/"),
		clients.WithHeader("Cookie", a.cookieName+"="+string(session)),
	)
	if err != nil {
		return a.finish(ctx, step, transportFailure(err))
	}
	defer closeBody(resp.Body)

	return a.finish(ctx, step, translateResponse(resp))
}

// finish logs the normalized outcome of one call.
func (a *Chongzhi) finish(ctx context.Context, step domain.Step, r *domain.UpstreamResult) *domain.UpstreamResult {
	logger := logging.FromContext(ctx)
	attrs := []any{
		slog.String("component", "acl.Chongzhi"),
		slog.String("step", string(step)),
		slog.Bool("success", r.Success),
		slog.Int("http_code", r.HTTPCode),
	}

	if r.Success {
		logger.DebugContext(ctx, "upstream call completed", attrs...)

		return r
	}

	attrs = append(attrs, slog.String("error_kind", string(r.Kind)), slog.String("error", r.Error))
	logger.InfoContext(ctx, "upstream call failed", attrs...)

	if r.RawResponse != "" {
		logger.Log(ctx, logging.LevelTrace, "upstream raw response", slog.String("raw_response", r.RawResponse))
	}

	return r
}

// Name implements ports.HealthChecker.
func (a *Chongzhi) Name() string {
	return a.name
}

// Check implements ports.HealthChecker. The landing page must answer below
// 500. A failure reports the breaker position when it is not closed.
func (a *Chongzhi) Check(ctx context.Context) error {
	resp, err := a.client.Get(ctx, PathLanding, clients.WithHeader("Accept", acceptHTML))
	if err != nil {
		return a.withCircuit(reachabilityError(a.name, transportFailure(err)))
	}
	defer closeBody(resp.Body)

	if resp.StatusCode >= http.StatusInternalServerError {
		return a.withCircuit(reachabilityError(a.name, statusFailure(resp.StatusCode)))
	}

	return nil
}

func (a *Chongzhi) withCircuit(err error) error {
	snap := a.client.CircuitSnapshot()
	if err == nil || snap.State == clients.StateClosed {
		return err
	}

	return fmt.Errorf("%w (circuit %s since %s)", err, snap.State, snap.LastFailure.Format(time.RFC3339))
}

// Optional implements ports.OptionalChecker. An unreachable site degrades
// readiness instead of failing it.
func (a *Chongzhi) Optional() bool {
	return true
}

func closeBody(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, io.LimitReader(body, maxBodyBytes))
	_ = body.Close()
}
