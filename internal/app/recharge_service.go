// Package app contains application services that orchestrate use cases.
// This is the application layer in Clean Architecture - it coordinates
// domain logic and infrastructure through ports.
//
// Application Layer Responsibilities:
//   - Sequence the recharge workflow against the upstream port
//   - Humanize upstream failures through the error translator
//   - Enforce caller session preconditions before any network call
//   - Record workflow steps in logs and metrics
//
// What does NOT belong here:
//   - HTTP specifics and session cookies (that's adapters)
//   - Upstream wire formats (that's the client ACL)
//   - Code grammar and dictionaries (that's the domain layer)
package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jsamuelsen/recharge-proxy/internal/domain"
	"github.com/jsamuelsen/recharge-proxy/internal/domain/errmap"
	"github.com/jsamuelsen/recharge-proxy/internal/platform/logging"
	"github.com/jsamuelsen/recharge-proxy/internal/platform/telemetry"
	"github.com/jsamuelsen/recharge-proxy/internal/ports"
)

// Fallback texts used when a failed step carries no upstream error.
const (
	FallbackSession  = "获取Session失败"
	FallbackDecision = "卡密状态异常或缺少用户数据"
	FallbackVerify   = "验证失败"
	FallbackSubmit   = "充值失败"
	FallbackReuse    = "复用失败"
	FallbackUpdate   = "更新失败"
)

// Operation names used in logs and metrics.
const (
	OpRun         = "run"
	OpVerify      = "verify"
	OpSubmitToken = "submit_token"
	OpReuse       = "reuse"
	OpUpdateToken = "update_token"
)

// WorkflowResult is the outcome of a full recharge run.
type WorkflowResult struct {
	// Success is the success of the final upstream call; false when the
	// run stopped early.
	Success bool

	// Trace lists every step that ran, in order.
	Trace *domain.Trace

	// Final is the last upstream result (reuse or submit), nil when the run
	// stopped before either.
	Final *domain.UpstreamResult

	// FailedStep names the step that stopped the run.
	FailedStep domain.Step

	// Error is the user-facing message for the failed step.
	Error string

	// Verification is set once the code was verified.
	Verification domain.Verification
}

// StepError reports a failed upstream step with its user-facing message.
type StepError struct {
	Step    domain.Step
	Message string
	Result  *domain.UpstreamResult
}

// Error implements the error interface.
func (e *StepError) Error() string {
	return fmt.Sprintf("%s failed: %s", e.Step, e.Message)
}

// VerifyOutcome is what a successful verification hands back to the caller
// session.
type VerifyOutcome struct {
	Session      domain.CallerSession
	Verification domain.Verification
}

// IsNew reports whether the code has no previous recharge bound to it.
func (o *VerifyOutcome) IsNew() bool {
	return !o.Verification.HasExistingRecord
}

// RechargeService runs recharge use cases against the upstream port.
// It holds no per-call state and is safe for concurrent use.
type RechargeService struct {
	upstream   ports.RechargeUpstream
	translator *errmap.Translator
	metrics    *telemetry.RechargeMetrics
	logger     *slog.Logger
	now        func() time.Time
}

// RechargeServiceConfig contains the dependencies of the recharge service.
type RechargeServiceConfig struct {
	Upstream ports.RechargeUpstream

	// ErrorService selects the error dictionary; defaults to openai.
	ErrorService string

	// Metrics is optional.
	Metrics *telemetry.RechargeMetrics

	Logger *slog.Logger
}

// NewRechargeService creates the service. It panics without an upstream.
func NewRechargeService(cfg RechargeServiceConfig) *RechargeService {
	if cfg.Upstream == nil {
		panic("recharge service requires an upstream")
	}

	service := cfg.ErrorService
	if service == "" {
		service = errmap.ServiceOpenAI
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	translator, known := errmap.For(service)
	if !known {
		logger.Warn("no error dictionary for service, upstream errors pass through untranslated",
			slog.String("error_service", service),
			slog.Any("supported", errmap.Services()),
		)
	}

	return &RechargeService{
		upstream:   cfg.Upstream,
		translator: translator,
		metrics:    cfg.Metrics,
		logger:     logger.With(slog.String("component", "app.RechargeService")),
		now:        time.Now,
	}
}

// Run executes the whole workflow: acquire a session, verify the code, then
// reuse the bound record for a used code or submit the token for an active
// one. It never retries. The returned error is non-nil only when the code
// fails validation, in which case no upstream call is made.
func (s *RechargeService) Run(ctx context.Context, rawCode, tokenJSON string) (*WorkflowResult, error) {
	code, err := domain.ValidateActivationCode(rawCode)
	if err != nil {
		return nil, fmt.Errorf("validating activation code: %w", err)
	}

	start := s.now()
	logger := s.log(ctx).With(slog.String("operation", OpRun))
	res := &WorkflowResult{Trace: &domain.Trace{}}

	defer func() {
		s.metrics.RecordOperation(ctx, OpRun, res.Success, s.now().Sub(start))
	}()

	handle, sessRes := s.upstream.AcquireSession(ctx)
	if !sessRes.Success || handle.IsZero() {
		s.fail(ctx, res, domain.StepGetSession, sessRes, FallbackSession)
		logger.WarnContext(ctx, "workflow stopped", slog.String("step", string(domain.StepGetSession)),
			slog.String("error", res.Error))

		return res, nil
	}

	s.record(ctx, res, domain.StepGetSession, sessRes, handle)

	verifyRes := s.upstream.VerifyCode(ctx, handle, code)
	if !verifyRes.Success {
		s.fail(ctx, res, domain.StepVerifyCode, verifyRes, FallbackVerify)
		logger.WarnContext(ctx, "workflow stopped", slog.String("step", string(domain.StepVerifyCode)),
			slog.String("error", res.Error))

		return res, nil
	}

	s.record(ctx, res, domain.StepVerifyCode, verifyRes, "")
	res.Verification = domain.ParseVerification(verifyRes)

	token := strings.TrimSpace(tokenJSON)

	var (
		step     domain.Step
		fallback string
	)

	switch {
	case res.Verification.Status == domain.CodeStatusUsed:
		step, fallback = domain.StepReuseRecord, FallbackReuse
		res.Final = s.upstream.ReuseRecord(ctx, handle)
	case res.Verification.Status == domain.CodeStatusActive && token != "":
		step, fallback = domain.StepSubmitRecharge, FallbackSubmit
		res.Final = s.upstream.SubmitRecharge(ctx, handle, token)
	default:
		res.FailedStep = domain.StepDecision
		res.Error = FallbackDecision
		res.Trace.Append(domain.StepRecord{Step: domain.StepDecision, Error: FallbackDecision})
		s.metrics.RecordStep(ctx, string(domain.StepDecision), false, "")
		logger.WarnContext(ctx, "workflow stopped",
			slog.String("step", string(domain.StepDecision)),
			slog.String("code_status", string(res.Verification.Status)),
			slog.Bool("token_supplied", token != ""))

		return res, nil
	}

	res.Success = res.Final.Success
	if res.Success {
		s.record(ctx, res, step, res.Final, "")
		logger.InfoContext(ctx, "workflow completed", slog.String("step", string(step)))

		return res, nil
	}

	s.fail(ctx, res, step, res.Final, fallback)
	logger.WarnContext(ctx, "workflow failed", slog.String("step", string(step)), slog.String("error", res.Error))

	return res, nil
}

// Verify validates the code, acquires an upstream session and verifies the
// code within it. Errors:
//   - domain.ValidationError for a malformed code, before any network call
//   - domain.UnavailableError when no upstream session could be obtained
//   - *StepError when the upstream rejected the code
func (s *RechargeService) Verify(ctx context.Context, rawCode string) (*VerifyOutcome, error) {
	code, err := domain.ValidateActivationCode(rawCode)
	if err != nil {
		return nil, fmt.Errorf("validating activation code: %w", err)
	}

	start := s.now()
	success := false
	logger := s.log(ctx).With(slog.String("operation", OpVerify))

	defer func() {
		s.metrics.RecordOperation(ctx, OpVerify, success, s.now().Sub(start))
	}()

	handle, sessRes := s.upstream.AcquireSession(ctx)
	s.metrics.RecordStep(ctx, string(domain.StepGetSession), sessRes.Success, string(sessRes.Kind))

	if !sessRes.Success || handle.IsZero() {
		logger.WarnContext(ctx, "session unavailable",
			slog.String("kind", string(sessRes.Kind)),
			slog.String("error", sessRes.Error))

		return nil, domain.NewUnavailableError("upstream session", sessRes.Error)
	}

	verifyRes := s.upstream.VerifyCode(ctx, handle, code)
	s.metrics.RecordStep(ctx, string(domain.StepVerifyCode), verifyRes.Success, string(verifyRes.Kind))

	if !verifyRes.Success {
		msg := s.translator.Humanize(verifyRes, FallbackVerify)
		logger.WarnContext(ctx, "verification failed", slog.String("error", msg))

		return nil, &StepError{Step: domain.StepVerifyCode, Message: msg, Result: verifyRes}
	}

	v := domain.ParseVerification(verifyRes)
	success = true

	logger.InfoContext(ctx, "code verified",
		slog.String("status", string(v.Status)),
		slog.Bool("is_new", !v.HasExistingRecord))

	return &VerifyOutcome{
		Session: domain.CallerSession{
			Upstream:       handle,
			ActivationCode: code,
			Verification:   v,
			CreatedAt:      s.now(),
		},
		Verification: v,
	}, nil
}

// SubmitToken submits a fresh recharge with the caller's account token.
// The returned result always has a humanized error on failure.
func (s *RechargeService) SubmitToken(
	ctx context.Context, sess *domain.CallerSession, tokenJSON string,
) (*domain.UpstreamResult, error) {
	token, err := requireToken(tokenJSON)
	if err != nil {
		return nil, err
	}

	if sess == nil || sess.Upstream.IsZero() {
		return nil, domain.NewSessionExpiredError("upstream session")
	}

	return s.call(ctx, OpSubmitToken, domain.StepSubmitRecharge, FallbackSubmit, func() *domain.UpstreamResult {
		return s.upstream.SubmitRecharge(ctx, sess.Upstream, token)
	}), nil
}

// Reuse replays the recharge bound to the verified code.
func (s *RechargeService) Reuse(ctx context.Context, sess *domain.CallerSession) (*domain.UpstreamResult, error) {
	if sess == nil || sess.Upstream.IsZero() {
		return nil, domain.NewSessionExpiredError("upstream session")
	}

	return s.call(ctx, OpReuse, domain.StepReuseRecord, FallbackReuse, func() *domain.UpstreamResult {
		return s.upstream.ReuseRecord(ctx, sess.Upstream)
	}), nil
}

// UpdateToken replaces the token bound to the verified code and recharges.
func (s *RechargeService) UpdateToken(
	ctx context.Context, sess *domain.CallerSession, tokenJSON string,
) (*domain.UpstreamResult, error) {
	token, err := requireToken(tokenJSON)
	if err != nil {
		return nil, err
	}

	switch {
	case sess == nil || sess.Upstream.IsZero():
		return nil, domain.NewSessionExpiredError("upstream session")
	case sess.ActivationCode == "":
		return nil, domain.NewSessionExpiredError("activation code")
	}

	return s.call(ctx, OpUpdateToken, domain.StepUpdateToken, FallbackUpdate, func() *domain.UpstreamResult {
		return s.upstream.UpdateTokenAndRecharge(ctx, sess.Upstream, sess.ActivationCode, token)
	}), nil
}

// call runs one session-bound upstream call and humanizes its failure.
func (s *RechargeService) call(
	ctx context.Context, op string, step domain.Step, fallback string, fn func() *domain.UpstreamResult,
) *domain.UpstreamResult {
	start := s.now()
	logger := s.log(ctx).With(slog.String("operation", op))

	r := fn()

	s.metrics.RecordStep(ctx, string(step), r.Success, string(r.Kind))
	s.metrics.RecordOperation(ctx, op, r.Success, s.now().Sub(start))

	if r.Success {
		logger.InfoContext(ctx, "upstream call succeeded", slog.Int("http_code", r.HTTPCode))

		return r
	}

	out := *r
	out.Error = s.translator.Humanize(r, fallback)

	logger.WarnContext(ctx, "upstream call failed",
		slog.Int("http_code", r.HTTPCode),
		slog.String("kind", string(r.Kind)),
		slog.String("error", out.Error))

	return &out
}

func (s *RechargeService) record(
	ctx context.Context, res *WorkflowResult, step domain.Step, r *domain.UpstreamResult, handle domain.SessionHandle,
) {
	res.Trace.Append(domain.StepRecord{Step: step, Success: true, Session: handle, Result: r})
	s.metrics.RecordStep(ctx, string(step), true, "")
}

func (s *RechargeService) fail(
	ctx context.Context, res *WorkflowResult, step domain.Step, r *domain.UpstreamResult, fallback string,
) {
	msg := s.translator.Humanize(r, fallback)

	res.Success = false
	res.FailedStep = step
	res.Error = msg
	res.Trace.Append(domain.StepRecord{Step: step, Result: r, Error: msg})

	kind := ""
	if r != nil {
		kind = string(r.Kind)
	}

	s.metrics.RecordStep(ctx, string(step), false, kind)
}

func (s *RechargeService) log(ctx context.Context) *slog.Logger {
	return logging.FromContextOr(ctx, s.logger)
}

func requireToken(raw string) (string, error) {
	token := strings.TrimSpace(raw)
	if token == "" {
		return "", domain.NewValidationError("json_token", "required")
	}

	return token, nil
}
