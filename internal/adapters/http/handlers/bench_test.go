package handlers

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/recharge-proxy/internal/adapters/http/middleware"
	"github.com/jsamuelsen/recharge-proxy/internal/adapters/session"
	"github.com/jsamuelsen/recharge-proxy/internal/app"
	"github.com/jsamuelsen/recharge-proxy/internal/domain"
	"github.com/jsamuelsen/recharge-proxy/internal/ports"
)

// stubUpstream answers every call with a canned success.
type stubUpstream struct {
	verify *domain.UpstreamResult
}

func (s *stubUpstream) AcquireSession(context.Context) (domain.SessionHandle, *domain.UpstreamResult) {
	return testHandle, okResult(nil)
}

func (s *stubUpstream) VerifyCode(context.Context, domain.SessionHandle, domain.ActivationCode) *domain.UpstreamResult {
	return s.verify
}

func (s *stubUpstream) ReuseRecord(context.Context, domain.SessionHandle) *domain.UpstreamResult {
	return okResult(map[string]any{"success": true, "message": "复用成功"})
}

func (s *stubUpstream) SubmitRecharge(context.Context, domain.SessionHandle, string) *domain.UpstreamResult {
	return okResult(map[string]any{"success": true, "message": "充值成功"})
}

func (s *stubUpstream) UpdateTokenAndRecharge(
	context.Context, domain.SessionHandle, domain.ActivationCode, string,
) *domain.UpstreamResult {
	return okResult(map[string]any{"success": true})
}

func setupBenchRouter(b *testing.B, status string) *gin.Engine {
	b.Helper()

	gin.SetMode(gin.ReleaseMode)

	sessions, err := middleware.NewSessions(middleware.SessionsConfig{
		Store: session.NewMemoryStore(),
		TTL:   time.Minute,
	})
	if err != nil {
		b.Fatalf("creating sessions: %v", err)
	}

	upstream := &stubUpstream{verify: okResult(map[string]any{
		"success": true,
		"data":    map[string]any{"code_status": status},
	})}

	svc := app.NewRechargeService(app.RechargeServiceConfig{
		Upstream: upstream,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	router := gin.New()
	api := router.Group("/api", sessions.Middleware())
	NewRechargeHandler(svc, sessions).RegisterRechargeRoutes(api)

	return router
}

// BenchmarkRecharge_Submit measures the one-shot workflow for an unused code.
func BenchmarkRecharge_Submit(b *testing.B) {
	router := setupBenchRouter(b, "active")
	body := `{"activation_code":"` + testCode + `","json_token":"{\"accessToken\":\"x\"}"}`

	b.ReportAllocs()

	for b.Loop() {
		req := httptest.NewRequest(http.MethodPost, "/api/recharge", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		router.ServeHTTP(httptest.NewRecorder(), req)
	}
}

// BenchmarkVerifyCode measures verification including session binding.
func BenchmarkVerifyCode(b *testing.B) {
	router := setupBenchRouter(b, "used")
	body := `{"activation_code":"` + testCode + `"}`

	b.ReportAllocs()

	for b.Loop() {
		req := httptest.NewRequest(http.MethodPost, "/api/verify-code", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		router.ServeHTTP(httptest.NewRecorder(), req)
	}
}

// BenchmarkReadinessHandler_WithChecks measures readiness with registered checkers.
func BenchmarkReadinessHandler_WithChecks(b *testing.B) {
	gin.SetMode(gin.ReleaseMode)

	registry := ports.NewHealthRegistry()
	_ = registry.Register(&staticChecker{name: "chongzhi"})
	_ = registry.Register(&staticChecker{name: "redis"})

	handler := NewHealthHandler(registry, NewBuildInfo("1.0.0", "abc123", "2024-01-01T00:00:00Z"))
	req := httptest.NewRequest(http.MethodGet, "/-/ready", http.NoBody)

	b.ReportAllocs()

	for b.Loop() {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = req
		handler.Readiness(c)
	}
}

type staticChecker struct {
	name string
}

func (s *staticChecker) Name() string { return s.name }

func (s *staticChecker) Check(context.Context) error { return nil }
