package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/recharge-proxy/internal/adapters/http/handlers"
	"github.com/jsamuelsen/recharge-proxy/internal/adapters/http/middleware"
	"github.com/jsamuelsen/recharge-proxy/internal/adapters/session"
	"github.com/jsamuelsen/recharge-proxy/internal/app"
	"github.com/jsamuelsen/recharge-proxy/internal/domain"
	"github.com/jsamuelsen/recharge-proxy/internal/mocks"
	"github.com/jsamuelsen/recharge-proxy/internal/platform/config"
	"github.com/jsamuelsen/recharge-proxy/internal/platform/i18n"
	"github.com/jsamuelsen/recharge-proxy/internal/ports"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type routerFixture struct {
	engine   *gin.Engine
	upstream *mocks.MockRechargeUpstream
}

func newRouterFixture(t *testing.T, limiter *middleware.RateLimiter) *routerFixture {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	catalog, err := i18n.New("zh-Hans")
	require.NoError(t, err)

	sessions, err := middleware.NewSessions(middleware.SessionsConfig{
		Store: session.NewMemoryStore(),
		TTL:   time.Minute,
	})
	require.NoError(t, err)

	upstream := mocks.NewMockRechargeUpstream(t)
	svc := app.NewRechargeService(app.RechargeServiceConfig{Upstream: upstream, Logger: logger})

	engine := gin.New()
	SetupRouter(engine, RouterConfig{
		Logger:          logger,
		AppConfig:       &config.AppConfig{Name: "recharge-proxy"},
		Catalog:         catalog,
		HealthHandler:   handlers.NewHealthHandler(ports.NewHealthRegistry(), handlers.NewBuildInfo("1.0.0", "abc", "")),
		RechargeHandler: handlers.NewRechargeHandler(svc, sessions),
		Sessions:        sessions,
		RateLimiter:     limiter,
		Timeout:         5 * time.Second,
	})

	return &routerFixture{engine: engine, upstream: upstream}
}

func (f *routerFixture) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)

	return w
}

func TestSetupRouter_Routes(t *testing.T) {
	f := newRouterFixture(t, nil)

	routes := make(map[string]bool)
	for _, r := range f.engine.Routes() {
		routes[r.Method+" "+r.Path] = true
	}

	for _, want := range []string{
		"GET /-/live",
		"GET /-/ready",
		"GET /-/build",
		"GET /-/metrics",
		"GET /api/health",
		"POST /api/verify-code",
		"POST /api/submit-json",
		"POST /api/reuse-record",
		"POST /api/update-token",
		"POST /api/recharge",
	} {
		assert.True(t, routes[want], "missing route: %s", want)
	}
}

func TestSetupRouter_OpsAndHealth(t *testing.T) {
	f := newRouterFixture(t, nil)

	live := f.do(httptest.NewRequest(http.MethodGet, "/-/live", nil))
	assert.Equal(t, http.StatusOK, live.Code)
	assert.NotEmpty(t, live.Header().Get(middleware.HeaderRequestID))

	ready := f.do(httptest.NewRequest(http.MethodGet, "/-/ready", nil))
	assert.Equal(t, http.StatusOK, ready.Code)

	health := f.do(httptest.NewRequest(http.MethodGet, "/api/health", nil))
	require.Equal(t, http.StatusOK, health.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(health.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "1.0.0", body["version"])
}

func TestSetupRouter_NotFound(t *testing.T) {
	f := newRouterFixture(t, nil)

	tests := []struct {
		name    string
		accept  string
		wantMsg string
	}{
		{name: "default language", wantMsg: "页面未找到"},
		{name: "english", accept: "en", wantMsg: "Page not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/nope", nil)
			if tt.accept != "" {
				req.Header.Set("Accept-Language", tt.accept)
			}

			w := f.do(req)

			assert.Equal(t, http.StatusNotFound, w.Code)
			assert.JSONEq(t, `{"success":false,"error":"`+tt.wantMsg+`","code":"NOT_FOUND"}`, w.Body.String())
		})
	}
}

func TestSetupRouter_VerifyThenReuse(t *testing.T) {
	f := newRouterFixture(t, nil)

	handle := domain.SessionHandle("sess-1")
	code := domain.ActivationCode("QWER-XDKO-DWJN-R21Q")

	f.upstream.EXPECT().AcquireSession(mock.Anything).
		Return(handle, &domain.UpstreamResult{Success: true, HTTPCode: http.StatusOK}).Once()
	f.upstream.EXPECT().VerifyCode(mock.Anything, handle, code).
		Return(&domain.UpstreamResult{
			Success:  true,
			HTTPCode: http.StatusOK,
			Body:     map[string]any{"success": true, "data": map[string]any{"code_status": "used"}},
		}).Once()
	f.upstream.EXPECT().ReuseRecord(mock.Anything, handle).
		Return(&domain.UpstreamResult{Success: true, HTTPCode: http.StatusOK, Body: map[string]any{"success": true}}).Once()

	req := httptest.NewRequest(http.MethodPost, "/api/verify-code", strings.NewReader(`{"activation_code":"`+string(code)+`"}`))
	req.Header.Set("Content-Type", "application/json")

	verify := f.do(req)
	require.Equal(t, http.StatusOK, verify.Code)
	assert.JSONEq(t, `{"success":true,"status":"used","is_new":true,"email":""}`, verify.Body.String())

	cookies := verify.Result().Cookies()
	require.Len(t, cookies, 1)

	req = httptest.NewRequest(http.MethodPost, "/api/reuse-record", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(cookies[0])

	reuse := f.do(req)
	assert.Equal(t, http.StatusOK, reuse.Code)
	assert.Contains(t, reuse.Body.String(), `"success":true`)
}

func TestSetupRouter_RateLimitOnlyOnAPI(t *testing.T) {
	f := newRouterFixture(t, middleware.NewRateLimiter(0.001, 1))

	first := f.do(httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusOK, first.Code)

	second := f.do(httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)

	ops := f.do(httptest.NewRequest(http.MethodGet, "/-/live", nil))
	assert.Equal(t, http.StatusOK, ops.Code)
}

func TestSetupRouter_RecoversPanics(t *testing.T) {
	f := newRouterFixture(t, nil)

	f.upstream.EXPECT().AcquireSession(mock.Anything).Panic("boom").Once()

	req := httptest.NewRequest(http.MethodPost, "/api/verify-code", strings.NewReader(`{"activation_code":"QWER-XDKO-DWJN-R21Q"}`))
	req.Header.Set("Content-Type", "application/json")

	w := f.do(req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "服务器内部错误")
}
