package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jsamuelsen/recharge-proxy/internal/adapters/clients"
	"github.com/jsamuelsen/recharge-proxy/internal/adapters/clients/acl"
	"github.com/jsamuelsen/recharge-proxy/internal/adapters/http/handlers"
	"github.com/jsamuelsen/recharge-proxy/internal/adapters/http/middleware"
	"github.com/jsamuelsen/recharge-proxy/internal/adapters/session"
	"github.com/jsamuelsen/recharge-proxy/internal/app"
	"github.com/jsamuelsen/recharge-proxy/internal/platform/config"
	"github.com/jsamuelsen/recharge-proxy/internal/platform/i18n"
	"github.com/jsamuelsen/recharge-proxy/internal/ports"
)

// fakeRechargeSite plays the recharge site's PHP endpoints.
type fakeRechargeSite struct {
	mu         sync.Mutex
	codes      map[string]string
	tokenError string
	down       bool
	actions    []string
}

func (s *fakeRechargeSite) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r.URL.Path == acl.PathLanding {
		if s.down {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}

		http.SetCookie(w, &http.Cookie{Name: "ios_gpt_session", Value: uuid.NewString(), Path: "/"})
		_, _ = w.Write([]byte("<html></html>"))

		return
	}

	if _, err := r.Cookie("ios_gpt_session"); err != nil {
		writeJSON(w, map[string]any{"success": false, "error": "会话已过期"})
		return
	}

	var body map[string]any
	_ = json.NewDecoder(r.Body).Decode(&body)

	switch r.URL.Path {
	case acl.PathVerify:
		code, _ := body["activation_code"].(string)
		s.verify(w, code)
	case acl.PathSubmit:
		s.actions = append(s.actions, "submit")
		s.submit(w)
	case acl.PathReuse:
		action, _ := body["action"].(string)
		s.actions = append(s.actions, action)

		if action == "update_token_and_recharge" {
			s.submit(w)
			return
		}

		writeJSON(w, map[string]any{"success": true, "message": "复用成功"})
	default:
		http.NotFound(w, r)
	}
}

func (s *fakeRechargeSite) verify(w http.ResponseWriter, code string) {
	data := map[string]any{"code_status": s.codes[code]}

	switch s.codes[code] {
	case "":
		writeJSON(w, map[string]any{"success": false, "error": "卡密不存在"})
		return
	case "used":
		data["existing_record"] = map[string]any{"bound_email_masked": "u***@example.com"}
	}

	writeJSON(w, map[string]any{"success": true, "data": data})
}

func (s *fakeRechargeSite) submit(w http.ResponseWriter) {
	if s.tokenError != "" {
		writeJSON(w, map[string]any{"success": false, "error": s.tokenError})
		return
	}

	writeJSON(w, map[string]any{"success": true, "message": "充值成功"})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// apiFeature holds one scenario's stack and last response.
type apiFeature struct {
	site     *fakeRechargeSite
	upstream *httptest.Server
	api      *httptest.Server
	client   *http.Client

	status int
	body   []byte
}

func (f *apiFeature) start() error {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	f.site = &fakeRechargeSite{codes: map[string]string{}}
	f.upstream = httptest.NewServer(f.site)

	client, err := clients.New(&clients.Config{
		BaseURL:     f.upstream.URL,
		ServiceName: "chongzhi",
		Timeout:     5 * time.Second,
		Retry:       config.RetryConfig{MaxAttempts: 1},
		Headers:     acl.UpstreamHeaders(config.DefaultUpstreamUserAgent, "zh-CN,zh-Hans;q=0.9"),
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	catalog, err := i18n.New(i18n.DefaultLanguage)
	if err != nil {
		return err
	}

	sessions, err := middleware.NewSessions(middleware.SessionsConfig{
		Store: session.NewMemoryStore(),
		TTL:   config.DefaultSessionTTL,
	})
	if err != nil {
		return err
	}

	svc := app.NewRechargeService(app.RechargeServiceConfig{
		Upstream: acl.NewChongzhi(acl.ChongzhiConfig{Client: client, Logger: logger}),
		Logger:   logger,
	})

	engine := gin.New()
	SetupRouter(engine, RouterConfig{
		Logger:          logger,
		AppConfig:       &config.AppConfig{Name: "recharge-proxy"},
		Catalog:         catalog,
		HealthHandler:   handlers.NewHealthHandler(ports.NewHealthRegistry(), handlers.NewBuildInfo("1.0.0", "", "")),
		RechargeHandler: handlers.NewRechargeHandler(svc, sessions),
		Sessions:        sessions,
		Timeout:         10 * time.Second,
	})

	f.api = httptest.NewServer(engine)

	jar, err := cookiejar.New(nil)
	if err != nil {
		return err
	}

	f.client = &http.Client{Jar: jar, Timeout: 10 * time.Second}

	return nil
}

func (f *apiFeature) stop() {
	if f.api != nil {
		f.api.Close()
	}

	if f.upstream != nil {
		f.upstream.Close()
	}
}

func (f *apiFeature) siteKnowsCode(code, status string) error {
	f.site.mu.Lock()
	defer f.site.mu.Unlock()

	f.site.codes[code] = status

	return nil
}

func (f *apiFeature) siteRejectsTokens(msg string) error {
	f.site.mu.Lock()
	defer f.site.mu.Unlock()

	f.site.tokenError = msg

	return nil
}

func (f *apiFeature) siteIsDown() error {
	f.site.mu.Lock()
	defer f.site.mu.Unlock()

	f.site.down = true

	return nil
}

func (f *apiFeature) send(ctx context.Context, method, path string, body io.Reader) error {
	req, err := http.NewRequestWithContext(ctx, method, f.api.URL+path, body)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	f.status = resp.StatusCode

	f.body, err = io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	return nil
}

func (f *apiFeature) iPOST(ctx context.Context, path string, doc *godog.DocString) error {
	return f.send(ctx, http.MethodPost, path, bytes.NewBufferString(doc.Content))
}

func (f *apiFeature) iGET(ctx context.Context, path string) error {
	return f.send(ctx, http.MethodGet, path, nil)
}

func (f *apiFeature) statusShouldBe(want int) error {
	if f.status != want {
		return fmt.Errorf("expected status %d, got %d. Body: %s", want, f.status, f.body)
	}

	return nil
}

func (f *apiFeature) fieldShouldBe(field, want string) error {
	var body map[string]any
	if err := json.Unmarshal(f.body, &body); err != nil {
		return fmt.Errorf("response is not a JSON object: %w. Body: %s", err, f.body)
	}

	got, ok := body[field]
	if !ok {
		return fmt.Errorf("response has no field %q. Body: %s", field, f.body)
	}

	if fmt.Sprint(got) != want {
		return fmt.Errorf("expected %s=%q, got %q", field, want, fmt.Sprint(got))
	}

	return nil
}

func (f *apiFeature) responseShouldContain(text string) error {
	if !strings.Contains(string(f.body), text) {
		return fmt.Errorf("response body does not contain %q.\nBody: %s", text, f.body)
	}

	return nil
}

func (f *apiFeature) siteReceived(action string) error {
	f.site.mu.Lock()
	defer f.site.mu.Unlock()

	for _, a := range f.site.actions {
		if a == action {
			return nil
		}
	}

	return fmt.Errorf("recharge site never received %q, got %v", action, f.site.actions)
}

func initializeAPIScenario(sc *godog.ScenarioContext) {
	f := &apiFeature{}

	sc.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		return ctx, f.start()
	})

	sc.After(func(ctx context.Context, _ *godog.Scenario, err error) (context.Context, error) {
		f.stop()
		return ctx, err
	})

	sc.Step(`^the recharge site knows code "([^"]*)" as "([^"]*)"$`, f.siteKnowsCode)
	sc.Step(`^the recharge site rejects tokens with "([^"]*)"$`, f.siteRejectsTokens)
	sc.Step(`^the recharge site is down$`, f.siteIsDown)
	sc.Step(`^I POST "([^"]*)" with:$`, f.iPOST)
	sc.Step(`^I GET "([^"]*)"$`, f.iGET)
	sc.Step(`^the response status should be (\d+)$`, f.statusShouldBe)
	sc.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, f.fieldShouldBe)
	sc.Step(`^the response should contain "([^"]*)"$`, f.responseShouldContain)
	sc.Step(`^the recharge site should have received "([^"]*)"$`, f.siteReceived)
}

// TestFeatures runs the API feature scenarios against a fake recharge site.
func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: initializeAPIScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"testdata/features"},
			TestingT: t,
			Strict:   true,
		},
	}

	if status := suite.Run(); status != 0 {
		t.Fatalf("non-zero status %d returned, failed to run feature tests", status)
	}
}
