package http

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/recharge-proxy/internal/platform/config"
)

func testServerConfig() *config.ServerConfig {
	return &config.ServerConfig{
		Host:           "127.0.0.1",
		Port:           0,
		ReadTimeout:    5 * time.Second,
		WriteTimeout:   105 * time.Second,
		IdleTimeout:    30 * time.Second,
		RequestTimeout: 100 * time.Second,
		MaxRequestSize: 1 << 20,
	}
}

func newTestServer(t *testing.T, mutate func(*config.ServerConfig), upstreamTimeout time.Duration) *Server {
	t.Helper()

	cfg := testServerConfig()
	if mutate != nil {
		mutate(cfg)
	}

	srv := New(cfg, upstreamTimeout, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NotNil(t, srv)

	return srv
}

func TestRequestBudget(t *testing.T) {
	tests := []struct {
		name       string
		configured time.Duration
		upstream   time.Duration
		want       time.Duration
	}{
		{name: "configured covers the workflow", configured: 100 * time.Second, upstream: 30 * time.Second, want: 100 * time.Second},
		{name: "slow upstream raises the budget", configured: 100 * time.Second, upstream: 60 * time.Second, want: 180 * time.Second},
		{name: "exact fit", configured: 90 * time.Second, upstream: 30 * time.Second, want: 90 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RequestBudget(tt.configured, tt.upstream))
		})
	}
}

func TestNew_SizesServerForWorkflow(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		srv := newTestServer(t, nil, 30*time.Second)

		assert.Equal(t, 100*time.Second, srv.RequestTimeout())
		assert.Equal(t, 105*time.Second, srv.httpServer.WriteTimeout)
		assert.Equal(t, 5*time.Second, srv.httpServer.ReadHeaderTimeout)
		assert.Equal(t, maxHeaderBytes, srv.httpServer.MaxHeaderBytes)
	})

	t.Run("write deadline follows a raised budget", func(t *testing.T) {
		srv := newTestServer(t, func(c *config.ServerConfig) {
			c.WriteTimeout = 10 * time.Second
		}, 60*time.Second)

		assert.Equal(t, 180*time.Second, srv.RequestTimeout())
		assert.Equal(t, 180*time.Second+writeSlack, srv.httpServer.WriteTimeout)
	})
}

func TestServerAddr(t *testing.T) {
	tests := []struct {
		name string
		host string
		port int
		want string
	}{
		{name: "localhost", host: "localhost", port: 8080, want: "localhost:8080"},
		{name: "all interfaces", host: "0.0.0.0", port: 3000, want: "0.0.0.0:3000"},
		{name: "ipv6", host: "::1", port: 8080, want: "[::1]:8080"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, func(c *config.ServerConfig) {
				c.Host = tt.host
				c.Port = tt.port
			}, time.Second)

			assert.Equal(t, tt.want, srv.Addr())
		})
	}
}

func TestServerEngine(t *testing.T) {
	srv := newTestServer(t, nil, time.Second)

	assert.IsType(t, &gin.Engine{}, srv.Engine())
}

func TestServerStartShutdown(t *testing.T) {
	srv := newTestServer(t, nil, time.Second)

	errCh := srv.Start()

	time.Sleep(50 * time.Millisecond)

	select {
	case err := <-errCh:
		require.NoError(t, err)
	default:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, srv.Shutdown(ctx))

	select {
	case _, ok := <-errCh:
		assert.False(t, ok, "error channel should be closed")
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for server to stop")
	}
}

func TestMaxBodySize(t *testing.T) {
	srv := newTestServer(t, func(c *config.ServerConfig) {
		c.MaxRequestSize = 64
	}, time.Second)

	srv.Engine().POST("/api/verify-code", func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)

		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}

		c.JSON(http.StatusOK, gin.H{"received": len(body)})
	})

	tests := []struct {
		name string
		body string
		want int
	}{
		{name: "activation code fits", body: `{"activation_code":"QWER-XDKO-DWJN-R21Q"}`, want: http.StatusOK},
		{name: "oversized body is cut off", body: strings.Repeat("x", 65), want: http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/verify-code", strings.NewReader(tt.body))

			srv.Engine().ServeHTTP(w, req)

			assert.Equal(t, tt.want, w.Code)
		})
	}
}
