// Package http serves the recharge proxy's public API over gin.
package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/recharge-proxy/internal/platform/config"
)

const (
	// workflowUpstreamCalls is the most upstream calls one request makes:
	// landing page, verify, then reuse or submit.
	workflowUpstreamCalls = 3

	// writeSlack keeps the write deadline past the request budget so a
	// timed-out request still gets its JSON answer.
	writeSlack = 5 * time.Second

	// maxHeaderBytes bounds request headers. The signed session cookie is
	// the largest header a caller sends.
	maxHeaderBytes = 16 << 10
)

// Server runs the gin engine behind an http.Server sized for the recharge
// workflow.
type Server struct {
	engine         *gin.Engine
	httpServer     *http.Server
	requestTimeout time.Duration
	logger         *slog.Logger
}

// New creates the server. upstreamTimeout is the per-call upstream client
// timeout; the request budget and write deadline are raised to cover a full
// workflow of upstream calls when the configured values are shorter.
func New(cfg *config.ServerConfig, upstreamTimeout time.Duration, logger *slog.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)

	budget := RequestBudget(cfg.RequestTimeout, upstreamTimeout)

	engine := gin.New()
	engine.Use(maxBodySize(cfg.MaxRequestSize))

	httpServer := &http.Server{
		Addr:              net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Handler:           engine,
		ReadHeaderTimeout: cfg.ReadTimeout,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      max(cfg.WriteTimeout, budget+writeSlack),
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    maxHeaderBytes,
	}

	return &Server{
		engine:         engine,
		httpServer:     httpServer,
		requestTimeout: budget,
		logger:         logger,
	}
}

// RequestBudget is how long one API request may run: the configured timeout,
// raised to fit a full workflow when the upstream timeout demands it.
func RequestBudget(configured, upstreamTimeout time.Duration) time.Duration {
	return max(configured, workflowUpstreamCalls*upstreamTimeout)
}

// Engine returns the underlying gin engine for route registration.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// RequestTimeout returns the request budget for the API routes.
func (s *Server) RequestTimeout() time.Duration {
	return s.requestTimeout
}

// Addr returns the server's listening address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Start serves in the background. The returned channel carries a listen
// failure, if any, and is closed once the server stops.
func (s *Server) Start() <-chan error {
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("starting HTTP server",
			slog.String("addr", s.httpServer.Addr),
			slog.Duration("request_timeout", s.requestTimeout),
			slog.Duration("write_timeout", s.httpServer.WriteTimeout),
		)

		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server error: %w", err)
		}

		close(errCh)
	}()

	return errCh
}

// Shutdown stops accepting connections and waits for in-flight recharges
// until ctx is done.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}

	s.logger.Info("HTTP server stopped")

	return nil
}

// maxBodySize caps request bodies. Reads past the cap fail, which the
// binding layer reports as a malformed request.
func maxBodySize(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
