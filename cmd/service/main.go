// Package main is the entry point for the service.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/otel"
	"golang.org/x/sync/errgroup"

	"github.com/jsamuelsen/recharge-proxy/internal/adapters/clients"
	"github.com/jsamuelsen/recharge-proxy/internal/adapters/clients/acl"
	"github.com/jsamuelsen/recharge-proxy/internal/adapters/http"
	"github.com/jsamuelsen/recharge-proxy/internal/adapters/http/handlers"
	"github.com/jsamuelsen/recharge-proxy/internal/adapters/http/middleware"
	"github.com/jsamuelsen/recharge-proxy/internal/adapters/session"
	"github.com/jsamuelsen/recharge-proxy/internal/app"
	"github.com/jsamuelsen/recharge-proxy/internal/platform/config"
	"github.com/jsamuelsen/recharge-proxy/internal/platform/i18n"
	"github.com/jsamuelsen/recharge-proxy/internal/platform/logging"
	"github.com/jsamuelsen/recharge-proxy/internal/platform/telemetry"
	"github.com/jsamuelsen/recharge-proxy/internal/ports"
)

// Build-time variables, injected via ldflags.
// Example: go build -ldflags "-X main.Version=1.0.0 -X main.Commit=$(git rev-parse HEAD) -X main.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
var (
	// Version is the semantic version of the service.
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "unknown"

	// BuildTime is the timestamp when the binary was built.
	BuildTime = "unknown"
)

// sessionJanitorInterval is how often expired in-memory sessions are dropped.
const sessionJanitorInterval = time.Minute

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. Determine profile from environment
	profile := os.Getenv("APP_ENVIRONMENT")
	if profile == "" {
		profile = "local"
	}

	// 2. Load and validate configuration (fail fast)
	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// 3. Initialize logging
	logger := logging.New(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: cfg.App.Version,
		File: logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	})
	slog.SetDefault(logger)

	logger.Info("starting service",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("environment", cfg.App.Environment),
		slog.String("upstream", cfg.Upstream.BaseURL),
		slog.String("session_backend", cfg.Session.Backend),
	)

	// 4. Initialize telemetry (noop if disabled)
	telProvider, err := telemetry.New(ctx, &telemetry.Config{
		Enabled:      cfg.Telemetry.Enabled,
		Endpoint:     cfg.Telemetry.Endpoint,
		ServiceName:  cfg.Telemetry.ServiceName,
		Version:      cfg.App.Version,
		Environment:  cfg.App.Environment,
		SamplingRate: cfg.Telemetry.SamplingRate,
	})
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	defer func() {
		if shutdownErr := telProvider.Shutdown(context.WithoutCancel(ctx)); shutdownErr != nil {
			logger.Error("telemetry shutdown error", slog.Any("error", shutdownErr))
		}
	}()

	metrics, err := telemetry.NewRechargeMetrics(otel.GetMeterProvider())
	if err != nil {
		return fmt.Errorf("creating recharge metrics: %w", err)
	}

	// 5. Load message catalogs
	catalog, err := i18n.New(cfg.I18n.DefaultLanguage)
	if err != nil {
		return fmt.Errorf("loading message catalogs: %w", err)
	}

	// 6. Create health registry
	healthRegistry := ports.NewHealthRegistry()

	// 7. Create caller session store
	store, memStore, closeStore, err := newSessionStore(ctx, cfg.Session, healthRegistry)
	if err != nil {
		return err
	}
	defer closeStore()

	sessions, err := middleware.NewSessions(middleware.SessionsConfig{
		Store:      store,
		CookieName: cfg.Session.CookieName,
		TTL:        cfg.Session.TTL,
		Secure:     cfg.Session.Secure,
	})
	if err != nil {
		return fmt.Errorf("creating session manager: %w", err)
	}

	// 8. Create HTTP client for the recharge site
	httpClient, err := clients.New(&clients.Config{
		BaseURL:     cfg.Upstream.BaseURL,
		ServiceName: cfg.Upstream.Name,
		Timeout:     cfg.Client.Timeout,
		Retry:       cfg.Client.Retry,
		Circuit:     cfg.Client.CircuitBreaker,
		Transport:   cfg.Client.Transport,
		Headers:     acl.UpstreamHeaders(cfg.Upstream.UserAgent, cfg.Upstream.AcceptLanguage),
		Logger:      logger,
	})
	if err != nil {
		return fmt.Errorf("creating HTTP client: %w", err)
	}

	// 9. Create recharge site adapter (ACL pattern)
	upstream := acl.NewChongzhi(acl.ChongzhiConfig{
		Client:        httpClient,
		Name:          cfg.Upstream.Name,
		SessionCookie: cfg.Upstream.SessionCookie,
		Logger:        logger,
	})

	if err := healthRegistry.Register(upstream); err != nil {
		return fmt.Errorf("registering upstream health check: %w", err)
	}

	// 10. Create recharge service (application layer)
	rechargeService := app.NewRechargeService(app.RechargeServiceConfig{
		Upstream:     upstream,
		ErrorService: cfg.Upstream.ErrorService,
		Metrics:      metrics,
		Logger:       logger,
	})

	// 11. Create handlers
	buildInfo := handlers.NewBuildInfo(releaseVersion(cfg.App.Version), Commit, BuildTime)
	healthHandler := handlers.NewHealthHandler(healthRegistry, buildInfo)
	rechargeHandler := handlers.NewRechargeHandler(rechargeService, sessions)

	// 12. Create HTTP server sized for a full workflow of upstream calls
	server := http.New(&cfg.Server, cfg.Client.Timeout, logger)

	// 13. Setup router with all middleware and routes
	routerCfg := http.RouterConfig{
		Logger:          logger,
		AppConfig:       &cfg.App,
		Catalog:         catalog,
		HealthHandler:   healthHandler,
		RechargeHandler: rechargeHandler,
		Sessions:        sessions,
		Timeout:         server.RequestTimeout(),
	}

	if cfg.RateLimit.Enabled {
		routerCfg.RateLimiter = middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	http.SetupRouter(server.Engine(), routerCfg)

	// 14. Run the server and background jobs until a signal or a failure
	g, gctx := errgroup.WithContext(ctx)

	if memStore != nil {
		g.Go(func() error {
			memStore.RunJanitor(gctx, sessionJanitorInterval)
			return nil
		})
	}

	serverErr := server.Start()

	g.Go(func() error {
		return waitForShutdown(gctx, logger, server, serverErr, cfg.Server.ShutdownTimeout)
	})

	return g.Wait()
}

// newSessionStore builds the configured caller session backend. The memory
// store is also returned on its own so its janitor can be started.
func newSessionStore(
	ctx context.Context,
	cfg config.SessionConfig,
	registry ports.HealthRegistry,
) (ports.SessionStore, *session.MemoryStore, func(), error) {
	noop := func() {}

	switch cfg.Backend {
	case config.SessionBackendCookie:
		store, err := session.NewCookieStore(cfg.Secret)
		if err != nil {
			return nil, nil, noop, fmt.Errorf("creating cookie session store: %w", err)
		}

		return store, nil, noop, nil

	case config.SessionBackendRedis:
		client, err := session.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, noop, fmt.Errorf("creating redis session store: %w", err)
		}

		store := session.NewRedisStore(client, cfg.Redis.KeyPrefix)
		if err := registry.Register(store); err != nil {
			_ = store.Close()

			return nil, nil, noop, fmt.Errorf("registering redis health check: %w", err)
		}

		return store, nil, func() { _ = store.Close() }, nil

	default:
		store := session.NewMemoryStore()

		return store, store, noop, nil
	}
}

// releaseVersion prefers the ldflags version over the configured one.
func releaseVersion(configured string) string {
	if Version == "dev" {
		return configured
	}

	return Version
}

// waitForShutdown blocks until the context is cancelled or the server fails.
// It then performs graceful shutdown of the HTTP server.
func waitForShutdown(
	ctx context.Context,
	logger *slog.Logger,
	server *http.Server,
	serverErr <-chan error,
	shutdownTimeout time.Duration,
) error {
	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}

		return nil

	case <-ctx.Done():
		logger.Info("received shutdown signal", slog.Any("cause", context.Cause(ctx)))
	}

	// Create shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	logger.Info("initiating graceful shutdown",
		slog.Duration("timeout", shutdownTimeout),
	)

	// Stop accepting new requests, drain in-flight
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("shutdown complete")

	return nil
}
