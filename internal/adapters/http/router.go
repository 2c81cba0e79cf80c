package http

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/recharge-proxy/internal/adapters/http/handlers"
	"github.com/jsamuelsen/recharge-proxy/internal/adapters/http/middleware"
	"github.com/jsamuelsen/recharge-proxy/internal/platform/config"
	"github.com/jsamuelsen/recharge-proxy/internal/platform/i18n"
	"github.com/jsamuelsen/recharge-proxy/internal/platform/telemetry"
)

// DefaultRequestTimeout is the default timeout for API requests.
const DefaultRequestTimeout = 100 * time.Second

// RouterConfig contains configuration for setting up the router.
type RouterConfig struct {
	// Logger is the structured logger for request logging.
	Logger *slog.Logger

	// AppConfig contains application configuration.
	AppConfig *config.AppConfig

	// Catalog localizes the service's own messages.
	Catalog *i18n.Catalog

	// HealthHandler handles health check endpoints.
	HealthHandler *handlers.HealthHandler

	// RechargeHandler handles the recharge API.
	RechargeHandler *handlers.RechargeHandler

	// Sessions binds caller sessions to the session cookie.
	Sessions *middleware.Sessions

	// RateLimiter limits /api per client IP. Nil disables limiting.
	RateLimiter *middleware.RateLimiter

	// Timeout is the /api request timeout.
	Timeout time.Duration
}

// SetupRouter configures all routes and middleware on the Gin engine.
// Middleware is applied in the following order (first to last):
//  1. Recovery - catch panics first
//  2. Request ID - generate/extract request ID
//  3. Correlation ID - handle distributed tracing correlation
//  4. OpenTelemetry - tracing and metrics
//  5. Logging - request logging (skips ops endpoints)
//  6. Locale - message language from Accept-Language
//
// Route groups:
//   - /-/ (internal): liveness, readiness, build info and metrics
//   - /api/ (public API): rate limit, timeout and caller session
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	engine.Use(
		middleware.Recovery(cfg.Logger),
		middleware.RequestID(),
		middleware.CorrelationID(),
		telemetry.TracingMiddleware(cfg.AppConfig.Name),
		telemetry.Middleware(),
		middleware.Logging(cfg.Logger),
		middleware.Locale(cfg.Catalog),
	)

	engine.NoRoute(NotFound)

	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterHealthRoutes(engine.Group("/-"))
	}

	api := engine.Group("/api")
	if cfg.RateLimiter != nil {
		api.Use(cfg.RateLimiter.Middleware())
	}

	if cfg.Timeout > 0 {
		api.Use(middleware.Timeout(cfg.Timeout))
	}

	setupAPIRoutes(api, cfg)
}

// setupAPIRoutes registers the public API routes.
func setupAPIRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterAPIRoutes(rg)
	}

	if cfg.RechargeHandler == nil {
		return
	}

	recharge := rg.Group("")
	if cfg.Sessions != nil {
		recharge.Use(cfg.Sessions.Middleware())
	}

	cfg.RechargeHandler.RegisterRechargeRoutes(recharge)
}
