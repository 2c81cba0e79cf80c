package clients

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand/v2"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/recharge-proxy/internal/adapters/http/middleware"
	"github.com/jsamuelsen/recharge-proxy/internal/platform/config"
	"github.com/jsamuelsen/recharge-proxy/internal/platform/logging"
)

const (
	// instrumentationName is used for OpenTelemetry tracer and meter.
	instrumentationName = "github.com/jsamuelsen/recharge-proxy/internal/adapters/clients"

	// httpStatusCategoryDivisor divides status code to get category (2xx, 4xx, 5xx).
	httpStatusCategoryDivisor = 100

	// backoffJitterFactor is the jitter percentage for backoff calculation (±25%).
	backoffJitterFactor = 0.25

	// defaultTimeout is the default request timeout if not configured.
	defaultTimeout = 30 * time.Second

	// jitterRangeMultiplier converts rand [0,1) to [-1,1) for symmetric jitter.
	jitterRangeMultiplier = 2
)

// Config configures an HTTP client instance.
type Config struct {
	// BaseURL is the base URL for all requests (e.g., "https://chongzhi.pro").
	BaseURL string

	// ServiceName identifies the upstream for logging and tracing.
	ServiceName string

	// Timeout bounds each attempt, including reading the response body.
	Timeout time.Duration

	// Retry configures retries. Only idempotent methods are ever retried.
	Retry config.RetryConfig

	// Circuit configures circuit breaker behavior.
	Circuit config.CircuitBreakerConfig

	// Transport configures connection pooling and TLS verification.
	Transport config.TransportConfig

	// Headers are set on every request unless the request already carries them.
	Headers http.Header

	// Logger is an optional logger. If nil, a default logger is used.
	Logger *slog.Logger
}

// RequestOption mutates an outgoing request before it is sent.
type RequestOption func(*http.Request)

// WithHeader sets a request header.
func WithHeader(key, value string) RequestOption {
	return func(r *http.Request) {
		r.Header.Set(key, value)
	}
}

// Client is an instrumented HTTP client for the upstream.
// It provides:
//   - Per-attempt timeouts and TLS posture from configuration
//   - Retry with exponential backoff for idempotent requests
//   - Circuit breaker protection
//   - OpenTelemetry tracing and metrics
//   - Request/correlation ID propagation
//
// Do returns every HTTP response regardless of status; only failures to obtain
// a response are errors, always as *TransportError.
type Client struct {
	http        *http.Client
	baseURL     string
	serviceName string
	cfg         *Config
	logger      *slog.Logger
	cb          *CircuitBreaker

	tracer trace.Tracer

	requestDuration metric.Float64Histogram
	requestTotal    metric.Int64Counter
}

// New creates a new instrumented HTTP client.
func New(cfg *Config) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}

	if cfg.ServiceName == "" {
		return nil, errors.New("service name is required")
	}

	if cfg.BaseURL == "" {
		return nil, errors.New("base url is required")
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	if cfg.Retry.MaxAttempts < 1 {
		cfg.Retry.MaxAttempts = 1
	}

	cb := NewCircuitBreaker(CircuitBreakerConfig{
		MaxFailures:   cfg.Circuit.MaxFailures,
		Timeout:       cfg.Circuit.Timeout,
		HalfOpenLimit: cfg.Circuit.HalfOpenLimit,
	})

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	logger = logger.With(
		slog.String("component", "clients.Client"),
		slog.String("upstream", cfg.ServiceName),
	)

	cb.OnStateChange(func(from, to State) {
		logger.Warn("circuit breaker state changed",
			slog.String("from", from.String()),
			slog.String("to", to.String()),
		)
	})

	meter := otel.Meter(instrumentationName)

	requestDuration, err := meter.Float64Histogram(
		"http.client.request.duration",
		metric.WithDescription("Duration of HTTP client requests"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating duration metric: %w", err)
	}

	requestTotal, err := meter.Int64Counter(
		"http.client.request.total",
		metric.WithDescription("Total number of HTTP client requests"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating request counter: %w", err)
	}

	return &Client{
		http: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: newTransport(cfg.Transport),
		},
		baseURL:         strings.TrimSuffix(cfg.BaseURL, "/"),
		serviceName:     cfg.ServiceName,
		cfg:             cfg,
		logger:          logger,
		cb:              cb,
		tracer:          otel.Tracer(instrumentationName),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
	}, nil
}

func newTransport(cfg config.TransportConfig) *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone() //nolint:errcheck,forcetypeassert // DefaultTransport is always *http.Transport

	if cfg.MaxIdleConns > 0 {
		t.MaxIdleConns = cfg.MaxIdleConns
	}

	if cfg.MaxIdleConnsPerHost > 0 {
		t.MaxIdleConnsPerHost = cfg.MaxIdleConnsPerHost
	}

	if cfg.IdleConnTimeout > 0 {
		t.IdleConnTimeout = cfg.IdleConnTimeout
	}

	t.TLSClientConfig = &tls.Config{
		MinVersion:         tls.VersionTLS12,
		InsecureSkipVerify: cfg.InsecureSkipVerify, //nolint:gosec // upstream certificate is not verified
	}

	return t
}

// BaseURL returns the configured base URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do executes an HTTP request with circuit breaker, tracing, and logging.
// Idempotent requests are retried on transport errors and 5xx responses; the
// final response is returned whatever its status.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	startTime := time.Now()
	logger := logging.FromContext(ctx).With(
		slog.String("upstream", c.serviceName),
		slog.String("method", req.Method),
		slog.String("path", req.URL.Path),
	)

	if !c.cb.Allow() {
		c.recordMetrics(ctx, req.Method, 0, time.Since(startTime), "circuit_open")
		logger.Warn("request blocked by circuit breaker")

		return nil, &TransportError{Kind: FailureOther, Err: ErrCircuitOpen}
	}

	c.injectHeaders(ctx, req)

	ctx, span := c.tracer.Start(ctx, fmt.Sprintf("HTTP %s %s", req.Method, c.serviceName),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", req.Method),
			attribute.String("http.url", req.URL.String()),
			attribute.String("peer.service", c.serviceName),
		),
	)
	defer span.End()

	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, lastErr := c.executeWithRetry(ctx, req, logger)

	return c.recordResult(ctx, req, resp, lastErr, span, logger, startTime)
}

// executeWithRetry performs the request, retrying idempotent methods.
func (c *Client) executeWithRetry(ctx context.Context, req *http.Request, logger *slog.Logger) (*http.Response, error) {
	attempts := 1
	if isIdempotent(req.Method) {
		attempts = c.cfg.Retry.MaxAttempts
	}

	var lastErr error

	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			if err := c.waitForRetry(ctx, attempt, logger); err != nil {
				return nil, err
			}
		}

		resp, err := c.http.Do(req.WithContext(ctx))
		last := attempt == attempts-1

		switch {
		case err != nil:
			lastErr = err
			if !isRetryableError(err) {
				return nil, lastErr
			}

			if !last {
				logger.Debug("request failed with retryable error",
					slog.Int("attempt", attempt+1),
					slog.Any("error", err),
				)
			}
		case resp.StatusCode >= http.StatusInternalServerError && !last:
			logger.Debug("request failed with server error",
				slog.Int("attempt", attempt+1),
				slog.Int("status", resp.StatusCode),
			)
			drain(resp.Body, logger)
		default:
			return resp, nil
		}
	}

	if attempts > 1 {
		return nil, fmt.Errorf("%w: %w", ErrMaxRetriesExceeded, lastErr)
	}

	return nil, lastErr
}

// waitForRetry waits for the backoff duration before retrying.
func (c *Client) waitForRetry(ctx context.Context, attempt int, logger *slog.Logger) error {
	backoff := c.calculateBackoff(attempt)
	logger.Debug("retrying request",
		slog.Int("attempt", attempt+1),
		slog.Duration("backoff", backoff),
	)

	timer := time.NewTimer(backoff)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// recordResult records the final result and updates metrics/circuit breaker.
func (c *Client) recordResult(
	ctx context.Context, req *http.Request, resp *http.Response, lastErr error,
	span trace.Span, logger *slog.Logger, startTime time.Time,
) (*http.Response, error) {
	duration := time.Since(startTime)

	if lastErr != nil {
		kind := classify(lastErr)

		c.cb.RecordFailure()
		span.RecordError(lastErr)
		span.SetStatus(codes.Error, lastErr.Error())
		c.recordMetrics(ctx, req.Method, 0, duration, string(kind))
		logger.Warn("request failed",
			slog.Duration("duration", duration),
			slog.String("kind", string(kind)),
			slog.Any("error", lastErr),
		)

		return nil, &TransportError{Kind: kind, Err: lastErr}
	}

	if resp.StatusCode >= http.StatusInternalServerError {
		c.cb.RecordFailure()
	} else {
		c.cb.RecordSuccess()
	}

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode >= http.StatusBadRequest {
		span.SetStatus(codes.Error, fmt.Sprintf("HTTP %d", resp.StatusCode))
	}

	statusCategory := fmt.Sprintf("%dxx", resp.StatusCode/httpStatusCategoryDivisor)
	c.recordMetrics(ctx, req.Method, resp.StatusCode, duration, statusCategory)

	logger.Debug("request completed",
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", duration),
	)

	return resp, nil
}

// NewRequest builds a request against the base URL.
func (c *Client) NewRequest(
	ctx context.Context, method, path string, body io.Reader, opts ...RequestOption,
) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.buildURL(path), body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	for _, opt := range opts {
		opt(req)
	}

	return req, nil
}

// Get performs an HTTP GET request.
func (c *Client) Get(ctx context.Context, path string, opts ...RequestOption) (*http.Response, error) {
	req, err := c.NewRequest(ctx, http.MethodGet, path, http.NoBody, opts...)
	if err != nil {
		return nil, err
	}

	return c.Do(ctx, req)
}

// Post performs an HTTP POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body io.Reader, opts ...RequestOption) (*http.Response, error) {
	opts = append([]RequestOption{WithHeader("Content-Type", "application/json")}, opts...)

	req, err := c.NewRequest(ctx, http.MethodPost, path, body, opts...)
	if err != nil {
		return nil, err
	}

	return c.Do(ctx, req)
}

// CircuitSnapshot returns the breaker's state and failure count.
func (c *Client) CircuitSnapshot() Snapshot {
	return c.cb.Snapshot()
}

// injectHeaders adds default headers plus request and correlation IDs.
func (c *Client) injectHeaders(ctx context.Context, req *http.Request) {
	for key, values := range c.cfg.Headers {
		if req.Header.Get(key) == "" && len(values) > 0 {
			req.Header.Set(key, values[0])
		}
	}

	if requestID := middleware.RequestIDFromContext(ctx); requestID != "" {
		req.Header.Set(middleware.HeaderRequestID, requestID)
	}

	if correlationID := middleware.CorrelationIDFromContext(ctx); correlationID != "" {
		req.Header.Set(middleware.HeaderCorrelationID, correlationID)
	}
}

// buildURL constructs the full URL from base URL and path.
func (c *Client) buildURL(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	return c.baseURL + path
}

// calculateBackoff returns the backoff duration for the given attempt.
// Uses exponential backoff with jitter.
func (c *Client) calculateBackoff(attempt int) time.Duration {
	backoff := float64(c.cfg.Retry.InitialInterval) * math.Pow(c.cfg.Retry.Multiplier, float64(attempt))

	if backoff > float64(c.cfg.Retry.MaxInterval) {
		backoff = float64(c.cfg.Retry.MaxInterval)
	}

	jitterMultiplier := rand.Float64()*jitterRangeMultiplier - 1 //nolint:gosec // No need for crypto-grade randomness
	backoff += backoff * backoffJitterFactor * jitterMultiplier

	return time.Duration(backoff)
}

// recordMetrics records request metrics.
func (c *Client) recordMetrics(ctx context.Context, method string, statusCode int, duration time.Duration, result string) {
	attrs := []attribute.KeyValue{
		attribute.String("http.method", method),
		attribute.String("peer.service", c.serviceName),
		attribute.String("result", result),
	}

	if statusCode > 0 {
		attrs = append(attrs, attribute.Int("http.status_code", statusCode))
	}

	c.requestDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
	c.requestTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
}

func isIdempotent(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	default:
		return false
	}
}

// isRetryableError reports whether a transport error is worth another attempt.
func isRetryableError(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	return classify(err) != FailureOther
}

func drain(body io.ReadCloser, logger *slog.Logger) {
	_, _ = io.Copy(io.Discard, body)

	if err := body.Close(); err != nil {
		logger.Debug("failed to close response body", slog.Any("error", err))
	}
}
