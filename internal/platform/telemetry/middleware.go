package telemetry

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/jsamuelsen/recharge-proxy/telemetry"

// TraceIDHeader carries the active trace id back to callers.
const TraceIDHeader = "X-Trace-ID"

// HTTPMetrics holds HTTP server instruments.
type HTTPMetrics struct {
	requestDuration metric.Float64Histogram
	requestTotal    metric.Int64Counter
	activeRequests  metric.Int64UpDownCounter
}

// NewHTTPMetrics creates HTTP server instruments on the global meter.
func NewHTTPMetrics() (*HTTPMetrics, error) {
	meter := otel.Meter(instrumentationName)

	requestDuration, err := meter.Float64Histogram(
		"http.server.request.duration",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	requestTotal, err := meter.Int64Counter(
		"http.server.request.total",
		metric.WithDescription("Total number of HTTP requests"),
	)
	if err != nil {
		return nil, err
	}

	activeRequests, err := meter.Int64UpDownCounter(
		"http.server.active_requests",
		metric.WithDescription("Number of active HTTP requests"),
	)
	if err != nil {
		return nil, err
	}

	return &HTTPMetrics{
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		activeRequests:  activeRequests,
	}, nil
}

// Middleware records HTTP server metrics and echoes the trace id header.
// Pair it with TracingMiddleware, which must run first so a span exists.
func Middleware() gin.HandlerFunc {
	metrics, err := NewHTTPMetrics()
	if err != nil {
		otel.Handle(err)
	}

	return func(c *gin.Context) {
		start := time.Now()
		route := c.FullPath()

		if route == "" {
			route = "unmatched"
		}

		if metrics != nil {
			attrs := metric.WithAttributes(
				attribute.String("http.method", c.Request.Method),
				attribute.String("http.route", route),
			)

			metrics.activeRequests.Add(c.Request.Context(), 1, attrs)
			defer metrics.activeRequests.Add(c.Request.Context(), -1, attrs)
		}

		c.Next()

		span := trace.SpanFromContext(c.Request.Context())
		if span.SpanContext().HasTraceID() {
			c.Header(TraceIDHeader, span.SpanContext().TraceID().String())
		}

		if metrics != nil {
			attrs := metric.WithAttributes(
				attribute.String("http.method", c.Request.Method),
				attribute.String("http.route", route),
				attribute.Int("http.status_code", c.Writer.Status()),
			)
			metrics.requestDuration.Record(c.Request.Context(), time.Since(start).Seconds(), attrs)
			metrics.requestTotal.Add(c.Request.Context(), 1, attrs)
		}
	}
}

// TracingMiddleware returns the otelgin tracing middleware.
func TracingMiddleware(serviceName string) gin.HandlerFunc {
	return otelgin.Middleware(serviceName)
}
