// Package middleware provides HTTP middleware for the Gin framework.
package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jsamuelsen/recharge-proxy/internal/platform/logging"
)

const (
	// HeaderRequestID is the header name for request ID.
	HeaderRequestID = "X-Request-ID"

	// HeaderCorrelationID is the header name for correlation ID. Unlike the
	// request ID it is kept across the verify, submit and reuse calls of one
	// caller when the front end echoes it back.
	HeaderCorrelationID = "X-Correlation-ID"

	// ContextKeyRequestID is the gin context key for the request ID.
	ContextKeyRequestID = "request_id"

	// ContextKeyCorrelationID is the gin context key for the correlation ID.
	ContextKeyCorrelationID = "correlation_id"
)

type ctxKey string

const (
	ctxKeyRequestID     ctxKey = "request_id"
	ctxKeyCorrelationID ctxKey = "correlation_id"
)

// idMiddlewareConfig configures the ID middleware behavior.
type idMiddlewareConfig struct {
	headerName string
	ginKey     string
	enrich     func(ctx context.Context, id string) context.Context
}

// createIDMiddleware creates middleware that extracts or generates an ID,
// echoes it in the response and stores it for handlers, loggers and the
// upstream client.
func createIDMiddleware(cfg idMiddlewareConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(cfg.headerName)
		if id == "" {
			id = uuid.NewString()
		}

		c.Set(cfg.ginKey, id)
		c.Header(cfg.headerName, id)
		c.Request = c.Request.WithContext(cfg.enrich(c.Request.Context(), id))

		c.Next()
	}
}

// RequestID returns middleware that extracts or generates a request ID.
func RequestID() gin.HandlerFunc {
	return createIDMiddleware(idMiddlewareConfig{
		headerName: HeaderRequestID,
		ginKey:     ContextKeyRequestID,
		enrich: func(ctx context.Context, id string) context.Context {
			return logging.WithRequestID(ContextWithRequestID(ctx, id), id)
		},
	})
}

// CorrelationID returns middleware that propagates or starts a correlation ID.
func CorrelationID() gin.HandlerFunc {
	return createIDMiddleware(idMiddlewareConfig{
		headerName: HeaderCorrelationID,
		ginKey:     ContextKeyCorrelationID,
		enrich: func(ctx context.Context, id string) context.Context {
			return logging.WithCorrelationID(ContextWithCorrelationID(ctx, id), id)
		},
	})
}

// GetRequestID returns the request ID stored by RequestID, or "".
func GetRequestID(c *gin.Context) string {
	return c.GetString(ContextKeyRequestID)
}

// GetCorrelationID returns the correlation ID stored by CorrelationID, or "".
func GetCorrelationID(c *gin.Context) string {
	return c.GetString(ContextKeyCorrelationID)
}

// RequestIDFromContext extracts the request ID from context.Context.
// The upstream client uses it to tag outgoing calls.
func RequestIDFromContext(ctx context.Context) string {
	return stringValue(ctx, ctxKeyRequestID)
}

// CorrelationIDFromContext extracts the correlation ID from context.Context.
func CorrelationIDFromContext(ctx context.Context) string {
	return stringValue(ctx, ctxKeyCorrelationID)
}

// ContextWithRequestID stores a request ID in the context.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKeyRequestID, id)
}

// ContextWithCorrelationID stores a correlation ID in the context.
func ContextWithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKeyCorrelationID, id)
}

func stringValue(ctx context.Context, key ctxKey) string {
	if ctx == nil {
		return ""
	}

	s, _ := ctx.Value(key).(string)

	return s
}
