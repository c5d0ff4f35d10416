// Package middleware provides HTTP middleware components for the Gin server.
package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jsamuelsen/bookmark-service/internal/platform/logging"
)

const (
	// HeaderRequestID identifies a single HTTP exchange.
	HeaderRequestID = "X-Request-ID"

	// HeaderCorrelationID ties together every request made on behalf of one
	// client action, including outbound calls to AI providers.
	HeaderCorrelationID = "X-Correlation-ID"

	// ContextKeyRequestID is the gin key holding the request ID.
	ContextKeyRequestID = "request_id"

	// ContextKeyCorrelationID is the gin key holding the correlation ID.
	ContextKeyCorrelationID = "correlation_id"

	// maxIDLength bounds caller-supplied IDs before they reach logs and
	// outbound headers.
	maxIDLength = 128
)

type idKey int

const (
	requestIDKey idKey = iota
	correlationIDKey
)

// tracedID describes one propagated identifier.
type tracedID struct {
	header string
	ginKey string
	ctxKey idKey
	logAs  func(context.Context, string) context.Context
}

var (
	requestIDSpec = tracedID{
		header: HeaderRequestID,
		ginKey: ContextKeyRequestID,
		ctxKey: requestIDKey,
		logAs:  logging.WithRequestID,
	}
	correlationIDSpec = tracedID{
		header: HeaderCorrelationID,
		ginKey: ContextKeyCorrelationID,
		ctxKey: correlationIDKey,
		logAs:  logging.WithCorrelationID,
	}
)

// RequestID accepts a well-formed X-Request-ID from the caller or mints a
// UUID. The ID is echoed in the response, stored on the gin context and the
// request context, and attached to the request logger.
func RequestID() gin.HandlerFunc { return propagate(requestIDSpec) }

// CorrelationID does the same for X-Correlation-ID. Outbound provider calls
// forward it so one bookmark analysis can be followed across services.
func CorrelationID() gin.HandlerFunc { return propagate(correlationIDSpec) }

func propagate(spec tracedID) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(spec.header)
		if !validID(id) {
			id = uuid.NewString()
		}

		c.Set(spec.ginKey, id)
		c.Header(spec.header, id)

		ctx := context.WithValue(c.Request.Context(), spec.ctxKey, id)
		c.Request = c.Request.WithContext(spec.logAs(ctx, id))

		c.Next()
	}
}

// validID accepts IDs of printable, header-safe characters only. Anything
// else is replaced rather than echoed.
func validID(id string) bool {
	if id == "" || len(id) > maxIDLength {
		return false
	}

	for i := range len(id) {
		ch := id[i]
		switch {
		case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z', ch >= '0' && ch <= '9':
		case ch == '-', ch == '_', ch == '.', ch == ':':
		default:
			return false
		}
	}

	return true
}

// GetRequestID returns the request ID set by [RequestID], or "".
func GetRequestID(c *gin.Context) string { return c.GetString(ContextKeyRequestID) }

// GetCorrelationID returns the correlation ID set by [CorrelationID], or "".
func GetCorrelationID(c *gin.Context) string { return c.GetString(ContextKeyCorrelationID) }

// RequestIDFromContext returns the request ID carried by ctx, or "".
func RequestIDFromContext(ctx context.Context) string { return idFrom(ctx, requestIDKey) }

// CorrelationIDFromContext returns the correlation ID carried by ctx, or "".
func CorrelationIDFromContext(ctx context.Context) string { return idFrom(ctx, correlationIDKey) }

// ContextWithRequestID returns a copy of ctx carrying id.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// ContextWithCorrelationID returns a copy of ctx carrying id.
func ContextWithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey, id)
}

func idFrom(ctx context.Context, key idKey) string {
	if ctx == nil {
		return ""
	}

	id, _ := ctx.Value(key).(string)

	return id
}
