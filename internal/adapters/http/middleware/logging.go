package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/bookmark-service/internal/platform/logging"
)

// probePrefix marks liveness and readiness routes, which are never logged.
const probePrefix = "/-/"

// Logging writes one line per completed request through the request logger,
// which already carries the request and correlation IDs. The route template
// is logged instead of the raw path so bookmark IDs and search terms stay out
// of the logs. Server errors log at ERROR and client errors at WARN.
//
// logger is used only when no request logger is on the context.
func Logging(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, probePrefix) {
			c.Next()
			return
		}

		start := time.Now()

		c.Next()

		reqLogger := logging.FromContextOr(c.Request.Context(), logger)

		status := c.Writer.Status()
		latency := time.Since(start)

		attrs := []slog.Attr{
			slog.String("method", c.Request.Method),
			slog.String("route", routeOf(c)),
			slog.Int("status", status),
			slog.Int64("latency_ms", latency.Milliseconds()),
			slog.Int("bytes", max(c.Writer.Size(), 0)),
			slog.String("client_ip", c.ClientIP()),
		}

		if claims := GetClaims(c); claims != nil {
			attrs = append(attrs, slog.String("user_id", claims.Subject))
		}

		if errs := c.Errors.ByType(gin.ErrorTypeAny); len(errs) > 0 {
			attrs = append(attrs, slog.String("errors", errs.String()))
		}

		reqLogger.LogAttrs(c.Request.Context(), levelFor(status), "request completed", attrs...)
	}
}

// routeOf returns the matched route template, or "unmatched" for 404s that
// never reached a handler.
func routeOf(c *gin.Context) string {
	if route := c.FullPath(); route != "" {
		return route
	}

	return "unmatched"
}

func levelFor(status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}
