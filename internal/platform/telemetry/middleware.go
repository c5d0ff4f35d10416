package telemetry

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const (
	instrumentationName = "github.com/jsamuelsen/bookmark-service/internal/platform/telemetry"

	// HeaderTraceID echoes the server span's trace ID to the caller.
	HeaderTraceID = "X-Trace-ID"

	probePrefix = "/-/"
)

// serverMetrics are the OTel instruments recorded per API request.
type serverMetrics struct {
	duration metric.Float64Histogram
	inFlight metric.Int64UpDownCounter
}

func newServerMetrics(meter metric.Meter) (*serverMetrics, error) {
	duration, err := meter.Float64Histogram(
		"http.server.request.duration",
		metric.WithDescription("API request duration"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	inFlight, err := meter.Int64UpDownCounter(
		"http.server.active_requests",
		metric.WithDescription("API requests being served"),
	)
	if err != nil {
		return nil, err
	}

	return &serverMetrics{duration: duration, inFlight: inFlight}, nil
}

// Tracing starts an otelgin server span for each API request. Probe routes
// under /-/ are not traced.
func Tracing(serviceName string) gin.HandlerFunc {
	return otelgin.Middleware(serviceName,
		otelgin.WithFilter(func(r *http.Request) bool {
			return !isProbe(r.URL.Path)
		}),
	)
}

// Metrics records duration and in-flight counts per API route and returns
// the active trace ID in X-Trace-ID. It must run after [Tracing].
func Metrics() gin.HandlerFunc {
	metrics, err := newServerMetrics(otel.Meter(instrumentationName))
	if err != nil {
		otel.Handle(err)
	}

	return func(c *gin.Context) {
		if isProbe(c.Request.URL.Path) {
			c.Next()
			return
		}

		if sc := trace.SpanContextFromContext(c.Request.Context()); sc.HasTraceID() {
			c.Header(HeaderTraceID, sc.TraceID().String())
		}

		if metrics == nil {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		method := attribute.String("http.request.method", c.Request.Method)

		metrics.inFlight.Add(ctx, 1, metric.WithAttributes(method))
		defer metrics.inFlight.Add(ctx, -1, metric.WithAttributes(method))

		start := time.Now()

		c.Next()

		metrics.duration.Record(ctx, time.Since(start).Seconds(), metric.WithAttributes(
			method,
			attribute.String("http.route", c.FullPath()),
			attribute.String("http.response.status_code", strconv.Itoa(c.Writer.Status())),
		))
	}
}

func isProbe(path string) bool {
	return strings.HasPrefix(path, probePrefix)
}
