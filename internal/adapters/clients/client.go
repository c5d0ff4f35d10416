package clients

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand/v2"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/bookmark-service/internal/adapters/http/middleware"
	"github.com/jsamuelsen/bookmark-service/internal/platform/config"
	"github.com/jsamuelsen/bookmark-service/internal/platform/logging"
)

const (
	instrumentationName = "github.com/jsamuelsen/bookmark-service/internal/adapters/clients"

	defaultTimeout = 30 * time.Second

	transportMaxIdleConns        = 100
	transportMaxIdleConnsPerHost = 10
	transportIdleConnTimeout     = 90 * time.Second
)

// Config configures a [Client] for one provider endpoint.
type Config struct {
	// BaseURL is the provider API root, e.g. "https://api.openai.com/v1".
	BaseURL string

	// ServiceName names the provider in logs, spans, metrics and errors.
	ServiceName string

	// Timeout bounds a single attempt. Retries and backoff come on top.
	Timeout time.Duration

	Retry     config.RetryConfig
	Circuit   config.CircuitBreakerConfig
	Transport config.TransportConfig

	// AuthFunc, when set, decorates every attempt.
	AuthFunc func(*http.Request)

	Logger *slog.Logger
}

// Client calls one AI provider. Each call goes through the provider's
// circuit breaker, is traced and measured, carries the caller's request and
// correlation IDs, and is retried on network errors, 5xx responses and 429
// responses whose Retry-After fits within the retry budget.
//
// Only network errors and 5xx count against the breaker. 4xx responses,
// including 429, are returned to the caller because they concern one API
// key, not the provider.
type Client struct {
	http    *http.Client
	baseURL string
	cfg     *Config
	logger  *slog.Logger
	cb      *CircuitBreaker

	tracer   trace.Tracer
	duration metric.Float64Histogram
	calls    metric.Int64Counter
}

// New creates a client. The config is retained.
func New(cfg *Config) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}

	if cfg.ServiceName == "" {
		return nil, errors.New("service name is required")
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	cfg.Retry.MaxAttempts = max(cfg.Retry.MaxAttempts, 1)

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	logger = logger.With(
		slog.String("component", "clients.Client"),
		slog.String("provider", cfg.ServiceName),
	)

	cb := NewCircuitBreaker(CircuitBreakerConfig{
		MaxFailures:   cfg.Circuit.MaxFailures,
		Timeout:       cfg.Circuit.Timeout,
		HalfOpenLimit: cfg.Circuit.HalfOpenLimit,
	})
	cb.OnStateChange(func(from, to State) {
		logger.Warn("provider circuit changed",
			slog.String("from", from.String()),
			slog.String("to", to.String()),
		)
	})

	meter := otel.Meter(instrumentationName)

	duration, err := meter.Float64Histogram(
		"ai.provider.request.duration",
		metric.WithDescription("Duration of AI provider calls including retries"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating duration metric: %w", err)
	}

	calls, err := meter.Int64Counter(
		"ai.provider.request.total",
		metric.WithDescription("AI provider calls by outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating call counter: %w", err)
	}

	return &Client{
		http: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: newTransport(cfg.Transport),
		},
		baseURL:  strings.TrimSuffix(cfg.BaseURL, "/"),
		cfg:      cfg,
		logger:   logger,
		cb:       cb,
		tracer:   otel.Tracer(instrumentationName),
		duration: duration,
		calls:    calls,
	}, nil
}

// newTransport builds the pooled transport, falling back to package defaults.
func newTransport(tc config.TransportConfig) *http.Transport {
	t := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        tc.MaxIdleConns,
		MaxIdleConnsPerHost: tc.MaxIdleConnsPerHost,
		IdleConnTimeout:     tc.IdleConnTimeout,
	}

	if t.MaxIdleConns <= 0 {
		t.MaxIdleConns = transportMaxIdleConns
	}

	if t.MaxIdleConnsPerHost <= 0 {
		t.MaxIdleConnsPerHost = transportMaxIdleConnsPerHost
	}

	if t.IdleConnTimeout <= 0 {
		t.IdleConnTimeout = transportIdleConnTimeout
	}

	return t
}

// NewRequest builds a request against the base URL. Bodies from
// bytes.Reader, bytes.Buffer and strings.Reader can be replayed on retry.
func (c *Client) NewRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	if body == nil {
		body = http.NoBody
	}

	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	if body != http.NoBody {
		req.Header.Set("Content-Type", "application/json")
	}

	req.Header.Set("Accept", "application/json")

	return req, nil
}

// Do sends req. A response is returned for every status below 500; the
// caller owns its body. Exhausted retries yield an error wrapping
// [ErrMaxRetriesExceeded], and an open breaker a [*CircuitOpenError].
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	start := time.Now()
	logger := logging.FromContextOr(ctx, c.logger).With(
		slog.String("provider", c.cfg.ServiceName),
		slog.String("method", req.Method),
		slog.String("path", req.URL.Path),
	)

	if !c.cb.Allow() {
		c.record(ctx, req.Method, 0, time.Since(start), "circuit_open")
		logger.Warn("provider call rejected by open circuit")

		return nil, &CircuitOpenError{Service: c.cfg.ServiceName, RetryIn: c.cb.RetryIn()}
	}

	ctx, span := c.tracer.Start(ctx, "AI "+c.cfg.ServiceName+" "+req.URL.Path,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", req.Method),
			attribute.String("peer.service", c.cfg.ServiceName),
		),
	)
	defer span.End()

	c.decorate(ctx, req)
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, attempts, err := c.attempt(ctx, req, logger)
	elapsed := time.Since(start)
	span.SetAttributes(attribute.Int("retry.attempts", attempts))

	if err != nil {
		c.cb.RecordFailure()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.record(ctx, req.Method, 0, elapsed, "error")
		logger.Error("provider call failed",
			slog.Int("attempts", attempts),
			slog.Duration("duration", elapsed),
			slog.Any("error", err),
		)

		if ctx.Err() != nil {
			return nil, err
		}

		return nil, fmt.Errorf("%w: %w", ErrMaxRetriesExceeded, err)
	}

	c.cb.RecordSuccess()
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode >= http.StatusBadRequest {
		span.SetStatus(codes.Error, resp.Status)
	}

	c.record(ctx, req.Method, resp.StatusCode, elapsed, strconv.Itoa(resp.StatusCode/100)+"xx")
	logger.Debug("provider call completed",
		slog.Int("status", resp.StatusCode),
		slog.Int("attempts", attempts),
		slog.Duration("duration", elapsed),
	)

	return resp, nil
}

// attempt runs req until it succeeds, fails permanently or runs out of
// attempts. It returns the number of attempts made.
func (c *Client) attempt(ctx context.Context, req *http.Request, logger *slog.Logger) (*http.Response, int, error) {
	var lastErr error

	for n := 1; ; n++ {
		resp, err := c.http.Do(req.WithContext(ctx))

		wait, retry, err := c.classify(resp, err, n)
		if !retry {
			return resp, n, err
		}

		lastErr = err
		if n >= c.cfg.Retry.MaxAttempts {
			return nil, n, lastErr
		}

		logger.Debug("retrying provider call",
			slog.Int("attempt", n+1),
			slog.Duration("wait", wait),
			slog.Any("cause", lastErr),
		)

		select {
		case <-ctx.Done():
			return nil, n, ctx.Err()
		case <-time.After(wait):
		}

		if err := rewindBody(req); err != nil {
			return nil, n, err
		}

		if c.cfg.AuthFunc != nil {
			c.cfg.AuthFunc(req)
		}
	}
}

// classify decides whether the outcome of attempt n is retried and how long
// to wait first. A retried response has its body closed.
func (c *Client) classify(resp *http.Response, err error, n int) (time.Duration, bool, error) {
	if err != nil {
		return c.backoff(n), isRetryableError(err), err
	}

	switch {
	case resp.StatusCode >= http.StatusInternalServerError:
		_ = resp.Body.Close()
		return c.backoff(n), true, fmt.Errorf("provider returned %d", resp.StatusCode)

	case resp.StatusCode == http.StatusTooManyRequests:
		wait, ok := retryAfter(resp.Header.Get("Retry-After"), time.Now())
		if !ok || wait > c.cfg.Retry.MaxInterval {
			return 0, false, nil
		}

		_ = resp.Body.Close()

		return wait, true, errors.New("provider rate limited the call")
	}

	return 0, false, nil
}

// retryAfter parses a Retry-After header in either delay-seconds or
// HTTP-date form.
func retryAfter(value string, now time.Time) (time.Duration, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}

	if secs, err := strconv.Atoi(value); err == nil {
		if secs < 0 {
			return 0, false
		}

		return time.Duration(secs) * time.Second, true
	}

	at, err := http.ParseTime(value)
	if err != nil {
		return 0, false
	}

	return max(at.Sub(now), 0), true
}

// rewindBody resets a consumed request body before another attempt.
func rewindBody(req *http.Request) error {
	if req.Body == nil || req.Body == http.NoBody {
		return nil
	}

	if req.GetBody == nil {
		return errors.New("request body cannot be replayed")
	}

	body, err := req.GetBody()
	if err != nil {
		return fmt.Errorf("rewinding request body: %w", err)
	}

	req.Body = body

	return nil
}

// backoff returns the exponential delay before attempt n+1, capped at
// MaxInterval and spread by JitterFactor in both directions.
func (c *Client) backoff(n int) time.Duration {
	r := c.cfg.Retry

	d := float64(r.InitialInterval) * math.Pow(r.Multiplier, float64(n-1))
	if r.MaxInterval > 0 {
		d = math.Min(d, float64(r.MaxInterval))
	}

	if r.JitterFactor > 0 {
		d += d * r.JitterFactor * (rand.Float64()*2 - 1) //nolint:gosec // jitter only
	}

	return time.Duration(d)
}

// ServiceName returns the provider name.
func (c *Client) ServiceName() string {
	return c.cfg.ServiceName
}

// CircuitState returns the breaker position for readiness reporting.
func (c *Client) CircuitState() State {
	return c.cb.State()
}

// decorate adds the caller's IDs and credentials.
func (c *Client) decorate(ctx context.Context, req *http.Request) {
	if id := middleware.RequestIDFromContext(ctx); id != "" {
		req.Header.Set(middleware.HeaderRequestID, id)
	}

	if id := middleware.CorrelationIDFromContext(ctx); id != "" {
		req.Header.Set(middleware.HeaderCorrelationID, id)
	}

	if c.cfg.AuthFunc != nil {
		c.cfg.AuthFunc(req)
	}
}

func (c *Client) record(ctx context.Context, method string, status int, elapsed time.Duration, outcome string) {
	attrs := []attribute.KeyValue{
		attribute.String("http.method", method),
		attribute.String("peer.service", c.cfg.ServiceName),
		attribute.String("outcome", outcome),
	}

	if status > 0 {
		attrs = append(attrs, attribute.Int("http.status_code", status))
	}

	opt := metric.WithAttributes(attrs...)
	c.duration.Record(ctx, elapsed.Seconds(), opt)
	c.calls.Add(ctx, 1, opt)
}

// isRetryableError reports whether a transport error is worth another
// attempt. Cancellation never is.
func isRetryableError(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var opErr *net.OpError

	return errors.As(err, &opErr)
}
