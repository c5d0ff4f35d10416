package context

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

type ctxKey struct{}

// RequestContext memoizes reads and stages writes for a single request.
// Concurrent lookups of the same key share one fetch.
type RequestContext struct {
	ctx    context.Context
	flight singleflight.Group

	mu        sync.Mutex
	values    map[string]any
	actions   []Action
	committed bool
}

// New creates a RequestContext bound to ctx. Fetches run with ctx, not with
// the caller's context, so a memoized value never depends on which caller
// asked first.
func New(ctx context.Context) *RequestContext {
	return &RequestContext{ctx: ctx, values: make(map[string]any)}
}

// FromContext returns the RequestContext stored in ctx, or nil.
func FromContext(ctx context.Context) *RequestContext {
	if ctx == nil {
		return nil
	}

	rc, _ := ctx.Value(ctxKey{}).(*RequestContext)

	return rc
}

// WithContext stores rc in ctx.
func WithContext(ctx context.Context, rc *RequestContext) context.Context {
	return context.WithValue(ctx, ctxKey{}, rc)
}

// GetOrFetch returns the value cached under key, calling fetchFn on a miss.
// Errors are not cached.
func (rc *RequestContext) GetOrFetch(key string, fetchFn func(ctx context.Context) (any, error)) (any, error) {
	if v, ok := rc.cached(key); ok {
		return v, nil
	}

	v, err, _ := rc.flight.Do(key, func() (any, error) {
		if v, ok := rc.cached(key); ok {
			return v, nil
		}

		v, err := fetchFn(rc.ctx)
		if err != nil {
			return nil, err
		}

		rc.mu.Lock()
		rc.values[key] = v
		rc.mu.Unlock()

		return v, nil
	})

	return v, err
}

func (rc *RequestContext) cached(key string) (any, bool) {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	v, ok := rc.values[key]

	return v, ok
}
