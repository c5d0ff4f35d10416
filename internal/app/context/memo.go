package context

import (
	"context"
	"fmt"
)

// Memo returns the value cached under key on the RequestContext carried by
// ctx, calling fetch on a miss. Without a RequestContext it calls fetch
// directly. A cached value of another type under the same key is an error.
func Memo[T any](ctx context.Context, key string, fetch func(context.Context) (T, error)) (T, error) {
	rc := FromContext(ctx)
	if rc == nil {
		return fetch(ctx)
	}

	v, err := rc.GetOrFetch(key, func(ctx context.Context) (any, error) {
		return fetch(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}

	out, ok := v.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("memo %q holds %T, want %T", key, v, zero)
	}

	return out, nil
}
