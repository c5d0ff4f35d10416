package app

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// PartialResult is one settled call: its value, or the error it failed with.
type PartialResult[T any] struct {
	Value T
	Err   error
}

// ParallelPartial3 runs three differently typed functions concurrently and
// waits for all of them to settle. A failure in one never cancels the others.
func ParallelPartial3[T1, T2, T3 any](
	ctx context.Context,
	fn1 func(context.Context) (T1, error),
	fn2 func(context.Context) (T2, error),
	fn3 func(context.Context) (T3, error),
) (r1 PartialResult[T1], r2 PartialResult[T2], r3 PartialResult[T3]) {
	var wg sync.WaitGroup

	wg.Go(func() {
		v, err := fn1(ctx)
		r1 = PartialResult[T1]{Value: v, Err: err}
	})

	wg.Go(func() {
		v, err := fn2(ctx)
		r2 = PartialResult[T2]{Value: v, Err: err}
	})

	wg.Go(func() {
		v, err := fn3(ctx)
		r3 = PartialResult[T3]{Value: v, Err: err}
	})

	wg.Wait()

	return r1, r2, r3
}

// ForEachLimit calls fn for every item with at most limit calls in flight.
// The first failure cancels ctx for the calls still running and stops new
// ones from starting; it is returned tagged with the item's index.
func ForEachLimit[T any](ctx context.Context, limit int, items []T, fn func(context.Context, T) error) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(limit, 1))

	for i, item := range items {
		if ctx.Err() != nil {
			break
		}

		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}

			if err := fn(ctx, item); err != nil {
				return fmt.Errorf("item %d: %w", i, err)
			}

			return nil
		})
	}

	return g.Wait()
}
