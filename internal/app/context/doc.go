// Package context provides request-scoped state for the application services
// using a two-phase request context.
//
// # Phase 1: Lazy Memoization
//
// GetOrFetch caches a read for the rest of the request. Enrichment looks up
// a user's tag vocabulary once even when several steps need it:
//
//	tags, err := context.Memo(ctx, "tags:"+userID, func(ctx context.Context) ([]string, error) {
//	    return vocabulary.Tags(ctx, userID)
//	})
//
// [Memo] falls back to a direct fetch when ctx carries no RequestContext.
//
// # Phase 2: Staged Writes
//
// Writes that must succeed together are staged as actions and committed in
// order. A failure rolls back the actions that already ran, newest first:
//
//	rc := context.New(ctx)
//	rc.AddAction(&createBookmarkAction{...})
//	rc.AddAction(&indexBookmarkAction{...})
//
//	if err := rc.Commit(ctx); err != nil {
//	    // the stored bookmark was deleted again
//	}
package context
