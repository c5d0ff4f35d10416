// Package auth provides token signing, password hashing and the expiring
// state used to revoke tokens.
package auth

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// ExpiringStore is a bounded keyed store whose entries expire. It replaces
// process-wide maps for transient auth state and is injected where needed.
//
// Entries expire after the store's TTL or when evicted as least recently
// used once capacity is reached.
type ExpiringStore[K comparable, V any] struct {
	cache *expirable.LRU[K, V]
}

// NewExpiringStore creates a store holding at most capacity entries for ttl.
func NewExpiringStore[K comparable, V any](capacity int, ttl time.Duration) *ExpiringStore[K, V] {
	return &ExpiringStore[K, V]{
		cache: expirable.NewLRU[K, V](capacity, nil, ttl),
	}
}

// Put stores v under k, resetting its expiry.
func (s *ExpiringStore[K, V]) Put(k K, v V) {
	s.cache.Add(k, v)
}

// Get returns the live value for k.
func (s *ExpiringStore[K, V]) Get(k K) (V, bool) {
	return s.cache.Get(k)
}

// Contains reports whether k holds a live value without touching recency.
func (s *ExpiringStore[K, V]) Contains(k K) bool {
	return s.cache.Contains(k)
}

// Delete drops k.
func (s *ExpiringStore[K, V]) Delete(k K) {
	s.cache.Remove(k)
}

// Len returns the number of entries, expired ones included until purged.
func (s *ExpiringStore[K, V]) Len() int {
	return s.cache.Len()
}

// RevocationList is a denylist of token ids backed by an ExpiringStore.
// Entries outlive the tokens they revoke because the store TTL is set to
// the longest token lifetime.
type RevocationList struct {
	store *ExpiringStore[string, time.Time]
	now   func() time.Time
}

// NewRevocationList wraps store.
func NewRevocationList(store *ExpiringStore[string, time.Time]) *RevocationList {
	return &RevocationList{store: store, now: time.Now}
}

// Revoke marks tokenID revoked. Tokens that already expired are skipped.
func (r *RevocationList) Revoke(_ context.Context, tokenID string, expiresAt time.Time) {
	if tokenID == "" || !expiresAt.After(r.now()) {
		return
	}

	r.store.Put(tokenID, expiresAt)
}

// IsRevoked reports whether tokenID was revoked.
func (r *RevocationList) IsRevoked(_ context.Context, tokenID string) bool {
	return r.store.Contains(tokenID)
}
