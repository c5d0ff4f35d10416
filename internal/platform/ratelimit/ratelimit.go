// Package ratelimit provides keyed token-bucket limiters. Idle keys expire
// from a bounded LRU so the key space cannot grow without limit.
package ratelimit

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"
)

// KeyedLimiter hands out an independent rate.Limiter per key.
type KeyedLimiter struct {
	mu       sync.Mutex
	limiters *expirable.LRU[string, *rate.Limiter]
	limit    rate.Limit
	burst    int
}

// New creates a limiter allowing rps requests per second per key with the
// given burst. At most maxKeys limiters are kept; each lives ttl after its
// last use.
func New(rps float64, burst, maxKeys int, ttl time.Duration) *KeyedLimiter {
	return &KeyedLimiter{
		limiters: expirable.NewLRU[string, *rate.Limiter](maxKeys, nil, ttl),
		limit:    rate.Limit(rps),
		burst:    burst,
	}
}

// Allow reports whether a request for key may proceed now. When it may not,
// the returned duration is how long until a token is available.
func (k *KeyedLimiter) Allow(key string) (bool, time.Duration) {
	l := k.limiter(key)

	r := l.Reserve()
	if !r.OK() {
		return false, 0
	}

	if d := r.Delay(); d > 0 {
		r.Cancel()
		return false, d
	}

	return true, 0
}

// Len returns the number of tracked keys.
func (k *KeyedLimiter) Len() int {
	return k.limiters.Len()
}

func (k *KeyedLimiter) limiter(key string) *rate.Limiter {
	k.mu.Lock()
	defer k.mu.Unlock()

	// Re-adding refreshes the entry's expiry on every use.
	l, ok := k.limiters.Get(key)
	if !ok {
		l = rate.NewLimiter(k.limit, k.burst)
	}
	k.limiters.Add(key, l)

	return l
}
