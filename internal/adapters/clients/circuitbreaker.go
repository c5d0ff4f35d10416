package clients

import (
	"sync"
	"time"
)

// State is the position of a [CircuitBreaker].
type State int

const (
	// StateClosed lets every call through.
	StateClosed State = iota

	// StateOpen rejects calls until the cool-down ends.
	StateOpen

	// StateHalfOpen admits a limited number of probe calls.
	StateHalfOpen
)

var stateNames = [...]string{
	StateClosed:   "closed",
	StateOpen:     "open",
	StateHalfOpen: "half-open",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}

	return stateNames[s]
}

// CircuitBreakerConfig sizes a [CircuitBreaker]. Zero counts are treated as 1.
type CircuitBreakerConfig struct {
	// MaxFailures is the number of consecutive failures that opens the breaker.
	MaxFailures int

	// Timeout is the cool-down spent open before probing.
	Timeout time.Duration

	// HalfOpenLimit is both the number of concurrent probes and the number of
	// probe successes needed to close again.
	HalfOpenLimit int
}

// CircuitBreaker guards one AI provider endpoint. The endpoint is shared by
// every user configured for that provider, so only failures that say the
// provider itself is unhealthy should be recorded; a rejected API key is one
// user's problem.
//
// Closed opens after MaxFailures consecutive failures. Open rejects calls for
// Timeout and then turns half-open on the next call. Half-open closes after
// HalfOpenLimit successful probes and reopens on the first failed one.
type CircuitBreaker struct {
	cfg CircuitBreakerConfig
	now func() time.Time

	mu        sync.Mutex
	state     State
	failures  int
	successes int
	probes    int
	openUntil time.Time
	onChange  func(from, to State)
}

// NewCircuitBreaker returns a closed breaker.
func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	cfg.MaxFailures = max(cfg.MaxFailures, 1)
	cfg.HalfOpenLimit = max(cfg.HalfOpenLimit, 1)

	return &CircuitBreaker{cfg: cfg, now: time.Now}
}

// OnStateChange registers fn to run after each transition. It is called
// synchronously, outside the breaker's lock.
func (cb *CircuitBreaker) OnStateChange(fn func(from, to State)) {
	cb.mu.Lock()
	cb.onChange = fn
	cb.mu.Unlock()
}

// Allow reports whether a call may proceed. A call that is allowed must be
// followed by RecordSuccess or RecordFailure.
func (cb *CircuitBreaker) Allow() bool {
	var allowed bool

	cb.update(func() {
		if cb.state == StateOpen && !cb.now().Before(cb.openUntil) {
			cb.enter(StateHalfOpen)
		}

		switch cb.state {
		case StateClosed:
			allowed = true
		case StateHalfOpen:
			if cb.probes < cb.cfg.HalfOpenLimit {
				cb.probes++
				allowed = true
			}
		}
	})

	return allowed
}

// RecordSuccess records a healthy response.
func (cb *CircuitBreaker) RecordSuccess() {
	cb.update(func() {
		switch cb.state {
		case StateClosed:
			cb.failures = 0
		case StateHalfOpen:
			cb.probes = max(cb.probes-1, 0)
			cb.successes++

			if cb.successes >= cb.cfg.HalfOpenLimit {
				cb.enter(StateClosed)
			}
		}
	})
}

// RecordFailure records a call the provider failed.
func (cb *CircuitBreaker) RecordFailure() {
	cb.update(func() {
		switch cb.state {
		case StateClosed:
			cb.failures++
			if cb.failures >= cb.cfg.MaxFailures {
				cb.enter(StateOpen)
			}
		case StateHalfOpen:
			cb.enter(StateOpen)
		}
	})
}

// State returns the current position without advancing an expired cool-down.
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	return cb.state
}

// RetryIn returns how long the breaker stays open, or zero when it is not.
func (cb *CircuitBreaker) RetryIn() time.Duration {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state != StateOpen {
		return 0
	}

	return max(cb.openUntil.Sub(cb.now()), 0)
}

// update runs fn under the lock and notifies the callback when the state
// moved.
func (cb *CircuitBreaker) update(fn func()) {
	cb.mu.Lock()
	before := cb.state
	fn()
	after, notify := cb.state, cb.onChange
	cb.mu.Unlock()

	if notify != nil && before != after {
		notify(before, after)
	}
}

// enter switches state and resets the counters. The lock must be held.
func (cb *CircuitBreaker) enter(s State) {
	cb.state = s
	cb.failures = 0
	cb.successes = 0
	cb.probes = 0

	if s == StateOpen {
		cb.openUntil = cb.now().Add(cb.cfg.Timeout)
	}
}
