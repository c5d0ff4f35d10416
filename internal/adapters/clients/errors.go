// Package clients provides the resilient HTTP client used to call hosted AI
// providers: retries with backoff, Retry-After handling, a circuit breaker
// per provider, tracing and metrics.
package clients

import (
	"errors"
	"fmt"
	"time"
)

// Transport-level failures. The acl package maps them to domain errors.
var (
	// ErrCircuitOpen matches every [*CircuitOpenError].
	ErrCircuitOpen = errors.New("circuit breaker open")

	// ErrMaxRetriesExceeded wraps the last attempt's error once every attempt
	// has failed.
	ErrMaxRetriesExceeded = errors.New("max retries exceeded")
)

// CircuitOpenError is returned without contacting the provider while its
// breaker is open.
type CircuitOpenError struct {
	Service string
	RetryIn time.Duration
}

func (e *CircuitOpenError) Error() string {
	return fmt.Sprintf("%s: circuit breaker open, retry in %s", e.Service, e.RetryIn.Round(time.Second))
}

// Is reports ErrCircuitOpen as a match.
func (e *CircuitOpenError) Is(target error) bool {
	return target == ErrCircuitOpen
}
