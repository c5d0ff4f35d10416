package ports

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// DefaultCheckTimeout bounds a single readiness check.
const DefaultCheckTimeout = 2 * time.Second

// ErrDuplicateChecker is returned when a checker name is registered twice.
var ErrDuplicateChecker = errors.New("duplicate health checker")

// HealthChecker reports whether one dependency can serve traffic. The badger
// store, the bleve index and the AI provider registry implement it.
type HealthChecker interface {
	// Name identifies the check in /-/ready output.
	Name() string

	// Check returns nil when the dependency is usable. It must honour ctx.
	Check(ctx context.Context) error
}

// OptionalChecker is implemented by checkers whose failure degrades the
// service instead of taking it out of rotation. Bookmarks can still be saved
// while AI providers are down; they just get fallback analysis.
type OptionalChecker interface {
	HealthChecker
	Optional() bool
}

// HealthRegistry runs every registered check for the readiness probe.
type HealthRegistry interface {
	Register(checker HealthChecker) error
	CheckAll(ctx context.Context) *HealthResult
}

// HealthStatus is the outcome of one check or of the whole probe.
type HealthStatus string

const (
	HealthStatusHealthy   HealthStatus = "healthy"
	HealthStatusDegraded  HealthStatus = "degraded"
	HealthStatusUnhealthy HealthStatus = "unhealthy"
)

// HealthResult is the aggregated readiness report. Status is unhealthy when
// a required check fails and degraded when only optional ones do.
type HealthResult struct {
	Status    HealthStatus            `json:"status"`
	Checks    map[string]*CheckResult `json:"checks"`
	Timestamp time.Time               `json:"timestamp"`
}

// CheckResult is the report for one checker.
type CheckResult struct {
	Status    HealthStatus `json:"status"`
	Message   string       `json:"message,omitempty"`
	Optional  bool         `json:"optional,omitempty"`
	LatencyMS int64        `json:"latencyMs"`
}

// DefaultHealthRegistry runs checks concurrently, each under its own
// timeout.
type DefaultHealthRegistry struct {
	timeout time.Duration

	mu       sync.RWMutex
	checkers []HealthChecker
}

// NewHealthRegistry returns an empty registry using DefaultCheckTimeout.
func NewHealthRegistry() *DefaultHealthRegistry {
	return NewHealthRegistryWithTimeout(DefaultCheckTimeout)
}

// NewHealthRegistryWithTimeout returns an empty registry whose checks are
// cancelled after timeout. A non-positive timeout disables the limit.
func NewHealthRegistryWithTimeout(timeout time.Duration) *DefaultHealthRegistry {
	return &DefaultHealthRegistry{timeout: timeout}
}

// Register adds checker. Names must be unique.
func (r *DefaultHealthRegistry) Register(checker HealthChecker) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := checker.Name()
	for _, c := range r.checkers {
		if c.Name() == name {
			return fmt.Errorf("%w: %s", ErrDuplicateChecker, name)
		}
	}

	r.checkers = append(r.checkers, checker)

	return nil
}

// CheckAll runs every check and folds the results.
func (r *DefaultHealthRegistry) CheckAll(ctx context.Context) *HealthResult {
	r.mu.RLock()
	checkers := append([]HealthChecker(nil), r.checkers...)
	r.mu.RUnlock()

	results := make([]*CheckResult, len(checkers))

	var wg sync.WaitGroup
	for i, c := range checkers {
		wg.Go(func() { results[i] = r.run(ctx, c) })
	}
	wg.Wait()

	report := &HealthResult{
		Status:    HealthStatusHealthy,
		Checks:    make(map[string]*CheckResult, len(checkers)),
		Timestamp: time.Now().UTC(),
	}

	for i, c := range checkers {
		res := results[i]
		report.Checks[c.Name()] = res

		switch {
		case res.Status == HealthStatusHealthy:
		case res.Optional:
			if report.Status == HealthStatusHealthy {
				report.Status = HealthStatusDegraded
			}
		default:
			report.Status = HealthStatusUnhealthy
		}
	}

	return report
}

func (r *DefaultHealthRegistry) run(ctx context.Context, c HealthChecker) *CheckResult {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	res := &CheckResult{Status: HealthStatusHealthy}
	if oc, ok := c.(OptionalChecker); ok && oc.Optional() {
		res.Optional = true
	}

	start := time.Now()
	err := c.Check(ctx)
	res.LatencyMS = time.Since(start).Milliseconds()

	if err != nil {
		res.Status = HealthStatusUnhealthy
		if res.Optional {
			res.Status = HealthStatusDegraded
		}
		res.Message = err.Error()
	}

	return res
}
