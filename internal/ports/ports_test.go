package ports

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubChecker struct {
	name     string
	err      error
	optional bool
}

func (s *stubChecker) Name() string                { return s.name }
func (s *stubChecker) Check(context.Context) error { return s.err }

type optionalStub struct{ stubChecker }

func (o *optionalStub) Optional() bool { return o.optional }

// blockingChecker waits for its context.
type blockingChecker struct{ name string }

func (b *blockingChecker) Name() string { return b.name }

func (b *blockingChecker) Check(ctx context.Context) error {
	<-ctx.Done()
	return ctx.Err()
}

func TestRegister_RejectsDuplicateNames(t *testing.T) {
	registry := NewHealthRegistry()

	require.NoError(t, registry.Register(&stubChecker{name: "badger"}))
	require.NoError(t, registry.Register(&stubChecker{name: "bleve"}))

	err := registry.Register(&stubChecker{name: "badger"})
	require.ErrorIs(t, err, ErrDuplicateChecker)
	assert.Contains(t, err.Error(), "badger")
}

func TestCheckAll(t *testing.T) {
	errDisk := errors.New("value log unreadable")
	errCircuit := errors.New("circuit open: openai")

	tests := []struct {
		name       string
		checkers   []HealthChecker
		wantStatus HealthStatus
		wantChecks map[string]HealthStatus
	}{
		{
			name:       "nothing registered",
			wantStatus: HealthStatusHealthy,
			wantChecks: map[string]HealthStatus{},
		},
		{
			name: "all healthy",
			checkers: []HealthChecker{
				&stubChecker{name: "badger"},
				&stubChecker{name: "bleve"},
				&optionalStub{stubChecker{name: "ai-providers", optional: true}},
			},
			wantStatus: HealthStatusHealthy,
			wantChecks: map[string]HealthStatus{
				"badger": HealthStatusHealthy, "bleve": HealthStatusHealthy, "ai-providers": HealthStatusHealthy,
			},
		},
		{
			name: "optional failure degrades",
			checkers: []HealthChecker{
				&stubChecker{name: "badger"},
				&optionalStub{stubChecker{name: "ai-providers", err: errCircuit, optional: true}},
			},
			wantStatus: HealthStatusDegraded,
			wantChecks: map[string]HealthStatus{
				"badger": HealthStatusHealthy, "ai-providers": HealthStatusDegraded,
			},
		},
		{
			name: "required failure wins over degraded",
			checkers: []HealthChecker{
				&stubChecker{name: "badger", err: errDisk},
				&optionalStub{stubChecker{name: "ai-providers", err: errCircuit, optional: true}},
			},
			wantStatus: HealthStatusUnhealthy,
			wantChecks: map[string]HealthStatus{
				"badger": HealthStatusUnhealthy, "ai-providers": HealthStatusDegraded,
			},
		},
		{
			name: "optional interface answering false is required",
			checkers: []HealthChecker{
				&optionalStub{stubChecker{name: "bleve", err: errDisk, optional: false}},
			},
			wantStatus: HealthStatusUnhealthy,
			wantChecks: map[string]HealthStatus{"bleve": HealthStatusUnhealthy},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := NewHealthRegistry()
			for _, c := range tt.checkers {
				require.NoError(t, registry.Register(c))
			}

			result := registry.CheckAll(context.Background())

			assert.Equal(t, tt.wantStatus, result.Status)
			assert.False(t, result.Timestamp.IsZero())
			require.Len(t, result.Checks, len(tt.wantChecks))

			for name, want := range tt.wantChecks {
				assert.Equal(t, want, result.Checks[name].Status, name)
			}
		})
	}
}

func TestCheckAll_ReportsFailureMessage(t *testing.T) {
	registry := NewHealthRegistry()
	require.NoError(t, registry.Register(&stubChecker{name: "badger", err: errors.New("value log unreadable")}))

	result := registry.CheckAll(context.Background())
	assert.Equal(t, "value log unreadable", result.Checks["badger"].Message)
	assert.False(t, result.Checks["badger"].Optional)
}

func TestCheckAll_TimesOutSlowChecks(t *testing.T) {
	registry := NewHealthRegistryWithTimeout(20 * time.Millisecond)
	require.NoError(t, registry.Register(&blockingChecker{name: "bleve"}))

	start := time.Now()
	result := registry.CheckAll(context.Background())

	assert.Less(t, time.Since(start), time.Second)
	assert.Equal(t, HealthStatusUnhealthy, result.Status)
	assert.Contains(t, result.Checks["bleve"].Message, "deadline exceeded")
}

func TestCheckAll_HonoursCallerCancellation(t *testing.T) {
	registry := NewHealthRegistryWithTimeout(0)
	require.NoError(t, registry.Register(&blockingChecker{name: "badger"}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := registry.CheckAll(ctx)
	assert.Contains(t, result.Checks["badger"].Message, "context canceled")
}
