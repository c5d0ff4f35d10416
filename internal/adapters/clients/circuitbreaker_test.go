package clients

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is a settable time source for breaker tests.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestBreaker(maxFailures, halfOpen int) (*CircuitBreaker, *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}

	cb := NewCircuitBreaker(CircuitBreakerConfig{
		MaxFailures:   maxFailures,
		Timeout:       30 * time.Second,
		HalfOpenLimit: halfOpen,
	})
	cb.now = clock.Now

	return cb, clock
}

func TestCircuitBreaker_Scenarios(t *testing.T) {
	type step struct {
		op      string // allow, ok, fail, wait
		want    bool   // result of allow
		advance time.Duration
	}

	tests := []struct {
		name      string
		steps     []step
		wantState State
	}{
		{
			name:      "starts closed",
			steps:     []step{{op: "allow", want: true}},
			wantState: StateClosed,
		},
		{
			name: "opens after consecutive failures",
			steps: []step{
				{op: "fail"}, {op: "fail"}, {op: "fail"},
				{op: "allow", want: false},
			},
			wantState: StateOpen,
		},
		{
			name: "success resets the failure run",
			steps: []step{
				{op: "fail"}, {op: "fail"}, {op: "ok"}, {op: "fail"}, {op: "fail"},
				{op: "allow", want: true},
			},
			wantState: StateClosed,
		},
		{
			name: "cool-down leads to half-open probes",
			steps: []step{
				{op: "fail"}, {op: "fail"}, {op: "fail"},
				{op: "wait", advance: 29 * time.Second},
				{op: "allow", want: false},
				{op: "wait", advance: time.Second},
				{op: "allow", want: true},
				{op: "allow", want: true},
				{op: "allow", want: false},
			},
			wantState: StateHalfOpen,
		},
		{
			name: "enough probe successes close",
			steps: []step{
				{op: "fail"}, {op: "fail"}, {op: "fail"},
				{op: "wait", advance: 30 * time.Second},
				{op: "allow", want: true}, {op: "ok"},
				{op: "allow", want: true}, {op: "ok"},
			},
			wantState: StateClosed,
		},
		{
			name: "failed probe reopens for a fresh cool-down",
			steps: []step{
				{op: "fail"}, {op: "fail"}, {op: "fail"},
				{op: "wait", advance: 30 * time.Second},
				{op: "allow", want: true}, {op: "fail"},
				{op: "wait", advance: 29 * time.Second},
				{op: "allow", want: false},
			},
			wantState: StateOpen,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cb, clock := newTestBreaker(3, 2)

			for i, s := range tt.steps {
				switch s.op {
				case "allow":
					assert.Equal(t, s.want, cb.Allow(), "step %d", i)
				case "ok":
					cb.RecordSuccess()
				case "fail":
					cb.RecordFailure()
				case "wait":
					clock.Advance(s.advance)
				}
			}

			assert.Equal(t, tt.wantState, cb.State())
		})
	}
}

func TestCircuitBreaker_RetryIn(t *testing.T) {
	cb, clock := newTestBreaker(1, 1)
	assert.Zero(t, cb.RetryIn())

	cb.RecordFailure()
	assert.Equal(t, 30*time.Second, cb.RetryIn())

	clock.Advance(20 * time.Second)
	assert.Equal(t, 10*time.Second, cb.RetryIn())

	clock.Advance(time.Minute)
	assert.Zero(t, cb.RetryIn())
}

func TestCircuitBreaker_ZeroConfigIsUsable(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{})

	assert.True(t, cb.Allow())
	cb.RecordFailure()
	assert.Equal(t, StateOpen, cb.State(), "one failure opens when MaxFailures is unset")
}

func TestCircuitBreaker_OnStateChange(t *testing.T) {
	cb, clock := newTestBreaker(1, 1)

	var transitions []string
	cb.OnStateChange(func(from, to State) {
		transitions = append(transitions, from.String()+"->"+to.String())
	})

	cb.RecordFailure()
	clock.Advance(30 * time.Second)
	require.True(t, cb.Allow())
	cb.RecordSuccess()
	cb.RecordSuccess()

	assert.Equal(t, []string{"closed->open", "open->half-open", "half-open->closed"}, transitions)
}

func TestCircuitBreaker_CallbackMayReadState(t *testing.T) {
	cb, _ := newTestBreaker(1, 1)

	var seen State
	cb.OnStateChange(func(State, State) { seen = cb.State() })

	cb.RecordFailure()
	assert.Equal(t, StateOpen, seen)
}

func TestCircuitBreaker_Concurrent(t *testing.T) {
	cb, _ := newTestBreaker(1000, 1)

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Go(func() {
			for range 20 {
				if cb.Allow() {
					if i%2 == 0 {
						cb.RecordSuccess()
					} else {
						cb.RecordFailure()
					}
				}
			}
		})
	}

	wg.Wait()
	assert.Equal(t, StateClosed, cb.State())
}

func TestState_String(t *testing.T) {
	tests := map[State]string{
		StateClosed:   "closed",
		StateOpen:     "open",
		StateHalfOpen: "half-open",
		State(9):      "unknown",
		State(-1):     "unknown",
	}

	for state, want := range tests {
		assert.Equal(t, want, state.String())
	}
}
