package circuitbreaker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBroker = errors.New("broker unavailable")

// fakeClock 可手动推进的时钟
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newTestBreaker(clock *fakeClock) *CircuitBreaker {
	cb := NewCircuitBreaker("event-publisher", Config{
		MaxRequests: 1,
		Interval:    10 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
	})
	cb.now = clock.Now
	cb.expiry = clock.Now().Add(10 * time.Second)
	return cb
}

func fail(ctx context.Context) error { return errBroker }
func ok(ctx context.Context) error   { return nil }

func TestCircuitBreaker_ClosedState(t *testing.T) {
	cb := newTestBreaker(&fakeClock{t: time.Unix(0, 0)})

	for i := 0; i < 10; i++ {
		require.NoError(t, cb.Execute(context.Background(), ok))
	}

	assert.Equal(t, StateClosed, cb.State())
	assert.Equal(t, uint32(10), cb.Counts().TotalSuccesses)
}

func TestCircuitBreaker_TripsAfterConsecutiveFailures(t *testing.T) {
	cb := newTestBreaker(&fakeClock{t: time.Unix(0, 0)})

	for i := 0; i < 3; i++ {
		assert.ErrorIs(t, cb.Execute(context.Background(), fail), errBroker)
	}
	assert.Equal(t, StateOpen, cb.State())

	called := false
	err := cb.Execute(context.Background(), func(ctx context.Context) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, ErrOpenState)
	assert.False(t, called, "熔断器打开时不应调用实际函数")
}

func TestCircuitBreaker_HalfOpenRecovery(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	cb := newTestBreaker(clock)

	for i := 0; i < 3; i++ {
		_ = cb.Execute(context.Background(), fail)
	}
	require.Equal(t, StateOpen, cb.State())

	clock.Advance(31 * time.Second)
	assert.Equal(t, StateHalfOpen, cb.State())

	t.Run("探测成功回到CLOSED", func(t *testing.T) {
		require.NoError(t, cb.Execute(context.Background(), ok))
		assert.Equal(t, StateClosed, cb.State())
	})
}

func TestCircuitBreaker_HalfOpenFailureReopens(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	cb := newTestBreaker(clock)

	for i := 0; i < 3; i++ {
		_ = cb.Execute(context.Background(), fail)
	}
	clock.Advance(31 * time.Second)
	require.Equal(t, StateHalfOpen, cb.State())

	_ = cb.Execute(context.Background(), fail)
	assert.Equal(t, StateOpen, cb.State())
}

func TestCircuitBreaker_CanceledIsNotFailure(t *testing.T) {
	cb := newTestBreaker(&fakeClock{t: time.Unix(0, 0)})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for i := 0; i < 5; i++ {
		err := cb.Execute(ctx, func(ctx context.Context) error { return ctx.Err() })
		assert.ErrorIs(t, err, context.Canceled)
	}

	assert.Equal(t, StateClosed, cb.State(), "调用方取消不应触发熔断")
	assert.Zero(t, cb.Counts().TotalFailures)
}

func TestCircuitBreaker_IntervalResetsCounts(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	cb := newTestBreaker(clock)

	_ = cb.Execute(context.Background(), fail)
	_ = cb.Execute(context.Background(), fail)
	clock.Advance(11 * time.Second)
	_ = cb.Execute(context.Background(), fail)

	assert.Equal(t, StateClosed, cb.State(), "窗口到期后连续失败计数清零")
}

func TestCircuitBreaker_StateChangeCallback(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	cb := newTestBreaker(clock)

	var transitions []string
	cb.OnStateChange(func(name string, from, to State) {
		assert.Equal(t, "event-publisher", name)
		transitions = append(transitions, from.String()+"->"+to.String())
	})

	for i := 0; i < 3; i++ {
		_ = cb.Execute(context.Background(), fail)
	}
	clock.Advance(31 * time.Second)
	_ = cb.Execute(context.Background(), ok)

	assert.Equal(t, []string{"CLOSED->OPEN", "OPEN->HALF_OPEN", "HALF_OPEN->CLOSED"}, transitions)
}

func TestCounts_FailureRate(t *testing.T) {
	assert.Zero(t, Counts{}.FailureRate())
	assert.InDelta(t, 0.25, Counts{Requests: 4, TotalFailures: 1}.FailureRate(), 1e-9)
}

func TestNewCircuitBreaker_Defaults(t *testing.T) {
	cb := NewCircuitBreaker("x", Config{Timeout: time.Second})
	for i := 0; i < 4; i++ {
		_ = cb.Execute(context.Background(), fail)
	}
	assert.Equal(t, StateClosed, cb.State())
	_ = cb.Execute(context.Background(), fail)
	assert.Equal(t, StateOpen, cb.State(), "默认策略:连续失败5次熔断")
}

func BenchmarkCircuitBreaker(b *testing.B) {
	cb := NewCircuitBreaker("bench", DefaultConfig())
	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = cb.Execute(ctx, ok)
	}
}
