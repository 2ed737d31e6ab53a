package messaging

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/xiebiao/wizardshop/internal/domain/session"
	"github.com/xiebiao/wizardshop/pkg/circuitbreaker"
	apperrors "github.com/xiebiao/wizardshop/pkg/errors"
	"github.com/xiebiao/wizardshop/pkg/metrics"
)

// fakePublisher 记录发布的消息,可以注入错误
type fakePublisher struct {
	mu       sync.Mutex
	err      error
	calls    int
	keys     []string
	messages []interface{}
}

func (f *fakePublisher) Publish(ctx context.Context, routingKey string, message interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return f.err
	}
	f.keys = append(f.keys, routingKey)
	f.messages = append(f.messages, message)
	return nil
}

func (f *fakePublisher) Exchange() string { return "test.events" }

func newTestPublisher(t *testing.T, name string, pub *fakePublisher) *EventPublisher {
	breaker := circuitbreaker.NewCircuitBreaker(name, circuitbreaker.Config{
		MaxRequests: 1,
		Timeout:     time.Hour,
		ReadyToTrip: func(c circuitbreaker.Counts) bool { return c.ConsecutiveFailures >= 2 },
	})
	return newEventPublisher(pub, breaker, zaptest.NewLogger(t))
}

func counterValue(t *testing.T, vec *prometheus.CounterVec, labels map[string]string) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, vec.With(labels).Write(&m))
	return m.GetCounter().GetValue()
}

func gaugeValue(t *testing.T, vec *prometheus.GaugeVec, labels map[string]string) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, vec.With(labels).Write(&m))
	return m.GetGauge().GetValue()
}

func TestEventPublisher_Publish(t *testing.T) {
	pub := &fakePublisher{}
	p := newTestPublisher(t, "publish-ok", pub)

	labels := map[string]string{"exchange": "test.events", "routing_key": "cart.toggled", "result": "success"}
	before := counterValue(t, metrics.MessagesPublishedTotal, labels)

	event := session.Event{
		Type:       session.EventCartToggled,
		SessionID:  "s1",
		BookID:     "bk6",
		InCart:     true,
		OccurredAt: time.Now(),
	}
	require.NoError(t, p.Publish(context.Background(), event))

	assert.Equal(t, []string{"cart.toggled"}, pub.keys, "事件类型作为路由键")
	assert.Equal(t, event, pub.messages[0])
	assert.Equal(t, before+1, counterValue(t, metrics.MessagesPublishedTotal, labels))
}

func TestEventPublisher_CircuitBreaker(t *testing.T) {
	pub := &fakePublisher{err: errors.New("connection reset")}
	p := newTestPublisher(t, "publish-trip", pub)
	ctx := context.Background()
	event := session.Event{Type: session.EventSessionCreated, SessionID: "s1"}

	t.Run("失败返回MQ错误码", func(t *testing.T) {
		err := p.Publish(ctx, event)
		assert.Equal(t, apperrors.ErrCodeMQError, apperrors.CodeOf(err))
	})

	t.Run("连续失败后熔断", func(t *testing.T) {
		_ = p.Publish(ctx, event)
		assert.Equal(t, 2, pub.calls)
		assert.Equal(t, float64(circuitbreaker.StateOpen),
			gaugeValue(t, metrics.CircuitBreakerState, map[string]string{"name": "publish-trip"}))

		rejected := map[string]string{"name": "publish-trip", "result": "rejected"}
		before := counterValue(t, metrics.CircuitBreakerRequests, rejected)

		err := p.Publish(ctx, event)
		assert.ErrorIs(t, err, circuitbreaker.ErrOpenState)
		assert.Equal(t, 2, pub.calls, "熔断后不再调用底层发布")
		assert.Equal(t, before+1, counterValue(t, metrics.CircuitBreakerRequests, rejected))
	})
}

func TestNoopPublisher(t *testing.T) {
	var p session.EventPublisher = NoopPublisher{}
	assert.NoError(t, p.Publish(context.Background(), session.Event{Type: session.EventSessionCreated}))
}
