package messaging

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/xiebiao/wizardshop/internal/domain/session"
	"github.com/xiebiao/wizardshop/pkg/circuitbreaker"
	apperrors "github.com/xiebiao/wizardshop/pkg/errors"
	"github.com/xiebiao/wizardshop/pkg/metrics"
)

// MessagePublisher 底层消息发布接口(由mq.Publisher实现)
type MessagePublisher interface {
	Publish(ctx context.Context, routingKey string, message interface{}) error
	Exchange() string
}

// EventPublisher 领域事件发布者
// 设计说明:
// 1. 实现session.EventPublisher,事件类型直接作为路由键
// 2. 外层套熔断器:RabbitMQ不可用时快速失败,不拖慢用户请求
// 3. 熔断器状态和发布结果写入Prometheus指标
type EventPublisher struct {
	publisher MessagePublisher
	breaker   *circuitbreaker.CircuitBreaker
	logger    *zap.Logger
}

// NewEventPublisher 创建领域事件发布者
func NewEventPublisher(publisher MessagePublisher, logger *zap.Logger) *EventPublisher {
	return newEventPublisher(publisher, circuitbreaker.NewCircuitBreaker("event-publisher", circuitbreaker.DefaultConfig()), logger)
}

func newEventPublisher(publisher MessagePublisher, breaker *circuitbreaker.CircuitBreaker, logger *zap.Logger) *EventPublisher {
	metrics.InitMetrics()

	breaker.OnStateChange(func(name string, from, to circuitbreaker.State) {
		metrics.SetGaugeVec(metrics.CircuitBreakerState, map[string]string{"name": name}, float64(to))
		logger.Warn("熔断器状态变化",
			zap.String("name", name),
			zap.String("from", from.String()),
			zap.String("to", to.String()),
		)
	})
	metrics.SetGaugeVec(metrics.CircuitBreakerState, map[string]string{"name": breaker.Name()}, float64(circuitbreaker.StateClosed))

	return &EventPublisher{publisher: publisher, breaker: breaker, logger: logger}
}

// Publish 发布领域事件
func (p *EventPublisher) Publish(ctx context.Context, event session.Event) error {
	routingKey := string(event.Type)

	err := p.breaker.Execute(ctx, func(ctx context.Context) error {
		return p.publisher.Publish(ctx, routingKey, event)
	})

	p.record(routingKey, err)
	if err != nil {
		return apperrors.WrapCode(err, apperrors.ErrCodeMQError, "发布事件失败")
	}
	return nil
}

func (p *EventPublisher) record(routingKey string, err error) {
	result := "success"
	switch {
	case errors.Is(err, circuitbreaker.ErrOpenState):
		result = "rejected"
	case err != nil:
		result = "failure"
	}

	metrics.IncCounterVec(metrics.CircuitBreakerRequests, map[string]string{"name": p.breaker.Name(), "result": result})
	metrics.IncCounterVec(metrics.MessagesPublishedTotal, map[string]string{
		"exchange":    p.publisher.Exchange(),
		"routing_key": routingKey,
		"result":      result,
	})
}

// NoopPublisher 未启用消息队列时使用,丢弃所有事件
type NoopPublisher struct{}

// Publish 丢弃事件
func (NoopPublisher) Publish(ctx context.Context, event session.Event) error {
	return nil
}
