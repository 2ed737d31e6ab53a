package session

import (
	"context"
	"time"
)

// EventType 领域事件类型(同时作为消息路由键)
type EventType string

const (
	EventSessionCreated  EventType = "session.created"
	EventCartToggled     EventType = "cart.toggled"
	EventSelectionOpened EventType = "selection.opened"
)

// Event 会话领域事件
type Event struct {
	Type       EventType `json:"type"`
	SessionID  string    `json:"session_id"`
	BookID     string    `json:"book_id,omitempty"`
	InCart     bool      `json:"in_cart,omitempty"` // cart.toggled:切换后是否在购物车中
	OccurredAt time.Time `json:"occurred_at"`
}

// EventPublisher 事件发布接口
// 发布失败不影响用户操作,由调用方记录日志
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}
