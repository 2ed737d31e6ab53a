package session

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/wizardshop/internal/domain/book"
	"github.com/xiebiao/wizardshop/internal/domain/session"
	apperrors "github.com/xiebiao/wizardshop/pkg/errors"
	"github.com/xiebiao/wizardshop/pkg/logger"
	"github.com/xiebiao/wizardshop/pkg/metrics"
	"github.com/xiebiao/wizardshop/pkg/tracing"
)

// ActionType 会话操作类型
type ActionType string

const (
	ActionSetSection  ActionType = "set_section"  // Value=分区
	ActionSetHouse    ActionType = "set_house"    // Value=学院,空值表示不限
	ActionToggleHouse ActionType = "toggle_house" // Value=学院,再次点击取消
	ActionSetSearch   ActionType = "set_search"   // Value=关键词
	ActionSetSort     ActionType = "set_sort"     // Value=排序方式
	ActionShuffle     ActionType = "shuffle"
	ActionToggleCart  ActionType = "toggle_cart" // Value=图书ID
	ActionOpen        ActionType = "open"        // Value=图书ID
	ActionClose       ActionType = "close"
	ActionToggleTheme ActionType = "toggle_theme"
)

// Action 一次会话操作
type Action struct {
	Type  ActionType `json:"type"`
	Value string     `json:"value,omitempty"`
}

// UpdateSessionRequest 更新会话请求DTO
type UpdateSessionRequest struct {
	SessionID string
	Actions   []Action
}

// UpdateSessionUseCase 会话操作用例
// 设计说明:
// 1. 一个请求可以携带多个操作,按顺序应用到会话上
// 2. 任何一个操作校验失败,整个请求不生效(先在副本上应用,全部成功才保存)
// 3. 购物车切换、打开详情发布领域事件
type UpdateSessionUseCase struct {
	repo        session.Repository
	bookService book.Service
	publisher   session.EventPublisher
	views       viewBuilder
	logger      *zap.Logger
	now         func() time.Time
}

// NewUpdateSessionUseCase 创建用例
func NewUpdateSessionUseCase(
	repo session.Repository,
	bookService book.Service,
	publisher session.EventPublisher,
	logger *zap.Logger,
) *UpdateSessionUseCase {
	return &UpdateSessionUseCase{
		repo:        repo,
		bookService: bookService,
		publisher:   publisher,
		views:       viewBuilder{bookService: bookService, logger: logger},
		logger:      logger,
		now:         time.Now,
	}
}

// Execute 应用操作并返回新的会话视图
func (uc *UpdateSessionUseCase) Execute(ctx context.Context, req UpdateSessionRequest) (*SessionView, error) {
	ctx, span := tracing.StartSpan(ctx, "UpdateSessionUseCase.Execute")
	defer span.End()

	// 1. 读取会话
	current, err := uc.repo.Get(ctx, req.SessionID)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}

	// 2. 依次应用操作(值语义,current本身不变)
	now := uc.now()
	next := *current
	var events []session.Event
	for _, action := range req.Actions {
		var event *session.Event
		next, event, err = uc.apply(ctx, next, action, now)
		if err != nil {
			tracing.RecordError(span, err)
			return nil, err
		}
		if event != nil {
			events = append(events, *event)
		}
	}

	// 3. 保存
	if err := uc.repo.Save(ctx, &next); err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}

	// 4. 保存成功后再记录指标、发布事件
	for _, event := range events {
		if event.Type == session.EventCartToggled {
			metrics.RecordCartToggle(event.InCart)
		}
		publish(ctx, uc.publisher, uc.logger, event)
	}

	logger.WithTrace(ctx, uc.logger).Debug("会话已更新",
		zap.String("session_id", next.ID),
		zap.Int("actions", len(req.Actions)),
	)

	return uc.views.build(ctx, &next)
}

// apply 应用单个操作
func (uc *UpdateSessionUseCase) apply(ctx context.Context, s session.Session, a Action, now time.Time) (session.Session, *session.Event, error) {
	switch a.Type {
	case ActionSetSection:
		sec, err := book.ParseSection(a.Value)
		if err != nil {
			return s, nil, err
		}
		return s.SetSection(sec, now), nil, nil

	case ActionSetHouse, ActionToggleHouse:
		h, err := book.ParseHouse(a.Value)
		if err != nil {
			return s, nil, err
		}
		if a.Type == ActionToggleHouse {
			return s.ToggleHouse(h, now), nil, nil
		}
		return s.SetHouse(h, now), nil, nil

	case ActionSetSearch:
		if err := book.ValidateSearch(a.Value); err != nil {
			return s, nil, err
		}
		return s.SetSearch(a.Value, now), nil, nil

	case ActionSetSort:
		k, err := book.ParseSortKey(a.Value)
		if err != nil {
			return s, nil, err
		}
		return s.SetSort(k, now), nil, nil

	case ActionShuffle:
		return s.Shuffle(now), nil, nil

	case ActionToggleCart:
		if _, err := uc.bookService.GetBook(ctx, a.Value); err != nil {
			return s, nil, err
		}
		s = s.ToggleCart(a.Value, now)
		return s, &session.Event{
			Type:       session.EventCartToggled,
			SessionID:  s.ID,
			BookID:     a.Value,
			InCart:     s.InCart(a.Value),
			OccurredAt: now,
		}, nil

	case ActionOpen:
		if _, err := uc.bookService.GetBook(ctx, a.Value); err != nil {
			return s, nil, err
		}
		return s.Open(a.Value, now), &session.Event{
			Type:       session.EventSelectionOpened,
			SessionID:  s.ID,
			BookID:     a.Value,
			OccurredAt: now,
		}, nil

	case ActionClose:
		return s.Close(now), nil, nil

	case ActionToggleTheme:
		return s.ToggleTheme(now), nil, nil

	default:
		return s, nil, apperrors.ErrInvalidParams.WithMessage("未知的会话操作: " + string(a.Type))
	}
}
