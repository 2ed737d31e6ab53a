package session

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xiebiao/wizardshop/internal/domain/book"
	"github.com/xiebiao/wizardshop/internal/domain/session"
	"github.com/xiebiao/wizardshop/pkg/jwt"
	"github.com/xiebiao/wizardshop/pkg/logger"
	"github.com/xiebiao/wizardshop/pkg/metrics"
	"github.com/xiebiao/wizardshop/pkg/tracing"
)

// CreateSessionUseCase 创建浏览会话用例
// 设计说明:
// 1. 会话ID使用UUID,令牌的sub就是会话ID
// 2. 初始状态:new分区、按人气排序、深色主题、空购物车
// 3. 保存成功后发布session.created事件,发布失败只记日志
type CreateSessionUseCase struct {
	repo       session.Repository
	jwtManager *jwt.Manager
	publisher  session.EventPublisher
	views      viewBuilder
	logger     *zap.Logger
	now        func() time.Time
}

// NewCreateSessionUseCase 创建用例
func NewCreateSessionUseCase(
	repo session.Repository,
	jwtManager *jwt.Manager,
	publisher session.EventPublisher,
	bookService book.Service,
	logger *zap.Logger,
) *CreateSessionUseCase {
	return &CreateSessionUseCase{
		repo:       repo,
		jwtManager: jwtManager,
		publisher:  publisher,
		views:      viewBuilder{bookService: bookService, logger: logger},
		logger:     logger,
		now:        time.Now,
	}
}

// CreateSessionResponse 创建会话响应DTO
type CreateSessionResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	ExpiresIn int64        `json:"expires_in"`
	Session   *SessionView `json:"session"`
}

// Execute 创建会话
func (uc *CreateSessionUseCase) Execute(ctx context.Context) (*CreateSessionResponse, error) {
	ctx, span := tracing.StartSpan(ctx, "CreateSessionUseCase.Execute")
	defer span.End()

	// 1. 创建会话
	now := uc.now()
	s := session.New(uuid.NewString(), now)

	// 2. 签发令牌
	token, err := uc.jwtManager.GenerateSessionToken(s.ID)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}

	// 3. 保存会话
	if err := uc.repo.Save(ctx, &s); err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}
	metrics.InitMetrics()
	metrics.IncCounter(metrics.SessionsCreatedTotal)

	// 4. 发布事件
	publish(ctx, uc.publisher, uc.logger, session.Event{
		Type:       session.EventSessionCreated,
		SessionID:  s.ID,
		OccurredAt: now,
	})

	view, err := uc.views.build(ctx, &s)
	if err != nil {
		return nil, err
	}

	logger.WithTrace(ctx, uc.logger).Debug("会话已创建", zap.String("session_id", s.ID))

	return &CreateSessionResponse{
		Token:     token.Token,
		ExpiresAt: token.ExpiresAt,
		ExpiresIn: token.ExpiresIn,
		Session:   view,
	}, nil
}

// publish 发布领域事件,失败不影响用户操作
func publish(ctx context.Context, publisher session.EventPublisher, l *zap.Logger, event session.Event) {
	if err := publisher.Publish(ctx, event); err != nil {
		logger.WithTrace(ctx, l).Warn("发布事件失败",
			zap.String("type", string(event.Type)),
			zap.String("session_id", event.SessionID),
			zap.Error(err),
		)
	}
}
