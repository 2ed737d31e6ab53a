package session

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/wizardshop/internal/domain/book"
	"github.com/xiebiao/wizardshop/internal/domain/session"
	"github.com/xiebiao/wizardshop/pkg/tracing"
)

// GetSessionUseCase 获取会话视图用例
type GetSessionUseCase struct {
	repo  session.Repository
	views viewBuilder
}

// NewGetSessionUseCase 创建用例
func NewGetSessionUseCase(repo session.Repository, bookService book.Service, logger *zap.Logger) *GetSessionUseCase {
	return &GetSessionUseCase{
		repo:  repo,
		views: viewBuilder{bookService: bookService, logger: logger},
	}
}

// Execute 读取会话并构建视图
func (uc *GetSessionUseCase) Execute(ctx context.Context, sessionID string) (*SessionView, error) {
	ctx, span := tracing.StartSpan(ctx, "GetSessionUseCase.Execute")
	defer span.End()

	s, err := uc.repo.Get(ctx, sessionID)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}
	return uc.views.build(ctx, s)
}

// GetCartUseCase 获取购物车用例
type GetCartUseCase struct {
	repo  session.Repository
	views viewBuilder
}

// NewGetCartUseCase 创建用例
func NewGetCartUseCase(repo session.Repository, bookService book.Service, logger *zap.Logger) *GetCartUseCase {
	return &GetCartUseCase{
		repo:  repo,
		views: viewBuilder{bookService: bookService, logger: logger},
	}
}

// Execute 返回购物车条目(按加入顺序)
func (uc *GetCartUseCase) Execute(ctx context.Context, sessionID string) (*CartView, error) {
	s, err := uc.repo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	cart := uc.views.cart(ctx, s)
	return &cart, nil
}
