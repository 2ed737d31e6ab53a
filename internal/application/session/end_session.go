package session

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/wizardshop/internal/domain/session"
	"github.com/xiebiao/wizardshop/pkg/logger"
	"github.com/xiebiao/wizardshop/pkg/metrics"
	"github.com/xiebiao/wizardshop/pkg/tracing"
)

// EndSessionRequest 结束会话请求DTO
type EndSessionRequest struct {
	SessionID string
	TokenID   string        // 令牌jti
	TokenTTL  time.Duration // 令牌剩余有效期
}

// EndSessionUseCase 结束会话用例
// 学习要点:
// 1. 先把令牌加入黑名单,再删除会话
// 2. 黑名单TTL等于令牌剩余有效期,过期后自动清理
// 3. 购物车和筛选条件随会话一起丢弃,不做持久化
type EndSessionUseCase struct {
	repo      session.Repository
	blacklist session.TokenBlacklist
	logger    *zap.Logger
}

// NewEndSessionUseCase 创建用例
func NewEndSessionUseCase(repo session.Repository, blacklist session.TokenBlacklist, logger *zap.Logger) *EndSessionUseCase {
	return &EndSessionUseCase{repo: repo, blacklist: blacklist, logger: logger}
}

// Execute 结束会话
func (uc *EndSessionUseCase) Execute(ctx context.Context, req EndSessionRequest) error {
	ctx, span := tracing.StartSpan(ctx, "EndSessionUseCase.Execute")
	defer span.End()

	// 1. 吊销令牌
	if err := uc.blacklist.Revoke(ctx, req.TokenID, req.TokenTTL); err != nil {
		tracing.RecordError(span, err)
		return err
	}

	// 2. 删除会话
	if err := uc.repo.Delete(ctx, req.SessionID); err != nil {
		tracing.RecordError(span, err)
		return err
	}

	metrics.InitMetrics()
	metrics.IncCounter(metrics.SessionsEndedTotal)
	logger.WithTrace(ctx, uc.logger).Debug("会话已结束", zap.String("session_id", req.SessionID))
	return nil
}
