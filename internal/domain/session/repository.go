package session

import (
	"context"
	"time"
)

// Repository 会话存储接口
// 实现:内存(单进程)和Redis(多实例共享)
type Repository interface {
	// Get 获取会话,不存在或已过期返回ErrSessionNotFound
	Get(ctx context.Context, id string) (*Session, error)

	// Save 保存会话并刷新TTL
	Save(ctx context.Context, s *Session) error

	// Delete 删除会话(不存在时不报错)
	Delete(ctx context.Context, id string) error
}

// TokenBlacklist 会话令牌黑名单
// 结束会话后,对应令牌在剩余有效期内不能再使用
type TokenBlacklist interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
