package memory

import (
	"context"
	"sync"
	"time"
)

// Blacklist 进程内令牌黑名单
// 记录的有效期等于令牌剩余有效期,过期后令牌本身也无法通过校验
// 与SessionStore一样每sweepEvery次吊销清理一遍过期记录
type Blacklist struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	writes  int
	now     func() time.Time
}

// NewBlacklist 创建令牌黑名单
func NewBlacklist() *Blacklist {
	return &Blacklist{
		revoked: make(map[string]time.Time),
		now:     time.Now,
	}
}

// Revoke 吊销令牌
func (b *Blacklist) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	b.revoked[tokenID] = now.Add(ttl)
	b.writes++
	if b.writes%sweepEvery == 0 {
		for id, until := range b.revoked {
			if !now.Before(until) {
				delete(b.revoked, id)
			}
		}
	}
	return nil
}

// IsRevoked 令牌是否已被吊销
func (b *Blacklist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	until, ok := b.revoked[tokenID]
	if !ok {
		return false, nil
	}
	if !b.now().Before(until) {
		delete(b.revoked, tokenID)
		return false, nil
	}
	return true, nil
}
