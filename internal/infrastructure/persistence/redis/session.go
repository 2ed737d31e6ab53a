package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/xiebiao/wizardshop/internal/domain/session"
	apperrors "github.com/xiebiao/wizardshop/pkg/errors"
)

// SessionStore 会话存储(Redis)
// 设计说明:
// 1. 会话整体序列化为JSON存在session:{id},每次保存刷新TTL
// 2. 结束会话时令牌jti写入blacklist:{jti},TTL为令牌剩余有效期
// 3. 多个服务实例共享同一个Redis,会话可以落在任意实例上
type SessionStore struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewSessionStore 创建会话存储
func NewSessionStore(client redis.Cmdable, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: ttl}
}

func sessionKey(id string) string {
	return "session:" + id
}

func blacklistKey(tokenID string) string {
	return "blacklist:" + tokenID
}

// Get 获取会话
func (s *SessionStore) Get(ctx context.Context, id string) (*session.Session, error) {
	data, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, session.ErrSessionNotFound
		}
		return nil, apperrors.WrapCode(err, apperrors.ErrCodeRedisError, "获取会话失败")
	}
	return decodeSession(data)
}

// Save 保存会话并刷新TTL
func (s *SessionStore) Save(ctx context.Context, sess *session.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return apperrors.Wrap(err, "会话序列化失败")
	}
	if err := s.client.Set(ctx, sessionKey(sess.ID), data, s.ttl).Err(); err != nil {
		return apperrors.WrapCode(err, apperrors.ErrCodeRedisError, "保存会话失败")
	}
	return nil
}

// Delete 删除会话
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, sessionKey(id)).Err(); err != nil {
		return apperrors.WrapCode(err, apperrors.ErrCodeRedisError, "删除会话失败")
	}
	return nil
}

// Revoke 将令牌加入黑名单
// ttl<=0说明令牌已经过期,不需要写入
func (s *SessionStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, blacklistKey(tokenID), "revoked", ttl).Err(); err != nil {
		return apperrors.WrapCode(err, apperrors.ErrCodeRedisError, "添加令牌到黑名单失败")
	}
	return nil
}

// IsRevoked 检查令牌是否在黑名单中
func (s *SessionStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.client.Exists(ctx, blacklistKey(tokenID)).Result()
	if err != nil {
		return false, apperrors.WrapCode(err, apperrors.ErrCodeRedisError, "检查黑名单失败")
	}
	return n > 0, nil
}

func decodeSession(data []byte) (*session.Session, error) {
	var sess session.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, apperrors.Wrap(err, "会话数据损坏")
	}
	return &sess, nil
}
