package memory

import (
	"context"
	"sync"
	"time"

	"github.com/xiebiao/wizardshop/internal/domain/session"
)

// SessionStore 进程内会话存储
// 设计说明:
// 1. 单实例部署或本地开发使用,重启后会话全部丢失
// 2. 读取时检查过期时间,过期的会话当作不存在并顺手删除
// 3. 保存时按TTL刷新过期时间(与Redis实现的语义一致)
// 4. 每sweepEvery次写入清理一遍过期会话,没人再读的会话也会被回收
type SessionStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]entry
	writes   int
	now      func() time.Time
}

// sweepEvery 两次清理之间的写入次数
const sweepEvery = 64

type entry struct {
	session   session.Session
	expiresAt time.Time
}

// NewSessionStore 创建进程内会话存储
func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		ttl:      ttl,
		sessions: make(map[string]entry),
		now:      time.Now,
	}
}

// Get 获取会话(返回副本)
func (s *SessionStore) Get(ctx context.Context, id string) (*session.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok {
		return nil, session.ErrSessionNotFound
	}
	if s.expired(e.expiresAt) {
		delete(s.sessions, id)
		return nil, session.ErrSessionNotFound
	}
	sess := e.session
	return &sess, nil
}

// Save 保存会话并刷新过期时间
func (s *SessionStore) Save(ctx context.Context, sess *session.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[sess.ID] = entry{session: *sess, expiresAt: s.expiry(s.ttl)}
	s.writes++
	if s.writes%sweepEvery == 0 {
		s.sweep()
	}
	return nil
}

// sweep 删除全部过期会话,调用方持有锁
func (s *SessionStore) sweep() {
	for id, e := range s.sessions {
		if s.expired(e.expiresAt) {
			delete(s.sessions, id)
		}
	}
}

// Delete 删除会话,不存在时不报错
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
	return nil
}

// Len 当前未过期的会话数量
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, e := range s.sessions {
		if !s.expired(e.expiresAt) {
			n++
		}
	}
	return n
}

// expiry ttl<=0表示永不过期
func (s *SessionStore) expiry(ttl time.Duration) time.Time {
	if ttl <= 0 {
		return time.Time{}
	}
	return s.now().Add(ttl)
}

func (s *SessionStore) expired(at time.Time) bool {
	return !at.IsZero() && !s.now().Before(at)
}
