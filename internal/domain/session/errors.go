package session

import (
	apperrors "github.com/xiebiao/wizardshop/pkg/errors"
)

// 会话领域错误定义
var (
	// ErrSessionNotFound 会话不存在或已过期
	ErrSessionNotFound = apperrors.ErrSessionNotFound

	// ErrTokenRevoked 会话已结束,令牌被吊销
	ErrTokenRevoked = apperrors.ErrTokenRevoked
)
