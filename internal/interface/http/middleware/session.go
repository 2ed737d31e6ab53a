package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/wizardshop/internal/domain/session"
	apperrors "github.com/xiebiao/wizardshop/pkg/errors"
	"github.com/xiebiao/wizardshop/pkg/jwt"
	"github.com/xiebiao/wizardshop/pkg/response"
)

const (
	ctxKeySessionID = "session_id"
	ctxKeyClaims    = "session_claims"
)

// SessionMiddleware 会话令牌中间件
// 设计说明:
// 1. 从Header提取Token
// 2. 验证Token有效性
// 3. 检查Token黑名单(会话已结束)
// 4. 将会话ID注入Context
type SessionMiddleware struct {
	jwtManager *jwt.Manager
	blacklist  session.TokenBlacklist
}

// NewSessionMiddleware 创建会话中间件
func NewSessionMiddleware(jwtManager *jwt.Manager, blacklist session.TokenBlacklist) *SessionMiddleware {
	return &SessionMiddleware{
		jwtManager: jwtManager,
		blacklist:  blacklist,
	}
}

// RequireSession 要求携带有效的会话令牌
// 使用方式:
//
//	me := v1.Group("/sessions/me")
//	me.Use(sessionMiddleware.RequireSession())
//	me.GET("", handler.Get)
func (m *SessionMiddleware) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. 从Header提取Token
		// 格式:Authorization: Bearer <token>
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Error(c, apperrors.ErrUnauthorized)
			c.Abort()
			return
		}

		// 2. 解析Token格式
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			response.Error(c, apperrors.ErrInvalidToken.WithMessage("令牌格式错误"))
			c.Abort()
			return
		}

		// 3. 验证Token并解析Claims
		claims, err := m.jwtManager.ParseToken(parts[1])
		if err != nil {
			response.Error(c, err) // ErrTokenExpired、ErrInvalidToken
			c.Abort()
			return
		}

		// 4. 检查黑名单(会话已结束)
		revoked, err := m.blacklist.IsRevoked(c.Request.Context(), claims.ID)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}
		if revoked {
			response.Error(c, session.ErrTokenRevoked)
			c.Abort()
			return
		}

		// 5. 注入会话信息
		c.Set(ctxKeySessionID, claims.SessionID)
		c.Set(ctxKeyClaims, claims)

		c.Next()
	}
}

// GetSessionID 从Context获取会话ID,未通过RequireSession时返回空字符串
func GetSessionID(c *gin.Context) string {
	return c.GetString(ctxKeySessionID)
}

// GetClaims 从Context获取令牌Claims
func GetClaims(c *gin.Context) (*jwt.Claims, bool) {
	v, exists := c.Get(ctxKeyClaims)
	if !exists {
		return nil, false
	}
	claims, ok := v.(*jwt.Claims)
	return claims, ok
}

// MustGetSessionID 从Context获取会话ID(如果不存在则panic)
// 说明:用于已经通过RequireSession中间件的Handler
func MustGetSessionID(c *gin.Context) string {
	id := GetSessionID(c)
	if id == "" {
		panic("session_id not found in context")
	}
	return id
}
