package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	apperrors "github.com/xiebiao/wizardshop/pkg/errors"
)

// Manager 会话令牌管理器
// 设计说明:
// 1. 令牌只标识一个浏览会话(sub=会话ID),不代表任何用户身份
// 2. 有效期与会话TTL一致,会话过期后令牌同时失效
// 3. 每个令牌带唯一jti,结束会话时把jti加入黑名单即可提前吊销
type Manager struct {
	secret string        // 签名密钥
	issuer string        // 签发者
	expire time.Duration // 令牌有效期
	now    func() time.Time
}

// NewManager 创建令牌管理器
func NewManager(secret, issuer string, expire time.Duration) *Manager {
	return &Manager{
		secret: secret,
		issuer: issuer,
		expire: expire,
		now:    time.Now,
	}
}

// Claims 会话令牌Claims
// 学习要点:
// 1. 嵌入jwt.RegisteredClaims获取标准字段(exp、iat、nbf、jti等)
// 2. SessionID冗余一份在自定义字段里,读取时不用再解析Subject
type Claims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// Token 签发结果
type Token struct {
	Token     string    `json:"token"`
	TokenID   string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
	ExpiresIn int64     `json:"expires_in"` // 秒
}

// GenerateSessionToken 为会话签发令牌
func (m *Manager) GenerateSessionToken(sessionID string) (*Token, error) {
	now := m.now()
	expiresAt := now.Add(m.expire)
	tokenID := uuid.NewString()

	claims := Claims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    m.issuer,
			Subject:   sessionID,
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(m.secret))
	if err != nil {
		return nil, apperrors.Wrap(err, "生成会话令牌失败")
	}

	return &Token{
		Token:     signed,
		TokenID:   tokenID,
		ExpiresAt: expiresAt,
		ExpiresIn: int64(m.expire.Seconds()),
	}, nil
}

// ParseToken 解析并验证令牌
// 学习要点:
// 1. 验证签名算法(防止alg=none攻击)
// 2. 验证过期时间(exp)和生效时间(nbf)
// 3. 过期和其他错误分开返回,客户端据此决定是否新建会话
func (m *Manager) ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("非法的签名算法: %v", token.Header["alg"])
		}
		return []byte(m.secret), nil
	}, jwt.WithTimeFunc(m.now), jwt.WithIssuer(m.issuer))

	if err != nil {
		// jwt/v5返回的是包装后的错误,需要用errors.Is判断
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, apperrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.SessionID == "" {
		return nil, apperrors.ErrInvalidToken
	}

	return claims, nil
}

// Remaining 令牌剩余有效期(黑名单TTL使用)
func (m *Manager) Remaining(claims *Claims) time.Duration {
	if claims.ExpiresAt == nil {
		return 0
	}
	d := claims.ExpiresAt.Sub(m.now())
	if d < 0 {
		return 0
	}
	return d
}
