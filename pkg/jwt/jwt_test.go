package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/wizardshop/pkg/errors"
)

func TestManager_GenerateAndParse(t *testing.T) {
	m := NewManager("test-secret", "wizardshop", time.Hour)

	tok, err := m.GenerateSessionToken("sess-1")
	require.NoError(t, err)
	assert.NotEmpty(t, tok.Token)
	assert.NotEmpty(t, tok.TokenID)
	assert.Equal(t, int64(3600), tok.ExpiresIn)

	claims, err := m.ParseToken(tok.Token)
	require.NoError(t, err)
	assert.Equal(t, "sess-1", claims.SessionID)
	assert.Equal(t, "sess-1", claims.Subject)
	assert.Equal(t, tok.TokenID, claims.ID)

	remaining := m.Remaining(claims)
	assert.True(t, remaining > 59*time.Minute && remaining <= time.Hour)

	t.Log("✓ 会话令牌签发与解析成功")
}

func TestManager_ParseToken_Errors(t *testing.T) {
	m := NewManager("test-secret", "wizardshop", time.Hour)
	tok, err := m.GenerateSessionToken("sess-1")
	require.NoError(t, err)

	t.Run("错误的密钥", func(t *testing.T) {
		other := NewManager("other-secret", "wizardshop", time.Hour)
		_, err := other.ParseToken(tok.Token)
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})

	t.Run("签发者不一致", func(t *testing.T) {
		other := NewManager("test-secret", "someone-else", time.Hour)
		_, err := other.ParseToken(tok.Token)
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})

	t.Run("格式错误", func(t *testing.T) {
		_, err := m.ParseToken("not-a-token")
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})

	t.Run("已过期", func(t *testing.T) {
		expired := NewManager("test-secret", "wizardshop", time.Minute)
		expired.now = func() time.Time { return time.Now().Add(-time.Hour) }
		old, err := expired.GenerateSessionToken("sess-2")
		require.NoError(t, err)

		_, err = m.ParseToken(old.Token)
		assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
	})
}
