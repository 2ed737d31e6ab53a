package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	t.Run("无内部错误", func(t *testing.T) {
		err := New(ErrCodeInvalidParams, "参数错误")
		assert.Equal(t, "[40900] 参数错误", err.Error())
	})

	t.Run("带内部错误", func(t *testing.T) {
		err := Wrap(fmt.Errorf("connection refused"), "查询失败")
		assert.Equal(t, "[50000] 查询失败: connection refused", err.Error())
	})
}

func TestAppError_IsByCode(t *testing.T) {
	base := New(ErrCodeBookNotFound, "图书不存在")
	derived := base.WithMessage("图书不存在: bk1")

	assert.True(t, errors.Is(derived, base), "同错误码应视为同一错误")
	assert.False(t, errors.Is(derived, ErrSessionNotFound))

	wrapped := fmt.Errorf("handler: %w", derived)
	assert.True(t, errors.Is(wrapped, base), "fmt包装后仍可识别")
}

func TestGetAppError(t *testing.T) {
	t.Run("AppError原样返回", func(t *testing.T) {
		got := GetAppError(ErrTokenExpired)
		assert.Same(t, ErrTokenExpired, got)
	})

	t.Run("普通错误包装为内部错误", func(t *testing.T) {
		raw := errors.New("boom")
		got := GetAppError(raw)
		assert.Equal(t, ErrCodeInternal, got.Code)
		assert.ErrorIs(t, got, raw)
	})
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, 0, CodeOf(nil))
	assert.Equal(t, ErrCodeRedisError, CodeOf(WrapCode(errors.New("x"), ErrCodeRedisError, "缓存服务错误")))
	assert.Equal(t, ErrCodeInternal, CodeOf(errors.New("plain")))
}
