package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "github.com/xiebiao/wizardshop/pkg/errors"
	"github.com/xiebiao/wizardshop/pkg/logger"
)

// Response 统一响应结构
// 设计说明:
// 1. Code是业务错误码(非HTTP状态码),0表示成功
// 2. Message是用户友好的提示信息
// 3. Data是业务数据,失败时为null
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Error 错误响应(自动处理AppError)
// 内部错误(appErr.Err)只写日志,不返回给客户端
//
//	view, err := h.getSession.Execute(ctx, req)
//	if err != nil {
//	    response.Error(c, err)
//	    return
//	}
func Error(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)

	l := logger.WithTrace(c.Request.Context(), zap.L())
	fields := []zap.Field{
		zap.Int("code", appErr.Code),
		zap.String("path", c.FullPath()),
	}
	if appErr.Err != nil {
		l.Error(appErr.Message, append(fields, zap.Error(appErr.Err))...)
	} else if appErr.Code >= apperrors.ErrCodeInternal {
		l.Error(appErr.Message, fields...)
	} else {
		l.Debug(appErr.Message, fields...)
	}

	_ = c.Error(err)
	c.JSON(http.StatusOK, Response{
		Code:    appErr.Code,
		Message: appErr.Message,
	})
}
