package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/xiebiao/wizardshop/pkg/logger"
)

// Logger 请求日志中间件
// 记录method、path、query、status、latency、client_ip,有Span时附带trace_id
func Logger(l *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		rl := logger.WithTrace(c.Request.Context(), l)
		switch {
		case status >= 500:
			rl.Error("HTTP请求", fields...)
		case status >= 400:
			rl.Warn("HTTP请求", fields...)
		default:
			rl.Info("HTTP请求", fields...)
		}
	}
}

// Recovery panic恢复中间件,panic信息写入zap日志并返回500
func Recovery(l *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		logger.WithTrace(c.Request.Context(), l).Error("请求处理panic",
			zap.Any("panic", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.Stack("stack"),
		)
		c.AbortWithStatus(500)
	})
}
