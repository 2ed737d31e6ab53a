package errors

import (
	"errors"
	"fmt"
)

// AppError 自定义应用错误
// 设计说明：
// 1. Code用于客户端判断错误类型（不要直接暴露HTTP状态码）
// 2. Message是用户友好的提示信息
// 3. Err是内部错误，仅记录到日志，不返回给客户端（防止泄露敏感信息）
type AppError struct {
	Code    int    `json:"code"`    // 业务错误码
	Message string `json:"message"` // 用户友好的错误提示
	Err     error  `json:"-"`       // 内部错误（不序列化）
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 支持errors.Is和errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is 按错误码比较，WithMessage派生出的错误仍然与原错误相等
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// WithMessage 复制错误并替换提示信息（错误码不变）
func (e *AppError) WithMessage(message string) *AppError {
	return &AppError{Code: e.Code, Message: message, Err: e.Err}
}

// New 创建新的AppError
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap 包装系统错误（如数据库错误、网络错误）
// 用途：将底层错误转换为业务错误，隐藏实现细节
func Wrap(err error, message string) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
		Err:     err,
	}
}

// Wrapf 格式化包装错误
func Wrapf(err error, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// WrapCode 使用指定错误码包装底层错误
func WrapCode(err error, code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// =========================================
// 错误码定义
// =========================================
// 规范：
// - 4xxxx: 客户端错误（参数错误、会话失效、资源不存在）
// - 5xxxx: 服务端错误（数据库、Redis、消息队列异常）

const (
	// 系统级错误码（50000-50099）
	ErrCodeInternal      = 50000 // 内部错误
	ErrCodeDatabaseError = 50001 // 数据库错误
	ErrCodeRedisError    = 50002 // Redis错误
	ErrCodeMQError       = 50003 // 消息队列错误

	// 会话令牌错误（40100-40199）
	ErrCodeUnauthorized = 40100 // 缺少会话令牌
	ErrCodeInvalidToken = 40101 // 令牌无效
	ErrCodeTokenExpired = 40102 // 令牌过期
	ErrCodeTokenRevoked = 40103 // 会话已结束

	// 资源错误（40400-40499）
	ErrCodeNotFound        = 40400 // 资源不存在(通用)
	ErrCodeBookNotFound    = 40402 // 图书不存在
	ErrCodeSessionNotFound = 40405 // 会话不存在或已过期

	// 参数错误（40900-40999）
	ErrCodeInvalidParams  = 40900 // 参数错误
	ErrCodeBindError      = 40901 // 参数绑定失败
	ErrCodeInvalidSection = 40902 // 无效的分区
	ErrCodeInvalidHouse   = 40903 // 无效的学院
	ErrCodeInvalidSortKey = 40904 // 无效的排序方式
	ErrCodeSearchTooLong  = 40905 // 关键词过长

	// 目录数据错误（42200-42299）
	// 目录在启动时加载并校验，这些错误说明数据录入有缺陷
	ErrCodeInvalidCatalog = 42200 // 目录数据无效(通用)
	ErrCodeDuplicateID    = 42201 // 图书ID重复
	ErrCodeInvalidRarity  = 42202 // 稀有度超出范围
	ErrCodeInvalidPrice   = 42203 // 价格为负
)

// =========================================
// 预定义错误（避免每次都New）
// =========================================

var (
	// 系统错误
	ErrInternal      = New(ErrCodeInternal, "系统内部错误")
	ErrDatabaseError = New(ErrCodeDatabaseError, "数据库错误")
	ErrRedisError    = New(ErrCodeRedisError, "缓存服务错误")
	ErrMQError       = New(ErrCodeMQError, "消息服务错误")

	// 会话令牌
	ErrUnauthorized = New(ErrCodeUnauthorized, "请先创建会话")
	ErrInvalidToken = New(ErrCodeInvalidToken, "无效的会话令牌")
	ErrTokenExpired = New(ErrCodeTokenExpired, "会话令牌已过期")
	ErrTokenRevoked = New(ErrCodeTokenRevoked, "会话已结束")

	// 资源不存在
	ErrNotFound        = New(ErrCodeNotFound, "资源不存在")
	ErrSessionNotFound = New(ErrCodeSessionNotFound, "会话不存在或已过期")

	// 参数错误
	ErrInvalidParams = New(ErrCodeInvalidParams, "参数错误")
	ErrBindError     = New(ErrCodeBindError, "参数格式错误")
)

// =========================================
// 辅助函数
// =========================================

// IsAppError 判断是否为AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError 提取AppError（如果不是AppError则包装成Internal错误）
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, "系统内部错误")
}

// CodeOf 返回错误对应的业务码，nil返回0
func CodeOf(err error) int {
	if err == nil {
		return 0
	}
	return GetAppError(err).Code
}
