package apperrors

import (
	"errors"
	"net/http"
)

// 错误分类，配合 errors.Is 使用
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrStore        = errors.New("store error")
)

// AppError 自定义错误类型
// Code 为 HTTP 状态码，Message 为 i18n 消息 ID
type AppError struct {
	Code    int
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is 按状态码匹配错误分类
func (e *AppError) Is(target error) bool {
	switch target {
	case ErrInvalidInput:
		return e.Code == http.StatusBadRequest
	case ErrNotFound:
		return e.Code == http.StatusNotFound
	case ErrStore:
		return e.Code >= http.StatusInternalServerError
	}
	return false
}

// WithCode 创建通用业务错误
func WithCode(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// InvalidInput 参数校验错误（400）
func InvalidInput(message string) *AppError {
	return WithCode(http.StatusBadRequest, message)
}

// InvalidInputDefault 默认参数校验错误
func InvalidInputDefault() *AppError {
	return InvalidInput("error.invalid_request")
}

// NotFound 记录不存在（404）
func NotFound(message string) *AppError {
	return WithCode(http.StatusNotFound, message)
}

// StoreError 持久化失败（500），cause 只记录日志，不返回给客户端
func StoreError(message string, cause error) *AppError {
	return &AppError{
		Code:    http.StatusInternalServerError,
		Message: message,
		Cause:   cause,
	}
}

// StoreErrorDefault 默认系统内部错误
func StoreErrorDefault(cause error) *AppError {
	return StoreError("error.server", cause)
}

// Unavailable 依赖不可用（503）
func Unavailable(message string, cause error) *AppError {
	return &AppError{
		Code:    http.StatusServiceUnavailable,
		Message: message,
		Cause:   cause,
	}
}
