// Package errors renders application errors as HTTP responses
// Package errors 统一错误响应
package errors

import (
	"errors"
	"time"

	"github.com/haierkeys/fast-note-service/pkg/app"
	"github.com/haierkeys/fast-note-service/pkg/code"

	"github.com/gin-gonic/gin"
)

// AppError wraps a Code together with its cause and the moment it happened
// AppError 统一应用错误结构体，包含错误码、原始错误和时间戳
type AppError struct {
	// Code 错误码
	Code *code.Code
	// Cause 原始错误（不输出给客户端）
	Cause error
	// Timestamp 错误发生时间
	Timestamp time.Time
}

// Error 实现 error 接口
func (e *AppError) Error() string {
	if e.Cause != nil {
		return e.Code.Msg() + ": " + e.Cause.Error()
	}
	return e.Code.Msg()
}

// Unwrap 实现 errors.Unwrap 接口，支持错误链路追踪
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is lets errors.Is match the wrapped Code
func (e *AppError) Is(target error) bool {
	return e.Code.Is(target)
}

// NewAppError 从 Code 对象创建 AppError
func NewAppError(c *code.Code, cause error) *AppError {
	return &AppError{
		Code:      c,
		Cause:     cause,
		Timestamp: time.Now(),
	}
}

// ToCode resolves the Code carried by err; anything unknown becomes ErrorServerInternal
// ToCode 解析错误链中的 Code，未知错误返回服务器内部错误
func ToCode(err error) *code.Code {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	var codeErr *code.Code
	if errors.As(err, &codeErr) {
		return codeErr
	}
	return code.ErrorServerInternal
}

// ErrorResponse 统一错误响应处理
// 输出 {success:false, code, statusCode, message, details?, traceId?}，HTTP 状态取自错误码
func ErrorResponse(c *gin.Context, err error) {
	app.NewResponse(c).ToErrorResponse(ToCode(err))
}

// IsAppError 检查错误是否为 AppError 类型
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}
