package response

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
)

// AppError 接口错误：业务码、文案键、展示文案与原始错误
type AppError struct {
	Code    int
	Key     string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	label := e.Message
	if e.Key != "" {
		label = fmt.Sprintf("%s (%s)", e.Message, e.Key)
	}
	if e.Err == nil {
		return label
	}
	return label + ": " + e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// WrapError 包装错误，key 为 i18n 文案键
func WrapError(code int, key, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Key:     key,
		Message: message,
		Err:     err,
	}
}

// Respond 以统一结构输出该错误
func (e *AppError) Respond(c *gin.Context) {
	Error(c, e.Code, e.Message)
}

// AsAppError 从错误链中取出 AppError
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
