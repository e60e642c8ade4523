package service

import "errors"

// 参数校验错误，在调用外部服务前返回
var (
	ErrEmptyPrompt  = errors.New("prompt must not be empty")
	ErrNoTitles     = errors.New("at least one non-blank title is required")
	ErrInvalidCount = errors.New("count must be greater than zero")
)

// IsValidationError 是否为用户输入错误
func IsValidationError(err error) bool {
	return errors.Is(err, ErrEmptyPrompt) || errors.Is(err, ErrNoTitles) || errors.Is(err, ErrInvalidCount)
}
