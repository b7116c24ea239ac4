package errs

import (
	"errors"
)

// 定义统一的错误类型
var (
	// ErrInvalidInput 调用方传入的值不合法（类型错误、语言不支持等）
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvariantViolation 时间字段之间的约束或者时区约束被破坏
	ErrInvariantViolation = errors.New("invariant violation")
	// ErrInternal 实现本身的缺陷，不应该出现
	ErrInternal = errors.New("internal error")

	ErrInvalidParameter = errors.New("参数错误")
	ErrPublishFailed    = errors.New("发布通知消息失败")
	ErrIDGenerateFailed = errors.New("消息ID生成失败")
)
