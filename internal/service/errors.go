package service

import "errors"

// ==================== 业务错误 ====================

var (
	// ErrNotFound 目标资源不存在或对调用方不可见
	ErrNotFound = errors.New("resource not found")

	// ErrForbidden 调用方无权操作该资源
	ErrForbidden = errors.New("operation not allowed")

	// ErrInvalidTransition 刊登状态机不允许的状态迁移
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrMissingExtension 公共信封存在但扩展行缺失，属于数据不一致
	ErrMissingExtension = errors.New("listing extension row missing")

	// ErrDuplicateUser 用户名或邮箱已被占用
	ErrDuplicateUser = errors.New("username or email already taken")

	// ErrInvalidCredentials 用户名或密码错误
	ErrInvalidCredentials = errors.New("invalid username or password")
)
