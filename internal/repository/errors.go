package repository

import "errors"

var (
	// ErrNotFound 按 ID 查询不到记录
	ErrNotFound = errors.New("记录不存在")
	// ErrDuplicate 唯一约束冲突（用户名或邮箱已被占用）
	ErrDuplicate = errors.New("记录已存在")
)
