package model

import (
	"time"
)

// User 用户模型
// username 与 email 全局唯一；密码只保存加盐哈希
type User struct {
	ID           int       `json:"id" db:"id" gorm:"primaryKey"`
	Username     string    `json:"username" db:"username" gorm:"unique;not null"`
	Email        string    `json:"email" db:"email" gorm:"unique;not null"`
	PasswordHash string    `json:"-" db:"password_hash" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// SessionUser 专门用于 Session 存储的用户信息结构
type SessionUser struct {
	ID       int
	Username string
	Email    string
}
