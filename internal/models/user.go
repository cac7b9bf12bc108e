package models

import (
	"time"

	"gorm.io/gorm"
)

// User 店铺顾客账号
type User struct {
	ID                 uint           `gorm:"primarykey" json:"id"`
	Email              string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash       string         `gorm:"not null" json:"-"`
	DisplayName        string         `gorm:"default:''" json:"display_name"`
	Status             string         `gorm:"default:'active'" json:"status"` // active / disabled
	TokenVersion       uint64         `gorm:"not null;default:0" json:"-"`    // 改密后自增，旧 Token 全部失效
	TokenInvalidBefore *time.Time     `gorm:"index" json:"-"`                 // 此时间前签发的 Token 失效
	LastLoginAt        *time.Time     `json:"last_login_at"`
	CreatedAt          time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt          time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}
