package models

import (
	"time"

	"gorm.io/gorm"
)

// Profile 用户收货资料（用于预填结算表单）
type Profile struct {
	ID         uint           `gorm:"primarykey" json:"id"`             // 主键
	UserID     uint           `gorm:"uniqueIndex;not null" json:"user_id"` // 用户ID
	FullName   string         `json:"full_name"`                        // 姓名
	Phone      string         `json:"phone"`                            // 电话
	Address    string         `gorm:"type:text" json:"address"`         // 地址
	City       string         `json:"city"`                             // 城市
	PostalCode string         `json:"postal_code"`                      // 邮政编码
	CreatedAt  time.Time      `json:"created_at"`                       // 创建时间
	UpdatedAt  time.Time      `json:"updated_at"`                       // 更新时间
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`                   // 软删除时间
}

// TableName 指定表名
func (Profile) TableName() string {
	return "profiles"
}
