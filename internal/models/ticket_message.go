package models

import (
	"time"

	"gorm.io/gorm"
)

// TicketMessage 工单消息表
type TicketMessage struct {
	ID           uint           `gorm:"primarykey" json:"id"`                           // 主键
	TicketID     uint           `gorm:"index;not null" json:"ticket_id"`                // 工单ID
	SenderID     uint           `gorm:"index;not null" json:"sender_id"`                // 发送者ID（用户或管理员）
	IsAdminReply bool           `gorm:"not null;default:false" json:"is_admin_reply"`   // 是否管理员回复（由服务端身份推导）
	Message      string         `gorm:"type:text;not null" json:"message"`              // 消息内容
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`                        // 创建时间
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`                                 // 软删除时间
}

// TableName 指定表名
func (TicketMessage) TableName() string {
	return "ticket_messages"
}
