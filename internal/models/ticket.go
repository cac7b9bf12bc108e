package models

import (
	"time"

	"gorm.io/gorm"
)

// 工单状态
const (
	TicketStatusOpen       = "open"        // 待处理
	TicketStatusInProgress = "in_progress" // 处理中
	TicketStatusResolved   = "resolved"    // 已解决
	TicketStatusClosed     = "closed"      // 已关闭
)

// 工单优先级
const (
	TicketPriorityLow    = "low"
	TicketPriorityMedium = "medium"
	TicketPriorityHigh   = "high"
	TicketPriorityUrgent = "urgent"
)

// Ticket 售后工单表
type Ticket struct {
	ID        uint           `gorm:"primarykey" json:"id"`                                  // 主键
	TicketNo  string         `gorm:"uniqueIndex;not null" json:"ticket_no"`                 // 工单编号（服务端生成）
	UserID    uint           `gorm:"index;not null" json:"user_id"`                         // 用户ID
	OrderID   *uint          `gorm:"index" json:"order_id,omitempty"`                       // 关联订单ID（可选）
	Subject   string         `gorm:"not null" json:"subject"`                               // 工单主题
	Status    string         `gorm:"index;not null;default:'open'" json:"status"`           // 工单状态
	Priority  string         `gorm:"index;not null;default:'medium'" json:"priority"`       // 优先级
	CreatedAt time.Time      `gorm:"index" json:"created_at"`                               // 创建时间
	UpdatedAt time.Time      `gorm:"index" json:"updated_at"`                               // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                                        // 软删除时间

	Messages []TicketMessage `gorm:"foreignKey:TicketID" json:"messages,omitempty"` // 工单消息
}

// TableName 指定表名
func (Ticket) TableName() string {
	return "tickets"
}
