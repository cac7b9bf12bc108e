package models

import (
	"time"

	"gorm.io/gorm"
)

// 订单状态
const (
	OrderStatusPending    = "pending"    // 待审核（已提交转账凭证）
	OrderStatusPaid       = "paid"       // 已确认收款
	OrderStatusProcessing = "processing" // 备货中
	OrderStatusShipped    = "shipped"    // 已发货
	OrderStatusDelivered  = "delivered"  // 已送达
	OrderStatusCancelled  = "cancelled"  // 已取消
)

// Order 订单表（银行卡转账支付，人工审核凭证）
type Order struct {
	ID               uint           `gorm:"primarykey" json:"id"`                                       // 主键
	OrderNo          string         `gorm:"uniqueIndex;not null" json:"order_no"`                       // 订单编号（服务端生成）
	UserID           uint           `gorm:"index;not null" json:"user_id"`                              // 用户ID
	Status           string         `gorm:"index;not null" json:"status"`                               // 订单状态
	Currency         string         `gorm:"not null" json:"currency"`                                   // 币种
	TotalAmount      Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"`  // 商品合计（按快照重新计算）
	FinalAmount      Money          `gorm:"type:decimal(20,2);not null;default:0" json:"final_amount"`  // 应付金额，当前无运费折扣，与合计一致
	FullName         string         `gorm:"not null" json:"full_name"`                                  // 收货人姓名
	Email            string         `gorm:"not null" json:"email"`                                      // 联系邮箱
	Phone            string         `gorm:"not null" json:"phone"`                                      // 联系电话
	Address          string         `gorm:"type:text;not null" json:"address"`                          // 收货地址
	City             string         `gorm:"not null" json:"city"`                                       // 城市
	PostalCode       string         `gorm:"not null" json:"postal_code"`                                // 邮政编码
	PayerCardNumber  string         `gorm:"type:varchar(20);not null" json:"payer_card_number"`         // 付款卡号
	PaymentReference string         `gorm:"type:varchar(50);not null" json:"payment_reference"`         // 转账追踪码
	ReceiptPath      string         `gorm:"type:varchar(500)" json:"receipt_path"`                      // 转账凭证图片路径（可为空）
	Notes            string         `gorm:"type:varchar(500)" json:"notes,omitempty"`                   // 订单备注
	ClientIP         string         `gorm:"type:varchar(64)" json:"client_ip,omitempty"`                // 下单客户端IP
	PaidAt           *time.Time     `gorm:"index" json:"paid_at"`                                       // 确认收款时间
	CanceledAt       *time.Time     `gorm:"index" json:"canceled_at"`                                   // 取消时间
	CreatedAt        time.Time      `gorm:"index" json:"created_at"`                                    // 创建时间
	UpdatedAt        time.Time      `gorm:"index" json:"updated_at"`                                    // 更新时间
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`                                             // 软删除时间

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"` // 订单项
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
