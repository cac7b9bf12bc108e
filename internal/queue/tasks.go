package queue

import (
	"encoding/json"

	"github.com/parskala/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderStatusEmail 订单状态邮件通知任务
	TaskOrderStatusEmail = constants.TaskOrderStatusEmail
	// TaskTicketReplyEmail 工单客服回复邮件通知任务
	TaskTicketReplyEmail = constants.TaskTicketReplyEmail
)

// OrderStatusEmailPayload 订单状态邮件任务载荷
type OrderStatusEmailPayload struct {
	OrderID uint   `json:"order_id"`
	Status  string `json:"status"`
}

// TicketReplyEmailPayload 工单回复邮件任务载荷
type TicketReplyEmailPayload struct {
	TicketID uint `json:"ticket_id"`
}

// NewOrderStatusEmailTask 创建订单状态邮件任务
func NewOrderStatusEmailTask(payload OrderStatusEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderStatusEmail, body), nil
}

// NewTicketReplyEmailTask 创建工单回复邮件任务
func NewTicketReplyEmailTask(payload TicketReplyEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTicketReplyEmail, body), nil
}
