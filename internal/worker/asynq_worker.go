package worker

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/parskala/internal/logger"
	"github.com/parskala/internal/provider"
	"github.com/parskala/internal/queue"
	"github.com/parskala/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOrderStatusEmail, c.handleOrderStatusEmail)
	mux.HandleFunc(queue.TaskTicketReplyEmail, c.handleTicketReplyEmail)
}

func (c *Consumer) handleOrderStatusEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_status_email_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OrderStatusEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_status_email_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_order_status_email_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}
	order, err := c.OrderRepo.GetByID(payload.OrderID)
	if err != nil {
		logger.Warnw("worker_order_status_email_fetch_order_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	if order == nil {
		logger.Debugw("worker_order_status_email_skip_order_not_found", "order_id", payload.OrderID)
		return nil
	}
	user, err := c.UserRepo.GetByID(order.UserID)
	if err != nil {
		logger.Warnw("worker_order_status_email_fetch_user_failed", "order_id", order.ID, "user_id", order.UserID, "error", err)
		return err
	}
	if user == nil {
		logger.Debugw("worker_order_status_email_skip_user_not_found", "order_id", order.ID, "user_id", order.UserID)
		return nil
	}
	receiverEmail := strings.TrimSpace(user.Email)
	if receiverEmail == "" {
		logger.Debugw("worker_order_status_email_skip_empty_receiver", "order_id", order.ID, "order_no", order.OrderNo)
		return nil
	}
	if c.EmailService == nil {
		logger.Warnw("worker_order_status_email_skip_email_service_nil", "order_id", order.ID, "order_no", order.OrderNo)
		return nil
	}
	status := strings.TrimSpace(payload.Status)
	if status == "" {
		status = order.Status
	}
	input := service.OrderStatusEmailInput{
		OrderNo:  order.OrderNo,
		Status:   status,
		Amount:   order.TotalAmount,
		Currency: order.Currency,
	}
	if err := c.EmailService.SendOrderStatusEmail(receiverEmail, input); err != nil {
		if errors.Is(err, service.ErrEmailServiceDisabled) || errors.Is(err, service.ErrEmailServiceNotConfigured) {
			logger.Debugw("worker_order_status_email_skip_disabled", "order_id", order.ID, "order_no", order.OrderNo)
			return nil
		}
		logger.Warnw("worker_order_status_email_send_failed",
			"order_id", order.ID,
			"order_no", order.OrderNo,
			"receiver_email", receiverEmail,
			"status", status,
			"error", err,
		)
		return err
	}
	return nil
}

func (c *Consumer) handleTicketReplyEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_ticket_reply_email_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.TicketReplyEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_ticket_reply_email_unmarshal_failed", "error", err)
		return err
	}
	if payload.TicketID == 0 {
		logger.Debugw("worker_ticket_reply_email_skip_invalid_payload", "ticket_id", payload.TicketID)
		return nil
	}
	ticket, err := c.TicketRepo.GetByID(payload.TicketID)
	if err != nil {
		logger.Warnw("worker_ticket_reply_email_fetch_ticket_failed", "ticket_id", payload.TicketID, "error", err)
		return err
	}
	if ticket == nil {
		logger.Debugw("worker_ticket_reply_email_skip_ticket_not_found", "ticket_id", payload.TicketID)
		return nil
	}
	user, err := c.UserRepo.GetByID(ticket.UserID)
	if err != nil {
		logger.Warnw("worker_ticket_reply_email_fetch_user_failed", "ticket_id", ticket.ID, "user_id", ticket.UserID, "error", err)
		return err
	}
	if user == nil {
		logger.Debugw("worker_ticket_reply_email_skip_user_not_found", "ticket_id", ticket.ID, "user_id", ticket.UserID)
		return nil
	}
	receiverEmail := strings.TrimSpace(user.Email)
	if receiverEmail == "" {
		logger.Debugw("worker_ticket_reply_email_skip_empty_receiver", "ticket_id", ticket.ID, "ticket_no", ticket.TicketNo)
		return nil
	}
	if c.EmailService == nil {
		logger.Warnw("worker_ticket_reply_email_skip_email_service_nil", "ticket_id", ticket.ID, "ticket_no", ticket.TicketNo)
		return nil
	}

	// 取最近一条客服回复作为通知摘要
	messages, err := c.TicketRepo.ListMessages(ticket.ID)
	if err != nil {
		logger.Warnw("worker_ticket_reply_email_fetch_messages_failed", "ticket_id", ticket.ID, "error", err)
		return err
	}
	var latestReply string
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].IsAdminReply {
			latestReply = messages[i].Message
			break
		}
	}
	if strings.TrimSpace(latestReply) == "" {
		logger.Debugw("worker_ticket_reply_email_skip_no_admin_reply", "ticket_id", ticket.ID)
		return nil
	}

	input := service.TicketReplyEmailInput{
		TicketNo: ticket.TicketNo,
		Subject:  ticket.Subject,
		Message:  latestReply,
	}
	if err := c.EmailService.SendTicketReplyEmail(receiverEmail, input); err != nil {
		if errors.Is(err, service.ErrEmailServiceDisabled) || errors.Is(err, service.ErrEmailServiceNotConfigured) {
			logger.Debugw("worker_ticket_reply_email_skip_disabled", "ticket_id", ticket.ID, "ticket_no", ticket.TicketNo)
			return nil
		}
		logger.Warnw("worker_ticket_reply_email_send_failed",
			"ticket_id", ticket.ID,
			"ticket_no", ticket.TicketNo,
			"receiver_email", receiverEmail,
			"error", err,
		)
		return err
	}
	return nil
}
