package service

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/parskala/internal/logger"
	"github.com/parskala/internal/models"
	"github.com/parskala/internal/queue"
	"github.com/parskala/internal/repository"
)

// allowedTicketTransitions 工单状态机：closed 为终态
var allowedTicketTransitions = map[string]map[string]bool{
	models.TicketStatusOpen: {
		models.TicketStatusInProgress: true,
		models.TicketStatusResolved:   true,
		models.TicketStatusClosed:     true,
	},
	models.TicketStatusInProgress: {
		models.TicketStatusResolved: true,
		models.TicketStatusClosed:   true,
	},
	models.TicketStatusResolved: {
		models.TicketStatusInProgress: true,
		models.TicketStatusClosed:     true,
	},
}

// CreateTicketInput 创建工单输入
type CreateTicketInput struct {
	UserID   uint
	OrderID  *uint
	Subject  string
	Priority string
	Message  string
}

// PostMessageInput 追加工单消息输入
type PostMessageInput struct {
	TicketID uint
	SenderID uint
	IsAdmin  bool
	Message  string
}

// TicketService 工单服务
type TicketService struct {
	ticketRepo  repository.TicketRepository
	orderRepo   repository.OrderRepository
	queueClient *queue.Client
}

// NewTicketService 创建工单服务
func NewTicketService(ticketRepo repository.TicketRepository, orderRepo repository.OrderRepository, queueClient *queue.Client) *TicketService {
	return &TicketService{
		ticketRepo:  ticketRepo,
		orderRepo:   orderRepo,
		queueClient: queueClient,
	}
}

// CreateTicket 创建工单：工单与首条消息一并落库
func (s *TicketService) CreateTicket(input CreateTicketInput) (*models.Ticket, error) {
	if input.UserID == 0 {
		return nil, ErrTicketNotFound
	}
	subject := strings.TrimSpace(input.Subject)
	message := strings.TrimSpace(input.Message)
	if subject == "" || utf8.RuneCountInString(subject) > 200 {
		return nil, ErrTicketSubjectInvalid
	}
	if message == "" {
		return nil, ErrTicketMessageEmpty
	}
	priority := normalizeTicketPriority(input.Priority)

	if input.OrderID != nil && *input.OrderID != 0 {
		// 订单引用必须属于当前用户
		order, err := s.orderRepo.GetByIDAndUser(*input.OrderID, input.UserID)
		if err != nil {
			return nil, err
		}
		if order == nil {
			return nil, ErrOrderNotFound
		}
	}

	ticketNo, err := s.generateUniqueTicketNo()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	ticket := &models.Ticket{
		TicketNo:  ticketNo,
		UserID:    input.UserID,
		OrderID:   input.OrderID,
		Subject:   subject,
		Status:    models.TicketStatusOpen,
		Priority:  priority,
		CreatedAt: now,
		UpdatedAt: now,
	}
	firstMessage := &models.TicketMessage{
		SenderID:     input.UserID,
		IsAdminReply: false,
		Message:      message,
		CreatedAt:    now,
	}
	if err := s.ticketRepo.Create(ticket, firstMessage); err != nil {
		return nil, err
	}
	ticket.Messages = []models.TicketMessage{*firstMessage}
	return ticket, nil
}

// PostMessage 追加工单消息。
// 用户在 resolved/closed 状态下不可回复；管理员不受状态限制，
// 回复 resolved 工单会将其重新置为 in_progress。
func (s *TicketService) PostMessage(input PostMessageInput) (*models.TicketMessage, error) {
	message := strings.TrimSpace(input.Message)
	if message == "" {
		return nil, ErrTicketMessageEmpty
	}

	var ticket *models.Ticket
	var err error
	if input.IsAdmin {
		ticket, err = s.ticketRepo.GetByID(input.TicketID)
	} else {
		ticket, err = s.ticketRepo.GetByIDAndUser(input.TicketID, input.SenderID)
	}
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, ErrTicketNotFound
	}

	if !input.IsAdmin {
		if ticket.Status == models.TicketStatusResolved || ticket.Status == models.TicketStatusClosed {
			return nil, ErrTicketClosed
		}
	}

	now := time.Now()
	msg := &models.TicketMessage{
		TicketID:     ticket.ID,
		SenderID:     input.SenderID,
		IsAdminReply: input.IsAdmin,
		Message:      message,
		CreatedAt:    now,
	}
	if err := s.ticketRepo.CreateMessage(msg); err != nil {
		return nil, err
	}

	if input.IsAdmin && ticket.Status == models.TicketStatusResolved {
		if err := s.ticketRepo.UpdateStatus(ticket.ID, models.TicketStatusInProgress); err != nil {
			logger.Warnw("ticket_reopen_failed", "ticket_id", ticket.ID, "error", err)
		}
	}

	if input.IsAdmin {
		s.enqueueReplyEmail(ticket)
	}
	return msg, nil
}

// ListMessages 获取工单消息（按时间正序），用户只能访问自己的工单
func (s *TicketService) ListMessages(ticketID, userID uint, isAdmin bool) ([]models.TicketMessage, error) {
	var ticket *models.Ticket
	var err error
	if isAdmin {
		ticket, err = s.ticketRepo.GetByID(ticketID)
	} else {
		ticket, err = s.ticketRepo.GetByIDAndUser(ticketID, userID)
	}
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, ErrTicketNotFound
	}
	return s.ticketRepo.ListMessages(ticket.ID)
}

// GetTicketByUser 获取用户工单详情
func (s *TicketService) GetTicketByUser(ticketID, userID uint) (*models.Ticket, error) {
	ticket, err := s.ticketRepo.GetByIDAndUser(ticketID, userID)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, ErrTicketNotFound
	}
	return ticket, nil
}

// GetTicketForAdmin 管理端工单详情
func (s *TicketService) GetTicketForAdmin(ticketID uint) (*models.Ticket, error) {
	ticket, err := s.ticketRepo.GetByID(ticketID)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, ErrTicketNotFound
	}
	return ticket, nil
}

// ListTicketsByUser 获取用户工单列表
func (s *TicketService) ListTicketsByUser(filter repository.TicketListFilter) ([]models.Ticket, int64, error) {
	return s.ticketRepo.ListByUser(filter)
}

// ListTicketsForAdmin 管理端工单列表
func (s *TicketService) ListTicketsForAdmin(filter repository.TicketListFilter) ([]models.Ticket, int64, error) {
	return s.ticketRepo.ListAdmin(filter)
}

// UpdateTicketStatus 管理端更新工单状态（按状态机校验）
func (s *TicketService) UpdateTicketStatus(ticketID uint, targetStatus string) (*models.Ticket, error) {
	ticket, err := s.ticketRepo.GetByID(ticketID)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, ErrTicketNotFound
	}

	target := strings.ToLower(strings.TrimSpace(targetStatus))
	if ticket.Status == target {
		return ticket, nil
	}
	targets, ok := allowedTicketTransitions[ticket.Status]
	if !ok || !targets[target] {
		return nil, ErrTicketStatusInvalid
	}
	if err := s.ticketRepo.UpdateStatus(ticket.ID, target); err != nil {
		return nil, err
	}
	ticket.Status = target
	return ticket, nil
}

// enqueueReplyEmail 管理员回复后入队通知邮件，失败只记日志
func (s *TicketService) enqueueReplyEmail(ticket *models.Ticket) {
	if s.queueClient == nil || ticket == nil {
		return
	}
	if err := s.queueClient.EnqueueTicketReplyEmail(queue.TicketReplyEmailPayload{
		TicketID: ticket.ID,
	}); err != nil {
		logger.Warnw("ticket_enqueue_reply_email_failed", "ticket_id", ticket.ID, "error", err)
	}
}

func normalizeTicketPriority(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case models.TicketPriorityLow:
		return models.TicketPriorityLow
	case models.TicketPriorityHigh:
		return models.TicketPriorityHigh
	case models.TicketPriorityUrgent:
		return models.TicketPriorityUrgent
	default:
		return models.TicketPriorityMedium
	}
}

// generateUniqueTicketNo 生成唯一工单编号，碰撞时重试
func (s *TicketService) generateUniqueTicketNo() (string, error) {
	for i := 0; i < 5; i++ {
		ticketNo := generateTicketNo()
		count, err := s.ticketRepo.CountByTicketNo(ticketNo)
		if err != nil {
			return "", err
		}
		if count == 0 {
			return ticketNo, nil
		}
	}
	return "", ErrTicketNotFound
}

func generateTicketNo() string {
	now := time.Now().Format("20060102150405")
	return fmt.Sprintf("TKT-%s%s", now, randNumeric(6))
}
