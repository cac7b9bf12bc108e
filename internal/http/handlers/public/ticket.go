package public

import (
	"strconv"
	"strings"

	"github.com/parskala/internal/http/response"
	"github.com/parskala/internal/models"
	"github.com/parskala/internal/repository"
	"github.com/parskala/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateTicketRequest 创建工单请求
type CreateTicketRequest struct {
	Subject  string `json:"subject" binding:"required"`
	Message  string `json:"message" binding:"required"`
	Priority string `json:"priority"`
	OrderID  *uint  `json:"order_id"`
}

// TicketMessageRequest 工单回复请求
type TicketMessageRequest struct {
	Message string `json:"message" binding:"required"`
}

// CreateTicket 创建工单（工单与首条消息一并创建）
func (h *Handler) CreateTicket(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	ticket, err := h.TicketService.CreateTicket(service.CreateTicketInput{
		UserID:   uid,
		OrderID:  req.OrderID,
		Subject:  req.Subject,
		Priority: req.Priority,
		Message:  req.Message,
	})
	if err != nil {
		respondWithMappedError(c, err, userTicketErrorRules, response.CodeInternal, "创建工单失败")
		return
	}
	response.Success(c, ticket)
}

// ListTickets 获取当前用户的工单列表
func (h *Handler) ListTickets(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	tickets, total, err := h.TicketService.ListTicketsByUser(repository.TicketListFilter{
		Page:     page,
		PageSize: pageSize,
		UserID:   uid,
		Status:   strings.TrimSpace(c.Query("status")),
		Priority: strings.TrimSpace(c.Query("priority")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "获取工单列表失败", err)
		return
	}

	pagination := response.BuildPagination(page, pageSize, total)
	response.SuccessWithPage(c, tickets, pagination)
}

// GetTicket 获取工单详情（含全部消息）
func (h *Handler) GetTicket(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	ticketID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || ticketID == 0 {
		respondError(c, response.CodeBadRequest, "工单ID无效", nil)
		return
	}

	ticket, err := h.TicketService.GetTicketByUser(uint(ticketID), uid)
	if err != nil {
		respondWithMappedError(c, err, userTicketErrorRules, response.CodeInternal, "获取工单失败")
		return
	}
	messages, err := h.TicketService.ListMessages(ticket.ID, uid, false)
	if err != nil {
		respondWithMappedError(c, err, userTicketErrorRules, response.CodeInternal, "获取工单失败")
		return
	}
	ticket.Messages = messages

	response.Success(c, ticket)
}

// PostTicketMessage 追加工单回复
func (h *Handler) PostTicketMessage(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	ticketID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || ticketID == 0 {
		respondError(c, response.CodeBadRequest, "工单ID无效", nil)
		return
	}
	var req TicketMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	message, err := h.TicketService.PostMessage(service.PostMessageInput{
		TicketID: uint(ticketID),
		SenderID: uid,
		IsAdmin:  false,
		Message:  req.Message,
	})
	if err != nil {
		respondWithMappedError(c, err, userTicketErrorRules, response.CodeInternal, "回复工单失败")
		return
	}
	response.Success(c, message)
}

// CloseTicket 用户关闭自己的工单
func (h *Handler) CloseTicket(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	ticketID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || ticketID == 0 {
		respondError(c, response.CodeBadRequest, "工单ID无效", nil)
		return
	}

	// 归属校验后再走统一的状态机流转
	if _, err := h.TicketService.GetTicketByUser(uint(ticketID), uid); err != nil {
		respondWithMappedError(c, err, userTicketErrorRules, response.CodeInternal, "关闭工单失败")
		return
	}
	ticket, err := h.TicketService.UpdateTicketStatus(uint(ticketID), models.TicketStatusClosed)
	if err != nil {
		respondWithMappedError(c, err, userTicketErrorRules, response.CodeInternal, "关闭工单失败")
		return
	}
	response.Success(c, ticket)
}
