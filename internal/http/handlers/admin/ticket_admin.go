package admin

import (
	"errors"
	"strconv"
	"strings"

	"github.com/parskala/internal/http/response"
	"github.com/parskala/internal/repository"
	"github.com/parskala/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminTicketReplyRequest 管理端工单回复请求
type AdminTicketReplyRequest struct {
	Message string `json:"message" binding:"required"`
}

// AdminUpdateTicketStatusRequest 管理端更新工单状态请求
type AdminUpdateTicketStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func respondAdminTicketError(c *gin.Context, err error, fallbackMsg string) {
	switch {
	case errors.Is(err, service.ErrTicketNotFound):
		respondError(c, response.CodeNotFound, "工单不存在", nil)
	case errors.Is(err, service.ErrTicketClosed):
		respondError(c, response.CodeBadRequest, "工单已关闭，无法回复", nil)
	case errors.Is(err, service.ErrTicketMessageEmpty):
		respondError(c, response.CodeBadRequest, "工单内容不能为空", nil)
	case errors.Is(err, service.ErrTicketStatusInvalid):
		respondError(c, response.CodeBadRequest, "工单状态流转不合法", nil)
	default:
		respondError(c, response.CodeInternal, fallbackMsg, err)
	}
}

// AdminListTickets 管理端工单列表
func (h *Handler) AdminListTickets(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.TicketListFilter{
		Page:     page,
		PageSize: pageSize,
		Status:   strings.TrimSpace(c.Query("status")),
		Priority: strings.TrimSpace(c.Query("priority")),
		TicketNo: strings.TrimSpace(c.Query("ticket_no")),
	}
	if rawUserID := strings.TrimSpace(c.Query("user_id")); rawUserID != "" {
		userID, err := strconv.ParseUint(rawUserID, 10, 64)
		if err != nil {
			respondError(c, response.CodeBadRequest, "用户ID无效", nil)
			return
		}
		filter.UserID = uint(userID)
	}

	tickets, total, err := h.TicketService.ListTicketsForAdmin(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "获取工单列表失败", err)
		return
	}

	pagination := response.BuildPagination(page, pageSize, total)
	response.SuccessWithPage(c, tickets, pagination)
}

// AdminGetTicket 管理端工单详情（含全部消息）
func (h *Handler) AdminGetTicket(c *gin.Context) {
	ticketID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || ticketID == 0 {
		respondError(c, response.CodeBadRequest, "工单ID无效", nil)
		return
	}

	ticket, err := h.TicketService.GetTicketForAdmin(uint(ticketID))
	if err != nil {
		respondAdminTicketError(c, err, "获取工单失败")
		return
	}
	messages, err := h.TicketService.ListMessages(ticket.ID, 0, true)
	if err != nil {
		respondAdminTicketError(c, err, "获取工单失败")
		return
	}
	ticket.Messages = messages

	response.Success(c, ticket)
}

// AdminReplyTicket 管理端回复工单（回复 resolved 工单会重新置为 in_progress）
func (h *Handler) AdminReplyTicket(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}

	ticketID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || ticketID == 0 {
		respondError(c, response.CodeBadRequest, "工单ID无效", nil)
		return
	}
	var req AdminTicketReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	message, err := h.TicketService.PostMessage(service.PostMessageInput{
		TicketID: uint(ticketID),
		SenderID: adminID,
		IsAdmin:  true,
		Message:  req.Message,
	})
	if err != nil {
		respondAdminTicketError(c, err, "回复工单失败")
		return
	}
	response.Success(c, message)
}

// AdminUpdateTicketStatus 管理端更新工单状态
func (h *Handler) AdminUpdateTicketStatus(c *gin.Context) {
	ticketID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || ticketID == 0 {
		respondError(c, response.CodeBadRequest, "工单ID无效", nil)
		return
	}

	var req AdminUpdateTicketStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	ticket, err := h.TicketService.UpdateTicketStatus(uint(ticketID), req.Status)
	if err != nil {
		respondAdminTicketError(c, err, "更新工单失败")
		return
	}
	response.Success(c, ticket)
}
