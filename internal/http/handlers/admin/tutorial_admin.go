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

// TutorialRequest 创建/更新教程请求
type TutorialRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	VideoURL    string `json:"video_url" binding:"required"`
	VideoType   string `json:"video_type"`
	Thumbnail   string `json:"thumbnail"`
	Category    string `json:"category"`
	Duration    string `json:"duration"`
	IsFree      *bool  `json:"is_free"`
	IsActive    *bool  `json:"is_active"`
	SortOrder   int    `json:"sort_order"`
}

func (r *TutorialRequest) toInput() service.TutorialInput {
	input := service.TutorialInput{
		Title:       r.Title,
		Description: r.Description,
		VideoURL:    r.VideoURL,
		VideoType:   r.VideoType,
		Thumbnail:   r.Thumbnail,
		Category:    r.Category,
		Duration:    r.Duration,
		IsFree:      true,
		IsActive:    true,
		SortOrder:   r.SortOrder,
	}
	if r.IsFree != nil {
		input.IsFree = *r.IsFree
	}
	if r.IsActive != nil {
		input.IsActive = *r.IsActive
	}
	return input
}

func respondAdminTutorialError(c *gin.Context, err error, fallbackMsg string) {
	switch {
	case errors.Is(err, service.ErrTutorialNotFound):
		respondError(c, response.CodeNotFound, "教程不存在", nil)
	case errors.Is(err, service.ErrProductInvalid):
		respondError(c, response.CodeBadRequest, "教程数据不合法", nil)
	default:
		respondError(c, response.CodeInternal, fallbackMsg, err)
	}
}

// AdminListTutorials 管理端教程列表
func (h *Handler) AdminListTutorials(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	tutorials, total, err := h.TutorialService.List(repository.TutorialListFilter{
		Page:     page,
		PageSize: pageSize,
		Category: strings.TrimSpace(c.Query("category")),
		Search:   strings.TrimSpace(c.Query("search")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "获取教程列表失败", err)
		return
	}

	pagination := response.BuildPagination(page, pageSize, total)
	response.SuccessWithPage(c, tutorials, pagination)
}

// AdminGetTutorial 管理端教程详情（不累加播放次数）
func (h *Handler) AdminGetTutorial(c *gin.Context) {
	tutorialID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || tutorialID == 0 {
		respondError(c, response.CodeBadRequest, "教程ID无效", nil)
		return
	}

	tutorial, err := h.TutorialService.Get(uint(tutorialID), false)
	if err != nil {
		respondAdminTutorialError(c, err, "获取教程失败")
		return
	}
	response.Success(c, tutorial)
}

// CreateTutorial 创建教程
func (h *Handler) CreateTutorial(c *gin.Context) {
	var req TutorialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	tutorial, err := h.TutorialService.Create(req.toInput())
	if err != nil {
		respondAdminTutorialError(c, err, "创建教程失败")
		return
	}
	response.Success(c, tutorial)
}

// UpdateTutorial 更新教程
func (h *Handler) UpdateTutorial(c *gin.Context) {
	tutorialID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || tutorialID == 0 {
		respondError(c, response.CodeBadRequest, "教程ID无效", nil)
		return
	}

	var req TutorialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	tutorial, err := h.TutorialService.Update(uint(tutorialID), req.toInput())
	if err != nil {
		respondAdminTutorialError(c, err, "更新教程失败")
		return
	}
	response.Success(c, tutorial)
}

// DeleteTutorial 删除教程（软删除）
func (h *Handler) DeleteTutorial(c *gin.Context) {
	tutorialID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || tutorialID == 0 {
		respondError(c, response.CodeBadRequest, "教程ID无效", nil)
		return
	}

	if err := h.TutorialService.Delete(uint(tutorialID)); err != nil {
		respondAdminTutorialError(c, err, "删除教程失败")
		return
	}
	response.Success(c, nil)
}
