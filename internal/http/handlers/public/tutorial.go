package public

import (
	"errors"
	"strconv"
	"strings"

	"github.com/parskala/internal/http/response"
	"github.com/parskala/internal/repository"
	"github.com/parskala/internal/service"

	"github.com/gin-gonic/gin"
)

// ListTutorials 获取教程列表（仅已发布）
func (h *Handler) ListTutorials(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	tutorials, total, err := h.TutorialService.List(repository.TutorialListFilter{
		Page:       page,
		PageSize:   pageSize,
		Category:   strings.TrimSpace(c.Query("category")),
		Search:     strings.TrimSpace(c.Query("search")),
		OnlyActive: true,
		OnlyFree:   c.Query("free") == "true",
	})
	if err != nil {
		respondError(c, response.CodeInternal, "获取教程列表失败", err)
		return
	}

	pagination := response.BuildPagination(page, pageSize, total)
	response.SuccessWithPage(c, tutorials, pagination)
}

// GetTutorial 获取教程详情，并累加播放次数
func (h *Handler) GetTutorial(c *gin.Context) {
	tutorialID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || tutorialID == 0 {
		respondError(c, response.CodeBadRequest, "教程ID无效", nil)
		return
	}

	tutorial, err := h.TutorialService.Get(uint(tutorialID), true)
	if err != nil {
		if errors.Is(err, service.ErrTutorialNotFound) {
			respondError(c, response.CodeNotFound, "教程不存在", nil)
			return
		}
		respondError(c, response.CodeInternal, "获取教程失败", err)
		return
	}
	if !tutorial.IsActive {
		respondError(c, response.CodeNotFound, "教程不存在", nil)
		return
	}
	response.Success(c, tutorial)
}
