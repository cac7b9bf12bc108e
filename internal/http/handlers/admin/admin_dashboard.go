package admin

import (
	"github.com/parskala/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetDashboardOverview 获取后台仪表盘总览
func (h *Handler) GetDashboardOverview(c *gin.Context) {
	forceRefresh := c.Query("refresh") == "true"

	data, err := h.DashboardService.GetOverview(c.Request.Context(), forceRefresh)
	if err != nil {
		respondError(c, response.CodeInternal, "获取仪表盘数据失败", err)
		return
	}
	response.Success(c, data)
}
