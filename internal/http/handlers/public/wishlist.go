package public

import (
	"strconv"

	"github.com/parskala/internal/http/response"

	"github.com/gin-gonic/gin"
)

// WishlistItemRequest 收藏请求
type WishlistItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
}

// GetWishlist 获取收藏列表
func (h *Handler) GetWishlist(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	items, err := h.WishlistService.ListByUser(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "获取收藏列表失败", err)
		return
	}
	response.Success(c, gin.H{"items": items})
}

// AddWishlistItem 添加收藏（重复添加视为成功）
func (h *Handler) AddWishlistItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req WishlistItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}
	if err := h.WishlistService.Add(uid, req.ProductID); err != nil {
		respondWithMappedError(c, err, cartCommonErrorRules, response.CodeInternal, "添加收藏失败")
		return
	}
	response.Success(c, gin.H{"added": true})
}

// RemoveWishlistItem 取消收藏
func (h *Handler) RemoveWishlistItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	productID, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
	if err != nil || productID == 0 {
		respondError(c, response.CodeBadRequest, "商品ID无效", nil)
		return
	}
	if err := h.WishlistService.Remove(uid, uint(productID)); err != nil {
		respondWithMappedError(c, err, cartCommonErrorRules, response.CodeInternal, "取消收藏失败")
		return
	}
	response.Success(c, gin.H{"removed": true})
}
