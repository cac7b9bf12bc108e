package public

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/parskala/internal/cache"
	"github.com/parskala/internal/http/response"
	"github.com/parskala/internal/repository"
	"github.com/parskala/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	publicConfigCacheKey = "public:config"
	publicConfigCacheTTL = 60 * time.Second
)

// GetConfig 获取全局配置（站点币种 + 银行转账收款信息）
func (h *Handler) GetConfig(c *gin.Context) {
	var cached map[string]interface{}
	if hit, err := cache.GetJSON(c.Request.Context(), publicConfigCacheKey, &cached); err == nil && hit {
		response.Success(c, cached)
		return
	}

	payment := h.Config.Payment
	data := map[string]interface{}{
		"currency": payment.Currency,
		"bank_transfer": map[string]interface{}{
			"bank_name":   payment.BankName,
			"card_number": payment.CardNumber,
			"card_holder": payment.CardHolder,
		},
	}

	_ = cache.SetJSON(c.Request.Context(), publicConfigCacheKey, data, publicConfigCacheTTL)
	response.Success(c, data)
}

// GetCategories 获取分类列表（仅启用分类）
func (h *Handler) GetCategories(c *gin.Context) {
	categories, err := h.CategoryService.List(true)
	if err != nil {
		respondError(c, response.CodeInternal, "获取分类失败", err)
		return
	}
	response.Success(c, gin.H{"categories": categories})
}

// GetProducts 获取商品列表
func (h *Handler) GetProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.ProductListFilter{
		Page:         page,
		PageSize:     pageSize,
		CategoryID:   strings.TrimSpace(c.Query("category_id")),
		Search:       strings.TrimSpace(c.Query("search")),
		OnlyActive:   true,
		OnlyFeatured: c.Query("featured") == "true",
		OnlyInStock:  c.Query("in_stock") == "true",
		Sort:         strings.TrimSpace(c.Query("sort")),
		WithCategory: true,
	}
	if raw := strings.TrimSpace(c.Query("price_min")); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil && v >= 0 {
			filter.PriceMin = &v
		}
	}
	if raw := strings.TrimSpace(c.Query("price_max")); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil && v >= 0 {
			filter.PriceMax = &v
		}
	}

	products, total, err := h.ProductService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "获取商品列表失败", err)
		return
	}

	pagination := response.BuildPagination(page, pageSize, total)
	response.SuccessWithPage(c, products, pagination)
}

// GetProductBySlug 获取商品详情
func (h *Handler) GetProductBySlug(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))
	if slug == "" {
		respondError(c, response.CodeBadRequest, "商品标识不能为空", nil)
		return
	}

	product, err := h.ProductService.GetBySlug(slug, true)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "商品不存在", nil)
			return
		}
		respondError(c, response.CodeInternal, "获取商品详情失败", err)
		return
	}

	response.Success(c, product)
}
