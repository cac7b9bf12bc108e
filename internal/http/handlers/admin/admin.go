package admin

import (
	"errors"
	"strconv"
	"strings"

	"github.com/parskala/internal/constants"
	"github.com/parskala/internal/http/response"
	"github.com/parskala/internal/models"
	"github.com/parskala/internal/repository"
	"github.com/parskala/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	Token     string                 `json:"token"`
	User      map[string]interface{} `json:"user"`
	ExpiresAt string                 `json:"expires_at"`
}

// AdminLogin 管理员登录
func (h *Handler) AdminLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	admin, token, expiresAt, err := h.AuthService.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondError(c, response.CodeUnauthorized, "用户名或密码错误", nil)
			return
		}
		respondError(c, response.CodeInternal, "登录失败", err)
		return
	}
	response.Success(c, LoginResponse{
		Token: token,
		User: map[string]interface{}{
			"id":       admin.ID,
			"username": admin.Username,
		},
		ExpiresAt: expiresAt.Format("2006-01-02T15:04:05Z07:00"),
	})
}

// UpdatePasswordRequest 修改密码请求
type UpdatePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// UpdateAdminPassword 修改管理员密码
func (h *Handler) UpdateAdminPassword(c *gin.Context) {
	id, ok := getAdminID(c)
	if !ok {
		return
	}

	var req UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	if err := h.AuthService.ChangePassword(id, req.OldPassword, req.NewPassword); err != nil {
		if errors.Is(err, service.ErrInvalidPassword) {
			respondError(c, response.CodeBadRequest, "原密码不正确", nil)
			return
		}
		if errors.Is(err, service.ErrWeakPassword) {
			respondError(c, response.CodeBadRequest, err.Error(), nil)
			return
		}
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "账号不存在", nil)
			return
		}
		respondError(c, response.CodeInternal, "修改密码失败", err)
		return
	}

	response.Success(c, nil)
}

// ====================  商品管理  ====================

// ProductRequest 创建/更新商品请求
type ProductRequest struct {
	CategoryID     uint            `json:"category_id" binding:"required"`
	Slug           string          `json:"slug" binding:"required"`
	Name           string          `json:"name" binding:"required"`
	Description    string          `json:"description"`
	ProductType    string          `json:"product_type"`
	Price          float64         `json:"price" binding:"required"`
	DiscountPrice  *float64        `json:"discount_price"`
	Images         []string        `json:"images"`
	Specifications models.SpecList `json:"specifications"`
	StockQuantity  int             `json:"stock_quantity"`
	IsActive       *bool           `json:"is_active"`
	IsFeatured     bool            `json:"is_featured"`
	SortOrder      int             `json:"sort_order"`
}

func (r *ProductRequest) toInput() service.ProductInput {
	input := service.ProductInput{
		CategoryID:     r.CategoryID,
		Slug:           r.Slug,
		Name:           r.Name,
		Description:    r.Description,
		ProductType:    r.ProductType,
		Price:          models.NewMoneyFromDecimal(decimal.NewFromFloat(r.Price)),
		Images:         r.Images,
		Specifications: r.Specifications,
		StockQuantity:  r.StockQuantity,
		IsActive:       true,
		IsFeatured:     r.IsFeatured,
		SortOrder:      r.SortOrder,
	}
	if r.DiscountPrice != nil {
		discount := models.NewMoneyFromDecimal(decimal.NewFromFloat(*r.DiscountPrice))
		input.DiscountPrice = &discount
	}
	if r.IsActive != nil {
		input.IsActive = *r.IsActive
	}
	return input
}

func respondAdminProductError(c *gin.Context, err error, fallbackMsg string) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		respondError(c, response.CodeNotFound, "商品不存在", nil)
	case errors.Is(err, service.ErrSlugExists):
		respondError(c, response.CodeBadRequest, "slug 已被占用", nil)
	case errors.Is(err, service.ErrProductInvalid):
		respondError(c, response.CodeBadRequest, "商品数据不合法", nil)
	default:
		respondError(c, response.CodeInternal, fallbackMsg, err)
	}
}

// GetAdminProducts 获取商品列表 (Admin)
func (h *Handler) GetAdminProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	products, total, err := h.ProductService.List(repository.ProductListFilter{
		Page:         page,
		PageSize:     pageSize,
		CategoryID:   strings.TrimSpace(c.Query("category_id")),
		Search:       strings.TrimSpace(c.Query("search")),
		Sort:         strings.TrimSpace(c.Query("sort")),
		WithCategory: true,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "获取商品列表失败", err)
		return
	}

	pagination := response.BuildPagination(page, pageSize, total)
	response.SuccessWithPage(c, products, pagination)
}

// GetAdminProduct 获取商品详情 (Admin)
func (h *Handler) GetAdminProduct(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || productID == 0 {
		respondError(c, response.CodeBadRequest, "商品ID无效", nil)
		return
	}

	product, err := h.ProductService.GetByID(uint(productID))
	if err != nil {
		respondAdminProductError(c, err, "获取商品详情失败")
		return
	}
	response.Success(c, product)
}

// CreateProduct 创建商品
func (h *Handler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	product, err := h.ProductService.Create(req.toInput())
	if err != nil {
		respondAdminProductError(c, err, "创建商品失败")
		return
	}
	response.Success(c, product)
}

// UpdateProduct 更新商品
func (h *Handler) UpdateProduct(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || productID == 0 {
		respondError(c, response.CodeBadRequest, "商品ID无效", nil)
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	product, err := h.ProductService.Update(uint(productID), req.toInput())
	if err != nil {
		respondAdminProductError(c, err, "更新商品失败")
		return
	}
	response.Success(c, product)
}

// DeleteProduct 删除商品（软删除）
func (h *Handler) DeleteProduct(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || productID == 0 {
		respondError(c, response.CodeBadRequest, "商品ID无效", nil)
		return
	}

	if err := h.ProductService.Delete(uint(productID)); err != nil {
		respondAdminProductError(c, err, "删除商品失败")
		return
	}
	response.Success(c, nil)
}

// ====================  分类管理  ====================

// CategoryRequest 创建/更新分类请求
type CategoryRequest struct {
	Slug        string `json:"slug" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Image       string `json:"image"`
	SortOrder   int    `json:"sort_order"`
	IsActive    *bool  `json:"is_active"`
}

func (r *CategoryRequest) toInput() service.CategoryInput {
	input := service.CategoryInput{
		Slug:        r.Slug,
		Name:        r.Name,
		Description: r.Description,
		Image:       r.Image,
		SortOrder:   r.SortOrder,
		IsActive:    true,
	}
	if r.IsActive != nil {
		input.IsActive = *r.IsActive
	}
	return input
}

// GetAdminCategories 获取分类列表 (Admin)
func (h *Handler) GetAdminCategories(c *gin.Context) {
	categories, err := h.CategoryService.List(false)
	if err != nil {
		respondError(c, response.CodeInternal, "获取分类列表失败", err)
		return
	}
	response.Success(c, categories)
}

// CreateCategory 创建分类
func (h *Handler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	category, err := h.CategoryService.Create(req.toInput())
	if err != nil {
		if errors.Is(err, service.ErrSlugExists) {
			respondError(c, response.CodeBadRequest, "slug 已被占用", nil)
			return
		}
		respondError(c, response.CodeInternal, "创建分类失败", err)
		return
	}
	response.Success(c, category)
}

// UpdateCategory 更新分类
func (h *Handler) UpdateCategory(c *gin.Context) {
	categoryID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || categoryID == 0 {
		respondError(c, response.CodeBadRequest, "分类ID无效", nil)
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	category, err := h.CategoryService.Update(uint(categoryID), req.toInput())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "分类不存在", nil)
		case errors.Is(err, service.ErrSlugExists):
			respondError(c, response.CodeBadRequest, "slug 已被占用", nil)
		default:
			respondError(c, response.CodeInternal, "更新分类失败", err)
		}
		return
	}
	response.Success(c, category)
}

// DeleteCategory 删除分类（仍有商品引用时拒绝）
func (h *Handler) DeleteCategory(c *gin.Context) {
	categoryID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || categoryID == 0 {
		respondError(c, response.CodeBadRequest, "分类ID无效", nil)
		return
	}

	if err := h.CategoryService.Delete(uint(categoryID)); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "分类不存在", nil)
		case errors.Is(err, service.ErrCategoryInUse):
			respondError(c, response.CodeBadRequest, "分类下仍有商品，无法删除", nil)
		default:
			respondError(c, response.CodeInternal, "删除分类失败", err)
		}
		return
	}
	response.Success(c, nil)
}

// ====================  文件上传  ====================

// UploadFile 文件上传
func (h *Handler) UploadFile(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		respondError(c, response.CodeBadRequest, "缺少上传文件", nil)
		return
	}
	scene := c.DefaultPostForm("scene", constants.UploadSceneCommon)

	url, err := h.UploadService.SaveFile(file, scene)
	if err != nil {
		respondError(c, response.CodeInternal, "上传失败", err)
		return
	}

	response.Success(c, gin.H{
		"url":      url,
		"filename": file.Filename,
		"size":     file.Size,
	})
}
