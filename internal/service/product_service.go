package service

import (
	"strings"

	"github.com/parskala/internal/models"
	"github.com/parskala/internal/repository"
)

// ProductService 商品业务服务
type ProductService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewProductService 创建商品服务
func NewProductService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

// ProductInput 创建/更新商品输入
type ProductInput struct {
	CategoryID     uint
	Slug           string
	Name           string
	Description    string
	ProductType    string
	Price          models.Money
	DiscountPrice  *models.Money
	Images         []string
	Specifications models.SpecList
	StockQuantity  int
	IsActive       bool
	IsFeatured     bool
	SortOrder      int
}

// List 商品列表
func (s *ProductService) List(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	return s.productRepo.List(filter)
}

// GetBySlug 按 slug 获取商品
func (s *ProductService) GetBySlug(slug string, onlyActive bool) (*models.Product, error) {
	product, err := s.productRepo.GetBySlug(strings.TrimSpace(slug), onlyActive)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}
	return product, nil
}

// GetByID 按 ID 获取商品
func (s *ProductService) GetByID(id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}
	return product, nil
}

// Create 创建商品
func (s *ProductService) Create(input ProductInput) (*models.Product, error) {
	if err := s.validateInput(&input, nil); err != nil {
		return nil, err
	}

	product := models.Product{
		CategoryID:     input.CategoryID,
		Slug:           input.Slug,
		Name:           input.Name,
		Description:    input.Description,
		ProductType:    input.ProductType,
		Price:          input.Price,
		DiscountPrice:  input.DiscountPrice,
		Images:         models.StringArray(input.Images),
		Specifications: input.Specifications,
		StockQuantity:  input.StockQuantity,
		IsActive:       input.IsActive,
		IsFeatured:     input.IsFeatured,
		SortOrder:      input.SortOrder,
	}
	if err := s.productRepo.Create(&product); err != nil {
		return nil, err
	}
	return &product, nil
}

// Update 更新商品
func (s *ProductService) Update(id uint, input ProductInput) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}

	if err := s.validateInput(&input, &id); err != nil {
		return nil, err
	}

	product.CategoryID = input.CategoryID
	product.Slug = input.Slug
	product.Name = input.Name
	product.Description = input.Description
	product.ProductType = input.ProductType
	product.Price = input.Price
	product.DiscountPrice = input.DiscountPrice
	product.Images = models.StringArray(input.Images)
	product.Specifications = input.Specifications
	product.StockQuantity = input.StockQuantity
	product.IsActive = input.IsActive
	product.IsFeatured = input.IsFeatured
	product.SortOrder = input.SortOrder

	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Delete 删除商品
func (s *ProductService) Delete(id uint) error {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrNotFound
	}
	return s.productRepo.Delete(id)
}

func (s *ProductService) validateInput(input *ProductInput, excludeID *uint) error {
	input.Slug = strings.TrimSpace(input.Slug)
	input.Name = strings.TrimSpace(input.Name)
	if input.Slug == "" || input.Name == "" {
		return ErrProductInvalid
	}
	input.ProductType = strings.ToLower(strings.TrimSpace(input.ProductType))
	switch input.ProductType {
	case "":
		input.ProductType = models.ProductTypePhysical
	case models.ProductTypePhysical, models.ProductTypeDigital:
	default:
		return ErrProductInvalid
	}
	if input.Price.Decimal.IsNegative() {
		return ErrProductInvalid
	}
	if input.DiscountPrice != nil {
		if input.DiscountPrice.Decimal.IsNegative() || !input.DiscountPrice.Decimal.LessThan(input.Price.Decimal) {
			return ErrProductInvalid
		}
	}
	if input.StockQuantity < 0 {
		return ErrProductInvalid
	}

	count, err := s.productRepo.CountBySlug(input.Slug, excludeID)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrSlugExists
	}

	category, err := s.categoryRepo.GetByID(input.CategoryID)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrNotFound
	}
	return nil
}
