package service

import (
	"time"

	"github.com/parskala/internal/models"
	"github.com/parskala/internal/repository"
)

// CartItemDetail 购物车项详情（用于响应）
type CartItemDetail struct {
	ProductID     uint            `json:"product_id"`
	Quantity      int             `json:"quantity"`
	UnitPrice     models.Money    `json:"unit_price"`
	OriginalPrice models.Money    `json:"original_price"`
	LineTotal     models.Money    `json:"line_total"`
	Product       *models.Product `json:"product"`
}

// CartSummary 购物车汇总
type CartSummary struct {
	Items       []CartItemDetail `json:"items"`
	LineCount   int              `json:"line_count"`
	ItemCount   int              `json:"item_count"`
	TotalAmount models.Money     `json:"total_amount"`
}

// UpsertCartItemInput 购物车更新输入
type UpsertCartItemInput struct {
	UserID    uint
	ProductID uint
	Quantity  int
}

// CartService 购物车服务
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// ListByUser 获取用户购物车汇总
func (s *CartService) ListByUser(userID uint) (*CartSummary, error) {
	if userID == 0 {
		return nil, ErrInvalidCartItem
	}
	items, err := s.cartRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	summary := &CartSummary{
		Items:       make([]CartItemDetail, 0, len(items)),
		TotalAmount: models.NewMoneyFromInt(0),
	}
	for _, item := range items {
		product := item.Product
		if product == nil || product.ID == 0 {
			p, err := s.productRepo.GetByID(item.ProductID)
			if err != nil {
				return nil, err
			}
			product = p
		}
		if product == nil || !product.IsActive {
			// 已下架或删除的商品直接从购物车剔除
			_ = s.cartRepo.DeleteByUserAndProduct(userID, item.ProductID)
			continue
		}

		unitPrice := product.EffectivePrice()
		lineTotal := unitPrice.MulInt(item.Quantity)
		summary.Items = append(summary.Items, CartItemDetail{
			ProductID:     item.ProductID,
			Quantity:      item.Quantity,
			UnitPrice:     unitPrice,
			OriginalPrice: product.Price,
			LineTotal:     lineTotal,
			Product:       product,
		})
		summary.ItemCount += item.Quantity
		summary.TotalAmount = summary.TotalAmount.AddMoney(lineTotal)
	}
	summary.LineCount = len(summary.Items)
	return summary, nil
}

// AddItem 加入购物车：商品已存在则数量累加
func (s *CartService) AddItem(input UpsertCartItemInput) error {
	if input.UserID == 0 || input.ProductID == 0 || input.Quantity <= 0 {
		return ErrInvalidCartItem
	}
	product, err := s.productRepo.GetByID(input.ProductID)
	if err != nil {
		return err
	}
	if product == nil || !product.IsActive {
		return ErrProductNotAvailable
	}

	quantity := input.Quantity
	existing, err := s.cartRepo.GetByUserAndProduct(input.UserID, input.ProductID)
	if err != nil {
		return err
	}
	if existing != nil {
		quantity += existing.Quantity
	}
	quantity, err = clampToStock(product, quantity)
	if err != nil {
		return err
	}

	now := time.Now()
	item := &models.CartItem{
		UserID:    input.UserID,
		ProductID: input.ProductID,
		Quantity:  quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return s.cartRepo.Upsert(item)
}

// SetQuantity 覆盖购物车项数量，数量不大于 0 时删除该项
func (s *CartService) SetQuantity(input UpsertCartItemInput) error {
	if input.UserID == 0 || input.ProductID == 0 {
		return ErrInvalidCartItem
	}
	if input.Quantity <= 0 {
		return s.cartRepo.DeleteByUserAndProduct(input.UserID, input.ProductID)
	}
	product, err := s.productRepo.GetByID(input.ProductID)
	if err != nil {
		return err
	}
	if product == nil || !product.IsActive {
		return ErrProductNotAvailable
	}
	quantity, err := clampToStock(product, input.Quantity)
	if err != nil {
		return err
	}

	now := time.Now()
	item := &models.CartItem{
		UserID:    input.UserID,
		ProductID: input.ProductID,
		Quantity:  quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return s.cartRepo.Upsert(item)
}

// clampToStock 实物商品数量上限为当前库存，库存为零时拒绝；数字商品不限量
func clampToStock(product *models.Product, quantity int) (int, error) {
	if !product.IsPhysical() {
		return quantity, nil
	}
	if product.StockQuantity <= 0 {
		return 0, ErrInsufficientStock
	}
	if quantity > product.StockQuantity {
		return product.StockQuantity, nil
	}
	return quantity, nil
}

// RemoveItem 删除购物车项
func (s *CartService) RemoveItem(userID, productID uint) error {
	if userID == 0 || productID == 0 {
		return ErrInvalidCartItem
	}
	return s.cartRepo.DeleteByUserAndProduct(userID, productID)
}

// Clear 清空购物车
func (s *CartService) Clear(userID uint) error {
	if userID == 0 {
		return ErrInvalidCartItem
	}
	return s.cartRepo.ClearByUser(userID)
}
