package service

import (
	"time"

	"github.com/parskala/internal/models"
	"github.com/parskala/internal/repository"
)

// WishlistService 收藏夹服务
type WishlistService struct {
	wishlistRepo repository.WishlistRepository
	productRepo  repository.ProductRepository
}

// NewWishlistService 创建收藏夹服务
func NewWishlistService(wishlistRepo repository.WishlistRepository, productRepo repository.ProductRepository) *WishlistService {
	return &WishlistService{
		wishlistRepo: wishlistRepo,
		productRepo:  productRepo,
	}
}

// ListByUser 获取用户收藏列表
func (s *WishlistService) ListByUser(userID uint) ([]models.WishlistItem, error) {
	if userID == 0 {
		return nil, ErrInvalidCartItem
	}
	return s.wishlistRepo.ListByUser(userID)
}

// Add 添加收藏（重复添加视为成功）
func (s *WishlistService) Add(userID, productID uint) error {
	if userID == 0 || productID == 0 {
		return ErrInvalidCartItem
	}
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return err
	}
	if product == nil || !product.IsActive {
		return ErrProductNotAvailable
	}

	exists, err := s.wishlistRepo.Exists(userID, productID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return s.wishlistRepo.Add(&models.WishlistItem{
		UserID:    userID,
		ProductID: productID,
		CreatedAt: time.Now(),
	})
}

// Remove 取消收藏
func (s *WishlistService) Remove(userID, productID uint) error {
	if userID == 0 || productID == 0 {
		return ErrInvalidCartItem
	}
	return s.wishlistRepo.Remove(userID, productID)
}
