package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/parskala/internal/logger"
	"github.com/parskala/internal/models"
	"github.com/parskala/internal/queue"
	"github.com/parskala/internal/repository"

	"gorm.io/gorm"
)

// OrderService 订单服务（银行卡转账结算 + 状态机流转）
type OrderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	cartRepo    repository.CartRepository
	queueClient *queue.Client
	currency    string
}

// NewOrderService 创建订单服务
func NewOrderService(orderRepo repository.OrderRepository, productRepo repository.ProductRepository, cartRepo repository.CartRepository, queueClient *queue.Client, currency string) *OrderService {
	if strings.TrimSpace(currency) == "" {
		currency = "IRR"
	}
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		cartRepo:    cartRepo,
		queueClient: queueClient,
		currency:    currency,
	}
}

// CheckoutInput 提交结算输入
type CheckoutInput struct {
	UserID      uint
	Form        CheckoutForm
	ReceiptPath string
	ClientIP    string
}

// ValidateCheckout 结算第一阶段：仅校验表单与购物车，不产生副作用
func (s *OrderService) ValidateCheckout(userID uint, form CheckoutForm) error {
	if userID == 0 {
		return ErrCheckoutInvalid
	}
	if err := form.Validate(); err != nil {
		return err
	}
	items, err := s.cartRepo.ListByUser(userID)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return ErrCartEmpty
	}
	return nil
}

// Checkout 提交结算：校验、扣库存、落单、清空购物车，全部在一个事务内完成
func (s *OrderService) Checkout(input CheckoutInput) (*models.Order, error) {
	if input.UserID == 0 {
		return nil, ErrCheckoutInvalid
	}
	if err := input.Form.Validate(); err != nil {
		return nil, err
	}

	cartItems, err := s.cartRepo.ListByUser(input.UserID)
	if err != nil {
		return nil, err
	}
	if len(cartItems) == 0 {
		return nil, ErrCartEmpty
	}

	// 同一参考号的待审核订单视为重复提交（双击/重放防护）
	dup, err := s.orderRepo.CountPendingByUserAndReference(input.UserID, input.Form.PaymentReference)
	if err != nil {
		return nil, err
	}
	if dup > 0 {
		return nil, ErrDuplicateSubmission
	}

	orderNo, err := s.generateUniqueOrderNo()
	if err != nil {
		return nil, ErrOrderCreateFailed
	}

	now := time.Now()
	order := &models.Order{
		OrderNo:          orderNo,
		UserID:           input.UserID,
		Status:           models.OrderStatusPending,
		Currency:         s.currency,
		FullName:         input.Form.FullName,
		Email:            input.Form.Email,
		Phone:            input.Form.Phone,
		Address:          input.Form.Address,
		City:             input.Form.City,
		PostalCode:       input.Form.PostalCode,
		PayerCardNumber:  input.Form.PayerCardNumber,
		PaymentReference: input.Form.PaymentReference,
		ReceiptPath:      strings.TrimSpace(input.ReceiptPath),
		Notes:            input.Form.Notes,
		ClientIP:         input.ClientIP,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		productRepo := s.productRepo.WithTx(tx)
		cartRepo := s.cartRepo.WithTx(tx)

		total := models.NewMoneyFromInt(0)
		items := make([]models.OrderItem, 0, len(cartItems))
		for _, cartItem := range cartItems {
			// 以事务内的实时商品数据为准，忽略客户端提交的价格
			product, err := productRepo.GetByID(cartItem.ProductID)
			if err != nil {
				return err
			}
			if product == nil || !product.IsActive {
				return ErrProductNotAvailable
			}
			if cartItem.Quantity <= 0 {
				return ErrInvalidCartItem
			}

			// 数字商品不占库存，只有实物参与条件扣减
			if product.IsPhysical() {
				affected, err := productRepo.DecrementStock(product.ID, cartItem.Quantity)
				if err != nil {
					return err
				}
				if affected == 0 {
					return ErrInsufficientStock
				}
			}

			unitPrice := product.EffectivePrice()
			lineTotal := unitPrice.MulInt(cartItem.Quantity)
			total = total.AddMoney(lineTotal)

			var image string
			if len(product.Images) > 0 {
				image = product.Images[0]
			}
			productType := product.ProductType
			if productType == "" {
				productType = models.ProductTypePhysical
			}
			items = append(items, models.OrderItem{
				ProductID:    product.ID,
				ProductName:  product.Name,
				ProductType:  productType,
				ProductImage: image,
				UnitPrice:    unitPrice,
				Quantity:     cartItem.Quantity,
				TotalPrice:   lineTotal,
				CreatedAt:    now,
				UpdatedAt:    now,
			})
		}

		order.TotalAmount = total
		order.FinalAmount = total
		if err := orderRepo.Create(order, items); err != nil {
			return err
		}
		order.Items = items

		return cartRepo.ClearByUser(input.UserID)
	})
	if err != nil {
		switch err {
		case ErrProductNotAvailable, ErrInsufficientStock, ErrInvalidCartItem:
			return nil, err
		}
		logger.Errorw("order_checkout_tx_failed", "user_id", input.UserID, "error", err)
		return nil, ErrOrderCreateFailed
	}

	s.enqueueStatusEmail(order, models.OrderStatusPending)
	return order, nil
}

// CancelOrder 用户取消订单（仅待审核状态允许）
func (s *OrderService) CancelOrder(orderID uint, userID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDAndUser(orderID, userID)
	if err != nil {
		return nil, ErrOrderFetchFailed
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.Status != models.OrderStatusPending {
		return nil, ErrOrderCancelNotAllowed
	}
	if err := s.cancelOrder(order); err != nil {
		return nil, ErrOrderUpdateFailed
	}
	s.enqueueStatusEmail(order, models.OrderStatusCancelled)
	return order, nil
}

// cancelOrder 取消订单并回补快照库存
func (s *OrderService) cancelOrder(order *models.Order) error {
	now := time.Now()
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		productRepo := s.productRepo.WithTx(tx)

		updates := map[string]interface{}{
			"canceled_at": now,
			"updated_at":  now,
		}
		if err := orderRepo.UpdateStatus(order.ID, models.OrderStatusCancelled, updates); err != nil {
			return err
		}
		for _, item := range order.Items {
			if item.ProductType == models.ProductTypeDigital {
				continue
			}
			if _, err := productRepo.RestoreStock(item.ProductID, item.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logger.Errorw("order_cancel_tx_failed", "order_id", order.ID, "error", err)
		return err
	}
	order.Status = models.OrderStatusCancelled
	order.CanceledAt = &now
	order.UpdatedAt = now
	return nil
}

// UpdateOrderStatus 管理端更新订单状态（按状态机校验）
func (s *OrderService) UpdateOrderStatus(orderID uint, targetStatus string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, ErrOrderFetchFailed
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	target := strings.ToLower(strings.TrimSpace(targetStatus))
	if !isValidOrderStatus(target) {
		return nil, ErrOrderStatusInvalid
	}
	if order.Status == target {
		return order, nil
	}
	if !canTransitionOrderStatus(order.Status, target) {
		return nil, ErrOrderStatusInvalid
	}

	if target == models.OrderStatusCancelled {
		if err := s.cancelOrder(order); err != nil {
			return nil, ErrOrderUpdateFailed
		}
		s.enqueueStatusEmail(order, target)
		return order, nil
	}

	now := time.Now()
	updates := map[string]interface{}{
		"updated_at": now,
	}
	if target == models.OrderStatusPaid {
		updates["paid_at"] = now
	}
	if err := s.orderRepo.UpdateStatus(order.ID, target, updates); err != nil {
		return nil, ErrOrderUpdateFailed
	}
	order.Status = target
	order.UpdatedAt = now
	if target == models.OrderStatusPaid {
		order.PaidAt = &now
	}

	s.enqueueStatusEmail(order, target)
	return order, nil
}

// GetOrderByUser 获取用户订单详情
func (s *OrderService) GetOrderByUser(orderID uint, userID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDAndUser(orderID, userID)
	if err != nil {
		return nil, ErrOrderFetchFailed
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// GetOrderByUserOrderNo 获取用户订单详情（按订单号）
func (s *OrderService) GetOrderByUserOrderNo(orderNo string, userID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByOrderNoAndUser(strings.TrimSpace(orderNo), userID)
	if err != nil {
		return nil, ErrOrderFetchFailed
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListOrdersByUser 获取用户订单列表
func (s *OrderService) ListOrdersByUser(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.ListByUser(filter)
}

// ListOrdersForAdmin 管理端订单列表
func (s *OrderService) ListOrdersForAdmin(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.ListAdmin(filter)
}

// GetOrderForAdmin 管理端订单详情
func (s *OrderService) GetOrderForAdmin(orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, ErrOrderFetchFailed
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// enqueueStatusEmail 状态变更后入队通知邮件，失败只记日志不影响主流程
func (s *OrderService) enqueueStatusEmail(order *models.Order, status string) {
	if s.queueClient == nil || order == nil || strings.TrimSpace(order.Email) == "" {
		return
	}
	if err := s.queueClient.EnqueueOrderStatusEmail(queue.OrderStatusEmailPayload{
		OrderID: order.ID,
		Status:  status,
	}); err != nil {
		logger.Warnw("order_enqueue_status_email_failed",
			"order_id", order.ID,
			"status", status,
			"error", err,
		)
	}
}

// generateUniqueOrderNo 生成唯一订单编号，碰撞时重试
func (s *OrderService) generateUniqueOrderNo() (string, error) {
	for i := 0; i < 5; i++ {
		orderNo := generateOrderNo()
		count, err := s.orderRepo.CountByOrderNo(orderNo)
		if err != nil {
			return "", err
		}
		if count == 0 {
			return orderNo, nil
		}
	}
	return "", ErrOrderCreateFailed
}

func generateOrderNo() string {
	now := time.Now().Format("20060102150405")
	randPart := randNumeric(6)
	return fmt.Sprintf("ORD-%s%s", now, randPart)
}

func randNumeric(length int) string {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			b.WriteString("0")
			continue
		}
		b.WriteString(fmt.Sprintf("%d", n.Int64()))
	}
	return b.String()
}
