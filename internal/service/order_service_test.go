package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/parskala/internal/models"
	"github.com/parskala/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func newOrderServiceForTest(db *gorm.DB) *OrderService {
	return NewOrderService(
		repository.NewOrderRepository(db),
		repository.NewProductRepository(db),
		repository.NewCartRepository(db),
		nil,
		"IRR",
	)
}

func TestCheckoutCreatesOrderAndClearsCart(t *testing.T) {
	db := openTestDB(t, "order_checkout_ok")
	useGlobalDB(t, db)
	svc := newOrderServiceForTest(db)
	cartSvc := NewCartService(repository.NewCartRepository(db), repository.NewProductRepository(db))

	category := seedTestCategory(t, db, "cat-checkout-ok")
	phone := seedTestProduct(t, db, category.ID, "prod-checkout-phone", "21500000", 5)
	charger := seedTestProduct(t, db, category.ID, "prod-checkout-charger", "800000", 20)

	if err := cartSvc.AddItem(UpsertCartItemInput{UserID: 1, ProductID: phone.ID, Quantity: 1}); err != nil {
		t.Fatalf("add phone failed: %v", err)
	}
	if err := cartSvc.AddItem(UpsertCartItemInput{UserID: 1, ProductID: charger.ID, Quantity: 2}); err != nil {
		t.Fatalf("add charger failed: %v", err)
	}

	order, err := svc.Checkout(CheckoutInput{
		UserID:      1,
		Form:        validCheckoutForm(),
		ReceiptPath: "receipts/2026/08/receipt.jpg",
		ClientIP:    "10.0.0.5",
	})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	if !strings.HasPrefix(order.OrderNo, "ORD-") {
		t.Fatalf("unexpected order no: %s", order.OrderNo)
	}
	if order.Status != models.OrderStatusPending {
		t.Fatalf("expected pending status, got %s", order.Status)
	}
	if order.Currency != "IRR" {
		t.Fatalf("expected IRR currency, got %s", order.Currency)
	}
	expectedTotal := decimal.RequireFromString("23100000")
	if !order.TotalAmount.Decimal.Equal(expectedTotal) {
		t.Fatalf("expected total %s, got %s", expectedTotal.String(), order.TotalAmount.String())
	}
	if !order.FinalAmount.Decimal.Equal(expectedTotal) {
		t.Fatalf("expected final amount %s, got %s", expectedTotal.String(), order.FinalAmount.String())
	}
	if len(order.Items) != 2 {
		t.Fatalf("expected 2 order items, got %d", len(order.Items))
	}

	var updatedPhone models.Product
	if err := db.First(&updatedPhone, phone.ID).Error; err != nil {
		t.Fatalf("load phone failed: %v", err)
	}
	if updatedPhone.StockQuantity != 4 {
		t.Fatalf("expected phone stock 4, got %d", updatedPhone.StockQuantity)
	}

	var cartCount int64
	if err := db.Model(&models.CartItem{}).Where("user_id = ?", 1).Count(&cartCount).Error; err != nil {
		t.Fatalf("count cart failed: %v", err)
	}
	if cartCount != 0 {
		t.Fatalf("expected cart cleared, got %d rows", cartCount)
	}
}

func TestCheckoutSnapshotKeepsPriceAfterProductChange(t *testing.T) {
	db := openTestDB(t, "order_checkout_snapshot")
	useGlobalDB(t, db)
	svc := newOrderServiceForTest(db)
	cartSvc := NewCartService(repository.NewCartRepository(db), repository.NewProductRepository(db))

	category := seedTestCategory(t, db, "cat-checkout-snapshot")
	product := seedTestProduct(t, db, category.ID, "prod-checkout-snapshot", "5000000", 10)
	if err := cartSvc.AddItem(UpsertCartItemInput{UserID: 1, ProductID: product.ID, Quantity: 1}); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	order, err := svc.Checkout(CheckoutInput{
		UserID:      1,
		Form:        validCheckoutForm(),
		ReceiptPath: "receipts/snapshot.jpg",
	})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	// 下单后改价不影响已落库的订单快照
	newPrice := models.NewMoneyFromDecimal(decimal.RequireFromString("9000000"))
	if err := db.Model(&models.Product{}).Where("id = ?", product.ID).Update("price", newPrice).Error; err != nil {
		t.Fatalf("update price failed: %v", err)
	}

	reloaded, err := svc.GetOrderByUser(order.ID, 1)
	if err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	expected := decimal.RequireFromString("5000000")
	if !reloaded.TotalAmount.Decimal.Equal(expected) {
		t.Fatalf("expected snapshot total %s, got %s", expected.String(), reloaded.TotalAmount.String())
	}
	if len(reloaded.Items) != 1 || !reloaded.Items[0].UnitPrice.Decimal.Equal(expected) {
		t.Fatalf("expected snapshot unit price %s, got %+v", expected.String(), reloaded.Items)
	}
}

func TestCheckoutInsufficientStockRollsBack(t *testing.T) {
	db := openTestDB(t, "order_checkout_stock")
	useGlobalDB(t, db)
	svc := newOrderServiceForTest(db)
	cartSvc := NewCartService(repository.NewCartRepository(db), repository.NewProductRepository(db))

	category := seedTestCategory(t, db, "cat-checkout-stock")
	plenty := seedTestProduct(t, db, category.ID, "prod-checkout-plenty", "1000000", 50)
	scarce := seedTestProduct(t, db, category.ID, "prod-checkout-scarce", "2000000", 1)

	if err := cartSvc.AddItem(UpsertCartItemInput{UserID: 1, ProductID: plenty.ID, Quantity: 2}); err != nil {
		t.Fatalf("add plenty failed: %v", err)
	}
	if err := cartSvc.AddItem(UpsertCartItemInput{UserID: 1, ProductID: scarce.ID, Quantity: 1}); err != nil {
		t.Fatalf("add scarce failed: %v", err)
	}
	// 加车之后库存被其他买家买空
	if err := db.Model(&models.Product{}).Where("id = ?", scarce.ID).Update("stock_quantity", 0).Error; err != nil {
		t.Fatalf("deplete stock failed: %v", err)
	}

	_, err := svc.Checkout(CheckoutInput{
		UserID:      1,
		Form:        validCheckoutForm(),
		ReceiptPath: "receipts/stock.jpg",
	})
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected insufficient stock, got: %v", err)
	}

	// 事务回滚：库存与购物车原样保留，订单未落库
	var reloaded models.Product
	if err := db.First(&reloaded, plenty.ID).Error; err != nil {
		t.Fatalf("load product failed: %v", err)
	}
	if reloaded.StockQuantity != 50 {
		t.Fatalf("expected stock rollback to 50, got %d", reloaded.StockQuantity)
	}
	var orderCount int64
	if err := db.Model(&models.Order{}).Count(&orderCount).Error; err != nil {
		t.Fatalf("count orders failed: %v", err)
	}
	if orderCount != 0 {
		t.Fatalf("expected no orders, got %d", orderCount)
	}
	var cartCount int64
	if err := db.Model(&models.CartItem{}).Where("user_id = ?", 1).Count(&cartCount).Error; err != nil {
		t.Fatalf("count cart failed: %v", err)
	}
	if cartCount != 2 {
		t.Fatalf("expected cart untouched, got %d rows", cartCount)
	}
}

func TestCheckoutWithoutReceiptSucceeds(t *testing.T) {
	db := openTestDB(t, "order_checkout_no_receipt")
	useGlobalDB(t, db)
	svc := newOrderServiceForTest(db)
	cartSvc := NewCartService(repository.NewCartRepository(db), repository.NewProductRepository(db))

	category := seedTestCategory(t, db, "cat-checkout-no-receipt")
	product := seedTestProduct(t, db, category.ID, "prod-checkout-no-receipt", "1000000", 5)
	if err := cartSvc.AddItem(UpsertCartItemInput{UserID: 1, ProductID: product.ID, Quantity: 1}); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	// 转账凭证可选，未上传时照常下单
	order, err := svc.Checkout(CheckoutInput{
		UserID: 1,
		Form:   validCheckoutForm(),
	})
	if err != nil {
		t.Fatalf("checkout without receipt failed: %v", err)
	}
	if order.ReceiptPath != "" {
		t.Fatalf("expected empty receipt path, got %q", order.ReceiptPath)
	}
	if order.Status != models.OrderStatusPending {
		t.Fatalf("expected pending status, got %s", order.Status)
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	db := openTestDB(t, "order_checkout_empty")
	useGlobalDB(t, db)
	svc := newOrderServiceForTest(db)

	_, err := svc.Checkout(CheckoutInput{
		UserID:      1,
		Form:        validCheckoutForm(),
		ReceiptPath: "receipts/empty.jpg",
	})
	if !errors.Is(err, ErrCartEmpty) {
		t.Fatalf("expected empty cart error, got: %v", err)
	}
}

func TestValidateCheckoutReturnsFieldErrors(t *testing.T) {
	db := openTestDB(t, "order_validate_fields")
	useGlobalDB(t, db)
	svc := newOrderServiceForTest(db)

	form := validCheckoutForm()
	form.Phone = "123"
	err := svc.ValidateCheckout(1, form)
	var validationErr *CheckoutValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected validation error, got: %v", err)
	}
	if _, found := validationErr.Fields["phone"]; !found {
		t.Fatalf("expected phone error, got: %+v", validationErr.Fields)
	}
}

func TestCancelOrderRestoresStock(t *testing.T) {
	db := openTestDB(t, "order_cancel_restock")
	useGlobalDB(t, db)
	svc := newOrderServiceForTest(db)
	cartSvc := NewCartService(repository.NewCartRepository(db), repository.NewProductRepository(db))

	category := seedTestCategory(t, db, "cat-cancel")
	product := seedTestProduct(t, db, category.ID, "prod-cancel", "3000000", 10)
	if err := cartSvc.AddItem(UpsertCartItemInput{UserID: 1, ProductID: product.ID, Quantity: 4}); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	order, err := svc.Checkout(CheckoutInput{
		UserID:      1,
		Form:        validCheckoutForm(),
		ReceiptPath: "receipts/cancel.jpg",
	})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	cancelled, err := svc.CancelOrder(order.ID, 1)
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if cancelled.Status != models.OrderStatusCancelled {
		t.Fatalf("expected cancelled status, got %s", cancelled.Status)
	}
	if cancelled.CanceledAt == nil {
		t.Fatalf("expected canceled_at set")
	}

	var reloaded models.Product
	if err := db.First(&reloaded, product.ID).Error; err != nil {
		t.Fatalf("load product failed: %v", err)
	}
	if reloaded.StockQuantity != 10 {
		t.Fatalf("expected stock restored to 10, got %d", reloaded.StockQuantity)
	}
}

func TestCancelOrderRejectsNonPending(t *testing.T) {
	db := openTestDB(t, "order_cancel_paid")
	useGlobalDB(t, db)
	svc := newOrderServiceForTest(db)
	cartSvc := NewCartService(repository.NewCartRepository(db), repository.NewProductRepository(db))

	category := seedTestCategory(t, db, "cat-cancel-paid")
	product := seedTestProduct(t, db, category.ID, "prod-cancel-paid", "1500000", 10)
	if err := cartSvc.AddItem(UpsertCartItemInput{UserID: 1, ProductID: product.ID, Quantity: 1}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	order, err := svc.Checkout(CheckoutInput{
		UserID:      1,
		Form:        validCheckoutForm(),
		ReceiptPath: "receipts/cancel-paid.jpg",
	})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if _, err := svc.UpdateOrderStatus(order.ID, models.OrderStatusPaid); err != nil {
		t.Fatalf("mark paid failed: %v", err)
	}

	_, err = svc.CancelOrder(order.ID, 1)
	if !errors.Is(err, ErrOrderCancelNotAllowed) {
		t.Fatalf("expected cancel not allowed, got: %v", err)
	}
}

func TestCancelOrderRejectsOtherUser(t *testing.T) {
	db := openTestDB(t, "order_cancel_other")
	useGlobalDB(t, db)
	svc := newOrderServiceForTest(db)
	cartSvc := NewCartService(repository.NewCartRepository(db), repository.NewProductRepository(db))

	category := seedTestCategory(t, db, "cat-cancel-other")
	product := seedTestProduct(t, db, category.ID, "prod-cancel-other", "1200000", 10)
	if err := cartSvc.AddItem(UpsertCartItemInput{UserID: 1, ProductID: product.ID, Quantity: 1}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	order, err := svc.Checkout(CheckoutInput{
		UserID:      1,
		Form:        validCheckoutForm(),
		ReceiptPath: "receipts/cancel-other.jpg",
	})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	_, err = svc.CancelOrder(order.ID, 2)
	if !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected order not found for other user, got: %v", err)
	}
}

func TestUpdateOrderStatusFollowsStateMachine(t *testing.T) {
	db := openTestDB(t, "order_status_machine")
	useGlobalDB(t, db)
	svc := newOrderServiceForTest(db)
	cartSvc := NewCartService(repository.NewCartRepository(db), repository.NewProductRepository(db))

	category := seedTestCategory(t, db, "cat-status")
	product := seedTestProduct(t, db, category.ID, "prod-status", "2500000", 10)
	if err := cartSvc.AddItem(UpsertCartItemInput{UserID: 1, ProductID: product.ID, Quantity: 1}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	order, err := svc.Checkout(CheckoutInput{
		UserID:      1,
		Form:        validCheckoutForm(),
		ReceiptPath: "receipts/status.jpg",
	})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	// pending 不能直接 shipped
	if _, err := svc.UpdateOrderStatus(order.ID, models.OrderStatusShipped); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("expected invalid transition, got: %v", err)
	}
	if _, err := svc.UpdateOrderStatus(order.ID, "refunded"); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("expected unknown status rejected, got: %v", err)
	}

	paid, err := svc.UpdateOrderStatus(order.ID, models.OrderStatusPaid)
	if err != nil {
		t.Fatalf("mark paid failed: %v", err)
	}
	if paid.PaidAt == nil {
		t.Fatalf("expected paid_at set")
	}

	for _, status := range []string{models.OrderStatusProcessing, models.OrderStatusShipped, models.OrderStatusDelivered} {
		if _, err := svc.UpdateOrderStatus(order.ID, status); err != nil {
			t.Fatalf("transition to %s failed: %v", status, err)
		}
	}

	// delivered 为终态
	if _, err := svc.UpdateOrderStatus(order.ID, models.OrderStatusCancelled); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("expected delivered to be terminal, got: %v", err)
	}
}

func TestUpdateOrderStatusSameStatusIsNoop(t *testing.T) {
	db := openTestDB(t, "order_status_noop")
	useGlobalDB(t, db)
	svc := newOrderServiceForTest(db)
	cartSvc := NewCartService(repository.NewCartRepository(db), repository.NewProductRepository(db))

	category := seedTestCategory(t, db, "cat-status-noop")
	product := seedTestProduct(t, db, category.ID, "prod-status-noop", "100000", 10)
	if err := cartSvc.AddItem(UpsertCartItemInput{UserID: 1, ProductID: product.ID, Quantity: 1}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	order, err := svc.Checkout(CheckoutInput{
		UserID:      1,
		Form:        validCheckoutForm(),
		ReceiptPath: "receipts/noop.jpg",
	})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	same, err := svc.UpdateOrderStatus(order.ID, models.OrderStatusPending)
	if err != nil {
		t.Fatalf("same-status update failed: %v", err)
	}
	if same.Status != models.OrderStatusPending {
		t.Fatalf("expected pending, got %s", same.Status)
	}
}

func TestGenerateOrderNoFormat(t *testing.T) {
	orderNo := generateOrderNo()
	if !strings.HasPrefix(orderNo, "ORD-") {
		t.Fatalf("unexpected prefix: %s", orderNo)
	}
	if len(orderNo) != len("ORD-")+14+6 {
		t.Fatalf("unexpected length %d: %s", len(orderNo), orderNo)
	}
	for _, r := range orderNo[len("ORD-"):] {
		if r < '0' || r > '9' {
			t.Fatalf("expected numeric body, got %s", orderNo)
		}
	}
}

func TestCheckoutDigitalProductSkipsStock(t *testing.T) {
	db := openTestDB(t, "order_checkout_digital")
	useGlobalDB(t, db)
	svc := newOrderServiceForTest(db)
	cartSvc := NewCartService(repository.NewCartRepository(db), repository.NewProductRepository(db))

	category := seedTestCategory(t, db, "cat-checkout-digital")
	license := seedTestDigitalProduct(t, db, category.ID, "prod-checkout-license", "9000000")

	if err := cartSvc.SetQuantity(UpsertCartItemInput{UserID: 1, ProductID: license.ID, Quantity: 3}); err != nil {
		t.Fatalf("set quantity failed: %v", err)
	}

	order, err := svc.Checkout(CheckoutInput{
		UserID:      1,
		Form:        validCheckoutForm(),
		ReceiptPath: "receipts/2026/08/receipt-digital.jpg",
	})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if order.Items[0].ProductType != models.ProductTypeDigital {
		t.Fatalf("expected digital type snapshot, got %s", order.Items[0].ProductType)
	}

	// 数字商品不参与库存扣减
	var reloaded models.Product
	if err := db.First(&reloaded, license.ID).Error; err != nil {
		t.Fatalf("load product failed: %v", err)
	}
	if reloaded.StockQuantity != 0 {
		t.Fatalf("expected stock untouched at 0, got %d", reloaded.StockQuantity)
	}

	// 取消时也不回补
	if _, err := svc.CancelOrder(order.ID, 1); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if err := db.First(&reloaded, license.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if reloaded.StockQuantity != 0 {
		t.Fatalf("expected stock untouched after cancel, got %d", reloaded.StockQuantity)
	}
}

func TestCheckoutRejectsDuplicateSubmission(t *testing.T) {
	db := openTestDB(t, "order_checkout_dup")
	useGlobalDB(t, db)
	svc := newOrderServiceForTest(db)
	cartSvc := NewCartService(repository.NewCartRepository(db), repository.NewProductRepository(db))

	category := seedTestCategory(t, db, "cat-checkout-dup")
	product := seedTestProduct(t, db, category.ID, "prod-checkout-dup", "1000000", 10)

	if err := cartSvc.AddItem(UpsertCartItemInput{UserID: 1, ProductID: product.ID, Quantity: 1}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if _, err := svc.Checkout(CheckoutInput{UserID: 1, Form: validCheckoutForm(), ReceiptPath: "receipts/a.jpg"}); err != nil {
		t.Fatalf("first checkout failed: %v", err)
	}

	// 同一参考号再次提交被拒绝
	if err := cartSvc.AddItem(UpsertCartItemInput{UserID: 1, ProductID: product.ID, Quantity: 1}); err != nil {
		t.Fatalf("re-add failed: %v", err)
	}
	_, err := svc.Checkout(CheckoutInput{UserID: 1, Form: validCheckoutForm(), ReceiptPath: "receipts/b.jpg"})
	if !errors.Is(err, ErrDuplicateSubmission) {
		t.Fatalf("expected duplicate submission rejected, got: %v", err)
	}

	// 换一个参考号可以正常下单
	form := validCheckoutForm()
	form.PaymentReference = "REF67890"
	if _, err := svc.Checkout(CheckoutInput{UserID: 1, Form: form, ReceiptPath: "receipts/c.jpg"}); err != nil {
		t.Fatalf("second checkout with new reference failed: %v", err)
	}
}
