package service

import (
	"errors"
	"testing"

	"github.com/parskala/internal/models"
	"github.com/parskala/internal/repository"

	"github.com/shopspring/decimal"
)

func TestCartAddItemAccumulatesQuantity(t *testing.T) {
	db := openTestDB(t, "cart_add_accumulate")
	svc := NewCartService(repository.NewCartRepository(db), repository.NewProductRepository(db))
	category := seedTestCategory(t, db, "cat-cart-add")
	product := seedTestProduct(t, db, category.ID, "prod-cart-add", "1000000", 10)

	if err := svc.AddItem(UpsertCartItemInput{UserID: 1, ProductID: product.ID, Quantity: 2}); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	if err := svc.AddItem(UpsertCartItemInput{UserID: 1, ProductID: product.ID, Quantity: 3}); err != nil {
		t.Fatalf("second add failed: %v", err)
	}

	summary, err := svc.ListByUser(1)
	if err != nil {
		t.Fatalf("list cart failed: %v", err)
	}
	if summary.LineCount != 1 {
		t.Fatalf("expected 1 line, got %d", summary.LineCount)
	}
	if summary.Items[0].Quantity != 5 {
		t.Fatalf("expected accumulated quantity 5, got %d", summary.Items[0].Quantity)
	}
}

func TestCartAddItemRejectsInactiveProduct(t *testing.T) {
	db := openTestDB(t, "cart_add_inactive")
	svc := NewCartService(repository.NewCartRepository(db), repository.NewProductRepository(db))
	category := seedTestCategory(t, db, "cat-cart-inactive")
	product := seedTestProduct(t, db, category.ID, "prod-cart-inactive", "500000", 10)
	if err := db.Model(&models.Product{}).Where("id = ?", product.ID).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate product failed: %v", err)
	}

	err := svc.AddItem(UpsertCartItemInput{UserID: 1, ProductID: product.ID, Quantity: 1})
	if !errors.Is(err, ErrProductNotAvailable) {
		t.Fatalf("expected product not available, got: %v", err)
	}
}

func TestCartAddItemRejectsInvalidInput(t *testing.T) {
	db := openTestDB(t, "cart_add_invalid")
	svc := NewCartService(repository.NewCartRepository(db), repository.NewProductRepository(db))

	if err := svc.AddItem(UpsertCartItemInput{UserID: 0, ProductID: 1, Quantity: 1}); !errors.Is(err, ErrInvalidCartItem) {
		t.Fatalf("expected invalid cart item for zero user, got: %v", err)
	}
	if err := svc.AddItem(UpsertCartItemInput{UserID: 1, ProductID: 1, Quantity: 0}); !errors.Is(err, ErrInvalidCartItem) {
		t.Fatalf("expected invalid cart item for zero quantity, got: %v", err)
	}
}

func TestCartSetQuantityZeroRemovesLine(t *testing.T) {
	db := openTestDB(t, "cart_set_zero")
	svc := NewCartService(repository.NewCartRepository(db), repository.NewProductRepository(db))
	category := seedTestCategory(t, db, "cat-cart-zero")
	product := seedTestProduct(t, db, category.ID, "prod-cart-zero", "900000", 10)

	if err := svc.AddItem(UpsertCartItemInput{UserID: 1, ProductID: product.ID, Quantity: 2}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := svc.SetQuantity(UpsertCartItemInput{UserID: 1, ProductID: product.ID, Quantity: 0}); err != nil {
		t.Fatalf("set quantity failed: %v", err)
	}

	summary, err := svc.ListByUser(1)
	if err != nil {
		t.Fatalf("list cart failed: %v", err)
	}
	if summary.LineCount != 0 {
		t.Fatalf("expected empty cart, got %d lines", summary.LineCount)
	}
}

func TestCartSummaryUsesDiscountPrice(t *testing.T) {
	db := openTestDB(t, "cart_summary_discount")
	svc := NewCartService(repository.NewCartRepository(db), repository.NewProductRepository(db))
	category := seedTestCategory(t, db, "cat-cart-discount")
	product := seedTestProduct(t, db, category.ID, "prod-cart-discount", "2000000", 10)

	discounted := models.NewMoneyFromDecimal(decimal.RequireFromString("1500000"))
	if err := db.Model(&models.Product{}).Where("id = ?", product.ID).Update("discount_price", discounted).Error; err != nil {
		t.Fatalf("set discount failed: %v", err)
	}

	if err := svc.AddItem(UpsertCartItemInput{UserID: 1, ProductID: product.ID, Quantity: 3}); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	summary, err := svc.ListByUser(1)
	if err != nil {
		t.Fatalf("list cart failed: %v", err)
	}
	expectedTotal := decimal.RequireFromString("4500000")
	if !summary.TotalAmount.Decimal.Equal(expectedTotal) {
		t.Fatalf("expected total %s, got %s", expectedTotal.String(), summary.TotalAmount.String())
	}
	if !summary.Items[0].UnitPrice.Decimal.Equal(discounted.Decimal) {
		t.Fatalf("expected discounted unit price, got %s", summary.Items[0].UnitPrice.String())
	}
	if !summary.Items[0].OriginalPrice.Decimal.Equal(decimal.RequireFromString("2000000")) {
		t.Fatalf("expected original price preserved, got %s", summary.Items[0].OriginalPrice.String())
	}
	if summary.ItemCount != 3 {
		t.Fatalf("expected item count 3, got %d", summary.ItemCount)
	}
}

func TestCartSummaryPrunesDeactivatedProduct(t *testing.T) {
	db := openTestDB(t, "cart_summary_prune")
	svc := NewCartService(repository.NewCartRepository(db), repository.NewProductRepository(db))
	category := seedTestCategory(t, db, "cat-cart-prune")
	keep := seedTestProduct(t, db, category.ID, "prod-cart-keep", "1000000", 10)
	drop := seedTestProduct(t, db, category.ID, "prod-cart-drop", "700000", 10)

	if err := svc.AddItem(UpsertCartItemInput{UserID: 1, ProductID: keep.ID, Quantity: 1}); err != nil {
		t.Fatalf("add keep failed: %v", err)
	}
	if err := svc.AddItem(UpsertCartItemInput{UserID: 1, ProductID: drop.ID, Quantity: 1}); err != nil {
		t.Fatalf("add drop failed: %v", err)
	}
	if err := db.Model(&models.Product{}).Where("id = ?", drop.ID).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate product failed: %v", err)
	}

	summary, err := svc.ListByUser(1)
	if err != nil {
		t.Fatalf("list cart failed: %v", err)
	}
	if summary.LineCount != 1 {
		t.Fatalf("expected 1 line after prune, got %d", summary.LineCount)
	}
	if summary.Items[0].ProductID != keep.ID {
		t.Fatalf("expected kept product %d, got %d", keep.ID, summary.Items[0].ProductID)
	}

	var count int64
	if err := db.Model(&models.CartItem{}).Where("user_id = ?", 1).Count(&count).Error; err != nil {
		t.Fatalf("count cart items failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected deactivated line removed from storage, got %d rows", count)
	}
}

func TestCartClear(t *testing.T) {
	db := openTestDB(t, "cart_clear")
	svc := NewCartService(repository.NewCartRepository(db), repository.NewProductRepository(db))
	category := seedTestCategory(t, db, "cat-cart-clear")
	product := seedTestProduct(t, db, category.ID, "prod-cart-clear", "300000", 10)

	if err := svc.AddItem(UpsertCartItemInput{UserID: 1, ProductID: product.ID, Quantity: 2}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := svc.Clear(1); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	summary, err := svc.ListByUser(1)
	if err != nil {
		t.Fatalf("list cart failed: %v", err)
	}
	if summary.LineCount != 0 {
		t.Fatalf("expected empty cart, got %d lines", summary.LineCount)
	}
}

func TestCartAddItemClampsPhysicalQuantityToStock(t *testing.T) {
	db := openTestDB(t, "cart_add_clamp")
	svc := NewCartService(repository.NewCartRepository(db), repository.NewProductRepository(db))
	category := seedTestCategory(t, db, "cat-cart-clamp")
	product := seedTestProduct(t, db, category.ID, "prod-cart-clamp", "1000000", 3)

	if err := svc.AddItem(UpsertCartItemInput{UserID: 1, ProductID: product.ID, Quantity: 2}); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	// 2+4 超过库存 3，落库数量被钳制为库存上限
	if err := svc.AddItem(UpsertCartItemInput{UserID: 1, ProductID: product.ID, Quantity: 4}); err != nil {
		t.Fatalf("second add failed: %v", err)
	}

	summary, err := svc.ListByUser(1)
	if err != nil {
		t.Fatalf("list cart failed: %v", err)
	}
	if summary.Items[0].Quantity != 3 {
		t.Fatalf("expected quantity clamped to 3, got %d", summary.Items[0].Quantity)
	}
}

func TestCartAddItemRejectsOutOfStockPhysical(t *testing.T) {
	db := openTestDB(t, "cart_add_oos")
	svc := NewCartService(repository.NewCartRepository(db), repository.NewProductRepository(db))
	category := seedTestCategory(t, db, "cat-cart-oos")
	product := seedTestProduct(t, db, category.ID, "prod-cart-oos", "1000000", 0)

	err := svc.AddItem(UpsertCartItemInput{UserID: 1, ProductID: product.ID, Quantity: 1})
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected insufficient stock, got: %v", err)
	}
}

func TestCartDigitalProductQuantityUnbounded(t *testing.T) {
	db := openTestDB(t, "cart_digital")
	svc := NewCartService(repository.NewCartRepository(db), repository.NewProductRepository(db))
	category := seedTestCategory(t, db, "cat-cart-digital")
	product := seedTestDigitalProduct(t, db, category.ID, "prod-cart-digital", "4500000")

	if err := svc.SetQuantity(UpsertCartItemInput{UserID: 1, ProductID: product.ID, Quantity: 25}); err != nil {
		t.Fatalf("set quantity failed: %v", err)
	}
	summary, err := svc.ListByUser(1)
	if err != nil {
		t.Fatalf("list cart failed: %v", err)
	}
	if summary.Items[0].Quantity != 25 {
		t.Fatalf("expected quantity 25 for digital product, got %d", summary.Items[0].Quantity)
	}
}
