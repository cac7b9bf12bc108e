package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/parskala/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Admin{},
		&models.Category{},
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Ticket{},
		&models.TicketMessage{},
		&models.User{},
		&models.Profile{},
		&models.WishlistItem{},
		&models.Tutorial{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return db
}

// useGlobalDB 让依赖全局事务入口的服务在测试库上运行
func useGlobalDB(t *testing.T, db *gorm.DB) {
	t.Helper()
	prev := models.DB
	models.DB = db
	t.Cleanup(func() {
		models.DB = prev
	})
}

func seedTestCategory(t *testing.T, db *gorm.DB, slug string) models.Category {
	t.Helper()
	category := models.Category{
		Slug:     slug,
		Name:     "دسته آزمایشی",
		IsActive: true,
	}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	return category
}

func seedTestProduct(t *testing.T, db *gorm.DB, categoryID uint, slug string, price string, stock int) models.Product {
	t.Helper()
	product := models.Product{
		CategoryID:    categoryID,
		Slug:          slug,
		Name:          "کالای آزمایشی",
		ProductType:   models.ProductTypePhysical,
		Price:         models.NewMoneyFromDecimal(decimal.RequireFromString(price)),
		StockQuantity: stock,
		IsActive:      true,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func seedTestDigitalProduct(t *testing.T, db *gorm.DB, categoryID uint, slug string, price string) models.Product {
	t.Helper()
	product := models.Product{
		CategoryID:  categoryID,
		Slug:        slug,
		Name:        "محصول دانلودی",
		ProductType: models.ProductTypeDigital,
		Price:       models.NewMoneyFromDecimal(decimal.RequireFromString(price)),
		IsActive:    true,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create digital product failed: %v", err)
	}
	return product
}

func validCheckoutForm() CheckoutForm {
	return CheckoutForm{
		FullName:         "Sara Mohammadi",
		Email:            "sara@example.com",
		Phone:            "09121234567",
		Address:          "Tehran, Valiasr St, No 12",
		City:             "Tehran",
		PostalCode:       "1234567890",
		PayerCardNumber:  "6037991234567890",
		PaymentReference: "REF12345",
	}
}
