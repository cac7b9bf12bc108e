package service

import (
	"errors"
	"testing"

	"github.com/parskala/internal/models"
	"github.com/parskala/internal/repository"
)

func TestWishlistAddIsIdempotent(t *testing.T) {
	db := openTestDB(t, "wishlist_add")
	svc := NewWishlistService(repository.NewWishlistRepository(db), repository.NewProductRepository(db))
	category := seedTestCategory(t, db, "cat-wishlist")
	product := seedTestProduct(t, db, category.ID, "prod-wishlist", "1000000", 5)

	if err := svc.Add(1, product.ID); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	if err := svc.Add(1, product.ID); err != nil {
		t.Fatalf("repeated add failed: %v", err)
	}

	items, err := svc.ListByUser(1)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected single wishlist item, got %d", len(items))
	}
}

func TestWishlistAddRejectsInactiveProduct(t *testing.T) {
	db := openTestDB(t, "wishlist_inactive")
	svc := NewWishlistService(repository.NewWishlistRepository(db), repository.NewProductRepository(db))
	category := seedTestCategory(t, db, "cat-wishlist-inactive")
	product := seedTestProduct(t, db, category.ID, "prod-wishlist-inactive", "1000000", 5)
	if err := db.Model(&models.Product{}).Where("id = ?", product.ID).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}

	if err := svc.Add(1, product.ID); !errors.Is(err, ErrProductNotAvailable) {
		t.Fatalf("expected product not available, got: %v", err)
	}
}

func TestWishlistRemove(t *testing.T) {
	db := openTestDB(t, "wishlist_remove")
	svc := NewWishlistService(repository.NewWishlistRepository(db), repository.NewProductRepository(db))
	category := seedTestCategory(t, db, "cat-wishlist-remove")
	product := seedTestProduct(t, db, category.ID, "prod-wishlist-remove", "1000000", 5)

	if err := svc.Add(1, product.ID); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := svc.Remove(1, product.ID); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	items, err := svc.ListByUser(1)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty wishlist, got %d items", len(items))
	}

	// 删除不存在的收藏不报错
	if err := svc.Remove(1, product.ID); err != nil {
		t.Fatalf("removing absent item should be a no-op, got: %v", err)
	}
}
