package service

import (
	"errors"
	"testing"

	"github.com/parskala/internal/config"
	"github.com/parskala/internal/models"
	"github.com/parskala/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func newAuthServiceForTest(t *testing.T, db *gorm.DB) *AuthService {
	t.Helper()
	cfg := &config.Config{}
	cfg.JWT.SecretKey = "test-admin-secret-key-0123456789abcdef"
	cfg.JWT.ExpireHours = 24
	cfg.Security.PasswordPolicy = config.PasswordPolicyConfig{MinLength: 8}
	return NewAuthService(cfg, repository.NewAdminRepository(db))
}

func seedTestAdmin(t *testing.T, db *gorm.DB, username, password string) models.Admin {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("hash password failed: %v", err)
	}
	admin := models.Admin{Username: username, PasswordHash: string(hash)}
	if err := db.Create(&admin).Error; err != nil {
		t.Fatalf("create admin failed: %v", err)
	}
	return admin
}

func TestAdminLoginIssuesToken(t *testing.T) {
	db := openTestDB(t, "admin_login_ok")
	svc := newAuthServiceForTest(t, db)
	seedTestAdmin(t, db, "admin", "admin-password-1")

	admin, token, _, err := svc.Login("admin", "admin-password-1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if admin.LastLoginAt == nil {
		t.Fatalf("expected last_login_at set")
	}

	claims, err := svc.ParseJWT(token)
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if claims.AdminID != admin.ID || claims.Username != "admin" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestAdminLoginInvalidCredentials(t *testing.T) {
	db := openTestDB(t, "admin_login_bad")
	svc := newAuthServiceForTest(t, db)
	seedTestAdmin(t, db, "admin", "admin-password-1")

	if _, _, _, err := svc.Login("admin", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got: %v", err)
	}
	if _, _, _, err := svc.Login("ghost", "admin-password-1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials for unknown admin, got: %v", err)
	}
}

func TestAdminChangePassword(t *testing.T) {
	db := openTestDB(t, "admin_change_password")
	svc := newAuthServiceForTest(t, db)
	admin := seedTestAdmin(t, db, "admin", "admin-password-1")
	oldVersion := admin.TokenVersion

	if err := svc.ChangePassword(admin.ID, "wrong", "new-password-1"); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("expected invalid password, got: %v", err)
	}
	if err := svc.ChangePassword(admin.ID, "admin-password-1", "short"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected weak password, got: %v", err)
	}
	if err := svc.ChangePassword(admin.ID, "admin-password-1", "new-password-1"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}

	var updated models.Admin
	if err := db.First(&updated, admin.ID).Error; err != nil {
		t.Fatalf("reload admin failed: %v", err)
	}
	if updated.TokenVersion != oldVersion+1 {
		t.Fatalf("expected token version bump, got %d", updated.TokenVersion)
	}

	if _, _, _, err := svc.Login("admin", "new-password-1"); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}
}
