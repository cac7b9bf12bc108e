package models

import (
	"github.com/parskala/internal/logger"

	"golang.org/x/crypto/bcrypt"
)

const fallbackAdminPassword = "admin123"

// InitDefaultAdmin 在管理员表为空时创建初始账号，已有账号则什么都不做
func InitDefaultAdmin(username, password string) error {
	var count int64
	DB.Model(&Admin{}).Count(&count)
	if count > 0 {
		return nil
	}

	if username == "" {
		username = "admin"
	}
	usedFallback := password == ""
	if usedFallback {
		password = fallbackAdminPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := Admin{Username: username, PasswordHash: string(hash)}
	if err := DB.Create(&admin).Error; err != nil {
		return err
	}

	if usedFallback {
		logger.Warnw("default_admin_created_with_default_password", "username", username, "password", password)
		logger.Warnw("default_admin_password_change_required", "username", username)
	} else {
		logger.Warnw("default_admin_created", "username", username, "password_hidden", true)
	}
	return nil
}
