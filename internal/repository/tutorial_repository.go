package repository

import (
	"errors"
	"strings"

	"github.com/parskala/internal/models"

	"gorm.io/gorm"
)

// TutorialRepository 教程数据访问接口
type TutorialRepository interface {
	List(filter TutorialListFilter) ([]models.Tutorial, int64, error)
	GetByID(id uint) (*models.Tutorial, error)
	Create(tutorial *models.Tutorial) error
	Update(tutorial *models.Tutorial) error
	Delete(id uint) error
	IncrementViewCount(id uint) error
}

// GormTutorialRepository GORM 实现
type GormTutorialRepository struct {
	db *gorm.DB
}

// NewTutorialRepository 创建教程仓库
func NewTutorialRepository(db *gorm.DB) *GormTutorialRepository {
	return &GormTutorialRepository{db: db}
}

// List 教程列表
func (r *GormTutorialRepository) List(filter TutorialListFilter) ([]models.Tutorial, int64, error) {
	var tutorials []models.Tutorial
	query := r.db.Model(&models.Tutorial{})

	if filter.OnlyActive {
		query = query.Where("is_active = ?", true)
	}
	if filter.OnlyFree {
		query = query.Where("is_free = ?", true)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		query = query.Where("title LIKE ? OR description LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order("sort_order DESC, created_at DESC").Find(&tutorials).Error; err != nil {
		return nil, 0, err
	}
	return tutorials, total, nil
}

// GetByID 根据 ID 获取教程
func (r *GormTutorialRepository) GetByID(id uint) (*models.Tutorial, error) {
	var tutorial models.Tutorial
	if err := r.db.First(&tutorial, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tutorial, nil
}

// Create 创建教程
func (r *GormTutorialRepository) Create(tutorial *models.Tutorial) error {
	return r.db.Create(tutorial).Error
}

// Update 更新教程
func (r *GormTutorialRepository) Update(tutorial *models.Tutorial) error {
	return r.db.Save(tutorial).Error
}

// Delete 删除教程
func (r *GormTutorialRepository) Delete(id uint) error {
	return r.db.Delete(&models.Tutorial{}, id).Error
}

// IncrementViewCount 播放次数自增
func (r *GormTutorialRepository) IncrementViewCount(id uint) error {
	return r.db.Model(&models.Tutorial{}).Where("id = ?", id).
		Update("view_count", gorm.Expr("view_count + 1")).Error
}
