package repository

import (
	"errors"

	"github.com/parskala/internal/models"

	"gorm.io/gorm"
)

// TicketRepository 工单数据访问接口
type TicketRepository interface {
	Create(ticket *models.Ticket, firstMessage *models.TicketMessage) error
	GetByID(id uint) (*models.Ticket, error)
	GetByIDAndUser(id uint, userID uint) (*models.Ticket, error)
	CountByTicketNo(ticketNo string) (int64, error)
	ListByUser(filter TicketListFilter) ([]models.Ticket, int64, error)
	ListAdmin(filter TicketListFilter) ([]models.Ticket, int64, error)
	ListMessages(ticketID uint) ([]models.TicketMessage, error)
	CreateMessage(message *models.TicketMessage) error
	UpdateStatus(id uint, status string) error
	CountByStatus(status string) (int64, error)
	WithTx(tx *gorm.DB) *GormTicketRepository
}

// GormTicketRepository GORM 实现
type GormTicketRepository struct {
	db *gorm.DB
}

// NewTicketRepository 创建工单仓库
func NewTicketRepository(db *gorm.DB) *GormTicketRepository {
	return &GormTicketRepository{db: db}
}

// WithTx 绑定事务
func (r *GormTicketRepository) WithTx(tx *gorm.DB) *GormTicketRepository {
	if tx == nil {
		return r
	}
	return &GormTicketRepository{db: tx}
}

// Create 创建工单与首条消息
func (r *GormTicketRepository) Create(ticket *models.Ticket, firstMessage *models.TicketMessage) error {
	if err := r.db.Create(ticket).Error; err != nil {
		return err
	}
	if firstMessage != nil {
		firstMessage.TicketID = ticket.ID
		if err := r.db.Create(firstMessage).Error; err != nil {
			return err
		}
	}
	return nil
}

// GetByID 根据 ID 获取工单
func (r *GormTicketRepository) GetByID(id uint) (*models.Ticket, error) {
	var ticket models.Ticket
	if err := r.db.First(&ticket, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ticket, nil
}

// GetByIDAndUser 获取用户工单详情
func (r *GormTicketRepository) GetByIDAndUser(id uint, userID uint) (*models.Ticket, error) {
	var ticket models.Ticket
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&ticket).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ticket, nil
}

// CountByTicketNo 统计工单编号数量（生成时做唯一性校验）
func (r *GormTicketRepository) CountByTicketNo(ticketNo string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Ticket{}).Where("ticket_no = ?", ticketNo).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ListByUser 获取用户工单列表
func (r *GormTicketRepository) ListByUser(filter TicketListFilter) ([]models.Ticket, int64, error) {
	var tickets []models.Ticket
	query := r.db.Model(&models.Ticket{}).Where("user_id = ?", filter.UserID)

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order("updated_at desc").Find(&tickets).Error; err != nil {
		return nil, 0, err
	}
	return tickets, total, nil
}

// ListAdmin 管理端工单列表
func (r *GormTicketRepository) ListAdmin(filter TicketListFilter) ([]models.Ticket, int64, error) {
	var tickets []models.Ticket
	query := r.db.Model(&models.Ticket{})

	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Priority != "" {
		query = query.Where("priority = ?", filter.Priority)
	}
	if filter.TicketNo != "" {
		query = query.Where("ticket_no = ?", filter.TicketNo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order("updated_at desc").Find(&tickets).Error; err != nil {
		return nil, 0, err
	}
	return tickets, total, nil
}

// ListMessages 获取工单消息（按时间正序）
func (r *GormTicketRepository) ListMessages(ticketID uint) ([]models.TicketMessage, error) {
	var messages []models.TicketMessage
	if err := r.db.Where("ticket_id = ?", ticketID).Order("created_at asc, id asc").Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

// CreateMessage 追加工单消息
func (r *GormTicketRepository) CreateMessage(message *models.TicketMessage) error {
	return r.db.Create(message).Error
}

// UpdateStatus 更新工单状态
func (r *GormTicketRepository) UpdateStatus(id uint, status string) error {
	return r.db.Model(&models.Ticket{}).Where("id = ?", id).Update("status", status).Error
}

// CountByStatus 统计指定状态工单数
func (r *GormTicketRepository) CountByStatus(status string) (int64, error) {
	var count int64
	query := r.db.Model(&models.Ticket{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
