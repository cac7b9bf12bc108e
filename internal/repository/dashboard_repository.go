package repository

import (
	"github.com/parskala/internal/models"

	"gorm.io/gorm"
)

// DashboardRepository 仪表盘聚合查询接口
// 说明：仅聚合统计数据，不承载业务规则。
type DashboardRepository interface {
	GetOverview() (DashboardOverviewRow, error)
	GetOrderStatusCounts() (map[string]int64, error)
}

// DashboardOverviewRow 仪表盘总览原始统计结果
type DashboardOverviewRow struct {
	ActiveProducts int64
	OrdersTotal    int64
	PendingOrders  int64
	OpenTickets    int64
	UsersTotal     int64
	ActiveTutorials int64
}

// GormDashboardRepository GORM 仪表盘聚合实现
type GormDashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository 创建仪表盘仓库
func NewDashboardRepository(db *gorm.DB) *GormDashboardRepository {
	return &GormDashboardRepository{db: db}
}

// GetOverview 获取总览统计
func (r *GormDashboardRepository) GetOverview() (DashboardOverviewRow, error) {
	result := DashboardOverviewRow{}

	if err := r.db.Model(&models.Product{}).
		Where("is_active = ?", true).
		Count(&result.ActiveProducts).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.Order{}).Count(&result.OrdersTotal).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.Order{}).
		Where("status = ?", models.OrderStatusPending).
		Count(&result.PendingOrders).Error; err != nil {
		return result, err
	}
	openStatuses := []string{models.TicketStatusOpen, models.TicketStatusInProgress}
	if err := r.db.Model(&models.Ticket{}).
		Where("status IN ?", openStatuses).
		Count(&result.OpenTickets).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.User{}).Count(&result.UsersTotal).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.Tutorial{}).
		Where("is_active = ?", true).
		Count(&result.ActiveTutorials).Error; err != nil {
		return result, err
	}

	return result, nil
}

// GetOrderStatusCounts 按状态统计订单数量
func (r *GormDashboardRepository) GetOrderStatusCounts() (map[string]int64, error) {
	type statusRow struct {
		Status string
		Total  int64
	}
	var rows []statusRow
	if err := r.db.Model(&models.Order{}).
		Select("status, COUNT(*) as total").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	result := make(map[string]int64, len(rows))
	for _, row := range rows {
		result[row.Status] = row.Total
	}
	return result, nil
}
