package service

import (
	"context"
	"time"

	"github.com/parskala/internal/cache"
	"github.com/parskala/internal/models"
	"github.com/parskala/internal/repository"
)

const (
	dashboardCacheTTL        = 45 * time.Second
	dashboardRecentOrderSize = 10
)

// DashboardService 仪表盘服务
// 说明：聚合后台首页核心经营数据。
type DashboardService struct {
	repo      repository.DashboardRepository
	orderRepo repository.OrderRepository
}

// NewDashboardService 创建仪表盘服务
func NewDashboardService(repo repository.DashboardRepository, orderRepo repository.OrderRepository) *DashboardService {
	return &DashboardService{repo: repo, orderRepo: orderRepo}
}

// DashboardOverviewResponse 仪表盘总览响应
type DashboardOverviewResponse struct {
	ActiveProducts    int64            `json:"active_products"`
	OrdersTotal       int64            `json:"orders_total"`
	PendingOrders     int64            `json:"pending_orders"`
	OpenTickets       int64            `json:"open_tickets"`
	UsersTotal        int64            `json:"users_total"`
	ActiveTutorials   int64            `json:"active_tutorials"`
	OrderStatusCounts map[string]int64 `json:"order_status_counts"`
	RecentOrders      []models.Order   `json:"recent_orders"`
}

// GetOverview 获取仪表盘总览
func (s *DashboardService) GetOverview(ctx context.Context, forceRefresh bool) (*DashboardOverviewResponse, error) {
	if s == nil || s.repo == nil {
		return &DashboardOverviewResponse{}, nil
	}

	cacheKey := "dashboard:overview"
	if !forceRefresh {
		var cached DashboardOverviewResponse
		hit, cacheErr := cache.GetJSON(ctx, cacheKey, &cached)
		if cacheErr == nil && hit {
			return &cached, nil
		}
	}

	overview, err := s.repo.GetOverview()
	if err != nil {
		return nil, err
	}
	statusCounts, err := s.repo.GetOrderStatusCounts()
	if err != nil {
		return nil, err
	}
	recentOrders, err := s.orderRepo.ListRecent(dashboardRecentOrderSize)
	if err != nil {
		return nil, err
	}

	response := &DashboardOverviewResponse{
		ActiveProducts:    overview.ActiveProducts,
		OrdersTotal:       overview.OrdersTotal,
		PendingOrders:     overview.PendingOrders,
		OpenTickets:       overview.OpenTickets,
		UsersTotal:        overview.UsersTotal,
		ActiveTutorials:   overview.ActiveTutorials,
		OrderStatusCounts: statusCounts,
		RecentOrders:      recentOrders,
	}

	_ = cache.SetJSON(ctx, cacheKey, response, dashboardCacheTTL)
	return response, nil
}
