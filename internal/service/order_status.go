package service

import (
	"strings"

	"github.com/parskala/internal/models"
)

// allowedTransitions 订单状态机：未列出的目标状态一律拒绝
var allowedTransitions = map[string]map[string]bool{
	models.OrderStatusPending: {
		models.OrderStatusPaid:      true,
		models.OrderStatusCancelled: true,
	},
	models.OrderStatusPaid: {
		models.OrderStatusProcessing: true,
		models.OrderStatusCancelled:  true,
	},
	models.OrderStatusProcessing: {
		models.OrderStatusShipped:   true,
		models.OrderStatusCancelled: true,
	},
	models.OrderStatusShipped: {
		models.OrderStatusDelivered: true,
	},
}

// canTransitionOrderStatus 判断订单状态迁移是否允许
func canTransitionOrderStatus(from, to string) bool {
	from = strings.ToLower(strings.TrimSpace(from))
	to = strings.ToLower(strings.TrimSpace(to))
	targets, ok := allowedTransitions[from]
	if !ok {
		return false
	}
	return targets[to]
}

// isValidOrderStatus 判断是否为已知订单状态
func isValidOrderStatus(status string) bool {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case models.OrderStatusPending, models.OrderStatusPaid, models.OrderStatusProcessing,
		models.OrderStatusShipped, models.OrderStatusDelivered, models.OrderStatusCancelled:
		return true
	}
	return false
}
