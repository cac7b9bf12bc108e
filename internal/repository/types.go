package repository

import "time"

// ProductListFilter 查询商品列表的过滤条件
type ProductListFilter struct {
	Page         int
	PageSize     int
	CategoryID   string
	Search       string
	OnlyActive   bool
	OnlyFeatured bool
	OnlyInStock  bool
	PriceMin     *float64
	PriceMax     *float64
	Sort         string
	WithCategory bool
}

// OrderListFilter 查询订单列表的过滤条件
type OrderListFilter struct {
	Page        int
	PageSize    int
	UserID      uint
	Status      string
	OrderNo     string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// TicketListFilter 查询工单列表的过滤条件
type TicketListFilter struct {
	Page     int
	PageSize int
	UserID   uint
	Status   string
	Priority string
	TicketNo string
}

// TutorialListFilter 查询教程列表的过滤条件
type TutorialListFilter struct {
	Page       int
	PageSize   int
	Category   string
	Search     string
	OnlyActive bool
	OnlyFree   bool
}

// UserListFilter 查询用户列表的过滤条件
type UserListFilter struct {
	Page        int
	PageSize    int
	Keyword     string
	Status      string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}
