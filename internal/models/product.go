package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// StringArray 字符串数组类型，用于存储 images 等
type StringArray []string

// Value 实现 driver.Valuer 接口
func (s StringArray) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal(s)
}

// Scan 实现 sql.Scanner 接口
func (s *StringArray) Scan(value interface{}) error {
	if value == nil {
		*s = StringArray{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, s)
}

// SpecPair 商品规格键值对
type SpecPair struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// SpecList 有序规格列表（JSON 数组存储，保留录入顺序）
type SpecList []SpecPair

// Value 实现 driver.Valuer 接口
func (s SpecList) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal(s)
}

// Scan 实现 sql.Scanner 接口
func (s *SpecList) Scan(value interface{}) error {
	if value == nil {
		*s = SpecList{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, s)
}

// 商品类型：physical 参与库存扣减，digital 无库存概念
const (
	ProductTypePhysical = "physical"
	ProductTypeDigital  = "digital"
)

// Product 商品表
type Product struct {
	ID             uint           `gorm:"primarykey" json:"id"`                                // 主键
	CategoryID     uint           `gorm:"not null;index" json:"category_id"`                   // 分类ID
	Slug           string         `gorm:"uniqueIndex;not null" json:"slug"`                    // 唯一标识
	Name           string         `gorm:"not null" json:"name"`                                // 商品名称
	Description    string         `gorm:"type:text" json:"description"`                        // 商品描述
	ProductType    string         `gorm:"default:'physical';index" json:"product_type"`        // 商品类型
	Price          Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"`  // 标价
	DiscountPrice  *Money         `gorm:"type:decimal(20,2)" json:"discount_price,omitempty"`  // 折扣价（为空表示无折扣）
	Images         StringArray    `gorm:"type:json" json:"images"`                             // 图片数组
	Specifications SpecList       `gorm:"type:json" json:"specifications"`                     // 规格列表（有序）
	StockQuantity  int            `gorm:"not null;default:0" json:"stock_quantity"`            // 库存数量
	IsActive       bool           `gorm:"default:true;index" json:"is_active"`                 // 是否上架
	IsFeatured     bool           `gorm:"default:false;index" json:"is_featured"`              // 是否精选
	SortOrder      int            `gorm:"default:0;index" json:"sort_order"`                   // 排序权重
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`                             // 创建时间
	UpdatedAt      time.Time      `json:"updated_at"`                                          // 更新时间
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`                                      // 软删除时间

	// 关联
	Category Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"` // 分类信息
}

// IsPhysical 是否实物商品，历史数据类型为空时按实物处理
func (p *Product) IsPhysical() bool {
	return p.ProductType != ProductTypeDigital
}

// EffectivePrice 实际售价：折扣价存在且低于标价时取折扣价
func (p *Product) EffectivePrice() Money {
	if p.DiscountPrice != nil && p.DiscountPrice.Decimal.LessThan(p.Price.Decimal) {
		return *p.DiscountPrice
	}
	return p.Price
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}
