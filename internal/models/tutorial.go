package models

import (
	"time"

	"gorm.io/gorm"
)

// 视频来源类型
const (
	TutorialVideoTypeEmbed  = "embed"  // 外部嵌入链接
	TutorialVideoTypeUpload = "upload" // 站内上传
)

// Tutorial 视频教程表
type Tutorial struct {
	ID          uint           `gorm:"primarykey" json:"id"`                                 // 主键
	Title       string         `gorm:"not null" json:"title"`                                // 标题
	Description string         `gorm:"type:text" json:"description"`                         // 简介
	VideoURL    string         `gorm:"type:varchar(500);not null" json:"video_url"`          // 视频地址
	VideoType   string         `gorm:"type:varchar(20);not null;default:'embed'" json:"video_type"` // 视频来源类型
	Thumbnail   string         `gorm:"type:varchar(500)" json:"thumbnail"`                   // 封面图
	Category    string         `gorm:"index" json:"category"`                                // 教程分类
	Duration    string         `gorm:"type:varchar(20)" json:"duration"`                     // 时长
	IsFree      bool           `gorm:"default:true" json:"is_free"`                          // 是否免费
	IsActive    bool           `gorm:"default:true;index" json:"is_active"`                  // 是否发布
	SortOrder   int            `gorm:"default:0;index" json:"sort_order"`                    // 排序权重
	ViewCount   int64          `gorm:"not null;default:0" json:"view_count"`                 // 播放次数
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                              // 创建时间
	UpdatedAt   time.Time      `json:"updated_at"`                                           // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                       // 软删除时间
}

// TableName 指定表名
func (Tutorial) TableName() string {
	return "tutorials"
}
