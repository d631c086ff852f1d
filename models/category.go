package models

import "time"

// Category 消费类别模型
// 由用户显式创建，名称全局唯一，icon 为单个 emoji
type Category struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:50;not null;uniqueIndex"`
	Icon      string    `json:"icon" gorm:"size:8;not null"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName 设置表名
func (Category) TableName() string {
	return "categories"
}
