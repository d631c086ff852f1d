package models

import "time"

// Company 商家模型
// 商家名称全局去重，首次被小票引用时惰性创建，创建后不再修改或删除
type Company struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:100;not null;uniqueIndex"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName 设置表名
func (Company) TableName() string {
	return "companies"
}
