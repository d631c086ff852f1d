package models

import (
	"time"

	"gorm.io/gorm"
)

// User 用户模型
// 用户来自宿主聊天平台（Telegram 小程序），首次出现时自动创建，永不硬删除
type User struct {
	ID                uint           `json:"id" gorm:"primaryKey"`
	TelegramID        int64          `json:"telegram_id" gorm:"uniqueIndex;not null"` // 平台外部身份，唯一
	Username          string         `json:"username" gorm:"size:64"`
	FirstName         string         `json:"first_name" gorm:"size:64"`
	LastName          string         `json:"last_name" gorm:"size:64"`
	Language          string         `json:"language" gorm:"size:8;default:en"`
	PreferredCurrency string         `json:"preferred_currency" gorm:"size:3;default:EUR"`
	IsActive          bool           `json:"is_active" gorm:"default:true"`
	Tokens            int            `json:"tokens" gorm:"default:0"` // 代币余额，非负
	LastLoginAt       *time.Time     `json:"last_login_at"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName 设置表名
func (User) TableName() string {
	return "users"
}
