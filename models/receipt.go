package models

import "time"

// Receipt 小票模型
// 必须属于一个用户；商家、类别为可空外键，父记录删除时不影响小票本身
type Receipt struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	UserID     uint      `json:"user_id" gorm:"index;not null"`
	CompanyID  *uint     `json:"company_id" gorm:"index"`
	CategoryID *uint     `json:"category_id" gorm:"index"`
	Date       string    `json:"date" gorm:"size:10;not null;index"` // 日历日期，固定 YYYY-MM-DD 格式，字符串比较即日期比较
	Total      float64   `json:"total" gorm:"type:decimal(10,2);not null"`
	Currency   string    `json:"currency" gorm:"size:3;not null;default:EUR"`
	PaidCash   *float64  `json:"paid_cash" gorm:"type:decimal(10,2)"`
	PaidCard   *float64  `json:"paid_card" gorm:"type:decimal(10,2)"`
	CreatedAt  time.Time `json:"created_at" gorm:"index"`
	UpdatedAt  time.Time `json:"updated_at"`
	User       User      `json:"-" gorm:"foreignKey:UserID"`
	Company    *Company  `json:"company,omitempty" gorm:"foreignKey:CompanyID"`
	Category   *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Items      []Item    `json:"items,omitempty" gorm:"foreignKey:ReceiptID;constraint:OnDelete:CASCADE"`
}

// TableName 设置表名
func (Receipt) TableName() string {
	return "receipts"
}
