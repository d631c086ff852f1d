package models

// Item 小票明细模型
// 随小票级联删除；数量允许小数（按重量计价的商品）
type Item struct {
	ID        uint    `json:"id" gorm:"primaryKey"`
	ReceiptID uint    `json:"receipt_id" gorm:"index;not null"`
	Name      string  `json:"name" gorm:"size:100;not null"`
	Quantity  float64 `json:"quantity" gorm:"type:decimal(10,3);not null"`
	UnitPrice float64 `json:"unit_price" gorm:"type:decimal(10,2);not null"`
	Total     float64 `json:"total" gorm:"type:decimal(10,2);not null"` // 客户端计算的行小计，约等于 quantity*unit_price
	Currency  string  `json:"currency" gorm:"size:3;not null;default:EUR"`
}

// TableName 设置表名
func (Item) TableName() string {
	return "items"
}
