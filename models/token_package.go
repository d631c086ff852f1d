package models

// TokenPackage 代币套餐
// 固定套餐列表，Amount 为美分计价的支付金额
type TokenPackage struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Quantity int    `json:"quantity"`
	Amount   int64  `json:"amount"`  // 单位：分
	Popular  bool   `json:"popular"` // 标记为最划算
}

// GetTokenPackages 获取所有代币套餐
func GetTokenPackages() []TokenPackage {
	return []TokenPackage{
		{ID: "tokens_10", Label: "🎟️ 10 Tokens", Quantity: 10, Amount: 299},
		{ID: "tokens_20", Label: "🎟️ 20 Tokens", Quantity: 20, Amount: 499},
		{ID: "tokens_50", Label: "🎟️ 50 Tokens", Quantity: 50, Amount: 999, Popular: true},
		{ID: "tokens_70", Label: "🎟️ 70 Tokens", Quantity: 70, Amount: 1299},
		{ID: "tokens_100", Label: "🎟️ 100 Tokens", Quantity: 100, Amount: 1599},
	}
}

// FindTokenPackage 按 ID 查找代币套餐，不存在返回 nil
func FindTokenPackage(id string) *TokenPackage {
	for _, p := range GetTokenPackages() {
		if p.ID == id {
			return &p
		}
	}
	return nil
}
