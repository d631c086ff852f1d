package service

import (
	"errors"
	"log"
	"time"

	"expensor/database"
	"expensor/models"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

var (
	// ErrFetchReceipts 小票查询失败（不向调用方暴露存储层细节）
	ErrFetchReceipts = errors.New("获取小票列表失败")
	// ErrFetchFilterOptions 筛选项查询失败
	ErrFetchFilterOptions = errors.New("获取筛选项失败")
)

// 排序字段白名单，防止拼接任意列名
var sortColumns = map[string]string{
	"date":     "receipts.date",
	"total":    "receipts.total",
	"company":  "companies.name",
	"category": "categories.name",
}

// ReceiptFilters 小票筛选条件，各字段相互独立、可任意组合
// 零值视为未设置
type ReceiptFilters struct {
	CategoryID    uint    `form:"category_id"`
	CompanyID     uint    `form:"company_id"`
	DateFrom      string  `form:"date_from"` // YYYY-MM-DD，含当天
	DateTo        string  `form:"date_to"`   // YYYY-MM-DD，含当天
	MinAmount     float64 `form:"min_amount"`
	MaxAmount     float64 `form:"max_amount"`
	PaymentMethod string  `form:"payment_method"` // cash / card / both
	Search        string  `form:"search"`         // 商家名或类别名的子串匹配
}

// ReceiptSort 排序规格
type ReceiptSort struct {
	Field     string `form:"sort_field"` // date / total / company / category
	Direction string `form:"sort_dir"`  // asc / desc
}

// GetReceiptsParams 分页查询参数
type GetReceiptsParams struct {
	TelegramID int64
	Page       int // 从 1 开始
	Limit      int // 默认 30
	Filters    ReceiptFilters
	Sort       ReceiptSort
}

// CompanyRef 小票关联的商家摘要
type CompanyRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// CategoryRef 小票关联的类别摘要
type CategoryRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// ReceiptView 查询结果中的单条小票（已关联商家与类别）
type ReceiptView struct {
	ID        uint         `json:"id"`
	Date      string       `json:"date"`
	Total     float64      `json:"total"`
	Currency  string       `json:"currency"`
	PaidCash  *float64     `json:"paid_cash"`
	PaidCard  *float64     `json:"paid_card"`
	CreatedAt time.Time    `json:"created_at"`
	Company   *CompanyRef  `json:"company"`
	Category  *CategoryRef `json:"category"`
}

// PaginatedReceipts 分页查询结果
type PaginatedReceipts struct {
	Receipts   []ReceiptView `json:"receipts"`
	HasMore    bool          `json:"has_more"`
	TotalCount int64         `json:"total_count"`
	NextPage   *int          `json:"next_page"`
}

// FilterOptions 用户个人的筛选候选集：只包含该用户小票实际引用过的商家和类别
type FilterOptions struct {
	Categories []CategoryRef `json:"categories"`
	Companies  []CompanyRef  `json:"companies"`
}

// receiptRow 联表查询的扫描行，商家/类别来自 LEFT JOIN，可能为 NULL
type receiptRow struct {
	ID           uint
	Date         string
	Total        float64
	Currency     string
	PaidCash     *float64
	PaidCard     *float64
	CreatedAt    time.Time
	CompanyID    *uint
	CompanyName  *string
	CategoryID   *uint
	CategoryName *string
	CategoryIcon *string
}

func (r receiptRow) toView() ReceiptView {
	v := ReceiptView{
		ID:        r.ID,
		Date:      r.Date,
		Total:     r.Total,
		Currency:  r.Currency,
		PaidCash:  r.PaidCash,
		PaidCard:  r.PaidCard,
		CreatedAt: r.CreatedAt,
	}
	if r.CompanyID != nil {
		ref := CompanyRef{ID: *r.CompanyID}
		if r.CompanyName != nil {
			ref.Name = *r.CompanyName
		}
		v.Company = &ref
	}
	if r.CategoryID != nil {
		ref := CategoryRef{ID: *r.CategoryID}
		if r.CategoryName != nil {
			ref.Name = *r.CategoryName
		}
		if r.CategoryIcon != nil {
			ref.Icon = *r.CategoryIcon
		}
		v.Category = &ref
	}
	return v
}

// buildReceiptQuery 组装联表查询的合取谓词：始终限定到用户本人，每个给定的筛选条件各贡献一个 AND 子句
func buildReceiptQuery(userID uint, f ReceiptFilters) *gorm.DB {
	query := database.DB.Model(&models.Receipt{}).
		Joins("LEFT JOIN companies ON companies.id = receipts.company_id").
		Joins("LEFT JOIN categories ON categories.id = receipts.category_id").
		Where("receipts.user_id = ?", userID)

	if f.CategoryID > 0 {
		query = query.Where("receipts.category_id = ?", f.CategoryID)
	}
	if f.CompanyID > 0 {
		query = query.Where("receipts.company_id = ?", f.CompanyID)
	}
	// 日期为固定格式字符串，字典序比较等价于日期比较
	if f.DateFrom != "" {
		query = query.Where("receipts.date >= ?", f.DateFrom)
	}
	if f.DateTo != "" {
		query = query.Where("receipts.date <= ?", f.DateTo)
	}
	if f.MinAmount > 0 {
		query = query.Where("receipts.total >= ?", f.MinAmount)
	}
	if f.MaxAmount > 0 {
		query = query.Where("receipts.total <= ?", f.MaxAmount)
	}
	switch f.PaymentMethod {
	case "cash":
		// 全额现金：现金等于总额且刷卡为 0 或未填
		query = query.Where("receipts.paid_cash = receipts.total AND (receipts.paid_card = 0 OR receipts.paid_card IS NULL)")
	case "card":
		query = query.Where("receipts.paid_card = receipts.total AND (receipts.paid_cash = 0 OR receipts.paid_cash IS NULL)")
	}
	// payment_method=both 不附加条件：混合支付的判定标准未定，保持原样透传
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		query = query.Where("companies.name LIKE ? OR categories.name LIKE ?", pattern, pattern)
	}
	return query
}

// GetUserReceiptsPaginated 按外部用户身份分页查询小票
// 未知用户返回空结果而非错误；存储层故障统一归一为 ErrFetchReceipts
func GetUserReceiptsPaginated(p GetReceiptsParams) (*PaginatedReceipts, error) {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = 30
	}

	// 先解析外部身份到内部用户ID
	var user models.User
	err := database.DB.Select("id").Where("telegram_id = ?", p.TelegramID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// 未知用户视为"没有数据"，不是故障
		return &PaginatedReceipts{Receipts: []ReceiptView{}}, nil
	}
	if err != nil {
		log.Printf("查询用户失败: %v", err)
		return nil, ErrFetchReceipts
	}

	query := buildReceiptQuery(user.ID, p.Filters)

	// 总数必须与分页查询走同一份联表谓词
	var totalCount int64
	if err := query.Count(&totalCount).Error; err != nil {
		log.Printf("统计小票总数失败: %v", err)
		return nil, ErrFetchReceipts
	}

	column, ok := sortColumns[p.Sort.Field]
	if !ok {
		column = sortColumns["date"]
	}
	direction := "DESC"
	if p.Sort.Direction == "asc" {
		direction = "ASC"
	}

	offset := (p.Page - 1) * p.Limit
	var rows []receiptRow
	if err := query.
		Select("receipts.id, receipts.date, receipts.total, receipts.currency, receipts.paid_cash, receipts.paid_card, receipts.created_at, " +
			"companies.id AS company_id, companies.name AS company_name, " +
			"categories.id AS category_id, categories.name AS category_name, categories.icon AS category_icon").
		Order(column + " " + direction).
		// 主排序键相同的记录按创建时间倒序，保证顺序完全确定
		Order("receipts.created_at DESC").
		Offset(offset).
		Limit(p.Limit).
		Scan(&rows).Error; err != nil {
		log.Printf("查询小票列表失败: %v", err)
		return nil, ErrFetchReceipts
	}

	receipts := make([]ReceiptView, 0, len(rows))
	for _, r := range rows {
		receipts = append(receipts, r.toView())
	}

	hasMore := int64(offset+len(rows)) < totalCount
	result := &PaginatedReceipts{
		Receipts:   receipts,
		HasMore:    hasMore,
		TotalCount: totalCount,
	}
	if hasMore {
		next := p.Page + 1
		result.NextPage = &next
	}
	return result, nil
}

// GetFilterOptions 获取用户个人的筛选候选集（按名称升序）
// 两条查询相互独立，并发执行
func GetFilterOptions(telegramID int64) (*FilterOptions, error) {
	var user models.User
	err := database.DB.Select("id").Where("telegram_id = ?", telegramID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &FilterOptions{Categories: []CategoryRef{}, Companies: []CompanyRef{}}, nil
	}
	if err != nil {
		log.Printf("查询用户失败: %v", err)
		return nil, ErrFetchFilterOptions
	}

	opts := &FilterOptions{Categories: []CategoryRef{}, Companies: []CompanyRef{}}
	var g errgroup.Group
	g.Go(func() error {
		return database.DB.Model(&models.Category{}).
			Select("DISTINCT categories.id, categories.name, categories.icon").
			Joins("JOIN receipts ON receipts.category_id = categories.id").
			Where("receipts.user_id = ?", user.ID).
			Order("categories.name ASC").
			Scan(&opts.Categories).Error
	})
	g.Go(func() error {
		return database.DB.Model(&models.Company{}).
			Select("DISTINCT companies.id, companies.name").
			Joins("JOIN receipts ON receipts.company_id = companies.id").
			Where("receipts.user_id = ?", user.ID).
			Order("companies.name ASC").
			Scan(&opts.Companies).Error
	})
	if err := g.Wait(); err != nil {
		log.Printf("查询筛选项失败: %v", err)
		return nil, ErrFetchFilterOptions
	}
	return opts, nil
}
