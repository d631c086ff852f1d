package api

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"expensor/database"
	"expensor/middleware"
	"expensor/models"
	"expensor/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// 现金+刷卡与总额允许的最大偏差
const paymentSplitEpsilon = 0.01

// ReceiptHandler 小票处理器
type ReceiptHandler struct{}

// NewReceiptHandler 创建小票处理器
func NewReceiptHandler() *ReceiptHandler {
	return &ReceiptHandler{}
}

// ReceiptListRequest 小票列表请求
type ReceiptListRequest struct {
	Page  int `form:"page" example:"1"`
	Limit int `form:"limit" example:"30"`
	service.ReceiptFilters
	service.ReceiptSort
}

// ReceiptItemRequest 小票明细行
type ReceiptItemRequest struct {
	Name      string  `json:"name" example:"牛奶"`
	Quantity  float64 `json:"quantity" example:"1.5"`
	UnitPrice float64 `json:"unit_price" example:"2.30"`
	Total     float64 `json:"total" example:"3.45"`
	Currency  string  `json:"currency" example:"EUR"`
}

// CreateReceiptRequest 创建小票请求
type CreateReceiptRequest struct {
	CompanyName string               `json:"company_name" example:"Acme Corp"`
	CategoryID  uint                 `json:"category_id" example:"1"`
	Date        string               `json:"date" binding:"required" example:"2024-01-15"`
	Total       float64              `json:"total" binding:"required,gt=0" example:"42.50"`
	PaidCash    *float64             `json:"paid_cash"`
	PaidCard    *float64             `json:"paid_card"`
	Items       []ReceiptItemRequest `json:"items"`
}

// UpdateReceiptRequest 更新小票请求
type UpdateReceiptRequest struct {
	CompanyName string               `json:"company_name" example:"Acme Corp"`
	CategoryID  uint                 `json:"category_id" example:"1"`
	Date        string               `json:"date" binding:"required" example:"2024-01-15"`
	Total       float64              `json:"total" binding:"required,gt=0" example:"42.50"`
	Currency    string               `json:"currency" binding:"required" example:"EUR"`
	PaidCash    *float64             `json:"paid_cash"`
	PaidCard    *float64             `json:"paid_card"`
	Items       []ReceiptItemRequest `json:"items"`
}

// List 分页获取小票列表
// @Summary 获取小票列表
// @Description 获取当前用户的小票列表，支持类别/商家/日期区间/金额区间/支付方式/关键词筛选与排序。payment_method 取值 cash、card、both
// @Tags 小票
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(30)
// @Param category_id query int false "类别ID"
// @Param company_id query int false "商家ID"
// @Param date_from query string false "起始日期 (YYYY-MM-DD)"
// @Param date_to query string false "结束日期 (YYYY-MM-DD)"
// @Param min_amount query number false "最小金额"
// @Param max_amount query number false "最大金额"
// @Param payment_method query string false "支付方式 cash/card/both"
// @Param search query string false "商家名或类别名的关键词"
// @Param sort_field query string false "排序字段 date/total/company/category" default(date)
// @Param sort_dir query string false "排序方向 asc/desc" default(desc)
// @Success 200 {object} Response{data=service.PaginatedReceipts} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/receipts [get]
func (h *ReceiptHandler) List(c *gin.Context) {
	telegramID := middleware.GetCurrentTelegramID(c)

	var req ReceiptListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	result, err := service.GetUserReceiptsPaginated(service.GetReceiptsParams{
		TelegramID: telegramID,
		Page:       req.Page,
		Limit:      req.Limit,
		Filters:    req.ReceiptFilters,
		Sort:       req.ReceiptSort,
	})
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "获取小票列表失败"))
		return
	}

	Success(c, result)
}

// FilterOptions 获取筛选候选集
// @Summary 获取筛选候选集
// @Description 返回当前用户的小票实际引用过的类别和商家，用于构建筛选界面，按名称排序
// @Tags 小票
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=service.FilterOptions} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/receipts/filter-options [get]
func (h *ReceiptHandler) FilterOptions(c *gin.Context) {
	telegramID := middleware.GetCurrentTelegramID(c)

	opts, err := service.GetFilterOptions(telegramID)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "获取筛选项失败"))
		return
	}

	Success(c, opts)
}

// Get 获取单条小票
// @Summary 获取小票详情
// @Description 根据ID获取小票详情，包含商家、类别和全部明细行
// @Tags 小票
// @Produce json
// @Security BearerAuth
// @Param id path int true "小票ID"
// @Success 200 {object} Response{data=models.Receipt} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "小票不存在"
// @Router /api/v1/receipts/{id} [get]
func (h *ReceiptHandler) Get(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}

	var receipt models.Receipt
	if err := database.DB.
		Preload("Company").
		Preload("Category").
		Preload("Items").
		Where("id = ? AND user_id = ?", id, userID).
		First(&receipt).Error; err != nil {
		NotFound(c, "小票不存在")
		return
	}

	Success(c, receipt)
}

// Create 创建小票
// @Summary 创建小票
// @Description 创建一张小票。商家按名称去重（不存在则创建），类别必须已存在，币种默认取用户偏好，明细行随小票一并写入
// @Tags 小票
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateReceiptRequest true "小票信息"
// @Success 200 {object} Response{data=models.Receipt} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/receipts [post]
func (h *ReceiptHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req CreateReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	if msg := validateReceiptInput(req.Date, req.Total, req.PaidCash, req.PaidCard); msg != "" {
		BadRequest(c, msg)
		return
	}

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		NotFound(c, "用户不存在")
		return
	}

	companyID, err := findOrCreateCompany(req.CompanyName)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "保存商家失败"))
		return
	}

	categoryID, ok := resolveCategoryID(c, req.CategoryID)
	if !ok {
		return
	}

	receipt := models.Receipt{
		UserID:     userID,
		CompanyID:  companyID,
		CategoryID: categoryID,
		Date:       req.Date,
		Total:      req.Total,
		Currency:   user.PreferredCurrency,
		PaidCash:   req.PaidCash,
		PaidCard:   req.PaidCard,
	}
	if receipt.Currency == "" {
		receipt.Currency = "EUR"
	}

	if err := database.DB.Create(&receipt).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "创建小票失败"))
		return
	}

	items := buildItems(receipt.ID, receipt.Currency, req.Items)
	if len(items) > 0 {
		if err := database.DB.Create(&items).Error; err != nil {
			InternalError(c, SafeErrorMessage(err, "保存明细失败"))
			return
		}
		receipt.Items = items
	}

	SuccessWithMessage(c, "创建成功", receipt)
}

// Update 更新小票
// @Summary 更新小票
// @Description 更新指定小票并整体替换其明细行（先删后插，不做差量比较）
// @Tags 小票
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "小票ID"
// @Param request body UpdateReceiptRequest true "小票信息"
// @Success 200 {object} Response "更新成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "小票不存在"
// @Router /api/v1/receipts/{id} [put]
func (h *ReceiptHandler) Update(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}

	var receipt models.Receipt
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&receipt).Error; err != nil {
		NotFound(c, "小票不存在")
		return
	}

	var req UpdateReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	if msg := validateReceiptInput(req.Date, req.Total, req.PaidCash, req.PaidCard); msg != "" {
		BadRequest(c, msg)
		return
	}

	companyID, err := findOrCreateCompany(req.CompanyName)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "保存商家失败"))
		return
	}

	categoryID, ok := resolveCategoryID(c, req.CategoryID)
	if !ok {
		return
	}

	updates := map[string]interface{}{
		"company_id":  companyID,
		"category_id": categoryID,
		"date":        req.Date,
		"total":       req.Total,
		"currency":    req.Currency,
		"paid_cash":   req.PaidCash,
		"paid_card":   req.PaidCard,
	}
	if err := database.DB.Model(&receipt).Updates(updates).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "更新小票失败"))
		return
	}

	// 明细整体替换：先删后插
	if err := database.DB.Where("receipt_id = ?", receipt.ID).Delete(&models.Item{}).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "更新明细失败"))
		return
	}
	items := buildItems(receipt.ID, req.Currency, req.Items)
	if len(items) > 0 {
		if err := database.DB.Create(&items).Error; err != nil {
			InternalError(c, SafeErrorMessage(err, "更新明细失败"))
			return
		}
	}

	SuccessWithMessage(c, "更新成功", nil)
}

// Delete 删除小票
// @Summary 删除小票
// @Description 删除指定小票及其全部明细行
// @Tags 小票
// @Produce json
// @Security BearerAuth
// @Param id path int true "小票ID"
// @Success 200 {object} Response "删除成功"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "小票不存在"
// @Router /api/v1/receipts/{id} [delete]
func (h *ReceiptHandler) Delete(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}

	var receipt models.Receipt
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&receipt).Error; err != nil {
		NotFound(c, "小票不存在")
		return
	}

	if err := database.DB.Where("receipt_id = ?", receipt.ID).Delete(&models.Item{}).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "删除失败"))
		return
	}
	if err := database.DB.Delete(&receipt).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "删除失败"))
		return
	}

	SuccessWithMessage(c, "删除成功", nil)
}

// validateReceiptInput 校验日期格式、金额和支付拆分，返回出错提示，为空表示通过
func validateReceiptInput(date string, total float64, paidCash, paidCard *float64) string {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return "日期格式错误，应为: 2006-01-02"
	}
	if total <= 0 {
		return "总金额必须大于 0"
	}
	if paidCash != nil && *paidCash < 0 {
		return "现金金额不能为负"
	}
	if paidCard != nil && *paidCard < 0 {
		return "刷卡金额不能为负"
	}
	// 两种支付方式都填写时，两者之和应与总额一致
	if paidCash != nil && paidCard != nil {
		if math.Abs(*paidCash+*paidCard-total) > paymentSplitEpsilon {
			return "现金与刷卡金额之和与总额不符"
		}
	}
	return ""
}

// findOrCreateCompany 商家按名称去重：存在则复用，不存在则创建
// 名称唯一索引会拒绝并发下重复的插入，此处不做额外处理
func findOrCreateCompany(name string) (*uint, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}

	var company models.Company
	err := database.DB.Where("name = ?", name).First(&company).Error
	if err == nil {
		return &company.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	company = models.Company{Name: name}
	if err := database.DB.Create(&company).Error; err != nil {
		return nil, err
	}
	return &company.ID, nil
}

// resolveCategoryID 校验类别存在性；校验失败时已写入响应，返回 ok=false
func resolveCategoryID(c *gin.Context, categoryID uint) (*uint, bool) {
	if categoryID == 0 {
		return nil, true
	}
	var category models.Category
	if err := database.DB.First(&category, categoryID).Error; err != nil {
		BadRequest(c, "无效的类别")
		return nil, false
	}
	return &category.ID, true
}

// buildItems 过滤掉无效明细行（空名称、非正数量或单价），补齐币种
func buildItems(receiptID uint, currency string, reqItems []ReceiptItemRequest) []models.Item {
	var items []models.Item
	for _, item := range reqItems {
		name := strings.TrimSpace(item.Name)
		if name == "" || item.Quantity <= 0 || item.UnitPrice <= 0 {
			continue
		}
		itemCurrency := item.Currency
		if itemCurrency == "" {
			itemCurrency = currency
		}
		items = append(items, models.Item{
			ReceiptID: receiptID,
			Name:      name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Total:     item.Total,
			Currency:  itemCurrency,
		})
	}
	return items
}
