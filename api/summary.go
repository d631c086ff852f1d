package api

import (
	"expensor/database"
	"expensor/middleware"
	"expensor/models"

	"github.com/gin-gonic/gin"
)

// SummaryHandler 统计处理器
type SummaryHandler struct{}

// NewSummaryHandler 创建统计处理器
func NewSummaryHandler() *SummaryHandler {
	return &SummaryHandler{}
}

// SpendSummaryResponse 消费汇总返回
type SpendSummaryResponse struct {
	TotalSpend   float64 `json:"total_spend" example:"1234.56"` // 区间内总消费
	ReceiptCount int64   `json:"receipt_count" example:"42"`    // 区间内小票数
}

// GetSpendSummary 获取消费汇总
// @Summary 获取消费汇总
// @Description 统计当前用户在日期区间内的总消费和小票数。不传 date_from/date_to 则统计全部时间
// @Tags 统计
// @Produce json
// @Security BearerAuth
// @Param date_from query string false "起始日期 (YYYY-MM-DD)"
// @Param date_to query string false "结束日期 (YYYY-MM-DD)"
// @Success 200 {object} Response{data=SpendSummaryResponse} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/statistics/summary [get]
func (h *SummaryHandler) GetSpendSummary(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	dateFrom := c.Query("date_from")
	dateTo := c.Query("date_to")

	query := database.DB.Model(&models.Receipt{}).Where("user_id = ?", userID)
	if dateFrom != "" {
		query = query.Where("date >= ?", dateFrom)
	}
	if dateTo != "" {
		query = query.Where("date <= ?", dateTo)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "统计失败"))
		return
	}

	var totalSpend float64
	if err := query.Select("COALESCE(SUM(total), 0)").Scan(&totalSpend).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "统计失败"))
		return
	}

	Success(c, SpendSummaryResponse{
		TotalSpend:   totalSpend,
		ReceiptCount: count,
	})
}
