package api

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"expensor/database"
	"expensor/middleware"
	"expensor/models"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ExportHandler 导出处理器
type ExportHandler struct{}

// NewExportHandler 创建导出处理器
func NewExportHandler() *ExportHandler {
	return &ExportHandler{}
}

// exportRow 导出用的联表行
type exportRow struct {
	ID           uint
	Date         string
	Total        float64
	Currency     string
	PaidCash     *float64
	PaidCard     *float64
	CreatedAt    time.Time
	CompanyName  *string
	CategoryName *string
}

// 查询日期区间内当前用户的小票（含商家、类别名），新日期在前
func queryExportRows(userID uint, dateFrom, dateTo string) ([]exportRow, error) {
	var rows []exportRow
	err := database.DB.Model(&models.Receipt{}).
		Select("receipts.id, receipts.date, receipts.total, receipts.currency, receipts.paid_cash, receipts.paid_card, receipts.created_at, "+
			"companies.name AS company_name, categories.name AS category_name").
		Joins("LEFT JOIN companies ON companies.id = receipts.company_id").
		Joins("LEFT JOIN categories ON categories.id = receipts.category_id").
		Where("receipts.user_id = ? AND receipts.date >= ? AND receipts.date <= ?", userID, dateFrom, dateTo).
		Order("receipts.date DESC").
		Order("receipts.created_at DESC").
		Scan(&rows).Error
	return rows, err
}

func parseExportRange(c *gin.Context) (string, string, bool) {
	dateFrom := c.Query("date_from")
	dateTo := c.Query("date_to")
	if dateFrom == "" || dateTo == "" {
		BadRequest(c, "请提供起始日期和结束日期")
		return "", "", false
	}
	if _, err := time.Parse("2006-01-02", dateFrom); err != nil {
		BadRequest(c, "起始日期格式错误，应为: 2006-01-02")
		return "", "", false
	}
	if _, err := time.Parse("2006-01-02", dateTo); err != nil {
		BadRequest(c, "结束日期格式错误，应为: 2006-01-02")
		return "", "", false
	}
	return dateFrom, dateTo, true
}

func strOrDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

func amountOrDash(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f", *v)
}

// ExportCSV 导出小票为 CSV
// @Summary 导出小票为 CSV
// @Description 按日期区间导出当前用户的小票为 CSV 文件
// @Tags 导出
// @Produce text/csv
// @Security BearerAuth
// @Param date_from query string true "起始日期 (2024-01-01)"
// @Param date_to query string true "结束日期 (2024-12-31)"
// @Success 200 {file} file "CSV 文件"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/export/csv [get]
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	dateFrom, dateTo, ok := parseExportRange(c)
	if !ok {
		return
	}

	rows, err := queryExportRows(userID, dateFrom, dateTo)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "查询数据失败"))
		return
	}

	// 生成 CSV
	buf := new(bytes.Buffer)
	// 添加 BOM 以支持 Excel 中文显示
	buf.WriteString("\xEF\xBB\xBF")

	writer := csv.NewWriter(buf)

	// 写入表头
	headers := []string{"ID", "日期", "商家", "类别", "总额", "币种", "现金", "刷卡", "创建时间"}
	if err := writer.Write(headers); err != nil {
		InternalError(c, "生成 CSV 失败")
		return
	}

	// 写入数据
	for _, row := range rows {
		record := []string{
			fmt.Sprintf("%d", row.ID),
			row.Date,
			strOrDash(row.CompanyName),
			strOrDash(row.CategoryName),
			fmt.Sprintf("%.2f", row.Total),
			row.Currency,
			amountOrDash(row.PaidCash),
			amountOrDash(row.PaidCard),
			row.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if err := writer.Write(record); err != nil {
			InternalError(c, "生成 CSV 失败")
			return
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		InternalError(c, "生成 CSV 失败")
		return
	}

	// 设置响应头
	filename := fmt.Sprintf("receipts_%s_%s.csv", dateFrom, dateTo)
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Header("Content-Length", fmt.Sprintf("%d", buf.Len()))

	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// ExportExcel 导出小票为 Excel
// @Summary 导出小票为 Excel
// @Description 按日期区间导出当前用户的小票为 xlsx 文件
// @Tags 导出
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param date_from query string true "起始日期 (2024-01-01)"
// @Param date_to query string true "结束日期 (2024-12-31)"
// @Success 200 {file} file "Excel 文件"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/export/excel [get]
func (h *ExportHandler) ExportExcel(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	dateFrom, dateTo, ok := parseExportRange(c)
	if !ok {
		return
	}

	rows, err := queryExportRows(userID, dateFrom, dateTo)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "查询数据失败"))
		return
	}

	// 创建 Excel 文件
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "小票记录"
	f.SetSheetName("Sheet1", sheetName)

	// 设置表头样式
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	})

	// 数据样式
	dataStyle, _ := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	})

	// 设置列宽
	f.SetColWidth(sheetName, "A", "A", 8)
	f.SetColWidth(sheetName, "B", "B", 12)
	f.SetColWidth(sheetName, "C", "D", 20)
	f.SetColWidth(sheetName, "E", "H", 10)
	f.SetColWidth(sheetName, "I", "I", 20)

	// 写入表头
	headers := []string{"ID", "日期", "商家", "类别", "总额", "币种", "现金", "刷卡", "创建时间"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	// 写入数据
	for i, row := range rows {
		values := []interface{}{
			row.ID,
			row.Date,
			strOrDash(row.CompanyName),
			strOrDash(row.CategoryName),
			row.Total,
			row.Currency,
			amountOrDash(row.PaidCash),
			amountOrDash(row.PaidCard),
			row.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		for j, value := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			f.SetCellValue(sheetName, cell, value)
			f.SetCellStyle(sheetName, cell, cell, dataStyle)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		InternalError(c, "生成 Excel 失败")
		return
	}

	filename := fmt.Sprintf("receipts_%s_%s.xlsx", dateFrom, dateTo)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Header("Content-Length", fmt.Sprintf("%d", buf.Len()))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
