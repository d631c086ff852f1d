package api

import (
	"strings"
	"unicode/utf8"

	"expensor/database"
	"expensor/models"

	"github.com/gin-gonic/gin"
	"github.com/rivo/uniseg"
)

// CategoryHandler 消费类别处理器
type CategoryHandler struct{}

// NewCategoryHandler 创建类别处理器
func NewCategoryHandler() *CategoryHandler {
	return &CategoryHandler{}
}

// CategoryCreateRequest 创建类别请求
type CategoryCreateRequest struct {
	Name string `json:"name" binding:"required,min=2,max=50" example:"日用品"`
	Icon string `json:"icon" binding:"required" example:"🧺"`
}

// List 列出所有类别
// @Summary 获取类别列表
// @Description 获取全部消费类别，按名称排序
// @Tags 类别
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]models.Category} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	var list []models.Category
	if err := database.DB.Order("name ASC").Find(&list).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询类别失败"))
		return
	}
	Success(c, list)
}

// Create 创建类别
// @Summary 创建消费类别
// @Description 创建新的消费类别，名称全局唯一，icon 为单个 emoji
// @Tags 类别
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CategoryCreateRequest true "类别信息"
// @Success 200 {object} Response{data=models.Category} "创建成功"
// @Failure 400 {object} Response "参数错误或类别名称已存在"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	var req CategoryCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Icon = strings.TrimSpace(req.Icon)
	if utf8.RuneCountInString(req.Name) < 2 {
		BadRequest(c, "类别名称至少 2 个字符")
		return
	}
	// 组合 emoji（ZWJ 序列、键帽等）是多个码点、单个字素簇，按字素簇数校验
	if uniseg.GraphemeClusterCount(req.Icon) != 1 || utf8.RuneCountInString(req.Icon) > 8 {
		BadRequest(c, "icon 应为单个 emoji")
		return
	}

	// 名称全局唯一
	var existing models.Category
	if err := database.DB.Where("name = ?", req.Name).First(&existing).Error; err == nil {
		BadRequest(c, "类别名称已存在")
		return
	}

	category := models.Category{Name: req.Name, Icon: req.Icon}
	if err := database.DB.Create(&category).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "创建类别失败"))
		return
	}

	SuccessWithMessage(c, "创建成功", category)
}
