package api

import (
	"expensor/database"
	"expensor/middleware"
	"expensor/models"
	"expensor/service"

	"github.com/gin-gonic/gin"
)

// ProfileHandler 用户资料处理器
type ProfileHandler struct{}

// NewProfileHandler 创建用户资料处理器
func NewProfileHandler() *ProfileHandler {
	return &ProfileHandler{}
}

// UpdateProfileRequest 更新用户偏好请求
type UpdateProfileRequest struct {
	Language          string `json:"language" binding:"omitempty,min=2,max=8" example:"zh"`
	PreferredCurrency string `json:"preferred_currency" binding:"omitempty,len=3" example:"EUR"`
}

// Get 获取当前用户资料
// @Summary 获取用户资料
// @Description 获取当前用户的资料，包含语言、偏好币种和代币余额
// @Tags 用户
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=models.User} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "用户不存在"
// @Router /api/v1/profile [get]
func (h *ProfileHandler) Get(c *gin.Context) {
	telegramID := middleware.GetCurrentTelegramID(c)

	user, err := service.GetByTelegramID(telegramID)
	if err != nil {
		if err == service.ErrUserNotFound {
			NotFound(c, "用户不存在")
			return
		}
		InternalError(c, SafeErrorMessage(err, "获取用户资料失败"))
		return
	}

	Success(c, user)
}

// Update 更新用户偏好
// @Summary 更新用户偏好
// @Description 更新当前用户的界面语言和偏好币种
// @Tags 用户
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateProfileRequest true "用户偏好"
// @Success 200 {object} Response{data=models.User} "更新成功"
// @Failure 400 {object} Response "参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/profile [put]
func (h *ProfileHandler) Update(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		NotFound(c, "用户不存在")
		return
	}

	updates := make(map[string]interface{})
	if req.Language != "" {
		updates["language"] = req.Language
	}
	if req.PreferredCurrency != "" {
		updates["preferred_currency"] = req.PreferredCurrency
	}
	if len(updates) == 0 {
		Success(c, user)
		return
	}

	if err := database.DB.Model(&user).Updates(updates).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "更新用户资料失败"))
		return
	}

	SuccessWithMessage(c, "更新成功", user)
}
