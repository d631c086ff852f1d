package api

import (
	"time"

	"expensor/config"
	"expensor/middleware"
	"expensor/models"
	"expensor/service"

	"github.com/gin-gonic/gin"
)

// initData 有效期，配置为 0 或负数时不校验 auth_date
func initDataExpire(hours int) time.Duration {
	if hours <= 0 {
		return 0
	}
	return time.Duration(hours) * time.Hour
}

// AuthHandler 认证处理器
// 身份由宿主平台（Telegram 小程序）提供，本服务只校验 initData 签名并换发会话 token
type AuthHandler struct {
	cfg *config.Config
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(cfg *config.Config) *AuthHandler {
	return &AuthHandler{cfg: cfg}
}

// TelegramLoginRequest Telegram 登录请求
type TelegramLoginRequest struct {
	InitData string `json:"init_data" binding:"required"`
}

// TelegramLoginResponse Telegram 登录响应
type TelegramLoginResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// TelegramLogin Telegram 小程序登录
// @Summary Telegram 小程序登录
// @Description 校验小程序 initData 签名，首次出现的用户自动创建，返回 JWT 和用户资料
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body TelegramLoginRequest true "initData 原文"
// @Success 200 {object} Response{data=TelegramLoginResponse} "登录成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "initData 校验失败"
// @Router /api/v1/auth/telegram [post]
func (h *AuthHandler) TelegramLogin(c *gin.Context) {
	var req TelegramLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	expireIn := initDataExpire(h.cfg.Telegram.InitDataExpireHours)
	tgUser, err := service.ValidateInitData(req.InitData, h.cfg.Telegram.BotToken, expireIn)
	if err != nil {
		Unauthorized(c, SafeErrorMessage(err, "身份校验失败"))
		return
	}

	// 首次出现的外部身份自动建档，老用户刷新资料和最后登录时间
	user, err := service.FindOrCreateByTelegram(tgUser)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "登录失败"))
		return
	}
	if !user.IsActive {
		Unauthorized(c, "账号已停用")
		return
	}

	token, err := middleware.GenerateToken(user.ID, user.TelegramID, h.cfg.JWT.ExpireTime)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "生成会话失败"))
		return
	}

	SuccessWithMessage(c, "登录成功", TelegramLoginResponse{Token: token, User: user})
}
