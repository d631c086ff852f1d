package api

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strconv"

	"expensor/config"
	"expensor/middleware"
	"expensor/models"
	"expensor/service"

	"github.com/gin-gonic/gin"
	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
)

// Stripe webhook 请求体上限
const webhookMaxBodyBytes = 65536

// TokenHandler 代币购买处理器
type TokenHandler struct {
	cfg *config.Config
}

// NewTokenHandler 创建代币处理器
func NewTokenHandler(cfg *config.Config) *TokenHandler {
	return &TokenHandler{cfg: cfg}
}

// CheckoutRequest 创建支付会话请求
type CheckoutRequest struct {
	PackageID string `json:"package_id" binding:"required" example:"tokens_50"`
}

// CheckoutResponse 创建支付会话响应
type CheckoutResponse struct {
	URL string `json:"url"`
}

// ListPackages 获取代币套餐列表
// @Summary 获取代币套餐列表
// @Description 返回可购买的代币套餐（固定列表），金额单位为分
// @Tags 代币
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]models.TokenPackage} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/tokens/packages [get]
func (h *TokenHandler) ListPackages(c *gin.Context) {
	Success(c, models.GetTokenPackages())
}

// CreateCheckout 创建代币支付会话
// @Summary 创建代币支付会话
// @Description 为指定套餐创建 Stripe Checkout 会话并返回支付页 URL，支付完成后由 webhook 给用户入账
// @Tags 代币
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CheckoutRequest true "套餐"
// @Success 200 {object} Response{data=CheckoutResponse} "创建成功"
// @Failure 400 {object} Response "套餐不存在或支付未启用"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/tokens/checkout [post]
func (h *TokenHandler) CreateCheckout(c *gin.Context) {
	telegramID := middleware.GetCurrentTelegramID(c)

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	url, err := service.CreateCheckoutSession(h.cfg, telegramID, req.PackageID)
	if err != nil {
		switch err {
		case service.ErrStripeDisabled:
			BadRequest(c, "支付功能未启用")
		case service.ErrUnknownPackage:
			BadRequest(c, "代币套餐不存在")
		default:
			InternalError(c, SafeErrorMessage(err, "创建支付会话失败"))
		}
		return
	}

	Success(c, CheckoutResponse{URL: url})
}

// StripeWebhook Stripe 回调
// @Summary Stripe 支付回调
// @Description 校验 Stripe 签名，支付完成事件按会话 metadata 给对应用户入账代币。无需登录，由签名保证来源
// @Tags 代币
// @Accept json
// @Produce json
// @Success 200 {object} Response "处理成功"
// @Failure 400 {object} Response "签名校验失败"
// @Router /api/v1/stripe/webhook [post]
func (h *TokenHandler) StripeWebhook(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, webhookMaxBodyBytes)
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		BadRequest(c, "读取请求失败")
		return
	}

	event, err := webhook.ConstructEvent(payload, c.GetHeader("Stripe-Signature"), h.cfg.Stripe.WebhookSecret)
	if err != nil {
		log.Printf("Stripe webhook 签名校验失败: %v", err)
		BadRequest(c, "签名校验失败")
		return
	}

	if event.Type != "checkout.session.completed" {
		// 其他事件直接确认，避免 Stripe 反复重试
		Success(c, nil)
		return
	}

	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		log.Printf("解析 checkout.session 失败: %v", err)
		BadRequest(c, "事件格式错误")
		return
	}

	telegramID, err1 := strconv.ParseInt(session.Metadata["telegram_id"], 10, 64)
	tokens, err2 := strconv.Atoi(session.Metadata["tokens"])
	if err1 != nil || err2 != nil || tokens <= 0 {
		log.Printf("checkout.session metadata 不完整: %v", session.Metadata)
		BadRequest(c, "metadata 不完整")
		return
	}

	newBalance, err := service.AddTokens(telegramID, tokens)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "代币入账失败"))
		return
	}

	log.Printf("代币入账成功: telegram_id=%d +%d 余额=%d", telegramID, tokens, newBalance)
	Success(c, nil)
}
