package service

import (
	"errors"
	"fmt"
	"log"
	"strconv"

	"expensor/config"
	"expensor/models"

	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
)

var (
	// ErrStripeDisabled Stripe 未启用或未配置密钥
	ErrStripeDisabled = errors.New("支付功能未启用")
	// ErrUnknownPackage 代币套餐不存在
	ErrUnknownPackage = errors.New("代币套餐不存在")
)

// CreateCheckoutSession 为指定代币套餐创建 Stripe Checkout 支付会话，返回支付页 URL
// 支付完成后 Stripe 重定向回 bot 的 deep link，代币到账由 webhook 负责
func CreateCheckoutSession(cfg *config.Config, telegramID int64, packageID string) (string, error) {
	if !cfg.Stripe.Enabled || cfg.Stripe.SecretKey == "" {
		return "", ErrStripeDisabled
	}

	pack := models.FindTokenPackage(packageID)
	if pack == nil {
		return "", ErrUnknownPackage
	}

	stripe.Key = cfg.Stripe.SecretKey

	currency := cfg.Stripe.Currency
	if currency == "" {
		currency = "eur"
	}

	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String(fmt.Sprintf("%s for Expensor Bot", pack.Label)),
						Description: stripe.String(fmt.Sprintf("Purchase of %d tokens", pack.Quantity)),
					},
					UnitAmount: stripe.Int64(pack.Amount),
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(fmt.Sprintf("https://t.me/%s?start=payment_done", cfg.Telegram.BotUsername)),
		CancelURL:  stripe.String(fmt.Sprintf("https://t.me/%s?start=payment_cancelled", cfg.Telegram.BotUsername)),
	}
	// webhook 通过 metadata 找回用户和代币数量
	params.AddMetadata("telegram_id", strconv.FormatInt(telegramID, 10))
	params.AddMetadata("tokens", strconv.Itoa(pack.Quantity))

	s, err := session.New(params)
	if err != nil {
		log.Printf("创建 Stripe Checkout 会话失败: %v", err)
		return "", fmt.Errorf("创建支付会话失败: %w", err)
	}
	return s.URL, nil
}
