package api

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"expensor/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenHandler_ListPackages(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(setAuthContext(1, 123456))
	router.GET("/tokens/packages", NewTokenHandler(&config.Config{}).ListPackages)

	req := httptest.NewRequest("GET", "/tokens/packages", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp struct {
		Data []struct {
			ID       string `json:"id"`
			Quantity int    `json:"quantity"`
			Amount   int64  `json:"amount"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 5)
	for _, p := range resp.Data {
		assert.NotEmpty(t, p.ID)
		assert.Greater(t, p.Quantity, 0)
		assert.Greater(t, p.Amount, int64(0))
	}
}

func TestTokenHandler_CreateCheckout_Disabled(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	router := gin.New()
	router.Use(setAuthContext(1, 123456))
	router.POST("/tokens/checkout", NewTokenHandler(cfg).CreateCheckout)

	body := `{"package_id":"tokens_50"}`
	req := httptest.NewRequest("POST", "/tokens/checkout", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), "支付功能未启用")
}

func TestTokenHandler_CreateCheckout_UnknownPackage(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.Stripe.Enabled = true
	cfg.Stripe.SecretKey = "sk_test_xxx"
	router := gin.New()
	router.Use(setAuthContext(1, 123456))
	router.POST("/tokens/checkout", NewTokenHandler(cfg).CreateCheckout)

	body := `{"package_id":"no-such-package"}`
	req := httptest.NewRequest("POST", "/tokens/checkout", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), "代币套餐不存在")
}

func TestTokenHandler_StripeWebhook_BadSignature(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.Stripe.WebhookSecret = "whsec_test"
	router := gin.New()
	router.POST("/stripe/webhook", NewTokenHandler(cfg).StripeWebhook)

	// 没有合法的 Stripe-Signature 头
	body := `{"type":"checkout.session.completed"}`
	req := httptest.NewRequest("POST", "/stripe/webhook", bytes.NewBufferString(body))
	req.Header.Set("Stripe-Signature", "t=123,v1=bad")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), "签名校验失败")
}
