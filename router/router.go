package router

import (
	"time"

	"expensor/api"
	"expensor/config"
	_ "expensor/docs"
	"expensor/middleware"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config) *gin.Engine {
	// 设置运行模式
	gin.SetMode(cfg.Server.Mode)

	r := gin.Default()

	// CORS 中间件
	r.Use(CORSMiddleware())

	// Swagger 文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API v1 路由组（供 Telegram 小程序前端使用）
	v1 := r.Group("/api/v1")
	{
		// 认证（无需登录，每 IP 每分钟限 20 次）
		authHandler := api.NewAuthHandler(cfg)
		v1.POST("/auth/telegram",
			middleware.AuthRateLimit(20, time.Minute),
			authHandler.TelegramLogin)

		// Stripe 回调（无需登录，来源由签名保证）
		tokenHandler := api.NewTokenHandler(cfg)
		v1.POST("/stripe/webhook", tokenHandler.StripeWebhook)

		// 需要 JWT 认证的接口
		auth := v1.Group("")
		auth.Use(middleware.JWTAuth())
		{
			// 小票
			receiptHandler := api.NewReceiptHandler()
			auth.GET("/receipts", receiptHandler.List)
			auth.GET("/receipts/filter-options", receiptHandler.FilterOptions)
			auth.GET("/receipts/:id", receiptHandler.Get)
			auth.POST("/receipts", receiptHandler.Create)
			auth.PUT("/receipts/:id", receiptHandler.Update)
			auth.DELETE("/receipts/:id", receiptHandler.Delete)

			// 类别
			categoryHandler := api.NewCategoryHandler()
			auth.GET("/categories", categoryHandler.List)
			auth.POST("/categories", categoryHandler.Create)

			// 用户资料
			profileHandler := api.NewProfileHandler()
			auth.GET("/profile", profileHandler.Get)
			auth.PUT("/profile", profileHandler.Update)

			// 代币
			auth.GET("/tokens/packages", tokenHandler.ListPackages)
			auth.POST("/tokens/checkout", tokenHandler.CreateCheckout)

			// 导出
			exportHandler := api.NewExportHandler()
			auth.GET("/export/csv", exportHandler.ExportCSV)
			auth.GET("/export/excel", exportHandler.ExportExcel)

			// 统计
			summaryHandler := api.NewSummaryHandler()
			auth.GET("/statistics/summary", summaryHandler.GetSpendSummary)
		}
	}

	return r
}

// CORSMiddleware 跨域中间件
// 小程序 WebView 直接请求本服务，放开跨域
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
