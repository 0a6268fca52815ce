package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/pressuremap-backend-go/internal/handler"
	"github.com/jengzang/pressuremap-backend-go/internal/middleware"
	"github.com/jengzang/pressuremap-backend-go/internal/service"
)

// Services bundles everything the router wires to handlers
type Services struct {
	Pressure *service.PressureService
	Heatmap  *service.HeatmapService
	History  *service.HistoryService
	Devices  *service.DeviceService
	Limiter  *middleware.RateLimiter // optional
}

// SetupRouter 设置路由
func SetupRouter(svc Services) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger())

	// CORS 中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	if svc.Limiter != nil {
		r.Use(middleware.RateLimit(svc.Limiter))
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Pressure Map API is running",
		})
	})

	pressureHandler := handler.NewPressureHandler(svc.Pressure)
	heatmapHandler := handler.NewHeatmapHandler(svc.Heatmap)
	historyHandler := handler.NewHistoryHandler(svc.History)
	deviceHandler := handler.NewDeviceHandler(svc.Devices)

	api := r.Group("/api/v1")
	{
		api.POST("/devices/pair", deviceHandler.PostPair)

		authed := api.Group("", middleware.Auth(svc.Devices))
		{
			authed.GET("/pressure", pressureHandler.GetPressure)
			authed.GET("/predictions", pressureHandler.GetPredictions)

			authed.GET("/heatmap", heatmapHandler.GetHeatmap)
			authed.GET("/heatmap.png", heatmapHandler.GetHeatmapImage)
			authed.GET("/heatmap/palette", heatmapHandler.GetPalette)
			authed.POST("/heatmap/intensity", heatmapHandler.PostIntensity)

			history := authed.Group("/history")
			{
				history.GET("", historyHandler.GetHistory)
				history.GET("/stats", historyHandler.GetStatistics)
			}
		}
	}

	return r
}
