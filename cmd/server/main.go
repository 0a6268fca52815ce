package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/pressuremap-backend-go/internal/api"
	"github.com/jengzang/pressuremap-backend-go/internal/config"
	"github.com/jengzang/pressuremap-backend-go/internal/database"
	"github.com/jengzang/pressuremap-backend-go/internal/heatmap"
	"github.com/jengzang/pressuremap-backend-go/internal/middleware"
	"github.com/jengzang/pressuremap-backend-go/internal/repository"
	"github.com/jengzang/pressuremap-backend-go/internal/service"
	"github.com/jengzang/pressuremap-backend-go/internal/simulator"
	log "github.com/sirupsen/logrus"
)

func main() {
	// 加载配置
	cfg := config.Load()
	log.SetLevel(cfg.LogLevel)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	if cfg.LogLevel < log.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 初始化数据库
	if cfg.DBPath != database.MemoryPath {
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
			log.WithError(err).Fatal("Failed to create database directory")
		}
	}
	if err := database.Init(database.Config{Path: cfg.DBPath}); err != nil {
		log.WithError(err).Fatal("Failed to initialize database")
	}
	defer database.Close()

	historyRepo := repository.NewHistoryRepository(database.GetDB())
	historyService := service.NewHistoryService(historyRepo)

	provider := simulator.NewProvider(nil)
	if _, err := historyService.Seed(ctx, provider, time.Now()); err != nil {
		log.WithError(err).Fatal("Failed to seed history")
	}

	feed := &simulator.Feed{}
	runner := &simulator.Runner{
		Provider:           provider,
		Feed:               feed,
		Sink:               historyRepo,
		PressureInterval:   cfg.PressureInterval,
		PredictionInterval: cfg.PredictionInterval,
	}
	simDone := make(chan struct{})
	go func() {
		runner.Run(ctx)
		close(simDone)
	}()

	pressureService := service.NewPressureService(feed)
	surface := heatmap.SurfaceDimensions{Width: cfg.SurfaceWidth, Height: cfg.SurfaceHeight}

	// 初始化路由
	router := api.SetupRouter(api.Services{
		Pressure: pressureService,
		Heatmap:  service.NewHeatmapService(pressureService, surface),
		History:  historyService,
		Devices:  service.NewDeviceService(cfg.JWTSecret, cfg.TokenTTL),
		Limiter:  middleware.NewRateLimiter(ctx, cfg.RateLimit, cfg.RateWindow),
	})

	srv := &http.Server{
		Addr:              cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Error("Server shutdown failed")
		}
	}()

	// 启动服务器
	log.WithField("port", cfg.Port).Info("Server starting")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.WithError(err).Fatal("Failed to start server")
	}

	<-simDone
	log.Info("Server stopped")
}
