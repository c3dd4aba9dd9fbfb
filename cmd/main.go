package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"tradeportal/internal/caching"
	"tradeportal/internal/config"
	"tradeportal/internal/handlers"
	"tradeportal/internal/jobs/background"
	"tradeportal/internal/middleware"
	"tradeportal/internal/repositories"
	"tradeportal/internal/services"
	"tradeportal/pkg/database"
)

const version = "1.0.0"

func main() {
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if cfg.DatabaseURL == "" {
		logger.Fatal("DATABASE_URL environment variable is required")
	}
	if cfg.TradersAPIKey == "" {
		logger.Warn("TRADERS_API_KEY is not set; the trader API will refuse requests")
	}

	ctx := context.Background()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	// Cache
	cacheSvc := caching.NewRedisCacheService(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, logger)

	// Upload archive
	archiveSvc, err := services.NewMinioArchiveService(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioUseSSL)
	if err != nil {
		logger.Fatal("failed to initialize upload archive", zap.Error(err))
	}
	if err := archiveSvc.EnsureBucketExists(ctx); err != nil {
		logger.Warn("upload archive bucket unavailable; imports will not be archived", zap.Error(err))
	}

	// Repositories
	traderRepo := repositories.NewTraderRepo(pool)
	taskRepo := repositories.NewTaskRepo(pool)

	// Services
	traderSvc := services.NewTraderService(traderRepo, taskRepo, cacheSvc, logger)
	importSvc := services.NewImportService(traderRepo, cacheSvc, archiveSvc, logger)
	exportSvc := services.NewExportService(traderSvc)
	taskSvc := services.NewTaskService(taskRepo, traderRepo, cacheSvc, logger)

	// Handlers
	traderHandlers := handlers.NewTraderHandlers(traderSvc, importSvc, exportSvc)
	taskHandlers := handlers.NewTaskHandlers(taskSvc)
	apiHandlers := handlers.NewAPIHandlers(traderSvc)
	apiKey := middleware.NewAPIKeyMiddleware(cfg.TradersAPIKey)

	e := echo.New()
	e.HideBanner = true

	e.Pre(echoMiddleware.RemoveTrailingSlash())
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())

	// Health endpoints
	e.GET("/health", handlers.HealthCheck)
	e.GET("/health/ready", func(c echo.Context) error {
		return handlers.ReadinessCheck(c, pool)
	})

	// Portal routes
	v1 := e.Group("/v1")
	branch := v1.Group("/branches/:branchId")
	branch.GET("/traders", traderHandlers.ListTraders)
	branch.POST("/traders", traderHandlers.CreateTrader)
	branch.GET("/traders/export", traderHandlers.ExportTraders)
	branch.POST("/traders/import", traderHandlers.ImportTraders)
	branch.POST("/traders/financials", traderHandlers.FinancialBulkUpdate)
	branch.POST("/traders/bulk/delete", traderHandlers.BulkDeleteTraders)
	branch.GET("/traders/:id", traderHandlers.GetTrader)
	branch.PUT("/traders/:id", traderHandlers.UpdateTrader)
	branch.DELETE("/traders/:id", traderHandlers.DeleteTrader)
	branch.GET("/traders/:id/tasks", taskHandlers.ListTasks)
	branch.POST("/tasks", taskHandlers.CreateTask)
	branch.PUT("/tasks/:taskId", taskHandlers.UpdateTask)
	branch.DELETE("/tasks/:taskId", taskHandlers.DeleteTask)

	// Machine-to-machine API
	e.GET("/api/traders/:branchId", apiHandlers.GetTraders, apiKey.Require())

	// Background jobs
	scheduler, err := background.NewJobScheduler(traderRepo, cacheSvc, logger)
	if err != nil {
		logger.Fatal("failed to create job scheduler", zap.Error(err))
	}
	scheduler.Start()
	defer scheduler.Stop()

	go func() {
		logger.Info("trade portal starting", zap.String("version", version), zap.String("addr", cfg.HTTPAddr))
		if err := e.Start(cfg.HTTPAddr); err != nil {
			logger.Info("server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
