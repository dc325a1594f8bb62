package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"uni-cmcs/internal/adapters/http/middleware"
	"uni-cmcs/internal/adapters/http/routes"
	"uni-cmcs/internal/adapters/persistence/models"
	"uni-cmcs/internal/adapters/persistence/repositories"
	"uni-cmcs/internal/config"
	"uni-cmcs/internal/core/services"
	"uni-cmcs/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// @title Contract Monthly Claim System API
// @version 1.0
// @description Monthly claim submission, validation and approval for contract lecturers.

// @contact.name API Support

// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logger.Init(cfg.LogLevel); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer config.CloseDatabase()

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		logger.Fatal("failed to auto migrate", zap.Error(err))
	}
	logger.Info("database migration completed")

	// Seed claim statuses and roles
	if err := config.SeedMasterData(db); err != nil {
		logger.Warn("failed to seed master data", zap.Error(err))
	}
	if cfg.IsDev() {
		if err := config.SeedAdminUser(db); err != nil {
			logger.Warn("failed to seed admin user", zap.Error(err))
		}
	}

	// Nightly jobs: auto-approval sweep and token cleanup
	claimRepo := repositories.NewClaimRepository(db)
	statusRepo := repositories.NewStatusRepository(db)
	docRepo := repositories.NewDocumentRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	claimService := services.NewClaimService(db, claimRepo, statusRepo, docRepo)

	cronService := services.NewCronService(claimService, claimRepo, statusRepo, refreshTokenRepo)
	cronService.Start()
	defer cronService.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Contract Monthly Claim System API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
		BodyLimit:    12 << 20,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db and cfg for dependency injection)
	routes.Setup(app, db, cfg)

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	logger.Info("server starting", zap.String("port", cfg.Port), zap.String("mode", cfg.AppMode))
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	if err := app.Shutdown(); err != nil {
		logger.Error("error during shutdown", zap.Error(err))
	}
	logger.Info("server stopped gracefully")
}
