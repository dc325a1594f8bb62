package routes

import (
	"uni-cmcs/internal/adapters/http/handlers"
	"uni-cmcs/internal/adapters/http/middleware"
	"uni-cmcs/internal/adapters/persistence/repositories"
	"uni-cmcs/internal/config"
	"uni-cmcs/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	roleRepo := repositories.NewRoleRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	claimRepo := repositories.NewClaimRepository(db)
	statusRepo := repositories.NewStatusRepository(db)
	docRepo := repositories.NewDocumentRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, refreshTokenRepo, cfg)
	userService := services.NewUserService(userRepo, roleRepo)
	claimService := services.NewClaimService(db, claimRepo, statusRepo, docRepo)
	approvalService := services.NewApprovalService(claimRepo, statusRepo, docRepo)
	reportService := services.NewReportService(claimRepo, statusRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, userService)
	userHandler := handlers.NewUserHandler(userService)
	claimHandler := handlers.NewClaimHandler(claimService, approvalService)
	reportHandler := handlers.NewReportHandler(reportService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	apiV1 := app.Group("/api/v1")

	// Auth routes
	auth := apiV1.Group("/auth")
	auth.Post("/register", middleware.AuthRateLimiter(), authHandler.Register)
	auth.Post("/login", middleware.AuthRateLimiter(), authHandler.Login)
	auth.Post("/refresh", middleware.AuthRateLimiter(), authHandler.Refresh)
	auth.Post("/logout", authHandler.Logout)
	auth.Post("/logout-all", middleware.AuthMiddleware(cfg), authHandler.LogoutAll)

	// Claim routes
	claims := apiV1.Group("/claims", middleware.AuthMiddleware(cfg))
	claims.Post("/", middleware.LecturerOnly(), claimHandler.Submit)
	claims.Get("/", claimHandler.List)
	claims.Post("/validate-entries", claimHandler.ValidateEntries)
	claims.Get("/:id", claimHandler.GetByID)
	claims.Post("/:id/documents", middleware.LecturerOnly(), claimHandler.AttachDocument)
	claims.Post("/:id/process", middleware.ReviewerOnly(), claimHandler.Process)
	claims.Post("/:id/status", middleware.ReviewerOnly(), claimHandler.UpdateStatus)

	// User routes
	users := apiV1.Group("/users", middleware.AuthMiddleware(cfg))
	users.Get("/profile", userHandler.GetProfile)
	users.Put("/profile", userHandler.UpdateProfile)
	users.Post("/check-duplicate", middleware.ManagerOnly(), userHandler.CheckDuplicate)
	users.Post("/", middleware.ManagerOnly(), userHandler.AddLecturer)
	users.Get("/", middleware.ManagerOnly(), userHandler.List)

	// Report routes
	reports := apiV1.Group("/reports", middleware.AuthMiddleware(cfg), middleware.ReviewerOnly())
	reports.Get("/claims", reportHandler.ClaimsReport)
	reports.Get("/claims/:id/invoice", reportHandler.Invoice)
}
