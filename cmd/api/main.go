package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/tyreshoppe/shopdesk-api/internal/application/service"
	"github.com/tyreshoppe/shopdesk-api/internal/config"
	"github.com/tyreshoppe/shopdesk-api/internal/infrastructure/database"
	"github.com/tyreshoppe/shopdesk-api/internal/infrastructure/repository"
	"github.com/tyreshoppe/shopdesk-api/internal/presentation/http/handler"
	"github.com/tyreshoppe/shopdesk-api/internal/presentation/http/routes"
	"github.com/tyreshoppe/shopdesk-api/pkg/catalog"
	"github.com/tyreshoppe/shopdesk-api/pkg/email"
	"github.com/tyreshoppe/shopdesk-api/pkg/oauth"
	"github.com/tyreshoppe/shopdesk-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	billingRepo := repository.NewBillingRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)
	passwordResetRepo := repository.NewPasswordResetTokenRepository(db)

	// Initialize the upstream catalog client
	catalogClient := catalog.NewClient(cfg.Catalog.BaseURL, cfg.Catalog.Timeout)

	// Initialize email service
	emailService := email.NewService(email.Config{
		SMTPHost:     cfg.Email.SMTPHost,
		SMTPPort:     cfg.Email.SMTPPort,
		SMTPUsername: cfg.Email.SMTPUsername,
		SMTPPassword: cfg.Email.SMTPPassword,
		FromName:     cfg.Email.FromName,
		FromEmail:    cfg.Email.FromEmail,
		FrontendURL:  cfg.Email.FrontendURL,
	})

	// Initialize Google OAuth service
	googleOAuthService := oauth.NewGoogleService(oauth.GoogleConfig{
		ClientID:           cfg.OAuth.GoogleClientID,
		ClientSecret:       cfg.OAuth.GoogleClientSecret,
		RedirectURL:        cfg.OAuth.GoogleRedirectURL,
		FrontendSuccessURL: cfg.OAuth.FrontendSuccessURL,
		FrontendErrorURL:   cfg.OAuth.FrontendErrorURL,
	})

	// Initialize services
	authService := service.NewAuthService(userRepo, passwordResetRepo, jwtManager, emailService, googleOAuthService)
	billingService := service.NewBillingService(billingRepo, notificationRepo, catalogClient, emailService)
	invoiceService := service.NewInvoiceService(billingRepo)
	catalogService := service.NewCatalogService(catalogClient, notificationRepo)
	orderService := service.NewOrderService(catalogClient, notificationRepo)
	notificationService := service.NewNotificationService(notificationRepo)
	reportService := service.NewReportService(billingRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:         handler.NewAuthHandler(authService),
		Billing:      handler.NewBillingHandler(billingService, invoiceService),
		Catalog:      handler.NewCatalogHandler(catalogService),
		Order:        handler.NewOrderHandler(orderService),
		Notification: handler.NewNotificationHandler(notificationService),
		Report:       handler.NewReportHandler(reportService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}
