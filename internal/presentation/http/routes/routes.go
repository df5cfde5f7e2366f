package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tyreshoppe/shopdesk-api/internal/config"
	domainRepo "github.com/tyreshoppe/shopdesk-api/internal/domain/repository"
	"github.com/tyreshoppe/shopdesk-api/internal/presentation/http/handler"
	"github.com/tyreshoppe/shopdesk-api/internal/presentation/http/middleware"
	"github.com/tyreshoppe/shopdesk-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth         *handler.AuthHandler
	Billing      *handler.BillingHandler
	Catalog      *handler.CatalogHandler
	Order        *handler.OrderHandler
	Notification *handler.NotificationHandler
	Report       *handler.ReportHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-user rate limiter
		rateLimiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/register", h.Auth.Register)
		auth.POST("/refresh", h.Auth.RefreshToken)
		auth.POST("/forgot-password", h.Auth.ForgotPassword)
		auth.POST("/reset-password", h.Auth.ResetPassword)
		// Google OAuth routes
		auth.GET("/google", h.Auth.GoogleLogin)
		auth.GET("/google/callback", h.Auth.GoogleCallback)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Profile routes
	protected.GET("/profile", h.Auth.Me)
	protected.PUT("/profile", h.Auth.UpdateProfile)
	protected.PUT("/profile/password", h.Auth.ChangePassword)

	registerBillingRoutes(protected, h, deps)
	registerCatalogRoutes(protected, h, deps)
	registerOrderRoutes(protected, h, deps)
	registerNotificationRoutes(protected, h)
	registerReportRoutes(protected, h)
}

func registerBillingRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	billing := protected.Group("/billing")
	{
		billing.GET("/active", h.Billing.ActiveSession)
		billing.GET("/sessions", h.Billing.ListSessions)
		billing.GET("/sessions/:id", h.Billing.GetSession)
		billing.PATCH("/sessions/:id", h.Billing.UpdateSession)

		billing.POST("/sessions/:id/lines", h.Billing.AddLine)
		billing.POST("/sessions/:id/lines/catalog", h.Billing.AddCatalogLine)
		billing.PUT("/sessions/:id/lines/:lineId", h.Billing.UpdateLine)
		billing.DELETE("/sessions/:id/lines/:lineId", h.Billing.RemoveLine)
		billing.DELETE("/sessions/:id/lines", h.Billing.ClearCart)

		billing.POST("/sessions/:id/preview", h.Billing.OpenPreview)
		billing.DELETE("/sessions/:id/preview", h.Billing.ClosePreview)

		// Finalize requires an idempotency key to prevent duplicate submits
		billing.POST("/sessions/:id/finalize", middleware.IdempotencyRequired(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Billing.Finalize)
		billing.POST("/sessions/:id/complete", h.Billing.Complete)

		billing.GET("/sessions/:id/invoice", h.Billing.GetInvoice)
		billing.GET("/sessions/:id/invoice/pdf", h.Billing.ExportInvoicePDF)
	}
}

func registerCatalogRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Keyed requests replay their stored response instead of hitting the
	// upstream platform twice.
	stock := protected.Group("/stock")
	stock.Use(middleware.Idempotency(middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo}))
	{
		stock.GET("", h.Catalog.FetchStock)
		stock.POST("/own", h.Catalog.AddOwnTyre)
	}
}

func registerOrderRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	idem := middleware.Idempotency(middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo})

	orders := protected.Group("/orders")
	orders.Use(idem)
	{
		orders.GET("", h.Order.ListOrders)
		orders.POST("/complete", h.Order.CompleteTyreOrder)
		orders.POST("/appointments/complete", h.Order.CompleteAppointment)
	}

	requests := protected.Group("/tyre-requests")
	requests.Use(idem)
	{
		requests.GET("", h.Order.ListTyreRequests)
		requests.POST("", h.Order.CreateTyreRequest)
	}
}

func registerNotificationRoutes(protected *gin.RouterGroup, h *Handlers) {
	notifications := protected.Group("/notifications")
	{
		notifications.GET("", h.Notification.List)
		notifications.GET("/:id", h.Notification.Get)
		notifications.PUT("/:id/read", h.Notification.MarkRead)
	}
}

func registerReportRoutes(protected *gin.RouterGroup, h *Handlers) {
	reports := protected.Group("/reports")
	reports.Use(middleware.RequireRole("admin"))
	{
		reports.GET("/invoices/export", h.Report.InvoiceRegister)
	}
}
