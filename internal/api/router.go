package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/time/rate"

	"github.com/melxagency/rmoneyok/internal/api/handler"
	"github.com/melxagency/rmoneyok/internal/api/middleware"
	"github.com/melxagency/rmoneyok/internal/core/domain"
	"github.com/melxagency/rmoneyok/internal/core/service"
	"github.com/melxagency/rmoneyok/internal/infrastructure/config"
	mongodb "github.com/melxagency/rmoneyok/internal/infrastructure/db/mongo"
	redisdb "github.com/melxagency/rmoneyok/internal/infrastructure/db/redis"
	"github.com/melxagency/rmoneyok/internal/infrastructure/email"
	"github.com/melxagency/rmoneyok/pkg/logger"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	log := logger.Get()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("rmoney"))

	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	clientRepo := mongodb.NewClientRepository(db)
	orderRepo := mongodb.NewOrderRepository(db)
	leadRepo := mongodb.NewLeadRepository(db)
	catalogRepo := mongodb.NewCatalogRepository(db)
	roleRepo := mongodb.NewRoleRepository(db)
	checkoutStore := redisdb.NewCheckoutStore(rdb, cfg.Redis.SessionTTL)
	verificationSender := email.NewSender(cfg.Email.Endpoint, cfg.Email.Token)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL, log)
	clientService := service.NewClientService(clientRepo, verificationSender, cfg.JWTSecret, cfg.TokenTTL, log)
	checkoutService := service.NewCheckoutService(checkoutStore, catalogRepo, orderRepo, log)
	orderService := service.NewOrderService(orderRepo, log)
	leadService := service.NewLeadService(leadRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	clientHandler := handler.NewClientHandler(clientService)
	checkoutHandler := handler.NewCheckoutHandler(checkoutService)
	orderHandler := handler.NewOrderHandler(orderService)
	leadHandler := handler.NewLeadHandler(leadService)
	catalogHandler := handler.NewCatalogHandler(catalogRepo)
	adminHandler := handler.NewAdminHandler(authService, roleRepo)
	healthHandler := handler.NewHealthHandler(db, rdb)

	authRequired := middleware.Auth(cfg.JWTSecret)
	operatorOnly := middleware.RequireIdentity(domain.IdentityOperator)

	// Keeps anonymous order and lead submissions from being scripted.
	publicWriteLimit := echomiddleware.RateLimiter(
		echomiddleware.NewRateLimiterMemoryStore(rate.Limit(5)),
	)

	// --- Health probes and operational endpoints ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Public catalog ---
	e.GET("/offers", catalogHandler.Offers)
	e.POST("/offers/quote", catalogHandler.Quote)
	e.GET("/provinces", catalogHandler.Provinces)
	e.GET("/provinces/:name/municipalities", catalogHandler.Municipalities)
	e.GET("/municipalities/:name/availability", catalogHandler.Availability)
	e.GET("/payment-methods", catalogHandler.PaymentMethods)

	// --- Checkout flow ---
	checkout := e.Group("/checkout")
	checkout.POST("", checkoutHandler.Start, publicWriteLimit)
	checkout.GET("/:id", checkoutHandler.Get)
	checkout.PUT("/:id/sender", checkoutHandler.SetSender)
	checkout.PUT("/:id/receiver", checkoutHandler.SetReceiver)
	checkout.PUT("/:id/collection", checkoutHandler.SetCollection)
	checkout.POST("/:id/advance", checkoutHandler.Advance)
	checkout.POST("/:id/back", checkoutHandler.Back)
	checkout.GET("/:id/currencies", checkoutHandler.CurrencyOptions)
	checkout.POST("/:id/submit", checkoutHandler.Submit, publicWriteLimit)

	// --- Public tracking and leads ---
	e.GET("/tracking/:token", orderHandler.Track)
	e.POST("/leads", leadHandler.Create, publicWriteLimit)

	// --- Authentication ---
	e.POST("/auth/login", authHandler.Login)
	e.POST("/clients/register", clientHandler.Register, publicWriteLimit)
	e.POST("/clients/login", clientHandler.Login)
	e.GET("/clients/verify", clientHandler.VerifyEmail)
	e.POST("/clients/verify/resend", clientHandler.ResendVerification, publicWriteLimit)

	// --- Back office ---
	admin := e.Group("/admin", authRequired, operatorOnly)

	admin.GET("/orders", orderHandler.List)
	admin.PUT("/orders/:id/status", orderHandler.UpdateStatus)
	admin.PUT("/orders/:id/payment", orderHandler.UpdatePayment)

	admin.GET("/leads", leadHandler.List)
	admin.PUT("/leads/:id/status", leadHandler.UpdateStatus)

	admin.POST("/users", adminHandler.CreateUser)
	admin.GET("/users", adminHandler.ListUsers)
	admin.PUT("/users/:id", adminHandler.UpdateUser)
	admin.DELETE("/users/:id", adminHandler.DeleteUser)

	admin.GET("/roles", adminHandler.ListRoles)
	admin.POST("/roles", adminHandler.CreateRole)
	admin.PUT("/roles/:id", adminHandler.UpdateRole)
	admin.DELETE("/roles/:id", adminHandler.DeleteRole)

	admin.GET("/permissions", adminHandler.ListPermissions)
	admin.GET("/permissions/by-role/:role", adminHandler.PermissionByRole)
	admin.POST("/permissions", adminHandler.CreatePermission)
	admin.PUT("/permissions/:id", adminHandler.UpdatePermission)
	admin.DELETE("/permissions/:id", adminHandler.DeletePermission)

	admin.GET("/menus/:role", adminHandler.MenuByRole)

	return e
}
