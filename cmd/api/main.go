package main

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/quantumcloud/quantumcloud-backend/internal/config"
	"github.com/quantumcloud/quantumcloud-backend/internal/controller"
	"github.com/quantumcloud/quantumcloud-backend/internal/handler"
	"github.com/quantumcloud/quantumcloud-backend/internal/middleware"
	"github.com/quantumcloud/quantumcloud-backend/internal/repository"
	"github.com/quantumcloud/quantumcloud-backend/internal/service"
	"github.com/quantumcloud/quantumcloud-backend/pkg/database"
	"github.com/quantumcloud/quantumcloud-backend/pkg/email"
	jwtPkg "github.com/quantumcloud/quantumcloud-backend/pkg/jwt"
	"github.com/quantumcloud/quantumcloud-backend/pkg/payment"
	"github.com/quantumcloud/quantumcloud-backend/pkg/storage"
	"github.com/quantumcloud/quantumcloud-backend/pkg/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	cfg := config.LoadConfig()

	zapLogger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer zapLogger.Sync()

	db, err := database.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		zapLogger.Fatal("database connection failed", zap.Error(err))
	}

	if err := database.RunMigrations(db); err != nil {
		zapLogger.Fatal("database migration failed", zap.Error(err))
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	settingsRepo := repository.NewUserSettingsRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)

	// Provider clients, constructed once per process
	tokens := jwtPkg.NewTokenManager(cfg.JWT.Secret, cfg.JWT.Issuer)
	emailService := email.NewEmailService(cfg, zapLogger)
	stripeService := payment.NewStripeService(cfg.Stripe.SecretKey)

	exportStorage, err := storage.NewExportStorage(cfg.ExportStorage)
	if err != nil {
		zapLogger.Fatal("export storage init failed", zap.Error(err))
	}

	// Services
	authService := service.NewAuthService(userRepo, emailService, tokens, zapLogger)
	oauthService := service.NewOAuthService(cfg, userRepo, tokens, zapLogger)
	userService := service.NewUserService(userRepo, settingsRepo, subscriptionRepo, emailService, exportStorage, tokens, zapLogger)
	identityVerifier := service.NewTokenIdentityVerifier(tokens)
	checkoutService := service.NewCheckoutService(identityVerifier, stripeService, cfg.Stripe)
	billingService := service.NewBillingService(subscriptionRepo, zapLogger)

	validator := utils.NewValidator()

	// Controllers
	authController := controller.NewAuthController(authService, oauthService)
	billingController := controller.NewBillingController(checkoutService, billingService)

	// Handlers
	authHandler := handler.NewAuthHandler(authController, validator)
	userHandler := handler.NewUserHandler(userService, validator)
	planHandler := handler.NewPlanHandler()
	checkoutHandler := handler.NewCheckoutHandler(billingController)
	billingHandler := handler.NewBillingHandler(billingController, cfg.Stripe.WebhookSecret, zapLogger)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		// The checkout endpoint answers its own preflight and headers.
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/api/billing/checkout"
		},
		AllowOrigins: cfg.FrontendURL + ", " + config.DefaultFrontendOrigin,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))
	app.Use(logger.New())
	app.Use(limiter.New(limiter.Config{
		Max:        20,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
	}))

	api := app.Group("/api")

	// Public routes
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/verify-email", authHandler.VerifyEmail)
	auth.Post("/resend-verification", authHandler.ResendVerification)
	auth.Post("/forgot-password", authHandler.ForgotPassword)
	auth.Post("/reset-password", authHandler.ResetPassword)
	auth.Post("/verify-email-change", userHandler.CompleteEmailChange)
	auth.Get("/oauth/:provider", authHandler.OAuthRedirect)
	auth.Get("/oauth/:provider/callback", authHandler.OAuthCallback)

	api.Get("/plans", planHandler.GetPlans)

	// Checkout does its own auth so the preflight probe and the error
	// contract stay exactly as the frontend expects.
	api.Options("/billing/checkout", checkoutHandler.Preflight)
	api.Post("/billing/checkout", checkoutHandler.CreateCheckoutSession)

	// Stripe webhook (public, signature verified)
	api.Post("/billing/webhook", billingHandler.HandleStripeWebhook)

	// Protected routes
	api.Use(middleware.AuthMiddleware(tokens))
	{
		user := api.Group("/user")
		user.Get("/profile", userHandler.GetMyProfile)
		user.Put("/profile", userHandler.UpdateProfile)
		user.Post("/change-password", userHandler.ChangePassword)
		user.Post("/change-email", userHandler.InitiateEmailChange)
		user.Get("/settings", userHandler.GetSettings)
		user.Put("/settings", userHandler.UpdateSettings)
		user.Post("/export", userHandler.ExportData)
		user.Delete("/", userHandler.DeleteAccount)

		billing := api.Group("/billing")
		billing.Get("/history", billingHandler.GetPurchaseHistory)
	}

	zapLogger.Info("starting server", zap.String("port", cfg.Port))
	if err := app.Listen(":" + cfg.Port); err != nil {
		zapLogger.Fatal("server stopped", zap.Error(err))
	}
}
