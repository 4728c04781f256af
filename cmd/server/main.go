package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/template/html/v2"
	"github.com/joho/godotenv"

	"github.com/restomenu/restomenu/internal/config"
	"github.com/restomenu/restomenu/internal/database"
	"github.com/restomenu/restomenu/internal/dto"
	"github.com/restomenu/restomenu/internal/handlers"
	"github.com/restomenu/restomenu/internal/logging"
	"github.com/restomenu/restomenu/internal/middleware"
	"github.com/restomenu/restomenu/internal/routes"
	"github.com/restomenu/restomenu/internal/services"
)

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	if err := godotenv.Load(); err == nil {
		slog.Info("loaded environment from .env")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration failed", "error", err)
		os.Exit(1)
	}
	if cfg.GoogleClientID == "" {
		slog.Error("GOOGLE_CLIENT_ID (or GOOGLE_CLIENT_SECRETS) is required")
		os.Exit(1)
	}

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// DB log handler (ERROR+ async batch)
	dbLogHandler := logging.NewDBHandler(database.DB)
	slog.SetDefault(slog.New(logging.NewMultiHandler(
		slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		dbLogHandler,
	)))

	// Log retention cleanup
	cleanupDone := make(chan struct{})
	logging.StartCleanup(database.DB, cfg.LogRetention, cleanupDone)

	// Sessions
	store := middleware.NewSessionStore(cfg)

	// Services
	googleClient := services.NewGoogleClient(cfg)
	userService := services.NewUserService(database.DB)
	restaurantService := services.NewRestaurantService(database.DB)
	menuService := services.NewMenuService(database.DB)
	authService := services.NewAuthService(googleClient, userService)

	// Handlers
	restaurantHandler := handlers.NewRestaurantHandler(restaurantService, store)
	menuHandler := handlers.NewMenuHandler(restaurantService, menuService, store)
	apiHandler := handlers.NewAPIHandler(restaurantService, menuService)
	authHandler := handlers.NewAuthHandler(authService, store, cfg.GoogleClientID)
	healthHandler := handlers.NewHealthHandler()

	// Sentry error tracking
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         dsn,
			Environment: os.Getenv("APP_ENV"),
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	engine := html.New("./views", ".html")
	app := fiber.New(fiber.Config{
		Views:        engine,
		ViewsLayout:  "layouts/main",
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: errorHandler,
	})

	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		return c.Next()
	})

	// Routes
	routes.Setup(app, store, restaurantHandler, menuHandler, apiHandler, authHandler, healthHandler)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	close(cleanupDone)
	dbLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	if sqlDB, err := database.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("server stopped")
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error",
			"method", c.Method(),
			"path", c.Path(),
			"request_id", c.GetRespHeader(fiber.HeaderXRequestID),
			"error", err.Error(),
		)
		message = "Internal server error"
	}

	return c.Status(code).JSON(dto.ErrorResponse{
		Error:   true,
		Message: message,
	})
}
