// @title PDF Quiz API
// @version 1.0
// @description Upload a short PDF and take a multiple-choice quiz generated from its text.
// @contact.name API Support
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8090
// @BasePath /api
// @schemes http https
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "pdf-quiz/cmd/api/docs"
	"pdf-quiz/internal/adapter"
	"pdf-quiz/internal/adapter/llm"
	"pdf-quiz/internal/adapter/pdfreader"
	"pdf-quiz/internal/cache"
	"pdf-quiz/internal/config"
	"pdf-quiz/internal/domain"
	"pdf-quiz/internal/handler"
	"pdf-quiz/internal/logger"
	"pdf-quiz/internal/middleware"
	"pdf-quiz/internal/repository"
	"pdf-quiz/internal/service"
	"pdf-quiz/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

const defaultSessionTTL = time.Hour

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		// Process request
		err := c.Next()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get("User-Agent")),
		)

		return err
	}
}

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	if err := cfg.Validate(); err != nil {
		appLogger.Fatal("Invalid configuration", zap.Error(err))
	}

	// Initialize the model client
	generator, closeGenerator, err := llm.NewTextGenerator(context.Background(), cfg.LLM)
	if err != nil {
		appLogger.Fatal("Failed to create LLM client", zap.Error(err))
	}
	defer func() {
		if err := closeGenerator(); err != nil {
			appLogger.Warn("Failed to close LLM client", zap.Error(err))
		}
	}()
	model := cfg.LLM.Model
	if model == "" {
		model = llm.DefaultModel(cfg.LLM.Provider)
	}
	appLogger.Info("LLM client initialized", zap.String("provider", cfg.LLM.Provider), zap.String("model", model))

	// Initialize the session store
	var (
		sessions    domain.SessionRepository
		healthCache domain.Cache
	)
	switch cfg.Session.Store {
	case "redis":
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()
		appLogger.Info("Successfully connected to Redis")

		healthCache = adapter.NewRedisCacheAdapter(redisClient)
		ttl := cfg.ParseTTLStringOrDefault(cfg.Session.TTL, defaultSessionTTL)
		sessions = repository.NewCacheSessionRepository(healthCache, ttl)
		appLogger.Info("Redis session store initialized", zap.Duration("ttl", ttl))
	default:
		sessions = repository.NewMemorySessionRepository()
		appLogger.Info("In-memory session store initialized")
	}

	// Initialize services
	validator := validation.NewValidator()
	extractorService := service.NewExtractorService(pdfreader.NewOpener())
	generatorService := service.NewQuizGeneratorService(generator)
	uploadService := service.NewUploadService(validator, extractorService, generatorService, sessions, cfg.Upload)
	sessionService := service.NewSessionService(sessions)

	// Initialize handlers
	quizHandler := handler.NewQuizHandler(uploadService, sessionService)
	healthHandler := handler.NewHealthHandler(healthCache, cfg.Session.Store, cfg.LLM.Provider)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
		BodyLimit:    cfg.Upload.MaxBytes + 1024*1024, // multipart framing on top of the file
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,PUT,DELETE,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept", MaxAge: 300}))
	app.Use(recover.New())

	app.Get("/swagger/*", swagger.HandlerDefault)

	handler.RegisterRoutes(app.Group("/api"), quizHandler, healthHandler, middleware.NewValidationMiddleware(validator))

	// Start server
	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Logger.Env))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
