package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	pkgvalidator "github.com/meetpulse-team/meetpulse/pkg/validator"

	"github.com/meetpulse-team/meetpulse/internal/adapter/handler"
	"github.com/meetpulse-team/meetpulse/internal/adapter/repository"
	"github.com/meetpulse-team/meetpulse/internal/buffer"
	"github.com/meetpulse-team/meetpulse/internal/infrastructure/cache"
	"github.com/meetpulse-team/meetpulse/internal/infrastructure/database"
	"github.com/meetpulse-team/meetpulse/internal/usecase/summary"
	"github.com/meetpulse-team/meetpulse/internal/usecase/task"
	"github.com/meetpulse-team/meetpulse/internal/usecase/transcript"
	pkgai "github.com/meetpulse-team/meetpulse/pkg/ai"
	"github.com/meetpulse-team/meetpulse/pkg/config"
	"github.com/meetpulse-team/meetpulse/pkg/jwt"
)

// @title           MeetPulse API
// @version         1.0
// @description     Transcript buffering and task detection API for live meetings

// @BasePath  /v1

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

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = false

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	// Initialize dependencies
	log.Println("Initializing dependencies...")

	logger, err := zap.NewProduction()
	if cfg.Server.Environment != "production" {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize Database
	log.Println("Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	// Run migrations only when explicitly enabled in config.
	// Production deployments should manage schema via sql-migrate in CI/CD.
	if cfg.Database.AutoMigrate {
		if cfg.Server.Environment == "production" {
			log.Fatalf("AutoMigrate is enabled in production. Disable DB_AUTO_MIGRATE or manage schema with sql-migrate.")
		}
		log.Println("Applying SQL migrations (development only)...")
		if err := database.AutoMigrate(db); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
	} else {
		log.Println("Skipping migrations; use sql-migrate for schema migrations in CI/CD/production")
	}

	// Initialize Redis
	log.Println("Connecting to Redis...")
	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	// Initialize repositories
	log.Println("Initializing repositories...")
	meetingRepo := repository.NewMeetingRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	summaryRepo := repository.NewSummaryRepository(db)

	// Initialize the transcript buffer registry
	buffers := buffer.NewRegistry(cfg.Buffer.WindowMillis, logger)

	// Initialize summary generation
	groqClient := pkgai.NewGroqClient(&cfg.Groq)
	summaryService := summary.NewService(buffers, summaryRepo, meetingRepo, groqClient, logger)

	// Initialize transcript service with summary generation as the
	// completion trigger
	transcriptService := transcript.NewService(buffers, meetingRepo, summaryService, logger)

	// Initialize task detection service with Redis fan-out
	publisher := cache.NewRedisPublisher(redisClient)
	taskService := task.NewService(taskRepo, publisher, cache.NewMemoryStore(), logger)

	// Initialize JWT manager for reader-facing endpoints
	jwtManager := jwt.NewManager(cfg.JWT.AccessSecret, cfg.JWT.AccessExpiry)

	// Initialize handlers
	log.Println("Initializing handlers...")
	transcriptHandler := handler.NewTranscriptHandler(transcriptService, logger)
	taskHandler := handler.NewTaskHandler(transcriptService, taskService, logger)

	// Setup router with handlers
	log.Println("Setting up routes...")
	router := handler.NewRouter(cfg, transcriptHandler, taskHandler, jwtManager)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("Starting server on %s", addr)
		log.Printf("Environment: %s", cfg.Server.Environment)
		log.Printf("Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped gracefully")
}
