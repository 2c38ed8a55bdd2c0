package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"flytau/api/routes"
	"flytau/internal/lifecycle"
	"flytau/internal/notifications"
	"flytau/internal/shared/config"
	"flytau/internal/shared/database"
	"flytau/pkg/logger"
	"flytau/pkg/ratelimit"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	appLogger := logger.GetDefault()

	if err := godotenv.Load(); err != nil {
		if os.Getenv("GIN_MODE") == "release" || os.Getenv("DOCKER_CONTAINER") == "true" {
			appLogger.Info("Production environment: using container environment variables")
		} else {
			appLogger.Info("No .env file found, using system environment variables")
		}
	} else {
		appLogger.Info("Development environment: loaded .env file")
	}

	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	db, err := database.InitDB(cfg)
	if err != nil {
		appLogger.Error("failed to connect", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	// Rate limiter
	var rateLimiter *ratelimit.RateLimiter
	if cfg.RateLimit.Enabled && db.Redis != nil {
		rateLimiter = ratelimit.NewRateLimiter(db.GetRedisClient(), &ratelimit.Config{
			Enabled:         cfg.RateLimit.Enabled,
			WindowDuration:  cfg.RateLimit.WindowDuration,
			DefaultRequests: cfg.RateLimit.DefaultRequests,
			SearchRequests:  cfg.RateLimit.SearchRequests,
			AuthRequests:    cfg.RateLimit.AuthRequests,
			BookingRequests: cfg.RateLimit.BookingRequests,
			ManagerRequests: cfg.RateLimit.ManagerRequests,
			WhitelistedIPs:  cfg.RateLimit.WhitelistedIPs,
		})
		appLogger.Info("Rate limiter initialized",
			slog.Duration("window", cfg.RateLimit.WindowDuration),
			slog.Int("default_requests", cfg.RateLimit.DefaultRequests),
		)
	} else {
		appLogger.Info("Rate limiting disabled")
	}

	// Lifecycle sweeps: shared by read endpoints and the background job
	lifecycleRepo := lifecycle.NewRepository(db.GetPostgreSQL())
	lifecycleService := lifecycle.NewService(lifecycleRepo, appLogger)
	jobProcessor := lifecycle.NewJobProcessor(lifecycleService, cfg.Booking.SweepInterval)

	jobCtx, jobCancel := context.WithCancel(context.Background())
	defer jobCancel()
	jobProcessor.Start(jobCtx)
	defer jobProcessor.Stop()

	// Notification pipeline (optional)
	var publisher *notifications.KafkaPublisher
	var consumer *notifications.KafkaConsumer
	if cfg.Kafka.Enabled {
		publisher, err = notifications.NewKafkaPublisher(cfg, appLogger)
		if err != nil {
			appLogger.Error("Failed to initialize notification publisher", slog.Any("error", err))
			appLogger.Info("Continuing without notifications")
		} else {
			defer publisher.Close()
		}

		emailService, err := notifications.NewSMTPEmailService(cfg.Email, appLogger)
		if err != nil {
			appLogger.Error("Email service not configured", slog.Any("error", err))
		} else {
			consumer, err = notifications.NewKafkaConsumer(cfg, emailService, appLogger)
			if err != nil {
				appLogger.Error("Failed to initialize notification consumer", slog.Any("error", err))
			} else {
				consumerCtx, consumerCancel := context.WithCancel(context.Background())
				defer consumerCancel()
				consumer.Start(consumerCtx, 3)
				defer func() {
					if err := consumer.Stop(); err != nil {
						appLogger.Error("Error stopping notification consumer", slog.Any("error", err))
					}
				}()
			}
		}
	}

	router := setupRouter(cfg, db, appLogger, rateLimiter, lifecycleService, publisher)

	srv := &http.Server{
		Addr:           cfg.GetServerAddress(),
		Handler:        router,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxHeaderBytes: cfg.MaxHeaderBytes,
	}

	go func() {
		appLogger.Info("Server running",
			slog.String("address", cfg.GetServerAddress()),
			slog.String("health_check", fmt.Sprintf("http://localhost:%s/health", cfg.Port)),
			slog.String("version", cfg.APIVersion),
			slog.Bool("redis_cache", db.Redis != nil),
			slog.Bool("rate_limiting", rateLimiter != nil),
			slog.Bool("notifications", cfg.Kafka.Enabled),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Server failed", slog.Any("error", err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Forced shutdown", slog.Any("error", err))
	}

	appLogger.Info("Server exited gracefully")
}

func setupRouter(
	cfg *config.Config,
	db *database.DB,
	appLogger *logger.Logger,
	rateLimiter *ratelimit.RateLimiter,
	lifecycleService lifecycle.Service,
	publisher *notifications.KafkaPublisher,
) *gin.Engine {
	engine := gin.New()

	engine.Use(RequestLoggerMiddleware(appLogger), gin.Recovery())

	engine.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return true
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "X-RateLimit-*"},
		ExposeHeaders:    []string{"Content-Length", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if rateLimiter != nil {
		engine.Use(ratelimit.Middleware(rateLimiter))
	}

	appRouter := routes.NewRouter(cfg, db, appLogger)
	appRouter.SetLifecycleService(lifecycleService)
	if publisher != nil {
		appRouter.SetPublishers(publisher, publisher)
	}
	appRouter.SetupRoutes(engine)

	return engine
}

func RequestLoggerMiddleware(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)
		l.LogHTTPRequest(c, duration)
	}
}
