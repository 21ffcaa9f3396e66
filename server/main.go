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

	"busexpress/api/routes"
	"busexpress/internal/bookings"
	"busexpress/internal/notifications"
	"busexpress/internal/shared/config"
	"busexpress/internal/shared/database"
	"busexpress/internal/shared/validation"
	"busexpress/pkg/logger"
	"busexpress/pkg/ratelimit"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	appLogger := logger.GetDefault()

	// Smart environment loading
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

	// Custom binding validators (bus registration numbers etc.)
	validation.Register()

	db, err := database.InitDB(cfg)
	if err != nil {
		appLogger.Error("failed to connect:", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	// Preload the seat-hold Lua scripts so first bookings hit EVALSHA
	if db.Redis != nil {
		holdManager := bookings.NewHoldManager(db.Redis, cfg.Redis.SeatHoldTTL)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := holdManager.PreloadScripts(ctx); err != nil {
			appLogger.Error("Failed to preload Redis Lua scripts", slog.Any("error", err))
			// Scripts fall back to EVAL on first use
		} else {
			appLogger.Info("Redis Lua scripts preloaded for atomic seat holds")
		}
		cancel()
	}

	// Rate limiter
	var rateLimiter *ratelimit.RateLimiter
	if cfg.RateLimit.Enabled {
		rateLimiterConfig := &ratelimit.Config{
			Enabled:                 cfg.RateLimit.Enabled,
			WindowDuration:          cfg.RateLimit.WindowDuration,
			DefaultRequests:         cfg.RateLimit.DefaultRequests,
			PublicRequests:          cfg.RateLimit.PublicRequests,
			AuthRequests:            cfg.RateLimit.AuthRequests,
			BookingRequests:         cfg.RateLimit.BookingRequests,
			AdminRequests:           cfg.RateLimit.AdminRequests,
			AnalyticsRequests:       cfg.RateLimit.AnalyticsRequests,
			WhitelistedIPs:          cfg.RateLimit.WhitelistedIPs,
			BookingCriticalRequests: cfg.RateLimit.BookingCriticalRequests,
			HealthRequests:          cfg.RateLimit.HealthRequests,
		}

		rateLimiter = ratelimit.NewRateLimiter(db.GetRedisClient(), rateLimiterConfig)
		appLogger.Info("Rate limiter initialized",
			slog.Bool("enabled", cfg.RateLimit.Enabled),
			slog.Duration("window", cfg.RateLimit.WindowDuration),
			slog.Int("default_requests", cfg.RateLimit.DefaultRequests),
		)
	} else {
		appLogger.Info("Rate limiting disabled")
	}

	// Kafka booking events: producer feeds the API, consumer drives
	// customer notifications.
	var publisher notifications.Publisher = notifications.NoopPublisher{}
	consumerCtx, consumerCancel := context.WithCancel(context.Background())
	defer consumerCancel()

	if cfg.Kafka.Enabled {
		producerConfig := notifications.DefaultKafkaProducerConfig()
		producerConfig.Brokers = cfg.Kafka.Brokers
		producerConfig.BookingTopic = cfg.Kafka.BookingTopic

		kafkaProducer, err := notifications.NewKafkaBookingProducer(producerConfig)
		if err != nil {
			appLogger.Error("Failed to initialize Kafka producer", slog.Any("error", err))
			appLogger.Info("Continuing without booking event publishing")
		} else {
			publisher = kafkaProducer
			defer kafkaProducer.Close()
		}

		consumerConfig := notifications.DefaultConsumerConfig()
		consumerConfig.Brokers = cfg.Kafka.Brokers
		consumerConfig.Topics = []string{cfg.Kafka.BookingTopic}
		consumerConfig.GroupID = cfg.Kafka.ConsumerGroup

		consumer, err := notifications.NewKafkaBookingConsumer(consumerConfig, notifications.LogHandler{})
		if err != nil {
			appLogger.Error("Failed to initialize Kafka consumer", slog.Any("error", err))
		} else {
			go func() {
				if err := consumer.StartConsumers(consumerCtx, 3); err != nil {
					appLogger.Error("Failed to start Kafka consumers", slog.Any("error", err))
				}
			}()
			defer func() {
				appLogger.Info("Stopping Kafka consumer...")
				if err := consumer.Stop(); err != nil {
					appLogger.Error("Error stopping Kafka consumer", slog.Any("error", err))
				}
			}()
			appLogger.Info("Kafka booking event pipeline started",
				slog.String("topic", cfg.Kafka.BookingTopic),
				slog.String("group", cfg.Kafka.ConsumerGroup),
			)
		}
	} else {
		appLogger.Info("Kafka disabled, booking events will not be published")
	}

	router := setupRouter(cfg, db, rateLimiter, publisher)

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
			slog.String("api_status", fmt.Sprintf("http://localhost:%s%s/status", cfg.Port, cfg.GetAPIBasePath())),
			slog.String("version", cfg.APIVersion),
			slog.Bool("redis_cache", (db.Redis != nil)),
			slog.Bool("rate_limiting", cfg.RateLimit.Enabled),
			slog.Bool("kafka", cfg.Kafka.Enabled),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Server failed", slog.Any("error", err))
		}
	}()

	// Graceful shutdown
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

func setupRouter(cfg *config.Config, db *database.DB, rateLimiter *ratelimit.RateLimiter, publisher notifications.Publisher) *gin.Engine {
	engine := gin.New()
	appLogger := logger.GetDefault()

	// Built-in middleware: logs requests + recovers from panics
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
		appLogger.Info("Rate limiting middleware applied to all routes")
	}

	appRouter := routes.NewRouter(cfg, db, publisher)
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
