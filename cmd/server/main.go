package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/iho/daybook/internal/adapter/http"
	"github.com/iho/daybook/internal/adapter/http/handler"
	postgresRepo "github.com/iho/daybook/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/daybook/internal/adapter/repository/redis"
	"github.com/iho/daybook/internal/infrastructure/config"
	"github.com/iho/daybook/internal/infrastructure/logger"
	"github.com/iho/daybook/internal/infrastructure/metrics"
	"github.com/iho/daybook/internal/infrastructure/postgres"
	"github.com/iho/daybook/internal/infrastructure/redis"
	"github.com/iho/daybook/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	appLogger := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	log.Logger = appLogger

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	appLogger.Info().Msg("connected to postgres")

	// Run migrations
	if cfg.MigrationsPath != "" {
		if err := postgres.RunMigrations(appLogger, cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
			appLogger.Fatal().Err(err).Msg("failed to run migrations")
		}
	}

	// Connect to Redis when configured; the service degrades to uncached
	// reads and non-idempotent writes without it.
	var (
		redisClient      *goredis.Client
		cache            usecase.Cache
		idempotencyStore usecase.IdempotencyStore
	)
	if cfg.RedisURL != "" {
		redisClient, err = redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			appLogger.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer redisClient.Close()
		appLogger.Info().Msg("connected to redis")

		cache = redisRepo.NewCache(redisClient)
		idempotencyStore = redisRepo.NewIdempotencyStore(redisClient)
	}

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	txnRepo := postgresRepo.NewTransactionRepository(pool)
	categoryRepo := postgresRepo.NewCategoryRepository(pool)
	reportRepo := postgresRepo.NewReportRepository(pool)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier(appLogger)

	// Initialize metrics
	appMetrics := metrics.New()
	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			appMetrics.DBConnections.Set(float64(pool.Stat().TotalConns()))
		}
	}()

	// Initialize use cases
	accountUC := usecase.NewAccountUseCase(txManager, accountRepo, txnRepo, idGen, appMetrics)
	txnUC := usecase.NewTransactionUseCase(txManager, accountRepo, txnRepo, idGen, appMetrics)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo, idGen)
	summaryUC := usecase.NewSummaryUseCase(reportRepo, txnRepo, accountRepo, cache, appMetrics)

	// Initialize handlers
	accountHandler := handler.NewAccountHandler(accountUC)
	txnHandler := handler.NewTransactionHandler(txnUC, retrier)
	categoryHandler := handler.NewCategoryHandler(categoryUC)
	summaryHandler := handler.NewSummaryHandler(summaryUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AccountHandler:     accountHandler,
		TransactionHandler: txnHandler,
		CategoryHandler:    categoryHandler,
		SummaryHandler:     summaryHandler,
		HealthHandler:      healthHandler,
		IdempotencyStore:   idempotencyStore,
		IdempotencyTTL:     cfg.IdempotencyTTL,
		Logger:             appLogger,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
	}

	// Start server in goroutine
	go func() {
		appLogger.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info().Msg("shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal().Err(err).Msg("server forced to shutdown")
	}

	appLogger.Info().Msg("server stopped")
}
