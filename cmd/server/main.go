package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/iho/finances/internal/adapter/http"
	"github.com/iho/finances/internal/adapter/http/handler"
	"github.com/iho/finances/internal/adapter/http/middleware"
	postgresRepo "github.com/iho/finances/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/finances/internal/adapter/repository/redis"
	"github.com/iho/finances/internal/infrastructure/auth"
	"github.com/iho/finances/internal/infrastructure/config"
	"github.com/iho/finances/internal/infrastructure/logger"
	"github.com/iho/finances/internal/infrastructure/marketdata"
	"github.com/iho/finances/internal/infrastructure/metrics"
	"github.com/iho/finances/internal/infrastructure/postgres"
	"github.com/iho/finances/internal/infrastructure/redis"
	"github.com/iho/finances/internal/usecase"
)

func main() {
	// Optional .env for local development
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.New(cfg.LogLevel, cfg.LogFormat)
	log.Logger = appLogger

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	userRepo := postgresRepo.NewUserRepository(pool)
	currencyRepo := postgresRepo.NewCurrencyRepository(pool)
	assetRepo := postgresRepo.NewAssetRepository(pool)
	transactionRepo := postgresRepo.NewTransactionRepository(pool)
	categoryRepo := postgresRepo.NewCategoryRepository(pool)
	portfolioRepo := postgresRepo.NewCryptoPortfolioRepository(pool)
	cryptoCurrencyRepo := postgresRepo.NewCryptoCurrencyRepository(pool)
	cryptoAssetRepo := postgresRepo.NewCryptoAssetRepository(pool)
	cryptoTransactionRepo := postgresRepo.NewCryptoTransactionRepository(pool)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	idGen := postgresRepo.NewULIDGenerator()

	// Market data source for crypto quotes
	quotes := marketdata.NewCoinGeckoClient(cfg.MarketDataURL, cfg.MarketDataTimeout)

	appMetrics := metrics.New()

	// Initialize use cases
	converter := usecase.NewConverter(usecase.NewStoredRateSource())
	userUC := usecase.NewUserUseCase(userRepo).WithMetrics(appMetrics)
	currencyUC := usecase.NewCurrencyUseCase(currencyRepo, userRepo, idGen).WithMetrics(appMetrics)
	assetUC := usecase.NewAssetUseCase(assetRepo, currencyRepo, transactionRepo, idGen).WithMetrics(appMetrics)
	transactionUC := usecase.NewTransactionUseCase(
		txManager, transactionRepo, assetRepo, categoryRepo, currencyRepo, converter, idGen).
		WithRetrier(postgresRepo.NewRetrier(appLogger)).
		WithMetrics(appMetrics)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo, idGen)
	reportUC := usecase.NewReportUseCase(transactionRepo, assetRepo, currencyRepo, categoryRepo, converter).
		WithMetrics(appMetrics)
	reconciliationUC := usecase.NewReconciliationUseCase(assetRepo, transactionRepo)
	cryptoUC := usecase.NewCryptoUseCase(
		txManager, portfolioRepo, cryptoCurrencyRepo, cryptoAssetRepo, cryptoTransactionRepo, quotes, idGen).
		WithMetrics(appMetrics)

	// Authentication and observability
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)
	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, appMetrics)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(userUC, jwtManager)
	currencyHandler := handler.NewCurrencyHandler(currencyUC)
	assetHandler := handler.NewAssetHandler(assetUC, reconciliationUC)
	transactionHandler := handler.NewTransactionHandler(transactionUC, reportUC)
	categoryHandler := handler.NewCategoryHandler(categoryUC)
	cryptoHandler := handler.NewCryptoHandler(cryptoUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AuthHandler:        authHandler,
		CurrencyHandler:    currencyHandler,
		AssetHandler:       assetHandler,
		TransactionHandler: transactionHandler,
		CategoryHandler:    categoryHandler,
		CryptoHandler:      cryptoHandler,
		HealthHandler:      healthHandler,
		JWTManager:         jwtManager,
		UserRepo:           userRepo,
		IdempotencyStore:   idempotencyStore,
		Metrics:            appMetrics,
		RateLimiter:        rateLimiter,
		Logger:             appLogger,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
