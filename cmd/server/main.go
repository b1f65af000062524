package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	httpAdapter "github.com/berrahoutaha1-dcs/moussir-ledger/internal/adapter/http"
	"github.com/berrahoutaha1-dcs/moussir-ledger/internal/adapter/http/handler"
	postgresRepo "github.com/berrahoutaha1-dcs/moussir-ledger/internal/adapter/repository/postgres"
	redisRepo "github.com/berrahoutaha1-dcs/moussir-ledger/internal/adapter/repository/redis"
	"github.com/berrahoutaha1-dcs/moussir-ledger/internal/infrastructure/config"
	"github.com/berrahoutaha1-dcs/moussir-ledger/internal/infrastructure/events"
	"github.com/berrahoutaha1-dcs/moussir-ledger/internal/infrastructure/locale"
	"github.com/berrahoutaha1-dcs/moussir-ledger/internal/infrastructure/logger"
	"github.com/berrahoutaha1-dcs/moussir-ledger/internal/infrastructure/postgres"
	"github.com/berrahoutaha1-dcs/moussir-ledger/internal/infrastructure/redis"
	"github.com/berrahoutaha1-dcs/moussir-ledger/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	log.Logger = appLogger

	ctx := context.Background()

	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		appLogger.Fatal().Err(err).Msg("failed to run migrations")
	}

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	appLogger.Info().Msg("connected to postgres")

	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	appLogger.Info().Msg("connected to redis")

	// Repositories and ledger
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier(appLogger)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	ledgerStore := postgresRepo.NewLedgerStore(pool, idGen, retrier)
	cache := redisRepo.NewCache(redisClient)
	publisher := events.NewRedisPublisher(redisClient)
	dates := locale.New(cfg.Locale)

	// Use cases
	accountUC := usecase.NewAccountUseCase(accountRepo, ledgerStore, cache, idGen, appLogger)
	paymentUC := usecase.NewPaymentUseCase(ledgerStore, accountRepo, publisher, cache, dates, appLogger)
	chargeUC := usecase.NewChargeUseCase(ledgerStore, accountRepo, publisher, cache, appLogger)
	reconcileUC := usecase.NewReconcileUseCase(ledgerStore, accountRepo, appLogger)
	receiptBuilder := usecase.NewReceiptBuilder(dates)

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AccountHandler:     handler.NewAccountHandler(accountUC),
		PaymentHandler:     handler.NewPaymentHandler(paymentUC),
		ChargeHandler:      handler.NewChargeHandler(chargeUC),
		TransactionHandler: handler.NewTransactionHandler(accountUC),
		ReceiptHandler:     handler.NewReceiptHandler(accountUC, reconcileUC, receiptBuilder),
		HealthHandler:      handler.NewHealthHandler(pool, redisClient),
		Logger:             appLogger,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	go func() {
		appLogger.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal().Err(err).Msg("server forced to shutdown")
	}

	appLogger.Info().Msg("server stopped")
}
