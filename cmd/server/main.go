package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/iho/gobooks/internal/adapter/http"
	"github.com/iho/gobooks/internal/adapter/http/handler"
	"github.com/iho/gobooks/internal/adapter/http/middleware"
	"github.com/iho/gobooks/internal/adapter/repository/memory"
	postgresRepo "github.com/iho/gobooks/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/gobooks/internal/adapter/repository/redis"
	"github.com/iho/gobooks/internal/blueprint"
	"github.com/iho/gobooks/internal/domain"
	"github.com/iho/gobooks/internal/infrastructure/config"
	"github.com/iho/gobooks/internal/infrastructure/logger"
	"github.com/iho/gobooks/internal/infrastructure/metrics"
	"github.com/iho/gobooks/internal/infrastructure/postgres"
	infraRedis "github.com/iho/gobooks/internal/infrastructure/redis"
	"github.com/iho/gobooks/internal/report"
	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
)

// store is the persistence surface the server needs; both the in-memory and
// the postgres backend implement it.
type store interface {
	handler.LedgerStore
	blueprint.LedgerStore
	blueprint.Recorder
	report.LineSource
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log.Logger = appLogger
	zerolog.DefaultContextLogger = &appLogger

	ctx := context.Background()

	var (
		backend store
		pool    *pgxpool.Pool
	)
	if cfg.DatabaseURL == "" {
		appLogger.Info().Msg("no DATABASE_URL set, using in-memory store")
		backend = memory.NewStore()
	} else {
		pool, err = postgres.NewPoolWithConfig(ctx, postgres.PoolConfig{
			DatabaseURL: cfg.DatabaseURL,
			MaxConns:    cfg.DatabaseMaxConns,
			MinConns:    cfg.DatabaseMinConns,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to postgres")
		}
		defer pool.Close()

		if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}

		backend = postgresRepo.NewStore(pool, postgresRepo.NewRetrier(appLogger))
		appLogger.Info().Msg("connected to postgres")
	}

	var (
		redisClient      *goredis.Client
		digestCache      *redisRepo.DigestCache
		idempotencyStore middleware.IdempotencyStore
	)
	if cfg.RedisURL != "" {
		redisClient, err = infraRedis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer redisClient.Close()

		digestCache = redisRepo.NewDigestCache(redisClient, cfg.DigestCacheTTL)
		idempotencyStore = redisRepo.NewIdempotencyStore(redisClient)
		appLogger.Info().Msg("connected to redis")
	}

	chart := domain.DefaultChart()
	library := blueprint.StandardLibrary()
	ids := postgresRepo.NewULIDGenerator()
	m := metrics.New()
	builder := report.NewBuilder(chart, backend)

	var (
		invalidator handler.DigestInvalidator
		reportCache handler.DigestCache
	)
	if digestCache != nil {
		invalidator = digestCache
		reportCache = digestCache
	}

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		LedgerHandler:    handler.NewLedgerHandler(backend, ids),
		CommitHandler:    handler.NewCommitHandler(library, chart, backend, backend, ids, invalidator, m, appLogger),
		ReportHandler:    handler.NewReportHandler(builder, chart, reportCache, m, appLogger),
		HealthHandler:    handler.NewHealthHandler(pool, redisClient),
		IdempotencyStore: idempotencyStore,
		Logger:           appLogger,
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
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	appLogger.Info().Msg("server stopped")
}
