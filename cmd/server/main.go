package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	httpAdapter "github.com/iho/goexpense/internal/adapter/http"
	"github.com/iho/goexpense/internal/adapter/http/handler"
	"github.com/iho/goexpense/internal/adapter/http/middleware"
	postgresRepo "github.com/iho/goexpense/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/goexpense/internal/adapter/repository/redis"
	"github.com/iho/goexpense/internal/infrastructure/auth"
	"github.com/iho/goexpense/internal/infrastructure/config"
	"github.com/iho/goexpense/internal/infrastructure/eventpublisher"
	"github.com/iho/goexpense/internal/infrastructure/logger"
	"github.com/iho/goexpense/internal/infrastructure/metrics"
	"github.com/iho/goexpense/internal/infrastructure/postgres"
	"github.com/iho/goexpense/internal/infrastructure/redis"
	"github.com/iho/goexpense/internal/usecase"
)

const limiterIdleTimeout = 10 * time.Minute

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	lg := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log.Logger = lg

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, lg); err != nil {
		lg.Fatal().Err(err).Msg("server failed")
	}

	lg.Info().Msg("server stopped")
}

func run(ctx context.Context, cfg *config.Config, lg zerolog.Logger) error {
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	if cfg.RunMigrations {
		if err := postgres.RunMigrations(cfg.DatabaseURL, lg); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
	}

	// Connect to PostgreSQL
	pool, err := postgres.NewPoolWithConfig(ctx, postgres.PoolConfig{
		DatabaseURL:    cfg.DatabaseURL,
		MaxConns:       cfg.DatabaseMaxConns,
		MinConns:       cfg.DatabaseMinConns,
		ConnectTimeout: cfg.DatabaseTimeout,
	})
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer pool.Close()
	lg.Info().Msg("connected to postgres")

	// Redis is optional. Without it reports are not cached and
	// Idempotency-Key headers are ignored.
	var (
		cache            usecase.Cache
		idempotencyStore usecase.IdempotencyStore
		redisPinger      handler.Pinger
	)
	if cfg.RedisURL != "" {
		redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("connect to redis: %w", err)
		}
		defer redisClient.Close()
		lg.Info().Msg("connected to redis")

		cache = redisRepo.NewCache(redisClient)
		idempotencyStore = redisRepo.NewIdempotencyStore(redisClient)
		redisPinger = redisPing(redisClient)
	} else {
		lg.Warn().Msg("REDIS_URL is empty; report cache and idempotency keys disabled")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	publisher, closePublisher, err := newPublisher(cfg, lg)
	if err != nil {
		return err
	}
	defer closePublisher()

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	recordRepo := postgresRepo.NewRecordRepository(pool)
	transferRepo := postgresRepo.NewTransferRepository(pool)
	categoryRepo := postgresRepo.NewCategoryRepository(pool)
	limitRepo := postgresRepo.NewLimitRepository(pool)
	reminderRepo := postgresRepo.NewReminderRepository(pool)
	outboxRepo := postgresRepo.NewOutboxRepository(pool)
	idGen := postgresRepo.NewULIDGenerator()
	clock := usecase.NewSystemClock(loc)

	// Initialize use cases
	accountUC := usecase.NewAccountUseCase(txManager, accountRepo, recordRepo, transferRepo, outboxRepo, idGen, clock, lg)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo, recordRepo, idGen, clock)
	ledgerUC := usecase.NewLedgerUseCase(usecase.LedgerConfig{
		TxManager:    txManager,
		Retrier:      postgresRepo.NewRetrier(lg),
		AccountRepo:  accountRepo,
		RecordRepo:   recordRepo,
		TransferRepo: transferRepo,
		LimitRepo:    limitRepo,
		OutboxRepo:   outboxRepo,
		Cache:        cache,
		IDGen:        idGen,
		Clock:        clock,
		Metrics:      m,
		Logger:       lg,
	})
	recordUC := usecase.NewRecordUseCase(recordRepo, cache, clock, lg)
	transferUC := usecase.NewTransferUseCase(transferRepo)
	limitUC := usecase.NewLimitUseCase(txManager, limitRepo, accountRepo, outboxRepo, idGen, clock, lg)
	reminderUC := usecase.NewReminderUseCase(reminderRepo, idGen, clock)
	reportUC := usecase.NewReportUseCase(recordRepo, cache, cfg.ReportCacheTTL, lg)
	reconcileUC := usecase.NewReconciliationUseCase(accountRepo, recordRepo, clock)
	setupUC := usecase.NewSetupUseCase(categoryUC, accountUC, lg)

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, m.RateLimited)

	routerCfg := httpAdapter.RouterConfig{
		AccountHandler:   handler.NewAccountHandler(accountUC),
		LedgerHandler:    handler.NewLedgerHandler(ledgerUC, clock),
		RecordHandler:    handler.NewRecordHandler(recordUC),
		TransferHandler:  handler.NewTransferHandler(transferUC),
		CategoryHandler:  handler.NewCategoryHandler(categoryUC),
		LimitHandler:     handler.NewLimitHandler(limitUC),
		ReminderHandler:  handler.NewReminderHandler(reminderUC),
		ReportHandler:    handler.NewReportHandler(reportUC, reconcileUC),
		SetupHandler:     handler.NewSetupHandler(setupUC),
		AuthHandler:      handler.NewAuthHandler(),
		HealthHandler:    handler.NewHealthHandler(pool, redisPinger),
		Logger:           lg,
		IdempotencyStore: idempotencyStore,
		IdempotencyTTL:   cfg.IdempotencyTTL,
		HTTPObserver:     m,
		MetricsHandler:   promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}),
	}
	if cfg.RateLimitRPS > 0 {
		routerCfg.RateLimiter = rateLimiter
	}
	if cfg.AuthEnabled {
		routerCfg.TokenVerifier = auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)
		routerCfg.AuthFailures = m
	} else {
		lg.Warn().Msg("authentication disabled; requests act as X-User-ID or the local user")
	}

	server := &http.Server{
		Addr:         serverAddr(cfg.HTTPPort),
		Handler:      httpAdapter.NewRouter(routerCfg),
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	relay := eventpublisher.NewEventPublisher(eventpublisher.Config{
		OutboxRepo: outboxRepo,
		Publisher:  publisher,
		Observer:   m,
		Logger:     lg,
		BatchSize:  cfg.OutboxBatchSize,
		Interval:   cfg.OutboxInterval,
	})

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		lg.Info().Str("addr", server.Addr).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		lg.Info().Msg("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		if err := relay.Start(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				if n := rateLimiter.CleanupLimiters(limiterIdleTimeout); n > 0 {
					lg.Debug().Int("removed", n).Msg("rate limiter visitors pruned")
				}
			}
		}
	})

	return g.Wait()
}

// newPublisher picks the AMQP publisher when AMQP_URL is set and falls back
// to logging events otherwise.
func newPublisher(cfg *config.Config, lg zerolog.Logger) (eventpublisher.Publisher, func(), error) {
	if cfg.AMQPURL == "" {
		lg.Info().Msg("AMQP_URL is empty; outbox events are logged only")
		return eventpublisher.NewLogPublisher(lg), func() {}, nil
	}

	p, err := eventpublisher.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to amqp: %w", err)
	}
	lg.Info().Str("exchange", cfg.AMQPExchange).Msg("connected to amqp")

	return p, func() {
		if err := p.Close(); err != nil {
			lg.Warn().Err(err).Msg("failed to close amqp publisher")
		}
	}, nil
}

func redisPing(client *goredis.Client) handler.PingFunc {
	return func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	}
}

func serverAddr(port string) string {
	if port == "" {
		port = "8080"
	}
	return ":" + port
}
