package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mercacio/storefront-service/internal/adapters/cache"
	"github.com/mercacio/storefront-service/internal/adapters/events"
	httpadapter "github.com/mercacio/storefront-service/internal/adapters/http"
	"github.com/mercacio/storefront-service/internal/adapters/postgres"
	"github.com/mercacio/storefront-service/internal/application"
	"github.com/mercacio/storefront-service/internal/ports"
)

type runtime struct {
	cfg      Config
	logger   *slog.Logger
	service  *application.Service
	cache    ports.StoreCache
	outbox   *events.OutboxWorker
	cleanups []func() error
}

// RunAPI wires the full service and blocks until SIGINT/SIGTERM or a fatal
// startup error.
func RunAPI(configPath string) error {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})).
		With("service", cfg.ServiceID)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rt, err := buildRuntime(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer rt.cleanup(logger)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           httpadapter.NewRouter(httpadapter.NewHandler(rt.service), logger, cfg.AdminAPIKey),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 2)
	go func() {
		logger.InfoContext(ctx, "http server starting", "module", "bootstrap", "addr", server.Addr)
		if serveErr := server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", serveErr)
		}
	}()
	go func() {
		if workerErr := rt.outbox.Run(ctx); workerErr != nil && !errors.Is(workerErr, context.Canceled) {
			errCh <- fmt.Errorf("outbox worker: %w", workerErr)
		}
	}()

	select {
	case <-ctx.Done():
		logger.InfoContext(ctx, "shutdown signal received", "module", "bootstrap")
	case runErr := <-errCh:
		stop()
		shutdownServer(server, logger)
		return runErr
	}

	shutdownServer(server, logger)
	return nil
}

func buildRuntime(ctx context.Context, cfg Config, logger *slog.Logger) (*runtime, error) {
	rt := &runtime{cfg: cfg, logger: logger}

	db, err := postgres.Connect(ctx, cfg.DatabaseURL, cfg.MaxDBConns, logger)
	if err != nil {
		return nil, err
	}
	if sqlDB, dbErr := db.DB(); dbErr == nil {
		rt.cleanups = append(rt.cleanups, sqlDB.Close)
	}
	if err := postgres.RunMigrations(ctx, db, logger); err != nil {
		rt.cleanup(logger)
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	repos := postgres.NewRepositories(db)

	storeCache, err := rt.buildCache(ctx)
	if err != nil {
		rt.cleanup(logger)
		return nil, err
	}
	rt.cache = storeCache

	publisher := rt.buildPublisher()
	rt.outbox = events.NewOutboxWorker(logger, repos.Outbox, publisher, cfg.OutboxPollInterval, cfg.OutboxBatchSize)

	rt.service = application.NewService(application.Dependencies{
		Config:       application.Config{ServiceName: cfg.ServiceID},
		Logger:       logger,
		Stores:       repos.Stores,
		Products:     repos.Products,
		Commissions:  repos.Commissions,
		LandingPages: repos.LandingPages,
		Outbox:       repos.Outbox,
		Cache:        storeCache,
	})
	return rt, nil
}

func (rt *runtime) buildCache(ctx context.Context) (ports.StoreCache, error) {
	switch rt.cfg.CacheBackend {
	case CacheBackendFile:
		rt.logger.InfoContext(ctx, "using file cache backend",
			"module", "bootstrap", "dir", rt.cfg.CacheDir)
		return cache.NewFileStoreCache(rt.cfg.CacheDir, rt.logger), nil
	default:
		client, err := cache.Connect(ctx, rt.cfg.RedisURL, rt.logger)
		if err != nil {
			return nil, err
		}
		rt.cleanups = append(rt.cleanups, client.Close)
		return cache.NewRedisStoreCache(client, rt.cfg.StoreCacheTTL, rt.logger), nil
	}
}

func (rt *runtime) buildPublisher() ports.EventPublisher {
	if len(rt.cfg.KafkaBrokers) == 0 {
		rt.logger.Info("no kafka brokers configured, events go to the log",
			"module", "bootstrap")
		return events.NewLoggingPublisher(rt.logger)
	}
	publisher, err := events.NewKafkaPublisher(rt.cfg.KafkaBrokers, map[string]string{
		"store.created":      rt.cfg.KafkaTopicStoreUpdated,
		"store.updated":      rt.cfg.KafkaTopicStoreUpdated,
		"commission.updated": rt.cfg.KafkaTopicCommissionUpdated,
		"commission.removed": rt.cfg.KafkaTopicCommissionUpdated,
	})
	if err != nil {
		rt.logger.Warn("kafka publisher unavailable, events go to the log",
			"module", "bootstrap", "error", err)
		return events.NewLoggingPublisher(rt.logger)
	}
	rt.cleanups = append(rt.cleanups, publisher.Close)
	return publisher
}

func (rt *runtime) cleanup(logger *slog.Logger) {
	for i := len(rt.cleanups) - 1; i >= 0; i-- {
		if err := rt.cleanups[i](); err != nil && !errors.Is(err, redis.ErrClosed) {
			logger.Warn("cleanup failed", "module", "bootstrap", "error", err)
		}
	}
	rt.cleanups = nil
}

func shutdownServer(server *http.Server, logger *slog.Logger) {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http shutdown incomplete", "module", "bootstrap", "error", err)
	}
}
