package initializer

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/amirasaad/exrate/infra/cache"
	"github.com/amirasaad/exrate/infra/metrics"
	"github.com/amirasaad/exrate/infra/provider"
	"github.com/amirasaad/exrate/infra/store"
	"github.com/amirasaad/exrate/pkg/app"
	"github.com/amirasaad/exrate/pkg/config"
	"github.com/amirasaad/exrate/pkg/preferences"
	"github.com/amirasaad/exrate/pkg/provider/exchange"
	"github.com/redis/go-redis/v9"
)

const pingTimeout = 5 * time.Second

// InitializeDependencies builds the infrastructure described by cfg. On
// error, anything already opened is closed again.
func InitializeDependencies(ctx context.Context, cfg *config.App, logger *slog.Logger) (deps *app.Deps, err error) {
	deps = &app.Deps{Logger: logger, Locale: config.Locale()}
	defer func() {
		if err != nil {
			for i := len(deps.Closers) - 1; i >= 0; i-- {
				_ = deps.Closers[i]()
			}
			deps = nil
		}
	}()

	m := metrics.New()
	deps.MetricsHandler = m.Handler()
	deps.HTTPObserver = m

	var redisClient *redis.Client
	if cfg.RateCache.Backend == "redis" || cfg.Preferences.Backend == "redis" {
		redisClient, err = newRedisClient(ctx, cfg.Redis)
		if err != nil {
			return deps, err
		}
		deps.Closers = append(deps.Closers, redisClient.Close)
		logger.Info("Connected to Redis", "url", maskURL(cfg.Redis.URL))
	}

	var rateStore exchange.Store
	switch cfg.RateCache.Backend {
	case "redis":
		rateStore = cache.NewRedisCache(redisClient, cfg.RateCache.Prefix, logger)
		logger.Info("Using Redis for the rate cache", "prefix", cfg.RateCache.Prefix)
	default:
		mem := cache.NewMemoryCache(time.Minute)
		deps.Closers = append(deps.Closers, mem.Close)
		rateStore = mem
		logger.Info("Using in-memory rate cache")
	}

	rateProvider := provider.NewExConvert(cfg.RateProvider, logger)
	if cfg.RateProvider.ApiKey == "" {
		logger.Warn("No rate provider API key configured", "provider", rateProvider.Name())
	}
	deps.RateSource = exchange.NewCache(
		rateProvider,
		rateStore,
		exchange.WithTTL(cfg.RateCache.TTL),
		exchange.WithLogger(logger),
		exchange.WithRecorder(m),
	)

	deps.PreferenceStore, err = newPreferenceStore(cfg, redisClient, deps, logger)
	if err != nil {
		return deps, err
	}
	return deps, nil
}

func newPreferenceStore(cfg *config.App, client *redis.Client, deps *app.Deps, logger *slog.Logger) (preferences.Store, error) {
	switch cfg.Preferences.Backend {
	case "redis":
		logger.Info("Using Redis for preferences", "prefix", cfg.Preferences.KeyPrefix)
		return store.NewRedisStore(client, cfg.Preferences.KeyPrefix), nil
	case "postgres":
		db, err := store.NewDBConnection(cfg.Preferences.DatabaseURL, cfg.Env)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		deps.Closers = append(deps.Closers, sqlDB.Close)

		s := store.NewGormStore(db)
		if err := s.Migrate(); err != nil {
			return nil, fmt.Errorf("failed to migrate preferences table: %w", err)
		}
		logger.Info("Using Postgres for preferences")
		return s, nil
	default:
		logger.Info("Using in-memory preferences; changes are lost on exit")
		return store.NewMemoryStore(), nil
	}
}

func newRedisClient(ctx context.Context, cfg *config.Redis) (*redis.Client, error) {
	opt, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid Redis URL: %w", err)
	}
	opt.PoolSize = cfg.PoolSize
	opt.DialTimeout = cfg.DialTimeout
	opt.ReadTimeout = cfg.ReadTimeout
	opt.WriteTimeout = cfg.WriteTimeout

	client := redis.NewClient(opt)
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}
	return client, nil
}

// maskURL hides the password of a connection URL for logging.
func maskURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "****"
	}
	return u.Redacted()
}
