package initializer

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/amirasaad/exrate/infra/store"
	"github.com/amirasaad/exrate/pkg/config"
	"github.com/amirasaad/exrate/pkg/provider/exchange"
	"github.com/amirasaad/exrate/pkg/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.App {
	return &config.App{
		Env:          "test",
		RateProvider: &config.RateProvider{ApiUrl: "http://127.0.0.1:1"},
		RateCache:    &config.RateCache{Backend: "memory", TTL: time.Hour, Prefix: "exr:"},
		Redis: &config.Redis{
			PoolSize:     2,
			DialTimeout:  time.Second,
			ReadTimeout:  time.Second,
			WriteTimeout: time.Second,
		},
		Preferences: &config.Preferences{Backend: "memory", KeyPrefix: "exrate:pref:"},
	}
}

func TestInitializeDependencies_Memory(t *testing.T) {
	deps, err := InitializeDependencies(context.Background(), testConfig(), testutils.DiscardLogger())
	require.NoError(t, err)

	assert.IsType(t, &exchange.Cache{}, deps.RateSource)
	assert.IsType(t, &store.MemoryStore{}, deps.PreferenceStore)
	assert.NotNil(t, deps.MetricsHandler)
	assert.NotNil(t, deps.HTTPObserver)
	require.Len(t, deps.Closers, 1, "memory cache sweeper")
	for _, c := range deps.Closers {
		assert.NoError(t, c())
	}
}

func TestInitializeDependencies_RedisUnreachable(t *testing.T) {
	cfg := testConfig()
	cfg.RateCache.Backend = "redis"
	cfg.Redis.URL = "redis://127.0.0.1:1/0"

	deps, err := InitializeDependencies(context.Background(), cfg, testutils.DiscardLogger())
	assert.Error(t, err)
	assert.Nil(t, deps)
}

func TestInitializeDependencies_InvalidRedisURL(t *testing.T) {
	cfg := testConfig()
	cfg.Preferences.Backend = "redis"
	cfg.Redis.URL = "http://not-redis"

	_, err := InitializeDependencies(context.Background(), cfg, testutils.DiscardLogger())
	assert.ErrorContains(t, err, "invalid Redis URL")
}

func TestInitializeDependencies_Redis(t *testing.T) {
	cfg := testConfig()
	cfg.RateCache.Backend = "redis"
	cfg.Preferences.Backend = "redis"
	cfg.Redis.URL = testutils.StartRedis(t)

	deps, err := InitializeDependencies(context.Background(), cfg, testutils.DiscardLogger())
	require.NoError(t, err)
	t.Cleanup(func() {
		for _, c := range deps.Closers {
			_ = c()
		}
	})
	assert.IsType(t, &store.RedisStore{}, deps.PreferenceStore)

	ctx := context.Background()
	require.NoError(t, deps.PreferenceStore.Set(ctx, "lang", "ko"))
	v, ok, err := deps.PreferenceStore.Get(ctx, "lang")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "ko", v)
}

func TestInitializeDependencies_PostgresNeedsURL(t *testing.T) {
	cfg := testConfig()
	cfg.Preferences.Backend = "postgres"

	_, err := InitializeDependencies(context.Background(), cfg, testutils.DiscardLogger())
	assert.ErrorContains(t, err, "failed to initialize database")
}

func TestSetupLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := SetupLogger(&config.Log{Level: 0, Format: "json", Prefix: "[exrate]"}, &buf)

	logger.Info("rates fetched", "op", exchange.OpFetchAll)
	logger.Debug("hidden")

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	assert.Equal(t, "rates fetched", line["msg"])
	assert.Equal(t, exchange.OpFetchAll, line["op"])
	assert.False(t, strings.Contains(buf.String(), "hidden"))
}

func TestMaskURL(t *testing.T) {
	assert.Equal(t, "redis://:xxxxx@localhost:6379/0", maskURL("redis://:secret@localhost:6379/0"))
	assert.Equal(t, "redis://localhost:6379/0", maskURL("redis://localhost:6379/0"))
}
