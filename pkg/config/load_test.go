package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "localhost:3000", cfg.Server.Addr())
	assert.Equal(t, time.Hour, cfg.RateCache.TTL)
	assert.Equal(t, "memory", cfg.RateCache.Backend)
	assert.Equal(t, "exr:", cfg.RateCache.Prefix)
	assert.Equal(t, "memory", cfg.Preferences.Backend)
	assert.Zero(t, cfg.RateProvider.HTTPTimeout)
	assert.Equal(t, "[exrate]", cfg.Log.Prefix)
}

func TestLoad_FromEnvFile(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	env := "EXCONVERT_API_URL=https://rates.example\nEXCONVERT_API_KEY=abcdef123456\nAPP_VERSION=1.2.0\nRATE_CACHE_TTL=30m\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, ".env.test"), []byte(env), 0o600))
	t.Chdir(nested)

	// godotenv does not override variables that are already set
	for _, k := range []string{"EXCONVERT_API_URL", "EXCONVERT_API_KEY", "APP_VERSION", "RATE_CACHE_TTL"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}

	cfg, err := Load("missing.env", ".env.test")
	require.NoError(t, err)
	assert.Equal(t, "https://rates.example", cfg.RateProvider.ApiUrl)
	assert.Equal(t, "abcdef123456", cfg.RateProvider.ApiKey)
	assert.Equal(t, "1.2.0", cfg.Version)
	assert.Equal(t, 30*time.Minute, cfg.RateCache.TTL)
}

func TestLoad_Invalid(t *testing.T) {
	t.Chdir(t.TempDir())

	t.Setenv("PREFERENCES_BACKEND", "postgres")
	_, err := Load()
	assert.ErrorIs(t, err, ErrInvalidConfig)

	t.Setenv("PREFERENCES_BACKEND", "sqlite")
	_, err = Load()
	assert.ErrorIs(t, err, ErrInvalidConfig)

	t.Setenv("PREFERENCES_BACKEND", "memory")
	t.Setenv("RATE_CACHE_BACKEND", "memcached")
	_, err = Load()
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestFindUp(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".env"), []byte("X=1\n"), 0o600))
	child := filepath.Join(root, "child")
	require.NoError(t, os.Mkdir(child, 0o755))
	t.Chdir(child)

	got, err := FindUp("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, ".env"), got)

	_, err = FindUp("nope.env")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestMaskValue(t *testing.T) {
	assert.Equal(t, "****", maskValue(""))
	assert.Equal(t, "****", maskValue("short"))
	assert.Equal(t, "ab****3456", maskValue("abcdef123456"))
}
