package config

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Load reads the first env file found among envFilePath, each looked up from
// the working directory upwards, then the process environment. Variables
// already set in the environment win over the file.
func Load(envFilePath ...string) (*App, error) {
	logger := slog.Default()

	for _, path := range envFilePath {
		found, err := FindUp(path)
		if err != nil {
			logger.Debug("Environment file not found", "path", path)
			continue
		}
		if err := godotenv.Load(found); err != nil {
			logger.Error("Failed to load environment file", "path", found, "error", err)
			continue
		}
		logger.Debug("Loaded environment file", "path", found)
		return loadFromEnv()
	}

	if len(envFilePath) > 0 {
		logger.Debug("No environment file found, using process environment")
	}
	return loadFromEnv()
}

// FindUp returns the nearest file called name in the working directory or
// one of its parents.
func FindUp(name string) (string, error) {
	if name == "" {
		name = ".env"
	}
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%s: %w", name, fs.ErrNotExist)
		}
		dir = parent
	}
}

func loadFromEnv() (*App, error) {
	var cfg App
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	slog.Default().Debug("App config loaded",
		"env", cfg.Env,
		"version", cfg.Version,
		"rate_cache_backend", cfg.RateCache.Backend,
		"rate_cache_ttl", cfg.RateCache.TTL,
		"preferences_backend", cfg.Preferences.Backend,
		"preferences_db", maskValue(cfg.Preferences.DatabaseURL),
		"exconvert_api_url", cfg.RateProvider.ApiUrl,
		"exconvert_api_key", maskValue(cfg.RateProvider.ApiKey),
	)
	return &cfg, nil
}

// maskValue keeps only the ends of a secret.
func maskValue(s string) string {
	if len(s) <= 6 {
		return "****"
	}
	return s[:2] + "****" + s[len(s)-4:]
}
