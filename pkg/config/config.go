package config

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidConfig = errors.New("invalid config")

type Server struct {
	Scheme string `envconfig:"SCHEME" default:"http"`
	Host   string `envconfig:"HOST" default:"localhost"`
	Port   int    `envconfig:"PORT" default:"3000"`
}

func (s *Server) Addr() string { return fmt.Sprintf("%s:%d", s.Host, s.Port) }

type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0"`
	Format     string `envconfig:"FORMAT" default:"text"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"2006-01-02 15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"[exrate]"`
}

//revive:disable
type RateProvider struct {
	ApiUrl string `envconfig:"API_URL" default:"https://api.exconvert.com"`
	ApiKey string `envconfig:"API_KEY"`
	// Zero means no client-side timeout; requests end with their context.
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"0s"`
}

//revive:enable

type RateCache struct {
	Backend string        `envconfig:"BACKEND" default:"memory"`
	TTL     time.Duration `envconfig:"TTL" default:"1h"`
	Prefix  string        `envconfig:"PREFIX" default:"exr:"`
}

type Redis struct {
	URL          string        `envconfig:"URL" default:"redis://localhost:6379/0"`
	PoolSize     int           `envconfig:"POOL_SIZE" default:"10"`
	DialTimeout  time.Duration `envconfig:"DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"WRITE_TIMEOUT" default:"3s"`
}

type Preferences struct {
	Backend     string `envconfig:"BACKEND" default:"memory"`
	DatabaseURL string `envconfig:"DATABASE_URL"`
	KeyPrefix   string `envconfig:"KEY_PREFIX" default:"exrate:pref:"`
}

type RateLimit struct {
	MaxRequests int           `envconfig:"MAX_REQUESTS" default:"100"`
	Window      time.Duration `envconfig:"WINDOW" default:"1m"`
}

type App struct {
	Env          string        `envconfig:"APP_ENV" default:"development"`
	Version      string        `envconfig:"APP_VERSION" default:"dev"`
	Server       *Server       `envconfig:"SERVER"`
	Log          *Log          `envconfig:"LOG"`
	RateProvider *RateProvider `envconfig:"EXCONVERT"`
	RateCache    *RateCache    `envconfig:"RATE_CACHE"`
	Redis        *Redis        `envconfig:"REDIS"`
	Preferences  *Preferences  `envconfig:"PREFERENCES"`
	RateLimit    *RateLimit    `envconfig:"RATE_LIMIT"`
}

// Validate checks the settings envconfig cannot express.
func (a *App) Validate() error {
	switch a.RateCache.Backend {
	case "memory", "redis":
	default:
		return fmt.Errorf("%w: rate cache backend %q", ErrInvalidConfig, a.RateCache.Backend)
	}
	switch a.Preferences.Backend {
	case "memory", "redis":
	case "postgres":
		if a.Preferences.DatabaseURL == "" {
			return fmt.Errorf("%w: postgres preferences need PREFERENCES_DATABASE_URL", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: preferences backend %q", ErrInvalidConfig, a.Preferences.Backend)
	}
	if a.RateCache.TTL <= 0 {
		return fmt.Errorf("%w: rate cache TTL must be positive", ErrInvalidConfig)
	}
	return nil
}
