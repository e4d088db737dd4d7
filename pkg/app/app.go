package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/amirasaad/exrate/pkg/config"
	"github.com/amirasaad/exrate/pkg/i18n"
	"github.com/amirasaad/exrate/pkg/preferences"
	"github.com/amirasaad/exrate/pkg/service/calculator"
	"github.com/amirasaad/exrate/pkg/service/rates"
)

// HTTPObserver records served requests.
type HTTPObserver interface {
	ObserveHTTP(method, route string, status int, d time.Duration)
}

// Deps holds the infrastructure the services are built on.
type Deps struct {
	RateSource      rates.Source
	PreferenceStore preferences.Store
	// Locale is the device locale used when no language is stored.
	Locale          string
	MetricsHandler  http.Handler
	HTTPObserver    HTTPObserver
	Logger          *slog.Logger
	// Closers run in reverse order on shutdown.
	Closers []func() error
}

type App struct {
	Deps              *Deps
	Config            *config.App
	Preferences       *preferences.State
	RatesService      *rates.Service
	CalculatorService *calculator.Service

	persister *preferences.Persister
}

// New loads the stored preferences and builds the services.
func New(ctx context.Context, deps *Deps, cfg *config.App) (*App, error) {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	state, err := preferences.Load(ctx, deps.PreferenceStore, i18n.Detect(deps.Locale), deps.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load preferences: %w", err)
	}
	persister := preferences.NewPersister(deps.PreferenceStore, deps.Logger)
	persister.Attach(state)

	ratesSvc := rates.New(deps.RateSource, deps.Logger)
	return &App{
		Deps:              deps,
		Config:            cfg,
		Preferences:       state,
		RatesService:      ratesSvc,
		CalculatorService: calculator.New(ratesSvc, deps.Logger),
		persister:         persister,
	}, nil
}

// Close flushes pending preference writes and releases infrastructure.
func (a *App) Close(ctx context.Context) error {
	errs := []error{a.persister.Close(ctx)}
	for i := len(a.Deps.Closers) - 1; i >= 0; i-- {
		errs = append(errs, a.Deps.Closers[i]())
	}
	return errors.Join(errs...)
}

// WarmRates fetches the rate table of the counter currency so the first
// board is served from the cache.
func (a *App) WarmRates(ctx context.Context) error {
	counter := a.Preferences.Counter()
	table, err := a.RatesService.FetchAll(ctx, counter.Code)
	if err != nil {
		return fmt.Errorf("failed to warm rates for %s: %w", counter.Code, err)
	}
	a.Deps.Logger.Info("Rate cache warmed", "counter", counter.Code, "rates_count", len(table.Result))
	return nil
}

// PruneSessions drops idle calculator sessions every interval until ctx is
// done.
func (a *App) PruneSessions(ctx context.Context, every, idle time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := a.CalculatorService.Prune(idle); n > 0 {
				a.Deps.Logger.Debug("Pruned idle calculator sessions", "count", n)
			}
		}
	}
}
