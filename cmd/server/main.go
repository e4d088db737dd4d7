package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/amirasaad/exrate/infra/initializer"
	"github.com/amirasaad/exrate/pkg/app"
	"github.com/amirasaad/exrate/pkg/config"
	"github.com/amirasaad/exrate/webapi"
	log "github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/errgroup"
)

const (
	shutdownTimeout = 10 * time.Second
	sessionIdle     = 30 * time.Minute
)

// @title exrate API
// @version 1.0.0
// @description Exchange rates, a currency calculator and user preferences
// @BasePath /
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := run(ctx); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}
	logger := initializer.SetupLogger(cfg.Log, os.Stdout)

	a, fiberApp, err := setup(ctx, cfg, logger)
	if err != nil {
		return err
	}

	addr := cfg.Server.Addr()
	logger.Info("Starting server",
		"env", cfg.Env,
		"version", cfg.Version,
		"address", addr,
		"scheme", cfg.Server.Scheme,
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return fiberApp.Listen(addr)
	})
	g.Go(func() error {
		a.PruneSessions(gctx, time.Minute, sessionIdle)
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return errors.Join(
			fiberApp.ShutdownWithContext(shutdownCtx),
			a.Close(shutdownCtx),
		)
	})
	return g.Wait()
}

// setup wires the application and its HTTP routes. A failed rate warm-up is
// logged and does not stop startup.
func setup(ctx context.Context, cfg *config.App, logger *slog.Logger) (*app.App, *fiber.App, error) {
	deps, err := initializer.InitializeDependencies(ctx, cfg, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	a, err := app.New(ctx, deps, cfg)
	if err != nil {
		for i := len(deps.Closers) - 1; i >= 0; i-- {
			_ = deps.Closers[i]()
		}
		return nil, nil, err
	}

	warmCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := a.WarmRates(warmCtx); err != nil {
		logger.Warn("Failed to warm rate cache", "error", err)
	}
	return a, webapi.SetupApp(a), nil
}
