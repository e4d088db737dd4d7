package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/amirasaad/exrate/infra/initializer"
	"github.com/amirasaad/exrate/internal/tui"
	"github.com/amirasaad/exrate/pkg/app"
	"github.com/amirasaad/exrate/pkg/config"
	"github.com/charmbracelet/log"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:]); err != nil {
		if !errors.Is(err, tui.ErrUsage) {
			fmt.Fprintln(os.Stderr, tui.RenderError(err))
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}
	// only warnings and errors reach the terminal
	if cfg.Log.Level < int(log.WarnLevel) {
		cfg.Log.Level = int(log.WarnLevel)
	}
	logger := initializer.SetupLogger(cfg.Log, os.Stderr)

	deps, err := initializer.InitializeDependencies(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	a, err := app.New(ctx, deps, cfg)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.Close(closeCtx); err != nil {
			logger.Warn("Failed to flush preferences", "error", err)
		}
	}()

	if !a.Preferences.Snapshot().OnboardingDone && len(args) > 0 && args[0] != "setup" {
		fmt.Fprintln(os.Stderr, "Run `exrate setup` to pick your currencies.")
	}
	cli := &tui.CLI{App: a, In: os.Stdin, Out: os.Stdout}
	return cli.Run(ctx, args)
}
