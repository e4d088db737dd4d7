// Package webapi provides HTTP handlers and API endpoints for the exrate
// application. It is organized into sub-packages for different domains:
// - currency: Currency catalog endpoints
// - rates: Exchange rate, conversion and rate board endpoints
// - preferences: Preferences, onboarding and UI string endpoints
// - calculator: Calculator session endpoints
package webapi

import (
	"errors"
	"strings"
	"time"

	"github.com/amirasaad/exrate/pkg/app"
	"github.com/amirasaad/exrate/pkg/config"
	calculatorweb "github.com/amirasaad/exrate/webapi/calculator"
	"github.com/amirasaad/exrate/webapi/common"
	currencyweb "github.com/amirasaad/exrate/webapi/currency"
	preferencesweb "github.com/amirasaad/exrate/webapi/preferences"
	ratesweb "github.com/amirasaad/exrate/webapi/rates"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// SetupApp Initialize Fiber with custom configuration
func SetupApp(app *app.App) *fiber.App {
	fiberApp := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				return common.ProblemDetailsJSON(c, fe.Message, err, fe.Code)
			}
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		},
	})

	fiberApp.Use(recover.New())
	if obs := app.Deps.HTTPObserver; obs != nil {
		fiberApp.Use(observeHTTP(obs))
	}

	fiberApp.Use(rateLimiter(app.Config.RateLimit))
	if app.Config.Env != "test" {
		fiberApp.Use(logger.New())
	}

	// Health check endpoint
	fiberApp.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("exrate API is running! 🚀")
	})
	if app.Deps.MetricsHandler != nil {
		fiberApp.Get("/metrics", adaptor.HTTPHandler(app.Deps.MetricsHandler))
	}

	currencyweb.Routes(fiberApp)
	ratesweb.Routes(fiberApp, app.RatesService, app.Preferences)
	preferencesweb.Routes(fiberApp, app.Preferences, app.Deps.Locale)
	calculatorweb.Routes(fiberApp, app.CalculatorService, app.Preferences)
	return fiberApp
}

// rateLimiter limits each client to cfg.MaxRequests per window. /metrics is
// exempt so scrapes never count against a client.
func rateLimiter(cfg *config.RateLimit) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:          cfg.MaxRequests,
		Expiration:   cfg.Window,
		Next:         func(c *fiber.Ctx) bool { return c.Path() == "/metrics" },
		KeyGenerator: clientKey,
		LimitReached: func(c *fiber.Ctx) error {
			return common.ProblemDetailsJSON(c, "Too Many Requests", errTooManyRequests, fiber.StatusTooManyRequests)
		},
	})
}

var errTooManyRequests = errors.New("rate limit exceeded")

// clientKey identifies the caller behind a proxy: the first X-Forwarded-For
// hop, then X-Real-IP, then the socket address.
func clientKey(c *fiber.Ctx) string {
	if fwd := c.Get(fiber.HeaderXForwardedFor); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		return strings.TrimSpace(first)
	}
	if realIP := c.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	return c.IP()
}

// observeHTTP reports each request under its route pattern, so path
// parameters don't multiply the label set.
func observeHTTP(obs app.HTTPObserver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		obs.ObserveHTTP(c.Method(), c.Route().Path, status, time.Since(start))
		return err
	}
}
