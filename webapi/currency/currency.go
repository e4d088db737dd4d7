package currency

import (
	"github.com/amirasaad/exrate/pkg/currency"
	"github.com/amirasaad/exrate/webapi/common"
	"github.com/gofiber/fiber/v2"
)

// Routes registers HTTP routes for the currency catalog.
func Routes(app *fiber.App) {
	currencyGroup := app.Group("/api/currencies")

	currencyGroup.Get("/", ListCurrencies())
	currencyGroup.Get("/defaults", DefaultCurrencies())
	currencyGroup.Get("/country/:country", CurrencyForCountry())
	currencyGroup.Get("/:code", GetCurrency())
}

// ListCurrencies returns a Fiber handler listing the catalog.
// @Summary List currencies
// @Description List supported currencies, optionally filtered by code prefix
// @Tags currencies
// @Produce json
// @Param q query string false "Code prefix, case-insensitive"
// @Success 200 {object} common.Response
// @Router /api/currencies [get]
func ListCurrencies() fiber.Handler {
	return func(c *fiber.Ctx) error {
		currencies := currency.Search(c.Query("q"))
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Currencies fetched successfully", currencies)
	}
}

// GetCurrency returns currency information by code
// @Summary Get currency by code
// @Tags currencies
// @Produce json
// @Param code path string true "Currency code (e.g., USD, EUR)"
// @Success 200 {object} common.Response
// @Failure 422 {object} common.ProblemDetails
// @Router /api/currencies/{code} [get]
func GetCurrency() fiber.Handler {
	return func(c *fiber.Ctx) error {
		cur, err := currency.Lookup(c.Params("code"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Currency not found", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Currency fetched successfully", cur)
	}
}

// DefaultCurrencies returns the watched list a fresh install starts with.
func DefaultCurrencies() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Default currencies fetched successfully", currency.Defaults())
	}
}

// CurrencyForCountry returns the currency onboarding would pick for a
// country, falling back to EUR.
func CurrencyForCountry() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Currency fetched successfully", currency.FromCountry(c.Params("country")))
	}
}
