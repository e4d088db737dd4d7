package rates

import (
	"github.com/amirasaad/exrate/pkg/preferences"
	ratesvc "github.com/amirasaad/exrate/pkg/service/rates"
	"github.com/amirasaad/exrate/webapi/common"
	"github.com/gofiber/fiber/v2"
)

// Routes registers HTTP routes for exchange rates and the rate board.
func Routes(app *fiber.App, ratesSvc *ratesvc.Service, prefs *preferences.State) {
	app.Get("/api/board", Board(ratesSvc, prefs))

	ratesGroup := app.Group("/api/rates")
	ratesGroup.Post("/convert", Convert(ratesSvc))
	ratesGroup.Get("/:from", FetchAll(ratesSvc))
	ratesGroup.Get("/:from/:to", GetQuote(ratesSvc))
}

// FetchAll returns every rate relative to a base currency.
// @Summary Rate table
// @Tags rates
// @Produce json
// @Param from path string true "Base currency code"
// @Success 200 {object} common.Response
// @Failure 422 {object} common.ProblemDetails
// @Failure 502 {object} common.ProblemDetails
// @Router /api/rates/{from} [get]
func FetchAll(ratesSvc *ratesvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		table, err := ratesSvc.FetchAll(c.Context(), c.Params("from"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to fetch rates", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Rates fetched successfully", table)
	}
}

// GetQuote returns a single rate with the time it stays valid until.
// @Summary Rate for a pair
// @Tags rates
// @Produce json
// @Param from path string true "Source currency code"
// @Param to path string true "Target currency code"
// @Success 200 {object} common.Response
// @Failure 422 {object} common.ProblemDetails
// @Failure 502 {object} common.ProblemDetails
// @Router /api/rates/{from}/{to} [get]
func GetQuote(ratesSvc *ratesvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		q, err := ratesSvc.Quote(c.Context(), c.Params("from"), c.Params("to"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to fetch rate", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Rate fetched successfully", q)
	}
}

// Convert prices an amount in another currency.
// @Summary Convert an amount
// @Tags rates
// @Accept json
// @Produce json
// @Param request body ConvertRequest true "Conversion request"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 502 {object} common.ProblemDetails
// @Router /api/rates/convert [post]
func Convert(ratesSvc *ratesvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[ConvertRequest](c)
		if input == nil {
			return err
		}
		conv, err := ratesSvc.Convert(c.Context(), input.From, input.To, input.Amount)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to convert amount", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Amount converted successfully", conv)
	}
}

// Board prices the watched list against the counter currency.
// @Summary Rate board
// @Tags rates
// @Produce json
// @Success 200 {object} common.Response
// @Failure 502 {object} common.ProblemDetails
// @Router /api/board [get]
func Board(ratesSvc *ratesvc.Service, prefs *preferences.State) fiber.Handler {
	return func(c *fiber.Ctx) error {
		snap := prefs.Snapshot()
		board, err := ratesSvc.Board(c.Context(), snap.CounterCurrency, snap.BaseCurrencies)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to build rate board", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Rate board fetched successfully", board)
	}
}
