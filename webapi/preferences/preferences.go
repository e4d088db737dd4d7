package preferences

import (
	"encoding/json"
	"strconv"

	"github.com/amirasaad/exrate/pkg/currency"
	"github.com/amirasaad/exrate/pkg/i18n"
	"github.com/amirasaad/exrate/pkg/preferences"
	"github.com/amirasaad/exrate/webapi/common"
	"github.com/gofiber/fiber/v2"
)

// Routes registers HTTP routes for user preferences, onboarding and the UI
// string catalog. locale is the device locale used when a request carries
// no Accept-Language header.
func Routes(app *fiber.App, prefs *preferences.State, locale string) {
	prefGroup := app.Group("/api/preferences")
	prefGroup.Get("/", GetPreferences(prefs))
	prefGroup.Put("/", UpdatePreferences(prefs))
	prefGroup.Put("/counter", SetCounter(prefs))
	prefGroup.Put("/lang", SetLanguage(prefs))
	prefGroup.Put("/base", SetBaseCurrencies(prefs))
	prefGroup.Post("/base", AddBaseCurrency(prefs))
	prefGroup.Post("/base/move", MoveBaseCurrency(prefs))
	prefGroup.Post("/base/:index/toggle", ToggleBaseCurrency(prefs))
	prefGroup.Delete("/base/:code", RemoveBaseCurrency(prefs))

	app.Post("/api/onboarding", Onboard(prefs, locale))
	app.Get("/api/i18n", Messages(prefs))
}

// GetPreferences returns the current preferences.
// @Summary Get preferences
// @Tags preferences
// @Produce json
// @Success 200 {object} common.Response
// @Router /api/preferences [get]
func GetPreferences(prefs *preferences.State) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Preferences fetched successfully", prefs.Snapshot())
	}
}

// UpdatePreferences applies the fields present in the body: language, then
// counter currency, then watched list. It stops at the first rejected field.
// @Summary Update preferences
// @Tags preferences
// @Accept json
// @Produce json
// @Param request body UpdateRequest true "Fields to change"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 422 {object} common.ProblemDetails
// @Router /api/preferences [put]
func UpdatePreferences(prefs *preferences.State) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[UpdateRequest](c)
		if input == nil {
			return err
		}
		if input.Lang != "" {
			if err := prefs.SetLanguage(input.Lang); err != nil {
				return common.ProblemDetailsJSON(c, "Failed to set language", err)
			}
		}
		if input.CounterCurrency != "" {
			if err := prefs.SetCounter(currency.Currency{Code: input.CounterCurrency}); err != nil {
				return common.ProblemDetailsJSON(c, "Failed to set counter currency", err)
			}
		}
		if input.BaseCurrencies != nil {
			if err := prefs.SetBaseCurrencies(toWatched(input.BaseCurrencies)); err != nil {
				return common.ProblemDetailsJSON(c, "Failed to set base currencies", err)
			}
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Preferences updated", prefs.Snapshot())
	}
}

func toWatched(in []WatchedRequest) []currency.Watched {
	list := make([]currency.Watched, 0, len(in))
	for _, w := range in {
		list = append(list, currency.Watched{Currency: currency.Currency{Code: w.Code}, IsSelected: w.IsSelected})
	}
	return list
}

// SetCounter changes the counter currency.
// @Summary Set counter currency
// @Tags preferences
// @Accept json
// @Produce json
// @Param request body CurrencyRequest true "Counter currency"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 422 {object} common.ProblemDetails
// @Router /api/preferences/counter [put]
func SetCounter(prefs *preferences.State) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[CurrencyRequest](c)
		if input == nil {
			return err
		}
		if err := prefs.SetCounter(currency.Currency{Code: input.Code}); err != nil {
			return common.ProblemDetailsJSON(c, "Failed to set counter currency", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Counter currency updated", prefs.Snapshot())
	}
}

// SetLanguage switches the UI language.
// @Summary Set language
// @Tags preferences
// @Accept json
// @Produce json
// @Param request body LanguageRequest true "Language code: en, ko, jp or cn"
// @Success 200 {object} common.Response
// @Failure 422 {object} common.ProblemDetails
// @Router /api/preferences/lang [put]
func SetLanguage(prefs *preferences.State) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[LanguageRequest](c)
		if input == nil {
			return err
		}
		if err := prefs.SetLanguage(input.Lang); err != nil {
			return common.ProblemDetailsJSON(c, "Failed to set language", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Language updated", prefs.Snapshot())
	}
}

// SetBaseCurrencies replaces the watched list.
func SetBaseCurrencies(prefs *preferences.State) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[BaseCurrenciesRequest](c)
		if input == nil {
			return err
		}
		if err := prefs.SetBaseCurrencies(toWatched(input.BaseCurrencies)); err != nil {
			return common.ProblemDetailsJSON(c, "Failed to set base currencies", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Base currencies updated", prefs.Snapshot())
	}
}

// AddBaseCurrency watches one more currency.
// @Summary Watch a currency
// @Tags preferences
// @Accept json
// @Produce json
// @Param request body CurrencyRequest true "Currency to watch"
// @Success 201 {object} common.Response
// @Failure 409 {object} common.ProblemDetails
// @Failure 422 {object} common.ProblemDetails
// @Router /api/preferences/base [post]
func AddBaseCurrency(prefs *preferences.State) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[CurrencyRequest](c)
		if input == nil {
			return err
		}
		if err := prefs.Add(currency.Currency{Code: input.Code}); err != nil {
			return common.ProblemDetailsJSON(c, "Failed to add base currency", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Base currency added", prefs.Snapshot())
	}
}

// RemoveBaseCurrency stops watching a currency.
func RemoveBaseCurrency(prefs *preferences.State) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := prefs.Remove(c.Params("code")); err != nil {
			return common.ProblemDetailsJSON(c, "Failed to remove base currency", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Base currency removed", prefs.Snapshot())
	}
}

// MoveBaseCurrency reorders the watched list.
func MoveBaseCurrency(prefs *preferences.State) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[MoveRequest](c)
		if input == nil {
			return err
		}
		if err := prefs.Move(input.From, input.To); err != nil {
			return common.ProblemDetailsJSON(c, "Failed to move base currency", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Base currency moved", prefs.Snapshot())
	}
}

// ToggleBaseCurrency flips the rate direction of one watched row.
func ToggleBaseCurrency(prefs *preferences.State) fiber.Handler {
	return func(c *fiber.Ctx) error {
		i, err := strconv.Atoi(c.Params("index"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid index", err, "index must be an integer", fiber.StatusBadRequest)
		}
		if err := prefs.ToggleSelected(i); err != nil {
			return common.ProblemDetailsJSON(c, "Failed to toggle base currency", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Base currency toggled", prefs.Snapshot())
	}
}

// Onboard runs first-launch setup.
// @Summary Onboarding
// @Description Pick the counter currency from the country and seed the watched list
// @Tags preferences
// @Accept json
// @Produce json
// @Param request body OnboardingRequest false "Country override"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Router /api/onboarding [post]
func Onboard(prefs *preferences.State, locale string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input OnboardingRequest
		if len(c.Body()) > 0 {
			if err := json.Unmarshal(c.Body(), &input); err != nil {
				return common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid request body", err.Error())
			}
			if err := common.Validate(input); err != nil {
				return common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Validation failed", err.Error())
			}
		}
		country := input.Country
		if country == "" {
			country = i18n.Region(i18n.PreferredLocale(c.Get(fiber.HeaderAcceptLanguage)))
		}
		if country == "" {
			country = i18n.Region(locale)
		}
		snap, err := prefs.Onboard(country)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Onboarding failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Onboarding completed", snap)
	}
}

// Messages returns the UI strings in the active language, or in ?lang=.
func Messages(prefs *preferences.State) fiber.Handler {
	return func(c *fiber.Ctx) error {
		lang := c.Query("lang", prefs.Language())
		lang, err := i18n.Parse(lang)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unsupported language", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Messages fetched successfully", fiber.Map{
			"lang":     lang,
			"messages": i18n.Messages(lang),
		})
	}
}
