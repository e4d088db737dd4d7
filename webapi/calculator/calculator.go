package calculator

import (
	"encoding/json"

	"github.com/amirasaad/exrate/pkg/preferences"
	calcsvc "github.com/amirasaad/exrate/pkg/service/calculator"
	"github.com/amirasaad/exrate/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Routes registers HTTP routes for calculator sessions.
func Routes(app *fiber.App, calcSvc *calcsvc.Service, prefs *preferences.State) {
	sessions := app.Group("/api/calculator/sessions")
	sessions.Post("/", CreateSession(calcSvc, prefs))
	sessions.Get("/:id", GetSession(calcSvc))
	sessions.Post("/:id/keys", PressKeys(calcSvc))
	sessions.Put("/:id/pair", SetPair(calcSvc))
	sessions.Delete("/:id", DeleteSession(calcSvc))
}

// sessionID writes a 400 and returns uuid.Nil when the path ID is unusable.
func sessionID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid session ID", "session ID must be a UUID")
	}
	return id, nil
}

// CreateSession opens a calculator session.
// @Summary Open a calculator
// @Tags calculator
// @Accept json
// @Produce json
// @Param request body CreateSessionRequest false "Currency pair"
// @Success 201 {object} common.Response
// @Failure 422 {object} common.ProblemDetails
// @Router /api/calculator/sessions [post]
func CreateSession(calcSvc *calcsvc.Service, prefs *preferences.State) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input CreateSessionRequest
		if len(c.Body()) > 0 {
			if err := json.Unmarshal(c.Body(), &input); err != nil {
				return common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid request body", err.Error())
			}
			if err := common.Validate(input); err != nil {
				return common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Validation failed", err.Error())
			}
		}

		snap := prefs.Snapshot()
		if input.Source == "" {
			input.Source = snap.CounterCurrency.Code
			if len(snap.BaseCurrencies) > 0 {
				input.Source = snap.BaseCurrencies[0].Code
			}
		}
		if input.Target == "" {
			input.Target = snap.CounterCurrency.Code
		}

		view, err := calcSvc.Create(c.Context(), input.Source, input.Target)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to open calculator", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Calculator opened", view)
	}
}

// GetSession returns the current calculator screen.
func GetSession(calcSvc *calcsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := sessionID(c)
		if id == uuid.Nil {
			return err
		}
		view, err := calcSvc.Get(c.Context(), id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to get calculator", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Calculator fetched successfully", view)
	}
}

// PressKeys applies key presses in order.
// @Summary Press calculator keys
// @Tags calculator
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body PressRequest true "Keys"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Failure 502 {object} common.ProblemDetails
// @Router /api/calculator/sessions/{id}/keys [post]
func PressKeys(calcSvc *calcsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := sessionID(c)
		if id == uuid.Nil {
			return err
		}
		input, err := common.BindAndValidate[PressRequest](c)
		if input == nil {
			return err
		}
		view, err := calcSvc.Press(c.Context(), id, input.Keys...)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to press keys", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Keys applied", view)
	}
}

// SetPair changes the currency pair of a session.
func SetPair(calcSvc *calcsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := sessionID(c)
		if id == uuid.Nil {
			return err
		}
		input, err := common.BindAndValidate[PairRequest](c)
		if input == nil {
			return err
		}
		view, err := calcSvc.SetPair(c.Context(), id, input.Source, input.Target)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to change currency pair", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Currency pair updated", view)
	}
}

// DeleteSession closes a calculator session.
func DeleteSession(calcSvc *calcsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := sessionID(c)
		if id == uuid.Nil {
			return err
		}
		if err := calcSvc.Delete(id); err != nil {
			return common.ProblemDetailsJSON(c, "Failed to close calculator", err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
