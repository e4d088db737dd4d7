package common

import (
	"errors"

	calc "github.com/amirasaad/exrate/pkg/calculator"
	"github.com/amirasaad/exrate/pkg/currency"
	"github.com/amirasaad/exrate/pkg/i18n"
	"github.com/amirasaad/exrate/pkg/preferences"
	"github.com/amirasaad/exrate/pkg/provider/exchange"
	calcsvc "github.com/amirasaad/exrate/pkg/service/calculator"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Response defines the standard API response structure for success cases.
type Response struct {
	Status  int    `json:"status"`         // HTTP status code
	Message string `json:"message"`        // Human-readable explanation
	Data    any    `json:"data,omitempty"` // Response data
}

// ProblemDetails follows RFC 9457 Problem Details for HTTP APIs.
type ProblemDetails struct {
	Type     string `json:"type,omitempty"`     // A URI reference that identifies the problem type
	Title    string `json:"title"`              // Short, human-readable summary
	Status   int    `json:"status"`             // HTTP status code
	Detail   string `json:"detail,omitempty"`   // Human-readable explanation
	Instance string `json:"instance,omitempty"` // URI reference that identifies the specific occurrence
	Errors   any    `json:"errors,omitempty"`   // Optional: additional error details
}

// SuccessResponseJSON writes data wrapped in a Response.
func SuccessResponseJSON(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(Response{Status: status, Message: message, Data: data})
}

const problemContentType = "application/problem+json"

// ErrorResponseJSON writes an application/problem+json body. A string
// detail fills Detail; anything else (validation output, say) goes to Errors.
func ErrorResponseJSON(c *fiber.Ctx, status int, title string, detail any) error {
	pd := ProblemDetails{
		Type:     "about:blank",
		Title:    title,
		Status:   status,
		Instance: c.OriginalURL(),
	}
	switch d := detail.(type) {
	case nil:
	case string:
		pd.Detail = d
	default:
		pd.Errors = d
	}
	return c.Status(status).JSON(pd, problemContentType)
}

// ProblemDetailsJSON writes err as problem details. Optional args override
// the derived detail (a string) or status (an int).
func ProblemDetailsJSON(c *fiber.Ctx, title string, err error, args ...any) error {
	status := fiber.StatusInternalServerError
	var detail any
	if err != nil {
		status = ErrorToStatusCode(err)
		detail = err.Error()
	}
	for _, a := range args {
		switch v := a.(type) {
		case string:
			detail = v
		case int:
			status = v
		}
	}
	return ErrorResponseJSON(c, status, title, detail)
}

var sentinelStatus = []struct {
	err    error
	status int
}{
	{currency.ErrUnsupported, fiber.StatusUnprocessableEntity},
	{i18n.ErrUnsupportedLanguage, fiber.StatusUnprocessableEntity},
	{calcsvc.ErrSessionNotFound, fiber.StatusNotFound},
	{preferences.ErrNotWatched, fiber.StatusNotFound},
	{preferences.ErrAlreadyWatched, fiber.StatusConflict},
	{preferences.ErrInvalidIndex, fiber.StatusBadRequest},
	{calc.ErrUnknownKey, fiber.StatusBadRequest},
}

// ErrorToStatusCode maps domain errors to HTTP status codes. Upstream rate
// failures are a bad gateway whatever they wrap.
func ErrorToStatusCode(err error) int {
	var fe *exchange.FetchError
	if errors.As(err, &fe) {
		return fiber.StatusBadGateway
	}
	for _, m := range sentinelStatus {
		if errors.Is(err, m.err) {
			return m.status
		}
	}
	return fiber.StatusInternalServerError
}

var validate = validator.New()

// Validate checks v against its validate tags.
func Validate(v any) error {
	return validate.Struct(v)
}

// BindAndValidate parses the request body and validates it using go-playground/validator.
// Returns a pointer to the struct (populated), or writes a 400 response and returns
// nil along with the write error, so handlers can return it as is.
func BindAndValidate[T any](c *fiber.Ctx) (*T, error) {
	var input T
	if err := c.BodyParser(&input); err != nil {
		return nil, ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid request body", err.Error())
	}
	if err := validate.Struct(input); err != nil {
		return nil, ErrorResponseJSON(c, fiber.StatusBadRequest, "Validation failed", err.Error())
	}
	return &input, nil
}
