// Package common holds the response envelope, RFC 9457 problem details and
// request binding shared by every handler package.
package common

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/hawkker/loyalty/pkg/domain"
	"github.com/hawkker/loyalty/pkg/domain/ledger"
	"github.com/hawkker/loyalty/pkg/domain/purchase"
	"github.com/hawkker/loyalty/pkg/domain/review"
	"github.com/hawkker/loyalty/pkg/domain/user"
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

// SuccessResponseJSON writes the standard success envelope.
func SuccessResponseJSON(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(Response{
		Status:  status,
		Message: message,
		Data:    data,
	})
}

// ProblemDetailsJSON writes an RFC 9457 response. Extras may carry a detail
// string and an explicit status code; otherwise the status is derived from
// the error.
func ProblemDetailsJSON(c *fiber.Ctx, title string, err error, extras ...any) error {
	status := 0
	detail := ""
	for _, e := range extras {
		switch v := e.(type) {
		case int:
			status = v
		case string:
			detail = v
		}
	}
	if status == 0 {
		if err != nil {
			status = ErrorToStatusCode(err)
		} else {
			status = fiber.StatusInternalServerError
		}
	}
	if detail == "" && err != nil {
		detail = err.Error()
	}
	pd := ProblemDetails{
		Type:     "about:blank",
		Title:    title,
		Status:   status,
		Detail:   detail,
		Instance: c.OriginalURL(),
	}
	c.Set(fiber.HeaderContentType, "application/problem+json")
	return c.Status(status).JSON(pd)
}

// ErrorToStatusCode maps domain errors to HTTP status codes. Settings
// absence is a deployment fault, not a client one, so it maps to 500.
func ErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, ledger.ErrSettingsMissing):
		return fiber.StatusInternalServerError
	case errors.Is(err, ledger.ErrInvalidAmount),
		errors.Is(err, ledger.ErrInsufficientCoins),
		errors.Is(err, ledger.ErrInvalidQRCode):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, ledger.ErrTransactionImmutable),
		errors.Is(err, review.ErrAlreadyRated):
		return fiber.StatusConflict
	case errors.Is(err, review.ErrInvalidRating):
		return fiber.StatusBadRequest
	case errors.Is(err, user.ErrUserNotFound),
		errors.Is(err, purchase.ErrPurchaseNotFound),
		errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, user.ErrUserUnauthorized),
		errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrValidation):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// BindAndValidate parses the request body and validates it using
// go-playground/validator. Returns the populated struct, or writes an error
// response and returns nil.
func BindAndValidate[T any](c *fiber.Ctx) (*T, error) {
	var input T
	if err := c.BodyParser(&input); err != nil {
		ProblemDetailsJSON(c, "Invalid request body", err, fiber.StatusBadRequest) //nolint:errcheck
		return nil, err
	}
	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		ProblemDetailsJSON(c, "Validation failed", err, fiber.StatusBadRequest) //nolint:errcheck
		return nil, err
	}
	return &input, nil
}
