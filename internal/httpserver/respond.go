package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lvieira/catalogo-api/internal/service"
)

// statusFor is the single mapping from service errors to transport status
// codes. Anything unrecognized is a server error.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrCategoryNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrCategoriesMissing),
		errors.Is(err, service.ErrRelationViolation),
		errors.Is(err, service.ErrCategoryInUse):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// privateError renders failures on /private routes, which answer with an
// "error" field. Server errors hide the cause behind the fallback message.
func privateError(c echo.Context, err error, fallback string) error {
	code := statusFor(err)
	msg := fallback
	if code != http.StatusInternalServerError {
		msg = err.Error()
	}
	return c.JSON(code, echo.Map{"error": msg})
}

// publicError renders failures on /public routes, which answer with a
// "message" field (echo's default error body).
func publicError(err error, fallback string) error {
	code := statusFor(err)
	msg := fallback
	if code != http.StatusInternalServerError {
		msg = err.Error()
	}
	return echo.NewHTTPError(code, msg)
}
