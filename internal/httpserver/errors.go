package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ecomshop/backend/internal/logging"
)

// HTTPErrorHandler shapes every failure as {"error": "<message>"}. Unmatched
// routes become the canonical 404 body and anything unexpected becomes a
// generic 500 with no internal detail.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := "An unexpected error occurred"

	var he *echo.HTTPError
	switch {
	case errors.Is(err, echo.ErrNotFound):
		code, msg = http.StatusNotFound, "Resource not found"
	case errors.Is(err, echo.ErrMethodNotAllowed):
		code, msg = http.StatusNotFound, "Resource not found"
	case errors.As(err, &he):
		code = he.Code
		if s, ok := he.Message.(string); ok {
			msg = s
		} else if code < http.StatusInternalServerError {
			msg = http.StatusText(code)
		}
	default:
		logging.FromContext(c.Request().Context()).Error("unhandled_error", "error", err)
	}

	if writeErr := c.JSON(code, echo.Map{"error": msg}); writeErr != nil {
		logging.FromContext(c.Request().Context()).Error("error_response_write_failed", "error", writeErr)
	}
}
