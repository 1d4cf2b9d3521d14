package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ecomshop/backend/internal/logging"
	"github.com/ecomshop/backend/internal/service"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

// Register ignores any role field in the body: accounts are always created
// with the "user" role.
func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Username and password are required")
	}

	_, err := h.Svc.Register(ctx, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			l.Warn("register_error", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "Username and password are required")
		case errors.Is(err, service.ErrConflict):
			l.Warn("register_error", "status", 400, "reason", "username taken")
			return echo.NewHTTPError(http.StatusBadRequest, "User already exists")
		default:
			l.Error("register_error", "status", 500, "error", err)
			return err
		}
	}

	l.Info("register_success", "username", req.Username)
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "User registered successfully",
	})
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Username and password are required")
	}

	res, err := h.Svc.Login(ctx, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrInvalidCredentials):
			l.Warn("login_failed", "status", 401)
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid username or password")
		default:
			l.Error("login_error", "status", 500, "error", err)
			return err
		}
	}

	l.Info("login_success", "username", req.Username)
	return c.JSON(http.StatusOK, echo.Map{
		"access_token": res.AccessToken,
		"role":         res.Role,
	})
}
