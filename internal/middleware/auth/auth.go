package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ecomshop/backend/internal/tokens"
)

// Guard gates handler execution. It verifies the bearer token, optionally
// applies an extra claims check, and puts the verified identity into the
// request context. It never touches the store.
type Guard struct {
	JWTSecret []byte
}

func NewGuard(secret []byte) *Guard {
	return &Guard{JWTSecret: secret}
}

type validatorFunc func(claims *tokens.AccessClaims) error

func (g *Guard) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return g.requireWithValidator(next, nil)
}

func (g *Guard) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return g.requireWithValidator(next, func(claims *tokens.AccessClaims) error {
		if claims.Role != "admin" {
			return echo.NewHTTPError(http.StatusForbidden, "Admin access required")
		}
		return nil
	})
}

func (g *Guard) requireWithValidator(next echo.HandlerFunc, validator validatorFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tokenStr := bearerToken(c.Request())
		if tokenStr == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized access")
		}

		claims, err := tokens.AccessClaimsFromToken(tokenStr, g.JWTSecret)
		if err != nil || claims == nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized access")
		}

		if validator != nil {
			if err := validator(claims); err != nil {
				return err
			}
		}

		c.Set("user_id", claims.Subject)
		c.Set("role", claims.Role)

		return next(c)
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get(echo.HeaderAuthorization)
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return ""
	}
	return strings.TrimSpace(token)
}
