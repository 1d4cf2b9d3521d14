package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecomshop/backend/internal/tokens"
)

var testSecret = []byte("guard-test-secret")

func newContext(t *testing.T, token string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

func okHandler(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

func httpErrorCode(t *testing.T, err error) int {
	t.Helper()

	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	return he.Code
}

func TestRequireAuth_MissingToken(t *testing.T) {
	guard := NewGuard(testSecret)
	c, _ := newContext(t, "")

	err := guard.RequireAuth(okHandler)(c)
	assert.Equal(t, http.StatusUnauthorized, httpErrorCode(t, err))
}

func TestRequireAuth_NonBearerHeader(t *testing.T) {
	guard := NewGuard(testSecret)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Basic dXNlcjpwYXNz")
	c := echo.New().NewContext(req, httptest.NewRecorder())

	err := guard.RequireAuth(okHandler)(c)
	assert.Equal(t, http.StatusUnauthorized, httpErrorCode(t, err))
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	guard := NewGuard(testSecret)
	c, _ := newContext(t, "garbage")

	err := guard.RequireAuth(okHandler)(c)
	assert.Equal(t, http.StatusUnauthorized, httpErrorCode(t, err))
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	guard := NewGuard(testSecret)

	token, err := tokens.NewAccessToken(uuid.New(), "user", -time.Minute, testSecret)
	require.NoError(t, err)

	c, _ := newContext(t, token)
	authErr := guard.RequireAuth(okHandler)(c)
	assert.Equal(t, http.StatusUnauthorized, httpErrorCode(t, authErr))
}

func TestRequireAuth_SetsIdentity(t *testing.T) {
	guard := NewGuard(testSecret)
	userID := uuid.New()

	token, err := tokens.NewAccessToken(userID, "user", time.Hour, testSecret)
	require.NoError(t, err)

	c, rec := newContext(t, token)
	require.NoError(t, guard.RequireAuth(okHandler)(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID.String(), c.Get("user_id"))
	assert.Equal(t, "user", c.Get("role"))
}

func TestRequireAdmin_RoleMismatch(t *testing.T) {
	guard := NewGuard(testSecret)

	token, err := tokens.NewAccessToken(uuid.New(), "user", time.Hour, testSecret)
	require.NoError(t, err)

	c, _ := newContext(t, token)
	authErr := guard.RequireAdmin(okHandler)(c)
	assert.Equal(t, http.StatusForbidden, httpErrorCode(t, authErr))
}

func TestRequireAdmin_InvalidTokenIsUnauthorizedNotForbidden(t *testing.T) {
	guard := NewGuard(testSecret)
	c, _ := newContext(t, "garbage")

	err := guard.RequireAdmin(okHandler)(c)
	assert.Equal(t, http.StatusUnauthorized, httpErrorCode(t, err))
}

func TestRequireAdmin_AdminPasses(t *testing.T) {
	guard := NewGuard(testSecret)

	token, err := tokens.NewAccessToken(uuid.New(), "admin", time.Hour, testSecret)
	require.NoError(t, err)

	c, rec := newContext(t, token)
	require.NoError(t, guard.RequireAdmin(okHandler)(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "admin", c.Get("role"))
}
