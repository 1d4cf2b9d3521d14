package httpserver_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ecomshop/backend/internal/db"
	"github.com/ecomshop/backend/internal/hash"
	"github.com/ecomshop/backend/internal/httpserver"
	"github.com/ecomshop/backend/internal/models"
	"github.com/ecomshop/backend/internal/repo"
	"github.com/ecomshop/backend/internal/service"
)

var testSecret = []byte("test-jwt-secret")

type testEnv struct {
	T  *testing.T
	E  *echo.Echo
	DB *gorm.DB
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	// one connection keeps every query on the same in-memory database
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Migrate(gdb))

	gormRepo := &repo.GormRepo{DB: gdb}

	authSvc := &service.AuthService{
		Repo:      gormRepo,
		JWTSecret: testSecret,
		TokenTTL:  time.Hour,
	}
	catalogSvc := &service.CatalogService{Repo: gormRepo}
	cartSvc := &service.CartService{Repo: gormRepo}

	e := echo.New()
	httpserver.Register(e, &httpserver.Deps{
		AuthHandler:    &httpserver.AuthHTTP{Svc: authSvc},
		CatalogHandler: &httpserver.CatalogHTTP{Svc: catalogSvc},
		CartHandler:    &httpserver.CartHTTP{Svc: cartSvc},
		JWTSecret:      testSecret,
	})

	t.Cleanup(func() { _ = sqlDB.Close() })

	return &testEnv{T: t, E: e, DB: gdb}
}

func (env *testEnv) do(method, path string, body any, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

func errBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var resp struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Error
}

func register(t *testing.T, env *testEnv, username, password string) {
	t.Helper()

	rec := env.do(http.MethodPost, "/api/register", map[string]string{
		"username": username,
		"password": password,
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code)
}

func login(t *testing.T, env *testEnv, username, password string) string {
	t.Helper()

	rec := env.do(http.MethodPost, "/api/login", map[string]string{
		"username": username,
		"password": password,
	}, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		AccessToken string `json:"access_token"`
		Role        string `json:"role"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.AccessToken)
	return resp.AccessToken
}

func loginUser(t *testing.T, env *testEnv, username string) string {
	t.Helper()

	register(t, env, username, "secret123")
	return login(t, env, username, "secret123")
}

// loginAdmin seeds an admin account directly, the same way startup
// provisioning does, then logs in over the API.
func loginAdmin(t *testing.T, env *testEnv) string {
	t.Helper()

	pwHash, err := hash.HashPassword("admin_password")
	require.NoError(t, err)
	require.NoError(t, env.DB.Create(&models.User{
		Username:     "admin",
		PasswordHash: pwHash,
		Role:         "admin",
	}).Error)

	return login(t, env, "admin", "admin_password")
}

func createProduct(t *testing.T, env *testEnv, adminToken, name string) string {
	t.Helper()

	rec := env.do(http.MethodPost, "/api/products", map[string]any{
		"name":  name,
		"price": 9.99,
		"image": "w.png",
	}, adminToken)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		ProductID string `json:"product_id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.ProductID)
	return resp.ProductID
}
