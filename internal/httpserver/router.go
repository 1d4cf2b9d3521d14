package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	middleware "github.com/ecomshop/backend/internal/middleware/auth"
)

type Deps struct {
	AuthHandler    *AuthHTTP
	CatalogHandler *CatalogHTTP
	CartHandler    *CartHTTP
	JWTSecret      []byte
}

func Register(e *echo.Echo, d *Deps) {
	e.HTTPErrorHandler = HTTPErrorHandler

	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"message": "E-commerce API is running"})
	})
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	guard := middleware.NewGuard(d.JWTSecret)

	api := e.Group("/api")

	api.POST("/register", d.AuthHandler.Register)
	api.POST("/login", d.AuthHandler.Login)

	api.GET("/products", d.CatalogHandler.GetProducts)

	admin := api.Group("/products", guard.RequireAdmin)
	admin.POST("", d.CatalogHandler.CreateProduct)
	admin.DELETE("/:id", d.CatalogHandler.DeleteProduct)

	cart := api.Group("/cart", guard.RequireAuth)
	cart.POST("/add", d.CartHandler.AddToCart)
	cart.GET("", d.CartHandler.GetCart)
	cart.DELETE("/remove/:id", d.CartHandler.RemoveFromCart)
}
