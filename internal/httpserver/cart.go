package httpserver

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/ecomshop/backend/internal/logging"
	"github.com/ecomshop/backend/internal/service"
)

type CartHTTP struct {
	Svc *service.CartService
}

// userID comes from the verified token via the guard, never from the request
// body, so a caller can only ever touch their own cart.
func (h *CartHTTP) userID(c echo.Context) (uuid.UUID, error) {
	v := c.Get("user_id")
	s, ok := v.(string)
	if !ok || s == "" {
		return uuid.Nil, errors.New("no verified identity in context")
	}

	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (h *CartHTTP) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add")

	userID, err := h.userID(c)
	if err != nil {
		l.Error("add_to_cart_error", "status", 401, "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized access")
	}

	var req struct {
		ProductID string `json:"product_id"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("add_to_cart_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid product ID")
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		l.Warn("add_to_cart_error", "status", 400, "reason", "malformed id", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid product ID")
	}

	if err := h.Svc.AddToCart(ctx, userID, productID); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			l.Warn("add_to_cart_error", "status", 404, "product_id", productID)
			return echo.NewHTTPError(http.StatusNotFound, "Product not found")
		case errors.Is(err, service.ErrConflict):
			l.Warn("add_to_cart_error", "status", 400, "product_id", productID)
			return echo.NewHTTPError(http.StatusBadRequest, "Product already in cart")
		default:
			l.Error("add_to_cart_error", "status", 500, "error", err)
			return err
		}
	}

	l.Info("add_to_cart_success", "product_id", productID)
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Product added to cart",
	})
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.list")

	userID, err := h.userID(c)
	if err != nil {
		l.Error("get_cart_error", "status", 401, "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized access")
	}

	products, err := h.Svc.ListCart(ctx, userID)
	if err != nil {
		l.Error("get_cart_error", "status", 500, "error", err)
		return err
	}

	return c.JSON(http.StatusOK, products)
}

func (h *CartHTTP) RemoveFromCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove")

	userID, err := h.userID(c)
	if err != nil {
		l.Error("remove_from_cart_error", "status", 401, "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized access")
	}

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("remove_from_cart_error", "status", 400, "reason", "malformed id", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid product ID")
	}

	if err := h.Svc.RemoveFromCart(ctx, userID, productID); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("remove_from_cart_error", "status", 404, "product_id", productID)
			return echo.NewHTTPError(http.StatusNotFound, "Product not found in cart")
		}
		l.Error("remove_from_cart_error", "status", 500, "error", err)
		return err
	}

	l.Info("remove_from_cart_success", "product_id", productID)
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Product removed from cart",
	})
}
