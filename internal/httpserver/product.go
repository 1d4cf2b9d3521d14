package httpserver

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/ecomshop/backend/internal/logging"
	"github.com/ecomshop/backend/internal/service"
)

type CatalogHTTP struct {
	Svc *service.CatalogService
}

// GetProducts returns the whole catalog. The data set is assumed bounded;
// there is no pagination.
func (h *CatalogHTTP) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.list")

	items, err := h.Svc.ListProducts(ctx)
	if err != nil {
		l.Error("list_products_error", "status", 500, "error", err)
		return err
	}

	return c.JSON(http.StatusOK, items)
}

func (h *CatalogHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create")

	var req struct {
		Name  string  `json:"name"`
		Price float64 `json:"price"`
		Image string  `json:"image"`
	}

	if err := c.Bind(&req); err != nil {
		l.Warn("create_product_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Name, price, and image are required")
	}

	prod, err := h.Svc.CreateProduct(ctx, req.Name, req.Price, req.Image)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			l.Warn("create_product_error", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "Name, price, and image are required")
		case errors.Is(err, service.ErrConflict):
			l.Warn("create_product_error", "status", 400, "reason", "name taken")
			return echo.NewHTTPError(http.StatusBadRequest, "Product already exists")
		default:
			l.Error("create_product_error", "status", 500, "error", err)
			return err
		}
	}

	l.Info("create_product_success", "product_id", prod.ID)
	return c.JSON(http.StatusCreated, echo.Map{
		"message":    "Product added successfully",
		"product_id": prod.ID,
	})
}

func (h *CatalogHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("delete_product_error", "status", 400, "reason", "malformed id", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid product ID")
	}

	if err := h.Svc.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("delete_product_error", "status", 404, "product_id", id)
			return echo.NewHTTPError(http.StatusNotFound, "Product not found")
		}
		l.Error("delete_product_error", "status", 500, "error", err)
		return err
	}

	l.Info("delete_product_success", "product_id", id)
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Product deleted successfully",
	})
}
