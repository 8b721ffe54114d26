package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/Madhav-Gupta-28/storefront-backend-go/apperr"
	"github.com/Madhav-Gupta-28/storefront-backend-go/services"
	"github.com/labstack/echo/v4"
)

type ProductHandler struct {
	catalog *services.CatalogService
}

func NewProductHandler(catalog *services.CatalogService) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, v := range strings.Split(raw, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func optionalFloat(c echo.Context, name string) (*float64, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, apperr.Validation("%s must be a number.", name)
	}
	return &v, nil
}

func productQuery(c echo.Context) (services.ProductListQuery, error) {
	q := services.ProductListQuery{
		CategoryIDs: splitList(c.QueryParam("categories")),
		Colors:      splitList(c.QueryParam("colors")),
		Sizes:       splitList(c.QueryParam("sizes")),
		Materials:   splitList(c.QueryParam("materials")),
		Gender:      c.QueryParam("gender"),
	}
	if id := c.QueryParam("categoryId"); id != "" {
		q.CategoryIDs = append(q.CategoryIDs, id)
	}

	err := echo.QueryParamsBinder(c).
		Int("page", &q.Page).
		Int("limit", &q.Limit).
		BindError()
	if err != nil {
		return q, apperr.Validation("Invalid pagination parameters.")
	}

	if raw := c.QueryParam("newArrival"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return q, apperr.Validation("newArrival must be true or false.")
		}
		q.NewArrival = &v
	}
	if q.MinPrice, err = optionalFloat(c, "minPrice"); err != nil {
		return q, err
	}
	if q.MaxPrice, err = optionalFloat(c, "maxPrice"); err != nil {
		return q, err
	}
	if q.MinHeight, err = optionalFloat(c, "minHeight"); err != nil {
		return q, err
	}
	if q.MaxHeight, err = optionalFloat(c, "maxHeight"); err != nil {
		return q, err
	}
	return q, nil
}

// GetProducts - GET /products
func (h *ProductHandler) GetProducts(c echo.Context) error {
	q, err := productQuery(c)
	if err != nil {
		return err
	}

	page, err := h.catalog.ListProducts(c.Request().Context(), q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

// GetProductFilters - GET /products/filters
func (h *ProductHandler) GetProductFilters(c echo.Context) error {
	facets, err := h.catalog.ProductFilters(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, facets)
}

// GetProduct - GET /products/:id
func (h *ProductHandler) GetProduct(c echo.Context) error {
	product, err := h.catalog.GetProduct(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

// CreateProduct - POST /products
func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var req services.ProductInput
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("Invalid request format.")
	}

	product, err := h.catalog.CreateProduct(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, product)
}

// UpdateProduct - PUT /products/:id
func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	var req services.ProductInput
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("Invalid request format.")
	}

	product, err := h.catalog.UpdateProduct(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

// DeleteProduct - DELETE /products/:id
func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	if err := h.catalog.DeleteProduct(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Product deleted successfully."})
}

// RecordView - POST /products/:id/view
func (h *ProductHandler) RecordView(c echo.Context) error {
	views, err := h.catalog.RecordView(c.Request().Context(), c.Param("id"), c.RealIP())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "View recorded.",
		"views":   views,
	})
}

// RateProduct - POST /products/:id/rate
func (h *ProductHandler) RateProduct(c echo.Context) error {
	var req struct {
		Rating int `json:"rating"`
	}
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("Invalid request format.")
	}

	product, err := h.catalog.RateProduct(c.Request().Context(), c.Param("id"), c.RealIP(), req.Rating)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}
