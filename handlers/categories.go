package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/Madhav-Gupta-28/storefront-backend-go/apperr"
	"github.com/Madhav-Gupta-28/storefront-backend-go/services"
	"github.com/labstack/echo/v4"
)

const categoryPreviewSize = 2

type CategoryHandler struct {
	catalog        *services.CatalogService
	maxUploadBytes int64
}

func NewCategoryHandler(catalog *services.CatalogService, maxUploadBytes int64) *CategoryHandler {
	return &CategoryHandler{catalog: catalog, maxUploadBytes: maxUploadBytes}
}

func categoryForm(c echo.Context) services.CategoryInput {
	return services.CategoryInput{
		Name:            c.FormValue("name"),
		CardTitle:       c.FormValue("cardTitle"),
		CardSubtitle:    c.FormValue("cardSubtitle"),
		CardBgColor:     c.FormValue("cardBgColor"),
		CardTextColor:   c.FormValue("cardTextColor"),
		CardGridClasses: c.FormValue("cardGridClasses"),
	}
}

// readImage returns the uploaded "image" file, or nil when none was sent.
func (h *CategoryHandler) readImage(c echo.Context) (*services.Upload, error) {
	file, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, apperr.Validation("Invalid image upload.")
	}
	if h.maxUploadBytes > 0 && file.Size > h.maxUploadBytes {
		return nil, apperr.Validation("Image exceeds the %d byte upload limit.", h.maxUploadBytes)
	}

	src, err := file.Open()
	if err != nil {
		return nil, apperr.Validation("Invalid image upload.")
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, apperr.Validation("Invalid image upload.")
	}
	return &services.Upload{Data: data, ContentType: file.Header.Get(echo.HeaderContentType)}, nil
}

// GetCategories - GET /categories
func (h *CategoryHandler) GetCategories(c echo.Context) error {
	categories, err := h.catalog.ListCategories(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, categories)
}

// GetCategoryProducts - GET /categories/:id/products
func (h *CategoryHandler) GetCategoryProducts(c echo.Context) error {
	products, err := h.catalog.CategoryPreview(c.Request().Context(), c.Param("id"), categoryPreviewSize)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

// CreateCategory - POST /categories (multipart)
func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	image, err := h.readImage(c)
	if err != nil {
		return err
	}

	category, err := h.catalog.CreateCategory(c.Request().Context(), categoryForm(c), image)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, category)
}

// UpdateCategory - PUT /categories/:id (multipart, image optional)
func (h *CategoryHandler) UpdateCategory(c echo.Context) error {
	image, err := h.readImage(c)
	if err != nil {
		return err
	}

	category, err := h.catalog.UpdateCategory(c.Request().Context(), c.Param("id"), categoryForm(c), image)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, category)
}

// DeleteCategory - DELETE /categories/:id
func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	removed, err := h.catalog.DeleteCategory(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":         "Category and associated products deleted successfully.",
		"deletedProducts": removed,
	})
}

// ReconcileCounts - POST /categories/reconcile
func (h *CategoryHandler) ReconcileCounts(c echo.Context) error {
	fixed, err := h.catalog.Reconcile(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Category product counts reconciled.",
		"fixed":   fixed,
	})
}
