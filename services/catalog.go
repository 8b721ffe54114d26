package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Madhav-Gupta-28/storefront-backend-go/apperr"
	"github.com/Madhav-Gupta-28/storefront-backend-go/cache"
	"github.com/Madhav-Gupta-28/storefront-backend-go/metrics"
	"github.com/Madhav-Gupta-28/storefront-backend-go/models"
	"github.com/Madhav-Gupta-28/storefront-backend-go/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const productCachePrefix = "products:"

type CategoryInput struct {
	Name            string
	CardTitle       string
	CardSubtitle    string
	CardBgColor     string
	CardTextColor   string
	CardGridClasses string
}

type ProductInput struct {
	Name               string             `json:"name"`
	Description        string             `json:"description"`
	Price              *float64           `json:"price"`
	OriginalPrice      *float64           `json:"originalPrice"`
	Currency           string             `json:"currency"`
	CategoryID         string             `json:"categoryId"`
	Colors             []string           `json:"colors"`
	Sizes              []string           `json:"sizes"`
	Materials          []string           `json:"materials"`
	Gender             []string           `json:"gender"`
	Height             *float64           `json:"height"`
	NewArrival         *bool              `json:"newArrival"`
	ImageURLs          *models.ImageSet   `json:"imageUrls"`
	SecondaryImageURLs []models.ImageSet  `json:"secondaryImageUrls"`
	VideoURL           *string            `json:"videoUrl"`
	FocusPoint         *models.FocusPoint `json:"focusPoint"`
}

type ProductListQuery struct {
	Page        int      `json:"page"`
	Limit       int      `json:"limit"`
	CategoryIDs []string `json:"categoryIds,omitempty"`
	Colors      []string `json:"colors,omitempty"`
	Sizes       []string `json:"sizes,omitempty"`
	Materials   []string `json:"materials,omitempty"`
	Gender      string   `json:"gender,omitempty"`
	NewArrival  *bool    `json:"newArrival,omitempty"`
	MinPrice    *float64 `json:"minPrice,omitempty"`
	MaxPrice    *float64 `json:"maxPrice,omitempty"`
	MinHeight   *float64 `json:"minHeight,omitempty"`
	MaxHeight   *float64 `json:"maxHeight,omitempty"`
}

type CatalogServiceConfig struct {
	ProductCacheTTL time.Duration
	PageLimit       int
}

// CatalogService owns categories and products and keeps every category's
// productCount in step with product writes.
//
// A product write and its counter update are two separate storage calls. If
// the counter update fails the request still succeeds; the failure is logged,
// counted in storefront_category_counter_failures_total, and repaired by
// Reconcile.
type CatalogService struct {
	store     store.CatalogStore
	images    ImageProcessor
	cache     cache.Cache
	ttl       time.Duration
	pageLimit int
	logger    *zap.Logger
}

func NewCatalogService(s store.CatalogStore, images ImageProcessor, c cache.Cache, cfg CatalogServiceConfig, logger *zap.Logger) *CatalogService {
	if images == nil {
		images = DataURIProcessor{}
	}
	if c == nil {
		c = cache.Nop{}
	}
	if cfg.PageLimit < 1 {
		cfg.PageLimit = 9
	}
	return &CatalogService{
		store:     s,
		images:    images,
		cache:     c,
		ttl:       cfg.ProductCacheTTL,
		pageLimit: cfg.PageLimit,
		logger:    logger,
	}
}

func (s *CatalogService) storageErr(msg string, err error, fields ...zap.Field) error {
	s.logger.Error(msg, append(fields, zap.Error(err))...)
	return apperr.Storage("Server error: "+msg+".", err)
}

// adjustCount applies a counter delta. Failures are drift, not request errors.
func (s *CatalogService) adjustCount(ctx context.Context, categoryID primitive.ObjectID, delta int) {
	if err := s.store.IncrementProductCount(ctx, categoryID, delta); err != nil {
		metrics.CounterFailures.Inc()
		s.logger.Warn("category product count update failed",
			zap.String("categoryId", categoryID.Hex()),
			zap.Int("delta", delta),
			zap.Error(err),
		)
	}
}

func (s *CatalogService) invalidateProducts(ctx context.Context) {
	s.cache.InvalidatePrefix(ctx, productCachePrefix)
}

// Categories

func (s *CatalogService) CreateCategory(ctx context.Context, in CategoryInput, image *Upload) (*models.Category, error) {
	if image == nil || len(image.Data) == 0 {
		return nil, apperr.Validation("Category image is required.")
	}
	in.Name, in.CardTitle, in.CardSubtitle = strings.TrimSpace(in.Name), strings.TrimSpace(in.CardTitle), strings.TrimSpace(in.CardSubtitle)
	if in.Name == "" || in.CardTitle == "" || in.CardSubtitle == "" {
		return nil, apperr.Validation("Category name, card title, and subtitle are required.")
	}

	taken, err := s.store.CategoryNameTaken(ctx, in.Name, primitive.NilObjectID)
	if err != nil {
		return nil, s.storageErr("could not create the category", err)
	}
	if taken {
		return nil, apperr.Validation("A category with this name already exists.")
	}

	imageURL, thumbURL, err := s.images.Process(ctx, *image)
	if err != nil {
		return nil, apperr.Validation("Category image could not be processed.")
	}

	now := time.Now()
	category := &models.Category{
		Name:            in.Name,
		CardTitle:       in.CardTitle,
		CardSubtitle:    in.CardSubtitle,
		CardBgColor:     orDefault(in.CardBgColor, models.DefaultCardBgColor),
		CardTextColor:   orDefault(in.CardTextColor, models.DefaultCardTextColor),
		CardGridClasses: orDefault(in.CardGridClasses, models.DefaultCardGridClasses),
		ImageURL:        imageURL,
		ThumbnailURL:    thumbURL,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.store.InsertCategory(ctx, category); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, apperr.Validation("A category with this name already exists.")
		}
		return nil, s.storageErr("could not create the category", err)
	}
	return category, nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, rawID string, in CategoryInput, image *Upload) (*models.Category, error) {
	id, err := parseID(rawID, "category")
	if err != nil {
		return nil, err
	}
	category, err := s.findCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(in.Name); name != "" && name != category.Name {
		taken, err := s.store.CategoryNameTaken(ctx, name, id)
		if err != nil {
			return nil, s.storageErr("could not update the category", err)
		}
		if taken {
			return nil, apperr.Validation("Another category with this name already exists.")
		}
		category.Name = name
	}
	category.CardTitle = orDefault(strings.TrimSpace(in.CardTitle), category.CardTitle)
	category.CardSubtitle = orDefault(strings.TrimSpace(in.CardSubtitle), category.CardSubtitle)
	category.CardBgColor = orDefault(in.CardBgColor, category.CardBgColor)
	category.CardTextColor = orDefault(in.CardTextColor, category.CardTextColor)
	category.CardGridClasses = orDefault(in.CardGridClasses, category.CardGridClasses)

	if image != nil && len(image.Data) > 0 {
		imageURL, thumbURL, err := s.images.Process(ctx, *image)
		if err != nil {
			return nil, apperr.Validation("Category image could not be processed.")
		}
		category.ImageURL, category.ThumbnailURL = imageURL, thumbURL
	}
	category.UpdatedAt = time.Now()

	if err := s.store.UpdateCategory(ctx, category); err != nil {
		switch {
		case errors.Is(err, store.ErrDuplicate):
			return nil, apperr.Validation("Another category with this name already exists.")
		case errors.Is(err, store.ErrNotFound):
			return nil, apperr.NotFound("Category")
		}
		return nil, s.storageErr("could not update the category", err, zap.String("categoryId", rawID))
	}
	s.invalidateProducts(ctx)

	// re-read so productCount reflects concurrent counter updates
	return s.findCategory(ctx, id)
}

// DeleteCategory removes every product in the category and then the category.
func (s *CatalogService) DeleteCategory(ctx context.Context, rawID string) (int64, error) {
	id, err := parseID(rawID, "category")
	if err != nil {
		return 0, err
	}
	if _, err := s.findCategory(ctx, id); err != nil {
		return 0, err
	}

	removed, err := s.store.DeleteProductsByCategory(ctx, id)
	if err != nil {
		return 0, s.storageErr("could not delete the category and its products", err, zap.String("categoryId", rawID))
	}
	if err := s.store.DeleteCategory(ctx, id); err != nil && !errors.Is(err, store.ErrNotFound) {
		return removed, s.storageErr("could not delete the category and its products", err, zap.String("categoryId", rawID))
	}
	s.invalidateProducts(ctx)

	s.logger.Info("category deleted", zap.String("categoryId", rawID), zap.Int64("productsRemoved", removed))
	return removed, nil
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, s.storageErr("could not list categories", err)
	}
	return categories, nil
}

// CategoryPreview returns the newest products of a category.
func (s *CatalogService) CategoryPreview(ctx context.Context, rawID string, limit int) ([]models.Product, error) {
	id, err := parseID(rawID, "category")
	if err != nil {
		return nil, err
	}
	if _, err := s.findCategory(ctx, id); err != nil {
		return nil, err
	}
	products, _, err := s.store.ListProducts(ctx, models.ProductFilter{CategoryIDs: []primitive.ObjectID{id}}, 0, limit)
	if err != nil {
		return nil, s.storageErr("could not fetch products for this category", err)
	}
	return products, nil
}

func (s *CatalogService) findCategory(ctx context.Context, id primitive.ObjectID) (*models.Category, error) {
	category, err := s.store.FindCategory(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("Category")
		}
		return nil, s.storageErr("could not load the category", err, zap.String("categoryId", id.Hex()))
	}
	return category, nil
}

// Reconcile recounts every category's products and rewrites the counters
// that drifted. It returns how many categories were corrected.
func (s *CatalogService) Reconcile(ctx context.Context) (int, error) {
	counts, err := s.store.CountProductsByCategory(ctx)
	if err != nil {
		return 0, s.storageErr("could not count products", err)
	}
	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return 0, s.storageErr("could not list categories", err)
	}

	fixed := 0
	for _, c := range categories {
		actual := counts[c.ID]
		if c.ProductCount == actual {
			continue
		}
		if err := s.store.SetProductCount(ctx, c.ID, actual); err != nil {
			return fixed, s.storageErr("could not reset the product count", err, zap.String("categoryId", c.ID.Hex()))
		}
		s.logger.Info("category product count reconciled",
			zap.String("categoryId", c.ID.Hex()),
			zap.Int("was", c.ProductCount),
			zap.Int("now", actual),
		)
		fixed++
	}
	metrics.CountersReconciled.Add(float64(fixed))
	return fixed, nil
}

// RunReconciler calls Reconcile every interval until ctx is done.
func (s *CatalogService) RunReconciler(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.Reconcile(ctx); err != nil {
				s.logger.Warn("scheduled reconciliation failed", zap.Error(err))
			}
		}
	}
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
