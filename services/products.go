package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Madhav-Gupta-28/storefront-backend-go/apperr"
	"github.com/Madhav-Gupta-28/storefront-backend-go/cache"
	"github.com/Madhav-Gupta-28/storefront-backend-go/models"
	"github.com/Madhav-Gupta-28/storefront-backend-go/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func validGenders(genders []string) bool {
	if len(genders) == 0 {
		return false
	}
	for _, g := range genders {
		if !models.ValidGender(g) {
			return false
		}
	}
	return true
}

func fillImageSet(set models.ImageSet) models.ImageSet {
	if set.Medium == "" {
		set.Medium = set.Large
	}
	if set.Thumbnail == "" {
		set.Thumbnail = set.Large
	}
	return set
}

// CreateProduct stores a product and increments its category's counter.
func (s *CatalogService) CreateProduct(ctx context.Context, in ProductInput) (*models.Product, error) {
	name := strings.TrimSpace(in.Name)
	gender := trimAll(in.Gender)
	if name == "" || in.Price == nil || in.CategoryID == "" || len(gender) == 0 || in.ImageURLs == nil || in.ImageURLs.Large == "" {
		return nil, apperr.Validation("Missing required fields: name, price, category, gender, and main image are required.")
	}
	if *in.Price < 0 {
		return nil, apperr.Validation("Product price cannot be negative.")
	}
	if !validGenders(gender) {
		return nil, apperr.Validation("Gender must be one of man, woman, baby.")
	}
	colors, materials := trimAll(in.Colors), trimAll(in.Materials)
	if len(colors) == 0 {
		return nil, apperr.Validation("At least one color is required.")
	}
	if len(materials) == 0 {
		return nil, apperr.Validation("At least one material is required.")
	}
	currency := models.CurrencyDZD
	if in.Currency != "" {
		currency = models.Currency(in.Currency)
		if !currency.Valid() {
			return nil, apperr.Validation("Unsupported currency %q.", in.Currency)
		}
	}
	categoryID, err := parseID(in.CategoryID, "category")
	if err != nil {
		return nil, err
	}
	if _, err := s.findCategory(ctx, categoryID); err != nil {
		return nil, err
	}

	now := time.Now()
	product := &models.Product{
		Name:               name,
		Description:        in.Description,
		Price:              *in.Price,
		OriginalPrice:      in.OriginalPrice,
		Currency:           currency,
		Category:           categoryID,
		Colors:             colors,
		Sizes:              trimAll(in.Sizes),
		Materials:          materials,
		Gender:             gender,
		Height:             in.Height,
		ImageURLs:          fillImageSet(*in.ImageURLs),
		SecondaryImageURLs: []models.ImageSet{},
		FocusPoint:         models.FocusPoint{X: 0.5, Y: 0.5},
		ViewedBy:           []string{},
		RatedBy:            []string{},
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if in.NewArrival != nil {
		product.NewArrival = *in.NewArrival
	}
	for _, img := range in.SecondaryImageURLs {
		product.SecondaryImageURLs = append(product.SecondaryImageURLs, fillImageSet(img))
	}
	if in.VideoURL != nil {
		product.VideoURL = *in.VideoURL
	}
	if in.FocusPoint != nil {
		product.FocusPoint = *in.FocusPoint
	}

	if err := s.store.InsertProduct(ctx, product); err != nil {
		return nil, s.storageErr("could not create the product", err)
	}
	s.adjustCount(ctx, categoryID, 1)
	s.invalidateProducts(ctx)
	return product, nil
}

// UpdateProduct applies the provided fields. Moving the product to another
// category decrements the old counter and increments the new one.
func (s *CatalogService) UpdateProduct(ctx context.Context, rawID string, in ProductInput) (*models.Product, error) {
	id, err := parseID(rawID, "product")
	if err != nil {
		return nil, err
	}
	product, err := s.findProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(in.Name); name != "" {
		product.Name = name
	}
	if in.Description != "" {
		product.Description = in.Description
	}
	if in.Price != nil {
		if *in.Price < 0 {
			return nil, apperr.Validation("Product price cannot be negative.")
		}
		product.Price = *in.Price
	}
	if in.OriginalPrice != nil {
		product.OriginalPrice = in.OriginalPrice
	}
	if in.Currency != "" {
		currency := models.Currency(in.Currency)
		if !currency.Valid() {
			return nil, apperr.Validation("Unsupported currency %q.", in.Currency)
		}
		product.Currency = currency
	}
	if in.Gender != nil {
		gender := trimAll(in.Gender)
		if !validGenders(gender) {
			return nil, apperr.Validation("Gender must be one of man, woman, baby.")
		}
		product.Gender = gender
	}
	if colors := trimAll(in.Colors); len(colors) > 0 {
		product.Colors = colors
	}
	if in.Sizes != nil {
		product.Sizes = trimAll(in.Sizes)
	}
	if materials := trimAll(in.Materials); len(materials) > 0 {
		product.Materials = materials
	}
	if in.Height != nil {
		product.Height = in.Height
	}
	if in.NewArrival != nil {
		product.NewArrival = *in.NewArrival
	}
	if in.ImageURLs != nil && in.ImageURLs.Large != "" {
		product.ImageURLs = fillImageSet(*in.ImageURLs)
	}
	if in.SecondaryImageURLs != nil {
		product.SecondaryImageURLs = product.SecondaryImageURLs[:0]
		for _, img := range in.SecondaryImageURLs {
			product.SecondaryImageURLs = append(product.SecondaryImageURLs, fillImageSet(img))
		}
	}
	if in.VideoURL != nil {
		product.VideoURL = *in.VideoURL
	}
	if in.FocusPoint != nil {
		product.FocusPoint = *in.FocusPoint
	}

	oldCategory := product.Category
	if in.CategoryID != "" {
		newCategory, err := parseID(in.CategoryID, "category")
		if err != nil {
			return nil, err
		}
		if newCategory != oldCategory {
			if _, err := s.findCategory(ctx, newCategory); err != nil {
				return nil, err
			}
			product.Category = newCategory
		}
	}
	product.UpdatedAt = time.Now()

	if err := s.store.UpdateProduct(ctx, product); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("Product")
		}
		return nil, s.storageErr("could not update the product", err, zap.String("productId", rawID))
	}
	if product.Category != oldCategory {
		s.adjustCount(ctx, oldCategory, -1)
		s.adjustCount(ctx, product.Category, 1)
	}
	s.invalidateProducts(ctx)
	return product, nil
}

// DeleteProduct removes the product and decrements its category's counter.
func (s *CatalogService) DeleteProduct(ctx context.Context, rawID string) error {
	id, err := parseID(rawID, "product")
	if err != nil {
		return err
	}
	product, err := s.findProduct(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperr.NotFound("Product")
		}
		return s.storageErr("could not delete the product", err, zap.String("productId", rawID))
	}
	s.adjustCount(ctx, product.Category, -1)
	s.invalidateProducts(ctx)
	return nil
}

func (s *CatalogService) GetProduct(ctx context.Context, rawID string) (*models.ProductView, error) {
	id, err := parseID(rawID, "product")
	if err != nil {
		return nil, err
	}
	product, err := s.findProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	views, err := s.populate(ctx, []models.Product{*product})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (q ProductListQuery) filter() (models.ProductFilter, error) {
	f := models.ProductFilter{
		Colors:     q.Colors,
		Sizes:      q.Sizes,
		Materials:  q.Materials,
		Gender:     q.Gender,
		NewArrival: q.NewArrival,
		MinPrice:   q.MinPrice,
		MaxPrice:   q.MaxPrice,
		MinHeight:  q.MinHeight,
		MaxHeight:  q.MaxHeight,
	}
	for _, raw := range q.CategoryIDs {
		id, err := parseID(raw, "category")
		if err != nil {
			return f, err
		}
		f.CategoryIDs = append(f.CategoryIDs, id)
	}
	return f, nil
}

// ListProducts returns a filtered page of products, newest first.
func (s *CatalogService) ListProducts(ctx context.Context, q ProductListQuery) (*models.ProductPage, error) {
	q.Page, q.Limit = normalizePage(q.Page, q.Limit, s.pageLimit)
	f, err := q.filter()
	if err != nil {
		return nil, err
	}

	key := cache.Key(productCachePrefix+"list:", q)
	var cached models.ProductPage
	if s.ttl > 0 && s.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	var (
		products []models.Product
		total    int64
	)
	if skip, ok := pageOffset(q.Page, q.Limit); ok {
		products, total, err = s.store.ListProducts(ctx, f, skip, q.Limit)
	} else {
		total, err = s.store.CountProducts(ctx, f)
	}
	if err != nil {
		return nil, s.storageErr("could not fetch products", err)
	}
	views, err := s.populate(ctx, products)
	if err != nil {
		return nil, err
	}

	page := &models.ProductPage{
		Products:      views,
		TotalPages:    totalPages(total, q.Limit),
		CurrentPage:   q.Page,
		TotalProducts: total,
	}
	if s.ttl > 0 {
		s.cache.Set(ctx, key, page, s.ttl)
	}
	return page, nil
}

// ProductFilters returns the colors, sizes and materials in use and the
// catalog's price range.
func (s *CatalogService) ProductFilters(ctx context.Context) (*models.ProductFacets, error) {
	key := productCachePrefix + "filters"
	var cached models.ProductFacets
	if s.ttl > 0 && s.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	facets, err := s.store.ProductFacets(ctx)
	if err != nil {
		return nil, s.storageErr("could not fetch product filters", err)
	}
	if s.ttl > 0 {
		s.cache.Set(ctx, key, facets, s.ttl)
	}
	return facets, nil
}

// RecordView counts one view per viewer and returns the product's view count.
func (s *CatalogService) RecordView(ctx context.Context, rawID, viewer string) (int, error) {
	id, err := parseID(rawID, "product")
	if err != nil {
		return 0, err
	}
	views, err := s.store.RecordView(ctx, id, viewer)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return 0, apperr.NotFound("Product")
		}
		return 0, s.storageErr("could not update view count", err, zap.String("productId", rawID))
	}
	return views, nil
}

// RateProduct records a 1 to 5 rating, once per rater.
func (s *CatalogService) RateProduct(ctx context.Context, rawID, rater string, rating int) (*models.ProductView, error) {
	if rating < 1 || rating > 5 {
		return nil, apperr.Validation("Invalid rating. Please provide a rating between 1 and 5.")
	}
	id, err := parseID(rawID, "product")
	if err != nil {
		return nil, err
	}
	product, err := s.store.AddRating(ctx, id, rater, rating)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return nil, apperr.NotFound("Product")
	case errors.Is(err, store.ErrConditionFailed):
		return nil, apperr.Conflict("You have already rated this product.")
	case err != nil:
		return nil, s.storageErr("could not save the rating", err, zap.String("productId", rawID))
	}
	s.invalidateProducts(ctx)

	views, err := s.populate(ctx, []models.Product{*product})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *CatalogService) findProduct(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	product, err := s.store.FindProduct(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("Product")
		}
		return nil, s.storageErr("could not load the product", err, zap.String("productId", id.Hex()))
	}
	return product, nil
}

// populate joins each product's category name and computes its average rating.
func (s *CatalogService) populate(ctx context.Context, products []models.Product) ([]models.ProductView, error) {
	ids := uniqueIDs(len(products), func(add func(primitive.ObjectID)) {
		for _, p := range products {
			add(p.Category)
		}
	})
	categories, err := s.store.FindCategoriesByIDs(ctx, ids)
	if err != nil {
		return nil, s.storageErr("could not load categories", err)
	}

	views := make([]models.ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, models.ProductView{
			Product:       p,
			Category:      categoryRef(p.Category, categories),
			AverageRating: p.AverageRating(),
		})
	}
	return views, nil
}
