// Package store holds the persistence contracts for the catalog and order
// collections along with a MongoDB and an in-memory implementation.
package store

import (
	"context"
	"errors"

	"github.com/Madhav-Gupta-28/storefront-backend-go/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotFound = errors.New("store: document not found")
	// ErrDuplicate reports a unique constraint violation (category name).
	ErrDuplicate = errors.New("store: duplicate key")
	// ErrConditionFailed means the document exists but did not match the write precondition.
	ErrConditionFailed = errors.New("store: precondition failed")
)

type CatalogStore interface {
	InsertCategory(ctx context.Context, c *models.Category) error
	FindCategory(ctx context.Context, id primitive.ObjectID) (*models.Category, error)
	FindCategoriesByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Category, error)
	CategoryNameTaken(ctx context.Context, name string, exclude primitive.ObjectID) (bool, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	// UpdateCategory writes the editable fields; productCount is left to the counter methods.
	UpdateCategory(ctx context.Context, c *models.Category) error
	DeleteCategory(ctx context.Context, id primitive.ObjectID) error
	// IncrementProductCount atomically adds delta to the category's productCount.
	IncrementProductCount(ctx context.Context, id primitive.ObjectID, delta int) error
	SetProductCount(ctx context.Context, id primitive.ObjectID, count int) error

	InsertProduct(ctx context.Context, p *models.Product) error
	FindProduct(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	FindProductsByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Product, error)
	// ListProducts returns products newest first. A limit of 0 returns every match.
	ListProducts(ctx context.Context, f models.ProductFilter, skip, limit int) ([]models.Product, int64, error)
	// UpdateProduct writes the editable fields; view and rating accumulators are untouched.
	CountProducts(ctx context.Context, f models.ProductFilter) (int64, error)
	// ProductFacets reports the distinct colors, sizes and materials in use and the price range.
	ProductFacets(ctx context.Context) (*models.ProductFacets, error)
	UpdateProduct(ctx context.Context, p *models.Product) error
	DeleteProduct(ctx context.Context, id primitive.ObjectID) error
	DeleteProductsByCategory(ctx context.Context, categoryID primitive.ObjectID) (int64, error)
	CountProductsByCategory(ctx context.Context) (map[primitive.ObjectID]int, error)
	// RecordView counts viewer once per product and returns the resulting view count.
	RecordView(ctx context.Context, id primitive.ObjectID, viewer string) (int, error)
	// AddRating applies a rating once per rater; a repeat returns ErrConditionFailed.
	AddRating(ctx context.Context, id primitive.ObjectID, rater string, rating int) (*models.Product, error)
}

type OrderStore interface {
	InsertOrder(ctx context.Context, o *models.Order) error
	// FindOrders returns matching orders newest first. A limit of 0 returns every match.
	FindOrders(ctx context.Context, f models.OrderFilter, skip, limit int) ([]models.Order, error)
	CountOrders(ctx context.Context, f models.OrderFilter) (int64, error)
	// UpdateOrderStatus sets the status in one atomic write. When from is
	// non-empty the current status must be one of its values.
	UpdateOrderStatus(ctx context.Context, id primitive.ObjectID, from []models.OrderStatus, to models.OrderStatus) (*models.Order, error)
	DeleteOrder(ctx context.Context, id primitive.ObjectID) error
	// ScanOrders streams every matching order to fn, stopping at the first error.
	ScanOrders(ctx context.Context, f models.OrderFilter, fn func(*models.Order) error) error
}

var (
	_ CatalogStore = (*MongoStore)(nil)
	_ OrderStore   = (*MongoStore)(nil)
	_ CatalogStore = (*MemoryStore)(nil)
	_ OrderStore   = (*MemoryStore)(nil)
)
