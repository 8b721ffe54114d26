package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Madhav-Gupta-28/storefront-backend-go/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestMemoryStoreCategoryNames(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	shoes := &models.Category{Name: "Shoes"}
	require.NoError(t, s.InsertCategory(ctx, shoes))
	assert.ErrorIs(t, s.InsertCategory(ctx, &models.Category{Name: "Shoes"}), ErrDuplicate)

	taken, err := s.CategoryNameTaken(ctx, "Shoes", shoes.ID)
	require.NoError(t, err)
	assert.False(t, taken)

	taken, err = s.CategoryNameTaken(ctx, "Shoes", primitive.NilObjectID)
	require.NoError(t, err)
	assert.True(t, taken)
}

func TestMemoryStoreUpdateCategoryKeepsCounter(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	c := &models.Category{Name: "Shoes"}
	require.NoError(t, s.InsertCategory(ctx, c))
	require.NoError(t, s.IncrementProductCount(ctx, c.ID, 3))

	stale := *c
	stale.Name = "Sneakers"
	require.NoError(t, s.UpdateCategory(ctx, &stale))

	got, err := s.FindCategory(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sneakers", got.Name)
	assert.Equal(t, 3, got.ProductCount)
}

func TestMemoryStoreUpdateOrderStatusPrecondition(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	o := &models.Order{Status: models.OrderStatusPending, CreatedAt: time.Now()}
	require.NoError(t, s.InsertOrder(ctx, o))

	_, err := s.UpdateOrderStatus(ctx, o.ID, []models.OrderStatus{models.OrderStatusConfirmed}, models.OrderStatusReady)
	assert.ErrorIs(t, err, ErrConditionFailed)

	updated, err := s.UpdateOrderStatus(ctx, o.ID, nil, models.OrderStatusReady)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusReady, updated.Status)

	_, err = s.UpdateOrderStatus(ctx, primitive.NewObjectID(), nil, models.OrderStatusReady)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreOrderWindowAndRange(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, s.InsertOrder(ctx, &models.Order{
			Status:    models.OrderStatusPending,
			CreatedAt: base.AddDate(0, 0, i),
		}))
	}

	page, err := s.FindOrders(ctx, models.OrderFilter{}, 1, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, base.AddDate(0, 0, 3), page[0].CreatedAt)

	from, to := base.AddDate(0, 0, 1), base.AddDate(0, 0, 3)
	n, err := s.CountOrders(ctx, models.OrderFilter{From: &from, To: &to})
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	page, err = s.FindOrders(ctx, models.OrderFilter{}, 10, 2)
	require.NoError(t, err)
	assert.Empty(t, page)
}

func TestMemoryStoreNegativeSkipStartsAtFirstRow(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	for i := 0; i < 3; i++ {
		require.NoError(t, s.InsertOrder(ctx, &models.Order{Status: models.OrderStatusPending, CreatedAt: time.Now()}))
	}

	page, err := s.FindOrders(ctx, models.OrderFilter{}, -4, 2)
	require.NoError(t, err)
	assert.Len(t, page, 2)
}

func TestMemoryStoreProductFacetsAndCount(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	facets, err := s.ProductFacets(ctx)
	require.NoError(t, err)
	assert.Empty(t, facets.Colors)
	assert.Zero(t, facets.PriceRange)

	short, tall := 40.0, 120.0
	require.NoError(t, s.InsertProduct(ctx, &models.Product{Price: 30, Colors: []string{"red"}, Sizes: []string{"S"}, Height: &short}))
	require.NoError(t, s.InsertProduct(ctx, &models.Product{Price: 10, Colors: []string{"blue", "red"}, Materials: []string{"wool"}, Height: &tall}))
	require.NoError(t, s.InsertProduct(ctx, &models.Product{Price: 20}))

	facets, err = s.ProductFacets(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"blue", "red"}, facets.Colors)
	assert.Equal(t, []string{"S"}, facets.Sizes)
	assert.Equal(t, []string{"wool"}, facets.Materials)
	assert.Equal(t, models.PriceRange{MinPrice: 10, MaxPrice: 30}, facets.PriceRange)

	n, err := s.CountProducts(ctx, models.ProductFilter{MinHeight: &short})
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	n, err = s.CountProducts(ctx, models.ProductFilter{MaxHeight: &short})
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	n, err = s.CountProducts(ctx, models.ProductFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)
}

func TestMemoryStoreScanStopsOnError(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	for i := 0; i < 3; i++ {
		require.NoError(t, s.InsertOrder(ctx, &models.Order{CreatedAt: time.Now()}))
	}

	stop := errors.New("stop")
	seen := 0
	err := s.ScanOrders(ctx, models.OrderFilter{}, func(*models.Order) error {
		seen++
		return stop
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, seen)
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	p := &models.Product{Name: "Runner", Colors: []string{"black"}}
	require.NoError(t, s.InsertProduct(ctx, p))

	got, err := s.FindProduct(ctx, p.ID)
	require.NoError(t, err)
	got.Colors[0] = "white"

	again, err := s.FindProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "black", again.Colors[0])
}
