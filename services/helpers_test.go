package services

import (
	"context"
	"testing"
	"time"

	"github.com/Madhav-Gupta-28/storefront-backend-go/models"
	"github.com/Madhav-Gupta-28/storefront-backend-go/store"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type fixture struct {
	store   *store.MemoryStore
	catalog *CatalogService
	orders  *OrderService
}

func newFixture(t *testing.T, wf *Workflow) *fixture {
	t.Helper()
	s := store.NewMemoryStore()
	logger := zap.NewNop()
	return &fixture{
		store:   s,
		catalog: NewCatalogService(s, nil, nil, CatalogServiceConfig{}, logger),
		orders:  NewOrderService(s, s, nil, OrderServiceConfig{Workflow: wf}, logger),
	}
}

func ptr[T any](v T) *T { return &v }

func (f *fixture) category(t *testing.T, name string) *models.Category {
	t.Helper()
	c, err := f.catalog.CreateCategory(context.Background(), CategoryInput{
		Name:         name,
		CardTitle:    name,
		CardSubtitle: "New season",
	}, &Upload{Data: []byte("\x89PNG\r\n\x1a\n"), ContentType: "image/png"})
	require.NoError(t, err)
	return c
}

func productInput(name string, price float64, categoryID string) ProductInput {
	return ProductInput{
		Name:       name,
		Price:      ptr(price),
		CategoryID: categoryID,
		Colors:     []string{"black"},
		Sizes:      []string{"42"},
		Materials:  []string{"leather"},
		Gender:     []string{"man"},
		ImageURLs:  &models.ImageSet{Large: "https://cdn.example.com/" + name + ".jpg"},
	}
}

func (f *fixture) product(t *testing.T, name string, price float64, c *models.Category) *models.Product {
	t.Helper()
	p, err := f.catalog.CreateProduct(context.Background(), productInput(name, price, c.ID.Hex()))
	require.NoError(t, err)
	return p
}

func (f *fixture) productCount(t *testing.T, c *models.Category) int {
	t.Helper()
	got, err := f.store.FindCategory(context.Background(), c.ID)
	require.NoError(t, err)
	return got.ProductCount
}

func orderInput(total float64, currency string, lines ...OrderItemInput) CreateOrderInput {
	return CreateOrderInput{
		Products:   lines,
		TotalPrice: ptr(total),
		Currency:   currency,
		FirstName:  "Amina",
		LastName:   "Khelifi",
		Phone1:     "0555123456",
		OrderType:  "delivery",
	}
}

func line(p *models.Product, qty int) OrderItemInput {
	return OrderItemInput{Product: p.ID.Hex(), Quantity: qty, Price: ptr(p.Price)}
}

// seedOrder writes an order directly so tests control status and timestamp.
func (f *fixture) seedOrder(t *testing.T, status models.OrderStatus, total float64, currency models.Currency, at time.Time) *models.Order {
	t.Helper()
	o := &models.Order{
		Products:   []models.OrderItem{{Product: primitive.NewObjectID(), Quantity: 1, Price: total}},
		TotalPrice: total,
		Currency:   currency,
		FirstName:  "Test",
		LastName:   "Customer",
		Phone1:     "0555000000",
		OrderType:  models.OrderTypeDelivery,
		Status:     status,
		CreatedAt:  at,
		UpdatedAt:  at,
	}
	require.NoError(t, f.store.InsertOrder(context.Background(), o))
	return o
}
