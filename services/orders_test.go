package services

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/Madhav-Gupta-28/storefront-backend-go/apperr"
	"github.com/Madhav-Gupta-28/storefront-backend-go/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCreateOrderStoresReferences(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	p := f.product(t, "Runner", 4500, f.category(t, "Shoes"))

	order, err := f.orders.CreateOrder(ctx, orderInput(9000, "DZD", line(p, 2)))
	require.NoError(t, err)

	assert.False(t, order.ID.IsZero())
	assert.Equal(t, models.OrderStatusPending, order.Status)
	require.Len(t, order.Products, 1)
	assert.Equal(t, p.ID, order.Products[0].Product)
	assert.Equal(t, 2, order.Products[0].Quantity)
}

func TestCreateOrderValidation(t *testing.T) {
	f := newFixture(t, nil)
	p := f.product(t, "Runner", 4500, f.category(t, "Shoes"))

	tests := []struct {
		name   string
		mutate func(*CreateOrderInput)
	}{
		{"no products", func(in *CreateOrderInput) { in.Products = nil }},
		{"no total", func(in *CreateOrderInput) { in.TotalPrice = nil }},
		{"no currency", func(in *CreateOrderInput) { in.Currency = "" }},
		{"unknown currency", func(in *CreateOrderInput) { in.Currency = "GBP" }},
		{"short phone", func(in *CreateOrderInput) { in.Phone1 = "12345" }},
		{"bad optional phone", func(in *CreateOrderInput) { in.Phone2 = "05551234" }},
		{"negative total", func(in *CreateOrderInput) { in.TotalPrice = ptr(-5.0) }},
		{"missing last name", func(in *CreateOrderInput) { in.LastName = "" }},
		{"bad order type", func(in *CreateOrderInput) { in.OrderType = "drone" }},
		{"bad delivery type", func(in *CreateOrderInput) { in.DeliveryType = "roof" }},
		{"bad product id", func(in *CreateOrderInput) { in.Products[0].Product = "xyz" }},
		{"zero quantity", func(in *CreateOrderInput) { in.Products[0].Quantity = 0 }},
		{"missing line price", func(in *CreateOrderInput) { in.Products[0].Price = nil }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := orderInput(4500, "DZD", line(p, 1))
			tt.mutate(&in)
			_, err := f.orders.CreateOrder(context.Background(), in)
			assert.True(t, apperr.Is(err, apperr.KindValidation), "got %v", err)
		})
	}
}

func TestListOrdersProjectsEveryLine(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	shoes := f.category(t, "Shoes")
	boots := f.category(t, "Boots")
	runner := f.product(t, "Runner", 4500, shoes)
	chelsea := f.product(t, "Chelsea", 8000, boots)
	gone := f.product(t, "Gone", 100, shoes)

	_, err := f.orders.CreateOrder(ctx, orderInput(12600, "DZD", line(runner, 1), line(chelsea, 1), line(gone, 1)))
	require.NoError(t, err)

	require.NoError(t, f.catalog.DeleteProduct(ctx, gone.ID.Hex()))
	_, err = f.catalog.DeleteCategory(ctx, boots.ID.Hex())
	require.NoError(t, err)

	page, err := f.orders.ListOrders(ctx, OrderListQuery{})
	require.NoError(t, err)
	require.Len(t, page.Orders, 1)
	lines := page.Orders[0].Products
	require.Len(t, lines, 3)

	assert.Equal(t, "Runner", lines[0].Product.Name)
	assert.Equal(t, "Shoes", lines[0].Product.Category.Name)

	// the cascade removed Chelsea together with Boots
	assert.True(t, lines[1].Product.Missing)
	assert.Equal(t, chelsea.ID, lines[1].Product.ID)

	assert.True(t, lines[2].Product.Missing)
	assert.Equal(t, gone.ID, lines[2].Product.ID)
	assert.Equal(t, 100.0, lines[2].Price)
}

func TestProjectionTombstonesMissingCategory(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	c := f.category(t, "Shoes")
	p := f.product(t, "Runner", 4500, c)
	order, err := f.orders.CreateOrder(ctx, orderInput(4500, "DZD", line(p, 1)))
	require.NoError(t, err)

	require.NoError(t, f.store.DeleteCategory(ctx, c.ID))

	view, err := f.orders.GetOrder(ctx, order.ID.Hex())
	require.NoError(t, err)
	summary := view.Products[0].Product
	assert.False(t, summary.Missing)
	assert.True(t, summary.Category.Missing)
	assert.Equal(t, c.ID, summary.Category.ID)
}

func TestProjectionShowsCurrentPriceBesidePurchasePrice(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	p := f.product(t, "Runner", 4500, f.category(t, "Shoes"))
	order, err := f.orders.CreateOrder(ctx, orderInput(4500, "DZD", line(p, 1)))
	require.NoError(t, err)

	_, err = f.catalog.UpdateProduct(ctx, p.ID.Hex(), ProductInput{Price: ptr(5000.0)})
	require.NoError(t, err)

	view, err := f.orders.GetOrder(ctx, order.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, 4500.0, view.Products[0].Price)
	assert.Equal(t, 5000.0, view.Products[0].Product.Price)
}

func TestListOrdersPagination(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	var ids []primitive.ObjectID
	for i := 0; i < 7; i++ {
		o := f.seedOrder(t, models.OrderStatusPending, 100, models.CurrencyDZD, base.Add(time.Duration(i)*time.Hour))
		ids = append(ids, o.ID)
	}

	seen := map[primitive.ObjectID]bool{}
	for page := 1; page <= 3; page++ {
		res, err := f.orders.ListOrders(ctx, OrderListQuery{Page: page, Limit: 3})
		require.NoError(t, err)
		assert.Equal(t, 3, res.TotalPages)
		assert.Equal(t, page, res.CurrentPage)
		for _, o := range res.Orders {
			assert.False(t, seen[o.ID], "order %s on two pages", o.ID.Hex())
			seen[o.ID] = true
		}
	}
	assert.Len(t, seen, 7)

	first, err := f.orders.ListOrders(ctx, OrderListQuery{Page: 1, Limit: 3})
	require.NoError(t, err)
	assert.Equal(t, ids[6], first.Orders[0].ID)

	res, err := f.orders.ListOrders(ctx, OrderListQuery{Page: 0, Limit: 3})
	require.NoError(t, err)
	assert.Equal(t, 1, res.CurrentPage)

	overview, err := f.orders.ListOrders(ctx, OrderListQuery{Overview: true, Page: 3, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, overview.Orders, 7)
	assert.Equal(t, 1, overview.TotalPages)
	assert.Equal(t, 1, overview.CurrentPage)

	empty := newFixture(t, nil)
	res, err = empty.orders.ListOrders(ctx, OrderListQuery{})
	require.NoError(t, err)
	assert.Zero(t, res.TotalPages)
	assert.Empty(t, res.Orders)
}

func TestListOrdersLimitAboveDefault(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	now := time.Now()
	for i := 0; i < 150; i++ {
		f.seedOrder(t, models.OrderStatusPending, 1, models.CurrencyDZD, now.Add(time.Duration(i)*time.Second))
	}

	res, err := f.orders.ListOrders(ctx, OrderListQuery{Page: 1, Limit: 200})
	require.NoError(t, err)
	assert.Len(t, res.Orders, 150)
	assert.Equal(t, 1, res.TotalPages)

	res, err = f.orders.ListOrders(ctx, OrderListQuery{Page: 2, Limit: 120})
	require.NoError(t, err)
	assert.Len(t, res.Orders, 30)
	assert.Equal(t, 2, res.TotalPages)
}

func TestListOrdersPageBeyondAddressableRange(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	for i := 0; i < 5; i++ {
		f.seedOrder(t, models.OrderStatusPending, 1, models.CurrencyDZD, time.Now())
	}

	tests := []struct {
		name  string
		q     OrderListQuery
		pages int
	}{
		{"page wraps the offset", OrderListQuery{Page: 1 << 62, Limit: 4}, 2},
		{"limit wraps the offset", OrderListQuery{Page: 2, Limit: math.MaxInt}, 1},
		{"max page and limit", OrderListQuery{Page: math.MaxInt, Limit: math.MaxInt}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := f.orders.ListOrders(ctx, tt.q)
			require.NoError(t, err)
			assert.Empty(t, res.Orders)
			assert.Equal(t, tt.q.Page, res.CurrentPage)
			assert.Equal(t, tt.pages, res.TotalPages)
		})
	}

	res, err := f.orders.ListOrders(ctx, OrderListQuery{Page: 1, Limit: math.MaxInt})
	require.NoError(t, err)
	assert.Len(t, res.Orders, 5)
	assert.Equal(t, 1, res.TotalPages)
}

func TestListOrdersStatusFilter(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	now := time.Now()
	f.seedOrder(t, models.OrderStatusPending, 1, models.CurrencyDZD, now)
	f.seedOrder(t, models.OrderStatusDelivered, 1, models.CurrencyDZD, now)

	res, err := f.orders.ListOrders(ctx, OrderListQuery{Status: "delivered"})
	require.NoError(t, err)
	require.Len(t, res.Orders, 1)
	assert.Equal(t, models.OrderStatusDelivered, res.Orders[0].Status)

	_, err = f.orders.ListOrders(ctx, OrderListQuery{Status: "lost"})
	assert.True(t, apperr.Is(err, apperr.KindInvalidStatus))
}

func TestSetStatusOpenWorkflow(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	o := f.seedOrder(t, models.OrderStatusDelivered, 1, models.CurrencyDZD, time.Now())

	view, err := f.orders.SetStatus(ctx, o.ID.Hex(), "pending")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, view.Status)

	_, err = f.orders.SetStatus(ctx, o.ID.Hex(), "shipped")
	assert.True(t, apperr.Is(err, apperr.KindInvalidStatus))

	_, err = f.orders.SetStatus(ctx, primitive.NewObjectID().Hex(), "confirmed")
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	_, err = f.orders.SetStatus(ctx, "bad-id", "confirmed")
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestSetStatusStrictWorkflow(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, StrictWorkflow())
	o := f.seedOrder(t, models.OrderStatusPending, 1, models.CurrencyDZD, time.Now())

	_, err := f.orders.SetStatus(ctx, o.ID.Hex(), "delivered")
	assert.True(t, apperr.Is(err, apperr.KindInvalidTransition))

	for _, st := range []string{"confirmed", "ready", "on-the-way", "delivered"} {
		view, err := f.orders.SetStatus(ctx, o.ID.Hex(), st)
		require.NoError(t, err, st)
		assert.Equal(t, models.OrderStatus(st), view.Status)
	}

	_, err = f.orders.SetStatus(ctx, o.ID.Hex(), "pending")
	assert.True(t, apperr.Is(err, apperr.KindInvalidTransition))
}

func TestDeleteOrder(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	o := f.seedOrder(t, models.OrderStatusPending, 1, models.CurrencyDZD, time.Now())

	require.NoError(t, f.orders.DeleteOrder(ctx, o.ID.Hex()))
	err := f.orders.DeleteOrder(ctx, o.ID.Hex())
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}
