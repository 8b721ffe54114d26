package services

import (
	"context"
	"testing"
	"time"

	"github.com/Madhav-Gupta-28/storefront-backend-go/apperr"
	"github.com/Madhav-Gupta-28/storefront-backend-go/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string, hour int) time.Time {
	d, _ := time.Parse(dayLayout, s)
	return d.Add(time.Duration(hour) * time.Hour)
}

func TestStatsSummaries(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	f.seedOrder(t, models.OrderStatusConfirmed, 100, models.CurrencyDZD, day("2024-05-01", 9))
	f.seedOrder(t, models.OrderStatusDelivered, 50.5, models.CurrencyDZD, day("2024-05-01", 23))
	f.seedOrder(t, models.OrderStatusDelivered, 20, models.CurrencyEUR, day("2024-05-03", 1))
	f.seedOrder(t, models.OrderStatusPending, 999, models.CurrencyDZD, day("2024-05-02", 1))
	f.seedOrder(t, models.OrderStatusConfirmed, 30, "", day("2024-05-02", 1))

	stats, err := f.orders.Stats(ctx, StatsQuery{})
	require.NoError(t, err)

	assert.Len(t, stats.StatusCounts, len(models.OrderStatuses))
	assert.Equal(t, 2, stats.StatusCounts[models.OrderStatusConfirmed])
	assert.Equal(t, 2, stats.StatusCounts[models.OrderStatusDelivered])
	assert.Equal(t, 1, stats.StatusCounts[models.OrderStatusPending])
	assert.Equal(t, 0, stats.StatusCounts[models.OrderStatusReturned])

	assert.Equal(t, []models.RevenuePoint{
		{Date: "2024-05-01", Revenue: 150.5},
		{Date: "2024-05-02", Revenue: 30},
		{Date: "2024-05-03", Revenue: 20},
	}, stats.RevenueChartData)

	// the order without a currency counts per day but not per currency
	assert.Equal(t, map[models.Currency]float64{
		models.CurrencyDZD: 150.5,
		models.CurrencyEUR: 20,
	}, stats.TotalRevenue)
}

func TestStatsDateRangeAndStatus(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	f.seedOrder(t, models.OrderStatusConfirmed, 10, models.CurrencyDZD, day("2024-04-30", 12))
	f.seedOrder(t, models.OrderStatusConfirmed, 20, models.CurrencyDZD, day("2024-05-01", 0))
	f.seedOrder(t, models.OrderStatusDelivered, 40, models.CurrencyDZD, day("2024-05-02", 23))
	f.seedOrder(t, models.OrderStatusConfirmed, 80, models.CurrencyDZD, day("2024-05-03", 0))

	stats, err := f.orders.Stats(ctx, StatsQuery{From: "2024-05-01", To: "2024-05-02"})
	require.NoError(t, err)
	assert.Equal(t, 60.0, stats.TotalRevenue[models.CurrencyDZD])

	stats, err = f.orders.Stats(ctx, StatsQuery{Status: "delivered"})
	require.NoError(t, err)
	assert.Equal(t, 40.0, stats.TotalRevenue[models.CurrencyDZD])
	assert.Equal(t, 0, stats.StatusCounts[models.OrderStatusConfirmed])

	_, err = f.orders.Stats(ctx, StatsQuery{From: "05/01/2024"})
	assert.True(t, apperr.Is(err, apperr.KindValidation))
	_, err = f.orders.Stats(ctx, StatsQuery{From: "2024-05-03", To: "2024-05-01"})
	assert.True(t, apperr.Is(err, apperr.KindValidation))
	_, err = f.orders.Stats(ctx, StatsQuery{Status: "lost"})
	assert.True(t, apperr.Is(err, apperr.KindInvalidStatus))
}

func TestStatsEmpty(t *testing.T) {
	f := newFixture(t, nil)

	stats, err := f.orders.Stats(context.Background(), StatsQuery{})
	require.NoError(t, err)
	for _, st := range models.OrderStatuses {
		assert.Zero(t, stats.StatusCounts[st])
	}
	assert.Empty(t, stats.RevenueChartData)
	assert.Empty(t, stats.TotalRevenue)
}

func TestStatsFollowStatusChanges(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	p := f.product(t, "Runner", 4500, f.category(t, "Shoes"))
	order, err := f.orders.CreateOrder(ctx, orderInput(4500, "DZD", line(p, 1)))
	require.NoError(t, err)

	stats, err := f.orders.Stats(ctx, StatsQuery{})
	require.NoError(t, err)
	assert.Empty(t, stats.TotalRevenue)

	_, err = f.orders.SetStatus(ctx, order.ID.Hex(), "confirmed")
	require.NoError(t, err)

	stats, err = f.orders.Stats(ctx, StatsQuery{})
	require.NoError(t, err)
	assert.Equal(t, 4500.0, stats.TotalRevenue[models.CurrencyDZD])
	assert.Equal(t, 1, stats.StatusCounts[models.OrderStatusConfirmed])
}
