package services

import (
	"context"
	"sort"

	"github.com/Madhav-Gupta-28/storefront-backend-go/models"
	"github.com/Madhav-Gupta-28/storefront-backend-go/store"
	"github.com/shopspring/decimal"
)

const dayLayout = "2006-01-02"

// statsAccumulator folds orders into the three dashboard summaries. The
// summaries are independent: the histogram sees every order while both
// revenue figures only see confirmed and delivered ones.
type statsAccumulator struct {
	counts     map[models.OrderStatus]int
	daily      map[string]decimal.Decimal
	byCurrency map[models.Currency]decimal.Decimal
}

func newStatsAccumulator() *statsAccumulator {
	return &statsAccumulator{
		counts:     make(map[models.OrderStatus]int),
		daily:      make(map[string]decimal.Decimal),
		byCurrency: make(map[models.Currency]decimal.Decimal),
	}
}

func (a *statsAccumulator) add(o *models.Order) {
	a.counts[o.Status]++

	if !o.Status.CountsAsRevenue() {
		return
	}
	amount := decimal.NewFromFloat(o.TotalPrice)

	day := o.CreatedAt.UTC().Format(dayLayout)
	a.daily[day] = a.daily[day].Add(amount)

	// Orders without a currency are left out rather than attributed to a default.
	if o.Currency != "" {
		a.byCurrency[o.Currency] = a.byCurrency[o.Currency].Add(amount)
	}
}

func (a *statsAccumulator) result() *models.OrderStats {
	counts := make(map[models.OrderStatus]int, len(models.OrderStatuses))
	for _, st := range models.OrderStatuses {
		counts[st] = 0
	}
	for st, n := range a.counts {
		counts[st] = n
	}

	days := make([]string, 0, len(a.daily))
	for day := range a.daily {
		days = append(days, day)
	}
	sort.Strings(days)

	chart := make([]models.RevenuePoint, 0, len(days))
	for _, day := range days {
		chart = append(chart, models.RevenuePoint{Date: day, Revenue: a.daily[day].InexactFloat64()})
	}

	totals := make(map[models.Currency]float64, len(a.byCurrency))
	for cur, sum := range a.byCurrency {
		totals[cur] = sum.InexactFloat64()
	}

	return &models.OrderStats{
		StatusCounts:     counts,
		RevenueChartData: chart,
		TotalRevenue:     totals,
	}
}

// AggregateStats scans the matching orders once and returns the status
// histogram, the daily revenue series and revenue per currency.
func AggregateStats(ctx context.Context, orders store.OrderStore, f models.OrderFilter) (*models.OrderStats, error) {
	acc := newStatsAccumulator()
	err := orders.ScanOrders(ctx, f, func(o *models.Order) error {
		acc.add(o)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return acc.result(), nil
}
