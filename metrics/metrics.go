package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_http_requests_total",
		Help: "HTTP requests by route, method and status code.",
	}, []string{"route", "method", "code"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "storefront_http_request_duration_seconds",
		Help:    "HTTP request latency by route and method.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "method"})

	OrdersCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_orders_created_total",
		Help: "Orders accepted from customers.",
	})

	OrderStatusChanges = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_order_status_changes_total",
		Help: "Order status updates applied, by target status.",
	}, []string{"status"})

	// CounterFailures counts product writes whose category counter update failed afterwards.
	CounterFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_category_counter_failures_total",
		Help: "Category productCount updates that failed after the product write succeeded.",
	})

	CountersReconciled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_counter_reconciled_total",
		Help: "Category productCount values corrected by reconciliation.",
	})
)
