package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "workshop_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "workshop_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	StockMovementsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "workshop_stock_movements_total",
			Help: "Stock ledger movements appended, by movement type",
		},
		[]string{"type"},
	)

	PosSalesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "workshop_pos_sales_total",
			Help: "Completed counter sales",
		},
	)

	InvoicesIssuedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "workshop_invoices_issued_total",
			Help: "Invoices issued from job cards",
		},
	)
)
