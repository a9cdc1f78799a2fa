package dashboard

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metric label values.
const (
	RoutePage   = "page"
	RouteChart  = "chart"
	RouteAPI    = "api"
	RouteExport = "export"

	StatusOK         = "200"
	StatusBadRequest = "400"
	StatusNotFound   = "404"
	StatusLimited    = "429"
	StatusError      = "500"

	ErrorTypeSelection = "selection_error"
	ErrorTypeAggregate = "aggregate_error"
	ErrorTypeRender    = "render_error"
	ErrorTypeExport    = "export_error"
)

var (
	// HitsTotal counts requests by route and HTTP status code.
	HitsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_hits_total",
		Help: "Total number of dashboard requests",
	}, []string{"route", "status"})

	// ErrorsTotal counts errors by type.
	ErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_errors_total",
		Help: "Total number of dashboard errors",
	}, []string{"type"})

	// EmptyResultsTotal counts renders whose filters matched no rows.
	EmptyResultsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dashboard_empty_results_total",
		Help: "Total number of renders whose filters matched no rows",
	})

	// LatencyHistogram measures request latency by route.
	LatencyHistogram = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "dashboard_latency_seconds",
		Help:    "Latency of dashboard requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
)
