package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Dataset load status label values.
const (
	LoadStatusOK    = "ok"
	LoadStatusError = "error"
)

var (
	DatasetLoads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "coverage_dataset_loads_total",
		Help: "The total number of dataset loads by status",
	}, []string{"status"})

	DatasetLoadDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "coverage_dataset_load_duration_seconds",
		Help:    "Duration of dataset loads",
		Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
	})

	DatasetRows = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "coverage_dataset_rows",
		Help: "Number of rows in the loaded dataset",
	})

	DatasetColumns = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "coverage_dataset_columns",
		Help: "Number of columns in the loaded dataset",
	})
)
