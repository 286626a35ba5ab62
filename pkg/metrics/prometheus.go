package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	queriesTotal  *prometheus.CounterVec
	errorsTotal   *prometheus.CounterVec
	searchResults prometheus.Histogram
	seriesLength  prometheus.Histogram
	datasetStocks prometheus.Gauge
	datasetRows   prometheus.Gauge
	latency       *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		queriesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockscope_queries_total",
				Help: "Total number of dataset queries by operation",
			},
			[]string{"operation"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockscope_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		searchResults: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "stockscope_search_results",
				Help:    "Number of matches returned per search",
				Buckets: []float64{0, 1, 2, 5, 10, 20},
			},
		),
		seriesLength: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "stockscope_series_bars",
				Help:    "Number of bars returned per series query",
				Buckets: []float64{0, 50, 100, 250, 500, 750, 1000, 1500},
			},
		),
		datasetStocks: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "stockscope_dataset_stocks",
				Help: "Stocks currently in the dataset",
			},
		),
		datasetRows: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "stockscope_dataset_price_rows",
				Help: "Price rows currently in the dataset",
			},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "stockscope_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordQuery counts one dataset query for an operation.
func (r *Recorder) RecordQuery(op string) {
	r.queriesTotal.WithLabelValues(op).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordSearchResults records the match count of one search.
func (r *Recorder) RecordSearchResults(n int) {
	r.searchResults.Observe(float64(n))
}

// RecordSeriesLength records the bar count of one series query.
func (r *Recorder) RecordSeriesLength(n int) {
	r.seriesLength.Observe(float64(n))
}

// SetDatasetSize publishes the dataset totals.
func (r *Recorder) SetDatasetSize(stocks, priceRows int64) {
	r.datasetStocks.Set(float64(stocks))
	r.datasetRows.Set(float64(priceRows))
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
