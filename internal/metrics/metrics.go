// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	QuotesGenerated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "presupuestos",
		Name:      "quotes_generated_total",
		Help:      "Quotes successfully generated.",
	})

	QuoteFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "presupuestos",
		Name:      "quote_failures_total",
		Help:      "Quote generation failures by error kind.",
	}, []string{"kind"})

	ImportedRows = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "presupuestos",
		Name:      "import_rows_total",
		Help:      "Spreadsheet rows processed by the catalog import, by outcome.",
	}, []string{"outcome"})

	HTTPDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "presupuestos",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route pattern and status.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	registry = prometheus.NewRegistry()
)

func init() {
	registry.MustRegister(
		QuotesGenerated,
		QuoteFailures,
		ImportedRows,
		HTTPDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// Handler serves the registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
