package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics of the API.
type Metrics struct {
	Requests        *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	Uploads         prometheus.Counter
	UploadFailures  *prometheus.CounterVec
	TenantsScored   prometheus.Counter
	Datasets        prometheus.Gauge
	Exports         *prometheus.CounterVec
}

// NewMetrics creates the metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		Requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "rent_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "rent_http_request_duration_seconds",
			Help:    "Latency of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		Uploads: factory.NewCounter(prometheus.CounterOpts{
			Name: "rent_uploads_total",
			Help: "Total number of tenant files accepted",
		}),
		UploadFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "rent_upload_failures_total",
			Help: "Total number of tenant files rejected",
		}, []string{"reason"}),
		TenantsScored: factory.NewCounter(prometheus.CounterOpts{
			Name: "rent_tenants_scored_total",
			Help: "Total number of tenants scored",
		}),
		Datasets: factory.NewGauge(prometheus.GaugeOpts{
			Name: "rent_datasets",
			Help: "Current number of datasets held in memory",
		}),
		Exports: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "rent_exports_total",
			Help: "Total number of CSV exports served",
		}, []string{"kind"}),
	}
}
