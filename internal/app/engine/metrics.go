package engine

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the engine's Prometheus collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	RecordsConsumed    prometheus.Counter
	SnapshotsPublished prometheus.Counter
	RecordsSkipped     prometheus.Counter
}

// NewMetrics creates and registers the engine metrics.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		RecordsConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mbo_records_consumed_total",
			Help: "Total MBO records consumed from the event topic",
		}),
		SnapshotsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mbp_snapshots_published_total",
			Help: "Total MBP depth snapshots published",
		}),
		RecordsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mbo_records_skipped_total",
			Help: "Total MBO records skipped due to per-record failures",
		}),
	}

	toRegister := []prometheus.Collector{
		m.RecordsConsumed, m.SnapshotsPublished, m.RecordsSkipped,
		collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	}
	for _, c := range toRegister {
		_ = m.registry.Register(c)
	}

	return m
}

// Handler returns an HTTP handler exposing the engine metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
