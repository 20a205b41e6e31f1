// Package metrics registers the Prometheus metrics exposed at /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus collectors for the monitor.
type Metrics struct {
	registry *prometheus.Registry

	// Snapshot aggregation
	RefreshesTotal  prometheus.Counter
	RefreshDuration prometheus.Histogram
	FetchErrors     *prometheus.CounterVec // labels: group

	// Live tick pipeline
	TicksBroadcast   *prometheus.CounterVec // labels: market
	StreamReconnects prometheus.Counter
	PollErrors       *prometheus.CounterVec // labels: market

	// Viewer fan-out
	ConnectedClients prometheus.Gauge
}

// New registers and returns all collectors on a private registry, so tests
// can create as many instances as they like without duplicate-registration
// panics.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		RefreshesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "monitor_snapshot_refreshes_total",
			Help: "Total aggregate snapshot refresh cycles",
		}),
		RefreshDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "monitor_snapshot_refresh_duration_seconds",
			Help:    "Wall time of a full aggregate refresh",
			Buckets: prometheus.DefBuckets,
		}),
		FetchErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "monitor_fetch_errors_total",
			Help: "Per-instrument fetch/parse failures, by market group",
		}, []string{"group"}),
		TicksBroadcast: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "monitor_ticks_broadcast_total",
			Help: "Ticks fanned out to viewers, by market group",
		}, []string{"market"}),
		StreamReconnects: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "monitor_stream_reconnects_total",
			Help: "Upstream trade stream reconnect attempts",
		}),
		PollErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "monitor_poll_errors_total",
			Help: "Latest-quote poll failures, by market group",
		}, []string{"market"}),
		ConnectedClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "monitor_connected_clients",
			Help: "Currently connected WebSocket viewers",
		}),
	}
	reg.MustRegister(
		m.RefreshesTotal, m.RefreshDuration, m.FetchErrors,
		m.TicksBroadcast, m.StreamReconnects, m.PollErrors,
		m.ConnectedClients,
	)
	return m
}

// Handler returns the HTTP handler serving this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
