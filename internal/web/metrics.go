package web

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics holds the server's Prometheus collectors. Each Server owns its
// registry so tests can build servers side by side.
type metrics struct {
	registry *prometheus.Registry

	lookups  *prometheus.CounterVec
	requests *prometheus.HistogramVec
	items    prometheus.Gauge
}

func newMetrics() *metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &metrics{
		registry: reg,
		lookups: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pricesort_lookups_total",
			Help: "Price lookups by outcome (hit, miss, invalid).",
		}, []string{"result"}),
		requests: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "pricesort_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "status"}),
		items: factory.NewGauge(prometheus.GaugeOpts{
			Name: "pricesort_price_list_items",
			Help: "Rows in the loaded price list.",
		}),
	}
}

func (m *metrics) observeRequest(route string, status int, d time.Duration) {
	m.requests.WithLabelValues(route, strconv.Itoa(status)).Observe(d.Seconds())
}

func (m *metrics) countLookup(matches int, err error) {
	switch {
	case err != nil:
		m.lookups.WithLabelValues("invalid").Inc()
	case matches == 0:
		m.lookups.WithLabelValues("miss").Inc()
	default:
		m.lookups.WithLabelValues("hit").Inc()
	}
}
