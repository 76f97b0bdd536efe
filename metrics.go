package mvc

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics records dispatch outcomes and handler latency in Prometheus.
// Routes are labelled by name (or path); requests that match no route share
// the "unmatched" label.
type Metrics struct {
	dispatches *prometheus.CounterVec
	latency    *prometheus.HistogramVec
	dropped    *prometheus.CounterVec
	gatherer   prometheus.Gatherer
}

// NewMetrics creates the dispatcher collectors and registers them with reg.
// A nil reg uses a fresh registry.
func NewMetrics(reg *prometheus.Registry) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	m := &Metrics{
		dispatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mvc",
			Name:      "dispatches_total",
			Help:      "Dispatched requests by route and outcome.",
		}, []string{"route", "outcome"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "mvc",
			Name:      "handler_duration_seconds",
			Help:      "Handler invocation latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		dropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mvc",
			Name:      "dropped_parameters_total",
			Help:      "Request parameters that matched no handler argument.",
		}, []string{"route"}),
		gatherer: reg,
	}

	for _, c := range []prometheus.Collector{m.dispatches, m.latency, m.dropped} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register metrics: %w", err)
		}
	}
	return m, nil
}

// Handler serves the collected metrics in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

func (m *Metrics) observeDispatch(route string, outcome Outcome) {
	m.dispatches.WithLabelValues(route, outcome.String()).Inc()
}

func (m *Metrics) observeInvocation(route string, d time.Duration) {
	m.latency.WithLabelValues(route).Observe(d.Seconds())
}

func (m *Metrics) observeDropped(route string, n int) {
	m.dropped.WithLabelValues(route).Add(float64(n))
}
