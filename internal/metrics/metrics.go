// Package metrics exposes poller and probe counters in Prometheus format.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "statusboard"

const (
	ResultOK        = "ok"
	ResultError     = "error"
	ResultListError = "list_error"
)

type Metrics struct {
	registry *prometheus.Registry

	pollCycles    *prometheus.CounterVec
	statusFetches *prometheus.CounterVec
	staleResults  prometheus.Counter
	probes        *prometheus.CounterVec
	boardRows     prometheus.Gauge
}

// New creates a Metrics with its own registry so tests and multiple apps in
// one process do not collide.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		pollCycles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "poll_cycles_total",
			Help:      "Poll cycles by outcome of the identifier list fetch.",
		}, []string{"result"}),
		statusFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "status_fetches_total",
			Help:      "Single service status fetches by outcome.",
		}, []string{"result"}),
		staleResults: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stale_results_total",
			Help:      "Status results dropped because a newer cycle had started.",
		}),
		probes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "probes_total",
			Help:      "Service probes by resulting status.",
		}, []string{"status"}),
		boardRows: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "board_rows",
			Help:      "Rows in the status table after the last settled cycle.",
		}),
	}

	m.registry.MustRegister(
		m.pollCycles,
		m.statusFetches,
		m.staleResults,
		m.probes,
		m.boardRows,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) ObservePollCycle(err error) {
	if err != nil {
		m.pollCycles.WithLabelValues(ResultListError).Inc()
		return
	}
	m.pollCycles.WithLabelValues(ResultOK).Inc()
}

func (m *Metrics) ObserveStatusFetch(err error) {
	if err != nil {
		m.statusFetches.WithLabelValues(ResultError).Inc()
		return
	}
	m.statusFetches.WithLabelValues(ResultOK).Inc()
}

func (m *Metrics) ObserveStaleResult() {
	m.staleResults.Inc()
}

func (m *Metrics) ObserveProbe(status string) {
	m.probes.WithLabelValues(status).Inc()
}

func (m *Metrics) SetBoardRows(n int) {
	m.boardRows.Set(float64(n))
}
