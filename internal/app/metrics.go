package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the service's Prometheus counters. They are exposed through
// the /-/metrics endpoint alongside the default process collectors.
type Metrics struct {
	reloads     *prometheus.CounterVec
	rowsLoaded  prometheus.Counter
	rowsSkipped prometheus.Counter
}

// NewMetrics creates and registers the service counters on the given
// registerer. Tests pass a private prometheus.NewRegistry().
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		reloads: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "quotes_reload_total",
			Help: "Number of reload operations by outcome.",
		}, []string{"status"}),
		rowsLoaded: factory.NewCounter(prometheus.CounterOpts{
			Name: "quotes_rows_loaded_total",
			Help: "Number of CSV rows successfully loaded into the store.",
		}),
		rowsSkipped: factory.NewCounter(prometheus.CounterOpts{
			Name: "quotes_rows_skipped_total",
			Help: "Number of malformed CSV rows skipped during reloads.",
		}),
	}
}

// ReloadSucceeded records a successful reload with its row counts.
func (m *Metrics) ReloadSucceeded(loaded, skipped int) {
	if m == nil {
		return
	}

	m.reloads.WithLabelValues("success").Inc()
	m.rowsLoaded.Add(float64(loaded))
	m.rowsSkipped.Add(float64(skipped))
}

// ReloadFailed records a failed reload.
func (m *Metrics) ReloadFailed() {
	if m == nil {
		return
	}

	m.reloads.WithLabelValues("error").Inc()
}
