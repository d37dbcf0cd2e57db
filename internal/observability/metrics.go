package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Drop reasons for RowsDropped.
const (
	ReasonMissing     = "missing"
	ReasonOutOfBounds = "out_of_bounds"
)

// Metrics holds the Prometheus counters, histograms, and gauges for one run.
// They live on a private registry and are written out with WriteTextfile.
type Metrics struct {
	RowsRead    prometheus.Counter
	RowsKept    prometheus.Counter
	RowsDropped *prometheus.CounterVec // labels: reason={missing,out_of_bounds}

	StageDuration     *prometheus.HistogramVec // labels: stage={load,render,present}
	RunSuccess        prometheus.Gauge
	LastLoadTimestamp prometheus.Gauge

	registry *prometheus.Registry
}

// NewMetrics creates the run metrics and registers them on a fresh registry,
// so repeated calls (one per test) never collide.
func NewMetrics() *Metrics {
	m := &Metrics{
		RowsRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "growmap",
			Name:      "rows_read_total",
			Help:      "Data rows read from the sensor CSV.",
		}),
		RowsKept: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "growmap",
			Name:      "rows_kept_total",
			Help:      "Rows that survived cleaning and were plotted.",
		}),
		RowsDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "growmap",
			Name:      "rows_dropped_total",
			Help:      "Rows discarded during cleaning by reason.",
		}, []string{"reason"}),
		StageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "growmap",
			Name:      "stage_duration_seconds",
			Help:      "Wall time spent in each pipeline stage.",
			Buckets:   []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}, []string{"stage"}),
		RunSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "growmap",
			Name:      "run_success",
			Help:      "1 when the last run loaded, rendered, and presented the figure.",
		}),
		LastLoadTimestamp: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "growmap",
			Name:      "last_load_timestamp_seconds",
			Help:      "Unix time at which the last dataset finished cleaning.",
		}),
		registry: prometheus.NewRegistry(),
	}

	m.registry.MustRegister(
		m.RowsRead,
		m.RowsKept,
		m.RowsDropped,
		m.StageDuration,
		m.RunSuccess,
		m.LastLoadTimestamp,
	)

	return m
}

// Registry exposes the registry the metrics are registered on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes every metric in the text exposition format to path,
// atomically, for a node_exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
