// Package metrics exports store activity as Prometheus metrics.
//
// A *Registry satisfies core.MetricsCollector:
//
//	reg := metrics.NewRegistry()
//	store, err := core.Open("settings.qdt", core.WithMetrics(reg))
//	...
//	http.Handle("/metrics", promhttp.HandlerFor(reg.GetPrometheusRegistry(), promhttp.HandlerOpts{}))
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "quickdata"

// Registry holds all metrics of one or more stores.
type Registry struct {
	SavesTotal          *prometheus.CounterVec
	LoadsTotal          *prometheus.CounterVec
	DefragmentsTotal    *prometheus.CounterVec
	ReclaimedBytesTotal prometheus.Counter
	ResetsTotal         *prometheus.CounterVec
	FileSizeBytes       prometheus.Gauge
	OperationDuration   *prometheus.HistogramVec

	registry *prometheus.Registry
}

// NewRegistry creates a registry with every metric initialized.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	r := &Registry{registry: reg}

	r.SavesTotal = promauto.With(reg).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "saves_total",
			Help:      "Total number of saves by value kind, slot placement and status",
		},
		[]string{"kind", "placement", "status"},
	)

	r.LoadsTotal = promauto.With(reg).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "loads_total",
			Help:      "Total number of loads by value kind and status",
		},
		[]string{"kind", "status"},
	)

	r.DefragmentsTotal = promauto.With(reg).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "defragments_total",
			Help:      "Total number of defragmentation passes by status",
		},
		[]string{"status"},
	)

	r.ReclaimedBytesTotal = promauto.With(reg).NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reclaimed_bytes_total",
			Help:      "Bytes of dead space and slack removed by defragmentation",
		},
	)

	r.ResetsTotal = promauto.With(reg).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resets_total",
			Help:      "Total number of times a store was emptied, by reason",
		},
		[]string{"reason"},
	)

	r.FileSizeBytes = promauto.With(reg).NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "file_size_bytes",
			Help:      "Current size of the store file in bytes",
		},
	)

	r.OperationDuration = promauto.With(reg).NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Store operation duration in seconds",
			Buckets:   []float64{0.00001, 0.0001, 0.001, 0.01, 0.1, 1.0},
		},
		[]string{"operation"},
	)

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry.
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}

func (r *Registry) RecordSave(kind string, inPlace bool, duration time.Duration, err error) {
	placement := "appended"
	if inPlace {
		placement = "in_place"
	}
	r.SavesTotal.WithLabelValues(kind, placement, status(err)).Inc()
	r.OperationDuration.WithLabelValues("save").Observe(duration.Seconds())
}

func (r *Registry) RecordLoad(kind string, duration time.Duration, err error) {
	r.LoadsTotal.WithLabelValues(kind, status(err)).Inc()
	r.OperationDuration.WithLabelValues("load").Observe(duration.Seconds())
}

func (r *Registry) RecordDefragment(before, after int64, duration time.Duration, err error) {
	r.DefragmentsTotal.WithLabelValues(status(err)).Inc()
	r.OperationDuration.WithLabelValues("defragment").Observe(duration.Seconds())
	if err == nil && before > after {
		r.ReclaimedBytesTotal.Add(float64(before - after))
	}
}

func (r *Registry) RecordReset(reason string) {
	r.ResetsTotal.WithLabelValues(reason).Inc()
}

func (r *Registry) SetFileSize(bytes int64) {
	r.FileSizeBytes.Set(float64(bytes))
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
