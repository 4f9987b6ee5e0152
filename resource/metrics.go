package resource

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/c360/doublebuffer/metric"
)

// storeMetrics holds Prometheus metrics for store operations.
type storeMetrics struct {
	resources prometheus.Gauge

	// Vector metrics - labeled by resource type
	reads          *prometheus.CounterVec
	updates        *prometheus.CounterVec
	updateDuration *prometheus.HistogramVec
}

// newStoreMetrics creates and registers store metrics with the provided registry.
func newStoreMetrics(registry *metric.Registry, name string) (*storeMetrics, error) {
	m := &storeMetrics{
		resources: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "doublebuffer",
			Subsystem:   "store",
			Name:        "resources",
			ConstLabels: prometheus.Labels{"store": name},
			Help:        "Current number of registered resources",
		}),
		reads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   "doublebuffer",
			Subsystem:   "store",
			Name:        "reads_total",
			ConstLabels: prometheus.Labels{"store": name},
			Help:        "Total number of Read callbacks by resource type",
		}, []string{"type"}),
		updates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   "doublebuffer",
			Subsystem:   "store",
			Name:        "updates_total",
			ConstLabels: prometheus.Labels{"store": name},
			Help:        "Total number of Update callbacks by resource type",
		}, []string{"type"}),
		updateDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   "doublebuffer",
			Subsystem:   "store",
			Name:        "update_duration_seconds",
			ConstLabels: prometheus.Labels{"store": name},
			Help:        "Time spent inside Update callbacks by resource type",
			Buckets:     []float64{.0001, .001, .01, .1, 1, 10},
		}, []string{"type"}),
	}

	// Register all metrics with the registry
	if err := registry.RegisterGauge(name, "resources", m.resources); err != nil {
		return nil, err
	}
	if err := registry.RegisterCounterVec(name, "reads", m.reads); err != nil {
		return nil, err
	}
	if err := registry.RegisterCounterVec(name, "updates", m.updates); err != nil {
		return nil, err
	}
	if err := registry.RegisterHistogramVec(name, "update_duration", m.updateDuration); err != nil {
		return nil, err
	}

	return m, nil
}

// setResources records the current registration count.
func (m *storeMetrics) setResources(count int) {
	m.resources.Set(float64(count))
}

// recordRead increments the read counter for a resource type.
func (m *storeMetrics) recordRead(resourceType string) {
	m.reads.WithLabelValues(resourceType).Inc()
}

// recordUpdate increments the update counter and observes the callback duration.
func (m *storeMetrics) recordUpdate(resourceType string, duration time.Duration) {
	m.updates.WithLabelValues(resourceType).Inc()
	m.updateDuration.WithLabelValues(resourceType).Observe(duration.Seconds())
}
