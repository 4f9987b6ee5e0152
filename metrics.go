package doublebuffer

import (
	"github.com/c360/doublebuffer/metric"
	"github.com/prometheus/client_golang/prometheus"
)

// bufferMetrics holds Prometheus metrics for double buffer operations.
type bufferMetrics struct {
	// Counter metrics - directly incremented without stats duplication
	reads   prometheus.Counter
	splits  prometheus.Counter
	applies prometheus.Counter
	swaps   prometheus.Counter

	// Gauge metrics - updated on selector changes
	index prometheus.Gauge
}

// newBufferMetrics creates and registers buffer metrics with the provided registry.
func newBufferMetrics(registry *metric.Registry, name string) (*bufferMetrics, error) {
	m := &bufferMetrics{
		reads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "doublebuffer",
			Name:        "reads_total",
			ConstLabels: prometheus.Labels{"buffer": name},
			Help:        "Total number of Current and Next accessor calls",
		}),
		splits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "doublebuffer",
			Name:        "splits_total",
			ConstLabels: prometheus.Labels{"buffer": name},
			Help:        "Total number of Split and SplitOrdered calls",
		}),
		applies: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "doublebuffer",
			Name:        "applies_total",
			ConstLabels: prometheus.Labels{"buffer": name},
			Help:        "Total number of Apply and ApplyResult invocations",
		}),
		swaps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "doublebuffer",
			Name:        "swaps_total",
			ConstLabels: prometheus.Labels{"buffer": name},
			Help:        "Total number of selector toggles",
		}),
		index: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "doublebuffer",
			Name:        "index",
			ConstLabels: prometheus.Labels{"buffer": name},
			Help:        "Selector position of the current slot (0 or 1)",
		}),
	}

	// Register all metrics with the registry
	if err := registry.RegisterCounter(name, "reads", m.reads); err != nil {
		return nil, err
	}
	if err := registry.RegisterCounter(name, "splits", m.splits); err != nil {
		return nil, err
	}
	if err := registry.RegisterCounter(name, "applies", m.applies); err != nil {
		return nil, err
	}
	if err := registry.RegisterCounter(name, "swaps", m.swaps); err != nil {
		return nil, err
	}
	if err := registry.RegisterGauge(name, "index", m.index); err != nil {
		return nil, err
	}

	return m, nil
}

// recordRead increments the read counter.
func (m *bufferMetrics) recordRead() {
	m.reads.Inc()
}

// recordSplit increments the split counter.
func (m *bufferMetrics) recordSplit() {
	m.splits.Inc()
}

// recordApply increments the apply counter.
func (m *bufferMetrics) recordApply() {
	m.applies.Inc()
}

// recordSwap increments the swap counter and records the new selector position.
func (m *bufferMetrics) recordSwap(index int) {
	m.swaps.Inc()
	m.index.Set(float64(index))
}

// setIndex records the selector position without counting a swap.
func (m *bufferMetrics) setIndex(index int) {
	m.index.Set(float64(index))
}
