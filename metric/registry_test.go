package metric

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry(t *testing.T) {
	registry := NewRegistry()

	assert.NotNil(t, registry)
	assert.NotNil(t, registry.PrometheusRegistry())
}

func TestNewRegistry_RuntimeCollectors(t *testing.T) {
	registry := NewRegistry()

	metricFamilies, err := registry.PrometheusRegistry().Gather()
	require.NoError(t, err)

	foundMetrics := make(map[string]bool)
	for _, mf := range metricFamilies {
		foundMetrics[mf.GetName()] = true
	}

	assert.True(t, foundMetrics["go_goroutines"],
		"Go runtime collector should be pre-registered")
	assert.True(t, foundMetrics["process_start_time_seconds"],
		"Process collector should be pre-registered")
}

func TestRegistry_RegisterCounter(t *testing.T) {
	registry := NewRegistry()

	counter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "test_counter",
		Help: "A test counter",
	})

	err := registry.RegisterCounter("test-buffer", "test_counter", counter)
	require.NoError(t, err)

	// Should be able to increment the counter
	counter.Inc()

	// Verify the counter is registered in the underlying Prometheus registry
	metricFamilies, err := registry.PrometheusRegistry().Gather()
	require.NoError(t, err)

	found := false
	for _, mf := range metricFamilies {
		if mf.GetName() == "test_counter" {
			found = true
			break
		}
	}
	assert.True(t, found, "Counter should be registered in Prometheus registry")
}

func TestRegistry_RegisterGauge(t *testing.T) {
	registry := NewRegistry()

	gauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "test_gauge",
		Help: "A test gauge",
	})

	err := registry.RegisterGauge("test-buffer", "test_gauge", gauge)
	require.NoError(t, err)

	// Should be able to set the gauge
	gauge.Set(42.0)

	// Verify the gauge is registered
	metricFamilies, err := registry.PrometheusRegistry().Gather()
	require.NoError(t, err)

	found := false
	for _, mf := range metricFamilies {
		if mf.GetName() == "test_gauge" {
			found = true
			break
		}
	}
	assert.True(t, found, "Gauge should be registered in Prometheus registry")
}

func TestRegistry_RegisterHistogram(t *testing.T) {
	registry := NewRegistry()

	histogram := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "test_histogram",
		Help:    "A test histogram",
		Buckets: prometheus.DefBuckets,
	})

	err := registry.RegisterHistogram("test-buffer", "test_histogram", histogram)
	require.NoError(t, err)

	// Should be able to observe values
	histogram.Observe(1.5)

	// Verify the histogram is registered
	metricFamilies, err := registry.PrometheusRegistry().Gather()
	require.NoError(t, err)

	found := false
	for _, mf := range metricFamilies {
		if mf.GetName() == "test_histogram" {
			found = true
			break
		}
	}
	assert.True(t, found, "Histogram should be registered in Prometheus registry")
}

func TestRegistry_RegisterCounterVec(t *testing.T) {
	registry := NewRegistry()

	counterVec := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "test_counter_vec",
			Help: "A test counter vector",
		},
		[]string{"type"},
	)

	err := registry.RegisterCounterVec("test-store", "test_counter_vec", counterVec)
	require.NoError(t, err)

	// Vector metrics only appear in Gather() once a label combination exists
	counterVec.WithLabelValues("palette").Inc()
	counterVec.WithLabelValues("frame").Inc()

	metricFamilies, err := registry.PrometheusRegistry().Gather()
	require.NoError(t, err)

	found := false
	for _, mf := range metricFamilies {
		if mf.GetName() == "test_counter_vec" {
			found = true
			assert.Len(t, mf.GetMetric(), 2, "Both label combinations should be present")
			break
		}
	}
	assert.True(t, found, "CounterVec should be registered in Prometheus registry")
}

func TestRegistry_RegisterGaugeVec(t *testing.T) {
	registry := NewRegistry()

	gaugeVec := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "test_gauge_vec",
			Help: "A test gauge vector",
		},
		[]string{"type"},
	)

	err := registry.RegisterGaugeVec("test-store", "test_gauge_vec", gaugeVec)
	require.NoError(t, err)

	gaugeVec.WithLabelValues("palette").Set(3)

	metricFamilies, err := registry.PrometheusRegistry().Gather()
	require.NoError(t, err)

	found := false
	for _, mf := range metricFamilies {
		if mf.GetName() == "test_gauge_vec" {
			found = true
			break
		}
	}
	assert.True(t, found, "GaugeVec should be registered in Prometheus registry")
}

func TestRegistry_RegisterHistogramVec(t *testing.T) {
	registry := NewRegistry()

	histogramVec := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "test_histogram_vec",
			Help:    "A test histogram vector",
			Buckets: []float64{.001, .01, .1, 1},
		},
		[]string{"type"},
	)

	err := registry.RegisterHistogramVec("test-store", "test_histogram_vec", histogramVec)
	require.NoError(t, err)

	histogramVec.WithLabelValues("palette").Observe(0.05)

	metricFamilies, err := registry.PrometheusRegistry().Gather()
	require.NoError(t, err)

	found := false
	for _, mf := range metricFamilies {
		if mf.GetName() == "test_histogram_vec" {
			found = true
			break
		}
	}
	assert.True(t, found, "HistogramVec should be registered in Prometheus registry")
}

func TestRegistry_PreventDuplicateRegistration(t *testing.T) {
	registry := NewRegistry()

	counter1 := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "duplicate_counter",
		Help: "First counter",
	})

	counter2 := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "duplicate_counter_other",
		Help: "Second counter",
	})

	// First registration should succeed
	err := registry.RegisterCounter("owner", "duplicate_counter", counter1)
	require.NoError(t, err)

	// Second registration under the same key should fail at our tracking level
	err = registry.RegisterCounter("owner", "duplicate_counter", counter2)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateMetric)
}

func TestRegistry_PrometheusConflict(t *testing.T) {
	registry := NewRegistry()

	counter1 := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "conflict_counter",
		Help: "A counter",
	})

	counter2 := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "conflict_counter",
		Help: "A counter",
	})

	// Different keys, same Prometheus metric name
	err := registry.RegisterCounter("owner1", "conflict_counter", counter1)
	require.NoError(t, err)

	err = registry.RegisterCounter("owner2", "conflict_counter", counter2)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateMetric)
	assert.Contains(t, err.Error(), "prometheus conflict")
}

func TestRegistry_Unregister(t *testing.T) {
	registry := NewRegistry()

	counter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "unregister_counter",
		Help: "A counter to unregister",
	})

	// Register the counter
	err := registry.RegisterCounter("test-buffer", "unregister_counter", counter)
	require.NoError(t, err)

	// Unregister the counter
	success := registry.Unregister("test-buffer", "unregister_counter")
	assert.True(t, success)

	// Verify it's no longer registered
	metricFamilies, err := registry.PrometheusRegistry().Gather()
	require.NoError(t, err)

	found := false
	for _, mf := range metricFamilies {
		if mf.GetName() == "unregister_counter" {
			found = true
			break
		}
	}
	assert.False(t, found)

	// Re-registration under the freed key should now succeed
	err = registry.RegisterCounter("test-buffer", "unregister_counter", counter)
	assert.NoError(t, err)
}

func TestRegistry_UnregisterUnknown(t *testing.T) {
	registry := NewRegistry()

	success := registry.Unregister("nobody", "nothing")
	assert.False(t, success)
}

func TestRegistry_ThreadSafety(t *testing.T) {
	registry := NewRegistry()

	var wg sync.WaitGroup
	numGoroutines := 10

	// Register metrics concurrently
	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()

			counter := prometheus.NewCounter(prometheus.CounterOpts{
				Name: fmt.Sprintf("concurrent_counter_%d", id),
				Help: "A concurrent counter",
			})

			err := registry.RegisterCounter("concurrent-owner",
				fmt.Sprintf("concurrent_counter_%d", id), counter)
			assert.NoError(t, err)
		}(i)
	}

	wg.Wait()

	// Verify all metrics were registered
	metricFamilies, err := registry.PrometheusRegistry().Gather()
	require.NoError(t, err)

	counterCount := 0
	for _, mf := range metricFamilies {
		if strings.HasPrefix(mf.GetName(), "concurrent_counter_") {
			counterCount++
		}
	}

	assert.Equal(t, numGoroutines, counterCount,
		"All concurrent counters should be registered")
}

func TestRegistrar_Interface(t *testing.T) {
	registry := NewRegistry()

	// Verify registry implements the Registrar interface
	var registrar Registrar = registry
	assert.NotNil(t, registrar)

	// Test registering through the interface
	counter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "interface_counter",
		Help: "Counter registered through interface",
	})

	err := registrar.RegisterCounter("interface-owner", "interface_counter", counter)
	require.NoError(t, err)
}
