package doublebuffer

import (
	"testing"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/doublebuffer/metric"
)

// counterValue reads the current value of a counter through the client data model.
func counterValue(t *testing.T, m *dto.Metric, write func(*dto.Metric) error) float64 {
	t.Helper()
	require.NoError(t, write(m))
	return m.GetCounter().GetValue()
}

func TestWithMetricsRecordsOperations(t *testing.T) {
	registry := metric.NewRegistry()

	db, err := New(0, WithMetrics[int](registry, "test-buffer"))
	require.NoError(t, err, "Failed to create buffer with metrics")
	require.NotNil(t, db.metrics, "Metrics should be initialized")

	db.Current()
	db.Next()
	db.Split()
	db.Apply(func(_, _ *int) {})
	db.Swap()

	m := &dto.Metric{}
	assert.Equal(t, 2.0, counterValue(t, m, db.metrics.reads.Write))
	assert.Equal(t, 1.0, counterValue(t, m, db.metrics.splits.Write))
	assert.Equal(t, 1.0, counterValue(t, m, db.metrics.applies.Write))
	assert.Equal(t, 1.0, counterValue(t, m, db.metrics.swaps.Write))

	// Gauge follows the selector: one swap from 0 lands on 1
	gauge := &dto.Metric{}
	require.NoError(t, db.metrics.index.Write(gauge))
	assert.Equal(t, 1.0, gauge.GetGauge().GetValue())
}

func TestWithMetricsInitialIndexGauge(t *testing.T) {
	registry := metric.NewRegistry()

	db, err := FromSlots([2]string{"a", "b"}, 1, WithMetrics[string](registry, "seeded"))
	require.NoError(t, err)

	// Construction publishes the starting selector position
	gauge := &dto.Metric{}
	require.NoError(t, db.metrics.index.Write(gauge))
	assert.Equal(t, 1.0, gauge.GetGauge().GetValue())

	db.SetIndex(0)
	require.NoError(t, db.metrics.index.Write(gauge))
	assert.Equal(t, 0.0, gauge.GetGauge().GetValue())
}

func TestWithMetricsExposedThroughRegistry(t *testing.T) {
	registry := metric.NewRegistry()

	db, err := New("state", WithMetrics[string](registry, "frame"))
	require.NoError(t, err)

	db.Current()
	db.Swap()

	metricFamilies, err := registry.PrometheusRegistry().Gather()
	require.NoError(t, err)

	expected := map[string]bool{
		"doublebuffer_reads_total":   false,
		"doublebuffer_splits_total":  false,
		"doublebuffer_applies_total": false,
		"doublebuffer_swaps_total":   false,
		"doublebuffer_index":         false,
	}

	for _, mf := range metricFamilies {
		if _, ok := expected[mf.GetName()]; !ok {
			continue
		}
		expected[mf.GetName()] = true

		// Every buffer metric carries the buffer name as a const label
		for _, m := range mf.GetMetric() {
			found := false
			for _, label := range m.GetLabel() {
				if label.GetName() == "buffer" && label.GetValue() == "frame" {
					found = true
				}
			}
			assert.True(t, found, "Metric %s should carry the buffer label", mf.GetName())
		}
	}

	for name, found := range expected {
		assert.True(t, found, "Metric %s should be registered", name)
	}
}

func TestWithMetricsDuplicateName(t *testing.T) {
	registry := metric.NewRegistry()

	_, err := New(1, WithMetrics[int](registry, "shared-name"))
	require.NoError(t, err)

	// A second buffer under the same name collides in the registry
	db, err := New(2, WithMetrics[int](registry, "shared-name"))
	require.Error(t, err)
	assert.ErrorIs(t, err, metric.ErrDuplicateMetric)
	assert.Nil(t, db)
}

func TestWithMetricsDistinctNames(t *testing.T) {
	registry := metric.NewRegistry()

	front, err := New(1, WithMetrics[int](registry, "front"))
	require.NoError(t, err)
	back, err := New(2, WithMetrics[int](registry, "back"))
	require.NoError(t, err)

	front.Swap()
	back.Swap()
	back.Swap()

	m := &dto.Metric{}
	assert.Equal(t, 1.0, counterValue(t, m, front.metrics.swaps.Write))
	assert.Equal(t, 2.0, counterValue(t, m, back.metrics.swaps.Write))
}

func TestWithMetricsNilRegistryIgnored(t *testing.T) {
	db, err := New(1, WithMetrics[int](nil, "ignored"))
	require.NoError(t, err)
	assert.Nil(t, db.metrics, "Nil registry should leave metrics disabled")

	// Operations still work and still hit stats
	db.Swap()
	assert.Equal(t, int64(1), db.Stats().Swaps())
}

func TestWithMetricsEmptyNameIgnored(t *testing.T) {
	registry := metric.NewRegistry()

	db, err := New(1, WithMetrics[int](registry, ""))
	require.NoError(t, err)
	assert.Nil(t, db.metrics, "Empty name should leave metrics disabled")
}
