package doublebuffer

import (
	"github.com/c360/doublebuffer/metric"
)

// Option configures buffer behavior using the functional options pattern.
type Option[T any] func(*bufferOptions[T])

// bufferOptions holds internal configuration for buffer instances.
// Stats are ALWAYS collected - they are not optional.
// Metrics are optional and exposed via WithMetrics().
type bufferOptions[T any] struct {
	// stats overrides the internally created tracker when several buffers
	// should report into one place
	stats *Statistics

	// metricsReg is optional - if provided, buffer stats are also exposed as Prometheus metrics
	metricsReg *metric.Registry

	// metricsName is used as the buffer label for Prometheus metrics
	metricsName string
}

// WithMetrics enables Prometheus metrics export for buffer statistics.
// The name becomes the value of the "buffer" label on every metric, so it
// must be unique per registry. If registry is nil or name is empty, this
// option is ignored.
func WithMetrics[T any](registry *metric.Registry, name string) Option[T] {
	return func(opts *bufferOptions[T]) {
		if registry != nil && name != "" {
			opts.metricsReg = registry
			opts.metricsName = name
		}
	}
}

// WithStatistics makes the buffer record into an existing statistics tracker
// instead of creating its own. Useful for aggregating several buffers under
// one tracker. If stats is nil, this option is ignored.
func WithStatistics[T any](stats *Statistics) Option[T] {
	return func(opts *bufferOptions[T]) {
		if stats != nil {
			opts.stats = stats
		}
	}
}

// applyOptions applies functional options to create final buffer configuration.
// This is an internal helper used by buffer constructors.
func applyOptions[T any](options ...Option[T]) *bufferOptions[T] {
	opts := &bufferOptions[T]{}

	for _, opt := range options {
		if opt != nil {
			opt(opts)
		}
	}

	return opts
}
