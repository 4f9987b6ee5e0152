package metric

import "errors"

// Sentinel errors for registry and server operations
var (
	// ErrDuplicateMetric indicates a metric key is already registered
	ErrDuplicateMetric = errors.New("metric already registered")

	// ErrServerRunning indicates Start() was called on a running server
	ErrServerRunning = errors.New("metrics server already running")

	// ErrNilRegistry indicates the server was started without a registry
	ErrNilRegistry = errors.New("metrics registry cannot be nil")
)
