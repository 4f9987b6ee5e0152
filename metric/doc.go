// Package metric provides a Prometheus-based metrics registry and HTTP server
// for exposing double buffer observability data.
//
// The package offers a centralized registry that tracks every metric under an
// owner-scoped key, plus an HTTP server exposing metrics in Prometheus format
// for monitoring system integration.
//
// # Architecture
//
// The package has two layers:
//
//  1. Registry: owner-scoped registration with duplicate detection (Registrar interface)
//  2. HTTP Server: metrics endpoint with a health check (Server type)
//
// Go runtime and process collectors are registered automatically, so every
// scrape includes goroutine counts, GC pauses, and process stats alongside
// the buffer metrics.
//
// # Basic Usage
//
// Setting up metrics collection and the HTTP server:
//
//	registry := metric.NewRegistry()
//	server := metric.NewServer(9090, "/metrics", registry)
//
//	go func() {
//	    if err := server.Start(); err != nil {
//	        log.Printf("Metrics server error: %v", err)
//	    }
//	}()
//	defer server.Stop()
//
// Buffers opt into the registry through their own options:
//
//	db, err := doublebuffer.New(state, doublebuffer.WithMetrics[State](registry, "frame"))
//
// The server exposes Prometheus-formatted metrics at
// http://localhost:9090/metrics and a health check at
// http://localhost:9090/health.
//
// # Owner-Scoped Keys
//
// Every registration is tracked under an "owner.name" key. The owner is the
// buffer or store name, the name is the metric within it:
//
//	counter := prometheus.NewCounter(prometheus.CounterOpts{
//	    Name: "frame_renders_total",
//	    Help: "Total number of frames rendered",
//	})
//	err := registry.RegisterCounter("frame", "renders", counter)
//
// Registering the same key twice returns ErrDuplicateMetric, as does a
// Prometheus-level name conflict between different keys. Unregister frees
// the key for reuse.
//
// # Vector Metrics with Labels
//
// Vector registrations work the same way:
//
//	readsVec := prometheus.NewCounterVec(
//	    prometheus.CounterOpts{
//	        Name: "store_reads_total",
//	        Help: "Reads by resource type",
//	    },
//	    []string{"type"},
//	)
//	err := registry.RegisterCounterVec("store", "reads", readsVec)
//
//	readsVec.WithLabelValues("Palette").Inc()
//
// # Registrar Interface
//
// Code that registers metrics should depend on the Registrar interface rather
// than the concrete Registry, so tests can substitute a mock:
//
//	func NewTracker(metrics metric.Registrar) *Tracker {
//	    counter := prometheus.NewCounter(prometheus.CounterOpts{
//	        Name: "tracker_events_total",
//	        Help: "Total events",
//	    })
//	    _ = metrics.RegisterCounter("tracker", "events", counter)
//	    return &Tracker{events: counter}
//	}
//
// # Thread Safety
//
// All registry operations are thread-safe. Registration methods use mutex
// protection; metric recording itself is lock-free per the Prometheus client
// guarantees. Server Start and Stop may be called from different goroutines.
//
// # HTTP Server
//
// The server provides three endpoints:
//
//   - GET / - HTML page with links to the metrics and health endpoints
//   - GET /metrics - Prometheus-formatted metrics (path configurable)
//   - GET /health - plain OK response
//
// Start blocks until the server stops, so it is normally run in its own
// goroutine with Stop called during shutdown. A clean Stop makes Start
// return nil. Handler returns the scrape handler directly for callers that
// mount it on an existing mux.
package metric
