// Package doublebuffer provides a generic two-slot double buffer with a
// selector, built-in statistics tracking, and optional Prometheus metrics
// integration.
//
// # Overview
//
// The doublebuffer package implements the classic double-buffering pattern:
// two slots of the same type plus a selector marking which slot is current.
// The other slot stages the value being prepared. Promoting the staged value
// is a selector toggle, so updates that read the old state while writing the
// new one never copy element data and never observe a half-written value.
//
// The container itself is deliberately single-threaded and allocation-free
// after construction. Hosts that share a buffer across goroutines wrap it in
// the resource package's Store, which serializes access per buffer.
//
// # Quick Start
//
// Basic buffer creation:
//
//	db, err := doublebuffer.New(initialState)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Read the current value
//	state := db.Current()
//
//	// Prepare and promote the next value
//	*db.Next() = computeNext(*state)
//	db.Swap()
//
// With explicit slots and metrics:
//
//	db, err := doublebuffer.FromSlots([2]Frame{front, back}, 0,
//		doublebuffer.WithMetrics[Frame](registry, "render"),
//	)
//
// The infallible constructors Of and Zero cover the common case where no
// options are needed:
//
//	db := doublebuffer.Of(seed)
//	empty := doublebuffer.Zero[Frame]()
//
// # The Update Cycle
//
// Most uses follow the same three-step cycle each tick:
//
//	db.Apply(func(current, next *State) {
//		next.Step(current) // read old state, write new state
//	})
//	db.Swap()
//
// Apply hands the callback both slots in logical order, current first and
// staged second. The two pointers always alias distinct memory, so the
// callback can read through one while writing through the other without
// copying. Swap then promotes the staged slot. A self-referential update
// (cellular automata, physics steps, palette rotations) never observes a
// half-written value.
//
// # Pairing Operations
//
// Two split flavors expose both slots at once:
//
//   - Split: fixed storage order, position 0 then position 1, independent of
//     the selector. Useful for persistence and diffing.
//   - SplitOrdered: logical order, current then staged. Useful for update
//     loops; this is the pair Apply passes to its callback.
//
// Pointer lifetime caveat: accessor and split results stay valid as memory
// but change meaning when the selector moves. Re-fetch after every Swap or
// SetIndex instead of holding pointers across one.
//
// # Reference Semantics
//
// New seeds both slots with copies of one value. For element types containing
// pointers, slices, or maps those copies share the referenced data until one
// side is reassigned. Seed through FromSlots with independently built values
// when that sharing is not wanted.
//
// # Observability Architecture
//
// The package implements a dual-tracking pattern:
//
// Statistics (Always On):
//   - Tracks all operations using atomic counters
//   - Zero configuration required
//   - Available via db.Stats()
//   - Provides computed values (swap rate, apply rate, uptime, last swap)
//   - No external dependencies
//
// Prometheus Metrics (Optional):
//   - Enabled via WithMetrics() option
//   - Exports to Prometheus for time-series monitoring
//   - Includes a buffer label for instance identification
//   - Standard metric types (Counter, Gauge)
//
// Both layers track operations independently. Statistics stay available for
// debugging and tests in deployments without Prometheus, while the metrics
// path feeds dashboards and alerting. The cost is one extra atomic increment
// per operation when metrics are enabled.
//
// # Error Handling
//
// Construction validates its inputs: FromSlots returns ErrInvalidIndex for a
// selector outside {0, 1}, and constructors surface metrics registration
// failures instead of silently dropping them.
//
// Once a buffer exists, invalid use is a programming error rather than a
// recoverable condition: SetIndex panics with ErrInvalidIndex and Apply
// panics with ErrNilFunc. Sentinel errors make both paths testable with
// errors.Is.
//
// # API Design Patterns
//
// Functional Options:
//
//	db, err := doublebuffer.New(seed,
//		doublebuffer.WithMetrics[State](registry, "simulation"),
//		doublebuffer.WithStatistics[State](sharedStats),
//	)
//
// Generic Types:
//
// Buffers are fully generic and work with any Go type:
//
//	intBuffer := doublebuffer.Of(0)
//	frameBuffer := doublebuffer.Zero[Frame]()
//	sliceBuffer, err := doublebuffer.FromSlots([2][]byte{front, back}, 0)
//
// ApplyResult is a package function rather than a method because Go methods
// cannot introduce an extra type parameter for the result:
//
//	checksum := doublebuffer.ApplyResult(db, func(current, next *Frame) uint32 {
//		return crc32.ChecksumIEEE(current.Pixels)
//	})
//
// # Performance Characteristics
//
// Operations:
//   - Current/Next/Index: O(1), a pointer into the container's own storage
//   - Swap/SetIndex: O(1), one integer write
//   - Split/SplitOrdered/Apply: O(1) plus whatever the callback does
//
// Memory:
//   - Two slots inline in the struct: 2 * sizeof(T)
//   - No allocations during operation
//   - Statistics overhead: ~100 bytes
//   - Metrics overhead: ~1KB when enabled
//
// # Common Use Cases
//
// Simulation stepping:
//
//	world := doublebuffer.Of(initialWorld)
//	for running {
//		world.Apply(func(current, next *World) {
//			next.Step(current, dt)
//		})
//		world.Swap()
//	}
//
// Frame rendering:
//
//	frames, err := doublebuffer.FromSlots([2]Frame{a, b}, 0,
//		doublebuffer.WithMetrics[Frame](registry, "render"),
//	)
//	// render thread reads frames.Current(), builder writes frames.Next()
//
// Configuration snapshots:
//
//	cfg := doublebuffer.Of(loadConfig())
//	*cfg.Next() = reloadConfig()
//	cfg.Swap() // readers see the old snapshot until the toggle
//
// # Testing
//
// The package includes comprehensive tests with race detection on the
// statistics layer:
//
//	go test -race .
//
// Benchmarks validate that the update cycle stays allocation-free:
//
//	go test -bench=. .
//
// # Examples
//
// See example_test.go for runnable examples that appear in godoc.
package doublebuffer
