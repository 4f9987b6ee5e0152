// Package resource provides a typed store that shares double buffers across
// goroutines, one buffer per Go type.
//
// # Overview
//
// The doublebuffer container is single-threaded on purpose. This package is
// the concurrency layer on top of it: a Store keyed by element type, with a
// read-write lock per entry. Hosts register a buffer once, then reach it from
// anywhere through Read and Update callbacks instead of holding references.
//
// The discipline the store enforces:
//
//   - Read gives shared access through a View of value copies. Readers run
//     concurrently with each other and never move the selector.
//   - Update gives exclusive access to the buffer itself. All mutation,
//     including the Swap at the end of an update cycle, happens here.
//
// # Quick Start
//
//	store, err := resource.NewStore(
//		resource.WithLogger(logger),
//		resource.WithMetrics(registry, "game"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Register one buffer per type
//	if err := resource.Seed(store, World{Tick: 0}); err != nil {
//		log.Fatal(err)
//	}
//
//	// Writer goroutine: step and promote
//	err = resource.Update(store, func(db *doublebuffer.DoubleBuffer[World]) {
//		db.Apply(func(current, next *World) {
//			next.Step(current)
//		})
//		db.Swap()
//	})
//
//	// Reader goroutines: consistent snapshots
//	err = resource.Read(store, func(v resource.View[World]) {
//		render(v.Current())
//	})
//
// # Type-Keyed Registration
//
// The store holds at most one buffer per Go type, mirroring how hosts treat
// buffered state as a singleton resource. Registering a second buffer of the
// same type returns ErrAlreadyRegistered; wrap the value in a distinct named
// type when two resources share an underlying type:
//
//	type RenderPalette Palette
//	type UIPalette Palette
//
// Add, Seed, Read, Update, Remove, Contains, and Stats are package functions
// rather than methods because Go methods cannot be generic over the resource
// type.
//
// # Callback Discipline
//
// Read views and Update buffer pointers are only valid inside their
// callbacks; the entry lock is released when the callback returns. Views
// return copies, so values that escape a Read never alias buffer storage. An
// Update callback must not retain the buffer pointer after returning.
//
// Locks are per entry. Callbacks on different types never block each other,
// and a slow Update on one resource leaves readers of every other resource
// untouched.
//
// # Observability
//
// Buffer-level statistics remain available through Stats. With WithMetrics
// the store additionally exports per-type operation counters, an update
// duration histogram, and a registration gauge, all labeled with the store
// name.
//
// # Testing
//
// The package includes lifecycle tests and concurrent access tests meant to
// run under the race detector:
//
//	go test -race ./resource
package resource
