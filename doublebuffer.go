package doublebuffer

import (
	"fmt"
)

// DoubleBuffer holds two slots of type T and a selector marking which slot is
// current. The other slot is the staging area for the value being prepared.
// Swap promotes the staged slot by toggling the selector; no element data moves.
//
// The zero value is not usable. Construct instances with New, FromSlots, Of,
// or Zero.
//
// DoubleBuffer is not safe for concurrent use. Callers that share one across
// goroutines must provide their own synchronization, for example through
// resource.Store.
type DoubleBuffer[T any] struct {
	slots [2]T
	index int // Selector: position of the current slot, always 0 or 1

	stats   *Statistics    // ALWAYS initialized for observability
	metrics *bufferMetrics // Optional Prometheus metrics
}

// New creates a double buffer with both slots holding copies of seed and the
// selector at position 0. Current and Next start out equal.
//
// For element types containing pointers, slices, or maps the two slots share
// the referenced data until one side is overwritten. Seed with fully
// independent values when that sharing is not wanted.
//
// Stats are ALWAYS collected for observability. Metrics are optional via
// WithMetrics(). Returns an error if metrics registration fails when
// metrics are requested.
func New[T any](seed T, options ...Option[T]) (*DoubleBuffer[T], error) {
	return FromSlots([2]T{seed, seed}, 0, options...)
}

// FromSlots creates a double buffer from explicit slot contents and a starting
// selector position. Returns ErrInvalidIndex if index is not 0 or 1, or an
// error if metrics registration fails when metrics are requested.
func FromSlots[T any](slots [2]T, index int, options ...Option[T]) (*DoubleBuffer[T], error) {
	if index != 0 && index != 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidIndex, index)
	}

	opts := applyOptions(options...)

	// Stats are ALWAYS initialized - observability is not optional
	stats := opts.stats
	if stats == nil {
		stats = NewStatistics()
	}

	var metrics *bufferMetrics
	// Optionally expose stats as Prometheus metrics
	if opts.metricsReg != nil && opts.metricsName != "" {
		var err error
		metrics, err = newBufferMetrics(opts.metricsReg, opts.metricsName)
		if err != nil {
			return nil, fmt.Errorf("metrics registration: %w", err)
		}
	}

	db := &DoubleBuffer[T]{
		slots:   slots,
		index:   index,
		stats:   stats,   // ALWAYS present
		metrics: metrics, // Optional
	}

	if db.metrics != nil {
		db.metrics.setIndex(db.index)
	}

	return db, nil
}

// Of creates a double buffer from a single seed value without options.
// It is the infallible form of New for callers that do not need metrics.
func Of[T any](seed T) *DoubleBuffer[T] {
	db, _ := New(seed)
	return db
}

// Zero creates a double buffer with both slots holding the zero value of T
// and the selector at position 0.
func Zero[T any]() *DoubleBuffer[T] {
	var zero T
	return Of(zero)
}

// Current returns a pointer to the slot the selector marks as current.
//
// The pointer stays valid for the lifetime of the buffer but its role does
// not: after a Swap it designates the staged slot instead. Re-fetch after
// every swap rather than holding accessor results across one.
func (db *DoubleBuffer[T]) Current() *T {
	// ALWAYS track in stats
	db.stats.Read()

	// ALSO track in metrics if enabled
	if db.metrics != nil {
		db.metrics.recordRead()
	}

	return &db.slots[db.index]
}

// Next returns a pointer to the staged slot, the one the selector does not
// mark. Writes through it prepare the value that Swap will promote.
//
// The same lifetime caveat as Current applies: after a Swap the pointer
// designates the current slot.
func (db *DoubleBuffer[T]) Next() *T {
	// ALWAYS track in stats
	db.stats.Read()

	// ALSO track in metrics if enabled
	if db.metrics != nil {
		db.metrics.recordRead()
	}

	return &db.slots[1-db.index]
}

// Index returns the selector position of the current slot, either 0 or 1.
func (db *DoubleBuffer[T]) Index() int {
	return db.index
}

// SetIndex assigns the selector position directly. Slot contents are not
// touched, so the roles of current and staged may both change at once.
//
// Panics with ErrInvalidIndex if index is not 0 or 1. Use Swap for the
// ordinary promote step; SetIndex exists for restoring a persisted selector.
func (db *DoubleBuffer[T]) SetIndex(index int) {
	if index != 0 && index != 1 {
		panic(ErrInvalidIndex)
	}

	db.index = index

	// ALWAYS track in stats
	db.stats.IndexWrite()

	// ALSO track in metrics if enabled
	if db.metrics != nil {
		db.metrics.setIndex(index)
	}
}

// Swap toggles the selector, promoting the staged slot to current and
// demoting the current slot to staging. Slot contents are untouched; the
// demoted slot keeps its previous value until overwritten.
func (db *DoubleBuffer[T]) Swap() {
	db.index = 1 - db.index

	// ALWAYS track in stats
	db.stats.Swap()

	// ALSO track in metrics if enabled
	if db.metrics != nil {
		db.metrics.recordSwap(db.index)
	}
}

// Split returns pointers to both slots in fixed storage order: position 0
// first, position 1 second, regardless of the selector. The pointers alias
// distinct memory, so writing through one never affects the other.
func (db *DoubleBuffer[T]) Split() (*T, *T) {
	// ALWAYS track in stats
	db.stats.Split()

	// ALSO track in metrics if enabled
	if db.metrics != nil {
		db.metrics.recordSplit()
	}

	return &db.slots[0], &db.slots[1]
}

// SplitOrdered returns pointers to both slots in logical order: the current
// slot first, the staged slot second. This is the pair most update loops
// want: read from current, write into next, then Swap.
func (db *DoubleBuffer[T]) SplitOrdered() (current, next *T) {
	// ALWAYS track in stats
	db.stats.Split()

	// ALSO track in metrics if enabled
	if db.metrics != nil {
		db.metrics.recordSplit()
	}

	return db.splitOrdered()
}

// splitOrdered returns the logical pair without recording a split, so Apply
// counts as a single operation.
func (db *DoubleBuffer[T]) splitOrdered() (current, next *T) {
	if db.index == 0 {
		return &db.slots[0], &db.slots[1]
	}
	return &db.slots[1], &db.slots[0]
}

// Apply invokes fn with simultaneous access to both slots in logical order.
// The standard update cycle computes the staged value from the current one
// inside fn, then calls Swap to promote it:
//
//	db.Apply(func(current, next *State) {
//		next.Step(current)
//	})
//	db.Swap()
//
// The pointers are only meaningful for the duration of fn. Panics with
// ErrNilFunc if fn is nil.
func (db *DoubleBuffer[T]) Apply(fn func(current, next *T)) {
	if fn == nil {
		panic(ErrNilFunc)
	}

	// ALWAYS track in stats
	db.stats.Apply()

	// ALSO track in metrics if enabled
	if db.metrics != nil {
		db.metrics.recordApply()
	}

	current, next := db.splitOrdered()
	fn(current, next)
}

// ApplyResult invokes fn with simultaneous access to both slots in logical
// order and returns fn's result. It is a package function because Go methods
// cannot introduce the extra result type parameter.
//
// Panics with ErrNilFunc if fn is nil.
func ApplyResult[T, R any](db *DoubleBuffer[T], fn func(current, next *T) R) R {
	if fn == nil {
		panic(ErrNilFunc)
	}

	// ALWAYS track in stats
	db.stats.Apply()

	// ALSO track in metrics if enabled
	if db.metrics != nil {
		db.metrics.recordApply()
	}

	current, next := db.splitOrdered()
	return fn(current, next)
}

// Stats returns buffer statistics (always available for observability).
func (db *DoubleBuffer[T]) Stats() *Statistics {
	return db.stats
}
