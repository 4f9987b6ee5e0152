package resource

import (
	"github.com/c360/doublebuffer"
)

// View is the read-only window a Read callback receives. Every accessor
// returns a copy, so nothing escaping the callback can alias the buffer's
// storage.
//
// A View is only meaningful inside the callback that received it; the
// underlying entry lock is released when the callback returns.
type View[T any] struct {
	db *doublebuffer.DoubleBuffer[T]
}

// Current returns a copy of the current slot's value.
func (v View[T]) Current() T {
	return *v.db.Current()
}

// Next returns a copy of the staged slot's value.
func (v View[T]) Next() T {
	return *v.db.Next()
}

// Index returns the selector position of the current slot.
func (v View[T]) Index() int {
	return v.db.Index()
}

// Split returns copies of both slots in fixed storage order.
func (v View[T]) Split() (T, T) {
	first, second := v.db.Split()
	return *first, *second
}

// SplitOrdered returns copies of both slots in logical order, current first.
func (v View[T]) SplitOrdered() (current, next T) {
	cur, nxt := v.db.SplitOrdered()
	return *cur, *nxt
}
