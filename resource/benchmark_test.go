package resource

import (
	"io"
	"log/slog"
	"testing"

	"github.com/c360/doublebuffer"
)

func newBenchStore(b *testing.B) *Store {
	b.Helper()
	store, err := NewStore(WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	if err != nil {
		b.Fatalf("failed to create store: %v", err)
	}
	if err := Seed(store, counter{Value: 1, Doubled: 2}); err != nil {
		b.Fatalf("failed to seed store: %v", err)
	}
	return store
}

func BenchmarkStoreRead(b *testing.B) {
	store := newBenchStore(b)

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_ = Read(store, func(v View[counter]) {
				_ = v.Current()
			})
		}
	})
}

func BenchmarkStoreUpdate(b *testing.B) {
	store := newBenchStore(b)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Update(store, func(db *doublebuffer.DoubleBuffer[counter]) {
			db.Apply(func(current, next *counter) {
				next.Value = current.Value + 1
				next.Doubled = (current.Value + 1) * 2
			})
			db.Swap()
		})
	}
}

func BenchmarkStoreMixedReadUpdate(b *testing.B) {
	store := newBenchStore(b)

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			i++
			if i%10 == 0 {
				_ = Update(store, func(db *doublebuffer.DoubleBuffer[counter]) {
					db.Apply(func(current, next *counter) {
						next.Value = current.Value + 1
					})
					db.Swap()
				})
				continue
			}
			_ = Read(store, func(v View[counter]) {
				_ = v.Current()
			})
		}
	})
}
