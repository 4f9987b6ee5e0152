package resource

import (
	"fmt"
	"log/slog"
	"reflect"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/c360/doublebuffer"
	"github.com/c360/doublebuffer/metric"
)

// Store holds one double buffer per Go type and serializes access to each.
// The buffers themselves are single-threaded; the store layers a read-write
// lock over every entry so hosts can share them across goroutines.
//
// Read paths only call buffer accessor methods, which never move the
// selector, so any number of readers may hold one entry at once. Update takes
// the exclusive lock and is where all swapping happens.
type Store struct {
	entries map[reflect.Type]*entry
	mu      sync.RWMutex // Protects the map, not the buffers

	logger  *slog.Logger
	metrics *storeMetrics
}

// entry pairs a buffer with its own lock and registration metadata.
type entry struct {
	mu           sync.RWMutex
	db           any // *doublebuffer.DoubleBuffer[T] for the keyed T
	id           string
	registeredAt time.Time
}

// Info describes a registered resource.
type Info struct {
	ID           string    `json:"id"`
	Type         string    `json:"type"`
	RegisteredAt time.Time `json:"registered_at"`
}

// Option configures store behavior using the functional options pattern.
type Option func(*storeOptions)

type storeOptions struct {
	logger      *slog.Logger
	metricsReg  *metric.Registry
	metricsName string
}

// WithLogger sets the logger for store lifecycle events.
// Defaults to slog.Default() if not provided.
func WithLogger(logger *slog.Logger) Option {
	return func(opts *storeOptions) {
		if logger != nil {
			opts.logger = logger
		}
	}
}

// WithMetrics enables Prometheus metrics export for store operations.
// The name becomes the value of the "store" label on every metric. If
// registry is nil or name is empty, this option is ignored.
func WithMetrics(registry *metric.Registry, name string) Option {
	return func(opts *storeOptions) {
		if registry != nil && name != "" {
			opts.metricsReg = registry
			opts.metricsName = name
		}
	}
}

// NewStore creates an empty resource store.
// Returns an error if metrics registration fails when metrics are requested.
func NewStore(options ...Option) (*Store, error) {
	opts := &storeOptions{
		logger: slog.Default(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(opts)
		}
	}

	var metrics *storeMetrics
	if opts.metricsReg != nil && opts.metricsName != "" {
		var err error
		metrics, err = newStoreMetrics(opts.metricsReg, opts.metricsName)
		if err != nil {
			return nil, fmt.Errorf("metrics registration: %w", err)
		}
	}

	return &Store{
		entries: make(map[reflect.Type]*entry),
		logger:  opts.logger,
		metrics: metrics,
	}, nil
}

// Len returns the number of registered resources.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// List returns registration info for every resource, sorted by type name.
func (s *Store) List() []Info {
	s.mu.RLock()
	defer s.mu.RUnlock()

	infos := make([]Info, 0, len(s.entries))
	for t, e := range s.entries {
		infos = append(infos, Info{
			ID:           e.id,
			Type:         t.String(),
			RegisteredAt: e.registeredAt,
		})
	}

	slices.SortFunc(infos, func(a, b Info) int {
		return strings.Compare(a.Type, b.Type)
	})

	return infos
}

// typeOf returns the reflect.Type key for T without allocating a value.
func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Add registers an existing buffer under its element type.
// Each type can hold exactly one buffer per store; Add returns
// ErrAlreadyRegistered for a second registration of the same type.
func Add[T any](s *Store, db *doublebuffer.DoubleBuffer[T]) error {
	t := typeOf[T]()

	if db == nil {
		return fmt.Errorf("add %s: %w", t, ErrNilBuffer)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[t]; exists {
		return fmt.Errorf("add %s: %w", t, ErrAlreadyRegistered)
	}

	e := &entry{
		db:           db,
		id:           uuid.New().String(),
		registeredAt: time.Now(),
	}
	s.entries[t] = e

	if s.metrics != nil {
		s.metrics.setResources(len(s.entries))
	}

	s.logger.Debug("Registered resource", "type", t.String(), "id", e.id)
	return nil
}

// Seed registers a fresh buffer with both slots holding copies of seed.
// Shorthand for Add with doublebuffer.Of.
func Seed[T any](s *Store, seed T) error {
	return Add(s, doublebuffer.Of(seed))
}

// Remove unregisters the buffer for type T. Operations already holding the
// entry finish normally; new lookups fail with ErrNotRegistered.
func Remove[T any](s *Store) error {
	t := typeOf[T]()

	s.mu.Lock()
	defer s.mu.Unlock()

	e, exists := s.entries[t]
	if !exists {
		return fmt.Errorf("remove %s: %w", t, ErrNotRegistered)
	}
	delete(s.entries, t)

	if s.metrics != nil {
		s.metrics.setResources(len(s.entries))
	}

	s.logger.Debug("Removed resource", "type", t.String(), "id", e.id)
	return nil
}

// Contains reports whether a buffer for type T is registered.
func Contains[T any](s *Store) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, exists := s.entries[typeOf[T]()]
	return exists
}

// lookup finds the entry for T and its typed buffer.
func lookup[T any](s *Store) (*entry, *doublebuffer.DoubleBuffer[T], error) {
	t := typeOf[T]()

	s.mu.RLock()
	e, exists := s.entries[t]
	s.mu.RUnlock()

	if !exists {
		return nil, nil, fmt.Errorf("%s: %w", t, ErrNotRegistered)
	}

	// Entries are keyed by element type, so the assertion cannot fail
	return e, e.db.(*doublebuffer.DoubleBuffer[T]), nil
}

// Read runs fn with shared read access to the buffer for type T.
// The view is only valid for the duration of fn; it must not be retained.
// Any number of readers may run concurrently with each other.
func Read[T any](s *Store, fn func(View[T])) error {
	if fn == nil {
		return fmt.Errorf("read %s: %w", typeOf[T](), ErrNilFunc)
	}

	e, db, err := lookup[T](s)
	if err != nil {
		return err
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	fn(View[T]{db: db})

	if s.metrics != nil {
		s.metrics.recordRead(typeOf[T]().String())
	}

	return nil
}

// Update runs fn with exclusive access to the buffer for type T.
// All mutation, including Swap and SetIndex, belongs here. The buffer
// pointer is only valid for the duration of fn; it must not be retained.
func Update[T any](s *Store, fn func(*doublebuffer.DoubleBuffer[T])) error {
	if fn == nil {
		return fmt.Errorf("update %s: %w", typeOf[T](), ErrNilFunc)
	}

	e, db, err := lookup[T](s)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	start := time.Now()
	fn(db)

	if s.metrics != nil {
		s.metrics.recordUpdate(typeOf[T]().String(), time.Since(start))
	}

	return nil
}

// Stats returns the statistics tracker of the buffer for type T.
// The tracker is safe to read concurrently with store operations.
func Stats[T any](s *Store) (*doublebuffer.Statistics, error) {
	_, db, err := lookup[T](s)
	if err != nil {
		return nil, err
	}
	return db.Stats(), nil
}
