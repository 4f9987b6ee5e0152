package doublebuffer

import (
	"sync"
	"sync/atomic"
	"time"
)

// Statistics tracks double buffer operation counts.
type Statistics struct {
	// Atomic counters for thread-safe updates
	reads       int64
	splits      int64
	applies     int64
	swaps       int64
	indexWrites int64

	// Protected by mutex
	mu        sync.RWMutex
	startTime time.Time
	lastSwap  time.Time
}

// NewStatistics creates a new statistics tracker.
func NewStatistics() *Statistics {
	return &Statistics{
		startTime: time.Now(),
	}
}

// Read records a Current or Next accessor call.
func (s *Statistics) Read() {
	atomic.AddInt64(&s.reads, 1)
}

// Split records a Split or SplitOrdered call.
func (s *Statistics) Split() {
	atomic.AddInt64(&s.splits, 1)
}

// Apply records an Apply or ApplyResult invocation.
func (s *Statistics) Apply() {
	atomic.AddInt64(&s.applies, 1)
}

// Swap records a selector toggle.
func (s *Statistics) Swap() {
	atomic.AddInt64(&s.swaps, 1)

	s.mu.Lock()
	s.lastSwap = time.Now()
	s.mu.Unlock()
}

// IndexWrite records a direct selector assignment via SetIndex.
func (s *Statistics) IndexWrite() {
	atomic.AddInt64(&s.indexWrites, 1)
}

// Reads returns the total number of accessor calls.
func (s *Statistics) Reads() int64 {
	return atomic.LoadInt64(&s.reads)
}

// Splits returns the total number of split operations.
func (s *Statistics) Splits() int64 {
	return atomic.LoadInt64(&s.splits)
}

// Applies returns the total number of apply invocations.
func (s *Statistics) Applies() int64 {
	return atomic.LoadInt64(&s.applies)
}

// Swaps returns the total number of selector toggles.
func (s *Statistics) Swaps() int64 {
	return atomic.LoadInt64(&s.swaps)
}

// IndexWrites returns the total number of direct selector assignments.
func (s *Statistics) IndexWrites() int64 {
	return atomic.LoadInt64(&s.indexWrites)
}

// LastSwap returns the time of the most recent swap.
// Returns the zero time if the buffer has never been swapped.
func (s *Statistics) LastSwap() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastSwap
}

// SwapRate returns the average number of swaps per second.
func (s *Statistics) SwapRate() float64 {
	s.mu.RLock()
	elapsed := time.Since(s.startTime)
	s.mu.RUnlock()

	if elapsed == 0 {
		return 0.0
	}

	totalSwaps := s.Swaps()
	return float64(totalSwaps) / elapsed.Seconds()
}

// ApplyRate returns the average number of apply invocations per second.
func (s *Statistics) ApplyRate() float64 {
	s.mu.RLock()
	elapsed := time.Since(s.startTime)
	s.mu.RUnlock()

	if elapsed == 0 {
		return 0.0
	}

	totalApplies := s.Applies()
	return float64(totalApplies) / elapsed.Seconds()
}

// Uptime returns how long the buffer has been running.
func (s *Statistics) Uptime() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return time.Since(s.startTime)
}

// Reset resets all statistics to zero.
func (s *Statistics) Reset() {
	atomic.StoreInt64(&s.reads, 0)
	atomic.StoreInt64(&s.splits, 0)
	atomic.StoreInt64(&s.applies, 0)
	atomic.StoreInt64(&s.swaps, 0)
	atomic.StoreInt64(&s.indexWrites, 0)

	s.mu.Lock()
	s.startTime = time.Now()
	s.lastSwap = time.Time{}
	s.mu.Unlock()
}

// StatsSummary returns a snapshot of all statistics.
type StatsSummary struct {
	Reads       int64         `json:"reads"`
	Splits      int64         `json:"splits"`
	Applies     int64         `json:"applies"`
	Swaps       int64         `json:"swaps"`
	IndexWrites int64         `json:"index_writes"`
	SwapRate    float64       `json:"swap_rate"`
	ApplyRate   float64       `json:"apply_rate"`
	LastSwap    time.Time     `json:"last_swap"`
	Uptime      time.Duration `json:"uptime"`
}

// Summary returns a snapshot of all statistics.
func (s *Statistics) Summary() StatsSummary {
	return StatsSummary{
		Reads:       s.Reads(),
		Splits:      s.Splits(),
		Applies:     s.Applies(),
		Swaps:       s.Swaps(),
		IndexWrites: s.IndexWrites(),
		SwapRate:    s.SwapRate(),
		ApplyRate:   s.ApplyRate(),
		LastSwap:    s.LastSwap(),
		Uptime:      s.Uptime(),
	}
}
