package doublebuffer

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatisticsCounts(t *testing.T) {
	stats := NewStatistics()

	stats.Read()
	stats.Read()
	stats.Split()
	stats.Apply()
	stats.Swap()
	stats.IndexWrite()

	if stats.Reads() != 2 {
		t.Errorf("Expected 2 reads, got %d", stats.Reads())
	}
	if stats.Splits() != 1 {
		t.Errorf("Expected 1 split, got %d", stats.Splits())
	}
	if stats.Applies() != 1 {
		t.Errorf("Expected 1 apply, got %d", stats.Applies())
	}
	if stats.Swaps() != 1 {
		t.Errorf("Expected 1 swap, got %d", stats.Swaps())
	}
	if stats.IndexWrites() != 1 {
		t.Errorf("Expected 1 index write, got %d", stats.IndexWrites())
	}
}

func TestStatisticsLastSwap(t *testing.T) {
	stats := NewStatistics()

	assert.True(t, stats.LastSwap().IsZero(),
		"LastSwap should be the zero time before any swap")

	before := time.Now()
	stats.Swap()

	lastSwap := stats.LastSwap()
	assert.False(t, lastSwap.IsZero())
	assert.False(t, lastSwap.Before(before))
}

func TestStatisticsRates(t *testing.T) {
	stats := NewStatistics()

	for i := 0; i < 10; i++ {
		stats.Swap()
		stats.Apply()
	}

	// A tiny sleep guarantees non-zero elapsed time on coarse clocks
	time.Sleep(5 * time.Millisecond)

	assert.Greater(t, stats.SwapRate(), 0.0)
	assert.Greater(t, stats.ApplyRate(), 0.0)
	assert.Greater(t, stats.Uptime(), time.Duration(0))
}

func TestStatisticsReset(t *testing.T) {
	stats := NewStatistics()

	stats.Read()
	stats.Split()
	stats.Apply()
	stats.Swap()
	stats.IndexWrite()

	stats.Reset()

	assert.Equal(t, int64(0), stats.Reads())
	assert.Equal(t, int64(0), stats.Splits())
	assert.Equal(t, int64(0), stats.Applies())
	assert.Equal(t, int64(0), stats.Swaps())
	assert.Equal(t, int64(0), stats.IndexWrites())
	assert.True(t, stats.LastSwap().IsZero())
}

func TestStatisticsSummary(t *testing.T) {
	stats := NewStatistics()

	stats.Read()
	stats.Read()
	stats.Read()
	stats.Split()
	stats.Apply()
	stats.Apply()
	stats.Swap()

	summary := stats.Summary()

	assert.Equal(t, int64(3), summary.Reads)
	assert.Equal(t, int64(1), summary.Splits)
	assert.Equal(t, int64(2), summary.Applies)
	assert.Equal(t, int64(1), summary.Swaps)
	assert.Equal(t, int64(0), summary.IndexWrites)
	assert.False(t, summary.LastSwap.IsZero())
}

func TestStatisticsSummaryJSON(t *testing.T) {
	stats := NewStatistics()
	stats.Swap()

	data, err := json.Marshal(stats.Summary())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Contains(t, decoded, "reads")
	assert.Contains(t, decoded, "splits")
	assert.Contains(t, decoded, "applies")
	assert.Contains(t, decoded, "swaps")
	assert.Contains(t, decoded, "index_writes")
	assert.Contains(t, decoded, "swap_rate")
	assert.Contains(t, decoded, "last_swap")
	assert.EqualValues(t, 1, decoded["swaps"])
}

func TestStatisticsThreadSafety(t *testing.T) {
	stats := NewStatistics()

	var wg sync.WaitGroup
	numGoroutines := 10
	opsPerGoroutine := 100

	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < opsPerGoroutine; j++ {
				stats.Read()
				stats.Swap()
			}
		}()
	}

	wg.Wait()

	expected := int64(numGoroutines * opsPerGoroutine)
	assert.Equal(t, expected, stats.Reads())
	assert.Equal(t, expected, stats.Swaps())
}
