package helpers

import (
	"fmt"
	"sync"
)

type PoolStats struct {
	Creates int
	Resets  int
	Hits    int
}

func (s PoolStats) String() string {
	return fmt.Sprint("creates: ", s.Creates, ", resets: ", s.Resets, ", hits: ", s.Hits)
}

const _poolCapacity = 256

// CreatePool returns get/release/stats closures over a ring of reusable values.
// Released values beyond the ring capacity are dropped for the GC.
func CreatePool[T any](create func() T, reset func(*T)) (func() *T, func(*T), func() PoolStats) {
	available := make([]*T, 0, _poolCapacity)
	stats := PoolStats{}

	lock := sync.Mutex{}

	var get = func() *T {
		lock.Lock()
		if n := len(available); n > 0 {
			result := available[n-1]
			available = available[:n-1]
			stats.Hits++
			lock.Unlock()
			return result
		}
		stats.Creates++
		lock.Unlock()

		result := create()
		return &result
	}

	var release = func(t *T) {
		reset(t)

		lock.Lock()
		stats.Resets++
		if len(available) < _poolCapacity {
			available = append(available, t)
		}
		lock.Unlock()
	}

	var getStats = func() PoolStats {
		lock.Lock()
		defer lock.Unlock()
		return stats
	}

	return get, release, getStats
}
