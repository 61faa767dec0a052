package hoard

import "sync/atomic"

// Stats holds engine counters using atomics for lock-free updates.
type Stats struct {
	hits        atomic.Int64
	misses      atomic.Int64
	expirations atomic.Int64
	evictions   atomic.Int64
}

func (s *Stats) hit()    { s.hits.Add(1) }
func (s *Stats) miss()   { s.misses.Add(1) }
func (s *Stats) expire() { s.expirations.Add(1) }
func (s *Stats) evict()  { s.evictions.Add(1) }

func (s *Stats) expireN(n int) { s.expirations.Add(int64(n)) }

// Snapshot is a point-in-time copy of engine statistics.
type Snapshot struct {
	Hits        int64
	Misses      int64
	Expirations int64
	Evictions   int64
}

// HitRate returns the hit rate as a value between 0 and 1.
// Returns 0 if there have been no accesses.
func (s Snapshot) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// Snapshot returns a point-in-time copy of the stats.
func (s *Stats) Snapshot() Snapshot {
	return Snapshot{
		Hits:        s.hits.Load(),
		Misses:      s.misses.Load(),
		Expirations: s.expirations.Load(),
		Evictions:   s.evictions.Load(),
	}
}
