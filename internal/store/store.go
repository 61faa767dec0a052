// Package store holds the sharded concurrent map behind the cache engine.
//
// The key space is split across a power-of-two number of shards, each with
// its own RWMutex, so gets proceed with minimal mutual blocking and writes
// to different keys rarely contend. Operations on the same key are
// linearized by the owning shard's lock. The aggregate size counter is
// store-level but only updated while holding the owning shard's lock, which
// keeps it consistent with the map contents (no permanent drift).
package store

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"
)

// Candidate describes one entry for eviction ordering.
type Candidate struct {
	Key          string
	LastModified time.Time
	Size         int64
}

type shard struct {
	mu    sync.RWMutex
	items map[string]*entry
}

// Store is a sharded map from key to entry. The zero value is not usable;
// construct with New.
type Store struct {
	shards []*shard
	mask   uint64

	size  atomic.Int64
	count atomic.Int64
}

// New builds a store with n shards, rounded up to the next power of two.
func New(n int) *Store {
	if n <= 0 {
		n = 1
	}
	pow := 1
	for pow < n {
		pow <<= 1
	}

	s := &Store{
		shards: make([]*shard, pow),
		mask:   uint64(pow - 1),
	}
	for i := range s.shards {
		s.shards[i] = &shard{items: make(map[string]*entry)}
	}
	return s
}

func (s *Store) shardFor(key string) *shard {
	return s.shards[xxhash.Sum64String(key)&s.mask]
}

// Set stores value under key, replacing any existing entry atomically with
// respect to concurrent readers. created reports whether the key was absent
// or expired at write time. The value is cloned; callers keep ownership of
// their slice.
func (s *Store) Set(key string, value []byte, now, expiresAt time.Time) (created bool) {
	e := &entry{
		value:        cloneBytes(value),
		lastModified: now,
		expiresAt:    expiresAt,
	}
	sz := entrySize(key, value)

	sh := s.shardFor(key)
	sh.mu.Lock()
	old, existed := sh.items[key]
	sh.items[key] = e
	if existed {
		s.size.Add(sz - entrySize(key, old.value))
		created = old.expired(now)
	} else {
		s.size.Add(sz)
		s.count.Add(1)
		created = true
	}
	sh.mu.Unlock()
	return created
}

// Get returns the value for key as of now. expired reports that the entry
// existed but was past its expiry and has been removed (lazy expiry).
func (s *Store) Get(key string, now time.Time) (value []byte, ok, expired bool) {
	sh := s.shardFor(key)

	sh.mu.RLock()
	e, found := sh.items[key]
	if !found {
		sh.mu.RUnlock()
		return nil, false, false
	}
	if !e.expired(now) {
		v := cloneBytes(e.value)
		sh.mu.RUnlock()
		return v, true, false
	}
	sh.mu.RUnlock()

	// Expired: removal needs the write lock. Re-check under it; the entry
	// may have been rewritten or removed between the two locks.
	sh.mu.Lock()
	defer sh.mu.Unlock()
	e2, found := sh.items[key]
	if !found {
		return nil, false, false
	}
	if e2.expired(now) {
		s.removeLocked(sh, key, e2)
		return nil, false, true
	}
	return cloneBytes(e2.value), true, false
}

// Delete removes key if present. Deleting an absent key is a no-op.
func (s *Store) Delete(key string) (existed bool) {
	sh := s.shardFor(key)
	sh.mu.Lock()
	if e, ok := sh.items[key]; ok {
		s.removeLocked(sh, key, e)
		existed = true
	}
	sh.mu.Unlock()
	return existed
}

// RemoveIf removes key only if its last-write time still equals lastModified,
// returning the freed size. Used by the eviction controller so a candidate
// rewritten after selection is never evicted on stale grounds.
func (s *Store) RemoveIf(key string, lastModified time.Time) (freed int64, ok bool) {
	sh := s.shardFor(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	e, found := sh.items[key]
	if !found || !e.lastModified.Equal(lastModified) {
		return 0, false
	}
	freed = entrySize(key, e.value)
	s.removeLocked(sh, key, e)
	return freed, true
}

// SweepExpired removes every entry past its expiry as of now. Shards are
// swept one at a time under their own lock, so the sweep never pauses the
// whole store.
func (s *Store) SweepExpired(now time.Time) (removed int) {
	for _, sh := range s.shards {
		sh.mu.Lock()
		for key, e := range sh.items {
			if e.expired(now) {
				s.removeLocked(sh, key, e)
				removed++
			}
		}
		sh.mu.Unlock()
	}
	return removed
}

// Snapshot returns eviction candidates for all entries. Each shard is read
// under its own read lock; the result is a point-in-time view, not a frozen
// one, which is why removal goes through RemoveIf.
func (s *Store) Snapshot() []Candidate {
	out := make([]Candidate, 0, s.count.Load())
	for _, sh := range s.shards {
		sh.mu.RLock()
		for key, e := range sh.items {
			out = append(out, Candidate{
				Key:          key,
				LastModified: e.lastModified,
				Size:         entrySize(key, e.value),
			})
		}
		sh.mu.RUnlock()
	}
	return out
}

// Len returns the number of entries, including expired ones not yet removed.
func (s *Store) Len() int { return int(s.count.Load()) }

// SizeBytes returns the aggregate size attributed to all entries.
func (s *Store) SizeBytes() int64 { return s.size.Load() }

// removeLocked must be called with sh.mu held for writing and e the entry
// currently stored under key.
func (s *Store) removeLocked(sh *shard, key string, e *entry) {
	delete(sh.items, key)
	s.size.Add(-entrySize(key, e.value))
	s.count.Add(-1)
}
