package hoard

import (
	"context"
	"time"
)

// Cache is the engine API. A single long-lived instance is shared by the
// request boundary and the background maintenance loops.
type Cache interface {
	// Get returns the value for key if present and unexpired. An expired
	// entry found on read is removed as a side effect and reported as a
	// miss, whether or not the reaper has seen it yet.
	Get(key string) (value []byte, ok bool)

	// Set stores value under key, replacing any previous entry atomically.
	// ttl > 0 sets an expiry of now+ttl; ttl <= 0 means the entry never
	// expires. created reports whether the key was absent (or expired) at
	// write time. Fails only on invalid input: ErrEmptyKey or
	// *ValueTooLargeError.
	Set(key string, value []byte, ttl time.Duration) (created bool, err error)

	// Delete removes key if present; deleting an absent key is a no-op.
	Delete(key string)

	// Len returns the number of stored entries, including expired entries
	// not yet reaped.
	Len() int

	// SizeBytes returns the aggregate size attributed to all entries.
	SizeBytes() int64

	// Stats returns a point-in-time counter snapshot.
	Stats() Snapshot

	// Close stops the reaper and eviction loops, waiting for the current
	// cycle to finish or ctx to expire.
	Close(ctx context.Context) error
}

// Options tune the engine. The zero value is usable; every field has a
// default (see defaults.go).
type Options struct {
	MaxBytes      int64         // memory ceiling; 0 => 256 MiB
	MaxValueBytes int           // per-value limit; 0 => 1 MiB
	ReapInterval  time.Duration // expired-entry sweep cycle; 0 => 5s
	EvictInterval time.Duration // ceiling check cycle; 0 => 2s
	Shards        int           // rounded up to a power of two; 0 => 16

	Logger Logger // nil => NopLogger
	Hooks  Hooks  // nil => NopHooks
	Clock  Clock  // nil => wall clock; injectable for tests
}

// New validates opts, builds the store, and starts the background loops.
func New(opts Options) (Cache, error) {
	return newEngine(opts)
}
