// Package near defines the process-local byte cache a client can put in
// front of a hoard server to absorb hot-key reads.
//
// Implementations MUST be safe for concurrent use and byte-for-byte
// transparent: Get must return exactly the []byte previously passed to Set
// for the same key. A near-cache is best-effort; it may drop writes under
// pressure and its TTL is a staleness bound, not an authority - the server
// remains the source of truth.
package near

import "time"

// Store is a minimal local byte cache with TTLs.
type Store interface {
	// Get returns (value, true) on hit; (nil, false) on miss.
	Get(key string) ([]byte, bool)

	// Set stores value with the given TTL. May silently drop the write
	// under pressure.
	Set(key string, value []byte, ttl time.Duration)

	// Del removes a key (best-effort).
	Del(key string)

	// Close releases resources.
	Close() error
}
