package store

import "time"

// entryOverhead approximates the fixed per-entry bookkeeping cost (map slot,
// header, timestamps) counted toward the aggregate size, so a flood of tiny
// entries still registers against the ceiling.
const entryOverhead = 64

// entry is the unit of stored state. Entries are immutable once published:
// Set installs a fresh entry rather than mutating in place, so a reader
// holding the shard read lock can never observe a half-written value.
type entry struct {
	value        []byte
	lastModified time.Time
	expiresAt    time.Time // zero => never expires
}

func (e *entry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

func entrySize(key string, value []byte) int64 {
	return int64(len(key)) + int64(len(value)) + entryOverhead
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
