// Package hoard implements a centralized in-memory cache engine: byte values
// under string keys, optional per-key TTL, and a configurable memory ceiling
// enforced by evicting least-recently-written entries first.
//
// Components:
//   - Store (internal/store): sharded concurrent map; per-shard locking so
//     unrelated keys never serialize on each other.
//   - Reaper: periodic sweep that removes expired entries even when nothing
//     reads them; reads also expire lazily.
//   - Eviction controller: keeps the aggregate size at or below the ceiling,
//     removing entries in ascending last-write order.
//
// The engine has an explicit lifecycle: New starts the background loops,
// Close stops them. All components receive the engine handle; there is no
// ambient singleton.
//
// Eviction exception: a single entry larger than the whole ceiling is still
// accepted and retrievable. An eviction pass never empties the store, so a
// lone oversized entry stays until overwritten, deleted, or expired.
package hoard
