package hoard

// Hooks are lightweight callbacks for high-signal engine events.
// Implementations MUST be cheap and non-blocking; the engine calls them from
// the read path and from the maintenance loops. Wrap with hooks/async to
// decouple slow sinks.
type Hooks interface {
	// An entry was removed under memory pressure.
	EntryEvicted(key string, size int64)

	// An entry past its expiry was removed. lazy is true when a read
	// detected it, false when the reaper did.
	EntryExpired(key string, lazy bool)

	// Summary of one eviction pass that removed at least one entry.
	EvictionPass(removed int, freed int64)

	// A pass stopped with one entry remaining while still over the
	// ceiling (the oversized-entry exception). sizeBytes is the
	// aggregate size at that point.
	EvictionBlocked(sizeBytes int64)

	// Summary of one reaper cycle that removed at least one entry.
	ReapPass(removed int)
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) EntryEvicted(string, int64) {}
func (NopHooks) EntryExpired(string, bool)  {}
func (NopHooks) EvictionPass(int, int64)    {}
func (NopHooks) EvictionBlocked(int64)      {}
func (NopHooks) ReapPass(int)               {}
