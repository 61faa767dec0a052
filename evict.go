package hoard

import (
	"sort"
	"time"
)

// evictLoop enforces the memory ceiling. It wakes on a fixed interval and on
// the kick signaled by writes that push the store over the ceiling, so
// enforcement lags a violating Set by at most one pass.
func (e *engine) evictLoop() {
	defer e.wg.Done()

	ticker := time.NewTicker(e.evictInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			e.evictPass()
		case <-e.evictKick:
			e.evictPass()
		case <-e.stopCh:
			return
		}
	}
}

// evictPass removes entries in ascending last-write order until the
// aggregate size drops to the ceiling. Candidates are snapshotted and sorted
// once per pass; ties on last-write time break on key order, so one pass
// never re-selects the same entry. Removal is conditional on the candidate's
// last-write time, so an entry rewritten after the snapshot survives.
func (e *engine) evictPass() {
	if e.store.SizeBytes() <= e.maxBytes {
		return
	}

	cands := e.store.Snapshot()
	sort.Slice(cands, func(i, j int) bool {
		if !cands[i].LastModified.Equal(cands[j].LastModified) {
			return cands[i].LastModified.Before(cands[j].LastModified)
		}
		return cands[i].Key < cands[j].Key
	})

	var removed int
	var freed int64
	for _, c := range cands {
		if e.store.SizeBytes() <= e.maxBytes {
			break
		}
		if e.store.Len() <= 1 {
			// A lone oversized entry stays. Evicting it would leave an
			// empty store that is no more useful to anyone.
			e.hooks.EvictionBlocked(e.store.SizeBytes())
			e.log.Warn("eviction stopped at last entry over ceiling", Fields{
				"size_bytes": e.store.SizeBytes(),
				"max_bytes":  e.maxBytes,
			})
			break
		}
		if sz, ok := e.store.RemoveIf(c.Key, c.LastModified); ok {
			removed++
			freed += sz
			e.stats.evict()
			e.hooks.EntryEvicted(c.Key, sz)
		}
	}

	if removed > 0 {
		e.hooks.EvictionPass(removed, freed)
		e.log.Debug("eviction pass", Fields{
			"removed":    removed,
			"freed":      freed,
			"size_bytes": e.store.SizeBytes(),
		})
	}
}
