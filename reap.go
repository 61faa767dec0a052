package hoard

import "time"

// reapLoop bounds the lifetime of expired-but-unread entries. Lazy expiry on
// Get only reclaims keys that something still reads; the sweep reclaims the
// rest. The sweep locks one shard at a time, so request traffic never waits
// on a store-wide pause.
func (e *engine) reapLoop() {
	defer e.wg.Done()

	ticker := time.NewTicker(e.reapInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			removed := e.store.SweepExpired(e.clock.Now())
			if removed > 0 {
				e.stats.expireN(removed)
				e.hooks.ReapPass(removed)
				e.log.Debug("reaper removed expired entries", Fields{"removed": removed})
			}
		case <-e.stopCh:
			return
		}
	}
}
