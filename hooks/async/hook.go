// Package asynchook decouples hook sinks from the engine's hot paths: events
// are queued to a bounded channel and delivered by worker goroutines. When
// the queue is full, events are dropped rather than blocking the engine.
//
// usage:
//
//	raw := loghooks.New(slog.Default(), loghooks.Options{EvictEvery: 16})
//	hooks := asynchook.New(raw, 1, 1024) // 1 worker; queue 1024 events
//	defer hooks.Close()
package asynchook

import (
	"sync"

	"github.com/hoardcache/hoard"
)

type Hooks struct {
	inner hoard.Hooks
	q     chan func()
	wg    sync.WaitGroup
	once  sync.Once
}

var _ hoard.Hooks = (*Hooks)(nil)

func New(inner hoard.Hooks, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

func (h *Hooks) Close() {
	h.once.Do(func() {
		close(h.q)
		h.wg.Wait()
	})
}

func (h *Hooks) try(f func()) {
	select {
	case h.q <- f:
	default: // drop
	}
}

func (h *Hooks) EntryEvicted(key string, size int64) { h.try(func() { h.inner.EntryEvicted(key, size) }) }
func (h *Hooks) EntryExpired(key string, lazy bool)  { h.try(func() { h.inner.EntryExpired(key, lazy) }) }
func (h *Hooks) EvictionBlocked(sizeBytes int64)     { h.try(func() { h.inner.EvictionBlocked(sizeBytes) }) }
func (h *Hooks) ReapPass(removed int)                { h.try(func() { h.inner.ReapPass(removed) }) }
func (h *Hooks) EvictionPass(removed int, freed int64) {
	h.try(func() { h.inner.EvictionPass(removed, freed) })
}
