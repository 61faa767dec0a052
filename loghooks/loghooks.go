// Package loghooks implements hoard.Hooks on top of log/slog, with sampling
// for the per-entry events so a churny cache cannot flood the log.
package loghooks

import (
	"log/slog"
	"sync/atomic"

	"github.com/hoardcache/hoard"
)

type Options struct {
	// Sampling for per-entry events; 0/1 = log all.
	EvictEvery  uint64
	ExpireEvery uint64
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	evictCtr  atomic.Uint64
	expireCtr atomic.Uint64
}

var _ hoard.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n == 0 || n == 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks) EntryEvicted(key string, size int64) {
	if h.l == nil || !sample(h.opts.EvictEvery, &h.evictCtr) {
		return
	}
	h.l.Debug("hoard.entry_evicted",
		"key", key,
		"size", size)
}

func (h *Hooks) EntryExpired(key string, lazy bool) {
	if h.l == nil || !sample(h.opts.ExpireEvery, &h.expireCtr) {
		return
	}
	h.l.Debug("hoard.entry_expired",
		"key", key,
		"lazy", lazy)
}

func (h *Hooks) EvictionPass(removed int, freed int64) {
	if h.l == nil {
		return
	}
	h.l.Info("hoard.eviction_pass",
		"removed", removed,
		"freed", freed)
}

func (h *Hooks) EvictionBlocked(sizeBytes int64) {
	if h.l == nil {
		return
	}
	h.l.Warn("hoard.eviction_blocked",
		"size_bytes", sizeBytes,
		"msg", "last remaining entry exceeds the ceiling and is retained")
}

func (h *Hooks) ReapPass(removed int) {
	if h.l == nil {
		return
	}
	h.l.Debug("hoard.reap_pass",
		"removed", removed)
}
