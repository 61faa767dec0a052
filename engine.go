package hoard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hoardcache/hoard/internal/store"
)

type engine struct {
	store *store.Store

	maxBytes      int64
	maxValueBytes int
	reapInterval  time.Duration
	evictInterval time.Duration

	clock Clock
	log   Logger
	hooks Hooks

	stats Stats

	// evictKick is signaled (non-blocking) by any Set that pushes the
	// aggregate size over the ceiling, so enforcement does not wait for
	// the next tick.
	evictKick chan struct{}

	stopCh    chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

func newEngine(opts Options) (*engine, error) {
	if opts.MaxBytes < 0 {
		return nil, fmt.Errorf("hoard: negative MaxBytes %d", opts.MaxBytes)
	}
	if opts.MaxValueBytes < 0 {
		return nil, fmt.Errorf("hoard: negative MaxValueBytes %d", opts.MaxValueBytes)
	}
	if opts.ReapInterval < 0 || opts.EvictInterval < 0 {
		return nil, fmt.Errorf("hoard: negative maintenance interval")
	}
	if opts.Shards < 0 {
		return nil, fmt.Errorf("hoard: negative Shards %d", opts.Shards)
	}

	e := &engine{
		evictKick: make(chan struct{}, 1),
		stopCh:    make(chan struct{}),
	}

	// defaults
	e.maxBytes = coalesce[int64](opts.MaxBytes, defaultMaxBytes)
	e.maxValueBytes = coalesce[int](opts.MaxValueBytes, defaultMaxValueBytes)
	e.reapInterval = coalesce[time.Duration](opts.ReapInterval, defaultReapInterval)
	e.evictInterval = coalesce[time.Duration](opts.EvictInterval, defaultEvictInterval)
	e.clock = coalesce[Clock](opts.Clock, realClock{})
	e.log = coalesce[Logger](opts.Logger, NopLogger{})
	e.hooks = coalesce[Hooks](opts.Hooks, NopHooks{})

	e.store = store.New(coalesce[int](opts.Shards, defaultShards))

	e.wg.Add(2)
	go e.reapLoop()
	go e.evictLoop()
	return e, nil
}

func (e *engine) Set(key string, value []byte, ttl time.Duration) (bool, error) {
	if key == "" {
		return false, ErrEmptyKey
	}
	if len(value) > e.maxValueBytes {
		return false, &ValueTooLargeError{Size: len(value), Max: e.maxValueBytes}
	}

	now := e.clock.Now()
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = now.Add(ttl)
	}

	created := e.store.Set(key, value, now, expiresAt)

	if e.store.SizeBytes() > e.maxBytes {
		select {
		case e.evictKick <- struct{}{}:
		default:
		}
	}
	return created, nil
}

func (e *engine) Get(key string) ([]byte, bool) {
	v, ok, expired := e.store.Get(key, e.clock.Now())
	if expired {
		e.stats.expire()
		e.hooks.EntryExpired(key, true)
	}
	if ok {
		e.stats.hit()
	} else {
		e.stats.miss()
	}
	return v, ok
}

func (e *engine) Delete(key string) {
	e.store.Delete(key)
}

func (e *engine) Len() int { return e.store.Len() }

func (e *engine) SizeBytes() int64 { return e.store.SizeBytes() }

func (e *engine) Stats() Snapshot { return e.stats.Snapshot() }

func (e *engine) Close(ctx context.Context) error {
	e.closeOnce.Do(func() { close(e.stopCh) })

	done := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
