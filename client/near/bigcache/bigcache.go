// Package bigcache adapts allegro/bigcache as a client near-cache.
// BigCache has no per-entry TTL; every entry lives for the configured
// LifeWindow, so the per-Set TTL argument is ignored. Pick a LifeWindow
// equal to the staleness you can tolerate.
package bigcache

import (
	"context"
	"errors"
	"time"

	bc "github.com/allegro/bigcache/v3"

	"github.com/hoardcache/hoard/client/near"
)

type Store struct {
	c *bc.BigCache
}

var _ near.Store = (*Store)(nil)

type Config struct {
	LifeWindow         time.Duration // required; global entry lifetime
	CleanWindow        time.Duration
	MaxEntriesInWindow int
	MaxEntrySize       int
	HardMaxCacheSizeMB int // ~ memory limit; 0 = unlimited
}

func New(cfg Config) (*Store, error) {
	if cfg.LifeWindow <= 0 {
		return nil, errors.New("bigcache: LifeWindow is required")
	}
	conf := bc.DefaultConfig(cfg.LifeWindow)
	if cfg.CleanWindow > 0 {
		conf.CleanWindow = cfg.CleanWindow
	}
	if cfg.MaxEntriesInWindow > 0 {
		conf.MaxEntriesInWindow = cfg.MaxEntriesInWindow
	}
	if cfg.MaxEntrySize > 0 {
		conf.MaxEntrySize = cfg.MaxEntrySize
	}
	if cfg.HardMaxCacheSizeMB > 0 {
		conf.HardMaxCacheSize = cfg.HardMaxCacheSizeMB
	}
	c, err := bc.New(context.Background(), conf)
	if err != nil {
		return nil, err
	}
	return &Store{c: c}, nil
}

func (s *Store) Get(key string) ([]byte, bool) {
	b, err := s.c.Get(key)
	if err != nil {
		return nil, false
	}
	return b, true
}

func (s *Store) Set(key string, value []byte, _ time.Duration) {
	_ = s.c.Set(key, value)
}

func (s *Store) Del(key string) { _ = s.c.Delete(key) }

func (s *Store) Close() error { return s.c.Close() }
