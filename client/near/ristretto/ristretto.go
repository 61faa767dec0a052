// Package ristretto adapts dgraph-io/ristretto as a client near-cache.
// Admission is cost-based (cost = value length), so very hot small entries
// win under pressure - the behavior you want from a near-cache.
package ristretto

import (
	"errors"
	"time"

	rc "github.com/dgraph-io/ristretto"

	"github.com/hoardcache/hoard/client/near"
)

type Store struct {
	c *rc.Cache
}

var _ near.Store = (*Store)(nil)

type Config struct {
	NumCounters int64 // keys to track frequency for (~10x max entries)
	MaxCost     int64 // total cost budget in bytes
	BufferItems int64 // per-Get buffer; 0 => 64
}

func New(cfg Config) (*Store, error) {
	if cfg.NumCounters <= 0 || cfg.MaxCost <= 0 {
		return nil, errors.New("ristretto: invalid config")
	}
	if cfg.BufferItems <= 0 {
		cfg.BufferItems = 64
	}
	c, err := rc.NewCache(&rc.Config{
		NumCounters: cfg.NumCounters,
		MaxCost:     cfg.MaxCost,
		BufferItems: cfg.BufferItems,
	})
	if err != nil {
		return nil, err
	}
	return &Store{c: c}, nil
}

func (s *Store) Get(key string) ([]byte, bool) {
	v, ok := s.c.Get(key)
	if !ok {
		return nil, false
	}
	b, _ := v.([]byte)
	if b == nil {
		// drop unexpected entry shape
		s.c.Del(key)
		return nil, false
	}
	return b, true
}

func (s *Store) Set(key string, value []byte, ttl time.Duration) {
	s.c.SetWithTTL(key, value, int64(len(value)), ttl)
}

func (s *Store) Del(key string) { s.c.Del(key) }

func (s *Store) Close() error {
	s.c.Wait()
	s.c.Close()
	return nil
}
