package hoard

import "time"

const (
	defaultMaxBytes      = 256 << 20 // 256 MiB ceiling
	defaultMaxValueBytes = 1 << 20   // 1 MiB per value
	defaultReapInterval  = 5 * time.Second
	defaultEvictInterval = 2 * time.Second
	defaultShards        = 16
)

// coalesce returns def when v is the zero value of T - otherwise v.
func coalesce[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}
